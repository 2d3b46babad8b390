package life

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// ErrEmptyPattern is returned when a pattern file has no live cells.
var ErrEmptyPattern = errors.New("life: pattern has no live cells")

// ErrPatternTooLarge is returned when an RLE run or position exceeds
// MaxPatternExtent.
var ErrPatternTooLarge = errors.New("life: pattern too large")

// MaxPatternExtent bounds pattern width, height and run lengths. It is
// twice the largest configurable grid.
const MaxPatternExtent = 1024

// Pattern is a named set of live cells relative to its top-left corner.
type Pattern struct {
	Name  string
	Cells []Cell
}

// Bounds returns the width and height of the pattern's bounding box.
func (p *Pattern) Bounds() (w, h int) {
	for _, c := range p.Cells {
		if c.X+1 > w {
			w = c.X + 1
		}
		if c.Y+1 > h {
			h = c.Y + 1
		}
	}
	return w, h
}

// Format renders the pattern in plaintext (.cells) form.
func (p *Pattern) Format() string {
	var b strings.Builder
	if p.Name != "" {
		fmt.Fprintf(&b, "!Name: %s\n", p.Name)
	}
	w, h := p.Bounds()
	alive := make(map[Cell]bool, len(p.Cells))
	for _, c := range p.Cells {
		alive[c] = true
	}
	for y := 0; y < h; y++ {
		row := make([]byte, w)
		for x := 0; x < w; x++ {
			if alive[Cell{X: x, Y: y}] {
				row[x] = 'O'
			} else {
				row[x] = '.'
			}
		}
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}

// ParsePattern reads a pattern in plaintext (.cells) or RLE form. RLE is
// detected by its "x = ..." header line.
func ParsePattern(r io.Reader) (*Pattern, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("life: read pattern: %w", err)
	}

	for _, l := range lines {
		t := strings.TrimSpace(l)
		if t == "" || strings.HasPrefix(t, "#") {
			continue
		}
		if strings.HasPrefix(t, "x") && strings.Contains(t, "=") {
			return parseRLE(lines)
		}
		break
	}
	return parsePlaintext(lines)
}

func parsePlaintext(lines []string) (*Pattern, error) {
	p := &Pattern{}
	y := 0
	for _, l := range lines {
		if strings.HasPrefix(l, "!") {
			if name, ok := strings.CutPrefix(l, "!Name:"); ok {
				p.Name = strings.TrimSpace(name)
			}
			continue
		}
		for x, ch := range l {
			switch ch {
			case 'O', 'o', '*':
				p.Cells = append(p.Cells, Cell{X: x, Y: y})
			case '.', ' ':
			default:
				return nil, fmt.Errorf("life: line %d: unexpected %q in plaintext pattern", y+1, ch)
			}
		}
		y++
	}
	return finish(p)
}

func parseRLE(lines []string) (*Pattern, error) {
	p := &Pattern{}
	var body strings.Builder
	header := false
	for _, l := range lines {
		t := strings.TrimSpace(l)
		switch {
		case t == "":
		case strings.HasPrefix(t, "#N"):
			p.Name = strings.TrimSpace(strings.TrimPrefix(t, "#N"))
		case strings.HasPrefix(t, "#"):
		case !header:
			header = true
		default:
			body.WriteString(t)
		}
	}

	x, y, run := 0, 0, 0
	for _, ch := range body.String() {
		switch {
		case ch >= '0' && ch <= '9':
			// run stays <= MaxPatternExtent here, so this cannot overflow.
			run = run*10 + int(ch-'0')
			if run > MaxPatternExtent {
				return nil, fmt.Errorf("%w: run length above %d", ErrPatternTooLarge, MaxPatternExtent)
			}
		case ch == 'b' || ch == '.':
			x += count(run)
			run = 0
		case ch == 'o' || ch == 'A':
			if x+count(run) > MaxPatternExtent {
				return nil, fmt.Errorf("%w: row wider than %d", ErrPatternTooLarge, MaxPatternExtent)
			}
			for i := 0; i < count(run); i++ {
				p.Cells = append(p.Cells, Cell{X: x, Y: y})
				x++
			}
			run = 0
		case ch == '$':
			y += count(run)
			x = 0
			run = 0
			if y >= MaxPatternExtent {
				return nil, fmt.Errorf("%w: taller than %d rows", ErrPatternTooLarge, MaxPatternExtent)
			}
		case ch == '!':
			return finish(p)
		default:
			return nil, fmt.Errorf("life: unexpected %s in RLE body", strconv.QuoteRune(ch))
		}
	}
	return finish(p)
}

func count(run int) int {
	if run == 0 {
		return 1
	}
	return run
}

func finish(p *Pattern) (*Pattern, error) {
	if len(p.Cells) == 0 {
		return nil, ErrEmptyPattern
	}
	sort.Slice(p.Cells, func(i, j int) bool {
		if p.Cells[i].Y != p.Cells[j].Y {
			return p.Cells[i].Y < p.Cells[j].Y
		}
		return p.Cells[i].X < p.Cells[j].X
	})
	return p, nil
}

// Builtin patterns available by name from the CLI and the web page.
var Builtin = map[string]*Pattern{
	"blinker":    {Name: "Blinker", Cells: []Cell{{0, 0}, {1, 0}, {2, 0}}},
	"block":      {Name: "Block", Cells: []Cell{{0, 0}, {1, 0}, {0, 1}, {1, 1}}},
	"glider":     {Name: "Glider", Cells: []Cell{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}},
	"toad":       {Name: "Toad", Cells: []Cell{{1, 0}, {2, 0}, {3, 0}, {0, 1}, {1, 1}, {2, 1}}},
	"beacon":     {Name: "Beacon", Cells: []Cell{{0, 0}, {1, 0}, {0, 1}, {3, 2}, {2, 3}, {3, 3}}},
	"rpentomino": {Name: "R-pentomino", Cells: []Cell{{1, 0}, {2, 0}, {0, 1}, {1, 1}, {1, 2}}},
}

// LookupPattern resolves a builtin pattern name case-insensitively.
func LookupPattern(name string) (*Pattern, bool) {
	p, ok := Builtin[strings.ToLower(strings.ReplaceAll(name, "-", ""))]
	return p, ok
}
