// Package life implements Conway's Game of Life on a square board.
//
// The board keeps a one-cell hidden buffer ring around the visible area. In
// the bounded topology the buffer evolves like any other cell but is never
// reported, so patterns can drift partially off-screen without being clipped
// on the next generation.
package life

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSize is returned when a grid is created with a size below 1.
	ErrInvalidSize = errors.New("life: grid size must be at least 1")
	// ErrOutOfBounds is returned for visible coordinates outside the board.
	ErrOutOfBounds = errors.New("life: cell out of bounds")
)

// Topology controls what lies beyond the visible edge.
type Topology int

const (
	// Bounded surrounds the board with a hidden dead-at-start buffer ring.
	Bounded Topology = iota
	// Torus wraps the visible area onto itself.
	Torus
)

// String returns the config name of the topology.
func (t Topology) String() string {
	switch t {
	case Bounded:
		return "bounded"
	case Torus:
		return "torus"
	default:
		return fmt.Sprintf("topology(%d)", int(t))
	}
}

// ParseTopology maps a config name to a Topology.
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bounded":
		return Bounded, nil
	case "torus", "wrap":
		return Torus, nil
	default:
		return Bounded, fmt.Errorf("life: unknown topology %q", s)
	}
}

// Cell is a visible coordinate.
type Cell struct {
	X int
	Y int
}

// Grid holds the board state. The zero value is not usable; call NewGrid.
type Grid struct {
	size     int
	stride   int
	topology Topology
	cells    []bool
	scratch  []bool
}

// NewGrid returns an empty size x size board.
func NewGrid(size int, topology Topology) (*Grid, error) {
	if size < 1 {
		return nil, ErrInvalidSize
	}
	stride := size + 2
	return &Grid{
		size:     size,
		stride:   stride,
		topology: topology,
		cells:    make([]bool, stride*stride),
		scratch:  make([]bool, stride*stride),
	}, nil
}

// Size returns the visible edge length.
func (g *Grid) Size() int { return g.size }

// Topology returns the edge behaviour of the board.
func (g *Grid) Topology() Topology { return g.topology }

func (g *Grid) index(ix, iy int) int { return iy*g.stride + ix }

func (g *Grid) inside(x, y int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size
}

// Alive reports whether the visible cell is alive. Out of range is dead.
func (g *Grid) Alive(x, y int) bool {
	if !g.inside(x, y) {
		return false
	}
	return g.cells[g.index(x+1, y+1)]
}

// Set changes a visible cell.
func (g *Grid) Set(x, y int, alive bool) error {
	if !g.inside(x, y) {
		return fmt.Errorf("%w: (%d,%d) on %dx%d", ErrOutOfBounds, x, y, g.size, g.size)
	}
	g.cells[g.index(x+1, y+1)] = alive
	return nil
}

// Toggle flips a visible cell.
func (g *Grid) Toggle(x, y int) error {
	if !g.inside(x, y) {
		return fmt.Errorf("%w: (%d,%d) on %dx%d", ErrOutOfBounds, x, y, g.size, g.size)
	}
	i := g.index(x+1, y+1)
	g.cells[i] = !g.cells[i]
	return nil
}

// Neighbors counts live Moore neighbours of the cell at internal coordinates
// (buffer included, so 0..Size+1).
func (g *Grid) Neighbors(ix, iy int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := ix+dx, iy+dy
			if g.topology == Torus {
				nx = wrap(nx, g.size)
				ny = wrap(ny, g.size)
			} else if nx < 0 || nx >= g.stride || ny < 0 || ny >= g.stride {
				continue
			}
			if g.cells[g.index(nx, ny)] {
				count++
			}
		}
	}
	return count
}

// wrap maps an internal coordinate back into 1..size.
func wrap(i, size int) int {
	return ((i-1)%size+size)%size + 1
}

// Step advances the board by one generation.
func (g *Grid) Step() {
	lo, hi := 0, g.stride
	if g.topology == Torus {
		lo, hi = 1, g.size+1
	}
	for iy := lo; iy < hi; iy++ {
		for ix := lo; ix < hi; ix++ {
			n := g.Neighbors(ix, iy)
			i := g.index(ix, iy)
			if g.cells[i] {
				g.scratch[i] = n == 2 || n == 3
			} else {
				g.scratch[i] = n == 3
			}
		}
	}
	g.cells, g.scratch = g.scratch, g.cells
}

// Clear kills every cell, buffer included.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = false
	}
}

// Population counts live visible cells.
func (g *Grid) Population() int {
	n := 0
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			if g.cells[g.index(x+1, y+1)] {
				n++
			}
		}
	}
	return n
}

// Cells lists live visible cells in row-major order.
func (g *Grid) Cells() []Cell {
	var out []Cell
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			if g.cells[g.index(x+1, y+1)] {
				out = append(out, Cell{X: x, Y: y})
			}
		}
	}
	return out
}

// String renders the visible area with 'O' for alive and '.' for dead.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.size * (g.size + 1))
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			if g.cells[g.index(x+1, y+1)] {
				b.WriteByte('O')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
