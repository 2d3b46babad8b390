package ui

import (
	"fmt"
	"strings"
	"time"

	"golife/internal/life"
	"golife/internal/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// frequencyStep is the +/- adjustment in seconds.
	frequencyStep = 0.1

	// randomDensity is the live fraction used by Randomize.
	randomDensity = 0.3

	// Screen position of the first cell: one title line, then the board
	// border.
	boardTop  = 2
	boardLeft = 1

	// cellWidth is the number of terminal columns per cell, which keeps
	// cells roughly square.
	cellWidth = 2
)

// DefaultFrameRate is the redraw interval when none is configured.
const DefaultFrameRate = 50 * time.Millisecond

type tickMsg time.Time

// Options configures a Model.
type Options struct {
	Theme     string
	FrameRate time.Duration
	Seed      int64
	Title     string
}

// Model is the bubbletea model wrapping a life.Game.
type Model struct {
	game   *life.Game
	styles Styles
	keys   keyMap
	help   help.Model

	title string
	frame time.Duration
	start time.Time
	now   func() time.Time
	seed  int64

	cursorX, cursorY int
	width, height    int
	quitting         bool
}

// New returns a Model driving game.
func New(game *life.Game, opts Options) Model {
	if opts.FrameRate <= 0 {
		opts.FrameRate = DefaultFrameRate
	}
	if opts.Title == "" {
		opts.Title = "Conway's Game of Life"
	}
	size := game.Grid().Size()
	m := Model{
		game:    game,
		styles:  NewStyles(ThemeFor(opts.Theme)),
		keys:    defaultKeyMap(),
		help:    help.New(),
		title:   opts.Title,
		frame:   opts.FrameRate,
		now:     time.Now,
		seed:    opts.Seed,
		cursorX: size / 2,
		cursorY: size / 2,
	}
	m.start = m.now()
	return m
}

// Game returns the wrapped game.
func (m Model) Game() *life.Game { return m.game }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.game.Advance(m.now().Sub(m.start)) {
			logging.GameDebug("generation %d population %d", m.game.Generation(), m.game.Grid().Population())
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.click(msg.X, msg.Y)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	size := m.game.Grid().Size()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Play):
		m.game.Play()
	case key.Matches(msg, m.keys.Pause):
		m.game.Pause()
	case key.Matches(msg, m.keys.Clear):
		m.game.Clear()
	case key.Matches(msg, m.keys.Slower):
		m.game.SetFrequency(m.game.Frequency() + frequencyStep)
	case key.Matches(msg, m.keys.Faster):
		m.game.SetFrequency(m.game.Frequency() - frequencyStep)
	case key.Matches(msg, m.keys.Randomize):
		m.seed++
		m.game.Randomize(randomDensity, m.seed)
	case key.Matches(msg, m.keys.Step):
		m.game.Step()
	case key.Matches(msg, m.keys.Up):
		m.cursorY = (m.cursorY - 1 + size) % size
	case key.Matches(msg, m.keys.Down):
		m.cursorY = (m.cursorY + 1) % size
	case key.Matches(msg, m.keys.Left):
		m.cursorX = (m.cursorX - 1 + size) % size
	case key.Matches(msg, m.keys.Right):
		m.cursorX = (m.cursorX + 1) % size
	case key.Matches(msg, m.keys.Toggle):
		_ = m.game.Grid().Toggle(m.cursorX, m.cursorY)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// click toggles the cell under screen position (x, y). Clicks on the
// border or outside the board are ignored.
func (m *Model) click(x, y int) {
	col, row := x-boardLeft, y-boardTop
	if col < 0 || row < 0 {
		return
	}
	cx, cy := col/cellWidth, row
	if m.game.Grid().Toggle(cx, cy) == nil {
		m.cursorX, m.cursorY = cx, cy
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.styles.Board.Render(m.renderBoard()))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderBoard() string {
	g := m.game.Grid()
	size := g.Size()
	cell := strings.Repeat(" ", cellWidth)
	cursor := "[]"

	var b strings.Builder
	for y := 0; y < size; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < size; x++ {
			alive := g.Alive(x, y)
			onCursor := x == m.cursorX && y == m.cursorY
			switch {
			case onCursor && alive:
				b.WriteString(m.styles.CursorAlive.Render(cursor))
			case onCursor:
				b.WriteString(m.styles.CursorDead.Render(cursor))
			case alive:
				b.WriteString(m.styles.Alive.Render(cell))
			default:
				b.WriteString(m.styles.Dead.Render(cell))
			}
		}
	}
	return b.String()
}

func (m Model) statusLine() string {
	state := m.styles.Paused.Render("Paused")
	if m.game.Playing() {
		state = m.styles.Playing.Render("Playing")
	}
	return state + m.styles.Status.Render(fmt.Sprintf("  generation %d  population %d  every %.1fs",
		m.game.Generation(), m.game.Grid().Population(), m.game.Frequency()))
}
