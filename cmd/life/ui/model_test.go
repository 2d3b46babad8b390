package ui

import (
	"strings"
	"testing"
	"time"

	"golife/internal/life"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, size int) Model {
	t.Helper()
	g, err := life.NewGame(size, life.Bounded)
	require.NoError(t, err)
	return New(g, Options{Theme: "dark", Seed: 1})
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_PlayPause(t *testing.T) {
	m := newTestModel(t, 8)

	m = update(t, m, runeKey('p'))
	assert.True(t, m.Game().Playing())
	assert.Contains(t, m.View(), "Playing")

	m = update(t, m, runeKey('x'))
	assert.False(t, m.Game().Playing())
	assert.Contains(t, m.View(), "Paused")
}

func TestModel_ClearPauses(t *testing.T) {
	m := newTestModel(t, 8)
	require.NoError(t, m.Game().Grid().Set(1, 1, true))
	m = update(t, m, runeKey('p'))

	m = update(t, m, runeKey('c'))
	assert.False(t, m.Game().Playing())
	assert.Zero(t, m.Game().Grid().Population())
}

func TestModel_FrequencyKeys(t *testing.T) {
	m := newTestModel(t, 8)

	m = update(t, m, runeKey('+'))
	assert.InDelta(t, 0.6, m.Game().Frequency(), 1e-9)

	for i := 0; i < 20; i++ {
		m = update(t, m, runeKey('+'))
	}
	assert.Equal(t, life.MaxFrequency, m.Game().Frequency())

	for i := 0; i < 30; i++ {
		m = update(t, m, runeKey('-'))
	}
	assert.Equal(t, life.MinFrequency, m.Game().Frequency())
}

func TestModel_TickAdvancesWhenPlaying(t *testing.T) {
	m := newTestModel(t, 5)
	g := m.Game()
	for _, x := range []int{1, 2, 3} {
		require.NoError(t, g.Grid().Set(x, 2, true))
	}

	now := m.start
	m.now = func() time.Time { return now }

	now = now.Add(time.Second)
	m = update(t, m, tickMsg(now))
	assert.Zero(t, g.Generation(), "paused game must not advance")

	m = update(t, m, runeKey('p'))
	m = update(t, m, tickMsg(now))
	assert.Equal(t, uint64(1), g.Generation())
	assert.True(t, g.Grid().Alive(2, 1), "blinker should be vertical")

	now = now.Add(100 * time.Millisecond)
	m = update(t, m, tickMsg(now))
	assert.Equal(t, uint64(1), g.Generation(), "interval not yet elapsed")

	now = now.Add(400 * time.Millisecond)
	update(t, m, tickMsg(now))
	assert.Equal(t, uint64(2), g.Generation())
}

func TestModel_StepKey(t *testing.T) {
	m := newTestModel(t, 5)
	for _, x := range []int{1, 2, 3} {
		require.NoError(t, m.Game().Grid().Set(x, 2, true))
	}
	m = update(t, m, runeKey('n'))
	assert.Equal(t, uint64(1), m.Game().Generation())
	assert.False(t, m.Game().Playing())
}

func TestModel_CursorToggle(t *testing.T) {
	m := newTestModel(t, 4)
	assert.Equal(t, 2, m.cursorX)
	assert.Equal(t, 2, m.cursorY)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, m.Game().Grid().Alive(1, 1))

	// Cursor wraps at the edges.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 3, m.cursorY)
}

func TestModel_MouseClickToggles(t *testing.T) {
	m := newTestModel(t, 4)

	click := tea.MouseMsg{X: boardLeft + 3*cellWidth, Y: boardTop + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m = update(t, m, click)
	assert.True(t, m.Game().Grid().Alive(3, 1))
	assert.Equal(t, []life.Cell{{X: 3, Y: 1}}, m.Game().Grid().Cells())

	m = update(t, m, click)
	assert.False(t, m.Game().Grid().Alive(3, 1))

	// Border and outside clicks are ignored.
	for _, pos := range [][2]int{{0, 0}, {0, boardTop}, {boardLeft + 4*cellWidth, boardTop}, {boardLeft, boardTop + 4}} {
		update(t, m, tea.MouseMsg{X: pos[0], Y: pos[1], Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	}
	assert.Zero(t, m.Game().Grid().Population())

	// Releases do nothing.
	update(t, m, tea.MouseMsg{X: boardLeft, Y: boardTop, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.Zero(t, m.Game().Grid().Population())
}

func TestModel_Randomize(t *testing.T) {
	m := newTestModel(t, 16)
	m = update(t, m, runeKey('r'))
	first := m.Game().Grid().Cells()
	assert.NotEmpty(t, first)

	m = update(t, m, runeKey('r'))
	assert.NotEqual(t, first, m.Game().Grid().Cells(), "each randomize uses a new seed")
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, 4)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, next.View())
}

func TestModel_ViewLayout(t *testing.T) {
	m := newTestModel(t, 3)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	lines := strings.Split(m.View(), "\n")
	require.GreaterOrEqual(t, len(lines), 3+2+2)
	assert.Contains(t, lines[0], "Game of Life")
	assert.Contains(t, m.View(), "generation 0")
	assert.Contains(t, m.View(), "population 0")
	assert.Contains(t, m.View(), "every 0.5s")
}

func TestThemeFor(t *testing.T) {
	assert.False(t, ThemeFor("light").IsDark)
	assert.True(t, ThemeFor("dark").IsDark)

	t.Setenv("COLORFGBG", "15;0")
	assert.True(t, ThemeFor("auto").IsDark)
	t.Setenv("COLORFGBG", "0;15")
	assert.False(t, ThemeFor("auto").IsDark)

	t.Setenv("COLORFGBG", "")
	t.Setenv("LIFE_DARK_MODE", "0")
	assert.False(t, DetectTheme().IsDark)
}
