package main

import (
	"testing"
	"time"

	"golife/internal/life"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame_Defaults(t *testing.T) {
	g, err := newGame(startOptions{})
	require.NoError(t, err)
	assert.Equal(t, life.DefaultSize, g.Grid().Size())
	assert.Equal(t, life.DefaultFrequency, g.Frequency())
	assert.Equal(t, life.Bounded, g.Grid().Topology())
	assert.Zero(t, g.Grid().Population())
}

func TestNewGame_Options(t *testing.T) {
	g, err := newGame(startOptions{Size: 9, Topology: "torus", Frequency: 5, Pattern: "glider"})
	require.NoError(t, err)
	assert.Equal(t, 9, g.Grid().Size())
	assert.Equal(t, life.Torus, g.Grid().Topology())
	assert.Equal(t, life.MaxFrequency, g.Frequency())
	assert.Equal(t, 5, g.Grid().Population())
}

func TestNewGame_UnknownPattern(t *testing.T) {
	_, err := newGame(startOptions{Pattern: "spaceship-42"})
	assert.Error(t, err)
}

func TestCellAt(t *testing.T) {
	const size = 32
	px := float64(canvasPixels(size))

	tests := []struct {
		name             string
		ox, oy           float64
		clientW, clientH float64
		wantX, wantY     int
		wantOK           bool
	}{
		{"origin", 0, 0, px, px, 0, 0, true},
		{"inside first cell", 19.9, 19.9, px, px, 0, 0, true},
		{"second cell", 20, 40, px, px, 1, 2, true},
		{"last cell", px - 2, px - 2, px, px, size - 1, size - 1, true},
		{"closing grid line", px - 0.5, 10, px, px, 0, 0, false},
		{"scaled down by css", 10, 10, px / 2, px / 2, 1, 1, true},
		{"negative", -1, 5, px, px, 0, 0, false},
		{"unlaid out canvas", 5, 5, 0, 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := cellAt(tt.ox, tt.oy, tt.clientW, tt.clientH, size)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantX, x)
				assert.Equal(t, tt.wantY, y)
			}
		})
	}
}

func TestStatusText(t *testing.T) {
	g, err := life.NewGame(4, life.Bounded)
	require.NoError(t, err)
	require.NoError(t, g.Grid().Set(1, 1, true))
	assert.Equal(t, "Paused · generation 0 · population 1", statusText(g))

	g.Play()
	g.Step()
	assert.Equal(t, "Playing · generation 1 · population 0", statusText(g))
}

func TestMsToDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, msToDuration(1500))
	assert.Equal(t, 16*time.Millisecond+500*time.Microsecond, msToDuration(16.5))
}
