package main

import (
	"fmt"
	"math"
	"time"

	"golife/internal/life"
)

// Canvas look.
const (
	cellPixels = 20
	gridColor  = "white"
	aliveColor = "red"
	deadColor  = "black"
)

// startOptions is what the page passes to golife.start.
type startOptions struct {
	Size      int
	Topology  string
	Frequency float64
	Pattern   string
}

func (o startOptions) withDefaults() startOptions {
	if o.Size <= 0 {
		o.Size = life.DefaultSize
	}
	if o.Frequency <= 0 || math.IsNaN(o.Frequency) {
		o.Frequency = life.DefaultFrequency
	}
	return o
}

// newGame builds the starting position for the page.
func newGame(o startOptions) (*life.Game, error) {
	o = o.withDefaults()
	topology, err := life.ParseTopology(o.Topology)
	if err != nil {
		return nil, err
	}
	g, err := life.NewGame(o.Size, topology)
	if err != nil {
		return nil, err
	}
	g.SetFrequency(o.Frequency)
	if o.Pattern != "" {
		p, ok := life.LookupPattern(o.Pattern)
		if !ok {
			return nil, fmt.Errorf("unknown pattern %q", o.Pattern)
		}
		g.LoadCentered(p)
	}
	return g, nil
}

// canvasPixels is the drawing size for a board; the extra pixel holds the
// closing grid line.
func canvasPixels(size int) int {
	return size*cellPixels + 1
}

// cellAt maps a click at CSS offset (ox, oy) on a canvas displayed at
// clientW x clientH to a visible cell. The canvas may be scaled by CSS, so
// offsets are converted to canvas pixels first.
func cellAt(ox, oy, clientW, clientH float64, size int) (x, y int, ok bool) {
	if clientW <= 0 || clientH <= 0 {
		return 0, 0, false
	}
	px := canvasPixels(size)
	cx := ox * float64(px) / clientW
	cy := oy * float64(px) / clientH
	if cx < 0 || cy < 0 {
		return 0, 0, false
	}
	x, y = int(cx)/cellPixels, int(cy)/cellPixels
	if x >= size || y >= size {
		return 0, 0, false
	}
	return x, y, true
}

// statusText is shown next to the controls.
func statusText(g *life.Game) string {
	state := "Paused"
	if g.Playing() {
		state = "Playing"
	}
	return fmt.Sprintf("%s · generation %d · population %d", state, g.Generation(), g.Grid().Population())
}

// msToDuration converts a performance.now() reading.
func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
