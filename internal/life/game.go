package life

import (
	"math"
	"math/rand"
	"time"
)

// Update frequency bounds in seconds between generations.
const (
	MinFrequency     = 0.1
	MaxFrequency     = 2.0
	DefaultFrequency = 0.5
	DefaultSize      = 32
)

// Game wraps a Grid with playback state. It is not safe for concurrent use;
// front ends drive it from a single loop.
type Game struct {
	grid       *Grid
	playing    bool
	frequency  float64
	lastUpdate time.Duration
	generation uint64
}

// NewGame returns a paused game on an empty board.
func NewGame(size int, topology Topology) (*Game, error) {
	g, err := NewGrid(size, topology)
	if err != nil {
		return nil, err
	}
	return &Game{grid: g, frequency: DefaultFrequency}, nil
}

// Grid exposes the board for rendering and editing.
func (g *Game) Grid() *Grid { return g.grid }

// Playing reports whether generations advance on their own.
func (g *Game) Playing() bool { return g.playing }

// Generation is the number of steps taken since the last clear.
func (g *Game) Generation() uint64 { return g.generation }

// Frequency returns seconds between generations.
func (g *Game) Frequency() float64 { return g.frequency }

// Play starts automatic evolution.
func (g *Game) Play() { g.playing = true }

// Pause stops automatic evolution.
func (g *Game) Pause() { g.playing = false }

// Clear empties the board and pauses.
func (g *Game) Clear() {
	g.grid.Clear()
	g.playing = false
	g.generation = 0
}

// SetFrequency sets seconds between generations, clamped to
// [MinFrequency, MaxFrequency]. NaN resets to the default.
func (g *Game) SetFrequency(f float64) {
	g.frequency = ClampFrequency(f)
}

// ClampFrequency limits f to the supported range.
func ClampFrequency(f float64) float64 {
	switch {
	case math.IsNaN(f):
		return DefaultFrequency
	case f < MinFrequency:
		return MinFrequency
	case f > MaxFrequency:
		return MaxFrequency
	default:
		return f
	}
}

// Step advances exactly one generation regardless of playback state.
func (g *Game) Step() {
	g.grid.Step()
	g.generation++
}

// Advance steps once if the game is playing and at least Frequency seconds
// have passed since the last automatic step. now is a monotonic reading from
// the host clock. It reports whether a step happened.
func (g *Game) Advance(now time.Duration) bool {
	if !g.playing {
		return false
	}
	interval := time.Duration(g.frequency * float64(time.Second))
	if now-g.lastUpdate < interval {
		return false
	}
	g.Step()
	g.lastUpdate = now
	return true
}

// Randomize fills visible cells with the given density using seed.
func (g *Game) Randomize(density float64, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	g.grid.Clear()
	size := g.grid.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if rng.Float64() < density {
				_ = g.grid.Set(x, y, true)
			}
		}
	}
	g.generation = 0
}

// Load places p with its origin at (ox, oy). Cells landing off the board are
// dropped; the count of placed cells is returned.
func (g *Game) Load(p *Pattern, ox, oy int) int {
	placed := 0
	for _, c := range p.Cells {
		if err := g.grid.Set(c.X+ox, c.Y+oy, true); err == nil {
			placed++
		}
	}
	return placed
}

// LoadCentered places p in the middle of the board.
func (g *Game) LoadCentered(p *Pattern) int {
	w, h := p.Bounds()
	size := g.grid.Size()
	return g.Load(p, (size-w)/2, (size-h)/2)
}
