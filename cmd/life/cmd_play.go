package main

import (
	"fmt"
	"os"
	"time"

	"golife/cmd/life/ui"
	"golife/internal/config"
	"golife/internal/life"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// playCmd runs the terminal game
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Opens the interactive board. Click a cell (or move with the arrow keys and
press space) to toggle it, p to play, x to pause, c to clear, +/- to change
the interval between generations.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().Int("size", 0, "Visible cells per side (default from config, 32)")
	cmd.Flags().String("topology", "", "bounded or torus (default from config)")
	cmd.Flags().String("pattern", "", "Builtin pattern name or pattern file to load")
	cmd.Flags().Float64("frequency", 0, "Seconds between generations, 0.1 to 2.0")
	cmd.Flags().Float64("random", 0, "Fill the board randomly with this density instead of a pattern")
	cmd.Flags().Int64("seed", 0, "Seed for --random and the r key (default: time based)")
}

// gameOptions are the effective settings after flags override config.
type gameOptions struct {
	Size      int
	Topology  string
	Pattern   string
	Frequency float64
	Random    float64
	Seed      int64
}

func resolveGameOptions(cmd *cobra.Command, gc config.GameConfig) gameOptions {
	opts := gameOptions{
		Size:      gc.GridSize,
		Topology:  gc.Topology,
		Pattern:   gc.Pattern,
		Frequency: gc.UpdateFrequency,
	}
	flags := cmd.Flags()
	if v, err := flags.GetInt("size"); err == nil && v > 0 {
		opts.Size = v
	}
	if v, err := flags.GetString("topology"); err == nil && v != "" {
		opts.Topology = v
	}
	if v, err := flags.GetString("pattern"); err == nil && v != "" {
		opts.Pattern = v
	}
	if v, err := flags.GetFloat64("frequency"); err == nil && v > 0 {
		opts.Frequency = v
	}
	if v, err := flags.GetFloat64("random"); err == nil {
		opts.Random = v
	}
	if v, err := flags.GetInt64("seed"); err == nil {
		opts.Seed = v
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return opts
}

// newGame builds the starting position.
func newGame(opts gameOptions) (*life.Game, error) {
	topology, err := life.ParseTopology(opts.Topology)
	if err != nil {
		return nil, err
	}
	g, err := life.NewGame(opts.Size, topology)
	if err != nil {
		return nil, err
	}
	if opts.Frequency > 0 {
		g.SetFrequency(opts.Frequency)
	}

	switch {
	case opts.Random > 0:
		g.Randomize(opts.Random, opts.Seed)
	case opts.Pattern != "":
		p, err := loadPattern(opts.Pattern)
		if err != nil {
			return nil, err
		}
		placed := g.LoadCentered(p)
		logger.Debug("Loaded pattern", zap.String("name", p.Name), zap.Int("cells", len(p.Cells)), zap.Int("placed", placed))
	}
	return g, nil
}

// loadPattern resolves a builtin name first, then a file in the workspace.
func loadPattern(name string) (*life.Pattern, error) {
	if p, ok := life.LookupPattern(name); ok {
		return p, nil
	}
	f, err := os.Open(resolvePath(name))
	if err != nil {
		return nil, fmt.Errorf("pattern %q is not builtin and could not be read: %w", name, err)
	}
	defer f.Close()
	p, err := life.ParsePattern(f)
	if err != nil {
		return nil, fmt.Errorf("pattern %s: %w", name, err)
	}
	return p, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	opts := resolveGameOptions(cmd, cfg.Game)
	g, err := newGame(opts)
	if err != nil {
		return err
	}
	logger.Info("Starting terminal game",
		zap.Int("size", opts.Size),
		zap.String("topology", g.Grid().Topology().String()),
		zap.Float64("frequency", g.Frequency()))

	model := ui.New(g, ui.Options{
		Theme:     cfg.UX.Theme,
		FrameRate: cfg.GetFrameRate(),
		Seed:      opts.Seed,
		Title:     cfg.Build.Title,
	})
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal game: %w", err)
	}
	return nil
}
