package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golife/internal/config"
	"golife/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string
	workspace  string
	timeout    time.Duration

	// Loaded by PersistentPreRunE
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "life",
	Short: "Conway's Game of Life for the terminal and the browser",
	Long: `life runs Conway's Game of Life natively in the terminal and builds the
same engine for the browser as a WebAssembly module.

  life               play in the terminal
  life build web     compile to js/wasm and package the page
  life serve         serve the web build at http://localhost:8000

Run without arguments to start the terminal game.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	RunE: runPlay,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file (relative to the workspace)")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Minute, "Operation timeout for builds and verification")

	addPlayFlags(rootCmd)
	addPlayFlags(playCmd)
	buildCmd.Flags().Bool("verify", false, "Verify the web output after building")
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8000)")
	serveCmd.Flags().String("dir", "", "Directory to serve (default: the web output dir)")
	serveCmd.Flags().Bool("watch", false, "Rebuild the web target when Go sources change")
	serveCmd.Flags().Bool("no-build", false, "Serve the existing output without building first")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	os.Exit(execute())
}

// execute runs the root command and flushes the log sinks on every path,
// including failures, before main exits.
func execute() int {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// setup resolves the workspace, loads config and initializes logging. The
// terminal game owns the screen, so it logs to the configured file only.
func setup(cmd *cobra.Command) error {
	ws, err := resolveWorkspace()
	if err != nil {
		return err
	}
	workspace = ws

	loaded, err := config.Load(resolvePath(configPath))
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	if loaded.Logging.File != "" {
		loaded.Logging.File = resolvePath(loaded.Logging.File)
	}
	cfg = loaded

	quiet := cmd.Name() == "life" || cmd.Name() == "play"
	if err := logging.Initialize(cfg.Logging, logging.Options{Quiet: quiet, Verbose: verbose}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = logging.L()
	logging.BootDebug("workspace %s, config %s", workspace, configPath)
	return nil
}

func resolveWorkspace() (string, error) {
	ws := workspace
	if ws == "" {
		var err error
		if ws, err = os.Getwd(); err != nil {
			return "", err
		}
	}
	return filepath.Abs(ws)
}

// resolvePath makes p absolute relative to the workspace.
func resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workspace, p)
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			logger.Info("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
