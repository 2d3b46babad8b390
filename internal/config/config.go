package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the workspace root.
const DefaultPath = "life.yaml"

// Config holds all golife configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Game engine defaults for both front ends
	Game GameConfig `yaml:"game"`

	// Native and web build targets
	Build BuildConfig `yaml:"build"`

	// Local static file server
	Serve ServeConfig `yaml:"serve"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Terminal front end
	UX UXConfig `yaml:"ux"`
}

// GameConfig configures a new game.
type GameConfig struct {
	GridSize        int     `yaml:"grid_size"`
	Topology        string  `yaml:"topology"`         // bounded, torus
	UpdateFrequency float64 `yaml:"update_frequency"` // seconds between generations
	Pattern         string  `yaml:"pattern"`          // builtin name or file path, optional
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "golife",
		Version: "0.3.0",

		Game: GameConfig{
			GridSize:        32,
			Topology:        "bounded",
			UpdateFrequency: 0.5,
		},

		Build: DefaultBuildConfig(),

		Serve: ServeConfig{
			Addr:            ":8000",
			Metrics:         true,
			Compress:        true,
			ShutdownTimeout: "5s",
			WatchDebounce:   "500ms",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},

		UX: UXConfig{
			Theme:     "auto",
			FrameRate: "50ms",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("LIFE_ADDR"); addr != "" {
		c.Serve.Addr = addr
	}
	if dir := os.Getenv("LIFE_OUT_DIR"); dir != "" {
		c.Build.WebOutDir = dir
	}
	if lvl := os.Getenv("LIFE_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
	if size := os.Getenv("LIFE_GRID_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil {
			c.Game.GridSize = n
		}
	}
	if goBin := os.Getenv("LIFE_GO"); goBin != "" {
		c.Build.GoBinary = goBin
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Game.GridSize < 1 || c.Game.GridSize > 512 {
		return fmt.Errorf("game.grid_size must be between 1 and 512, got %d", c.Game.GridSize)
	}
	switch c.Game.Topology {
	case "", "bounded", "torus":
	default:
		return fmt.Errorf("invalid game.topology: %s (valid: bounded, torus)", c.Game.Topology)
	}
	if c.Serve.Addr == "" {
		return fmt.Errorf("serve.addr must not be empty")
	}
	if c.Build.WebOutDir == "" || c.Build.NativeOutDir == "" {
		return fmt.Errorf("build output directories must not be empty")
	}
	if filepath.Clean(c.Build.WebOutDir) == filepath.Clean(c.Build.NativeOutDir) {
		return fmt.Errorf("build.web_out_dir and build.native_out_dir must differ")
	}
	if !c.Logging.ValidLevel() {
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}
	return nil
}

// GetShutdownTimeout returns the server shutdown grace period.
func (c *Config) GetShutdownTimeout() time.Duration {
	return parseDuration(c.Serve.ShutdownTimeout, 5*time.Second)
}

// GetWatchDebounce returns the quiet period before a watch rebuild.
func (c *Config) GetWatchDebounce() time.Duration {
	return parseDuration(c.Serve.WatchDebounce, 500*time.Millisecond)
}

// GetFrameRate returns the terminal redraw interval.
func (c *Config) GetFrameRate() time.Duration {
	return parseDuration(c.UX.FrameRate, 50*time.Millisecond)
}

// GetBuildTimeout returns the per-target build timeout.
func (c *Config) GetBuildTimeout() time.Duration {
	return parseDuration(c.Build.Timeout, 5*time.Minute)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
