package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "golife" {
		t.Errorf("expected Name=golife, got %s", cfg.Name)
	}
	if cfg.Serve.Addr != ":8000" {
		t.Errorf("expected Addr=:8000, got %s", cfg.Serve.Addr)
	}
	if cfg.Game.GridSize != 32 {
		t.Errorf("expected GridSize=32, got %d", cfg.Game.GridSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("LIFE_ADDR", "")
	t.Setenv("LIFE_OUT_DIR", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "life.yaml")

	cfg := DefaultConfig()
	cfg.Serve.Addr = "127.0.0.1:9000"
	cfg.Game.Topology = "torus"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Serve.Addr != "127.0.0.1:9000" {
		t.Errorf("expected Addr=127.0.0.1:9000, got %s", loaded.Serve.Addr)
	}
	if loaded.Game.Topology != "torus" {
		t.Errorf("expected Topology=torus, got %s", loaded.Game.Topology)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Build.WebOutDir != "web" {
		t.Errorf("expected default WebOutDir=web, got %s", cfg.Build.WebOutDir)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.yaml")
	if err := os.WriteFile(path, []byte("game:\n  grid_size: 12\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Game.GridSize != 12 {
		t.Errorf("expected GridSize=12, got %d", cfg.Game.GridSize)
	}
	if cfg.Game.UpdateFrequency != 0.5 {
		t.Errorf("expected default UpdateFrequency to survive, got %v", cfg.Game.UpdateFrequency)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.yaml")
	if err := os.WriteFile(path, []byte("game: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := map[string]func(*Config){
		"grid too small": func(c *Config) { c.Game.GridSize = 0 },
		"grid too large": func(c *Config) { c.Game.GridSize = 1000 },
		"bad topology":   func(c *Config) { c.Game.Topology = "sphere" },
		"empty addr":     func(c *Config) { c.Serve.Addr = "" },
		"shared out dir": func(c *Config) { c.Build.NativeOutDir = "./web" },
		"empty out dir":  func(c *Config) { c.Build.WebOutDir = "" },
		"bad log level":  func(c *Config) { c.Logging.Level = "loud" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfig_Durations(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.GetShutdownTimeout(); got != 5*time.Second {
		t.Errorf("GetShutdownTimeout = %v", got)
	}
	if got := cfg.GetWatchDebounce(); got != 500*time.Millisecond {
		t.Errorf("GetWatchDebounce = %v", got)
	}

	cfg.UX.FrameRate = "garbage"
	if got := cfg.GetFrameRate(); got != 50*time.Millisecond {
		t.Errorf("GetFrameRate fallback = %v", got)
	}
	cfg.Build.Timeout = "-1s"
	if got := cfg.GetBuildTimeout(); got != 5*time.Minute {
		t.Errorf("GetBuildTimeout fallback = %v", got)
	}
}

func TestConfig_Root(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Root() != "web" {
		t.Errorf("Root = %s, want web", cfg.Root())
	}
	cfg.Serve.Dir = "public"
	if cfg.Root() != "public" {
		t.Errorf("Root = %s, want public", cfg.Root())
	}
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	lc := LoggingConfig{}
	if !lc.IsCategoryEnabled("build") {
		t.Error("nil category map should enable everything")
	}
	lc.Categories = map[string]bool{"serve": false}
	if lc.IsCategoryEnabled("serve") {
		t.Error("serve should be disabled")
	}
	if !lc.IsCategoryEnabled("build") {
		t.Error("unlisted category should be enabled")
	}
}
