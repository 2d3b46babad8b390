package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("LIFE_ADDR sets serve address", func(t *testing.T) {
		t.Setenv("LIFE_ADDR", "localhost:8123")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "localhost:8123", cfg.Serve.Addr)
	})

	t.Run("LIFE_OUT_DIR moves web output and served root", func(t *testing.T) {
		t.Setenv("LIFE_OUT_DIR", "dist")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "dist", cfg.Build.WebOutDir)
		assert.Equal(t, "dist", cfg.Root())
	})

	t.Run("LIFE_GRID_SIZE parses integers", func(t *testing.T) {
		t.Setenv("LIFE_GRID_SIZE", "64")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, 64, cfg.Game.GridSize)
	})

	t.Run("LIFE_GRID_SIZE ignores garbage", func(t *testing.T) {
		t.Setenv("LIFE_GRID_SIZE", "huge")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, 32, cfg.Game.GridSize)
	})

	t.Run("LIFE_LOG_LEVEL and LIFE_GO", func(t *testing.T) {
		t.Setenv("LIFE_LOG_LEVEL", "debug")
		t.Setenv("LIFE_GO", "/opt/go/bin/go")

		cfg := &Config{}
		cfg.applyEnvOverrides()

		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "/opt/go/bin/go", cfg.Build.GoBinary)
	})

	t.Run("Empty values do not override", func(t *testing.T) {
		t.Setenv("LIFE_ADDR", "")
		t.Setenv("LIFE_OUT_DIR", "")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, ":8000", cfg.Serve.Addr)
		assert.Equal(t, "web", cfg.Build.WebOutDir)
	})
}
