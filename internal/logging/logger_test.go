package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"golife/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, lc config.LoggingConfig) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	Replace(zap.New(core), lc)
	t.Cleanup(func() { Replace(zap.NewNop(), config.LoggingConfig{}) })
	return logs
}

func TestGet_NamesLoggerByCategory(t *testing.T) {
	logs := observe(t, config.LoggingConfig{})

	Build("compiled %s", "web")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "build", entries[0].LoggerName)
	assert.Equal(t, "compiled web", entries[0].Message)
}

func TestGet_DisabledCategoryIsNop(t *testing.T) {
	logs := observe(t, config.LoggingConfig{Categories: map[string]bool{"serve": false}})

	Serve("should not appear")
	Watch("should appear")

	assert.False(t, IsCategoryEnabled(CategoryServe))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "watch", logs.All()[0].LoggerName)
}

func TestGet_ConcurrentAccess(t *testing.T) {
	observe(t, config.LoggingConfig{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = Get(CategoryGame)
		}()
	}
	wg.Wait()
	assert.Same(t, Get(CategoryGame), Get(CategoryGame))
}

func TestTimer(t *testing.T) {
	logs := observe(t, config.LoggingConfig{})

	timer := StartTimer(CategoryVerify, "compile")
	elapsed := timer.StopWithInfo()

	assert.GreaterOrEqual(t, int64(elapsed), int64(0))
	require.Equal(t, 1, logs.FilterMessage("operation finished").Len())
	assert.Equal(t, "compile", logs.All()[0].ContextMap()["op"])
}

func TestInitialize_WritesFile(t *testing.T) {
	t.Cleanup(func() { Replace(zap.NewNop(), config.LoggingConfig{}) })
	path := filepath.Join(t.TempDir(), "logs", "life.log")

	err := Initialize(config.LoggingConfig{Level: "info", Format: "json", File: path}, Options{Quiet: true})
	require.NoError(t, err)

	Serve("listening on %s", ":8000")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"msg":"listening on :8000"`), string(data))
	assert.True(t, strings.Contains(string(data), `"logger":"serve"`), string(data))
}

func TestInitialize_RejectsBadSettings(t *testing.T) {
	t.Cleanup(func() { Replace(zap.NewNop(), config.LoggingConfig{}) })

	assert.Error(t, Initialize(config.LoggingConfig{Level: "chatty"}, Options{Quiet: true}))
	assert.Error(t, Initialize(config.LoggingConfig{Format: "xml"}, Options{Quiet: true}))
}

func TestInitialize_QuietWithoutFileIsNop(t *testing.T) {
	t.Cleanup(func() { Replace(zap.NewNop(), config.LoggingConfig{}) })

	require.NoError(t, Initialize(config.LoggingConfig{}, Options{Quiet: true}))
	assert.False(t, L().Core().Enabled(zapcore.ErrorLevel))
}
