package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightdeck/companion/internal/config"
)

func TestSetup_ContextProviderAddsAttrs(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()

	airport := "KLAS"
	m.Setup(&buf, "info", func() []slog.Attr {
		return []slog.Attr{slog.String("airport", airport)}
	})

	m.Logger().Info("first")
	airport = "KSFO"
	m.Logger().Info("second")

	out := buf.String()
	assert.Contains(t, out, "airport=KLAS")
	assert.Contains(t, out, "airport=KSFO")
}

func TestSetup_ExtraHandlers(t *testing.T) {
	var file, warnings bytes.Buffer
	m := NewSlogManager()
	m.Setup(&file, "debug", nil, slog.NewTextHandler(&warnings, &slog.HandlerOptions{Level: slog.LevelWarn}))

	m.Logger().Info("routine")
	m.Logger().Warn("favorites write failed")

	assert.Contains(t, file.String(), "routine")
	assert.Contains(t, file.String(), "favorites write failed")
	assert.NotContains(t, warnings.String(), "routine")
	assert.Contains(t, warnings.String(), "favorites write failed")
}

func TestSetupFile_WritesRotatingFile(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

	m := NewSlogManager()
	path := m.SetupFile(config.LoggingConfig{Level: "info", Dir: dir, MaxSizeMB: 1}, "companion", start, nil)
	m.Logger().Info("written to disk")
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	assert.Equal(t, filepath.Join(dir, "companion.20261019_083000.log"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to disk")
}

func TestWriter_DefaultsToStdout(t *testing.T) {
	m := NewSlogManager()
	assert.Equal(t, osStdout, m.Writer())
}

func TestNewRotatingFile_Defaults(t *testing.T) {
	w := NewRotatingFile("/tmp/x.log", 0, 2)
	assert.Equal(t, "/tmp/x.log", w.Filename)
	assert.Equal(t, 32, w.MaxSize)
	assert.Equal(t, 2, w.MaxBackups)
}

func TestContextHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, nil)
	h := NewContextHandler(inner, func() []slog.Attr { return []slog.Attr{slog.Int("subscribers", 3)} })

	logger := slog.New(h.WithAttrs([]slog.Attr{slog.String("store", "selection")}))
	logger.Info("published")

	out := buf.String()
	assert.Contains(t, out, "store=selection")
	assert.Contains(t, out, "subscribers=3")

	assert.Equal(t, h, h.WithGroup(""))
}

func TestNewZerolog(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, "WARN")

	log.Info().Msg("hidden")
	log.Warn().Str("path", "companion.db").Msg("slow open")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "slow open", entry["message"])
	assert.Equal(t, "database", entry["component"])
	assert.Equal(t, "companion.db", entry["path"])
}

func TestNewZerolog_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, "chatty")

	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
