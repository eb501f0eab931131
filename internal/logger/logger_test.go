package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/config"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/logger"
)

func TestNewWithWriter_ProductionUsesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&config.Config{AppEnv: "production", LogLevel: slog.LevelInfo}, &buf)

	log.Info("✅ [Test] hello", "user_id", 7)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "✅ [Test] hello", entry["msg"])
	assert.Equal(t, float64(7), entry["user_id"])
}

func TestNewWithWriter_DevelopmentUsesText(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&config.Config{AppEnv: "development", LogLevel: slog.LevelInfo}, &buf)

	log.Info("hello", "user_id", 7)

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "user_id=7")
}

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&config.Config{LogLevel: slog.LevelWarn}, &buf)

	log.Info("dropped")
	log.Debug("dropped")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")

	log, closer, err := logger.NewFile(&config.Config{LogLevel: slog.LevelInfo}, path)
	require.NoError(t, err)

	log.Info("written to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestNewFile_BadPath(t *testing.T) {
	_, _, err := logger.NewFile(&config.Config{}, filepath.Join(t.TempDir(), "missing", "client.log"))
	assert.Error(t, err)
}
