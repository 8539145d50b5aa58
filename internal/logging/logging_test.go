package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOutputRoutesLoggers(t *testing.T) {
	var structured, human bytes.Buffer
	SetOutput(&structured, &human, slog.LevelDebug)

	Structured().Info("structured message", "key", "value")
	HumanReadable().Info("human message")

	assert.Contains(t, structured.String(), `"msg":"structured message"`)
	assert.Contains(t, structured.String(), `"key":"value"`)
	assert.Contains(t, human.String(), "msg=\"human message\"")
}

func TestForServiceAttachesServiceAttribute(t *testing.T) {
	var structured, human bytes.Buffer
	SetOutput(&structured, &human, slog.LevelDebug)

	ForService("discovery").Info("adapter ready")

	assert.Contains(t, structured.String(), `"service":"discovery"`)
	assert.Contains(t, structured.String(), `"msg":"adapter ready"`)
}

func TestSetOutputHonorsLevel(t *testing.T) {
	var structured, human bytes.Buffer
	SetOutput(&structured, &human, slog.LevelInfo)

	Structured().Debug("too quiet")
	assert.Empty(t, structured.String())
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "service.log")

	logger, closeFn, err := NewFileLogger(path, "generator", slog.LevelInfo)
	require.NoError(t, err)

	logger.Info("document rendered", "cameras", 3)
	require.NoError(t, closeFn())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"service":"generator"`)
	assert.Contains(t, string(raw), `"msg":"document rendered"`)
	assert.Contains(t, string(raw), `"cameras":3`)
}

func TestNewFileLoggerFiltersByLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	logger, closeFn, err := NewFileLogger(path, "builder", slog.LevelWarn)
	require.NoError(t, err)

	logger.Info("below threshold")
	logger.Warn("kept")
	require.NoError(t, closeFn())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "below threshold")
	assert.Contains(t, string(raw), "kept")
}
