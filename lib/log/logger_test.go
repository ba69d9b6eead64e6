package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerPrintsModule(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewHandler(&out, nil))

	logger.Info("OpenGL version 4.1", slog.String("module", "gl"))

	line := out.String()
	assert.True(t, strings.HasSuffix(line, "INFO [gl] OpenGL version 4.1\n"), line)
	assert.NotContains(t, line, "\033[", "no colours when not writing to a terminal")
}

func TestHandlerWithoutModule(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewHandler(&out, nil))

	logger.Warn("careful")
	assert.True(t, strings.HasSuffix(out.String(), "WARN careful\n"))
}

func TestHandlerLevel(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewHandler(&out, &slog.HandlerOptions{Level: slog.LevelWarn}))

	logger.Info("hidden")
	logger.Debug("hidden")
	assert.Empty(t, out.String())

	logger.Error("shown")
	assert.Contains(t, out.String(), "ERROR shown")
}

func TestHandlerWithAttrs(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewHandler(&out, nil)).With(slog.String("module", "api"))

	logger.Info("one")
	logger.Info("two")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, "[api]")
	}
}
