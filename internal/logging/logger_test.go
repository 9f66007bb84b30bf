package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestNewHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, "info", "json"))

	logger.Debug("hidden")
	logger.Info("visible", "code", "0101.21-000")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"code":"0101.21-000"`)
}

func TestFromContext(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	logger := slog.New(NewHandler(&bytes.Buffer{}, "info", "text"))
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestSetup_WritesToFile(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	file := filepath.Join(t.TempDir(), "logs", "tonban_api.log")
	closer, err := Setup("info", "text", file)
	require.NoError(t, err)

	slog.Info("server starting")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "server starting")
}
