package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "quizdeck.log")

	log, err := New(config.LogConfig{Level: "info", File: path})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("visible")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
	assert.NotContains(t, string(data), "hidden")
}

func TestNewDebugUsesConsoleEncoder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	log, err := New(config.LogConfig{Level: "debug", File: path})
	require.NoError(t, err)
	log.Debug("details")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "details")
	assert.NotContains(t, string(data), `"msg"`)
}

func TestNewOff(t *testing.T) {
	log, err := New(config.LogConfig{Level: "off", File: "/nonexistent/x.log"})
	require.NoError(t, err)
	assert.NotNil(t, log)

	log, err = New(config.LogConfig{Level: "info"})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud", File: filepath.Join(t.TempDir(), "x.log")})
	assert.Error(t, err)
}
