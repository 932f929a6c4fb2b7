// Package testutils provides utils for testing
// should not be imported by any other app packages
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mzdunek/monitorwatcher/internal/config"
	"github.com/stretchr/testify/require"
)

// Settings writes content as a temporary settings file and loads it.
func Settings(t *testing.T, content string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	cfg, err := config.NewConfig(path)
	require.NoError(t, err)
	return cfg
}

// FastSettings returns settings tuned for tests: no apply delay and a short
// USB poll interval.
func FastSettings(t *testing.T) *config.Config {
	t.Helper()
	return Settings(t, `
[apply]
delay_ms = 0

[usb]
poll_interval_ms = 10
stop_timeout_ms = 500

[notifications]
disabled = true
`)
}

// WriteFile creates a file with content under dir and returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
