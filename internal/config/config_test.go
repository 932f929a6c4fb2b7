package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		missingFile   bool
		expectError   bool
		errorContains string
		validate      func(*testing.T, *RawConfig)
	}{
		{
			name:        "missing file yields defaults",
			missingFile: true,
			validate: func(t *testing.T, r *RawConfig) {
				if r.Apply.Delay() != 500*time.Millisecond {
					t.Errorf("expected default delay 500ms, got %v", r.Apply.Delay())
				}
				if r.USB.PollInterval() != 2*time.Second {
					t.Errorf("expected default poll interval 2s, got %v", r.USB.PollInterval())
				}
				if r.USB.StopTimeout() != 2*time.Second {
					t.Errorf("expected default stop timeout 2s, got %v", r.USB.StopTimeout())
				}
				if *r.Notifications.Disabled {
					t.Error("notifications should be enabled by default")
				}
				if *r.General.ProfilesFile == "" {
					t.Error("profiles_file default should not be empty")
				}
			},
		},
		{
			name: "full config",
			content: `
[general]
profiles_file = "/tmp/profiles.json"
usb_config_file = "/tmp/usb.json"

[apply]
delay_ms = 100

[usb]
poll_interval_ms = 250
stop_timeout_ms = 1000

[notifications]
disabled = true
timeout_ms = 1500
`,
			validate: func(t *testing.T, r *RawConfig) {
				if *r.General.ProfilesFile != "/tmp/profiles.json" {
					t.Errorf("unexpected profiles_file: %s", *r.General.ProfilesFile)
				}
				if r.Apply.Delay() != 100*time.Millisecond {
					t.Errorf("expected delay 100ms, got %v", r.Apply.Delay())
				}
				if r.USB.PollInterval() != 250*time.Millisecond {
					t.Errorf("expected poll interval 250ms, got %v", r.USB.PollInterval())
				}
				if !*r.Notifications.Disabled {
					t.Error("notifications should be disabled")
				}
				if *r.Notifications.TimeoutMs != 1500 {
					t.Errorf("expected timeout 1500, got %d", *r.Notifications.TimeoutMs)
				}
			},
		},
		{
			name: "partial config keeps defaults elsewhere",
			content: `
[apply]
delay_ms = 0
`,
			validate: func(t *testing.T, r *RawConfig) {
				if r.Apply.Delay() != 0 {
					t.Errorf("expected zero delay, got %v", r.Apply.Delay())
				}
				if r.USB.PollInterval() != 2*time.Second {
					t.Errorf("expected default poll interval, got %v", r.USB.PollInterval())
				}
			},
		},
		{
			name: "negative delay rejected",
			content: `
[apply]
delay_ms = -1
`,
			expectError:   true,
			errorContains: "delay_ms",
		},
		{
			name: "zero poll interval rejected",
			content: `
[usb]
poll_interval_ms = 0
`,
			expectError:   true,
			errorContains: "poll_interval_ms",
		},
		{
			name: "empty profiles file rejected",
			content: `
[general]
profiles_file = ""
`,
			expectError:   true,
			errorContains: "profiles_file",
		},
		{
			name:          "invalid toml",
			content:       `[apply`,
			expectError:   true,
			errorContains: "TOML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var path string
			if tt.missingFile {
				path = filepath.Join(t.TempDir(), "does-not-exist.toml")
			} else {
				path = writeConfigFile(t, tt.content)
			}

			cfg, err := NewConfig(path)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errorContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg.Get())
			}
		})
	}
}

func TestReload(t *testing.T) {
	path := writeConfigFile(t, `
[apply]
delay_ms = 100
`)
	cfg, err := NewConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Get().Apply.Delay() != 100*time.Millisecond {
		t.Fatalf("expected 100ms, got %v", cfg.Get().Apply.Delay())
	}

	if err := os.WriteFile(path, []byte("[apply]\ndelay_ms = 200\n"), 0o600); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}
	if err := cfg.Reload(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if cfg.Get().Apply.Delay() != 200*time.Millisecond {
		t.Errorf("expected 200ms after reload, got %v", cfg.Get().Apply.Delay())
	}
}
