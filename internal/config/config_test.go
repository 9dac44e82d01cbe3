package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BRIGHTBOARD_STORAGE_PATH", filepath.Join(dir, "data", "bb.bolt"))

	cfg, err := Load(filepath.Join(dir, "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.APIPort != 8080 {
		t.Errorf("APIPort = %d, want 8080", cfg.Server.APIPort)
	}
	if cfg.Storage.Type != "bolt" {
		t.Errorf("Storage.Type = %q, want bolt", cfg.Storage.Type)
	}
	if cfg.Session.PollInterval != "1s" {
		t.Errorf("PollInterval = %q, want 1s", cfg.Session.PollInterval)
	}
	if _, err := os.Stat(filepath.Join(dir, "data")); err != nil {
		t.Errorf("storage directory was not created: %v", err)
	}
}

func TestLoad_FileOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  api_port: 9000
storage:
  type: memory
logging:
  level: debug
  format: text
games:
  advance_delay: 1500ms
  max_active_plays: 8
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.APIPort != 9000 {
		t.Errorf("APIPort = %d, want 9000", cfg.Server.APIPort)
	}
	if cfg.Storage.Type != "memory" {
		t.Errorf("Storage.Type = %q, want memory", cfg.Storage.Type)
	}
	if got := ParseDuration(cfg.Games.AdvanceDelay, 0); got != 1500*time.Millisecond {
		t.Errorf("AdvanceDelay = %v, want 1.5s", got)
	}
	if cfg.Games.MaxActivePlays != 8 {
		t.Errorf("MaxActivePlays = %d, want 8", cfg.Games.MaxActivePlays)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad port", "server:\n  api_port: 70000\nstorage:\n  type: memory\n"},
		{"bad storage", "storage:\n  type: floppy\n"},
		{"bad duration", "storage:\n  type: memory\nsession:\n  poll_interval: soon\n"},
		{"bad play bound", "storage:\n  type: memory\ngames:\n  max_active_plays: 0\n"},
		{"missing ui dir", "storage:\n  type: memory\nserver:\n  ui_dir: /nonexistent/brightboard-ui\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Errorf("Load() succeeded, want error")
			}
		})
	}
}

func TestParseDuration_Fallback(t *testing.T) {
	if got := ParseDuration("nope", 3*time.Second); got != 3*time.Second {
		t.Errorf("ParseDuration() = %v, want fallback", got)
	}
}
