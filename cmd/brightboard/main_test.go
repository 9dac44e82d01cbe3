package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goodtune/brightboard/internal/config"
	"github.com/goodtune/brightboard/internal/storage"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestParentCommands(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, "storage:\n  type: bolt\n  path: "+filepath.Join(dir, "bb.bolt")+"\n")

	steps := []struct {
		args []string
		want string
	}{
		{[]string{"settings", "show"}, "unlimited"},
		{[]string{"session", "start", "10"}, "active"},
		{[]string{"session", "status"}, "10 minutes"},
		{[]string{"session", "end"}, "unconfigured"},
		{[]string{"progress", "reset"}, "Progress reset"},
		{[]string{"progress", "show"}, "No games completed yet."},
	}

	for _, step := range steps {
		out, err := execute(t, append([]string{"-c", cfgPath}, step.args...)...)
		if err != nil {
			t.Fatalf("%v: error = %v\n%s", step.args, err, out)
		}
		if !strings.Contains(out, step.want) {
			t.Errorf("%v: output %q does not contain %q", step.args, out, step.want)
		}
	}
}

func TestSessionStart_RequiresLength(t *testing.T) {
	cfgPath := writeConfig(t, "storage:\n  type: memory\n")

	if _, err := execute(t, "-c", cfgPath, "session", "start"); err == nil {
		t.Errorf("session start without a length succeeded")
	}
}

func TestValidate_UnknownKeys(t *testing.T) {
	cfgPath := writeConfig(t, "storage:\n  type: memory\ngames:\n  advance_dealy: 2s\n")

	out, err := execute(t, "-c", cfgPath, "validate", "--dump")
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}
	if !strings.Contains(out, "Configuration is valid") {
		t.Errorf("output missing validity line: %s", out)
	}
	if !strings.Contains(out, "games.advance_dealy") {
		t.Errorf("output missing unknown key: %s", out)
	}
	if !strings.Contains(out, "type = memory  (modified from default: bolt)") {
		t.Errorf("output missing highlighted storage type: %s", out)
	}
}

func TestOpenStorage(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.StorageConfig
		cached  bool
		wantErr bool
	}{
		{"memory", config.StorageConfig{Type: "memory"}, false, false},
		{"memory cached", config.StorageConfig{Type: "memory", CacheSize: 4}, true, false},
		{"bolt", config.StorageConfig{Type: "bolt", Path: filepath.Join(dir, "a.bolt")}, false, false},
		{"floppy", config.StorageConfig{Type: "floppy"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := openStorage(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("openStorage() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer store.Close()

			if _, ok := store.(*storage.CachedStore); ok != tt.cached {
				t.Errorf("cached = %v, want %v", ok, tt.cached)
			}
		})
	}
}
