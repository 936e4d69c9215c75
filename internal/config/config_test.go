// ABOUTME: Tests for ufo config functionality
// ABOUTME: Verifies config load, save, path resolution, and defaults

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harper/ufo/internal/storage"
)

func TestGetConfigPathWithXDGConfigHome(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	path := GetConfigPath()
	if !strings.HasPrefix(path, tmpDir) {
		t.Errorf("GetConfigPath should use XDG_CONFIG_HOME, got %s", path)
	}
	if !strings.HasSuffix(path, filepath.Join("ufo", "config.json")) {
		t.Errorf("GetConfigPath should end with ufo/config.json, got %s", path)
	}
}

func TestGetConfigPathWithoutXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	path := GetConfigPath()
	if !strings.Contains(path, ".config") {
		t.Errorf("GetConfigPath should use .config fallback, got %s", path)
	}
}

func TestLoadNonExistent(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("XDG_DATA_HOME", tmpDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed on non-existent config: %v", err)
	}
	if cfg.GetDataFile() != filepath.Join(tmpDir, "ufo", "sightings.csv") {
		t.Errorf("unexpected default data file %q", cfg.GetDataFile())
	}
	if cfg.GetSnapshotDB() != filepath.Join(tmpDir, "ufo", "ufo.db") {
		t.Errorf("unexpected default snapshot db %q", cfg.GetSnapshotDB())
	}
	if cfg.GetEncoding() != storage.EncodingUTF8 {
		t.Errorf("expected utf-8 default, got %q", cfg.GetEncoding())
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := &Config{DataFile: "~/ufo/scrubbed.csv", Encoding: "latin1", Lenient: true, LogLevel: "debug"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", *loaded, *cfg)
	}

	home, _ := os.UserHomeDir()
	if loaded.GetDataFile() != filepath.Join(home, "ufo", "scrubbed.csv") {
		t.Errorf("expected ~ expansion, got %q", loaded.GetDataFile())
	}

	opts := loaded.LoadOptions(nil)
	if opts.Encoding != "latin1" || !opts.Lenient {
		t.Errorf("unexpected load options %+v", opts)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{nope"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestValidate(t *testing.T) {
	if err := (&Config{}).Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if err := (&Config{Encoding: "ebcdic"}).Validate(); err == nil {
		t.Error("expected error for unknown encoding")
	}
	if err := (&Config{LogLevel: "loud"}).Validate(); err == nil {
		t.Error("expected error for unknown log level")
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"~", home},
		{"~/data", filepath.Join(home, "data")},
		{"/abs/path", "/abs/path"},
		{"relative/path", "relative/path"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.input); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
