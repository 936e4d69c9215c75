// ABOUTME: ufo configuration management
// ABOUTME: Handles the default data file, encoding, logging, and snapshot database settings

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harper/ufo/internal/storage"
)

// Config stores ufo configuration.
type Config struct {
	// DataFile is the sightings file used when --file is not given.
	// Supports ~ expansion. Defaults to ~/.local/share/ufo/sightings.csv.
	DataFile string `json:"data_file,omitempty"`

	// Encoding of data files: "utf-8" (default) or "latin1".
	Encoding string `json:"encoding,omitempty"`

	// Lenient skips malformed lines instead of refusing the whole file.
	Lenient bool `json:"lenient,omitempty"`

	// LogLevel is debug, info, warn (default), or error.
	LogLevel string `json:"log_level,omitempty"`

	// LogFile receives diagnostic logs instead of stderr when set.
	LogFile string `json:"log_file,omitempty"`

	// SnapshotDB is the SQLite database used by export/import --format sqlite.
	SnapshotDB string `json:"snapshot_db,omitempty"`
}

const (
	defaultDataFilename     = "sightings.csv"
	defaultSnapshotFilename = "ufo.db"
)

// GetDataFile returns the configured data file with ~ expanded.
func (c *Config) GetDataFile() string {
	if c.DataFile == "" {
		return filepath.Join(defaultDataDir(), defaultDataFilename)
	}
	return ExpandPath(c.DataFile)
}

// GetSnapshotDB returns the configured snapshot database path with ~ expanded.
func (c *Config) GetSnapshotDB() string {
	if c.SnapshotDB == "" {
		return filepath.Join(defaultDataDir(), defaultSnapshotFilename)
	}
	return ExpandPath(c.SnapshotDB)
}

// GetEncoding returns the configured encoding, defaulting to UTF-8.
func (c *Config) GetEncoding() string {
	if c.Encoding == "" {
		return storage.EncodingUTF8
	}
	return c.Encoding
}

// LoadOptions returns the storage options implied by the config.
func (c *Config) LoadOptions(logger *log.Logger) storage.LoadOptions {
	return storage.LoadOptions{
		Encoding: c.GetEncoding(),
		Lenient:  c.Lenient,
		Logger:   logger,
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.GetEncoding()) {
	case storage.EncodingUTF8, "utf8", storage.EncodingLatin1, "iso-8859-1":
	default:
		return fmt.Errorf("unknown encoding: %q", c.Encoding)
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("unknown log level: %q", c.LogLevel)
		}
	}
	return nil
}

// defaultDataDir returns the default XDG data directory for ufo.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "ufo")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "ufo", "config.json")
}

// Load reads config from disk. A missing file yields the defaults.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from XDG dirs
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk atomically.
func (c *Config) Save() error {
	path := GetConfigPath()
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // user config directory
		return fmt.Errorf("create config directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
