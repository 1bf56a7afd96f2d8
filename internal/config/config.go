package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// DirName is the per-workspace configuration directory.
const DirName = ".searchops"

// Config represents the flat searchops configuration.
type Config struct {
	Version  string `json:"version"`
	DBPath   string `json:"db_path,omitempty"` // empty means $SEARCHOPS_DB or ~/.searchops/searchops.db
	LogLevel string `json:"log_level"`         // debug, info, warn, error
	// LogFormat is "json" or "console".
	LogFormat       string `json:"log_format"`
	HTTPAddr        string `json:"http_addr"`
	DefaultSearchID string `json:"default_search_id,omitempty"`

	AutoAssignRetries int      `json:"auto_assign_retries"`
	DriverGenders     []string `json:"driver_genders"`
	MinWitnesses      int      `json:"min_witnesses"`
	MinOfficials      int      `json:"min_officials"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Version:           "1",
		LogLevel:          "info",
		LogFormat:         "console",
		HTTPAddr:          ":8080",
		AutoAssignRetries: 3,
		DriverGenders:     []string{"MALE"},
		MinWitnesses:      2,
		MinOfficials:      2,
	}
}

// LoadConfig reads .searchops/config.json from the specified directory.
// Fields absent from the file keep their defaults.
func LoadConfig(dir string) (*Config, error) {
	path := Path(dir)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault reads the config in dir, falling back to Default when the
// file does not exist. A file that exists but is malformed is an error.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// SaveConfig writes config.json to directory.
func SaveConfig(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, DirName)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", DirName, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Path returns the config file location for dir.
func Path(dir string) string {
	return filepath.Join(dir, DirName, "config.json")
}

// Validate checks the allocation policy values.
func (c *Config) Validate() error {
	if c.AutoAssignRetries < 1 {
		return fmt.Errorf("auto_assign_retries must be at least 1, got %d", c.AutoAssignRetries)
	}
	if c.MinWitnesses < 0 || c.MinOfficials < 0 {
		return fmt.Errorf("min_witnesses and min_officials must not be negative")
	}
	for _, g := range c.DriverGenders {
		if !slices.Contains([]string{"MALE", "FEMALE", "OTHER"}, g) {
			return fmt.Errorf("driver_genders: unknown gender %q", g)
		}
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log_format must be json or console, got %q", c.LogFormat)
	}
	return nil
}
