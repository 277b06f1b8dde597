package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration, read from ~/.tears/config.json.
type Config struct {
	// ItemMaxChars caps the character count of an item's detail text.
	ItemMaxChars int `json:"item_max_chars"`

	// AllowedPaths lists extra directories where import/export files may
	// live, beyond the default ~/.tears/exports. Entries must be absolute;
	// relative ones are ignored.
	AllowedPaths []string `json:"allowed_paths,omitempty"`

	// AllowUnsafePaths lifts the directory allowlist for import/export.
	// Symlink and extension checks still apply.
	AllowUnsafePaths bool `json:"allow_unsafe_paths,omitempty"`

	// DBMaxOpenConns caps open database connections. Setting it to 1
	// serializes all access, which avoids "database is locked" errors
	// under contention. Zero keeps the sql.DB default.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns caps idle database connections. Zero keeps the
	// sql.DB default.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools names MCP tools to leave unregistered. Unknown names
	// produce a startup warning.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// DisabledTypes disables whole tool groups ("item", "suggest",
	// "mood"). Unknown names produce a startup warning.
	DisabledTypes []string `json:"disabled_types,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ItemMaxChars: 4000,
	}
}

// Load reads baseDir/config.json merged over the defaults. A missing file
// yields the defaults. Tests pass t.TempDir() as baseDir.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// loadFileRaw reads one config file as-is. A missing file is a zero config,
// not the defaults, so Merge can tell "unset" from "set to default".
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge layers overlay on top of base. Non-zero overlay scalars win, a true
// boolean on either side sticks, and slices are unioned.
func Merge(base, overlay *Config) *Config {
	return &Config{
		ItemMaxChars:     pickInt(base.ItemMaxChars, overlay.ItemMaxChars),
		DBMaxOpenConns:   pickInt(base.DBMaxOpenConns, overlay.DBMaxOpenConns),
		DBMaxIdleConns:   pickInt(base.DBMaxIdleConns, overlay.DBMaxIdleConns),
		AllowUnsafePaths: base.AllowUnsafePaths || overlay.AllowUnsafePaths,
		AllowedPaths:     mergeStringSlice(base.AllowedPaths, overlay.AllowedPaths),
		DisabledTools:    mergeStringSlice(base.DisabledTools, overlay.DisabledTools),
		DisabledTypes:    mergeStringSlice(base.DisabledTypes, overlay.DisabledTypes),
	}
}

func pickInt(base, overlay int) int {
	if overlay != 0 {
		return overlay
	}
	return base
}

// mergeStringSlice unions two slices, trimming whitespace and dropping
// duplicates and empties. An empty union stays nil.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	return result
}
