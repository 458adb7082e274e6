package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/deadprop/deadprop/pkg/convention"
)

// Config holds all configuration options for deadprop.
type Config struct {
	// Per-check settings
	Checks ChecksConfig `koanf:"checks"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude"`

	// Cache settings
	Cache CacheConfig `koanf:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// ChecksConfig holds per-check configuration, keyed the same way checks are
// named in report output.
type ChecksConfig struct {
	UnusedPrivateProperty UnusedPrivatePropertyConfig `koanf:"unused_private_property"`
}

// UnusedPrivatePropertyConfig configures the unused private property check.
type UnusedPrivatePropertyConfig struct {
	// Enabled gates the check when running a full suite. The `check`
	// command runs it regardless.
	Enabled bool `koanf:"enabled"`

	// RegistryScope is "per-file" or "whole-compilation".
	RegistryScope string `koanf:"registry_scope"`

	// RenameFunctions are qualified names whose string-literal first
	// argument names a property and pins it.
	RenameFunctions []string `koanf:"rename_functions"`

	// MaxFileSize is the largest file to analyze in bytes (0 = no limit).
	MaxFileSize int64 `koanf:"max_file_size"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns   []string `koanf:"patterns"`
	Extensions []string `koanf:"extensions"`
	Dirs       []string `koanf:"dirs"`
	Gitignore  bool     `koanf:"gitignore"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
	TTL     int    `koanf:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Checks: ChecksConfig{
			UnusedPrivateProperty: UnusedPrivatePropertyConfig{
				Enabled:         false,
				RegistryScope:   "per-file",
				RenameFunctions: convention.DefaultRenameFunctions,
				MaxFileSize:     0,
			},
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*.min.js",
				"*.bundle.js",
				"*.d.ts",
			},
			Extensions: []string{
				".lock",
				".map",
			},
			Dirs: []string{
				"node_modules",
				"vendor",
				".git",
				".deadprop",
				"dist",
				"build",
				"coverage",
			},
			Gitignore: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".deadprop/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"deadprop.toml",
		"deadprop.yaml",
		"deadprop.yml",
		"deadprop.json",
		".deadprop.toml",
		".deadprop.yaml",
		".deadprop.yml",
		".deadprop.json",
	}
	searchDirs := []string{".", ".deadprop"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				if cfg, err := Load(path); err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}

// ShouldExclude checks if a path should be excluded from analysis.
func (c *Config) ShouldExclude(path string) bool {
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	ext := filepath.Ext(path)
	for _, excludeExt := range c.Exclude.Extensions {
		if ext == excludeExt {
			return true
		}
	}

	base := filepath.Base(path)
	for _, pattern := range c.Exclude.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}
