// Package config provides configuration management for geocons.
//
// Config file locations (priority order):
//  1. --config flag
//  2. $GEOCONS_CONFIG
//  3. ./geocons.yaml
//  4. $XDG_CONFIG_HOME/geocons/config.yaml
//  5. ~/.config/geocons/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/geocons/internal/consolidation"
	"github.com/alexiusacademia/geocons/internal/reconcile"
)

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "GEOCONS_CONFIG"
	// ConfigFileName is the default config file name
	ConfigFileName = "geocons.yaml"
	// ConfigDirName is the config directory name under XDG
	ConfigDirName = "geocons"
)

// Config is the geocons configuration.
type Config struct {
	LogLevel  string              `yaml:"log_level"`
	OutputDir string              `yaml:"output_dir"`
	Database  DatabaseConfig      `yaml:"database"`
	Matching  MatchingConfig      `yaml:"matching"`
	Drain     consolidation.Drain `yaml:"drain"`
}

// DatabaseConfig locates the run catalogue.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// MatchingConfig holds the polygon matching tolerances.
type MatchingConfig struct {
	AreaTolerance   float64 `yaml:"area_tolerance"`
	VertexTolerance float64 `yaml:"vertex_tolerance"`
}

// Options converts the tolerances for the matcher.
func (m MatchingConfig) Options() reconcile.Options {
	return reconcile.Options{AreaTolerance: m.AreaTolerance, VertexTolerance: m.VertexTolerance}
}

// Load finds and loads the config file, or returns defaults if none found.
// An explicit path takes precedence over the search.
func Load(explicit string) (*Config, string, error) {
	if explicit != "" {
		return LoadFromPath(explicit)
	}

	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("config %s: %w", path, err)
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns the defaults used when no config file exists.
// The drain is the reference installation the closed-form checks were
// calibrated against.
func DefaultConfig() *Config {
	opts := reconcile.DefaultOptions()
	return &Config{
		LogLevel:  "info",
		OutputDir: "./output",
		Database:  DatabaseConfig{Path: defaultDatabasePath()},
		Matching: MatchingConfig{
			AreaTolerance:   opts.AreaTolerance,
			VertexTolerance: opts.VertexTolerance,
		},
		Drain: consolidation.Drain{Ch: 0.869, Diameter: 0.064, InfluenceDiameter: 1.133},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if c.Database.Path == "" {
		c.Database.Path = d.Database.Path
	}
	if c.Matching.AreaTolerance == 0 {
		c.Matching.AreaTolerance = d.Matching.AreaTolerance
	}
	if c.Matching.VertexTolerance == 0 {
		c.Matching.VertexTolerance = d.Matching.VertexTolerance
	}
	if c.Drain == (consolidation.Drain{}) {
		c.Drain = d.Drain
	}
}

// Validate rejects settings the tools cannot work with.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if !(c.Matching.AreaTolerance > 0) {
		return fmt.Errorf("matching.area_tolerance must be positive")
	}
	if !(c.Matching.VertexTolerance > 0) {
		return fmt.Errorf("matching.vertex_tolerance must be positive")
	}
	if err := c.Drain.Validate(); err != nil {
		return fmt.Errorf("drain: %w", err)
	}
	return nil
}

// FindConfigPath searches for the config file in priority order and
// returns an empty string if none is found.
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		if fileExists(path) {
			return path
		}
	}

	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		path := filepath.Join(xdgHome, ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	if home := os.Getenv("HOME"); home != "" {
		path := filepath.Join(home, ".config", ConfigDirName, "config.yaml")
		if fileExists(path) {
			return path
		}
	}

	return ""
}

func defaultDatabasePath() string {
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".local", "share", ConfigDirName, "runs.db")
	}
	return "./geocons.db"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
