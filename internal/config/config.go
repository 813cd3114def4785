// Package config loads the optional .integrity-report.yaml file and merges
// it with command-line flags. Flags win over the file, the file wins over
// defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory and under
// the user config dir.
const FileName = ".integrity-report.yaml"

// Defaults.
const (
	DefaultPattern     = "**/*.xml"
	DefaultStaleMargin = 2000 // milliseconds
	DefaultLogLevel    = "info"
)

// AppConfig is the merged application configuration.
type AppConfig struct {
	// Pattern is the report file glob, resolved against the scan root.
	Pattern string `yaml:"pattern"`
	// StaleMarginMs widens the staleness window, in milliseconds.
	StaleMarginMs int `yaml:"stale_margin_ms"`
	// IgnoreStale disables the staleness filter.
	IgnoreStale bool `yaml:"ignore_stale"`
	// Strict fails the build on test problems instead of marking it
	// unstable.
	Strict bool `yaml:"strict"`
	// IgnoreNoResults keeps an empty batch from failing the build.
	IgnoreNoResults bool `yaml:"ignore_no_results"`
	// Workers sets the parse pool size; zero auto-sizes.
	Workers int `yaml:"workers"`
	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
	// Entities adds named entities for HTML-wrapped reports, e.g.
	// "eacute: é".
	Entities map[string]string `yaml:"entities"`
}

// Load reads the config file if one exists and returns it merged over the
// defaults. A missing file is not an error.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Pattern:       DefaultPattern,
		StaleMarginMs: DefaultStaleMargin,
		LogLevel:      DefaultLogLevel,
	}

	path := findConfigFile()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	var fileCfg AppConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}

	if fileCfg.Pattern != "" {
		cfg.Pattern = fileCfg.Pattern
	}
	if fileCfg.StaleMarginMs > 0 {
		cfg.StaleMarginMs = fileCfg.StaleMarginMs
	}
	cfg.IgnoreStale = fileCfg.IgnoreStale
	cfg.Strict = fileCfg.Strict
	cfg.IgnoreNoResults = fileCfg.IgnoreNoResults
	if fileCfg.Workers > 0 {
		cfg.Workers = fileCfg.Workers
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.Entities != nil {
		cfg.Entities = fileCfg.Entities
	}
	return cfg, nil
}

// findConfigFile checks the working directory first, then the user config
// dir (e.g. ~/.config/integrity-report/).
func findConfigFile() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "integrity-report", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
