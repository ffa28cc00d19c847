// Package config loads the mincostflow CLI's configuration from (in
// increasing precedence) built-in defaults, an optional YAML file, and
// environment variables prefixed MINCOSTFLOW_.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// AppConfig names the running instance for logs and metrics.
type AppConfig struct {
	Name    string `koanf:"name"`
	Version string `koanf:"version"`
}

// LogConfig configures internal/obslog.
type LogConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	Output     string `koanf:"output"`
	FilePath   string `koanf:"file_path"`
	MaxSize    int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAge     int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig controls whether and where internal/telemetry serves
// Prometheus metrics.
type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
	Port    int  `koanf:"port"`
}

// SolverConfig exposes the cost-scaling solver's tuning knobs, mirroring
// flow.Options.
type SolverConfig struct {
	Verbose             bool `koanf:"verbose"`
	GlobalUpdateCadence int  `koanf:"global_update_cadence"`
}

// Config is the mincostflow CLI's full configuration.
type Config struct {
	App     AppConfig     `koanf:"app"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
	Solver  SolverConfig  `koanf:"solver"`
}

// Validate rejects values that would otherwise surface as confusing
// downstream failures.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: invalid log.level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("config: invalid log.format %q", c.Log.Format)
	}
	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		return fmt.Errorf("config: invalid metrics.port %d", c.Metrics.Port)
	}
	if c.Solver.GlobalUpdateCadence < 0 {
		return fmt.Errorf("config: solver.global_update_cadence must be non-negative")
	}
	return nil
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"app.name":                     "mincostflow",
		"app.version":                  "dev",
		"log.level":                    "info",
		"log.format":                   "json",
		"log.output":                   "stdout",
		"log.max_size_mb":              100,
		"log.max_backups":              3,
		"log.max_age_days":             28,
		"log.compress":                 true,
		"metrics.enabled":              false,
		"metrics.port":                 9090,
		"solver.verbose":               false,
		"solver.global_update_cadence": 0,
	}
}

// candidatePaths lists the file locations checked for a YAML config, in
// order, stopping at the first that exists.
var candidatePaths = []string{
	"mincostflow.yaml",
	"config/mincostflow.yaml",
	"/etc/mincostflow/config.yaml",
}

// Load builds a Config from defaults, an optional YAML file (CONFIG_PATH
// env var, or the first of candidatePaths that exists), and
// MINCOSTFLOW_-prefixed environment variables, in that order of increasing
// precedence.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path := resolveConfigPath(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load file %q: %w", path, err)
		}
	}

	transform := func(s string) string {
		s = strings.TrimPrefix(s, "MINCOSTFLOW_")
		return strings.ReplaceAll(strings.ToLower(s), "_", ".")
	}
	if err := k.Load(env.Provider("MINCOSTFLOW_", ".", transform), nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolveConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	for _, p := range candidatePaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
