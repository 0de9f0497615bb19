// Package config loads the YAML configuration file that drives a
// valkeysnap run: where to connect, how to throttle the snapshot
// read, and how decoded entries should be turned into commands.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration document.
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Replay    ReplayConfig    `yaml:"replay"`
	Command   CommandConfig   `yaml:"command"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	Log       LogConfig       `yaml:"log"`

	path string
}

// SourceConfig addresses the Redis/Valkey primary to replicate from.
type SourceConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	TLS      bool   `yaml:"tls"`
}

// ReplayConfig addresses the destination commands are replayed to,
// when running in replay mode rather than dump mode.
type ReplayConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// CommandConfig bounds how decoded collections are chunked into
// replay-ready commands.
type CommandConfig struct {
	MaxElementsPerCommand int `yaml:"maxElementsPerCommand"`
	MaxBytesPerCommand    int `yaml:"maxBytesPerCommand"`
}

// RateLimitConfig bounds raw RDB byte throughput off the wire.
type RateLimitConfig struct {
	BytesPerSec int `yaml:"bytesPerSec"`
}

// LogConfig controls the process-wide logger.
type LogConfig struct {
	Dir    string `yaml:"dir"`
	Level  string `yaml:"level"`
	Prefix string `yaml:"prefix"`
}

// ValidationError collects configuration issues found during Validate.
type ValidationError struct {
	Path   string
	Errors []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid configuration")
	if e.Path != "" {
		b.WriteString(" (" + e.Path + ")")
	}
	for _, err := range e.Errors {
		b.WriteString("\n - ")
		b.WriteString(err)
	}
	return b.String()
}

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: path is empty")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolving path: %w", err)
	}

	raw, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", absPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", absPath, err)
	}
	cfg.path = absPath

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills in values a caller left unset.
func (c *Config) ApplyDefaults() {
	if c.Command.MaxElementsPerCommand <= 0 {
		c.Command.MaxElementsPerCommand = 1000
	}
	if c.Command.MaxBytesPerCommand <= 0 {
		c.Command.MaxBytesPerCommand = 4 * 1024 * 1024
	}
	if c.Log.Dir == "" {
		c.Log.Dir = "logs"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Prefix == "" {
		c.Log.Prefix = "valkeysnap"
	}
}

// Validate ensures the configuration is internally consistent.
func (c *Config) Validate() error {
	var errs []string

	if c.Source.Addr == "" {
		errs = append(errs, "source.addr is required")
	}
	if c.RateLimit.BytesPerSec < 0 {
		errs = append(errs, "rateLimit.bytesPerSec must be >= 0")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q is not one of debug|info|warn|error", c.Log.Level))
	}

	if len(errs) > 0 {
		return &ValidationError{Path: c.path, Errors: errs}
	}
	return nil
}

// LogLevelValue maps the configured log level string to a numeric
// level, for handing to internal/logger.Init.
func (c *Config) LogLevelValue() int {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return 0
	case "warn":
		return 2
	case "error":
		return 3
	default:
		return 1 // info
	}
}

// Path returns the absolute path this configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}
