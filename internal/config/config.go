// Package config provides configuration loading and validation for the gid service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Lzww0608/gid"
)

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Store   StoreConfig   `yaml:"store"`
	Metrics MetricsConfig `yaml:"metrics"`
	IDs     IDConfig      `yaml:"ids"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// StoreConfig configures the identifier registry.
// An empty driver disables the registry.
type StoreConfig struct {
	Driver          string        `yaml:"driver"` // "", "sqlite3" or "mysql"
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// Enabled reports whether a registry backend is configured.
func (s StoreConfig) Enabled() bool {
	return s.Driver != ""
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// IDConfig sets defaults for identifier generation and rendering.
type IDConfig struct {
	DefaultKind   string     `yaml:"default_kind"`   // "time" or "random"
	DefaultFormat gid.Format `yaml:"default_format"` // output format for the CLI
}

// Identifier kinds.
const (
	KindTime   = "time"
	KindRandom = "random"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	setDefaults(&cfg)
	return &cfg
}

// Load reads configuration from a YAML file. An empty path yields the defaults,
// with environment overrides applied.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		// Expand environment variables
		data = []byte(os.ExpandEnv(string(data)))

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies GID_* environment variables to the config.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GID_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("GID_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("GID_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("GID_STORE_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("GID_STORE_DSN"); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv("GID_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if v := os.Getenv("GID_DEFAULT_KIND"); v != "" {
		cfg.IDs.DefaultKind = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 5 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Store.Enabled() {
		if cfg.Store.MaxOpenConns == 0 {
			cfg.Store.MaxOpenConns = 10
		}
		if cfg.Store.MaxIdleConns == 0 {
			cfg.Store.MaxIdleConns = 5
		}
		if cfg.Store.ConnMaxLifetime == 0 {
			cfg.Store.ConnMaxLifetime = time.Hour
		}
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.IDs.DefaultKind == "" {
		cfg.IDs.DefaultKind = KindTime
	}
	if cfg.IDs.DefaultFormat == gid.FormatAuto {
		cfg.IDs.DefaultFormat = gid.FormatBase36
	}
}

// Validate checks the configuration for unsupported values.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Store.Driver {
	case "":
	case "sqlite3", "mysql":
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn: required for driver %q", c.Store.Driver)
		}
	default:
		return fmt.Errorf("store.driver: unsupported value %q", c.Store.Driver)
	}
	if err := ValidateKind(c.IDs.DefaultKind); err != nil {
		return fmt.Errorf("ids.default_kind: %w", err)
	}
	if _, err := gid.Encode(0, c.IDs.DefaultFormat); err != nil {
		return fmt.Errorf("ids.default_format: %w", err)
	}
	return nil
}

// ValidateKind checks that kind names an identifier generator.
func ValidateKind(kind string) error {
	switch kind {
	case KindTime, KindRandom:
		return nil
	default:
		return fmt.Errorf("unsupported identifier kind %q", kind)
	}
}
