// Package config loads server settings from defaults, an optional TOML
// file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

const (
	DefaultPort           = 8080
	DefaultRequestTimeout = 10 * time.Second
	DefaultConfigFile     = "todo.toml"
)

// Config holds the runtime settings of the API server.
type Config struct {
	Port           int      `toml:"port"`
	RequestTimeout Duration `toml:"request_timeout"`
	LogLevel       string   `toml:"log_level"`
	LogFormat      string   `toml:"log_format"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Duration wraps time.Duration so it can be written as "5s" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Port:           DefaultPort,
		RequestTimeout: Duration{DefaultRequestTimeout},
		LogLevel:       "info",
		LogFormat:      "text",
		AllowedOrigins: []string{"https://*", "http://*"},
	}
}

// Load builds the configuration:
// 1. Defaults
// 2. TOML file named by TODO_CONFIG, or todo.toml in the working directory
// 3. Environment variables
func Load(logger *log.Logger) (*Config, error) {
	cfg := Default()

	path := os.Getenv("TODO_CONFIG")
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if err := loadFile(cfg, path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := loadFromEnv(cfg, logger); err != nil {
		return nil, fmt.Errorf("loading config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// loadFromEnv overrides cfg from environment variables. An unparsable PORT
// falls back to the default with a warning.
func loadFromEnv(cfg *Config, logger *log.Logger) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			logger.Warn("invalid PORT environment variable, using default", "value", v, "default", DefaultPort, "err", err)
			port = DefaultPort
		}
		cfg.Port = port
	}
	if v := os.Getenv("TODO_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TODO_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = Duration{d}
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TODO_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowedOrigins = origins
	}
	return nil
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.RequestTimeout.Duration < 0 {
		return fmt.Errorf("request timeout must not be negative, got %s", c.RequestTimeout)
	}
	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Addr returns the listen address for http.Server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
