package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config is the process's complete configuration surface: how many
// captured messages to retain, where to listen, where to mount the
// verification API, and how to log.
type Config struct {
	// Capacity bounds the number of messages the capture store retains.
	Capacity int `env:"CAPACITY" envDefault:"1000"`

	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `env:"LISTEN_ADDR" envDefault:"localhost:5001"`

	// VerificationPrefix is the path prefix the verification API is
	// mounted under.
	VerificationPrefix string `env:"VERIFICATION_PREFIX" envDefault:"/messages"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LogFormat is one of "json" or "console".
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load builds a Config from environment variables and then applies any
// command-line flag overrides.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	flag.IntVar(&cfg.Capacity, "capacity", cfg.Capacity, "maximum number of captured messages retained")
	flag.StringVar(&cfg.ListenAddr, "listen-addr", cfg.ListenAddr, "HTTP listen address")
	flag.StringVar(&cfg.VerificationPrefix, "verification-prefix", cfg.VerificationPrefix, "path prefix for the verification API")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (json, console)")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive, got %d", c.Capacity)
	}

	if c.ListenAddr == "" {
		return fmt.Errorf("listen address cannot be empty")
	}

	if c.VerificationPrefix == "" || !strings.HasPrefix(c.VerificationPrefix, "/") {
		return fmt.Errorf("verification prefix must be a non-empty path starting with '/', got %q", c.VerificationPrefix)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	validLogFormats := map[string]bool{
		"json":    true,
		"console": true,
	}
	if !validLogFormats[strings.ToLower(c.LogFormat)] {
		return fmt.Errorf("invalid log format: %s", c.LogFormat)
	}

	return nil
}
