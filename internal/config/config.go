// Package config provides configuration management for the link checker.
// Values are layered: defaults, then an optional YAML config file, then
// environment variables, then command-line flags, all through viper.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/jonesrussell/golinkcheck/internal/config/logging"
	"github.com/jonesrussell/golinkcheck/internal/logger"
)

// Config represents the application configuration.
type Config struct {
	// Logging holds logger configuration
	Logging *logging.Config `yaml:"logging"`
	// Checker holds link checker configuration
	Checker *CheckerConfig `yaml:"checker"`
}

// CheckerConfig holds link-checker-specific configuration settings.
type CheckerConfig struct {
	// Patterns are the glob patterns that define the internal site.
	Patterns []string `yaml:"patterns"`
	// CheckExternal enables fetching external destinations.
	CheckExternal bool `yaml:"check_external"`
	// BrokenOnly limits the report to broken destinations.
	BrokenOnly bool `yaml:"broken_only"`
	// Workers is the worker pool size (0 picks a default from the seeds).
	Workers int `yaml:"workers"`
	// UserAgent is the user agent sent with every request.
	UserAgent string `yaml:"user_agent"`
	// RequestTimeout is the timeout for each request.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// MaxRedirects is the maximum number of redirects to follow.
	MaxRedirects int `yaml:"max_redirects"`
}

// SetDefaults registers default values with viper. Call before reading
// the config file so file and environment values take precedence.
func SetDefaults() {
	viper.SetDefault("logging.level", logging.DefaultLevel)
	viper.SetDefault("logging.encoding", logging.DefaultEncoding)
	viper.SetDefault("logging.output", logging.DefaultOutput)
	viper.SetDefault("logging.max_size", logging.DefaultMaxSize)
	viper.SetDefault("logging.max_backups", logging.DefaultMaxBackups)
	viper.SetDefault("logging.max_age", logging.DefaultMaxAge)
	viper.SetDefault("logging.compress", logging.DefaultCompress)

	viper.SetDefault("checker.request_timeout", 30*time.Second)
	viper.SetDefault("checker.max_redirects", 10)
}

// Load builds the application configuration from the current viper
// state.
func Load() *Config {
	return &Config{
		Logging: &logging.Config{
			Level:      viper.GetString("logging.level"),
			Encoding:   viper.GetString("logging.encoding"),
			Output:     viper.GetString("logging.output"),
			File:       viper.GetString("logging.file"),
			Debug:      viper.GetBool("logging.debug"),
			MaxSize:    viper.GetInt("logging.max_size"),
			MaxBackups: viper.GetInt("logging.max_backups"),
			MaxAge:     viper.GetInt("logging.max_age"),
			Compress:   viper.GetBool("logging.compress"),
		},
		Checker: &CheckerConfig{
			Patterns:       viper.GetStringSlice("checker.patterns"),
			CheckExternal:  viper.GetBool("checker.check_external"),
			BrokenOnly:     viper.GetBool("checker.broken_only"),
			Workers:        viper.GetInt("checker.workers"),
			UserAgent:      viper.GetString("checker.user_agent"),
			RequestTimeout: viper.GetDuration("checker.request_timeout"),
			MaxRedirects:   viper.GetInt("checker.max_redirects"),
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	return nil
}

// LoggerConfig converts the logging section into the logger package's
// configuration.
func (c *Config) LoggerConfig() *logger.Config {
	cfg := &logger.Config{
		Level:       logger.Level(c.Logging.Level),
		Development: c.Logging.Debug,
		Encoding:    c.Logging.Encoding,
		MaxSize:     c.Logging.MaxSize,
		MaxBackups:  c.Logging.MaxBackups,
		MaxAge:      c.Logging.MaxAge,
		Compress:    c.Logging.Compress,
	}

	if c.Logging.Debug {
		cfg.Level = logger.DebugLevel
	}

	if c.Logging.Output == "file" {
		cfg.File = c.Logging.File
	}

	return cfg
}
