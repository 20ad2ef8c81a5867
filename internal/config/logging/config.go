// Package logging provides configuration for the application logger.
package logging

import (
	"errors"
	"fmt"
)

// Default configuration values.
const (
	// DefaultLevel is the default logging level.
	DefaultLevel = "info"
	// DefaultEncoding is the default log encoding format.
	DefaultEncoding = "console"
	// DefaultOutput is the default log output destination.
	DefaultOutput = "stderr"
	// DefaultDebug is the default debug mode setting.
	DefaultDebug = false
	// DefaultMaxSize is the default log file rotation size in megabytes.
	DefaultMaxSize = 100
	// DefaultMaxBackups is the default number of rotated files to keep.
	DefaultMaxBackups = 3
	// DefaultMaxAge is the default retention for rotated files in days.
	DefaultMaxAge = 30
	// DefaultCompress is the default compression setting for rotated files.
	DefaultCompress = true
)

// Config holds logging-specific configuration settings.
type Config struct {
	// Level is the logging level (debug, info, warn, error)
	Level string `yaml:"level"`
	// Encoding is the log encoding format (json, console)
	Encoding string `yaml:"encoding"`
	// Output is the log output destination (stdout, stderr, file)
	Output string `yaml:"output"`
	// File is the log file path (only used when output is file)
	File string `yaml:"file"`
	// Debug enables debug mode for additional logging
	Debug bool `yaml:"debug"`
	// MaxSize is the maximum size of the log file in megabytes
	MaxSize int `yaml:"max_size"`
	// MaxBackups is the maximum number of old log files to retain
	MaxBackups int `yaml:"max_backups"`
	// MaxAge is the maximum number of days to retain old log files
	MaxAge int `yaml:"max_age"`
	// Compress determines if the rotated log files should be compressed
	Compress bool `yaml:"compress"`
}

// Option configures a Config.
type Option func(*Config)

// WithLevel sets the logging level.
func WithLevel(level string) Option {
	return func(c *Config) { c.Level = level }
}

// WithEncoding sets the log encoding format.
func WithEncoding(encoding string) Option {
	return func(c *Config) { c.Encoding = encoding }
}

// WithOutput sets the log output destination.
func WithOutput(output string) Option {
	return func(c *Config) { c.Output = output }
}

// WithFile sets the log file path.
func WithFile(file string) Option {
	return func(c *Config) { c.File = file }
}

// WithDebug enables or disables debug mode.
func WithDebug(debug bool) Option {
	return func(c *Config) { c.Debug = debug }
}

// WithMaxSize sets the rotation size in megabytes.
func WithMaxSize(maxSize int) Option {
	return func(c *Config) { c.MaxSize = maxSize }
}

// WithMaxBackups sets the number of rotated files to keep.
func WithMaxBackups(maxBackups int) Option {
	return func(c *Config) { c.MaxBackups = maxBackups }
}

// WithMaxAge sets the retention for rotated files in days.
func WithMaxAge(maxAge int) Option {
	return func(c *Config) { c.MaxAge = maxAge }
}

// WithCompress enables or disables compression of rotated files.
func WithCompress(compress bool) Option {
	return func(c *Config) { c.Compress = compress }
}

// New creates a logging configuration with defaults, then applies the
// given options.
func New(opts ...Option) *Config {
	cfg := &Config{
		Level:      DefaultLevel,
		Encoding:   DefaultEncoding,
		Output:     DefaultOutput,
		Debug:      DefaultDebug,
		MaxSize:    DefaultMaxSize,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAge,
		Compress:   DefaultCompress,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Common validation errors.
var (
	ErrMissingLevel    = errors.New("logging level is required")
	ErrInvalidLevel    = errors.New("invalid logging level")
	ErrMissingEncoding = errors.New("logging encoding is required")
	ErrInvalidEncoding = errors.New("invalid logging encoding")
	ErrMissingOutput   = errors.New("logging output is required")
	ErrInvalidOutput   = errors.New("invalid logging output")
	ErrMissingFile     = errors.New("log file path is required for file output")
	ErrInvalidRotation = errors.New("invalid log rotation setting")
)

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Level == "" {
		return ErrMissingLevel
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("%w: %q", ErrInvalidLevel, c.Level)
	}

	if c.Encoding == "" {
		return ErrMissingEncoding
	}

	if c.Encoding != "json" && c.Encoding != "console" {
		return fmt.Errorf("%w: %q", ErrInvalidEncoding, c.Encoding)
	}

	if c.Output == "" {
		return ErrMissingOutput
	}

	if c.Output != "stdout" && c.Output != "stderr" && c.Output != "file" {
		return fmt.Errorf("%w: %q", ErrInvalidOutput, c.Output)
	}

	if c.Output == "file" && c.File == "" {
		return ErrMissingFile
	}

	if c.MaxSize < 0 || c.MaxBackups < 0 || c.MaxAge < 0 {
		return ErrInvalidRotation
	}

	return nil
}
