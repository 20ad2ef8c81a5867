package fetcher

import (
	"time"

	"github.com/jonesrussell/golinkcheck/internal/frontier"
)

// Default configuration values.
const (
	// DefaultWorkers is the worker pool size for ordinary crawls.
	DefaultWorkers = 8
	// LocalWorkers is the reduced pool size used when every seed points
	// at the local machine, where cheaper concurrency is sufficient.
	LocalWorkers = 4

	defaultUserAgent      = "golinkcheck/1.0"
	defaultRequestTimeout = 30 * time.Second
	defaultMaxRedirects   = 10
)

// Config holds worker pool configuration.
type Config struct {
	Workers        int           `yaml:"workers"`
	UserAgent      string        `yaml:"user_agent"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxRedirects   int           `yaml:"max_redirects"`
}

// WithDefaults returns a copy of the config with default values applied
// for zero-value fields.
func (c Config) WithDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	if c.MaxRedirects <= 0 {
		c.MaxRedirects = defaultMaxRedirects
	}
	return c
}

// WorkersForSeeds picks the pool size for a seed set: the default, or
// the reduced local size when every seed host is the local machine.
func WorkersForSeeds(seeds []string) int {
	if len(seeds) == 0 {
		return DefaultWorkers
	}

	for _, seed := range seeds {
		if !frontier.IsLocalHost(seed) {
			return DefaultWorkers
		}
	}

	return LocalWorkers
}
