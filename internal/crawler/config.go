package crawler

import "errors"

// Error types for the crawler package.
var (
	// ErrNoSeeds is returned when a crawl is started without seed URLs.
	ErrNoSeeds = errors.New("no seed URLs provided")

	// ErrInvalidSeed is returned when a seed URL cannot be canonicalized.
	ErrInvalidSeed = errors.New("invalid seed URL")
)

// Config holds crawl configuration.
type Config struct {
	// Patterns are the glob patterns that define which URLs count as
	// internal. URLs matching no pattern are external.
	Patterns []string `yaml:"patterns"`

	// CheckExternal enables fetching external destinations. When false,
	// external destinations are recorded but never fetched.
	CheckExternal bool `yaml:"check_external"`

	// Verbose enables per-dispatch debug logging.
	Verbose bool `yaml:"verbose"`
}
