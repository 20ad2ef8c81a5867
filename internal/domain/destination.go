// Package domain provides domain models used across the application.
package domain

import "fmt"

// Destination represents a unique check target: a URL with its fragment
// stripped, plus the outcome of checking it. A Destination is created the
// first time any link references its URL (or when supplied as a seed) and
// lives until the crawl ends.
type Destination struct {
	// URL is the canonical identity (fragment stripped, host lowercased).
	URL string

	// IsSource marks a crawl seed.
	IsSource bool

	// IsExternal marks a URL that fails the configured host patterns.
	IsExternal bool

	// UnsupportedScheme marks non-HTTP(S) URLs (mailto:, tel:, ...),
	// which are recorded but never fetched.
	UnsupportedScheme bool

	// Outcome fields, populated exactly once when the fetch result
	// arrives. Tried stays false for destinations that were never
	// submitted to the pool (unsupported scheme, skipped externals).
	Tried      bool
	Broken     bool
	StatusCode int
	FetchError string
}

// Outcome is the result of checking a single Destination.
type Outcome struct {
	StatusCode int
	Broken     bool
	Err        string
}

// NewDestination creates a Destination for a canonical URL.
func NewDestination(canonicalURL string) *Destination {
	return &Destination{URL: canonicalURL}
}

// ApplyOutcome records the fetch outcome. Outcome fields are written
// exactly once; a second application indicates the state tracker lost
// track of this destination and is treated as fatal.
func (d *Destination) ApplyOutcome(o Outcome) {
	if d.Tried {
		panic(fmt.Sprintf("domain: outcome applied twice for %s", d.URL))
	}

	d.Tried = true
	d.Broken = o.Broken
	d.StatusCode = o.StatusCode
	d.FetchError = o.Err
}

// WasTried reports whether a fetch outcome has been recorded.
func (d *Destination) WasTried() bool {
	return d.Tried
}

// IsBroken reports whether the destination was checked and found broken.
func (d *Destination) IsBroken() bool {
	return d.Tried && d.Broken
}

// StatusDescription returns a human-readable description of the
// destination's state for reporting.
func (d *Destination) StatusDescription() string {
	switch {
	case d.UnsupportedScheme:
		return "unsupported scheme"
	case !d.Tried && d.IsExternal:
		return "skipped external link"
	case !d.Tried:
		return "not checked"
	case d.FetchError != "":
		return fmt.Sprintf("failed: %s", d.FetchError)
	case d.Broken:
		return fmt.Sprintf("broken (HTTP %d)", d.StatusCode)
	default:
		return fmt.Sprintf("ok (HTTP %d)", d.StatusCode)
	}
}
