// Package urlglob matches URLs against glob patterns to decide whether a
// destination belongs to the site being crawled. Patterns use standard
// glob wildcarding over the whole URL (scheme, host and path), matched
// case-insensitively.
package urlglob

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher tests URLs against a set of compiled glob patterns.
type Matcher struct {
	patterns []string
	globs    []glob.Glob
}

// NewMatcher compiles the given patterns. An empty pattern set is valid
// and matches nothing, which classifies every URL as external.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{
		patterns: make([]string, 0, len(patterns)),
		globs:    make([]glob.Glob, 0, len(patterns)),
	}

	for _, pattern := range patterns {
		compiled, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
		}

		m.patterns = append(m.patterns, pattern)
		m.globs = append(m.globs, compiled)
	}

	return m, nil
}

// Matches reports whether the URL matches any configured pattern.
func (m *Matcher) Matches(rawURL string) bool {
	lowered := strings.ToLower(rawURL)

	for _, g := range m.globs {
		if g.Match(lowered) {
			return true
		}
	}

	return false
}

// Patterns returns the original pattern strings.
func (m *Matcher) Patterns() []string {
	return m.patterns
}
