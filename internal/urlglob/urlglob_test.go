package urlglob_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/golinkcheck/internal/urlglob"
)

func TestMatcher_Matches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		patterns []string
		url      string
		want     bool
	}{
		{
			name:     "exact prefix wildcard",
			patterns: []string{"http://a/*"},
			url:      "http://a/b",
			want:     true,
		},
		{
			name:     "wildcard matches empty remainder",
			patterns: []string{"http://a/*"},
			url:      "http://a/",
			want:     true,
		},
		{
			name:     "other host does not match",
			patterns: []string{"http://a/*"},
			url:      "http://x.com",
			want:     false,
		},
		{
			name:     "case insensitive",
			patterns: []string{"https://Example.com/*"},
			url:      "https://example.COM/page",
			want:     true,
		},
		{
			name:     "host wildcard",
			patterns: []string{"https://*.example.com/*"},
			url:      "https://docs.example.com/guide",
			want:     true,
		},
		{
			name:     "second pattern matches",
			patterns: []string{"http://a/*", "http://b/*"},
			url:      "http://b/page",
			want:     true,
		},
		{
			name:     "empty pattern set matches nothing",
			patterns: nil,
			url:      "http://a/",
			want:     false,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := urlglob.NewMatcher(tt.patterns)
			require.NoError(t, err)
			require.Equal(t, tt.want, m.Matches(tt.url))
		})
	}
}

func TestNewMatcher_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := urlglob.NewMatcher([]string{"http://a/["})
	require.Error(t, err)
}

func TestMatcher_Patterns(t *testing.T) {
	t.Parallel()

	patterns := []string{"http://a/*", "http://b/*"}

	m, err := urlglob.NewMatcher(patterns)
	require.NoError(t, err)
	require.Equal(t, patterns, m.Patterns())
}
