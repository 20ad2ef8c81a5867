package fetcher_test

import (
	"testing"

	"github.com/jonesrussell/golinkcheck/internal/fetcher"
)

func TestLinkExtractor_Extract(t *testing.T) {
	t.Parallel()

	body := []byte(`<html><body>
		<a href="/about">About</a>
		<a href="https://other.example.com/page">Other</a>
		<a href="relative/doc.html">Doc</a>
		<a href="#section">Fragment only</a>
		<a href="javascript:void(0)">JS</a>
		<a href="mailto:team@example.com">Mail</a>
		<a>No href</a>
		<map><area href="/map-target" alt="m"></map>
	</body></html>`)

	ext := fetcher.NewLinkExtractor()

	got, err := ext.Extract("https://example.com/dir/page", body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"https://example.com/about",
		"https://other.example.com/page",
		"https://example.com/dir/relative/doc.html",
		"mailto:team@example.com",
		"https://example.com/map-target",
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d links, got %d: %v", len(want), len(got), got)
	}

	for i, w := range want {
		if got[i] != w {
			t.Errorf("link %d: expected %q, got %q", i, w, got[i])
		}
	}
}

func TestLinkExtractor_EmptyBody(t *testing.T) {
	t.Parallel()

	ext := fetcher.NewLinkExtractor()

	got, err := ext.Extract("https://example.com/", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 0 {
		t.Errorf("expected no links, got %v", got)
	}
}

func TestLinkExtractor_InvalidBase(t *testing.T) {
	t.Parallel()

	ext := fetcher.NewLinkExtractor()

	if _, err := ext.Extract("://bad", []byte("<a href='/x'>x</a>")); err == nil {
		t.Error("expected error for invalid base url")
	}
}
