// Package frontier tracks every URL known to a crawl and the bin it
// currently occupies. URLs are canonicalized before insertion so that the
// same destination expressed differently collapses to a single entry.
package frontier

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// defaultPorts maps schemes to their default port strings.
var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

var errEmptyInput = errors.New("canonicalize url: empty input")

// Canonicalize reduces a raw URL to its crawl identity: the fragment is
// removed, scheme and host are lowercased, and default ports are
// stripped. Query strings and paths are preserved as written, since two
// pages differing only in query are distinct destinations.
func Canonicalize(rawURL string) (string, error) {
	if rawURL == "" {
		return "", errEmptyInput
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("canonicalize url: %w", err)
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Fragment = ""
	parsed.RawFragment = ""

	// Opaque URLs (mailto:user@host) have no authority component to
	// normalize; stripping the fragment is all that applies.
	if parsed.Host != "" {
		parsed.Host = canonicalHost(parsed)
	}

	return parsed.String(), nil
}

// canonicalHost lowercases the hostname and removes the scheme's default
// port.
func canonicalHost(u *url.URL) string {
	hostname := strings.ToLower(u.Hostname())
	port := u.Port()

	if port == "" {
		return hostname
	}

	if defaultPort, ok := defaultPorts[u.Scheme]; ok && port == defaultPort {
		return hostname
	}

	return hostname + ":" + port
}

// IsSupportedScheme reports whether the URL uses a scheme the checker can
// fetch. Anything else (mailto:, tel:, javascript:, ftp:) is recorded as
// an unsupported destination and never submitted to the worker pool.
func IsSupportedScheme(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	scheme := strings.ToLower(parsed.Scheme)

	return scheme == "http" || scheme == "https"
}

// IsLocalHost reports whether a URL's host names the local machine.
// The check is static (localhost names and loopback literals, no DNS
// lookup) so that worker pool sizing stays deterministic.
func IsLocalHost(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	hostname := strings.ToLower(parsed.Hostname())
	if hostname == "localhost" || strings.HasSuffix(hostname, ".localhost") {
		return true
	}

	if ip := net.ParseIP(hostname); ip != nil {
		return ip.IsLoopback()
	}

	return false
}
