package fetcher

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LinkExtractor extracts outbound link targets from HTML using goquery.
type LinkExtractor struct{}

// NewLinkExtractor creates a new link extractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// hrefSelectors lists the elements whose href attribute is an outbound
// link worth checking.
const hrefSelectors = "a[href], area[href]"

// Extract parses HTML and returns the absolute URL of every outbound
// link, resolved against baseURL. Non-HTTP targets (mailto:, tel:) are
// included so they can be recorded as unsupported destinations;
// javascript: pseudo-links and bare fragments are dropped.
func (e *LinkExtractor) Extract(baseURL string, body []byte) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var links []string

	doc.Find(hrefSelectors).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}

		if target := resolveHref(base, href); target != "" {
			links = append(links, target)
		}
	})

	return links, nil
}

// resolveHref turns a raw href value into an absolute URL string, or ""
// when the href is not a checkable link.
func resolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}

	if strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	// Opaque URLs (mailto:user@host, tel:...) cannot be resolved against
	// a base; keep them as written.
	if ref.Opaque != "" {
		return href
	}

	return base.ResolveReference(ref).String()
}
