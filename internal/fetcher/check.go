package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jonesrussell/golinkcheck/internal/domain"
	"github.com/jonesrussell/golinkcheck/internal/frontier"
	"github.com/jonesrussell/golinkcheck/internal/logger"
)

// maxBodySize caps how much of a response body is read for link
// extraction.
const maxBodySize = 10 << 20 // 10 MB

// checker performs the HTTP check for a single destination.
type checker struct {
	client    *http.Client
	userAgent string
	extractor *LinkExtractor
	log       logger.Interface
}

// check fetches a destination and builds its Result. Internal pages are
// fetched with GET so their links can be extracted; external
// destinations get a cheaper HEAD first, falling back to GET for servers
// that reject HEAD.
func (c *checker) check(ctx context.Context, d *domain.Destination) Result {
	if d.IsExternal {
		return c.checkExternal(ctx, d)
	}

	return c.checkInternal(ctx, d)
}

// checkInternal fetches an internal page with GET and extracts its
// outbound links when the response is HTML.
func (c *checker) checkInternal(ctx context.Context, d *domain.Destination) Result {
	resp, err := c.do(ctx, http.MethodGet, d.URL)
	if err != nil {
		return Result{Destination: d, Outcome: failedOutcome(err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	outcome := statusOutcome(resp.StatusCode)

	result := Result{Destination: d, Outcome: outcome}
	if outcome.Broken || !isHTML(resp) {
		return result
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.log.Debug("Failed to read response body", "url", d.URL, "error", err)

		return result
	}

	result.Links = c.extractLinks(d, body)

	return result
}

// checkExternal checks an external destination with HEAD, retrying with
// GET when the server rejects the method. External bodies are never
// parsed for links.
func (c *checker) checkExternal(ctx context.Context, d *domain.Destination) Result {
	resp, err := c.do(ctx, http.MethodHead, d.URL)
	if err != nil {
		return Result{Destination: d, Outcome: failedOutcome(err)}
	}

	_ = resp.Body.Close()

	if resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusNotImplemented {
		resp, err = c.do(ctx, http.MethodGet, d.URL)
		if err != nil {
			return Result{Destination: d, Outcome: failedOutcome(err)}
		}

		_ = resp.Body.Close()
	}

	return Result{Destination: d, Outcome: statusOutcome(resp.StatusCode)}
}

func (c *checker) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}

	return resp, nil
}

// extractLinks parses the page body and returns one provisional Link per
// discovered href, each carrying a fresh Destination under its canonical
// URL. The merge step later collapses these onto the crawl's single
// instance per URL.
func (c *checker) extractLinks(source *domain.Destination, body []byte) []*domain.Link {
	targets, err := c.extractor.Extract(source.URL, body)
	if err != nil {
		c.log.Debug("Failed to extract links", "url", source.URL, "error", err)

		return nil
	}

	links := make([]*domain.Link, 0, len(targets))

	for _, target := range targets {
		canonical, err := frontier.Canonicalize(target)
		if err != nil {
			c.log.Debug("Dropping unparseable link",
				"source", source.URL, "target", target, "error", err)

			continue
		}

		links = append(links, &domain.Link{
			Source: source.URL,
			Target: domain.NewDestination(canonical),
		})
	}

	return links
}

// failedOutcome builds the outcome for a destination whose fetch never
// produced a response.
func failedOutcome(err error) domain.Outcome {
	return domain.Outcome{Broken: true, Err: err.Error()}
}

// statusOutcome builds the outcome for a completed response. Any status
// of 400 or above marks the destination broken.
func statusOutcome(code int) domain.Outcome {
	return domain.Outcome{
		StatusCode: code,
		Broken:     code >= http.StatusBadRequest,
	}
}

// isHTML reports whether a response carries an HTML body worth parsing
// for links.
func isHTML(resp *http.Response) bool {
	contentType := resp.Header.Get("Content-Type")

	return strings.Contains(strings.ToLower(contentType), "text/html")
}
