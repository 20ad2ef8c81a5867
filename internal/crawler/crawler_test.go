package crawler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jonesrussell/golinkcheck/internal/crawler"
	"github.com/jonesrussell/golinkcheck/internal/domain"
	"github.com/jonesrussell/golinkcheck/internal/fetcher"
	"github.com/jonesrussell/golinkcheck/internal/frontier"
	"github.com/jonesrussell/golinkcheck/internal/logger"
)

// stubPage describes what the stub pool serves for one URL.
type stubPage struct {
	status int
	links  []string
}

// stubPool is a deterministic, synchronous Pool: Submit computes the
// result immediately and buffers it, so in-flight work equals the number
// of unconsumed results. URLs without a page entry come back 404.
type stubPool struct {
	capacity int
	pages    map[string]stubPage
	results  chan fetcher.Result

	// submitted records dispatch order for assertions.
	submitted []string
}

func newStubPool(capacity int, pages map[string]stubPage) *stubPool {
	return &stubPool{
		capacity: capacity,
		pages:    pages,
		results:  make(chan fetcher.Result, 128),
	}
}

func (p *stubPool) Start(context.Context) {}

func (p *stubPool) Submit(d *domain.Destination) {
	p.submitted = append(p.submitted, d.URL)

	page, ok := p.pages[d.URL]
	if !ok {
		p.results <- fetcher.Result{
			Destination: d,
			Outcome:     domain.Outcome{StatusCode: http.StatusNotFound, Broken: true},
		}

		return
	}

	result := fetcher.Result{
		Destination: d,
		Outcome:     domain.Outcome{StatusCode: page.status, Broken: page.status >= 400},
	}

	for _, target := range page.links {
		canonical, err := frontier.Canonicalize(target)
		if err != nil {
			continue
		}

		result.Links = append(result.Links, &domain.Link{
			Source: d.URL,
			Target: domain.NewDestination(canonical),
		})
	}

	p.results <- result
}

func (p *stubPool) Results() <-chan fetcher.Result { return p.results }
func (p *stubPool) IsSaturated() bool              { return len(p.results) >= p.capacity }
func (p *stubPool) IsIdle() bool                   { return len(p.results) == 0 }
func (p *stubPool) Shutdown()                      {}

func newTestCrawler(t *testing.T, cfg crawler.Config, pool crawler.Pool) *crawler.Crawler {
	t.Helper()

	c, err := crawler.New(cfg, pool, logger.NewNoOp())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return c
}

func findTarget(links []*domain.Link, url string) *domain.Destination {
	for _, link := range links {
		if link.Target.URL == url {
			return link.Target
		}
	}

	return nil
}

func TestCrawl_SiteWithInternalAndExternalLinks(t *testing.T) {
	t.Parallel()

	pool := newStubPool(2, map[string]stubPage{
		"http://a/":  {status: http.StatusOK, links: []string{"http://a/b", "http://x.com/"}},
		"http://a/b": {status: http.StatusOK},
	})

	c := newTestCrawler(t, crawler.Config{
		Patterns:      []string{"http://a/*"},
		CheckExternal: false,
	}, pool)

	links, err := c.Crawl(context.Background(), []string{"http://a/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}

	wantFetched := []string{"http://a/", "http://a/b"}
	if len(pool.submitted) != len(wantFetched) {
		t.Fatalf("expected %v fetched, got %v", wantFetched, pool.submitted)
	}

	for i, want := range wantFetched {
		if pool.submitted[i] != want {
			t.Errorf("fetch %d: expected %s, got %s", i, want, pool.submitted[i])
		}
	}

	internal := findTarget(links, "http://a/b")
	if internal == nil || !internal.WasTried() || internal.IsBroken() {
		t.Errorf("expected a/b checked and live, got %+v", internal)
	}

	external := findTarget(links, "http://x.com/")
	if external == nil {
		t.Fatal("expected external link recorded")
	}

	if external.WasTried() {
		t.Error("gated external must never be fetched")
	}

	if !external.IsExternal {
		t.Error("expected external flag set")
	}

	if got := external.StatusDescription(); got != "skipped external link" {
		t.Errorf("unexpected status description: %q", got)
	}
}

func TestCrawl_SeedPriorityIsBreadthFirst(t *testing.T) {
	t.Parallel()

	// Capacity 1 serializes dispatch so order is observable.
	pool := newStubPool(1, map[string]stubPage{
		"http://a/1": {status: http.StatusOK, links: []string{"http://a/3"}},
		"http://a/2": {status: http.StatusOK},
		"http://a/3": {status: http.StatusOK},
	})

	c := newTestCrawler(t, crawler.Config{Patterns: []string{"http://a/*"}}, pool)

	if _, err := c.Crawl(context.Background(), []string{"http://a/1", "http://a/2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A page discovered from seed 1 dispatches after seed 2.
	want := []string{"http://a/1", "http://a/2", "http://a/3"}

	if len(pool.submitted) != len(want) {
		t.Fatalf("expected order %v, got %v", want, pool.submitted)
	}

	for i, w := range want {
		if pool.submitted[i] != w {
			t.Errorf("dispatch %d: expected %s, got %s", i, w, pool.submitted[i])
		}
	}
}

func TestCrawl_DuplicateTargetsShareOneDestination(t *testing.T) {
	t.Parallel()

	pool := newStubPool(1, map[string]stubPage{
		"http://a/":  {status: http.StatusOK, links: []string{"http://a/b", "http://a/c"}},
		"http://a/b": {status: http.StatusOK, links: []string{"http://a/c#frag"}},
		"http://a/c": {status: http.StatusOK},
	})

	c := newTestCrawler(t, crawler.Config{Patterns: []string{"http://a/*"}}, pool)

	links, err := c.Crawl(context.Background(), []string{"http://a/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var targets []*domain.Destination

	for _, link := range links {
		if link.Target.URL == "http://a/c" {
			targets = append(targets, link.Target)
		}
	}

	if len(targets) != 2 {
		t.Fatalf("expected 2 links to a/c, got %d", len(targets))
	}

	if targets[0] != targets[1] {
		t.Error("links sharing a target URL must share one Destination instance")
	}

	// a/c was fetched once despite two references.
	fetches := 0
	for _, url := range pool.submitted {
		if url == "http://a/c" {
			fetches++
		}
	}

	if fetches != 1 {
		t.Errorf("expected exactly one fetch of a/c, got %d", fetches)
	}
}

func TestCrawl_ExternalCheckingEnabled(t *testing.T) {
	t.Parallel()

	pool := newStubPool(1, map[string]stubPage{
		"http://a/":     {status: http.StatusOK, links: []string{"http://x.com/"}},
		"http://x.com/": {status: http.StatusOK},
	})

	c := newTestCrawler(t, crawler.Config{
		Patterns:      []string{"http://a/*"},
		CheckExternal: true,
	}, pool)

	links, err := c.Crawl(context.Background(), []string{"http://a/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	external := findTarget(links, "http://x.com/")
	if external == nil {
		t.Fatal("expected external link recorded")
	}

	if !external.WasTried() || external.IsBroken() {
		t.Errorf("expected external checked and live, got %+v", external)
	}
}

func TestCrawl_ExternalOnlySeeds(t *testing.T) {
	t.Parallel()

	// Every seed fails the patterns; the refill pass must still
	// dispatch them when external checking is on.
	pool := newStubPool(2, map[string]stubPage{
		"http://x.com/": {status: http.StatusOK},
	})

	c := newTestCrawler(t, crawler.Config{
		Patterns:      []string{"http://a/*"},
		CheckExternal: true,
	}, pool)

	if _, err := c.Crawl(context.Background(), []string{"http://x.com/"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pool.submitted) != 1 || pool.submitted[0] != "http://x.com/" {
		t.Errorf("expected external seed dispatched, got %v", pool.submitted)
	}
}

func TestCrawl_UnsupportedSchemeNeverFetched(t *testing.T) {
	t.Parallel()

	pool := newStubPool(1, map[string]stubPage{
		"http://a/": {status: http.StatusOK, links: []string{"mailto:team@a"}},
	})

	c := newTestCrawler(t, crawler.Config{Patterns: []string{"http://a/*"}}, pool)

	links, err := c.Crawl(context.Background(), []string{"http://a/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mail := findTarget(links, "mailto:team@a")
	if mail == nil {
		t.Fatal("expected mailto link recorded")
	}

	if !mail.UnsupportedScheme || mail.WasTried() {
		t.Errorf("expected unsupported scheme, never fetched, got %+v", mail)
	}

	if got := mail.StatusDescription(); got != "unsupported scheme" {
		t.Errorf("unexpected status description: %q", got)
	}
}

func TestCrawl_BrokenLinkReported(t *testing.T) {
	t.Parallel()

	// a/missing has no page entry, so the stub serves 404.
	pool := newStubPool(1, map[string]stubPage{
		"http://a/": {status: http.StatusOK, links: []string{"http://a/missing"}},
	})

	c := newTestCrawler(t, crawler.Config{Patterns: []string{"http://a/*"}}, pool)

	links, err := c.Crawl(context.Background(), []string{"http://a/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := findTarget(links, "http://a/missing")
	if missing == nil || !missing.IsBroken() {
		t.Errorf("expected a/missing reported broken, got %+v", missing)
	}

	if got := c.Metrics().BrokenCount(); got != 1 {
		t.Errorf("expected 1 broken in metrics, got %d", got)
	}
}

func TestCrawl_CompletionSignalFiresOnce(t *testing.T) {
	t.Parallel()

	pool := newStubPool(1, map[string]stubPage{
		"http://a/": {status: http.StatusOK},
	})

	c := newTestCrawler(t, crawler.Config{Patterns: []string{"http://a/*"}}, pool)

	select {
	case <-c.Done():
		t.Fatal("done channel closed before crawl")
	default:
	}

	if _, err := c.Crawl(context.Background(), []string{"http://a/"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-c.Done():
	default:
		t.Fatal("done channel not closed after crawl")
	}
}

func TestCrawl_NoSeeds(t *testing.T) {
	t.Parallel()

	c := newTestCrawler(t, crawler.Config{}, newStubPool(1, nil))

	if _, err := c.Crawl(context.Background(), nil); err != crawler.ErrNoSeeds {
		t.Errorf("expected ErrNoSeeds, got %v", err)
	}
}

func TestCrawl_InvalidSeed(t *testing.T) {
	t.Parallel()

	c := newTestCrawler(t, crawler.Config{}, newStubPool(1, nil))

	_, err := c.Crawl(context.Background(), []string{"://broken"})
	if err == nil {
		t.Fatal("expected error for invalid seed")
	}
}

func TestCrawl_DuplicateSeedsCollapse(t *testing.T) {
	t.Parallel()

	pool := newStubPool(2, map[string]stubPage{
		"http://a/": {status: http.StatusOK},
	})

	c := newTestCrawler(t, crawler.Config{Patterns: []string{"http://a/*"}}, pool)

	// Same page expressed two ways.
	if _, err := c.Crawl(context.Background(), []string{"http://a/", "http://a/#top"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pool.submitted) != 1 {
		t.Errorf("expected duplicate seed dropped, got dispatches %v", pool.submitted)
	}
}

func TestCrawl_EmptyPatternsClassifyEverythingExternal(t *testing.T) {
	t.Parallel()

	pool := newStubPool(1, nil)

	c := newTestCrawler(t, crawler.Config{Patterns: nil, CheckExternal: false}, pool)

	links, err := c.Crawl(context.Background(), []string{"http://a/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pool.submitted) != 0 {
		t.Errorf("expected nothing fetched, got %v", pool.submitted)
	}

	if len(links) != 0 {
		t.Errorf("expected no links, got %d", len(links))
	}

	if got := c.Metrics().SkippedCount(); got != 1 {
		t.Errorf("expected the seed skipped, got %d skipped", got)
	}
}
