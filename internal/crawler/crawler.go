// Package crawler implements the crawl orchestration loop: it drains the
// frontier into the worker pool, folds each result back into frontier
// state, and detects completion. The loop is the only mutator of crawl
// state; workers just fetch and report.
package crawler

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonesrussell/golinkcheck/internal/domain"
	"github.com/jonesrussell/golinkcheck/internal/fetcher"
	"github.com/jonesrussell/golinkcheck/internal/frontier"
	"github.com/jonesrussell/golinkcheck/internal/logger"
	"github.com/jonesrussell/golinkcheck/internal/metrics"
	"github.com/jonesrussell/golinkcheck/internal/urlglob"
)

// Pool is the worker pool contract the scheduler loop dispatches into.
type Pool interface {
	// Start launches the workers.
	Start(ctx context.Context)
	// Submit hands a destination to the pool. Must only be called when
	// IsSaturated reports false, so it never blocks the loop.
	Submit(d *domain.Destination)
	// Results streams completed checks in completion order.
	Results() <-chan fetcher.Result
	// IsSaturated reports whether the pool has no spare capacity.
	IsSaturated() bool
	// IsIdle reports whether no submitted work is outstanding.
	IsIdle() bool
	// Shutdown stops the workers and closes the result stream.
	Shutdown()
}

// Crawler runs a single site-wide link check. It owns all frontier state
// exclusively; every mutation happens on the goroutine running Crawl, so
// no locking is needed around the tracker or the link set.
type Crawler struct {
	cfg      Config
	matcher  *urlglob.Matcher
	pool     Pool
	log      logger.Interface
	observer Observer

	tracker *frontier.Tracker
	stats   *metrics.Metrics

	// links accumulates every discovered edge in discovery order.
	links []*domain.Link

	// dispatchCount drives the internal/external alternation. It is a
	// dedicated counter, deliberately separate from any progress count.
	dispatchCount int

	done     chan struct{}
	doneOnce sync.Once
}

// New creates a crawler. The pool must not have been started yet.
func New(cfg Config, pool Pool, log logger.Interface) (*Crawler, error) {
	matcher, err := urlglob.NewMatcher(cfg.Patterns)
	if err != nil {
		return nil, fmt.Errorf("compile host patterns: %w", err)
	}

	return &Crawler{
		cfg:      cfg,
		matcher:  matcher,
		pool:     pool,
		log:      log,
		observer: NoopObserver{},
		tracker:  frontier.NewTracker(),
		stats:    metrics.NewMetrics(),
		done:     make(chan struct{}),
	}, nil
}

// SetObserver installs a progress observer. Must be called before Crawl.
func (c *Crawler) SetObserver(obs Observer) {
	if obs != nil {
		c.observer = obs
	}
}

// Done returns a channel closed exactly once, when the crawl completes.
func (c *Crawler) Done() <-chan struct{} {
	return c.done
}

// Metrics returns the crawl counters.
func (c *Crawler) Metrics() *metrics.Metrics {
	return c.stats
}

// Crawl checks every page reachable from the seeds and returns all
// discovered links in discovery order. On cancellation the links found
// so far are returned along with the context error; results arriving
// after the cancel are discarded without touching crawl state.
func (c *Crawler) Crawl(ctx context.Context, seeds []string) ([]*domain.Link, error) {
	if len(seeds) == 0 {
		return nil, ErrNoSeeds
	}

	if err := c.routeSeeds(seeds); err != nil {
		return nil, err
	}

	c.pool.Start(ctx)
	defer c.pool.Shutdown()

	c.log.Info("Starting crawl",
		"seeds", len(seeds),
		"patterns", c.matcher.Patterns(),
		"check_external", c.cfg.CheckExternal)

	c.initialDispatch()

	if c.finished() {
		return c.links, nil
	}

	for {
		select {
		case <-ctx.Done():
			c.log.Warn("Crawl cancelled", "links_found", len(c.links))

			return c.links, ctx.Err()
		case result := <-c.pool.Results():
			c.handleResult(result)

			if c.finished() {
				return c.links, nil
			}
		}
	}
}

// routeSeeds canonicalizes the seed URLs and places each into its first
// bin. Duplicate seeds are dropped with a warning.
func (c *Crawler) routeSeeds(seeds []string) error {
	for _, seed := range seeds {
		canonical, err := frontier.Canonicalize(seed)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidSeed, seed, err)
		}

		if _, known := c.tracker.Lookup(canonical); known {
			c.log.Warn("Ignoring duplicate seed", "url", seed)

			continue
		}

		d := domain.NewDestination(canonical)
		d.IsSource = true

		c.route(d)
	}

	return nil
}

// initialDispatch fills the pool from the internal queue before any
// result has arrived. When every seed was external the internal queue is
// empty, so a regular refill pass runs to get the externals moving.
func (c *Crawler) initialDispatch() {
	for !c.pool.IsSaturated() {
		d := c.tracker.PopOpenInternal()
		if d == nil {
			break
		}

		c.dispatchCount++
		c.submit(d)
	}

	if c.tracker.InProgressLen() == 0 {
		c.refill()
	}
}

// handleResult folds one completed check back into crawl state: the
// destination closes and records its outcome, discovered links merge
// into the frontier, and freed capacity is refilled.
func (c *Crawler) handleResult(result fetcher.Result) {
	d := result.Destination

	c.tracker.Close(d.URL)
	d.ApplyOutcome(result.Outcome)
	c.stats.RecordChecked(d.IsBroken())
	c.notifyClosed(d)

	if c.cfg.Verbose {
		c.log.Debug("Checked", "url", d.URL, "status", d.StatusDescription())
	}

	c.merge(result.Links)
	c.refill()
}

// merge folds a batch of discovered links into the crawl. A link whose
// target URL is already known is repointed at the existing Destination
// instance; an unknown target keeps its provisional Destination, which
// is routed into its first bin and thereby becomes the canonical
// instance for that URL.
func (c *Crawler) merge(links []*domain.Link) {
	for _, link := range links {
		if existing, known := c.tracker.Lookup(link.Target.URL); known {
			link.Target = existing
		} else {
			c.route(link.Target)
		}

		c.links = append(c.links, link)
		c.stats.RecordDiscovered()
	}
}

// route places a brand-new destination into its first bin. Unsupported
// schemes and gated externals close immediately without a fetch;
// checkable externals queue at the external tail; seeds jump to the
// internal head.
func (c *Crawler) route(d *domain.Destination) {
	if !frontier.IsSupportedScheme(d.URL) {
		d.UnsupportedScheme = true

		c.closeUnfetched(d)

		return
	}

	d.IsExternal = !c.matcher.Matches(d.URL)

	switch {
	case d.IsExternal && !c.cfg.CheckExternal:
		c.closeUnfetched(d)
	case d.IsExternal:
		c.tracker.Insert(d, frontier.BinOpenExternal)
	default:
		c.tracker.Insert(d, frontier.BinOpenInternal)
	}
}

// closeUnfetched records a destination that will never be fetched.
func (c *Crawler) closeUnfetched(d *domain.Destination) {
	c.tracker.Insert(d, frontier.BinClosed)
	c.stats.RecordSkipped()
	c.notifyClosed(d)

	if c.cfg.Verbose {
		c.log.Debug("Skipped", "url", d.URL, "status", d.StatusDescription())
	}
}

// refill dispatches queued work into the pool's spare capacity,
// alternating between the internal and external queues on the dispatch
// counter's parity.
func (c *Crawler) refill() {
	for !c.pool.IsSaturated() {
		d := c.tracker.PopNext(c.dispatchCount)
		if d == nil {
			return
		}

		c.dispatchCount++
		c.submit(d)
	}
}

func (c *Crawler) submit(d *domain.Destination) {
	if c.cfg.Verbose {
		c.log.Debug("Dispatching", "url", d.URL, "external", d.IsExternal)
	}

	c.pool.Submit(d)
}

// finished checks for completion after a refill pass: the frontier is
// drained and nothing is in flight. The done channel closes exactly
// once even if the check holds on later passes.
func (c *Crawler) finished() bool {
	if !c.tracker.Done() || !c.pool.IsIdle() {
		return false
	}

	c.doneOnce.Do(func() {
		close(c.done)

		c.log.Info("Crawl complete",
			"checked", c.stats.CheckedCount(),
			"broken", c.stats.BrokenCount(),
			"skipped", c.stats.SkippedCount(),
			"links", len(c.links))
	})

	return true
}

func (c *Crawler) notifyClosed(d *domain.Destination) {
	c.observer.DestinationClosed(d, c.tracker.ClosedLen(), c.tracker.KnownLen())
}
