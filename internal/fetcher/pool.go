// Package fetcher implements the bounded worker pool that performs the
// actual HTTP checks. The scheduler submits destinations one at a time
// and consumes results as they complete; the pool never blocks the
// scheduler as long as it respects IsSaturated before submitting.
package fetcher

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/jonesrussell/golinkcheck/internal/domain"
	"github.com/jonesrussell/golinkcheck/internal/logger"
)

// Pool is a fixed-size worker pool checking destinations over HTTP.
// Capacity equals the worker count: with at most one queued job per
// worker, Submit never blocks when IsSaturated reported false.
type Pool struct {
	size int

	jobs    chan *domain.Destination
	results chan Result

	checker *checker
	log     logger.Interface

	// pending counts submitted jobs whose check has not completed.
	pending atomic.Int64

	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewPool creates a worker pool with cfg.Workers workers sharing one
// HTTP client. Call Start before submitting work.
func NewPool(cfg Config, log logger.Interface) *Pool {
	cfg = cfg.WithDefaults()

	client := &http.Client{
		Timeout:       cfg.RequestTimeout,
		CheckRedirect: RedirectPolicy(cfg.MaxRedirects),
	}

	return &Pool{
		size:    cfg.Workers,
		jobs:    make(chan *domain.Destination, cfg.Workers),
		results: make(chan Result, cfg.Workers),
		checker: &checker{
			client:    client,
			userAgent: cfg.UserAgent,
			extractor: NewLinkExtractor(),
			log:       log,
		},
		log: log,
	}
}

// Start launches the workers. Workers exit when the job channel is
// closed by Shutdown or when ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	p.log.Debug("Starting worker pool", "workers", p.size)

	for i := 0; i < p.size; i++ {
		p.wg.Add(1)

		go p.worker(ctx)
	}
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for d := range p.jobs {
		result := p.checker.check(ctx, d)

		// Decrement before emitting so that a consumer who has received
		// the result never observes the pool as still busy with it.
		p.pending.Add(-1)

		select {
		case p.results <- result:
		case <-ctx.Done():
			return
		}
	}
}

// Submit hands a destination to the pool. The caller must check
// IsSaturated first; submitting into a saturated pool may block until a
// worker frees up.
func (p *Pool) Submit(d *domain.Destination) {
	p.pending.Add(1)
	p.jobs <- d
}

// Results returns the channel completed checks are emitted on. The
// channel is closed by Shutdown after all workers have drained.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// IsSaturated reports whether the pool has no free capacity. A saturated
// pool means the scheduler should wait for a result before dispatching
// more work.
func (p *Pool) IsSaturated() bool {
	return p.pending.Load() >= int64(p.size)
}

// IsIdle reports whether no submitted work is outstanding.
func (p *Pool) IsIdle() bool {
	return p.pending.Load() == 0
}

// Shutdown stops accepting work, waits for in-flight checks to finish,
// and closes the results channel. Safe to call more than once.
func (p *Pool) Shutdown() {
	p.shutdownOnce.Do(func() {
		close(p.jobs)
		p.wg.Wait()
		close(p.results)

		p.log.Debug("Worker pool stopped")
	})
}
