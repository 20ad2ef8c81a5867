// Package metrics provides crawl counters for reporting.
package metrics

import (
	"sync"
	"time"
)

// Metrics holds the counters for one crawl run. Safe for concurrent
// reads while the crawl updates them.
type Metrics struct {
	// checked is the number of destinations actually fetched.
	checked int64
	// broken is the number of fetched destinations found broken.
	broken int64
	// skipped is the number of destinations closed without a fetch
	// (unsupported schemes, gated externals).
	skipped int64
	// discovered is the total number of links found on fetched pages.
	discovered int64
	// startTime is when the crawl began.
	startTime time.Time
	// mu protects concurrent access to the counters.
	mu sync.Mutex
}

// NewMetrics creates a new Metrics instance with the clock started.
func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),
	}
}

// RecordChecked counts one fetched destination.
func (m *Metrics) RecordChecked(broken bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.checked++
	if broken {
		m.broken++
	}
}

// RecordSkipped counts one destination closed without a fetch.
func (m *Metrics) RecordSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.skipped++
}

// RecordDiscovered counts one discovered link.
func (m *Metrics) RecordDiscovered() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.discovered++
}

// CheckedCount returns the number of fetched destinations.
func (m *Metrics) CheckedCount() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.checked
}

// BrokenCount returns the number of broken destinations.
func (m *Metrics) BrokenCount() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.broken
}

// SkippedCount returns the number of skipped destinations.
func (m *Metrics) SkippedCount() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.skipped
}

// DiscoveredCount returns the number of discovered links.
func (m *Metrics) DiscoveredCount() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.discovered
}

// StartTime returns when the crawl began.
func (m *Metrics) StartTime() time.Time {
	return m.startTime
}

// Duration returns the elapsed time since the crawl began.
func (m *Metrics) Duration() time.Duration {
	return time.Since(m.startTime)
}
