package frontier

import (
	"fmt"

	"github.com/jonesrussell/golinkcheck/internal/domain"
)

// Bin identifies which state a known URL currently occupies. Every URL
// the crawl has seen belongs to exactly one bin at any time.
type Bin int

const (
	// BinNone means the URL has never been seen.
	BinNone Bin = iota

	// BinOpenInternal queues internal pages awaiting a fetch.
	BinOpenInternal

	// BinOpenExternal queues external destinations awaiting a check.
	BinOpenExternal

	// BinInProgress marks URLs currently submitted to the worker pool.
	BinInProgress

	// BinClosed marks URLs whose processing is finished.
	BinClosed
)

// String returns the string representation of a bin.
func (b Bin) String() string {
	switch b {
	case BinNone:
		return "none"
	case BinOpenInternal:
		return "open-internal"
	case BinOpenExternal:
		return "open-external"
	case BinInProgress:
		return "in-progress"
	case BinClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Tracker is the authoritative index of every URL a crawl has seen. It
// maps each canonical URL to its single Destination instance and its
// current bin, and owns the two open FIFO queues. The tracker is not
// safe for concurrent use; the scheduler loop is its only mutator.
//
// Bin membership violations (inserting a known URL, transitioning from
// the wrong bin) indicate the dedup contract was broken and panic rather
// than silently corrupting state, since corruption here causes
// double-checks or lost links.
type Tracker struct {
	bins  map[string]Bin
	dests map[string]*domain.Destination

	openInternal []*domain.Destination
	openExternal []*domain.Destination

	inProgress int
	closed     int
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		bins:  make(map[string]Bin),
		dests: make(map[string]*domain.Destination),
	}
}

// Classify returns the bin a URL currently occupies, or BinNone when the
// URL has never been seen.
func (t *Tracker) Classify(url string) Bin {
	return t.bins[url]
}

// Lookup returns the canonical Destination instance for a known URL.
func (t *Tracker) Lookup(url string) (*domain.Destination, bool) {
	d, ok := t.dests[url]

	return d, ok
}

// Insert places a brand-new URL into a bin. Seeds enter the internal
// queue at the front so they are exhausted before discovered pages.
// Inserting a URL that is already known is fatal: it means a duplicate
// Destination was created for a known URL.
func (t *Tracker) Insert(d *domain.Destination, bin Bin) {
	if existing, known := t.bins[d.URL]; known {
		panic(fmt.Sprintf("frontier: insert of known url %s (already %s)", d.URL, existing))
	}

	switch bin {
	case BinOpenInternal:
		if d.IsSource {
			t.insertSeed(d)
		} else {
			t.openInternal = append(t.openInternal, d)
		}
	case BinOpenExternal:
		t.openExternal = append(t.openExternal, d)
	case BinInProgress:
		t.inProgress++
	case BinClosed:
		t.closed++
	case BinNone:
		panic(fmt.Sprintf("frontier: insert of %s into none bin", d.URL))
	}

	t.bins[d.URL] = bin
	t.dests[d.URL] = d
}

// insertSeed places a seed at the front of the internal queue, behind any
// seeds already waiting, so seeds dispatch before discovered pages while
// keeping their given order.
func (t *Tracker) insertSeed(d *domain.Destination) {
	idx := 0
	for idx < len(t.openInternal) && t.openInternal[idx].IsSource {
		idx++
	}

	t.openInternal = append(t.openInternal, nil)
	copy(t.openInternal[idx+1:], t.openInternal[idx:])
	t.openInternal[idx] = d
}

// Transition moves a URL between bins, asserting its current membership
// first. The only legal flow is open-* -> in-progress -> closed; a URL
// found in an unexpected bin is fatal.
func (t *Tracker) Transition(url string, from, to Bin) {
	current, known := t.bins[url]
	if !known || current != from {
		panic(fmt.Sprintf("frontier: transition of %s from %s to %s, but url is %s",
			url, from, to, current))
	}

	switch from {
	case BinOpenInternal:
		t.openInternal = removeFromQueue(t.openInternal, url)
	case BinOpenExternal:
		t.openExternal = removeFromQueue(t.openExternal, url)
	case BinInProgress:
		t.inProgress--
	case BinNone, BinClosed:
		panic(fmt.Sprintf("frontier: illegal transition source %s for %s", from, url))
	}

	switch to {
	case BinInProgress:
		t.inProgress++
	case BinClosed:
		t.closed++
	case BinNone, BinOpenInternal, BinOpenExternal:
		panic(fmt.Sprintf("frontier: illegal transition target %s for %s", to, url))
	}

	t.bins[url] = to
}

// removeFromQueue removes the destination with the given URL from a
// queue. Transitions normally pop the head, so the scan terminates on
// the first element.
func removeFromQueue(queue []*domain.Destination, url string) []*domain.Destination {
	for i, d := range queue {
		if d.URL == url {
			return append(queue[:i], queue[i+1:]...)
		}
	}

	panic(fmt.Sprintf("frontier: url %s tracked as queued but not present in queue", url))
}

// PopOpenInternal dequeues the next internal destination and marks it
// in-progress. Returns nil when the internal queue is empty.
func (t *Tracker) PopOpenInternal() *domain.Destination {
	if len(t.openInternal) == 0 {
		return nil
	}

	d := t.openInternal[0]
	t.Transition(d.URL, BinOpenInternal, BinInProgress)

	return d
}

// PopNext dequeues the next destination for dispatch, alternating
// between the internal and external queues: internal is preferred on
// even dispatch counts, external on odd. When the preferred queue is
// empty the other is drained. The popped destination is marked
// in-progress. Returns nil when both queues are empty.
func (t *Tracker) PopNext(dispatchCount int) *domain.Destination {
	preferExternal := dispatchCount%2 == 1

	var d *domain.Destination

	switch {
	case preferExternal && len(t.openExternal) > 0:
		d = t.openExternal[0]
		t.Transition(d.URL, BinOpenExternal, BinInProgress)
	case len(t.openInternal) > 0:
		d = t.openInternal[0]
		t.Transition(d.URL, BinOpenInternal, BinInProgress)
	case len(t.openExternal) > 0:
		d = t.openExternal[0]
		t.Transition(d.URL, BinOpenExternal, BinInProgress)
	default:
		return nil
	}

	return d
}

// Close marks an in-progress URL as finished.
func (t *Tracker) Close(url string) {
	t.Transition(url, BinInProgress, BinClosed)
}

// OpenInternalLen returns the internal queue length.
func (t *Tracker) OpenInternalLen() int {
	return len(t.openInternal)
}

// OpenExternalLen returns the external queue length.
func (t *Tracker) OpenExternalLen() int {
	return len(t.openExternal)
}

// InProgressLen returns the number of URLs submitted but not yet closed.
func (t *Tracker) InProgressLen() int {
	return t.inProgress
}

// ClosedLen returns the number of finished URLs.
func (t *Tracker) ClosedLen() int {
	return t.closed
}

// KnownLen returns the total number of URLs ever seen.
func (t *Tracker) KnownLen() int {
	return len(t.bins)
}

// Done reports crawl completion: nothing queued and nothing in flight.
func (t *Tracker) Done() bool {
	return len(t.openInternal) == 0 && len(t.openExternal) == 0 && t.inProgress == 0
}
