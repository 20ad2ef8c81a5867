package crawler

import "github.com/jonesrussell/golinkcheck/internal/domain"

// Observer receives a callback each time a destination closes, for
// progress display. The scheduler loop invokes it synchronously, so
// implementations must be fast and must not call back into the crawler.
type Observer interface {
	// DestinationClosed reports one closed destination along with the
	// current closed and known counts.
	DestinationClosed(d *domain.Destination, closed, known int)
}

// NoopObserver ignores all progress callbacks.
type NoopObserver struct{}

// DestinationClosed implements Observer.
func (NoopObserver) DestinationClosed(*domain.Destination, int, int) {}
