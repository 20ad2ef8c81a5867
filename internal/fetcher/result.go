package fetcher

import "github.com/jonesrussell/golinkcheck/internal/domain"

// Result is one completed check emitted by the worker pool: the
// destination that was fetched, its outcome, and the links discovered on
// the page. Results arrive in completion order, not submission order.
type Result struct {
	Destination *domain.Destination
	Outcome     domain.Outcome
	Links       []*domain.Link
}
