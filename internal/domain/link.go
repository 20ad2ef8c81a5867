package domain

// Link is a directed edge from a source page to a Destination, discovered
// while fetching the source page. Multiple links may reference the same
// logical destination; the merge step repoints them all at the single
// canonical Destination instance for that URL.
type Link struct {
	// Source is the URL of the page the link was found on.
	Source string

	// Target is the destination the link points at. After merging, every
	// link sharing a target URL holds the same *Destination.
	Target *Destination
}
