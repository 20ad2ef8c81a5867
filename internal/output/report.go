// Package output renders crawl results for the command line: a link
// report table and a live progress bar.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jonesrussell/golinkcheck/internal/domain"
	"github.com/jonesrussell/golinkcheck/internal/metrics"
)

// Renderer formats and displays discovered links in a table format.
type Renderer struct {
	out        io.Writer
	brokenOnly bool
}

// NewRenderer creates a renderer writing to out. When brokenOnly is set
// only broken destinations are listed; the summary always covers the
// whole crawl.
func NewRenderer(out io.Writer, brokenOnly bool) *Renderer {
	return &Renderer{
		out:        out,
		brokenOnly: brokenOnly,
	}
}

// RenderTable formats and displays the links in a table format, followed
// by a one-line crawl summary.
func (r *Renderer) RenderTable(links []*domain.Link, stats *metrics.Metrics) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Source", "Destination", "Status"})

	rows := 0

	for _, link := range r.filter(links) {
		t.AppendRow(table.Row{
			link.Source,
			link.Target.URL,
			link.Target.StatusDescription(),
		})

		rows++
	}

	if rows > 0 {
		t.Render()
	} else if r.brokenOnly {
		fmt.Fprintln(r.out, "No broken links found.")
	} else {
		fmt.Fprintln(r.out, "No links found.")
	}

	fmt.Fprintf(r.out, "Checked %d destinations (%d broken, %d skipped) in %s\n",
		stats.CheckedCount(), stats.BrokenCount(), stats.SkippedCount(),
		stats.Duration().Round(10*time.Millisecond))
}

// filter drops duplicate edges and, in broken-only mode, every link
// whose destination is not broken.
func (r *Renderer) filter(links []*domain.Link) []*domain.Link {
	type edge struct {
		source string
		target string
	}

	seen := make(map[edge]bool, len(links))
	filtered := make([]*domain.Link, 0, len(links))

	for _, link := range links {
		if r.brokenOnly && !link.Target.IsBroken() {
			continue
		}

		e := edge{source: link.Source, target: link.Target.URL}
		if seen[e] {
			continue
		}

		seen[e] = true

		filtered = append(filtered, link)
	}

	return filtered
}

// HasBroken reports whether any link points at a broken destination.
func HasBroken(links []*domain.Link) bool {
	for _, link := range links {
		if link.Target.IsBroken() {
			return true
		}
	}

	return false
}
