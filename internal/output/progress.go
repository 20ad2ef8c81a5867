package output

import (
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/jonesrussell/golinkcheck/internal/domain"
)

// Progress renders a live progress bar as destinations close. The total
// grows as new URLs are discovered, so the bar's max is adjusted on
// every update.
type Progress struct {
	bar *progressbar.ProgressBar
}

// NewProgress creates a progress bar writing to out.
func NewProgress(out io.Writer) *Progress {
	bar := progressbar.NewOptions(1,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("checking links"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &Progress{bar: bar}
}

// DestinationClosed advances the bar to the current closed count against
// the number of known URLs.
func (p *Progress) DestinationClosed(_ *domain.Destination, closed, known int) {
	p.bar.ChangeMax(known)

	_ = p.bar.Set(closed)
}

// Finish clears the bar.
func (p *Progress) Finish() {
	_ = p.bar.Finish()
}
