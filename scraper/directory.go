package scraper

import (
	"context"
	"time"

	"github.com/use-agent/clubfeed/extract"
	"github.com/use-agent/clubfeed/models"
)

// Directory renders the club directory page and extracts its records.
// It holds no state between calls.
type Directory struct {
	scraper *Scraper
	target  Target
}

// NewDirectory binds s to the club directory at pageURL.
func NewDirectory(s *Scraper, pageURL string, timeout time.Duration) *Directory {
	return &Directory{
		scraper: s,
		target: Target{
			URL:           pageURL,
			ReadySelector: extract.ItemSelector,
			Timeout:       timeout,
		},
	}
}

// Fetch renders the directory once and returns its clubs in page order.
func (d *Directory) Fetch(ctx context.Context) ([]models.Club, error) {
	rendered, err := d.scraper.Render(ctx, d.target)
	if err != nil {
		return nil, err
	}
	return extract.Clubs(rendered.Nodes, rendered.URL), nil
}
