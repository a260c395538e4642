package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/use-agent/clubfeed/scraper"
)

// DefaultPageURL is the engineering 4-year-degree page.
const DefaultPageURL = "https://engineering.arizona.edu/current/4-year-degree"

// DefaultTerm selects the academic year of the plans to keep.
const DefaultTerm = "2025-2026"

// Renderer renders a page until its ready selector matches.
type Renderer interface {
	Render(ctx context.Context, t scraper.Target) (*scraper.Rendered, error)
}

// Find renders pageURL and returns the PDF links whose title contains term.
func Find(ctx context.Context, r Renderer, pageURL, term string, timeout time.Duration) ([]Link, error) {
	rendered, err := r.Render(ctx, scraper.Target{
		URL:           pageURL,
		ReadySelector: PDFSelector,
		Timeout:       timeout,
	})
	if err != nil {
		return nil, err
	}

	links := Links(rendered.Nodes, rendered.URL, term)
	slog.Info("catalog links found",
		"page", pageURL,
		"anchors", rendered.Nodes.Length(),
		"term", term,
		"kept", len(links),
	)
	return links, nil
}
