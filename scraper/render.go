package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod/lib/proto"
	"github.com/use-agent/clubfeed/models"
	"github.com/ysmood/gson"
)

// Render loads t.URL in a fresh incognito context and waits until at least
// one node matches t.ReadySelector.
//
// Lifecycle:
//
//  1. Deadline      – t.Timeout bounds everything below
//  2. Incognito     – isolated browser context; DEFER dispose
//  3. Page          – new tab inside the context; DEFER close
//  4. Hijack        – block heavy resource types (before navigation!)
//  5. Headers       – extra request headers (before navigation!)
//  6. Navigate      – load the page
//  7. Wait          – poll for t.ReadySelector until the deadline
//  8. Snapshot      – serialize the DOM and re-parse it with goquery
//
// Every defer uses the original handles (not the deadline-bound page), so
// release succeeds even after the deadline has passed.
func (s *Scraper) Render(ctx context.Context, t Target) (*Rendered, error) {
	// ── 1. Deadline ──────────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(ctx, t.Timeout)
	defer cancel()

	start := time.Now()

	// ── 2. Incognito context ─────────────────────────────────────────
	incognito, err := s.browser.Incognito()
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to open incognito context",
			err,
		)
	}
	defer func() {
		if closeErr := incognito.Close(); closeErr != nil {
			slog.Warn("cleanup: failed to dispose incognito context", "error", closeErr)
		}
	}()

	// ── 3. Page ──────────────────────────────────────────────────────
	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to create page",
			err,
		)
	}
	defer func() {
		if closeErr := page.Close(); closeErr != nil {
			slog.Debug("cleanup: failed to close page", "error", closeErr)
		}
	}()

	// ── 4. Resource blocking ─────────────────────────────────────────
	router := setupHijack(page, s.cfg.BlockedResourceTypes)
	if router != nil {
		defer func() { _ = router.Stop() }()
	}

	// ── 5. Extra headers ─────────────────────────────────────────────
	if s.cfg.AcceptLanguage != "" {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: toHeadersMap(map[string]string{"Accept-Language": s.cfg.AcceptLanguage}),
		}.Call(page)
	}

	p := page.Context(ctx)

	// ── 6. Navigate ──────────────────────────────────────────────────
	if err := p.Navigate(t.URL); err != nil {
		return nil, categorizeError(err, "navigation to "+t.URL+" failed")
	}

	// ── 7. Readiness ─────────────────────────────────────────────────
	if _, err := p.Element(t.ReadySelector); err != nil {
		return nil, categorizeError(err, "no node matched "+t.ReadySelector)
	}

	// ── 8. Snapshot ──────────────────────────────────────────────────
	rawHTML, err := p.HTML()
	if err != nil {
		return nil, categorizeError(err, "failed to read rendered HTML")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeInternal, "failed to parse rendered HTML", err)
	}

	finalURL := t.URL
	if info, infoErr := p.Info(); infoErr == nil && info.URL != "" {
		finalURL = info.URL
	}
	doc.Url, _ = url.Parse(finalURL)

	nodes := doc.Find(t.ReadySelector)
	slog.Debug("page rendered",
		"url", finalURL,
		"nodes", nodes.Length(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	return &Rendered{Nodes: nodes, URL: doc.Url}, nil
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}

// categorizeError wraps raw rod errors into typed ScrapeErrors so callers
// can tell a page that never became ready from one that never loaded.
func categorizeError(err error, msg string) *models.ScrapeError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewScrapeError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewScrapeError(models.ErrCodeTimeout, "render canceled", err)
	default:
		return models.NewScrapeError(models.ErrCodeNavigation, msg, err)
	}
}
