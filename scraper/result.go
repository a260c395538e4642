package scraper

import (
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Target describes a page to render and the structural condition that
// marks it ready.
type Target struct {
	// URL is the page to load.
	URL string

	// ReadySelector must match at least one node before the page counts
	// as rendered.
	ReadySelector string

	// Timeout bounds navigation plus the readiness wait.
	Timeout time.Duration
}

// Rendered is the outcome of a successful render. It is a detached copy of
// the DOM: the browser session is already released when it is returned.
type Rendered struct {
	// Nodes are the elements matching Target.ReadySelector, in document order.
	Nodes *goquery.Selection

	// URL is the page URL after redirects, used to resolve relative links.
	URL *url.URL
}
