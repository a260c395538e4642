// Package catalog finds the degree-plan PDFs published on the engineering
// 4-year-degree page and downloads them.
package catalog

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// PDFSelector matches anchors that point at a PDF document.
const PDFSelector = "a[href$='.pdf']"

var pdfLink = cascadia.MustCompile(PDFSelector)

// Link is one PDF anchor kept for download.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Links keeps the PDF anchors in nodes whose title contains term, in
// document order. Hrefs are resolved against base when it is non-nil.
// Repeated URLs are kept once.
func Links(nodes *goquery.Selection, base *url.URL, term string) []Link {
	links := []Link{}
	seen := make(map[string]bool)

	nodes.FilterMatcher(pdfLink).Each(func(_ int, a *goquery.Selection) {
		title := strings.TrimSpace(a.AttrOr("title", ""))
		if !strings.Contains(title, term) {
			return
		}
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if base != nil {
			if ref, err := url.Parse(href); err == nil {
				href = base.ResolveReference(ref).String()
			}
		}
		if href == "" || seen[href] {
			return
		}
		seen[href] = true
		links = append(links, Link{Title: title, URL: href})
	})
	return links
}

// LinksFromDocument runs Links over every PDF anchor in doc.
func LinksFromDocument(doc *goquery.Document, term string) []Link {
	return Links(doc.FindMatcher(pdfLink), doc.Url, term)
}

// FileName is the last segment of rawURL's decoded path, the name a
// download is saved under. It is empty when the path has no segment.
func FileName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	p := strings.TrimRight(u.Path, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}
