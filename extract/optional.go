package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// optional is the result of a single field lookup. A lookup that finds no
// node, no attribute, or only whitespace is absent.
type optional struct {
	value string
	ok    bool
}

func present(v string) optional {
	v = strings.TrimSpace(v)
	return optional{value: v, ok: v != ""}
}

// or returns the value, or def when the field is absent.
func (o optional) or(def string) string {
	if o.ok {
		return o.value
	}
	return def
}

// attrOf reads attr from the first descendant of node matching m.
func attrOf(node *goquery.Selection, m goquery.Matcher, attr string) optional {
	v, exists := node.FindMatcher(m).First().Attr(attr)
	if !exists {
		return optional{}
	}
	return present(v)
}

// textOf reads the text content of the first descendant of node matching m.
func textOf(node *goquery.Selection, m goquery.Matcher) optional {
	sel := node.FindMatcher(m).First()
	if sel.Length() == 0 {
		return optional{}
	}
	return present(sel.Text())
}

// resolved turns a present relative reference into an absolute URL against
// base. Values that fail to parse are kept as written.
func (o optional) resolved(base *url.URL) optional {
	if !o.ok || base == nil {
		return o
	}
	ref, err := url.Parse(o.value)
	if err != nil {
		return o
	}
	return optional{value: base.ResolveReference(ref).String(), ok: true}
}
