// Package extract turns rendered club directory nodes into models.Club records.
//
// The selectors below are the structural contract with the CampusGroups
// listing page. Any markup change upstream breaks extraction; nothing here
// tries to detect or mask that.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/use-agent/clubfeed/models"
)

const (
	// ItemSelector matches one club card. The renderer waits for it.
	ItemSelector = "li.list-group-item div[role='group']"

	// NotRegistered is the badge text of clubs that are not yet registered.
	NotRegistered = "Group Not Registered Yet"

	nameAttr = "aria-label"
)

var (
	badgeSel       = cascadia.MustCompile("span.badge.badge-warning")
	linkSel        = cascadia.MustCompile("a[target='_blank']")
	descriptionSel = cascadia.MustCompile("p.h5.media-heading.grey-element")
	imageSel       = cascadia.MustCompile("img.media-object.media-object--bordered")
)

// Clubs extracts one record per usable node, in document order. Nodes
// without a name and nodes badged as not registered are dropped silently;
// missing optional fields fall back to their defaults. Duplicates are kept.
//
// Relative link and image references are resolved against base when it is
// non-nil.
func Clubs(nodes *goquery.Selection, base *url.URL) []models.Club {
	clubs := make([]models.Club, 0, nodes.Length())

	nodes.Each(func(_ int, node *goquery.Selection) {
		name, _ := node.Attr(nameAttr)
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}

		if badge := textOf(node, badgeSel); badge.ok && badge.value == NotRegistered {
			return
		}

		link := attrOf(node, linkSel, "href").resolved(base)
		description := textOf(node, descriptionSel)
		image := attrOf(node, imageSel, "src").resolved(base)

		clubs = append(clubs, models.Club{
			Name:        name,
			Description: description.or(models.NoDescription),
			URL:         link.or(""),
			Image:       image.or(""),
		})
	})

	return clubs
}

// FromDocument extracts clubs from an already parsed directory document,
// resolving references against the document's URL.
func FromDocument(doc *goquery.Document) []models.Club {
	return Clubs(doc.Find(ItemSelector), doc.Url)
}
