package extract

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/use-agent/clubfeed/models"
)

// card renders one club list item in the shape the directory page uses.
func card(attrs, inner string) string {
	return `<li class="list-group-item"><div role="group" ` + attrs + `>` + inner + `</div></li>`
}

func parse(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><ul>" + body + "</ul></body></html>"))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestClubs_DirectoryScenario(t *testing.T) {
	doc := parse(t,
		card(`aria-label="Chess Club"`,
			`<a target="_blank" href="https://x/chess">site</a>
			 <p class="h5 media-heading grey-element">We play chess.</p>
			 <img class="media-object media-object--bordered" src="https://x/img1.png">`)+
			card(`aria-label="Robotics Club"`,
				`<span class="badge badge-warning"> Group Not Registered Yet </span>
				 <a target="_blank" href="https://x/robots">site</a>
				 <p class="h5 media-heading grey-element">We build robots.</p>`)+
			card(``, `<p class="h5 media-heading grey-element">Nameless.</p>`),
	)

	got := Clubs(doc.Find(ItemSelector), nil)
	want := []models.Club{{
		Name:        "Chess Club",
		Description: "We play chess.",
		URL:         "https://x/chess",
		Image:       "https://x/img1.png",
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Clubs() mismatch (-want +got):\n%s", diff)
	}
}

func TestClubs_MissingOptionalFieldsUseDefaults(t *testing.T) {
	doc := parse(t, card(`aria-label="  Knitting Circle  "`, `<span>nothing useful</span>`))

	got := Clubs(doc.Find(ItemSelector), nil)
	want := []models.Club{{Name: "Knitting Circle", Description: models.NoDescription}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Clubs() mismatch (-want +got):\n%s", diff)
	}
}

func TestClubs_FieldsAreIndependent(t *testing.T) {
	// Image only: the missing link and description must not affect it.
	doc := parse(t, card(`aria-label="Photo Club"`,
		`<img class="media-object media-object--bordered" src="https://x/photo.png">
		 <a href="https://x/not-blank">same tab link is ignored</a>
		 <p class="h5 media-heading grey-element">   </p>`))

	got := Clubs(doc.Find(ItemSelector), nil)
	want := []models.Club{{
		Name:        "Photo Club",
		Description: models.NoDescription,
		Image:       "https://x/photo.png",
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Clubs() mismatch (-want +got):\n%s", diff)
	}
}

func TestClubs_SkipsBlankNames(t *testing.T) {
	doc := parse(t,
		card(`aria-label="   "`, `<a target="_blank" href="https://x/a">a</a>`)+
			card(`data-x="1"`, `<a target="_blank" href="https://x/b">b</a>`),
	)
	if got := Clubs(doc.Find(ItemSelector), nil); len(got) != 0 {
		t.Errorf("expected no records for nameless nodes, got %+v", got)
	}
}

func TestClubs_OtherBadgesDoNotSkip(t *testing.T) {
	doc := parse(t,
		card(`aria-label="Almost Club"`, `<span class="badge badge-warning">Group Not Registered Yet!</span>`)+
			card(`aria-label="New Club"`, `<span class="badge badge-warning">New</span>`),
	)

	got := Clubs(doc.Find(ItemSelector), nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(got), got)
	}
}

func TestClubs_PreservesOrderAndDuplicates(t *testing.T) {
	doc := parse(t,
		card(`aria-label="Zeta"`, ``)+
			card(`aria-label="Alpha"`, ``)+
			card(`aria-label="Zeta"`, ``),
	)

	var names []string
	for _, c := range Clubs(doc.Find(ItemSelector), nil) {
		names = append(names, c.Name)
	}
	if diff := cmp.Diff([]string{"Zeta", "Alpha", "Zeta"}, names); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestClubs_ResolvesRelativeReferences(t *testing.T) {
	doc := parse(t, card(`aria-label="Debate"`,
		`<a target="_blank" href=" /feeds?type=club&amp;id=42 ">x</a>
		 <img class="media-object media-object--bordered" src="logos/debate.png">`))
	base, _ := url.Parse("https://arizona.campusgroups.com/club_signup?view=all")

	got := Clubs(doc.Find(ItemSelector), base)
	want := []models.Club{{
		Name:        "Debate",
		Description: models.NoDescription,
		URL:         "https://arizona.campusgroups.com/feeds?type=club&id=42",
		Image:       "https://arizona.campusgroups.com/logos/debate.png",
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Clubs() mismatch (-want +got):\n%s", diff)
	}
}

func TestClubs_EmptySelection(t *testing.T) {
	doc := parse(t, "")
	got := Clubs(doc.Find(ItemSelector), nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestFromDocument_UsesDocumentURL(t *testing.T) {
	doc := parse(t, card(`aria-label="Go Club"`, `<a target="_blank" href="/go">go</a>`))
	doc.Url, _ = url.Parse("https://example.edu/clubs")

	got := FromDocument(doc)
	if len(got) != 1 || got[0].URL != "https://example.edu/go" {
		t.Errorf("FromDocument() = %+v", got)
	}
}
