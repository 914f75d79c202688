// Package feed assembles the RSS descriptor of the published posts and
// encodes it as RSS 2.0.
package feed

import (
	"github.com/goliatone/go-blogkit/internal/posts"
	"github.com/goliatone/go-blogkit/internal/util"
)

const (
	defaultTitle       = "Simple Blog RSS"
	defaultDescription = "Simple Blog RSS Feed"
	defaultLanguage    = "en-us"
)

// Site carries the channel level metadata. Empty fields fall back to defaults.
type Site struct {
	Title       string
	Description string
	BaseURL     string
	Language    string
	// StylesheetHref is referenced by the xml-stylesheet instruction when the
	// feed asks for one.
	StylesheetHref string
}

// Feed is the serializer independent feed descriptor.
type Feed struct {
	Title       string
	Description string
	Stylesheet  bool
	CustomData  string
	Items       []Item
}

// Item is one published post.
type Item struct {
	Title       string
	Description string
	Link        string
	PubDate     string
}

// RSS maps the published posts of records to a feed descriptor, in the same
// order Published returns them.
func RSS(records []posts.Record, classifier posts.Classifier, site Site) Feed {
	published := classifier.Published(records)
	items := make([]Item, 0, len(published))
	for _, post := range published {
		items = append(items, Item{
			Title:       post.Title,
			Description: post.Preview,
			Link:        post.Slug,
			PubDate:     post.Date,
		})
	}

	return Feed{
		Title:       util.FirstNonEmpty(site.Title, defaultTitle),
		Description: util.FirstNonEmpty(site.Description, defaultDescription),
		Stylesheet:  true,
		CustomData:  "<language>" + escapeXML(util.FirstNonEmpty(site.Language, defaultLanguage)) + "</language>",
		Items:       items,
	}
}
