package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-blogkit/internal/posts"
)

func sampleRecords() []posts.Record {
	return []posts.Record{
		{
			FrontMatter: posts.FrontMatter{Title: "Older", Preview: "first post", Date: "2024-01-01"},
			FilePath:    "content/posts/older/post.md",
		},
		{
			FrontMatter: posts.FrontMatter{Title: "Newer & better", Preview: "second post", Date: "2024-06-01"},
			FilePath:    "content/posts/newer/post.md",
		},
		{
			FrontMatter: posts.FrontMatter{Title: "Hidden", Date: "2024-07-01"},
			FilePath:    "content/drafts/hidden/post.md",
		},
	}
}

func TestRSSDescriptor(t *testing.T) {
	feed := RSS(sampleRecords(), posts.New("production"), Site{})

	if feed.Title != defaultTitle || feed.Description != defaultDescription {
		t.Fatalf("expected default channel metadata, got %q / %q", feed.Title, feed.Description)
	}
	if !feed.Stylesheet {
		t.Fatalf("expected stylesheet flag")
	}
	if feed.CustomData != "<language>en-us</language>" {
		t.Fatalf("unexpected custom data %q", feed.CustomData)
	}
	if len(feed.Items) != 2 {
		t.Fatalf("expected drafts excluded, got %d items", len(feed.Items))
	}
	first := feed.Items[0]
	if first.Title != "Newer & better" || first.Description != "second post" || first.Link != "newer" || first.PubDate != "2024-06-01" {
		t.Fatalf("unexpected first item %#v", first)
	}
	if feed.Items[1].Link != "older" {
		t.Fatalf("expected published order, got %#v", feed.Items[1])
	}
}

func TestRSSDevelopmentIncludesObfuscatedDrafts(t *testing.T) {
	feed := RSS(sampleRecords(), posts.New(posts.ModeDevelopment), Site{Title: "Site"})
	if len(feed.Items) != 3 {
		t.Fatalf("expected drafts in development, got %d", len(feed.Items))
	}
	if !strings.HasPrefix(feed.Items[0].Link, "draft-") {
		t.Fatalf("expected obfuscated draft link, got %q", feed.Items[0].Link)
	}
	if feed.Title != "Site" {
		t.Fatalf("expected site title override, got %q", feed.Title)
	}
}

func TestEncodeRSS(t *testing.T) {
	site := Site{BaseURL: "https://example.com/blog/"}
	feed := RSS(sampleRecords(), posts.New(""), site)
	generated := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)

	out := EncodeRSS(feed, site, generated)

	for _, want := range []string{
		`<?xml-stylesheet href="/rss/styles.xsl" type="text/xsl"?>`,
		"<title>Simple Blog RSS</title>",
		"<link>https://example.com/blog</link>",
		"<language>en-us</language>",
		"<title>Newer &amp; better</title>",
		"<link>https://example.com/blog/newer</link>",
		"<pubDate>Sat, 01 Jun 2024 00:00:00 +0000</pubDate>",
		"<lastBuildDate>Thu, 01 Aug 2024 12:00:00 +0000</lastBuildDate>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in feed:\n%s", want, out)
		}
	}
	if strings.Index(out, "newer") > strings.Index(out, "older") {
		t.Fatalf("expected newest item first")
	}
}

func TestEncodeRSSKeepsUnparsableDates(t *testing.T) {
	feed := Feed{Title: "t", Items: []Item{{Title: "x", Link: "x", PubDate: "someday"}}}
	out := EncodeRSS(feed, Site{}, time.Unix(0, 0))
	if !strings.Contains(out, "<pubDate>someday</pubDate>") {
		t.Fatalf("expected raw date kept, got:\n%s", out)
	}
	if strings.Contains(out, "xml-stylesheet") {
		t.Fatalf("expected no stylesheet when the flag is off")
	}
}
