package blog

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-blogkit/internal/feed"
	"github.com/goliatone/go-blogkit/internal/markdown"
	"github.com/goliatone/go-blogkit/internal/pipeline"
	"github.com/goliatone/go-blogkit/internal/posts"
)

func content() fstest.MapFS {
	return fstest.MapFS{
		"posts/hello/post.md":   {Data: []byte("---\ntitle: Hello\ndate: 2024-06-01\npreview: hi there\n---\n> [!TIP]\n> Read on\n")},
		"posts/older/post.md":   {Data: []byte("---\ntitle: Older\ndate: 2024-01-01\n---\nOld news\n")},
		"drafts/secret/post.md": {Data: []byte("---\ntitle: Secret\ndate: 2024-07-01\n---\nNot yet\n")},
	}
}

func newService(mode string) *Service {
	loader := markdown.NewLoader(content(), markdown.LoaderConfig{BasePath: "content"})
	return NewService(loader, pipeline.New(pipeline.Options{}), Config{
		Mode: mode,
		Site: feed.Site{Title: "Blog", BaseURL: "https://blog.example"},
	}, nil)
}

func TestServicePosts(t *testing.T) {
	list, err := newService("production").Posts(context.Background())
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}
	if len(list) != 2 || list[0].Slug != "hello" || list[1].Slug != "older" {
		t.Fatalf("unexpected posts %#v", list)
	}
}

func TestServiceDrafts(t *testing.T) {
	drafts, err := newService("production").Drafts(context.Background())
	if err != nil {
		t.Fatalf("Drafts: %v", err)
	}
	if len(drafts) != 1 || drafts[0].Slug != posts.ObfuscatedSlug("content/drafts/secret/post.md") {
		t.Fatalf("unexpected drafts %#v", drafts)
	}
}

func TestServiceRender(t *testing.T) {
	svc := newService("production")

	rendered, err := svc.Render(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(rendered.HTML, `<aside class="aside tip">`) || rendered.Title != "Hello" {
		t.Fatalf("unexpected rendered post %#v", rendered)
	}

	draftSlug := posts.ObfuscatedSlug("content/drafts/secret/post.md")
	draft, err := svc.Render(context.Background(), draftSlug)
	if err != nil {
		t.Fatalf("Render draft: %v", err)
	}
	if draft.HTML != "<p>Not yet</p>" || !draft.Draft {
		t.Fatalf("unexpected draft render %#v", draft)
	}

	if _, err := svc.Render(context.Background(), "secret"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected draft hidden behind its directory slug, got %v", err)
	}
}

func TestServiceRenderAll(t *testing.T) {
	out, err := newService(posts.ModeDevelopment).RenderAll(context.Background())
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected drafts rendered in development, got %d", len(out))
	}
	if out[0].Title != "Secret" || out[2].HTML != "<p>Old news</p>" {
		t.Fatalf("unexpected render order %#v", out)
	}
}

func TestServiceFeedXML(t *testing.T) {
	xml, err := newService("production").FeedXML(context.Background(), time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("FeedXML: %v", err)
	}
	for _, want := range []string{"<title>Blog</title>", "<link>https://blog.example/hello</link>", "<description>hi there</description>"} {
		if !strings.Contains(xml, want) {
			t.Fatalf("expected %q in feed:\n%s", want, xml)
		}
	}
	if strings.Contains(xml, "Secret") {
		t.Fatalf("expected drafts excluded from production feed")
	}
}

type failingSource struct{}

func (failingSource) Load(context.Context) ([]posts.Record, error) {
	return nil, errors.New("disk on fire")
}

func TestServicePropagatesSourceErrors(t *testing.T) {
	svc := NewService(failingSource{}, pipeline.New(pipeline.Options{}), Config{}, nil)
	if _, err := svc.Posts(context.Background()); err == nil || !strings.Contains(err.Error(), "disk on fire") {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}
