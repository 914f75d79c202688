package postscmd

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blogkit/internal/blog"
	"github.com/goliatone/go-blogkit/internal/feed"
	"github.com/goliatone/go-blogkit/internal/logging"
	"github.com/goliatone/go-blogkit/internal/markdown"
	"github.com/goliatone/go-blogkit/internal/pipeline"
	"github.com/goliatone/go-blogkit/internal/posts"
	"github.com/goliatone/go-blogkit/pkg/testsupport"
)

type recordingPresenter struct {
	lists    [][]posts.Post
	rendered []blog.RenderedPost
	feeds    []string
}

func (p *recordingPresenter) PresentPosts(_ context.Context, list []posts.Post) error {
	p.lists = append(p.lists, list)
	return nil
}

func (p *recordingPresenter) PresentPost(_ context.Context, post blog.RenderedPost) error {
	p.rendered = append(p.rendered, post)
	return nil
}

func (p *recordingPresenter) PresentFeed(_ context.Context, xml string) error {
	p.feeds = append(p.feeds, xml)
	return nil
}

func newBlog() *blog.Service {
	loader := markdown.NewLoader(testsupport.SampleContent(), markdown.LoaderConfig{BasePath: "content"})
	return blog.NewService(loader, pipeline.New(pipeline.Options{}), blog.Config{
		Site: feed.Site{Title: "Blog", BaseURL: "https://blog.example"},
	}, nil)
}

func TestListPostsHandler(t *testing.T) {
	presenter := &recordingPresenter{}
	handler := NewListPostsHandler(newBlog(), presenter, logging.NoOp())

	if err := handler.Execute(context.Background(), ListPostsCommand{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if err := handler.Execute(context.Background(), ListPostsCommand{Drafts: true}); err != nil {
		t.Fatalf("Execute drafts: %v", err)
	}
	if err := handler.Execute(context.Background(), ListPostsCommand{Limit: 1}); err != nil {
		t.Fatalf("Execute limit: %v", err)
	}

	if len(presenter.lists) != 3 {
		t.Fatalf("expected three presentations, got %d", len(presenter.lists))
	}
	if got := presenter.lists[0]; len(got) != 2 || got[0].Slug != "hello" {
		t.Fatalf("unexpected published list %#v", got)
	}
	if got := presenter.lists[1]; len(got) != 1 || !strings.HasPrefix(got[0].Slug, "draft-") {
		t.Fatalf("unexpected drafts list %#v", got)
	}
	if got := presenter.lists[2]; len(got) != 1 || got[0].Slug != "hello" {
		t.Fatalf("expected newest post only, got %#v", got)
	}
}

func TestListPostsHandlerRejectsInvalidMessage(t *testing.T) {
	presenter := &recordingPresenter{}
	handler := NewListPostsHandler(newBlog(), presenter, nil)

	err := handler.Execute(context.Background(), ListPostsCommand{Limit: -1})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(presenter.lists) != 0 {
		t.Fatal("expected no presentation on invalid message")
	}
}

func TestRenderPostHandler(t *testing.T) {
	presenter := &recordingPresenter{}
	handler := NewRenderPostHandler(newBlog(), presenter, logging.NoOp())

	if err := handler.Execute(context.Background(), RenderPostCommand{Slug: "hello"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(presenter.rendered) != 1 || !strings.Contains(presenter.rendered[0].HTML, `<aside class="aside tip">`) {
		t.Fatalf("unexpected rendered post %#v", presenter.rendered)
	}

	if err := handler.Execute(context.Background(), RenderPostCommand{All: true}); err != nil {
		t.Fatalf("Execute all: %v", err)
	}
	if len(presenter.rendered) != 3 || presenter.rendered[1].Slug != "hello" || presenter.rendered[2].Slug != "older" {
		t.Fatalf("expected all published posts in order, got %d", len(presenter.rendered))
	}
}

func TestRenderPostHandlerNotFound(t *testing.T) {
	handler := NewRenderPostHandler(newBlog(), &recordingPresenter{}, logging.NoOp())

	err := handler.Execute(context.Background(), RenderPostCommand{Slug: "missing"})
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category, got %v", err)
	}
}

func TestHandlersRequirePresenter(t *testing.T) {
	handler := NewListPostsHandler(newBlog(), nil, logging.NoOp())
	err := handler.Execute(context.Background(), ListPostsCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestBuildFeedHandler(t *testing.T) {
	presenter := &recordingPresenter{}
	clock := func() time.Time { return time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC) }
	handler := NewBuildFeedHandler(newBlog(), presenter, logging.NoOp(), clock)

	if err := handler.Execute(context.Background(), BuildFeedCommand{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if err := handler.Execute(context.Background(), BuildFeedCommand{Limit: 1}); err != nil {
		t.Fatalf("Execute limit: %v", err)
	}

	full := presenter.feeds[0]
	for _, want := range []string{
		"<title>Blog</title>",
		"<link>https://blog.example/hello</link>",
		"<link>https://blog.example/older</link>",
		"<lastBuildDate>Thu, 01 Aug 2024 12:00:00 +0000</lastBuildDate>",
	} {
		if !strings.Contains(full, want) {
			t.Fatalf("expected %q in feed:\n%s", want, full)
		}
	}
	if strings.Contains(presenter.feeds[1], "/older</link>") {
		t.Fatalf("expected limited feed to drop older item:\n%s", presenter.feeds[1])
	}
}

type failingService struct {
	Service
}

func (failingService) Feed(context.Context) (feed.Feed, error) {
	return feed.Feed{}, errors.New("disk gone")
}

func TestBuildFeedHandlerWrapsServiceError(t *testing.T) {
	handler := NewBuildFeedHandler(failingService{}, &recordingPresenter{}, logging.NoOp(), nil)
	err := handler.Execute(context.Background(), BuildFeedCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}
