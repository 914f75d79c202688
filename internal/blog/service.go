// Package blog composes post discovery, classification, rendering and the
// feed into the operations the commands and CLI expose.
package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-blogkit/internal/feed"
	"github.com/goliatone/go-blogkit/internal/logging"
	"github.com/goliatone/go-blogkit/internal/posts"
	"github.com/goliatone/go-blogkit/pkg/interfaces"
)

// ErrPostNotFound is returned when no visible post carries the slug.
var ErrPostNotFound = errors.New("blog: post not found")

// Source supplies raw post records.
type Source interface {
	Load(ctx context.Context) ([]posts.Record, error)
}

// Renderer is a Markdown renderer able to render documents in bulk.
type Renderer interface {
	interfaces.MarkdownRenderer
	RenderAll(ctx context.Context, docs [][]byte) ([][]byte, error)
}

// Config carries the execution mode and the feed channel metadata.
type Config struct {
	Mode string
	Site feed.Site
}

// RenderedPost is a post with its body rendered to HTML.
type RenderedPost struct {
	posts.Post
	HTML string
}

// Service is safe for concurrent use when its source and renderer are.
type Service struct {
	source     Source
	renderer   Renderer
	classifier posts.Classifier
	site       feed.Site
	logger     interfaces.Logger
}

// NewService wires a Service. logger may be nil.
func NewService(source Source, renderer Renderer, cfg Config, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		source:     source,
		renderer:   renderer,
		classifier: posts.New(cfg.Mode),
		site:       cfg.Site,
		logger:     logger,
	}
}

// Classifier returns the classifier bound to the configured mode.
func (s *Service) Classifier() posts.Classifier {
	return s.classifier
}

// Site returns the feed channel metadata.
func (s *Service) Site() feed.Site {
	return s.site
}

// Records loads the raw post records.
func (s *Service) Records(ctx context.Context) ([]posts.Record, error) {
	records, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("blog: load posts: %w", err)
	}
	s.logger.Debug("posts.loaded", "count", len(records))
	return records, nil
}

// Posts returns the published posts, newest first.
func (s *Service) Posts(ctx context.Context) ([]posts.Post, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	return s.classifier.Published(records), nil
}

// Drafts returns the drafts, newest first, with obfuscated slugs.
func (s *Service) Drafts(ctx context.Context) ([]posts.Post, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	return s.classifier.Drafted(records), nil
}

// Render renders the post with slug. Published posts are searched first,
// then drafts by their obfuscated slug.
func (s *Service) Render(ctx context.Context, slug string) (RenderedPost, error) {
	slug = strings.TrimSpace(slug)
	records, err := s.Records(ctx)
	if err != nil {
		return RenderedPost{}, err
	}

	post, ok := find(s.classifier.Published(records), slug)
	if !ok {
		post, ok = find(s.classifier.Drafted(records), slug)
	}
	if !ok {
		return RenderedPost{}, fmt.Errorf("%w: %s", ErrPostNotFound, slug)
	}

	html, err := s.renderer.Render(ctx, []byte(post.Content))
	if err != nil {
		return RenderedPost{}, fmt.Errorf("blog: render %s: %w", post.FilePath, err)
	}
	logging.WithPostContext(s.logger, post.FilePath, post.Slug, "render").Info("post.rendered")
	return RenderedPost{Post: post, HTML: string(html)}, nil
}

// RenderAll renders every published post in listing order.
func (s *Service) RenderAll(ctx context.Context) ([]RenderedPost, error) {
	published, err := s.Posts(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([][]byte, len(published))
	for i, post := range published {
		docs[i] = []byte(post.Content)
	}
	htmls, err := s.renderer.RenderAll(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("blog: render posts: %w", err)
	}

	out := make([]RenderedPost, len(published))
	for i, post := range published {
		out[i] = RenderedPost{Post: post, HTML: string(htmls[i])}
	}
	s.logger.Info("posts.rendered", "count", len(out))
	return out, nil
}

// Feed returns the RSS descriptor of the published posts.
func (s *Service) Feed(ctx context.Context) (feed.Feed, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return feed.Feed{}, err
	}
	return feed.RSS(records, s.classifier, s.site), nil
}

// FeedXML returns the encoded RSS document.
func (s *Service) FeedXML(ctx context.Context, generatedAt time.Time) (string, error) {
	descriptor, err := s.Feed(ctx)
	if err != nil {
		return "", err
	}
	return feed.EncodeRSS(descriptor, s.site, generatedAt), nil
}

func find(list []posts.Post, slug string) (posts.Post, bool) {
	for _, post := range list {
		if post.Slug == slug {
			return post, true
		}
	}
	return posts.Post{}, false
}
