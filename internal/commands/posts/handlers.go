// Package postscmd exposes the blog operations as go-command handlers.
package postscmd

import (
	"context"
	"errors"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-blogkit/internal/blog"
	"github.com/goliatone/go-blogkit/internal/commands"
	"github.com/goliatone/go-blogkit/internal/feed"
	"github.com/goliatone/go-blogkit/internal/posts"
	"github.com/goliatone/go-blogkit/pkg/interfaces"
)

const (
	listOperation   = "posts.list"
	renderOperation = "posts.render"
	feedOperation   = "feed.build"
)

// ErrPresenterRequired is returned when a handler has nowhere to send output.
var ErrPresenterRequired = errors.New("posts command: presenter is required")

var (
	_ command.Commander[ListPostsCommand]  = (*ListPostsHandler)(nil)
	_ command.Commander[RenderPostCommand] = (*RenderPostHandler)(nil)
	_ command.Commander[BuildFeedCommand]  = (*BuildFeedHandler)(nil)
)

// Service is the subset of blog.Service the handlers drive.
type Service interface {
	Posts(ctx context.Context) ([]posts.Post, error)
	Drafts(ctx context.Context) ([]posts.Post, error)
	Render(ctx context.Context, slug string) (blog.RenderedPost, error)
	RenderAll(ctx context.Context) ([]blog.RenderedPost, error)
	Feed(ctx context.Context) (feed.Feed, error)
	Site() feed.Site
}

// Presenter receives command results.
type Presenter interface {
	PresentPosts(ctx context.Context, list []posts.Post) error
	PresentPost(ctx context.Context, post blog.RenderedPost) error
	PresentFeed(ctx context.Context, xml string) error
}

// ListPostsHandler lists posts through the shared command handler.
type ListPostsHandler struct {
	inner *commands.Handler[ListPostsCommand]
}

// NewListPostsHandler creates a handler bound to service and presenter.
func NewListPostsHandler(service Service, presenter Presenter, logger interfaces.Logger, opts ...commands.HandlerOption[ListPostsCommand]) *ListPostsHandler {
	exec := func(ctx context.Context, msg ListPostsCommand) error {
		if presenter == nil {
			return ErrPresenterRequired
		}
		list, err := listPosts(ctx, service, msg.Drafts)
		if err != nil {
			return err
		}
		if msg.Limit > 0 && len(list) > msg.Limit {
			list = list[:msg.Limit]
		}
		return presenter.PresentPosts(ctx, list)
	}

	handlerOpts := []commands.HandlerOption[ListPostsCommand]{
		commands.WithLogger[ListPostsCommand](logger),
		commands.WithOperation[ListPostsCommand](listOperation),
		commands.WithMessageFields(func(msg ListPostsCommand) map[string]any {
			fields := map[string]any{}
			if msg.Drafts {
				fields["drafts"] = true
			}
			if msg.Limit > 0 {
				fields["limit"] = msg.Limit
			}
			return fields
		}),
	}
	return &ListPostsHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[ListPostsCommand].
func (h *ListPostsHandler) Execute(ctx context.Context, msg ListPostsCommand) error {
	return h.inner.Execute(ctx, msg)
}

func listPosts(ctx context.Context, service Service, drafts bool) ([]posts.Post, error) {
	if drafts {
		return service.Drafts(ctx)
	}
	return service.Posts(ctx)
}

// RenderPostHandler renders posts through the shared command handler.
type RenderPostHandler struct {
	inner *commands.Handler[RenderPostCommand]
}

// NewRenderPostHandler creates a handler bound to service and presenter.
func NewRenderPostHandler(service Service, presenter Presenter, logger interfaces.Logger, opts ...commands.HandlerOption[RenderPostCommand]) *RenderPostHandler {
	exec := func(ctx context.Context, msg RenderPostCommand) error {
		if presenter == nil {
			return ErrPresenterRequired
		}
		if msg.All {
			rendered, err := service.RenderAll(ctx)
			if err != nil {
				return err
			}
			for _, post := range rendered {
				if err := presenter.PresentPost(ctx, post); err != nil {
					return err
				}
			}
			return nil
		}

		post, err := service.Render(ctx, msg.Slug)
		if errors.Is(err, blog.ErrPostNotFound) {
			return commands.NotFound(err, "post not found")
		}
		if err != nil {
			return err
		}
		return presenter.PresentPost(ctx, post)
	}

	handlerOpts := []commands.HandlerOption[RenderPostCommand]{
		commands.WithLogger[RenderPostCommand](logger),
		commands.WithOperation[RenderPostCommand](renderOperation),
		commands.WithMessageFields(func(msg RenderPostCommand) map[string]any {
			if msg.All {
				return map[string]any{"all": true}
			}
			return map[string]any{"slug": msg.Slug}
		}),
	}
	return &RenderPostHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[RenderPostCommand].
func (h *RenderPostHandler) Execute(ctx context.Context, msg RenderPostCommand) error {
	return h.inner.Execute(ctx, msg)
}

// BuildFeedHandler encodes the feed through the shared command handler.
type BuildFeedHandler struct {
	inner *commands.Handler[BuildFeedCommand]
}

// NewBuildFeedHandler creates a handler bound to service and presenter. clock
// stamps feeds built without GeneratedAt and defaults to time.Now.
func NewBuildFeedHandler(service Service, presenter Presenter, logger interfaces.Logger, clock func() time.Time, opts ...commands.HandlerOption[BuildFeedCommand]) *BuildFeedHandler {
	if clock == nil {
		clock = time.Now
	}
	exec := func(ctx context.Context, msg BuildFeedCommand) error {
		if presenter == nil {
			return ErrPresenterRequired
		}
		descriptor, err := service.Feed(ctx)
		if err != nil {
			return err
		}
		if msg.Limit > 0 && len(descriptor.Items) > msg.Limit {
			descriptor.Items = descriptor.Items[:msg.Limit]
		}
		generatedAt := msg.GeneratedAt
		if generatedAt.IsZero() {
			generatedAt = clock()
		}
		return presenter.PresentFeed(ctx, feed.EncodeRSS(descriptor, service.Site(), generatedAt))
	}

	handlerOpts := []commands.HandlerOption[BuildFeedCommand]{
		commands.WithLogger[BuildFeedCommand](logger),
		commands.WithOperation[BuildFeedCommand](feedOperation),
	}
	return &BuildFeedHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[BuildFeedCommand].
func (h *BuildFeedHandler) Execute(ctx context.Context, msg BuildFeedCommand) error {
	return h.inner.Execute(ctx, msg)
}
