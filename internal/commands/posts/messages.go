package postscmd

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	listPostsMessageType  = "blogkit.posts.list"
	renderPostMessageType = "blogkit.posts.render"
	buildFeedMessageType  = "blogkit.feed.build"
)

// ListPostsCommand lists the visible posts, newest first.
type ListPostsCommand struct {
	// Drafts lists the obfuscated drafts instead of the published posts.
	Drafts bool `json:"drafts,omitempty"`
	// Limit caps the number of listed posts. Zero lists all of them.
	Limit int `json:"limit,omitempty"`
}

// Type implements command.Message.
func (ListPostsCommand) Type() string { return listPostsMessageType }

// Validate rejects negative limits.
func (cmd ListPostsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Limit, validation.Min(0)),
	)
}

// RenderPostCommand renders one post by slug, or every published post when
// All is set.
type RenderPostCommand struct {
	Slug string `json:"slug,omitempty"`
	All  bool   `json:"all,omitempty"`
}

// Type implements command.Message.
func (RenderPostCommand) Type() string { return renderPostMessageType }

// Validate requires exactly one of Slug and All.
func (cmd RenderPostCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Slug,
			validation.When(!cmd.All, validation.Required, validation.By(func(value any) error {
				if strings.TrimSpace(value.(string)) == "" {
					return validation.NewError("blogkit.posts.render.slug_required", "slug is required")
				}
				return nil
			})),
			validation.When(cmd.All, validation.Empty.Error("slug must be empty when rendering all posts")),
		),
	)
}

// BuildFeedCommand encodes the RSS feed of the published posts.
type BuildFeedCommand struct {
	// GeneratedAt stamps lastBuildDate. Zero uses the handler clock.
	GeneratedAt time.Time `json:"generated_at,omitempty"`
	// Limit keeps only the newest items. Zero keeps all of them.
	Limit int `json:"limit,omitempty"`
}

// Type implements command.Message.
func (BuildFeedCommand) Type() string { return buildFeedMessageType }

// Validate rejects negative limits.
func (cmd BuildFeedCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Limit, validation.Min(0)),
	)
}
