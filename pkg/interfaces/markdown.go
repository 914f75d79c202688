package interfaces

import "context"

// MarkdownRenderer converts Markdown bodies into HTML fragments, running the
// configured tree rewrite stages in between.
type MarkdownRenderer interface {
	// Render converts Markdown using the renderer's default options.
	Render(ctx context.Context, markdown []byte) ([]byte, error)
	// RenderWithOptions converts Markdown using the supplied overrides.
	RenderWithOptions(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown rendering, keeping option names readable
// for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	// Sanitize scrubs the rendered HTML. Inline scripts (tab toggles) are
	// removed along with everything else the policy rejects.
	Sanitize bool
	// Highlight replaces fenced code with syntax highlighted markup.
	Highlight bool
}
