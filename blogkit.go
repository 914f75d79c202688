// Package blogkit wires post discovery, the rendering pipeline and the feed
// into a single runtime façade.
package blogkit

import (
	"fmt"
	"io/fs"

	"github.com/goliatone/go-blogkit/internal/blog"
	"github.com/goliatone/go-blogkit/internal/feed"
	"github.com/goliatone/go-blogkit/internal/highlight"
	"github.com/goliatone/go-blogkit/internal/logging"
	"github.com/goliatone/go-blogkit/internal/markdown"
	"github.com/goliatone/go-blogkit/internal/pipeline"
	"github.com/goliatone/go-blogkit/internal/tabbedcode"
	"github.com/goliatone/go-blogkit/pkg/interfaces"
)

// BlogService exports the blog service.
type BlogService = *blog.Service

// RenderedPost exports the rendered post DTO.
type RenderedPost = blog.RenderedPost

// Stage exports the pipeline stage contract.
type Stage = pipeline.Stage

// ErrPostNotFound is returned when no visible post carries a slug.
var ErrPostNotFound = blog.ErrPostNotFound

// Option customises Module construction.
type Option func(*options)

type options struct {
	fs             fs.FS
	provider       interfaces.LoggerProvider
	ids            tabbedcode.IDGenerator
	markdownStages []Stage
	htmlStages     []Stage
}

// WithFS reads posts from filesystem instead of cfg.ContentDir on disk.
// cfg.ContentDir is still used as the record path prefix.
func WithFS(filesystem fs.FS) Option {
	return func(o *options) {
		o.fs = filesystem
	}
}

// WithLoggerProvider overrides the provider selected by cfg.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *options) {
		o.provider = provider
	}
}

// WithIDGenerator overrides the tabbed code id strategy.
func WithIDGenerator(ids tabbedcode.IDGenerator) Option {
	return func(o *options) {
		o.ids = ids
	}
}

// WithMarkdownStages appends stages run on the Markdown tree.
func WithMarkdownStages(stages ...Stage) Option {
	return func(o *options) {
		o.markdownStages = append(o.markdownStages, stages...)
	}
}

// WithHTMLStages appends stages run on the HTML tree.
func WithHTMLStages(stages ...Stage) Option {
	return func(o *options) {
		o.htmlStages = append(o.htmlStages, stages...)
	}
}

// Module represents the top level blogkit runtime façade.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	loader   *markdown.Loader
	pipeline *pipeline.Pipeline
	service  *blog.Service
}

// New validates cfg and constructs a Module.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	provider := o.provider
	if provider == nil {
		var err error
		if provider, err = NewLoggerProvider(cfg.Logging); err != nil {
			return nil, fmt.Errorf("blogkit: logger provider: %w", err)
		}
	}

	var loader *markdown.Loader
	if o.fs != nil {
		loader = markdown.NewLoader(o.fs, markdown.LoaderConfig{BasePath: cfg.ContentDir, Pattern: cfg.Pattern})
	} else {
		var err error
		if loader, err = markdown.NewDirLoader(cfg.ContentDir, cfg.Pattern); err != nil {
			return nil, err
		}
	}

	ids := o.ids
	if ids == nil {
		ids = tabbedcode.NewIDGenerator(cfg.TabbedCode.IDStrategy)
	}

	renderer := pipeline.New(pipeline.Options{
		Extensions:     cfg.Markdown.Extensions,
		HardWraps:      cfg.Markdown.HardWraps,
		Sanitize:       cfg.Markdown.Sanitize,
		Highlight:      cfg.Markdown.Highlight.Enabled,
		HighlightStyle: cfg.Markdown.Highlight.Style,
		IDs:            ids,
		Workers:        cfg.Pipeline.Workers,
		MarkdownStages: o.markdownStages,
		HTMLStages:     o.htmlStages,
		Logger:         logging.PipelineLogger(provider),
	})

	service := blog.NewService(loader, renderer, blog.Config{
		Mode: cfg.Mode,
		Site: feed.Site{
			Title:          cfg.Site.Title,
			Description:    cfg.Site.Description,
			BaseURL:        cfg.Site.BaseURL,
			Language:       cfg.Site.Language,
			StylesheetHref: cfg.Site.Stylesheet,
		},
	}, logging.PostsLogger(provider))

	return &Module{
		cfg:      cfg,
		provider: provider,
		loader:   loader,
		pipeline: renderer,
		service:  service,
	}, nil
}

// Config returns the validated configuration.
func (m *Module) Config() Config {
	return m.cfg
}

// Blog returns the blog service.
func (m *Module) Blog() BlogService {
	if m == nil {
		return nil
	}
	return m.service
}

// Renderer returns the Markdown renderer.
func (m *Module) Renderer() interfaces.MarkdownRenderer {
	return m.pipeline
}

// Loader returns the post loader.
func (m *Module) Loader() *markdown.Loader {
	return m.loader
}

// Logger returns the logger for module from the configured provider.
func (m *Module) Logger(module string) interfaces.Logger {
	if m == nil || m.provider == nil {
		return logging.NoOp()
	}
	return logging.ModuleLogger(m.provider, module)
}

// LoggerProvider returns the configured provider.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.provider
}

// HighlightCSS returns the stylesheet for the configured highlight style.
func (m *Module) HighlightCSS() (string, error) {
	return highlight.New(highlight.Options{Style: m.cfg.Markdown.Highlight.Style}).CSS()
}
