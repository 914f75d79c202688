// Package pipeline renders post Markdown to HTML. Markdown stages run on the
// Markdown tree, the tree is converted to HTML, HTML stages run on the result
// and the serialized markup is optionally sanitized.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-blogkit/internal/aside"
	"github.com/goliatone/go-blogkit/internal/hast"
	"github.com/goliatone/go-blogkit/internal/highlight"
	"github.com/goliatone/go-blogkit/internal/logging"
	"github.com/goliatone/go-blogkit/internal/markdown"
	"github.com/goliatone/go-blogkit/internal/tabbedcode"
	"github.com/goliatone/go-blogkit/internal/tree"
	"github.com/goliatone/go-blogkit/pkg/interfaces"
)

// ErrNilPipeline is returned when rendering through a nil pipeline.
var ErrNilPipeline = errors.New("pipeline: nil pipeline")

// Options configure a Pipeline.
type Options struct {
	Extensions     []string
	HardWraps      bool
	Sanitize       bool
	Highlight      bool
	HighlightStyle string
	// IDs generates tabbed code component ids. Defaults to random ids.
	IDs tabbedcode.IDGenerator
	// Workers bounds RenderAll concurrency. Defaults to GOMAXPROCS.
	Workers int
	// MarkdownStages and HTMLStages run after the built in stages.
	MarkdownStages []Stage
	HTMLStages     []Stage
	Logger         interfaces.Logger
}

// Pipeline implements interfaces.MarkdownRenderer.
type Pipeline struct {
	opts        Options
	parsers     sync.Map
	markdown    []Stage
	html        []Stage
	highlighter *highlight.Highlighter
	policy      *bluemonday.Policy
	logger      interfaces.Logger
}

var _ interfaces.MarkdownRenderer = (*Pipeline)(nil)

// New constructs a pipeline with the tabbed code stage on the Markdown tree
// and the aside stage on the HTML tree.
func New(opts Options) *Pipeline {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	rewriter := tabbedcode.New(opts.IDs)
	p := &Pipeline{
		opts:        opts,
		markdown:    append([]Stage{NewStage("tabbed-code", rewriter.Transform)}, opts.MarkdownStages...),
		html:        append([]Stage{NewStage("aside", aside.Transform)}, opts.HTMLStages...),
		highlighter: highlight.New(highlight.Options{Style: opts.HighlightStyle}),
		policy:      NewPolicy(),
		logger:      logger,
	}
	return p
}

// NewPolicy returns the sanitizing policy: user generated content plus the
// classes, data attributes and elements the built in stages emit.
func NewPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class", "id").Globally()
	policy.AllowAttrs("data-tab", "data-component").Globally()
	policy.AllowElements("aside", "button")
	return policy
}

// Render converts Markdown using the pipeline defaults.
func (p *Pipeline) Render(ctx context.Context, md []byte) ([]byte, error) {
	if p == nil {
		return nil, ErrNilPipeline
	}
	return p.RenderWithOptions(ctx, md, interfaces.ParseOptions{})
}

// RenderWithOptions converts Markdown. Extensions replace the defaults when
// set; the boolean switches can only be turned on.
func (p *Pipeline) RenderWithOptions(ctx context.Context, md []byte, overrides interfaces.ParseOptions) ([]byte, error) {
	if p == nil {
		return nil, ErrNilPipeline
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started := time.Now()
	opts := p.merge(overrides)

	root, err := p.tree(ctx, md, opts)
	if err != nil {
		return nil, err
	}
	out, err := hast.Render(root)
	if err != nil {
		return nil, fmt.Errorf("pipeline render: %w", err)
	}
	if opts.sanitize {
		out = p.policy.SanitizeBytes(out)
	}

	p.logger.Debug("pipeline.rendered",
		"bytes_in", len(md),
		"bytes_out", len(out),
		"duration", time.Since(started),
	)
	return out, nil
}

// Tree returns the HTML tree of md after every stage ran.
func (p *Pipeline) Tree(ctx context.Context, md []byte) (*tree.Node, error) {
	if p == nil {
		return nil, ErrNilPipeline
	}
	return p.tree(ctx, md, p.merge(interfaces.ParseOptions{}))
}

// RenderAll renders independent documents in parallel, bounded by the
// configured worker count. Results keep the order of docs. The first error
// cancels the remaining work.
func (p *Pipeline) RenderAll(ctx context.Context, docs [][]byte) ([][]byte, error) {
	if p == nil {
		return nil, ErrNilPipeline
	}
	out := make([][]byte, len(docs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.opts.Workers)
	for i, doc := range docs {
		group.Go(func() error {
			html, err := p.Render(groupCtx, doc)
			if err != nil {
				return fmt.Errorf("pipeline document %d: %w", i, err)
			}
			out[i] = html
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// StageNames lists the stages in execution order.
func (p *Pipeline) StageNames() []string {
	names := make([]string, 0, len(p.markdown)+len(p.html)+1)
	for _, stage := range p.markdown {
		names = append(names, stage.Name())
	}
	for _, stage := range p.html {
		names = append(names, stage.Name())
	}
	if p.opts.Highlight {
		names = append(names, "highlight")
	}
	return names
}

type renderOptions struct {
	extensions []string
	hardWraps  bool
	sanitize   bool
	highlight  bool
}

func (p *Pipeline) merge(overrides interfaces.ParseOptions) renderOptions {
	opts := renderOptions{
		extensions: p.opts.Extensions,
		hardWraps:  p.opts.HardWraps || overrides.HardWraps,
		sanitize:   p.opts.Sanitize || overrides.Sanitize,
		highlight:  p.opts.Highlight || overrides.Highlight,
	}
	if len(overrides.Extensions) > 0 {
		opts.extensions = overrides.Extensions
	}
	return opts
}

func (p *Pipeline) tree(ctx context.Context, md []byte, opts renderOptions) (*tree.Node, error) {
	mdast := p.parser(opts.extensions).Parse(md)
	mdast = runStages(mdast, p.markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := hast.FromMarkdown(mdast, hast.Options{HardWraps: opts.hardWraps})
	root = runStages(root, p.html)
	if opts.highlight {
		root = p.highlighter.Transform(root)
	}
	return root, nil
}

func (p *Pipeline) parser(extensions []string) *markdown.GoldmarkParser {
	key := strings.ToLower(strings.Join(extensions, ","))
	if cached, ok := p.parsers.Load(key); ok {
		return cached.(*markdown.GoldmarkParser)
	}
	parser := markdown.NewGoldmarkParser(markdown.ParserOptions{Extensions: extensions})
	actual, _ := p.parsers.LoadOrStore(key, parser)
	return actual.(*markdown.GoldmarkParser)
}
