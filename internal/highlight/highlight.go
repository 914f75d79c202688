// Package highlight replaces pre > code.language-<lang> elements of an HTML
// tree with chroma highlighted markup.
package highlight

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/goliatone/go-blogkit/internal/hast"
	"github.com/goliatone/go-blogkit/internal/tree"
)

// DefaultStyle is used when Options.Style is empty.
const DefaultStyle = "github"

// Options configure the highlighter.
type Options struct {
	Style string
	// Inline emits style attributes instead of chroma CSS classes.
	Inline   bool
	TabWidth int
}

// Highlighter formats code blocks with chroma. It is safe for concurrent use.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// New returns a Highlighter. Unknown styles fall back to chroma's default.
func New(opts Options) *Highlighter {
	name := opts.Style
	if name == "" {
		name = DefaultStyle
	}
	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = 2
	}
	return &Highlighter{
		style: styles.Get(name),
		formatter: chromahtml.New(
			chromahtml.WithClasses(!opts.Inline),
			chromahtml.TabWidth(tabWidth),
		),
	}
}

// Transform returns root with every code block of a known language replaced
// by a raw highlighted fragment. Blocks without a language, with an unknown
// language or that fail to format are kept.
func (h *Highlighter) Transform(root *tree.Node) *tree.Node {
	return tree.Transform(root, func(n *tree.Node, v tree.Visit) tree.Result {
		lang, code, ok := hast.CodeLanguage(n)
		if !ok {
			return tree.Keep(tree.Continue)
		}
		if lang == "" {
			return tree.Keep(tree.SkipChildren)
		}
		out, err := h.Highlight(lang, code.TextContent())
		if err != nil {
			return tree.Keep(tree.SkipChildren)
		}
		return tree.Replace(tree.SkipChildren, tree.Raw(out))
	})
}

// Highlight formats source as lang.
func (h *Highlighter) Highlight(lang, source string) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", fmt.Errorf("highlight: no lexer for %q", lang)
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("highlight: tokenise %s: %w", lang, err)
	}
	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", fmt.Errorf("highlight: format %s: %w", lang, err)
	}
	return buf.String(), nil
}

// CSS returns the stylesheet of the configured style for class based output.
func (h *Highlighter) CSS() (string, error) {
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", fmt.Errorf("highlight: css: %w", err)
	}
	return buf.String(), nil
}
