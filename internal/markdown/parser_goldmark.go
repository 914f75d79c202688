package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-blogkit/internal/tree"
)

// ParserOptions selects the goldmark extensions enabled for parsing.
type ParserOptions struct {
	// Extensions lists extension names (gfm, table, strikethrough, linkify,
	// tasklist, definition, footnote, typographer). Empty enables gfm.
	Extensions []string
}

// GoldmarkParser turns Markdown source into a Markdown tree. Container
// directives are always enabled. A parser holds no per-document state and is
// safe for concurrent use.
type GoldmarkParser struct {
	engine goldmark.Markdown
}

// NewGoldmarkParser constructs a parser for the supplied options.
func NewGoldmarkParser(opts ParserOptions) *GoldmarkParser {
	exts := append(collectExtensions(opts.Extensions), Directives)

	engine := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &GoldmarkParser{engine: engine}
}

// Parse returns the Markdown tree of source.
func (p *GoldmarkParser) Parse(source []byte) *tree.Node {
	doc := p.engine.Parser().Parse(text.NewReader(source))
	c := &converter{source: source, engine: p.engine}
	return c.convert(doc)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

// SupportedExtension reports whether name maps to a known extension.
func SupportedExtension(name string) bool {
	_, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
