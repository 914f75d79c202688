package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-blogkit/internal/tree"
	kitutil "github.com/goliatone/go-blogkit/internal/util"
)

// converter maps a goldmark AST onto tree nodes. Node kinds without a tree
// counterpart (tables, footnotes, task checkboxes) are rendered by goldmark
// and kept as html nodes.
type converter struct {
	source []byte
	engine goldmark.Markdown
}

func (c *converter) convert(doc ast.Node) *tree.Node {
	return tree.Root(c.children(doc)...)
}

func (c *converter) children(n ast.Node) []*tree.Node {
	var out []*tree.Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		out = c.appendNode(out, child)
	}
	return out
}

func (c *converter) appendNode(out []*tree.Node, n ast.Node) []*tree.Node {
	switch node := n.(type) {
	case *ast.Text:
		value := unescape(node.Segment.Value(c.source))
		if node.IsRaw() {
			value = string(node.Segment.Value(c.source))
		}
		switch {
		case node.SoftLineBreak():
			out = appendText(out, value+"\n")
		case node.HardLineBreak():
			out = appendText(out, value)
			out = append(out, tree.Parent(tree.TypeBreak))
		default:
			out = appendText(out, value)
		}
		return out
	case *ast.String:
		return appendText(out, string(node.Value))
	}
	if converted := c.node(n); converted != nil {
		out = append(out, converted)
	}
	return out
}

func (c *converter) node(n ast.Node) *tree.Node {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return tree.Parent(tree.TypeParagraph, c.children(node)...)
	case *ast.Heading:
		heading := tree.Parent(tree.TypeHeading, c.children(node)...)
		heading.Depth = node.Level
		if id, ok := node.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok && len(b) > 0 {
				heading.Attributes = map[string]string{"id": string(b)}
			}
		}
		return heading
	case *ast.ThematicBreak:
		return tree.Parent(tree.TypeThematicBreak)
	case *ast.Blockquote:
		return tree.Parent(tree.TypeBlockquote, c.children(node)...)
	case *ast.List:
		list := tree.Parent(tree.TypeList, c.children(node)...)
		list.Ordered = node.IsOrdered()
		list.Start = node.Start
		list.Spread = !node.IsTight
		return list
	case *ast.ListItem:
		return tree.Parent(tree.TypeListItem, c.children(node)...)
	case *ast.FencedCodeBlock:
		lang, meta := c.info(node)
		return tree.Code(lang, meta, c.lines(node.Lines()))
	case *ast.CodeBlock:
		return tree.Code("", "", c.lines(node.Lines()))
	case *ast.HTMLBlock:
		var buf bytes.Buffer
		buf.WriteString(c.lines(node.Lines()))
		if node.HasClosure() {
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.Write(node.ClosureLine.Value(c.source))
		}
		return tree.HTML(strings.TrimRight(buf.String(), "\n"))
	case *ContainerDirective:
		directive := tree.Directive(node.Name, kitutil.CloneStringMap(node.Params), c.children(node)...)
		directive.Title = node.Label
		return directive
	case *ast.Emphasis:
		typ := tree.TypeEmphasis
		if node.Level >= 2 {
			typ = tree.TypeStrong
		}
		return tree.Parent(typ, c.children(node)...)
	case *extast.Strikethrough:
		return tree.Parent(tree.TypeDelete, c.children(node)...)
	case *ast.CodeSpan:
		return &tree.Node{Type: tree.TypeInlineCode, Value: c.codeSpan(node)}
	case *ast.Link:
		link := tree.Parent(tree.TypeLink, c.children(node)...)
		link.URL = string(node.Destination)
		link.Title = string(node.Title)
		return link
	case *ast.AutoLink:
		url := string(node.URL(c.source))
		if node.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
			url = "mailto:" + url
		}
		link := tree.Parent(tree.TypeLink, tree.Text(string(node.Label(c.source))))
		link.URL = url
		return link
	case *ast.Image:
		alt := tree.Root(c.children(node)...).TextContent()
		return &tree.Node{Type: tree.TypeImage, URL: string(node.Destination), Title: string(node.Title), Value: alt}
	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < node.Segments.Len(); i++ {
			segment := node.Segments.At(i)
			buf.Write(segment.Value(c.source))
		}
		return tree.HTML(buf.String())
	default:
		return c.rendered(n)
	}
}

func (c *converter) info(node *ast.FencedCodeBlock) (string, string) {
	if node.Info == nil {
		return "", ""
	}
	info := strings.TrimSpace(string(node.Info.Segment.Value(c.source)))
	lang := string(node.Language(c.source))
	meta := strings.TrimSpace(strings.TrimPrefix(info, lang))
	return lang, meta
}

func (c *converter) lines(lines *text.Segments) string {
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(c.source))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func (c *converter) codeSpan(node *ast.CodeSpan) string {
	var buf bytes.Buffer
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch t := child.(type) {
		case *ast.Text:
			value := t.Segment.Value(c.source)
			if bytes.HasSuffix(value, []byte("\n")) {
				buf.Write(value[:len(value)-1])
				buf.WriteByte(' ')
				continue
			}
			buf.Write(value)
		case *ast.String:
			buf.Write(t.Value)
		}
	}
	return buf.String()
}

func (c *converter) rendered(n ast.Node) *tree.Node {
	var buf bytes.Buffer
	if err := c.engine.Renderer().Render(&buf, c.source, n); err != nil {
		return nil
	}
	value := strings.TrimRight(buf.String(), "\n")
	if value == "" {
		return nil
	}
	return tree.HTML(value)
}

// appendText merges adjacent text runs into a single text node.
func appendText(out []*tree.Node, value string) []*tree.Node {
	if value == "" {
		return out
	}
	if last := len(out) - 1; last >= 0 && out[last].Type == tree.TypeText {
		out[last].Value += value
		return out
	}
	return append(out, tree.Text(value))
}

// unescape resolves backslash escapes and character references the way
// goldmark's HTML writer does.
func unescape(value []byte) string {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	value = util.ResolveEntityNames(value)
	return string(value)
}
