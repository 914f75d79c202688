// Package hast converts Markdown trees into HTML trees and renders HTML trees
// to markup.
package hast

import (
	"maps"
	"strconv"
	"strings"

	"github.com/goliatone/go-blogkit/internal/tree"
)

// Options tune the Markdown to HTML conversion.
type Options struct {
	// HardWraps renders soft line breaks inside paragraphs as <br>.
	HardWraps bool
}

// FromMarkdown returns the HTML tree of a Markdown tree. Raw html nodes become
// raw nodes and fenced code becomes pre > code.language-<lang>. The input is
// not modified.
func FromMarkdown(root *tree.Node, opts Options) *tree.Node {
	if root == nil {
		return tree.Root()
	}
	c := converter{opts: opts}
	return tree.Root(wrap(c.all(root.Children, false), false)...)
}

type converter struct {
	opts Options
}

func (c converter) all(nodes []*tree.Node, tight bool) []*tree.Node {
	var out []*tree.Node
	for _, n := range nodes {
		if n.Type == tree.TypeParagraph && tight {
			out = append(out, c.inline(n.Children)...)
			continue
		}
		if converted := c.one(n); converted != nil {
			out = append(out, converted...)
		}
	}
	return out
}

func (c converter) inline(nodes []*tree.Node) []*tree.Node {
	var out []*tree.Node
	for _, n := range nodes {
		out = append(out, c.one(n)...)
	}
	return out
}

func (c converter) one(n *tree.Node) []*tree.Node {
	switch n.Type {
	case tree.TypeText:
		return c.text(n.Value)
	case tree.TypeHTML, tree.TypeRaw:
		return []*tree.Node{tree.Raw(n.Value)}
	case tree.TypeElement:
		clone := n.Clone()
		clone.Children = c.inline(n.Children)
		return []*tree.Node{clone}
	case tree.TypeParagraph:
		return el("p", nil, c.inline(n.Children)...)
	case tree.TypeHeading:
		depth := min(max(n.Depth, 1), 6)
		var props map[string]string
		if id := n.Attributes["id"]; id != "" {
			props = map[string]string{"id": id}
		}
		return el("h"+strconv.Itoa(depth), props, c.inline(n.Children)...)
	case tree.TypeBlockquote:
		return el("blockquote", nil, wrap(c.all(n.Children, false), true)...)
	case tree.TypeList:
		return []*tree.Node{c.list(n)}
	case tree.TypeListItem:
		return []*tree.Node{c.listItem(n, false)}
	case tree.TypeCode:
		return []*tree.Node{Code(n.Lang, n.Value)}
	case tree.TypeContainerDirective:
		return []*tree.Node{c.directive(n)}
	case tree.TypeEmphasis:
		return el("em", nil, c.inline(n.Children)...)
	case tree.TypeStrong:
		return el("strong", nil, c.inline(n.Children)...)
	case tree.TypeDelete:
		return el("del", nil, c.inline(n.Children)...)
	case tree.TypeInlineCode:
		return el("code", nil, tree.Text(n.Value))
	case tree.TypeLink:
		props := map[string]string{"href": n.URL}
		if n.Title != "" {
			props["title"] = n.Title
		}
		return el("a", props, c.inline(n.Children)...)
	case tree.TypeImage:
		props := map[string]string{"src": n.URL, "alt": n.Value}
		if n.Title != "" {
			props["title"] = n.Title
		}
		return el("img", props)
	case tree.TypeThematicBreak:
		return el("hr", nil)
	case tree.TypeBreak:
		return []*tree.Node{tree.Element("br", nil), tree.Text("\n")}
	default:
		return c.all(n.Children, false)
	}
}

func (c converter) text(value string) []*tree.Node {
	if !c.opts.HardWraps || !strings.Contains(value, "\n") {
		return []*tree.Node{tree.Text(value)}
	}
	var out []*tree.Node
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		if i > 0 {
			out = append(out, tree.Element("br", nil))
			line = "\n" + line
		}
		if line != "" {
			out = append(out, tree.Text(line))
		}
	}
	return out
}

func (c converter) list(n *tree.Node) *tree.Node {
	tag := "ul"
	var props map[string]string
	if n.Ordered {
		tag = "ol"
		if n.Start != 1 {
			props = map[string]string{"start": strconv.Itoa(n.Start)}
		}
	}
	items := make([]*tree.Node, 0, len(n.Children))
	for _, child := range n.Children {
		if child.Type == tree.TypeListItem {
			items = append(items, c.listItem(child, !n.Spread))
			continue
		}
		items = append(items, c.one(child)...)
	}
	return tree.Element(tag, props, wrap(items, true)...)
}

func (c converter) listItem(n *tree.Node, tight bool) *tree.Node {
	children := c.all(n.Children, tight)
	if !tight {
		children = wrap(children, true)
	}
	return tree.Element("li", nil, children...)
}

func (c converter) directive(n *tree.Node) *tree.Node {
	props := maps.Clone(n.Attributes)
	if props == nil {
		props = map[string]string{}
	}
	props["class"] = strings.TrimSpace(n.Name + " " + props["class"])
	return tree.Element("div", props, wrap(c.all(n.Children, false), true)...)
}

// Code returns the pre > code element of a code block. Language classes
// follow the language-<lang> convention.
func Code(lang, value string) *tree.Node {
	var props map[string]string
	if lang != "" {
		props = map[string]string{"class": "language-" + lang}
	}
	if value != "" {
		value += "\n"
	}
	return tree.Element("pre", nil, tree.Element("code", props, tree.Text(value)))
}

// CodeLanguage reports whether n is a pre > code element and returns the
// language named by its language-<lang> class along with the code element.
func CodeLanguage(n *tree.Node) (string, *tree.Node, bool) {
	if !n.IsElement("pre") || len(n.Children) != 1 || !n.Children[0].IsElement("code") {
		return "", nil, false
	}
	code := n.Children[0]
	for _, class := range strings.Fields(code.Property("class")) {
		if lang, ok := strings.CutPrefix(class, "language-"); ok {
			return lang, code, true
		}
	}
	return "", code, true
}

func el(tag string, props map[string]string, children ...*tree.Node) []*tree.Node {
	return []*tree.Node{tree.Element(tag, props, children...)}
}

// wrap separates block siblings with newline text nodes. Loose containers
// also get a leading and trailing newline.
func wrap(nodes []*tree.Node, loose bool) []*tree.Node {
	out := make([]*tree.Node, 0, len(nodes)*2+1)
	if loose {
		out = append(out, tree.Text("\n"))
	}
	for i, n := range nodes {
		if i > 0 {
			out = append(out, tree.Text("\n"))
		}
		out = append(out, n)
	}
	if loose && len(nodes) > 0 {
		out = append(out, tree.Text("\n"))
	}
	return out
}
