package hast

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-blogkit/internal/tree"
)

// Render serializes an HTML tree. Raw nodes are written verbatim, text is
// escaped and element properties are emitted in key order.
func Render(root *tree.Node) ([]byte, error) {
	var buf bytes.Buffer
	if root == nil {
		return buf.Bytes(), nil
	}
	nodes := []*tree.Node{root}
	if root.Type == tree.TypeRoot {
		nodes = root.Children
	}
	for _, n := range nodes {
		converted, err := toHTML(n)
		if err != nil {
			return nil, err
		}
		if converted == nil {
			continue
		}
		if err := html.Render(&buf, converted); err != nil {
			return nil, fmt.Errorf("hast render: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// RenderString is Render returning a string.
func RenderString(root *tree.Node) (string, error) {
	out, err := Render(root)
	return string(out), err
}

func toHTML(n *tree.Node) (*html.Node, error) {
	switch n.Type {
	case tree.TypeText:
		return &html.Node{Type: html.TextNode, Data: n.Value}, nil
	case tree.TypeRaw, tree.TypeHTML:
		return &html.Node{Type: html.RawNode, Data: n.Value}, nil
	case tree.TypeElement:
		el := &html.Node{
			Type:     html.ElementNode,
			Data:     n.TagName,
			DataAtom: atom.Lookup([]byte(n.TagName)),
		}
		for _, key := range slices.Sorted(maps.Keys(n.Properties)) {
			el.Attr = append(el.Attr, html.Attribute{Key: key, Val: n.Properties[key]})
		}
		for _, child := range n.Children {
			converted, err := toHTML(child)
			if err != nil {
				return nil, err
			}
			if converted != nil {
				el.AppendChild(converted)
			}
		}
		return el, nil
	case tree.TypeRoot:
		frag := &html.Node{Type: html.DocumentNode}
		for _, child := range n.Children {
			converted, err := toHTML(child)
			if err != nil {
				return nil, err
			}
			if converted != nil {
				frag.AppendChild(converted)
			}
		}
		return frag, nil
	default:
		return nil, fmt.Errorf("hast render: unexpected %s node", n.Type)
	}
}
