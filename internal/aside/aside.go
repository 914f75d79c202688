// Package aside turns GitHub style callout blockquotes (`> [!NOTE]`) of an
// HTML tree into styled aside containers.
package aside

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-blogkit/internal/tree"
)

// DefaultType is the callout type of a blockquote without a marker.
const DefaultType = "quote"

var markerPattern = regexp.MustCompile(`(?i)^\[!(NOTE|TIP|IMPORTANT|WARNING|CAUTION)\]\s*`)

// Transform rewrites every blockquote element of root. Blockquotes carrying a
// marker become `<aside class="aside TYPE">`, the rest become
// `<blockquote class="quote">`. Rewritten nodes are not descended into, so a
// nested blockquote is left for a later pass.
func Transform(root *tree.Node) *tree.Node {
	return tree.Transform(root, visit)
}

func visit(n *tree.Node, v tree.Visit) tree.Result {
	if v.Parent == nil || !n.IsElement("blockquote") {
		return tree.Keep(tree.Continue)
	}
	kind, children := classify(n.Children)
	return tree.Replace(tree.SkipChildren, build(kind, children))
}

// Classify reports the callout type of a blockquote element without
// rewriting it.
func Classify(blockquote *tree.Node) string {
	if blockquote == nil {
		return DefaultType
	}
	kind, _ := classify(blockquote.Children)
	return kind
}

func build(kind string, children []*tree.Node) *tree.Node {
	if kind == DefaultType {
		return tree.Element("blockquote", map[string]string{"class": DefaultType}, children...)
	}
	return tree.Element("aside", map[string]string{"class": "aside " + kind}, children...)
}

// classify scans the paragraphs in order and, inside each, its direct text
// nodes until one starts with a marker. Only the first marker counts. It
// returns the callout type and the children with the marker stripped; the
// input slice is not modified.
func classify(children []*tree.Node) (string, []*tree.Node) {
	for i, child := range children {
		if !child.IsElement("p") {
			continue
		}
		for textIdx, textNode := range child.Children {
			if textNode.Type != tree.TypeText {
				continue
			}
			match := markerPattern.FindStringSubmatch(textNode.Value)
			if match == nil {
				continue
			}

			paragraph := child.Clone()
			rest := textNode.Value[len(match[0]):]
			if strings.TrimSpace(rest) == "" {
				paragraph.Children = append(paragraph.Children[:textIdx:textIdx], paragraph.Children[textIdx+1:]...)
			} else {
				stripped := textNode.Clone()
				stripped.Value = rest
				paragraph.Children[textIdx] = stripped
			}

			out := append([]*tree.Node(nil), children...)
			out[i] = paragraph
			return strings.ToLower(match[1]), out
		}
	}
	return DefaultType, children
}
