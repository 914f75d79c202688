package tree

import "maps"

// Node type tags. Markdown trees (mdast shaped) use the block and inline
// kinds; HTML trees (hast shaped) use TypeElement, TypeText and TypeRaw.
const (
	TypeRoot               = "root"
	TypeText               = "text"
	TypeElement            = "element"
	TypeRaw                = "raw"
	TypeCode               = "code"
	TypeHTML               = "html"
	TypeContainerDirective = "containerDirective"
	TypeParagraph          = "paragraph"
	TypeBlockquote         = "blockquote"
	TypeHeading            = "heading"
	TypeList               = "list"
	TypeListItem           = "listItem"
	TypeEmphasis           = "emphasis"
	TypeStrong             = "strong"
	TypeDelete             = "delete"
	TypeInlineCode         = "inlineCode"
	TypeLink               = "link"
	TypeImage              = "image"
	TypeThematicBreak      = "thematicBreak"
	TypeBreak              = "break"
)

// Node is a single document tree node. Only the fields relevant to Type are
// populated. A node belongs to exactly one parent.
type Node struct {
	Type string

	// TagName and Properties describe HTML elements.
	TagName    string
	Properties map[string]string

	// Value holds text, code, html and raw content, and the alt text of images.
	Value string

	// Lang and Meta hold the info string of fenced code.
	Lang string
	Meta string

	// Name and Attributes describe directives.
	Name       string
	Attributes map[string]string

	Depth   int
	Ordered bool
	Start   int
	// Spread is false for tight lists, whose item paragraphs render bare.
	Spread bool
	URL    string
	Title  string

	Children []*Node
}

// Root returns a root node holding children.
func Root(children ...*Node) *Node {
	return &Node{Type: TypeRoot, Children: children}
}

// Text returns a text node.
func Text(value string) *Node {
	return &Node{Type: TypeText, Value: value}
}

// HTML returns a raw markup node of a Markdown tree.
func HTML(value string) *Node {
	return &Node{Type: TypeHTML, Value: value}
}

// Raw returns a raw markup node of an HTML tree.
func Raw(value string) *Node {
	return &Node{Type: TypeRaw, Value: value}
}

// Code returns a fenced code node.
func Code(lang, meta, value string) *Node {
	return &Node{Type: TypeCode, Lang: lang, Meta: meta, Value: value}
}

// Element returns an HTML element. props may be nil.
func Element(tag string, props map[string]string, children ...*Node) *Node {
	return &Node{Type: TypeElement, TagName: tag, Properties: props, Children: children}
}

// Directive returns a container directive.
func Directive(name string, attrs map[string]string, children ...*Node) *Node {
	return &Node{Type: TypeContainerDirective, Name: name, Attributes: attrs, Children: children}
}

// Parent returns a node of the given type holding children.
func Parent(typ string, children ...*Node) *Node {
	return &Node{Type: typ, Children: children}
}

// IsElement reports whether n is an element with the given tag.
func (n *Node) IsElement(tag string) bool {
	return n != nil && n.Type == TypeElement && n.TagName == tag
}

// Property returns an element property, or "" when unset.
func (n *Node) Property(key string) string {
	if n == nil || n.Properties == nil {
		return ""
	}
	return n.Properties[key]
}

// Clone returns a shallow copy of n. The child slice and maps are copied so the
// clone can be edited without touching n; the children themselves are shared.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := *n
	if n.Children != nil {
		out.Children = append([]*Node(nil), n.Children...)
	}
	if n.Properties != nil {
		out.Properties = maps.Clone(n.Properties)
	}
	if n.Attributes != nil {
		out.Attributes = maps.Clone(n.Attributes)
	}
	return &out
}

// TextContent concatenates the values of every text descendant of n.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if n.Type == TypeText || n.Type == TypeInlineCode {
		return n.Value
	}
	var out []byte
	for _, child := range n.Children {
		out = append(out, child.TextContent()...)
	}
	return string(out)
}
