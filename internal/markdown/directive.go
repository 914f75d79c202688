package markdown

import (
	"fmt"
	"html"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindContainerDirective is the goldmark node kind of `:::name` blocks.
var KindContainerDirective = ast.NewNodeKind("ContainerDirective")

// ContainerDirective is a fenced block of Markdown opened by `:::name` and
// closed by a bare `:::` line:
//
//	:::tabbed-code{#install .wide}
//	```sh tab="Shell"
//	make install
//	```
//	:::
type ContainerDirective struct {
	ast.BaseBlock
	Name   string
	Label  string
	Params map[string]string
	closed bool
}

// NewContainerDirective returns an open directive node.
func NewContainerDirective(name, label string, params map[string]string) *ContainerDirective {
	if params == nil {
		params = map[string]string{}
	}
	return &ContainerDirective{Name: name, Label: label, Params: params}
}

// Kind implements ast.Node.
func (n *ContainerDirective) Kind() ast.NodeKind {
	return KindContainerDirective
}

// Dump implements ast.Node.
func (n *ContainerDirective) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Name": n.Name, "Label": n.Label}, nil)
}

var (
	directiveOpen  = regexp.MustCompile(`^:::[ \t]*([A-Za-z][\w-]*)(?:\[([^\]]*)\])?[ \t]*(?:\{([^}]*)\})?[ \t]*$`)
	directiveClose = regexp.MustCompile(`^:::[ \t]*$`)
	directiveParam = regexp.MustCompile(`([#.])([\w-]+)|([\w-]+)(?:=(?:"([^"]*)"|'([^']*)'|([^\s"']+)))?`)
)

type directiveParser struct{}

func (p *directiveParser) Trigger() []byte {
	return []byte{':'}
}

func (p *directiveParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos >= len(line) {
		return nil, parser.NoChildren
	}
	match := directiveOpen.FindSubmatch(util.TrimRightSpace(line[pos:]))
	if match == nil {
		return nil, parser.NoChildren
	}
	node := NewContainerDirective(string(match[1]), string(match[2]), parseDirectiveParams(string(match[3])))
	reader.Advance(lineLength(line, segment))
	return node, parser.HasChildren
}

func (p *directiveParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if directiveClose.Match(util.TrimRightSpace(util.TrimLeftSpace(line))) && !hasOpenDirective(node) {
		reader.Advance(lineLength(line, segment))
		return parser.Close
	}
	return parser.Continue | parser.HasChildren
}

func (p *directiveParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	if d, ok := node.(*ContainerDirective); ok {
		d.closed = true
	}
}

func (p *directiveParser) CanInterruptParagraph() bool {
	return true
}

func (p *directiveParser) CanAcceptIndentedLine() bool {
	return false
}

// hasOpenDirective lets a nested directive consume its own closing fence.
func hasOpenDirective(node ast.Node) bool {
	last, ok := node.LastChild().(*ContainerDirective)
	return ok && !last.closed
}

func lineLength(line []byte, segment text.Segment) int {
	n := segment.Len()
	if len(line) > 0 && line[len(line)-1] == '\n' {
		n--
	}
	if n < 0 {
		return 0
	}
	return n
}

func parseDirectiveParams(raw string) map[string]string {
	params := map[string]string{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return params
	}
	var classes []string
	for _, m := range directiveParam.FindAllStringSubmatch(raw, -1) {
		switch {
		case m[1] == "#":
			params["id"] = m[2]
		case m[1] == ".":
			classes = append(classes, m[2])
		case m[3] != "":
			params[m[3]] = m[4] + m[5] + m[6]
		}
	}
	if len(classes) > 0 {
		if existing := params["class"]; existing != "" {
			classes = append([]string{existing}, classes...)
		}
		params["class"] = strings.Join(classes, " ")
	}
	return params
}

type directiveHTMLRenderer struct{}

func (r *directiveHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindContainerDirective, r.render)
}

func (r *directiveHTMLRenderer) render(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</div>\n")
		return ast.WalkContinue, nil
	}
	d := node.(*ContainerDirective)
	classes := strings.TrimSpace(d.Name + " " + d.Params["class"])
	_, _ = fmt.Fprintf(w, `<div class="%s"`, html.EscapeString(classes))
	keys := make([]string, 0, len(d.Params))
	for key := range d.Params {
		if key != "class" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		_, _ = fmt.Fprintf(w, ` %s="%s"`, html.EscapeString(key), html.EscapeString(d.Params[key]))
	}
	_, _ = w.WriteString(">\n")
	return ast.WalkContinue, nil
}

type directiveExtension struct{}

// Directives registers the container directive block parser and its HTML
// renderer with a goldmark instance.
var Directives goldmark.Extender = directiveExtension{}

func (directiveExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(&directiveParser{}, 150),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&directiveHTMLRenderer{}, 500),
	))
}
