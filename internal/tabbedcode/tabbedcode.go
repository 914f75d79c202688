// Package tabbedcode rewrites `:::tabbed-code` container directives of a
// Markdown tree into a tab bar plus one pane per fenced code block.
package tabbedcode

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/goliatone/go-blogkit/internal/tree"
)

// DirectiveName is the container directive handled by the rewriter.
const DirectiveName = "tabbed-code"

const (
	defaultLanguage = "text"
	defaultLabel    = "Code"
)

var tabMetaPattern = regexp.MustCompile(`tab="([^"]+)"`)

// Tab is one code block collected from a directive.
type Tab struct {
	Label    string
	Language string
	Node     *tree.Node
}

// Rewriter holds the identifier source shared by every directive of a build.
type Rewriter struct {
	ids IDGenerator
}

// New returns a rewriter. A nil generator selects RandomIDs.
func New(ids IDGenerator) *Rewriter {
	if ids == nil {
		ids = RandomIDs{}
	}
	return &Rewriter{ids: ids}
}

// Transform replaces every tabbed-code directive of root that holds at least
// one code block. Directives without code blocks are left untouched.
func (r *Rewriter) Transform(root *tree.Node) *tree.Node {
	return tree.Transform(root, func(n *tree.Node, v tree.Visit) tree.Result {
		if v.Parent == nil || n.Type != tree.TypeContainerDirective || n.Name != DirectiveName {
			return tree.Keep(tree.Continue)
		}
		tabs := CollectTabs(n)
		if len(tabs) == 0 {
			return tree.Keep(tree.Continue)
		}
		return tree.Replace(tree.SkipChildren, Scaffold(r.ids.NewID(), tabs)...)
	})
}

// CollectTabs returns the direct code children of a directive in order.
func CollectTabs(directive *tree.Node) []Tab {
	var tabs []Tab
	for _, child := range directive.Children {
		if child.Type != tree.TypeCode {
			continue
		}
		tabs = append(tabs, Tab{
			Label:    labelFor(child),
			Language: languageFor(child),
			Node:     child,
		})
	}
	return tabs
}

func labelFor(code *tree.Node) string {
	if m := tabMetaPattern.FindStringSubmatch(code.Meta); m != nil {
		return m[1]
	}
	if code.Lang != "" {
		return code.Lang
	}
	return defaultLabel
}

func languageFor(code *tree.Node) string {
	if code.Lang != "" {
		return code.Lang
	}
	return defaultLanguage
}

// Scaffold builds the flat replacement sequence for tabs: the wrapper and
// button bar, then pane start, the original code node and pane end per tab,
// then the wrapper end with the toggle script.
func Scaffold(componentID string, tabs []Tab) []*tree.Node {
	out := make([]*tree.Node, 0, len(tabs)*3+2)
	out = append(out, tree.HTML(wrapperStart(componentID, tabs)))
	for i, tab := range tabs {
		out = append(out,
			tree.HTML(fmt.Sprintf(`<div class="tab-pane%s" data-tab="%d">`, activeClass(i), i)),
			tab.Node,
			tree.HTML(`</div>`),
		)
	}
	out = append(out, tree.HTML(wrapperEnd(componentID)))
	return out
}

func activeClass(index int) string {
	if index == 0 {
		return " active"
	}
	return ""
}

func wrapperStart(componentID string, tabs []Tab) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="tabbed-code-container" data-component="%s">`+"\n", html.EscapeString(componentID))
	b.WriteString(`<div class="tab-buttons">` + "\n")
	for i, tab := range tabs {
		fmt.Fprintf(&b, `<button class="tab-button%s" data-tab="%d">%s</button>`+"\n",
			activeClass(i), i, html.EscapeString(tab.Label))
	}
	b.WriteString("</div>\n")
	b.WriteString(`<div class="tab-content">`)
	return b.String()
}

const toggleScript = `<script>
(function() {
    const container = document.querySelector('[data-component="%s"]');
    if (!container) return;
    const buttons = container.querySelectorAll('.tab-button');
    buttons.forEach((button, index) => {
        button.addEventListener('click', () => {
            container.querySelectorAll('.tab-button, .tab-pane').forEach(el => {
                el.classList.remove('active');
            });
            button.classList.add('active');
            container.querySelector('[data-tab="' + index + '"].tab-pane').classList.add('active');
        });
    });
})();
</script>`

func wrapperEnd(componentID string) string {
	return "</div>\n</div>\n" + fmt.Sprintf(toggleScript, html.EscapeString(componentID))
}
