package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/goliatone/go-blogkit/internal/tabbedcode"
	"github.com/goliatone/go-blogkit/internal/tree"
	"github.com/goliatone/go-blogkit/pkg/interfaces"
)

const tabbedSource = "Intro\n\n:::tabbed-code\n```jsx tab=\"React\"\n<App />\n```\n```vue\n<template />\n```\n:::\n"

func render(t *testing.T, p *Pipeline, source string) string {
	t.Helper()
	out, err := p.Render(context.Background(), []byte(source))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return string(out)
}

func TestRenderCallouts(t *testing.T) {
	p := New(Options{})

	got := render(t, p, "> [!WARNING]\n> Be careful\n\n> plain quote\n")

	if !strings.Contains(got, "<aside class=\"aside warning\">\n<p>Be careful</p>\n</aside>") {
		t.Fatalf("expected warning aside, got %q", got)
	}
	if !strings.Contains(got, "<blockquote class=\"quote\">\n<p>plain quote</p>\n</blockquote>") {
		t.Fatalf("expected plain quote, got %q", got)
	}
	if strings.Contains(got, "[!WARNING]") {
		t.Fatalf("expected marker removed, got %q", got)
	}
}

func TestRenderTabbedCode(t *testing.T) {
	p := New(Options{IDs: tabbedcode.NewSequenceIDs()})

	got := render(t, p, tabbedSource)

	for _, want := range []string{
		"<p>Intro</p>",
		`<div class="tabbed-code-container" data-component="tabbed-code-1">`,
		`<button class="tab-button active" data-tab="0">React</button>`,
		`<button class="tab-button" data-tab="1">vue</button>`,
		`<div class="tab-pane active" data-tab="0">`,
		`<pre><code class="language-jsx">&lt;App /&gt;`,
		`<div class="tab-pane" data-tab="1">`,
		`<script>`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in:\n%s", want, got)
		}
	}
	if strings.Index(got, `data-tab="0">React`) > strings.Index(got, `data-tab="1">vue`) {
		t.Fatalf("expected buttons in tab order")
	}
}

func TestRenderSanitize(t *testing.T) {
	p := New(Options{IDs: tabbedcode.NewSequenceIDs()})

	got, err := p.RenderWithOptions(context.Background(), []byte(tabbedSource+"\n> [!TIP]\n> Hint\n\n<img src=x onerror=alert(1)>\n"), interfaces.ParseOptions{Sanitize: true})
	if err != nil {
		t.Fatalf("RenderWithOptions: %v", err)
	}
	html := string(got)
	if strings.Contains(html, "<script") || strings.Contains(html, "onerror") {
		t.Fatalf("expected scripts and handlers removed, got %s", html)
	}
	for _, want := range []string{`class="aside tip"`, `data-component="tabbed-code-1"`, `<button class="tab-button active" data-tab="0">`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q kept by the policy, got %s", want, html)
		}
	}
}

func TestRenderSanitizeFromOptions(t *testing.T) {
	p := New(Options{Sanitize: true})

	got := render(t, p, "> [!NOTE]\n> Keep\n\n<script>alert(1)</script>\n")

	if strings.Contains(got, "<script") {
		t.Fatalf("expected configured sanitizing to drop scripts, got %s", got)
	}
	if !strings.Contains(got, `<aside class="aside note">`) {
		t.Fatalf("expected aside kept, got %s", got)
	}
	if plain := render(t, New(Options{}), "<script>alert(1)</script>\n"); !strings.Contains(plain, "<script>") {
		t.Fatalf("expected raw html kept without sanitizing, got %s", plain)
	}
}

func TestRenderHighlight(t *testing.T) {
	p := New(Options{Highlight: true})
	got := render(t, p, "```go\npackage main\n```\n")
	if !strings.Contains(got, "chroma") || strings.Contains(got, "language-go") {
		t.Fatalf("expected highlighted code, got %q", got)
	}
	if plain := render(t, New(Options{}), "```go\npackage main\n```\n"); !strings.Contains(plain, `class="language-go"`) {
		t.Fatalf("expected plain code without highlighting, got %q", plain)
	}
}

func TestRenderWithOptionsHardWraps(t *testing.T) {
	p := New(Options{})
	got, err := p.RenderWithOptions(context.Background(), []byte("one\ntwo\n"), interfaces.ParseOptions{HardWraps: true})
	if err != nil {
		t.Fatalf("RenderWithOptions: %v", err)
	}
	if string(got) != "<p>one<br/>\ntwo</p>" {
		t.Fatalf("unexpected hard wrap output %q", string(got))
	}
	if plain := render(t, p, "one\ntwo\n"); plain != "<p>one\ntwo</p>" {
		t.Fatalf("expected defaults untouched by overrides, got %q", plain)
	}
}

func TestExtraStagesRunInOrder(t *testing.T) {
	var order []string
	p := New(Options{
		MarkdownStages: []Stage{NewStage("md-extra", func(root *tree.Node) *tree.Node {
			order = append(order, "md")
			return root
		})},
		HTMLStages: []Stage{NewStage("html-extra", func(root *tree.Node) *tree.Node {
			order = append(order, "html")
			return root
		})},
		Highlight: true,
	})

	render(t, p, "text\n")

	if strings.Join(order, ",") != "md,html" {
		t.Fatalf("unexpected stage order %v", order)
	}
	if got := strings.Join(p.StageNames(), ","); got != "tabbed-code,md-extra,aside,html-extra,highlight" {
		t.Fatalf("unexpected stage names %s", got)
	}
}

func TestTreeReturnsHTMLTree(t *testing.T) {
	root, err := New(Options{}).Tree(context.Background(), []byte("> [!NOTE]\n> hi\n"))
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	found := tree.FindAll(root, func(n *tree.Node) bool { return n.IsElement("aside") })
	if len(found) != 1 || found[0].Property("class") != "aside note" {
		t.Fatalf("expected note aside, got %#v", found)
	}
}

func TestRenderAllKeepsOrder(t *testing.T) {
	p := New(Options{Workers: 2})
	docs := make([][]byte, 8)
	for i := range docs {
		docs[i] = []byte(fmt.Sprintf("doc %d\n", i))
	}

	out, err := p.RenderAll(context.Background(), docs)
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	for i, html := range out {
		if want := fmt.Sprintf("<p>doc %d</p>", i); string(html) != want {
			t.Fatalf("document %d: expected %q, got %q", i, want, string(html))
		}
	}
}

func TestRenderHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(Options{})
	if _, err := p.Render(ctx, []byte("x")); err == nil {
		t.Fatalf("expected context error")
	}
	if _, err := p.RenderAll(ctx, [][]byte{[]byte("a"), []byte("b")}); err == nil {
		t.Fatalf("expected context error from RenderAll")
	}
}

func TestNilPipeline(t *testing.T) {
	var p *Pipeline
	if _, err := p.Render(context.Background(), nil); err != ErrNilPipeline {
		t.Fatalf("expected ErrNilPipeline, got %v", err)
	}
}
