package blogkit_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-blogkit"
	"github.com/goliatone/go-blogkit/internal/logging/console"
	"github.com/goliatone/go-blogkit/internal/tabbedcode"
	"github.com/goliatone/go-blogkit/pkg/testsupport"
)

func newModule(t *testing.T, mutate func(*blogkit.Config), opts ...blogkit.Option) *blogkit.Module {
	t.Helper()
	cfg := blogkit.DefaultConfig()
	cfg.Logging.Provider = "none"
	if mutate != nil {
		mutate(&cfg)
	}
	opts = append([]blogkit.Option{blogkit.WithFS(testsupport.SampleContent())}, opts...)
	module, err := blogkit.New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return module
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := blogkit.DefaultConfig()
	cfg.Pipeline.Workers = -3
	if _, err := blogkit.New(cfg); !errors.Is(err, blogkit.ErrWorkersInvalid) {
		t.Fatalf("expected ErrWorkersInvalid, got %v", err)
	}
}

func TestNewRequiresExistingContentDir(t *testing.T) {
	cfg := blogkit.DefaultConfig()
	cfg.ContentDir = t.TempDir() + "/missing"
	if _, err := blogkit.New(cfg); err == nil {
		t.Fatalf("expected error for a missing content directory")
	}
}

func TestModuleListsAndRendersPosts(t *testing.T) {
	module := newModule(t, nil)
	ctx := context.Background()

	list, err := module.Blog().Posts(ctx)
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}
	if len(list) != 2 || list[0].Slug != "hello" {
		t.Fatalf("unexpected posts %#v", list)
	}

	rendered, err := module.Blog().Render(ctx, "hello")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(rendered.HTML, `<aside class="aside tip">`) {
		t.Fatalf("expected callout aside, got %q", rendered.HTML)
	}

	if _, err := module.Blog().Render(ctx, "missing"); !errors.Is(err, blogkit.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestModuleDevelopmentShowsDrafts(t *testing.T) {
	module := newModule(t, func(cfg *blogkit.Config) { cfg.Mode = "development" })
	list, err := module.Blog().Posts(context.Background())
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}
	if len(list) != 3 || !strings.HasPrefix(list[0].Slug, "draft-") {
		t.Fatalf("expected obfuscated draft first, got %#v", list)
	}
}

func TestModuleUsesSequenceIDs(t *testing.T) {
	module := newModule(t, func(cfg *blogkit.Config) { cfg.TabbedCode.IDStrategy = "sequence" })
	md := ":::tabbed-code\n```js\nlet a\n```\n:::\n"

	html, err := module.Renderer().Render(context.Background(), []byte(md))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), `data-component="tabbed-code-1"`) {
		t.Fatalf("expected sequence id, got %s", html)
	}
}

func TestModuleOptionsOverrideDefaults(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf})
	module := newModule(t, nil,
		blogkit.WithLoggerProvider(provider),
		blogkit.WithIDGenerator(tabbedcode.NewSequenceIDs()),
	)

	if module.LoggerProvider() != provider {
		t.Fatalf("expected injected provider")
	}
	if _, err := module.Blog().RenderAll(context.Background()); err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	if !strings.Contains(buf.String(), "posts.rendered") {
		t.Fatalf("expected service log entry, got %q", buf.String())
	}
	module.Logger("blogkit.test").Info("hello")
	if !strings.Contains(buf.String(), "module=blogkit.test") {
		t.Fatalf("expected module field, got %q", buf.String())
	}
}

func TestModuleHighlightCSS(t *testing.T) {
	css, err := newModule(t, nil).HighlightCSS()
	if err != nil {
		t.Fatalf("HighlightCSS: %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Fatalf("expected chroma classes, got %q", css)
	}
}

func TestNewLoggerProvider(t *testing.T) {
	if _, err := blogkit.NewLoggerProvider(blogkit.LoggingConfig{Provider: "console", Level: "loud"}); err == nil {
		t.Fatalf("expected invalid console level error")
	}
	provider, err := blogkit.NewLoggerProvider(blogkit.LoggingConfig{Provider: "gologger", Level: "debug", Format: "json"})
	if err != nil || provider == nil {
		t.Fatalf("expected gologger provider, got %v", err)
	}
}
