package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/goliatone/go-blogkit/internal/blog"
	"github.com/goliatone/go-blogkit/internal/posts"
)

// consolePresenter prints results: posts as a table, HTML and feeds verbatim.
type consolePresenter struct {
	w io.Writer
}

func newConsolePresenter(w io.Writer) *consolePresenter {
	return &consolePresenter{w: w}
}

func (p *consolePresenter) PresentPosts(_ context.Context, list []posts.Post) error {
	table := tablewriter.NewWriter(p.w)
	table.SetHeader([]string{"Title", "Slug", "Date", "Draft"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	for _, post := range list {
		table.Append([]string{post.Title, post.Slug, post.Date, strconv.FormatBool(post.Draft)})
	}
	table.SetFooter([]string{fmt.Sprintf("Total %d", len(list)), "", "", ""})
	table.Render()
	return nil
}

func (p *consolePresenter) PresentPost(_ context.Context, post blog.RenderedPost) error {
	_, err := io.WriteString(p.w, post.HTML)
	return err
}

func (p *consolePresenter) PresentFeed(_ context.Context, xml string) error {
	_, err := io.WriteString(p.w, xml)
	return err
}

// dirPresenter writes rendered posts to <dir>/<slug>/index.html and the
// feed to <dir>/rss.xml.
type dirPresenter struct {
	dir     string
	written int
}

func (p *dirPresenter) PresentPosts(context.Context, []posts.Post) error {
	return nil
}

func (p *dirPresenter) PresentPost(_ context.Context, post blog.RenderedPost) error {
	p.written++
	return writeFile(filepath.Join(p.dir, post.Slug, "index.html"), post.HTML)
}

func (p *dirPresenter) PresentFeed(_ context.Context, xml string) error {
	return writeFile(filepath.Join(p.dir, "rss.xml"), xml)
}

func writeFile(path, body string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(body), 0o644)
}
