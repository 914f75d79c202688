// Package testsupport holds helpers shared by blogkit tests.
package testsupport

import (
	"fmt"
	"os"
	"strings"
	"testing/fstest"
)

// LoadFixture reads a test fixture from disk.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Post is one post file of a content tree built with ContentFS.
type Post struct {
	// Path is relative to the content root, e.g. "posts/hello/post.md".
	Path    string
	Title   string
	Date    string
	Preview string
	Body    string
}

// PostSource renders p as a front matter prefixed Markdown document.
func PostSource(p Post) string {
	var b strings.Builder
	b.WriteString("---\n")
	if p.Title != "" {
		fmt.Fprintf(&b, "title: %q\n", p.Title)
	}
	if p.Date != "" {
		fmt.Fprintf(&b, "date: %s\n", p.Date)
	}
	if p.Preview != "" {
		fmt.Fprintf(&b, "preview: %q\n", p.Preview)
	}
	b.WriteString("---\n")
	b.WriteString(p.Body)
	return b.String()
}

// ContentFS returns an in-memory content tree holding posts.
func ContentFS(posts ...Post) fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, p := range posts {
		fsys[p.Path] = &fstest.MapFile{Data: []byte(PostSource(p)), Mode: 0o644}
	}
	return fsys
}

// SampleContent is a small tree with two published posts and one draft.
func SampleContent() fstest.MapFS {
	return ContentFS(
		Post{Path: "posts/hello/post.md", Title: "Hello", Date: "2024-06-01", Preview: "hi there", Body: "> [!TIP]\n> Read on\n"},
		Post{Path: "posts/older/post.md", Title: "Older", Date: "2024-01-01", Body: "Old news\n"},
		Post{Path: "drafts/secret/post.md", Title: "Secret", Date: "2024-07-01", Body: "Not yet\n"},
	)
}
