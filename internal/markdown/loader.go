package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/goliatone/go-blogkit/internal/posts"
)

// DefaultPattern matches the post files of a content tree.
const DefaultPattern = "**/post.md"

// LoaderConfig configures how post files are discovered.
type LoaderConfig struct {
	// BasePath is prefixed to the fs relative path of every record. Slugs
	// and draft detection read the last segments of the resulting path.
	BasePath string
	// Pattern limits discovered files to those matching the supplied glob
	// (defaults to "**/post.md").
	Pattern string
}

// Loader turns post files of a filesystem into post records.
type Loader struct {
	fs       fs.FS
	basePath string
	pattern  string
}

// NewLoader constructs a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultPattern
	}
	base := strings.TrimSpace(cfg.BasePath)
	if base != "" {
		base = filepath.ToSlash(filepath.Clean(base))
	}

	return &Loader{
		fs:       filesystem,
		basePath: base,
		pattern:  filepath.ToSlash(pattern),
	}
}

// NewDirLoader constructs a Loader rooted at dir on the local disk.
func NewDirLoader(dir, pattern string) (*Loader, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("markdown loader: stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("markdown loader: %s is not a directory", dir)
	}
	return NewLoader(os.DirFS(dir), LoaderConfig{BasePath: dir, Pattern: pattern}), nil
}

// LoadFile reads and parses the post at rel, a slash separated path relative
// to the loader filesystem.
func (l *Loader) LoadFile(ctx context.Context, rel string) (posts.Record, error) {
	if err := ctx.Err(); err != nil {
		return posts.Record{}, err
	}

	rel = path.Clean(filepath.ToSlash(rel))
	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return posts.Record{}, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}

	return BuildRecord(l.recordPath(rel), data)
}

// Load discovers every post file and returns the parsed records ordered by
// file path.
func (l *Loader) Load(ctx context.Context) ([]posts.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []posts.Record
	walkErr := fs.WalkDir(l.fs, ".", func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !l.Matches(current) {
			return nil
		}

		record, err := l.LoadFile(ctx, current)
		if err != nil {
			return err
		}
		records = append(records, record)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].FilePath < records[j].FilePath
	})
	return records, nil
}

// Matches reports whether the fs relative path is a post file. Patterns
// without a slash match against the base name.
func (l *Loader) Matches(rel string) bool {
	target := path.Clean(filepath.ToSlash(rel))
	if !strings.Contains(l.pattern, "/") {
		target = path.Base(target)
	}
	match, err := doublestar.Match(l.pattern, target)
	if err != nil {
		return false
	}
	return match
}

// Resolve maps a record path back to the fs relative path it was read from.
func (l *Loader) Resolve(recordPath string) string {
	p := filepath.ToSlash(recordPath)
	if l.basePath != "" && l.basePath != "." {
		p = strings.TrimPrefix(p, l.basePath+"/")
	}
	return path.Clean(p)
}

func (l *Loader) recordPath(rel string) string {
	if l.basePath == "" || l.basePath == "." {
		return rel
	}
	return l.basePath + "/" + rel
}
