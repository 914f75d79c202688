// Package posts classifies raw post records into published and drafted
// listings and derives their slugs.
package posts

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ModeDevelopment is the execution mode that exposes drafts in Published.
const ModeDevelopment = "development"

const (
	draftsDir       = "drafts"
	obfuscatePrefix = "draft-"
)

// Classifier projects records into posts for one execution mode.
type Classifier struct {
	Mode string
}

// New returns a classifier for mode.
func New(mode string) Classifier {
	return Classifier{Mode: mode}
}

// Development reports whether drafts are previewed.
func (c Classifier) Development() bool {
	return strings.EqualFold(strings.TrimSpace(c.Mode), ModeDevelopment)
}

// Published returns the titled posts visible in the current mode, newest
// first. Outside development drafts are dropped; in development they are kept
// under an obfuscated slug.
func (c Classifier) Published(records []Record) []Post {
	dev := c.Development()
	out := make([]Post, 0, len(records))
	for _, record := range records {
		if !hasTitle(record) {
			continue
		}
		post := project(record)
		if post.Draft {
			if !dev {
				continue
			}
			post.Slug = ObfuscatedSlug(record.FilePath)
		}
		out = append(out, post)
	}
	Sort(out)
	return out
}

// Drafted returns the titled drafts, newest first, always under an obfuscated
// slug regardless of mode.
func (c Classifier) Drafted(records []Record) []Post {
	out := make([]Post, 0)
	for _, record := range records {
		if !hasTitle(record) {
			continue
		}
		post := project(record)
		if !post.Draft {
			continue
		}
		post.Slug = ObfuscatedSlug(record.FilePath)
		out = append(out, post)
	}
	Sort(out)
	return out
}

func hasTitle(record Record) bool {
	return record.FrontMatter.Title != ""
}

func project(record Record) Post {
	fm := record.FrontMatter
	ts, dated := ParseTimestamp(fm.Date)
	return Post{
		Title:     fm.Title,
		Author:    fm.Author,
		Slug:      SlugFromPath(record.FilePath),
		Preview:   fm.Preview,
		Timestamp: ts,
		Dated:     dated,
		Draft:     IsDraft(record.FilePath),
		Date:      fm.Date,
		Content:   record.Content,
		FilePath:  record.FilePath,
		Icon:      fm.Icon,
		Emoji:     fm.Emoji,
	}
}

// Sort orders posts newest first. Posts with equal timestamps keep their
// relative order, and undated posts go last in their original order.
func Sort(posts []Post) {
	slices.SortStableFunc(posts, comparePosts)
}

func comparePosts(a, b Post) int {
	switch {
	case a.Dated && !b.Dated:
		return -1
	case !a.Dated && b.Dated:
		return 1
	case !a.Dated:
		return 0
	}
	return cmp.Compare(b.Timestamp, a.Timestamp)
}

// IsDraft reports whether the directory two levels above the file is named
// "drafts", as in content/drafts/<slug>/post.md.
func IsDraft(path string) bool {
	return segmentFromEnd(path, 2) == draftsDir
}

// SlugFromPath returns the name of the file's parent directory.
func SlugFromPath(path string) string {
	return segmentFromEnd(path, 1)
}

// ObfuscatedSlug hashes the file path into a non guessable slug. The path is
// the only input, so renaming a draft changes its slug.
func ObfuscatedSlug(path string) string {
	sum := sha256.Sum256([]byte(path))
	return obfuscatePrefix + hex.EncodeToString(sum[:])
}

func segmentFromEnd(path string, n int) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	idx := len(parts) - 1 - n
	if idx < 0 {
		return ""
	}
	return parts[idx]
}

// ParseTimestamp parses a front matter date into epoch milliseconds. Dates
// without a zone are read as UTC. The second result is false when the date is
// empty or cannot be parsed.
func ParseTimestamp(date string) (int64, bool) {
	trimmed := strings.TrimSpace(date)
	if trimmed == "" {
		return 0, false
	}
	parsed, err := dateparse.ParseIn(trimmed, time.UTC)
	if err != nil {
		return 0, false
	}
	return parsed.UnixMilli(), true
}
