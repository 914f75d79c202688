package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-blogkit/internal/posts"
	"github.com/goliatone/go-blogkit/internal/util"
)

// ParseFrontMatter extracts the post metadata and Markdown body from source.
// YAML, TOML and JSON front matter are accepted; a document without front
// matter yields empty metadata and the full source as body.
func ParseFrontMatter(source []byte) (posts.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return posts.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildRecord assembles a post record from a file path and its raw source.
func BuildRecord(path string, source []byte) (posts.Record, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return posts.Record{}, fmt.Errorf("%s: %w", path, err)
	}
	return posts.Record{
		FrontMatter: fm,
		Content:     string(body),
		FilePath:    path,
	}, nil
}

type frontMatterEnvelope struct {
	Title   string         `yaml:"title" toml:"title" json:"title"`
	Author  string         `yaml:"author" toml:"author" json:"author"`
	Preview string         `yaml:"preview" toml:"preview" json:"preview"`
	Date    any            `yaml:"date" toml:"date" json:"date"`
	Icon    string         `yaml:"icon" toml:"icon" json:"icon"`
	Emoji   string         `yaml:"emoji" toml:"emoji" json:"emoji"`
	Custom  map[string]any `yaml:",inline" toml:"-" json:"-"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) posts.FrontMatter {
	raw := util.CloneAnyMap(env.Custom, 6)

	date := normalizeDate(env.Date)
	set := func(key, value string) {
		if value != "" {
			raw[key] = value
		}
	}
	set("title", env.Title)
	set("author", env.Author)
	set("preview", env.Preview)
	set("date", date)
	set("icon", env.Icon)
	set("emoji", env.Emoji)

	return posts.FrontMatter{
		Title:   env.Title,
		Author:  env.Author,
		Preview: env.Preview,
		Date:    date,
		Icon:    env.Icon,
		Emoji:   env.Emoji,
		Raw:     raw,
	}
}

// normalizeDate keeps string dates as written. Decoders that resolve
// timestamps hand back time.Time, which is formatted back to a date when it
// carries no clock component.
func normalizeDate(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		u := v.UTC()
		if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
			return u.Format(time.DateOnly)
		}
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}
