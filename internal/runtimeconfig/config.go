package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-blogkit/internal/markdown"
)

var ErrContentDirRequired = errors.New("blogkit config: content directory is required")
var ErrWorkersInvalid = errors.New("blogkit config: pipeline workers must be zero or positive")
var ErrTimeoutInvalid = errors.New("blogkit config: pipeline timeout must be zero or positive")
var ErrIDStrategyUnknown = errors.New("blogkit config: tabbed code id strategy is invalid")
var ErrMarkdownExtensionUnknown = errors.New("blogkit config: markdown extension is unknown")
var ErrLoggingProviderUnknown = errors.New("blogkit config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blogkit config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blogkit config: logging format is invalid")

// ModeDevelopment makes drafts visible, under obfuscated slugs.
const ModeDevelopment = "development"

// Config aggregates the settings of a blogkit run. Fields use simple types so
// the CLI can unmarshal them from a config file and the environment.
type Config struct {
	// Mode selects the execution mode; "development" shows drafts.
	Mode       string           `mapstructure:"mode"`
	ContentDir string           `mapstructure:"content_dir"`
	Pattern    string           `mapstructure:"pattern"`
	Site       SiteConfig       `mapstructure:"site"`
	Markdown   MarkdownConfig   `mapstructure:"markdown"`
	TabbedCode TabbedCodeConfig `mapstructure:"tabbed_code"`
	Pipeline   PipelineConfig   `mapstructure:"pipeline"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// SiteConfig carries the feed channel metadata.
type SiteConfig struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	BaseURL     string `mapstructure:"base_url"`
	Language    string `mapstructure:"language"`
	Stylesheet  string `mapstructure:"stylesheet"`
}

// MarkdownConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownConfig struct {
	Extensions []string        `mapstructure:"extensions"`
	HardWraps  bool            `mapstructure:"hard_wraps"`
	Sanitize   bool            `mapstructure:"sanitize"`
	Highlight  HighlightConfig `mapstructure:"highlight"`
}

// HighlightConfig toggles chroma highlighting of fenced code.
type HighlightConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Style   string `mapstructure:"style"`
}

// TabbedCodeConfig selects how tabbed code component ids are generated:
// "random" or "sequence".
type TabbedCodeConfig struct {
	IDStrategy string `mapstructure:"id_strategy"`
}

// PipelineConfig bounds rendering work.
type PipelineConfig struct {
	// Workers caps concurrent document renders; zero uses GOMAXPROCS.
	Workers int `mapstructure:"workers"`
	// Timeout caps a single command; zero disables it.
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoggingConfig selects and tunes the logger provider.
type LoggingConfig struct {
	Provider  string   `mapstructure:"provider"`
	Level     string   `mapstructure:"level"`
	Format    string   `mapstructure:"format"`
	AddSource bool     `mapstructure:"add_source"`
	Focus     []string `mapstructure:"focus"`
}

// DefaultConfig returns the defaults used when no config file is present.
func DefaultConfig() Config {
	return Config{
		Mode:       "",
		ContentDir: "content",
		Pattern:    markdown.DefaultPattern,
		Markdown: MarkdownConfig{
			Extensions: []string{"gfm"},
			Highlight: HighlightConfig{
				Style: "github",
			},
		},
		TabbedCode: TabbedCodeConfig{
			IDStrategy: "random",
		},
		Pipeline: PipelineConfig{
			Workers: 0,
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Development reports whether Mode selects development mode.
func (cfg Config) Development() bool {
	return strings.EqualFold(strings.TrimSpace(cfg.Mode), ModeDevelopment)
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.ContentDir) == "" {
		return ErrContentDirRequired
	}
	if cfg.Pipeline.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrWorkersInvalid, cfg.Pipeline.Workers)
	}
	if cfg.Pipeline.Timeout < 0 {
		return fmt.Errorf("%w: %s", ErrTimeoutInvalid, cfg.Pipeline.Timeout)
	}
	if strategy := strings.TrimSpace(cfg.TabbedCode.IDStrategy); strategy != "" && !isSupportedIDStrategy(strategy) {
		return fmt.Errorf("%w: %s", ErrIDStrategyUnknown, strategy)
	}
	for _, name := range cfg.Markdown.Extensions {
		if !markdown.SupportedExtension(name) {
			return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, name)
		}
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedIDStrategy(strategy string) bool {
	switch strings.ToLower(strategy) {
	case "random", "sequence":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger", "none":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
