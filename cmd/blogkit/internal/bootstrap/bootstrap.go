// Package bootstrap loads the blogkit CLI configuration and builds the module.
package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/goliatone/go-blogkit"
)

const (
	ConfigName = "blogkit"
	EnvPrefix  = "BLOGKIT"
	// modeEnv is read when BLOGKIT_MODE and the config file leave the mode empty.
	modeEnv = "MODE"
)

// NewViper returns a viper instance reading ./blogkit.yaml and BLOGKIT_*
// environment variables, seeded with the blogkit defaults.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	setDefaults(v, blogkit.DefaultConfig())
	return v
}

func setDefaults(v *viper.Viper, cfg blogkit.Config) {
	v.SetDefault("mode", cfg.Mode)
	v.SetDefault("content_dir", cfg.ContentDir)
	v.SetDefault("pattern", cfg.Pattern)

	v.SetDefault("site.title", cfg.Site.Title)
	v.SetDefault("site.description", cfg.Site.Description)
	v.SetDefault("site.base_url", cfg.Site.BaseURL)
	v.SetDefault("site.language", cfg.Site.Language)
	v.SetDefault("site.stylesheet", cfg.Site.Stylesheet)

	v.SetDefault("markdown.extensions", cfg.Markdown.Extensions)
	v.SetDefault("markdown.hard_wraps", cfg.Markdown.HardWraps)
	v.SetDefault("markdown.sanitize", cfg.Markdown.Sanitize)
	v.SetDefault("markdown.highlight.enabled", cfg.Markdown.Highlight.Enabled)
	v.SetDefault("markdown.highlight.style", cfg.Markdown.Highlight.Style)

	v.SetDefault("tabbed_code.id_strategy", cfg.TabbedCode.IDStrategy)

	v.SetDefault("pipeline.workers", cfg.Pipeline.Workers)
	v.SetDefault("pipeline.timeout", cfg.Pipeline.Timeout)

	v.SetDefault("logging.provider", cfg.Logging.Provider)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.add_source", cfg.Logging.AddSource)
	v.SetDefault("logging.focus", cfg.Logging.Focus)
}

// LoadConfig reads path, or blogkit.yaml from the working directory when
// path is empty, and decodes the merged settings. A missing default config
// file is not an error; a missing explicit one is.
func LoadConfig(v *viper.Viper, path string) (blogkit.Config, error) {
	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return blogkit.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg blogkit.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return blogkit.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if strings.TrimSpace(cfg.Mode) == "" {
		cfg.Mode = os.Getenv(modeEnv)
	}
	if err := cfg.Validate(); err != nil {
		return blogkit.Config{}, err
	}
	return cfg, nil
}

// BuildModule constructs the blogkit module for cfg.
func BuildModule(cfg blogkit.Config) (*blogkit.Module, error) {
	module, err := blogkit.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialise blogkit module: %w", err)
	}
	return module, nil
}
