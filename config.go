package blogkit

import "github.com/goliatone/go-blogkit/internal/runtimeconfig"

var (
	ErrContentDirRequired       = runtimeconfig.ErrContentDirRequired
	ErrWorkersInvalid           = runtimeconfig.ErrWorkersInvalid
	ErrTimeoutInvalid           = runtimeconfig.ErrTimeoutInvalid
	ErrIDStrategyUnknown        = runtimeconfig.ErrIDStrategyUnknown
	ErrMarkdownExtensionUnknown = runtimeconfig.ErrMarkdownExtensionUnknown
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config           = runtimeconfig.Config
	SiteConfig       = runtimeconfig.SiteConfig
	MarkdownConfig   = runtimeconfig.MarkdownConfig
	HighlightConfig  = runtimeconfig.HighlightConfig
	TabbedCodeConfig = runtimeconfig.TabbedCodeConfig
	PipelineConfig   = runtimeconfig.PipelineConfig
	LoggingConfig    = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
