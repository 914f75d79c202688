// Package cli implements the blogkit command line.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/goliatone/go-blogkit"
	"github.com/goliatone/go-blogkit/cmd/blogkit/internal/bootstrap"
	postscmd "github.com/goliatone/go-blogkit/internal/commands/posts"
)

const (
	configFlagName     = "config"
	contentDirFlagName = "content-dir"
	modeFlagName       = "mode"
	logLevelFlagName   = "log-level"
)

// App carries the state shared by the subcommands of one invocation.
type App struct {
	Viper       *viper.Viper
	BuildModule func(blogkit.Config) (*blogkit.Module, error)
	Now         func() time.Time

	configFile string
	config     blogkit.Config
	module     *blogkit.Module
}

// NewApp returns an App wired to the real config loader and module builder.
func NewApp() *App {
	return &App{
		Viper:       bootstrap.NewViper(),
		BuildModule: bootstrap.BuildModule,
		Now:         time.Now,
	}
}

// NewRootCommand builds the blogkit command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "blogkit",
		Short:        "Render a Markdown blog",
		Long:         "blogkit discovers post.md files under a content directory, renders them to HTML and builds the RSS feed.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.load()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.configFile, configFlagName, "", "config file (default ./blogkit.yaml)")
	flags.String(contentDirFlagName, app.Viper.GetString("content_dir"), "content directory holding posts/ and drafts/")
	flags.String(modeFlagName, app.Viper.GetString("mode"), `execution mode; "development" shows drafts`)
	flags.String(logLevelFlagName, app.Viper.GetString("logging.level"), "log level (trace, debug, info, warn, error)")
	bindFlag(app.Viper, flags.Lookup(contentDirFlagName), "content_dir")
	bindFlag(app.Viper, flags.Lookup(modeFlagName), "mode")
	bindFlag(app.Viper, flags.Lookup(logLevelFlagName), "logging.level")

	root.AddCommand(
		newPostsCommand(app),
		newRenderCommand(app),
		newFeedCommand(app),
		newBuildCommand(app),
	)
	return root
}

// bindFlag wires a cobra flag to a viper key so config and env values feed it.
func bindFlag(v *viper.Viper, flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}
	cobra.CheckErr(v.BindPFlag(key, flag))
}

func (a *App) load() error {
	cfg, err := bootstrap.LoadConfig(a.Viper, a.configFile)
	if err != nil {
		return err
	}
	module, err := a.BuildModule(cfg)
	if err != nil {
		return err
	}
	a.config = cfg
	a.module = module
	return nil
}

func (a *App) handlers(presenter postscmd.Presenter) (*postscmd.HandlerSet, error) {
	return postscmd.RegisterPostsCommands(nil, a.module.Blog(), presenter, a.module.LoggerProvider(),
		postscmd.WithTimeout(a.config.Pipeline.Timeout),
		postscmd.WithClock(a.Now),
	)
}
