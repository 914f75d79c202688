package cli

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	postscmd "github.com/goliatone/go-blogkit/internal/commands/posts"
	"github.com/goliatone/go-blogkit/internal/logging"
	"github.com/goliatone/go-blogkit/internal/watch"
)

func newBuildCommand(app *App) *cobra.Command {
	var (
		out      string
		watching bool
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render every post and the feed into a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := app.build(ctx, out); err != nil {
				return err
			}
			if !watching {
				return nil
			}
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.watch(ctx, out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "public", "output directory")
	cmd.Flags().BoolVarP(&watching, "watch", "w", false, "rebuild when posts change")
	return cmd
}

func (a *App) build(ctx context.Context, out string) error {
	presenter := &dirPresenter{dir: out}
	set, err := a.handlers(presenter)
	if err != nil {
		return err
	}
	if err := set.Render.Execute(ctx, postscmd.RenderPostCommand{All: true}); err != nil {
		return err
	}
	if err := set.Feed.Execute(ctx, postscmd.BuildFeedCommand{}); err != nil {
		return err
	}
	if a.config.Markdown.Highlight.Enabled {
		css, err := a.module.HighlightCSS()
		if err != nil {
			return err
		}
		if err := writeFile(filepath.Join(out, "highlight.css"), css); err != nil {
			return err
		}
	}
	logging.CommandsLogger(a.module.LoggerProvider()).Info("build.completed", "posts", presenter.written, "out", out)
	return nil
}

func (a *App) watch(ctx context.Context, out string) error {
	logger := logging.WatchLogger(a.module.LoggerProvider())
	watcher, err := watch.New(a.config.ContentDir, watch.Options{
		Match:  a.module.Loader().Matches,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	logger.Info("watch.started", "dir", a.config.ContentDir)
	return watcher.Run(ctx, func(ctx context.Context, batch []watch.Event) error {
		logger.Info("watch.rebuild", "changed", len(batch))
		return a.build(ctx, out)
	})
}
