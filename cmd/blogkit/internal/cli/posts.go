package cli

import (
	"os"

	"github.com/spf13/cobra"

	postscmd "github.com/goliatone/go-blogkit/internal/commands/posts"
)

func newPostsCommand(app *App) *cobra.Command {
	var msg postscmd.ListPostsCommand
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := app.handlers(newConsolePresenter(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			return set.List.Execute(cmd.Context(), msg)
		},
	}
	cmd.Flags().BoolVar(&msg.Drafts, "drafts", false, "list drafts with their obfuscated slugs")
	cmd.Flags().IntVarP(&msg.Limit, "limit", "n", 0, "list at most n posts")
	return cmd
}

func newRenderCommand(app *App) *cobra.Command {
	var msg postscmd.RenderPostCommand
	cmd := &cobra.Command{
		Use:   "render [slug]",
		Short: "Render a post to HTML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				msg.Slug = args[0]
			}
			set, err := app.handlers(newConsolePresenter(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			return set.Render.Execute(cmd.Context(), msg)
		},
	}
	cmd.Flags().BoolVar(&msg.All, "all", false, "render every published post")
	return cmd
}

func newFeedCommand(app *App) *cobra.Command {
	var (
		msg postscmd.BuildFeedCommand
		out string
	)
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Print the RSS feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			writer := cmd.OutOrStdout()
			if out != "" {
				file, err := os.Create(out)
				if err != nil {
					return err
				}
				defer file.Close()
				writer = file
			}
			set, err := app.handlers(newConsolePresenter(writer))
			if err != nil {
				return err
			}
			return set.Feed.Execute(cmd.Context(), msg)
		},
	}
	cmd.Flags().IntVarP(&msg.Limit, "limit", "n", 0, "keep only the newest n items")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the feed to a file instead of stdout")
	return cmd
}
