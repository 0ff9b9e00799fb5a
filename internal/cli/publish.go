package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"planner-cli/internal/project"
	"planner-cli/internal/publish"
	"planner-cli/internal/store"
)

func newPublishCmd(app *App) *cobra.Command {
	var (
		toDir     string
		comments  bool
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "publish <project>",
		Short: "Export the project outline as Markdown (not a project file)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := store.LoadProject(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := project.New(doc)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("%s: %w", args[0], err))
			}
			res, err := publish.WriteProject(p, toDir, publish.WriteOptions{
				IncludeComments: comments,
				Overwrite:       overwrite,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			app.logger.Debug("published", "project", args[0], "files", res.Written)
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&toDir, "to", "", "Output directory")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().BoolVar(&comments, "comments", false, "Include task comments")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
	return cmd
}
