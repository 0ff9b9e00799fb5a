package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"planner-cli/internal/project"
	"planner-cli/internal/store"
	"planner-cli/internal/tui"
)

func newCommentsCmd(app *App) *cobra.Command {
	var (
		width int
		raw   bool
	)

	cmd := &cobra.Command{
		Use:   "comments <project> <task-id>",
		Short: "Show the comments of a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := store.LoadProject(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := project.New(doc)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("%s: %w", args[0], err))
			}
			id, err := strconv.Atoi(strings.TrimSpace(args[1]))
			if err != nil || !p.TaskExists(id) {
				return writeErr(cmd, errNotFound("task", args[1]))
			}

			out := tui.TaskComments(p, id)
			if raw {
				return writeOut(cmd, app, map[string]any{"data": out})
			}
			if len(out) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No comments.")
				return err
			}

			style := tui.MarkdownStyle(lipgloss.NewRenderer(cmd.OutOrStdout()))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tui.RenderMarkdown(tui.CommentsMarkdown(out), width, style))
			return err
		},
	}

	cmd.Flags().IntVar(&width, "width", 80, "Wrap width")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print structured output (see --format) instead of rendered markdown")
	return cmd
}
