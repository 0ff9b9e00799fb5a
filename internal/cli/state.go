package cli

import (
	"github.com/spf13/cobra"
)

func newStateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Saved editor state (columns, expansion, scroll position) per project",
	}
	cmd.AddCommand(newStateShowCmd(app))
	cmd.AddCommand(newStateResetCmd(app))
	return cmd
}

func newStateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project>",
		Short: "Show the editor state a project opens with",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.store()
			path, err := st.EditorStatePath(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			saved, err := st.LoadEditorState(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openSession(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": s.Editor.State(),
				"meta": map[string]any{
					"path":  path,
					"saved": saved != nil,
				},
			})
		},
	}
}

func newStateResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <project>",
		Short: "Forget the saved editor state of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := app.store()
			path, err := st.EditorStatePath(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := st.ResetEditorState(args[0]); err != nil {
				return writeErr(cmd, err)
			}
			app.logger.Info("editor state reset", "path", path)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": path, "reset": true}})
		},
	}
}
