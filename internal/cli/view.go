package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"planner-cli/internal/tui"
)

const tuiLogFileName = "planner.log"

func newViewCmd(app *App) *cobra.Command {
	var expandAll bool

	cmd := &cobra.Command{
		Use:   "view <project>",
		Short: "Open a project in the interactive viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The terminal belongs to the TUI; logs go to a file in the planner dir.
			if err := app.store().Ensure(); err != nil {
				return writeErr(cmd, err)
			}
			f, err := os.OpenFile(filepath.Join(app.Dir, tuiLogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer f.Close()
			logger, err := newLogger(f, app.cfg.Log)
			if err != nil {
				return writeErr(cmd, err)
			}
			app.logger = logger

			s, err := openSession(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if expandAll {
				if err := s.ExpandAll(); err != nil {
					return writeErr(cmd, err)
				}
			}
			if err := tui.Run(s, app.store()); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&expandAll, "expand-all", false, "Expand every group on open")
	return cmd
}
