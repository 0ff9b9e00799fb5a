package cli

import (
	"github.com/spf13/cobra"

	"planner-cli/internal/store"
)

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor <project>",
		Short: "Check a project file and list every problem found",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report := store.DoctorProject(cmd.Context(), args[0])

			errs, warns := 0, 0
			for _, it := range report.Issues {
				if it.Level == store.DoctorIssueLevelError {
					errs++
				} else {
					warns++
				}
			}
			app.logger.Debug("doctor", "project", args[0], "errors", errs, "warnings", warns)

			if err := writeOut(cmd, app, map[string]any{
				"data": report,
				"meta": map[string]any{
					"errors":   errs,
					"warnings": warns,
				},
			}); err != nil {
				return err
			}

			if fail && report.HasErrors() {
				return writeErr(cmd, store.ErrDoctorIssuesFound)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	return cmd
}
