package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"planner-cli/internal/model"
)

func newSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <project> <task|group> <id> <key> <value>",
		Short: "Change one field of a task or group and save the project",
		Long: strings.TrimSpace(`
Keys use the info names shown by inspect, for example:

  planner set plan.yaml task 4 "duration value" 3
  planner set plan.yaml task 4 "completion status" completed
  planner set plan.yaml group 2 title "Phase two"

Dependent tasks are rescheduled before the file is written.
`),
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, kind, key, value := args[0], args[1], model.InfoKey(args[3]), args[4]
			id, err := strconv.Atoi(args[2])
			if err != nil {
				return writeErr(cmd, errNotFound(kind, args[2]))
			}

			s, err := openSession(cmd, app, path)
			if err != nil {
				return writeErr(cmd, err)
			}
			var info model.Info
			switch kind {
			case "task":
				if err := s.Project.SetTaskInfo(id, key, value); err != nil {
					return writeErr(cmd, err)
				}
				info = s.Project.TaskInfo(id)
			case "group":
				if err := s.Project.SetGroupInfo(id, key, value); err != nil {
					return writeErr(cmd, err)
				}
				info = s.Project.GroupInfo(id)
			default:
				return writeErr(cmd, errNotFound("entity kind", kind))
			}
			if err := s.Save(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			app.logger.Debug("saved project", "path", path, "affected", s.Tracker.AffectedTaskIDs())
			return writeOut(cmd, app, map[string]any{
				"data": info,
				"meta": map[string]any{"rescheduled": s.Tracker.AffectedTaskIDs()},
			})
		},
	}
}
