package cli

import (
	"github.com/spf13/cobra"

	"planner-cli/internal/editor"
	"planner-cli/internal/render"
)

type inspectRow struct {
	Index  int                 `json:"index"`
	Kind   string              `json:"kind"`
	ID     int                 `json:"id"`
	Indent int                 `json:"indent"`
	Cells  map[string][]string `json:"cells"`
}

func newInspectCmd(app *App) *cobra.Command {
	var (
		attribute string
		expandAll bool
		columns   string
	)

	cmd := &cobra.Command{
		Use:   "inspect <project>",
		Short: "Print the formatted content of every visible row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := prepareView(s, expandAll, columns); err != nil {
				return writeErr(cmd, err)
			}

			attrs := s.Editor.Columns().Visible()
			if attribute != "" {
				a, ok := editor.ParseAttribute(attribute)
				if !ok {
					return writeErr(cmd, errInvalidFlag("attribute", attribute, "unknown column (see: planner columns)"))
				}
				attrs = []editor.Attribute{a}
			}

			content := s.Editor.Content()
			rows := s.Editor.Projection().Rows()
			out := make([]inspectRow, 0, len(rows))
			for i, r := range rows {
				ir := inspectRow{Index: i, Kind: r.Kind.String(), ID: r.ID, Indent: r.Indent, Cells: map[string][]string{}}
				for _, a := range attrs {
					if a == editor.AttrGanttChart {
						continue
					}
					frags := content.Get(r.Ref(), a).Fragments
					texts := make([]string, len(frags))
					for j, f := range frags {
						texts[j] = render.PlainText(f)
					}
					ir.Cells[a.Key()] = texts
				}
				out = append(out, ir)
			}
			return writeOut(cmd, app, map[string]any{
				"data": out,
				"meta": map[string]any{
					"project": s.Project.Name(),
					"rows":    len(out),
				},
			})
		},
	}

	cmd.Flags().StringVar(&attribute, "attribute", "", "Only this column (key, see: planner columns)")
	cmd.Flags().BoolVar(&expandAll, "expand-all", false, "Expand every group")
	cmd.Flags().StringVar(&columns, "columns", "", "Comma-separated column keys to show, in order")
	return cmd
}
