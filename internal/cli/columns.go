package cli

import (
	"github.com/spf13/cobra"

	"planner-cli/internal/editor"
	"planner-cli/internal/session"
)

type columnInfo struct {
	Key           string   `json:"key"`
	Label         string   `json:"label"`
	Formats       []string `json:"formats"`
	DefaultFormat string   `json:"defaultFormat"`
	DefaultWidth  int      `json:"defaultWidth,omitempty"`
	Visible       bool     `json:"visibleByDefault"`
}

func newColumnsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "List table columns with their display formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			visible := map[editor.Attribute]bool{}
			for _, a := range editor.DefaultVisibleAttributes() {
				visible[a] = true
			}
			out := make([]columnInfo, 0, len(editor.Attributes()))
			for _, a := range editor.Attributes() {
				ci := columnInfo{
					Key:           a.Key(),
					Label:         a.Label(),
					DefaultFormat: string(a.DefaultFormat()),
					Visible:       visible[a],
				}
				if a != editor.AttrGanttChart {
					ci.DefaultWidth = a.DefaultWidth()
				}
				for _, f := range a.Formats() {
					ci.Formats = append(ci.Formats, string(f))
				}
				out = append(out, ci)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

// showColumns makes exactly keys visible, in that order.
func showColumns(s *session.Session, keys []string) error {
	pos := map[string]int{}
	for i, k := range keys {
		if _, ok := editor.ParseAttribute(k); !ok {
			return errInvalidFlag("columns", k, "unknown column (see: planner columns)")
		}
		if _, dup := pos[k]; dup {
			return errInvalidFlag("columns", k, "listed twice")
		}
		pos[k] = i
	}
	st := s.Editor.State()
	for i := range st.Columns {
		cs := &st.Columns[i]
		if p, ok := pos[cs.Type]; ok {
			idx := p
			cs.Visible, cs.Index = true, &idx
		} else {
			cs.Visible, cs.Index = false, nil
		}
	}
	return s.Editor.ApplyState(st)
}
