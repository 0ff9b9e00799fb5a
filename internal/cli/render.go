package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"planner-cli/internal/session"
)

func newRenderCmd(app *App) *cobra.Command {
	var (
		width     int
		height    int
		top       int
		left      int
		expandAll bool
		columns   string
		plain     bool
	)

	cmd := &cobra.Command{
		Use:   "render <project>",
		Short: "Paint one frame of the project table to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if width < 1 {
				return writeErr(cmd, errInvalidFlag("width", strconv.Itoa(width), "must be positive"))
			}
			if height < 1 {
				return writeErr(cmd, errInvalidFlag("height", strconv.Itoa(height), "must be positive"))
			}
			s, err := openSession(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := prepareView(s, expandAll, columns); err != nil {
				return writeErr(cmd, err)
			}

			f := s.Painter.NewFrame(width, height)
			if err := s.Editor.Resize(f.Width(), f.Height()); err != nil {
				return writeErr(cmd, err)
			}
			if top > 0 {
				if err := s.Editor.ScrollToRow(top); err != nil {
					return writeErr(cmd, errInvalidFlag("top", strconv.Itoa(top), err.Error()))
				}
			}
			if left > 0 {
				if err := s.Editor.SetLeftOffset(left * s.Painter.CellWidth()); err != nil {
					return writeErr(cmd, errInvalidFlag("left", strconv.Itoa(left), err.Error()))
				}
			}
			s.Editor.Paint(f)

			out := f.String()
			if plain {
				out = strings.Join(f.PlainLines(), "\n")
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().IntVar(&width, "width", 120, "Frame width in terminal columns")
	cmd.Flags().IntVar(&height, "height", 30, "Frame height in terminal lines")
	cmd.Flags().IntVar(&top, "top", 0, "Index of the first row to show")
	cmd.Flags().IntVar(&left, "left", 0, "Horizontal scroll in terminal columns")
	cmd.Flags().BoolVar(&expandAll, "expand-all", false, "Expand every group")
	cmd.Flags().StringVar(&columns, "columns", "", "Comma-separated column keys to show, in order (see: planner columns)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print text only, without colors")
	return cmd
}

// prepareView applies the view flags shared by render and inspect.
func prepareView(s *session.Session, expandAll bool, columns string) error {
	if expandAll {
		if err := s.ExpandAll(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(columns) == "" {
		return nil
	}
	var keys []string
	for _, k := range strings.Split(columns, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return showColumns(s, keys)
}
