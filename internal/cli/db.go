package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"planner-cli/internal/project"
	"planner-cli/internal/store"
)

func newDBCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Convert projects between files and sqlite databases",
	}
	cmd.AddCommand(newDBConvertCmd(app, "import <project-file> <out.db>", "Import a yaml/json project into a sqlite database", store.FileSQLite, true))
	cmd.AddCommand(newDBConvertCmd(app, "export <in.db> <out-file>", "Export a sqlite database to a yaml/json project", store.FileSQLite, false))
	return cmd
}

// newDBConvertCmd builds import (sqlite destination) and export (sqlite source).
func newDBConvertCmd(app *App, use, short string, kind store.FileKind, toDB bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]
			srcKind, err := store.KindOf(src)
			if err != nil {
				return writeErr(cmd, err)
			}
			dstKind, err := store.KindOf(dst)
			if err != nil {
				return writeErr(cmd, err)
			}
			if toDB && (dstKind != kind || srcKind == kind) {
				return writeErr(cmd, errors.New("import reads a yaml/json file and writes a .db file"))
			}
			if !toDB && (srcKind != kind || dstKind == kind) {
				return writeErr(cmd, errors.New("export reads a .db file and writes a yaml/json file"))
			}

			doc, err := store.LoadProject(cmd.Context(), src)
			if err != nil {
				return writeErr(cmd, err)
			}
			// Refuse to copy a document the viewer could not open.
			p, err := project.New(doc)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("%s: %w", src, err))
			}
			if err := store.SaveProject(cmd.Context(), dst, p.Document()); err != nil {
				return writeErr(cmd, err)
			}
			app.logger.Info("converted project", "from", src, "to", dst)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"from":   src,
				"to":     dst,
				"tasks":  len(doc.Tasks),
				"groups": len(doc.Groups),
			}})
		},
	}
}
