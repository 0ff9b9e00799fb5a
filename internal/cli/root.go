package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"planner-cli/internal/format"
	"planner-cli/internal/session"
	"planner-cli/internal/store"
)

type App struct {
	Dir        string
	LogLevel   string
	LogFormat  string
	Glyphs     string
	PrettyJSON bool
	Format     string

	cfg    *store.Config
	logger *log.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "planner",
		Short:        "Project planner: task table and Gantt chart in the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open a project interactively (shortcut for: planner view plan.yaml)
  planner plan.yaml

  # Paint one frame to stdout
  planner render plan.yaml --width 160 --height 40 --expand-all

  # Scriptable output
  planner inspect plan.yaml --attribute "start date" --format yaml

  # Export the outline as Markdown
  planner publish plan.yaml --to ./out --comments
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.init(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("PLANNER_DIR", ""), "Planner directory for config and editor state (default: nearest .planner, then ~/.planner)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error; or set PLANNER_LOG_LEVEL)")
	cmd.PersistentFlags().StringVar(&app.LogFormat, "log-format", "", "Log format (text|json|logfmt; or set PLANNER_LOG_FORMAT)")
	cmd.PersistentFlags().StringVar(&app.Glyphs, "glyphs", "", "Glyph set (unicode|ascii; or set PLANNER_GLYPHS)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("PLANNER_FORMAT", "json"), "Output format (json|yaml)")

	cmd.AddCommand(newViewCmd(app))
	cmd.AddCommand(newRenderCmd(app))
	cmd.AddCommand(newInspectCmd(app))
	cmd.AddCommand(newColumnsCmd(app))
	cmd.AddCommand(newStateCmd(app))
	cmd.AddCommand(newDBCmd(app))
	cmd.AddCommand(newCommentsCmd(app))
	cmd.AddCommand(newSetCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newDoctorCmd(app))

	return cmd
}

// init resolves the planner directory, layers flags over the stored config and
// builds the logger.
func (app *App) init(cmd *cobra.Command) error {
	if app.Dir == "" {
		dir, err := store.DefaultDir()
		if err != nil {
			return writeErr(cmd, err)
		}
		app.Dir = dir
	}
	cfg, err := app.store().LoadConfig()
	if err != nil {
		return writeErr(cmd, err)
	}
	if app.LogLevel != "" {
		cfg.Log.Level = app.LogLevel
	}
	if app.LogFormat != "" {
		cfg.Log.Format = app.LogFormat
	}
	if app.Glyphs != "" {
		cfg.Display.Glyphs = app.Glyphs
	}
	if err := cfg.Validate(); err != nil {
		return writeErr(cmd, err)
	}
	app.cfg = cfg

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return writeErr(cmd, err)
	}
	app.logger = logger
	return nil
}

func (app *App) store() store.Store {
	return store.Store{Dir: app.Dir}
}

// openSession loads a project and restores its saved editor state.
func openSession(cmd *cobra.Command, app *App, path string) (*session.Session, error) {
	s, err := session.Open(cmd.Context(), path, session.Options{
		Config:   *app.cfg,
		Renderer: lipgloss.NewRenderer(cmd.OutOrStdout()),
		Logger:   app.logger,
	})
	if err != nil {
		return nil, err
	}
	s.RestoreState(app.store())
	app.logger.Debug("opened project", "path", path, "tasks", len(s.Project.TaskIDs()), "groups", len(s.Project.GroupIDs()))
	return s, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
