// Package session assembles a loaded project, its calendar and scheduler, and the
// editor that displays it. The CLI and the TUI both work through a Session.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"planner-cli/internal/calendar"
	"planner-cli/internal/editor"
	"planner-cli/internal/model"
	"planner-cli/internal/project"
	"planner-cli/internal/render"
	"planner-cli/internal/schedule"
	"planner-cli/internal/store"
)

type Options struct {
	Config store.Config
	// Renderer decides the color profile of frames. Nil uses the default renderer.
	Renderer *lipgloss.Renderer
	Logger   *log.Logger
	Now      func() time.Time
}

type Session struct {
	Path     string
	Project  *project.Project
	Calendar *calendar.Calendar
	Tracker  *schedule.Tracker
	Editor   *editor.Editor
	Painter  *render.Painter
	Logger   *log.Logger

	// configHolidays apply to every project; the project's own entries win by date.
	configHolidays []model.Holiday
}

// Open loads the project at path and builds a session around it.
func Open(ctx context.Context, path string, opts Options) (*Session, error) {
	doc, err := store.LoadProject(ctx, path)
	if err != nil {
		return nil, err
	}
	s, err := New(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

func New(doc model.Project, opts Options) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	cfg := opts.Config
	workdays, err := calendar.ParseWeekdays(cfg.Calendar.Workdays)
	if err != nil {
		return nil, err
	}
	glyphs, err := render.ParseGlyphSet(cfg.Display.Glyphs)
	if err != nil {
		return nil, err
	}

	p, err := project.New(doc)
	if err != nil {
		return nil, err
	}
	s := &Session{
		Project:        p,
		Logger:         opts.Logger,
		configHolidays: cfg.Calendar.Holidays,
	}
	s.Calendar, err = calendar.New(workdays, s.holidays())
	if err != nil {
		return nil, err
	}
	s.Tracker = schedule.NewTracker(p, s.Calendar)
	s.Painter = render.NewPainter(render.Options{
		CellWidth:  cfg.Display.CellWidth,
		LineHeight: cfg.Display.LineHeight,
		Glyphs:     glyphs,
		Renderer:   opts.Renderer,
	})
	s.Editor, err = editor.New(editor.Deps{
		Tasks:       p,
		Groups:      p,
		Links:       p,
		Resources:   p,
		Comments:    p,
		Attachments: p,
		Schedule:    s.Tracker,
		Calendar:    s.Calendar,
		Painter:     s.Painter,
		Logger:      opts.Logger,
		Writer:      p,
		Now:         opts.Now,
	}, editor.Signals{})
	if err != nil {
		return nil, err
	}
	if cfg.Gantt.Scale != 0 {
		if err := s.Editor.SetGanttScale(cfg.Gantt.Scale); err != nil {
			return nil, err
		}
	}

	s.Tracker.OnChange = s.Editor.ScheduleChanged
	p.SetScheduler(s.Tracker)
	p.Observe(observer{Editor: s.Editor, session: s})
	return s, nil
}

// holidays merges the configured holidays under the project's own.
func (s *Session) holidays() []model.Holiday {
	byDate := map[string]model.Holiday{}
	for _, h := range s.configHolidays {
		byDate[h.Date] = h
	}
	for _, h := range s.Project.Holidays() {
		byDate[h.Date] = h
	}
	out := make([]model.Holiday, 0, len(byDate))
	for _, h := range byDate {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// observer forwards project notifications to the editor, keeping the calendar in
// step with the project's holidays first.
type observer struct {
	*editor.Editor
	session *Session
}

func (o observer) HolidaysChanged() {
	if err := o.session.Calendar.SetHolidays(o.session.holidays()); err != nil {
		o.session.Logger.Error("holidays rejected by calendar", "err", err)
	}
	o.Editor.HolidaysChanged()
}

// ExpandAll expands every group.
func (s *Session) ExpandAll() error {
	for _, id := range s.Project.GroupIDs() {
		if err := s.Editor.Expand(id); err != nil {
			return err
		}
	}
	return nil
}

// Frame sizes the viewport to cols by lines terminal cells and paints it.
func (s *Session) Frame(cols, lines int) (*render.Frame, error) {
	f := s.Painter.NewFrame(cols, lines)
	if err := s.Editor.Resize(f.Width(), f.Height()); err != nil {
		return nil, err
	}
	s.Editor.Paint(f)
	return f, nil
}

// RestoreState applies saved editor state. Unreadable or rejected state is logged
// and ignored.
func (s *Session) RestoreState(st store.Store) {
	if s.Path == "" {
		return
	}
	saved, err := st.LoadEditorState(s.Path)
	if err != nil {
		s.Logger.Warn("ignoring saved editor state", "path", s.Path, "err", err)
		return
	}
	if saved == nil {
		return
	}
	if err := s.Editor.ApplyState(*saved); err != nil {
		s.Logger.Warn("ignoring saved editor state", "path", s.Path, "err", err)
	}
}

func (s *Session) SaveState(st store.Store) error {
	if s.Path == "" {
		return nil
	}
	return st.SaveEditorState(s.Path, s.Editor.State())
}

// Save writes the project document back to its file.
func (s *Session) Save(ctx context.Context) error {
	if s.Path == "" {
		return errors.New("session has no project file")
	}
	return store.SaveProject(ctx, s.Path, s.Project.Document())
}
