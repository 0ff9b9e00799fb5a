package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"planner-cli/internal/model"
)

const configFileName = "config.toml"

// Config is layered: defaults, then config.toml, then PLANNER_* variables. Flags are
// applied by the CLI on top.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Display  DisplayConfig  `toml:"display"`
	Calendar CalendarConfig `toml:"calendar"`
	Gantt    GanttConfig    `toml:"gantt"`
}

type LogConfig struct {
	// Level is one of debug|info|warn|error.
	Level string `toml:"level"`
	// Format is one of text|json|logfmt.
	Format string `toml:"format"`
}

type DisplayConfig struct {
	// Glyphs selects the glyph set ("unicode" or "ascii").
	Glyphs     string `toml:"glyphs"`
	CellWidth  int    `toml:"cell_width"`
	LineHeight int    `toml:"line_height"`
}

type CalendarConfig struct {
	Workdays []string        `toml:"workdays"`
	Holidays []model.Holiday `toml:"holidays"`
}

type GanttConfig struct {
	// Scale is the default pixels-per-day; saved editor state wins over it.
	Scale float64 `toml:"scale"`
}

func DefaultConfig() Config {
	return Config{
		Log:      LogConfig{Level: "warn", Format: "text"},
		Display:  DisplayConfig{Glyphs: "unicode", CellWidth: 8, LineHeight: 16},
		Calendar: CalendarConfig{Workdays: []string{"mon", "tue", "wed", "thu", "fri"}},
		Gantt:    GanttConfig{Scale: 20},
	}
}

func (s Store) ConfigPath() string {
	return filepath.Join(s.Dir, configFileName)
}

// LoadConfig returns the defaults when no config file exists.
func (s Store) LoadConfig() (*Config, error) {
	return s.loadConfig(os.Getenv)
}

func (s Store) loadConfig(getenv func(string) string) (*Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(s.Dir) != "" {
		if _, err := toml.DecodeFile(s.ConfigPath(), &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", s.ConfigPath(), err)
		}
	}
	if err := applyEnv(&cfg, getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv("PLANNER_LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(getenv("PLANNER_LOG_FORMAT")); v != "" {
		cfg.Log.Format = v
	}
	if v := strings.TrimSpace(getenv("PLANNER_GLYPHS")); v != "" {
		cfg.Display.Glyphs = v
	}
	if v := strings.TrimSpace(getenv("PLANNER_CELL_WIDTH")); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &cfg.Display.CellWidth); err != nil {
			return fmt.Errorf("PLANNER_CELL_WIDTH: %w", err)
		}
	}
	if v := strings.TrimSpace(getenv("PLANNER_LINE_HEIGHT")); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &cfg.Display.LineHeight); err != nil {
			return fmt.Errorf("PLANNER_LINE_HEIGHT: %w", err)
		}
	}
	if v := strings.TrimSpace(getenv("PLANNER_WORKDAYS")); v != "" {
		cfg.Calendar.Workdays = nil
		for _, d := range strings.Split(v, ",") {
			if d = strings.TrimSpace(d); d != "" {
				cfg.Calendar.Workdays = append(cfg.Calendar.Workdays, d)
			}
		}
	}
	if v := strings.TrimSpace(getenv("PLANNER_GANTT_SCALE")); v != "" {
		if _, err := fmt.Sscanf(v, "%g", &cfg.Gantt.Scale); err != nil {
			return fmt.Errorf("PLANNER_GANTT_SCALE: %w", err)
		}
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	switch c.Display.Glyphs {
	case "unicode", "ascii":
	default:
		return fmt.Errorf("config: unknown glyph set %q", c.Display.Glyphs)
	}
	if c.Display.CellWidth < 1 || c.Display.LineHeight < 1 {
		return errors.New("config: cell width and line height must be positive")
	}
	if c.Gantt.Scale < 1 || c.Gantt.Scale > 50 {
		return fmt.Errorf("config: gantt scale %g outside [1, 50]", c.Gantt.Scale)
	}
	if len(c.Calendar.Workdays) == 0 {
		return errors.New("config: at least one workday is required")
	}
	return nil
}

// SaveConfig writes cfg as TOML, keeping the previous file as config.toml.bak.
func (s Store) SaveConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return err
	}
	path := s.ConfigPath()
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(path+".bak", prev, 0o644)
	}
	return atomicWriteFile(path, []byte(b.String()), 0o644)
}
