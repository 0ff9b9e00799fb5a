package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"planner-cli/internal/store"
)

func newLogger(w io.Writer, cfg store.LogConfig) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatterFor(cfg.Format),
		ReportTimestamp: level == log.DebugLevel,
		ReportCaller:    false,
		Prefix:          "planner",
	}), nil
}

func formatterFor(name string) log.Formatter {
	switch name {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
