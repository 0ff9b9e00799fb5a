package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"planner-cli/internal/model"
	"planner-cli/internal/project"
)

var ErrDoctorIssuesFound = errors.New("doctor found errors")

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level" yaml:"level"`
	Code    string           `json:"code" yaml:"code"`
	Message string           `json:"message" yaml:"message"`
	Path    string           `json:"path,omitempty" yaml:"path,omitempty"`

	EntityKind string `json:"entityKind,omitempty" yaml:"entity_kind,omitempty"`
	EntityID   int    `json:"entityId,omitempty" yaml:"entity_id,omitempty"`
	Field      string `json:"field,omitempty" yaml:"field,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues" yaml:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// DoctorProject loads a project file and reports every problem it finds.
// Unlike loading, it keeps going after the first problem.
func DoctorProject(ctx context.Context, path string) DoctorReport {
	doc, err := LoadProject(ctx, path)
	if err != nil {
		return DoctorReport{Issues: []DoctorIssue{{
			Level:   DoctorIssueLevelError,
			Code:    "project_unreadable",
			Message: err.Error(),
			Path:    path,
		}}}
	}

	issues := DoctorDocument(doc)
	for i := range issues {
		issues[i].Path = path
	}
	return DoctorReport{Issues: issuesOrEmpty(issues)}
}

// DoctorDocument checks a decoded project.
func DoctorDocument(doc model.Project) []DoctorIssue {
	var issues []DoctorIssue
	add := func(level DoctorIssueLevel, code, kind string, id int, field, format string, args ...any) {
		issues = append(issues, DoctorIssue{
			Level:      level,
			Code:       code,
			Message:    fmt.Sprintf(format, args...),
			EntityKind: kind,
			EntityID:   id,
			Field:      field,
		})
	}

	if _, err := project.New(doc); err != nil {
		add(DoctorIssueLevelError, "structure_invalid", "", 0, "", "%v", err)
	}

	for _, t := range doc.Tasks {
		if strings.TrimSpace(t.Title) == "" {
			add(DoctorIssueLevelWarn, "title_empty", "task", t.ID, "title", "task %d has no title", t.ID)
		}

		dates := []struct {
			field string
			value string
		}{
			{"fixedStart", t.FixedStart},
			{"actualStart", t.ActualStart},
			{"actualFinish", t.ActualFinish},
			{"earlyStart", t.EarlyStart},
			{"earlyFinish", t.EarlyFinish},
			{"lateStart", t.LateStart},
			{"lateFinish", t.LateFinish},
		}
		for _, d := range dates {
			if d.value != "" && !isISODate(d.value) {
				add(DoctorIssueLevelError, "date_invalid", "task", t.ID, d.field, "task %d: %s %q is not a yyyy-mm-dd date", t.ID, d.field, d.value)
			}
		}
		if isISODate(t.EarlyStart) && isISODate(t.EarlyFinish) && t.EarlyFinish < t.EarlyStart {
			add(DoctorIssueLevelError, "date_order", "task", t.ID, "earlyFinish", "task %d finishes (%s) before it starts (%s)", t.ID, t.EarlyFinish, t.EarlyStart)
		}
		if t.ActualFinish != "" && t.ActualStart == "" {
			add(DoctorIssueLevelWarn, "actual_start_missing", "task", t.ID, "actualStart", "task %d has an actual finish but no actual start", t.ID)
		}

		if v := strings.TrimSpace(t.DurationValue); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err != nil || f < 0 {
				add(DoctorIssueLevelError, "duration_invalid", "task", t.ID, "durationValue", "task %d: duration %q is not a non-negative number", t.ID, v)
			}
		}
		switch strings.ToLower(strings.TrimSpace(t.DurationUnits)) {
		case "", "wd", "workdays", "cd", "calendar days", "w", "weeks":
		default:
			add(DoctorIssueLevelWarn, "duration_units_unknown", "task", t.ID, "durationUnits", "task %d: duration units %q are read as workdays", t.ID, t.DurationUnits)
		}

		switch t.SchedulingMode {
		case "", project.ModeAutomatic:
		case project.ModeFixedStart:
			if t.FixedStart == "" {
				add(DoctorIssueLevelWarn, "fixed_start_missing", "task", t.ID, "fixedStart", "task %d is in fixed start mode without a fixed start date", t.ID)
			}
		default:
			add(DoctorIssueLevelError, "scheduling_mode_invalid", "task", t.ID, "schedulingMode", "task %d: unknown scheduling mode %q", t.ID, t.SchedulingMode)
		}

		switch t.Status {
		case "", model.StatusNotStarted, model.StatusStarted, model.StatusCompleted:
		default:
			add(DoctorIssueLevelError, "status_invalid", "task", t.ID, "status", "task %d: unknown completion status %q", t.ID, t.Status)
		}
	}

	for _, g := range doc.Groups {
		if strings.TrimSpace(g.Title) == "" {
			add(DoctorIssueLevelWarn, "title_empty", "group", g.ID, "title", "group %d has no title", g.ID)
		}
	}

	resources := map[int]bool{}
	for _, r := range doc.Resources {
		resources[r.ID] = true
	}
	for _, c := range doc.Comments {
		for _, m := range c.Mentions {
			if !resources[m] {
				add(DoctorIssueLevelWarn, "mention_unknown_resource", "comment", c.ID, "mentions", "comment %d mentions unknown resource %d", c.ID, m)
			}
		}
	}

	seen := map[string]bool{}
	for _, h := range doc.Holidays {
		if !isISODate(h.Date) {
			add(DoctorIssueLevelError, "date_invalid", "holiday", 0, "date", "holiday %q: %q is not a yyyy-mm-dd date", h.Name, h.Date)
			continue
		}
		if seen[h.Date] {
			add(DoctorIssueLevelWarn, "holiday_duplicate", "holiday", 0, "date", "holiday %s is listed more than once", h.Date)
		}
		seen[h.Date] = true
	}

	for _, cycle := range linkCycles(doc.Links) {
		parts := make([]string, len(cycle))
		for i, id := range cycle {
			parts[i] = strconv.Itoa(id)
		}
		add(DoctorIssueLevelError, "link_cycle", "task", cycle[0], "", "tasks %s depend on each other", strings.Join(parts, " -> "))
	}
	return issues
}

// linkCycles reports the cycles a depth-first walk over links runs into.
// Each cycle ends with the task it starts from.
func linkCycles(links []model.Link) [][]int {
	next := map[int][]int{}
	for _, l := range links {
		next[l.Predecessor] = append(next[l.Predecessor], l.Successor)
	}
	var nodes []int
	for id := range next {
		nodes = append(nodes, id)
	}
	sort.Ints(nodes)
	for _, id := range nodes {
		sort.Ints(next[id])
	}

	const (
		unvisited = iota
		active
		done
	)
	state := map[int]int{}
	var stack []int
	var cycles [][]int

	var visit func(id int)
	visit = func(id int) {
		state[id] = active
		stack = append(stack, id)
		for _, n := range next[id] {
			switch state[n] {
			case unvisited:
				visit(n)
			case active:
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] == n {
						cycle := append([]int(nil), stack[i:]...)
						cycles = append(cycles, append(cycle, n))
						break
					}
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = done
	}
	for _, id := range nodes {
		if state[id] == unvisited {
			visit(id)
		}
	}
	return cycles
}

func isISODate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func issuesOrEmpty(issues []DoctorIssue) []DoctorIssue {
	if issues == nil {
		return []DoctorIssue{}
	}
	return issues
}
