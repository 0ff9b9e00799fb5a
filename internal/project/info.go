package project

import (
	"strconv"
	"strings"
	"time"

	"planner-cli/internal/model"
)

const isoDate = "2006-01-02"

func yesNo(b bool) string {
	if b {
		return model.Yes
	}
	return model.No
}

func taskInfo(t *model.Task) model.Info {
	status := t.Status
	if status == "" {
		status = model.StatusNotStarted
	}
	style := t.TextStyle
	if style == "" {
		style = model.StyleNormal
	}
	mode := t.SchedulingMode
	if mode == "" {
		mode = ModeAutomatic
	}
	return model.Info{
		model.InfoReference:         t.Reference,
		model.InfoTitle:             t.Title,
		model.InfoSchedulingMode:    mode,
		model.InfoFixedStartDate:    t.FixedStart,
		model.InfoDurationValue:     t.DurationValue,
		model.InfoDurationUnits:     t.DurationUnits,
		model.InfoActualStart:       t.ActualStart,
		model.InfoActualFinish:      t.ActualFinish,
		model.InfoEarlyStart:        t.EarlyStart,
		model.InfoEarlyFinish:       t.EarlyFinish,
		model.InfoLateStart:         t.LateStart,
		model.InfoLateFinish:        t.LateFinish,
		model.InfoSlackWorkdays:     t.SlackWorkdays,
		model.InfoSlackCalendarDays: t.SlackCalendarDays,
		model.InfoIsMilestone:       yesNo(t.Milestone),
		model.InfoIsOnCriticalPath:  yesNo(t.Critical),
		model.InfoCompletionStatus:  status,
		model.InfoTextColor:         t.TextColor,
		model.InfoBackgroundColor:   t.BackgroundColor,
		model.InfoTextStyle:         style,
	}
}

// Scheduling modes.
const (
	ModeAutomatic  = "automatic"
	ModeFixedStart = "fixed start"
)

// scheduleKeys are the task fields the schedule depends on.
var scheduleKeys = map[model.InfoKey]bool{
	model.InfoSchedulingMode: true,
	model.InfoFixedStartDate: true,
	model.InfoDurationValue:  true,
	model.InfoDurationUnits:  true,
	model.InfoActualStart:    true,
	model.InfoActualFinish:   true,
	model.InfoIsMilestone:    true,
}

func checkDate(key model.InfoKey, v string) error {
	if v == "" {
		return nil
	}
	if _, err := time.Parse(isoDate, v); err != nil {
		return InvalidValueError{Key: string(key), Value: v, Reason: "expected yyyy-mm-dd"}
	}
	return nil
}

func checkOneOf(key model.InfoKey, v string, allowed ...string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return InvalidValueError{Key: string(key), Value: v, Reason: "expected one of " + strings.Join(allowed, ", ")}
}

func checkNumber(key model.InfoKey, v string) error {
	if v == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(v, 64); err != nil || f < 0 {
		return InvalidValueError{Key: string(key), Value: v, Reason: "expected a non-negative number"}
	}
	return nil
}

func checkStyle(key model.InfoKey, v string) error {
	return checkOneOf(key, v, model.StyleNormal, model.StyleBold, model.StyleItalics, model.StyleBoldItalics)
}

// setTaskField validates v and stores it in t.
func setTaskField(t *model.Task, key model.InfoKey, v string) error {
	v = strings.TrimSpace(v)
	var err error
	switch key {
	case model.InfoReference:
		t.Reference = v
	case model.InfoTitle:
		t.Title = v
	case model.InfoSchedulingMode:
		if err = checkOneOf(key, v, ModeAutomatic, ModeFixedStart); err == nil {
			t.SchedulingMode = v
		}
	case model.InfoFixedStartDate:
		if err = checkDate(key, v); err == nil {
			t.FixedStart = v
		}
	case model.InfoDurationValue:
		if err = checkNumber(key, v); err == nil {
			t.DurationValue = v
		}
	case model.InfoDurationUnits:
		if err = checkOneOf(key, v, "", "wd", "cd", "w"); err == nil {
			t.DurationUnits = v
		}
	case model.InfoActualStart:
		if err = checkDate(key, v); err == nil {
			t.ActualStart = v
		}
	case model.InfoActualFinish:
		if err = checkDate(key, v); err == nil {
			t.ActualFinish = v
		}
	case model.InfoEarlyStart:
		if err = checkDate(key, v); err == nil {
			t.EarlyStart = v
		}
	case model.InfoEarlyFinish:
		if err = checkDate(key, v); err == nil {
			t.EarlyFinish = v
		}
	case model.InfoLateStart:
		if err = checkDate(key, v); err == nil {
			t.LateStart = v
		}
	case model.InfoLateFinish:
		if err = checkDate(key, v); err == nil {
			t.LateFinish = v
		}
	case model.InfoSlackWorkdays:
		t.SlackWorkdays = v
	case model.InfoSlackCalendarDays:
		t.SlackCalendarDays = v
	case model.InfoIsMilestone:
		if err = checkOneOf(key, v, model.Yes, model.No); err == nil {
			t.Milestone = v == model.Yes
		}
	case model.InfoIsOnCriticalPath:
		if err = checkOneOf(key, v, model.Yes, model.No); err == nil {
			t.Critical = v == model.Yes
		}
	case model.InfoCompletionStatus:
		if err = checkOneOf(key, v, model.StatusNotStarted, model.StatusStarted, model.StatusCompleted); err == nil {
			t.Status = v
		}
	case model.InfoTextColor:
		t.TextColor = v
	case model.InfoBackgroundColor:
		t.BackgroundColor = v
	case model.InfoTextStyle:
		if err = checkStyle(key, v); err == nil {
			t.TextStyle = v
		}
	default:
		err = InvalidValueError{Key: string(key), Value: v, Reason: "not a settable task field"}
	}
	return err
}

func setGroupField(g *model.Group, key model.InfoKey, v string) error {
	v = strings.TrimSpace(v)
	switch key {
	case model.InfoTitle:
		g.Title = v
	case model.InfoCompletionValue:
		if v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 || n > 100 {
				return InvalidValueError{Key: string(key), Value: v, Reason: "expected a percentage"}
			}
		}
		g.CompletionValue = v
	case model.InfoTextColor:
		g.TextColor = v
	case model.InfoBackgroundColor:
		g.BackgroundColor = v
	case model.InfoTextStyle:
		if err := checkStyle(key, v); err != nil {
			return err
		}
		g.TextStyle = v
	default:
		return InvalidValueError{Key: string(key), Value: v, Reason: "not a settable group field"}
	}
	return nil
}

func completionPercent(status string) int {
	switch status {
	case model.StatusCompleted:
		return 100
	case model.StatusStarted:
		return 50
	default:
		return 0
	}
}
