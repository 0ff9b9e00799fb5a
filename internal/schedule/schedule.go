// Package schedule keeps the early start/finish dates of tasks current after edits.
// It propagates dates forward along links; slack and critical path values are read
// from the project as stored.
package schedule

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"planner-cli/internal/model"
)

const isoDate = "2006-01-02"

type Store interface {
	TaskExists(id int) bool
	TaskInfo(id int) model.Info
	Predecessors(taskID int) []int
	Successors(taskID int) []int
	Link(predecessorID, successorID int) (model.Link, bool)
	// SetScheduledDates stores computed dates without raising change notifications.
	SetScheduledDates(id int, earlyStart, earlyFinish string)
}

type Calendar interface {
	AddWorkdays(d time.Time, n int) time.Time
	NextWorkday(d time.Time) time.Time
}

// Tracker is not safe for concurrent use.
type Tracker struct {
	store    Store
	cal      Calendar
	dirty    map[int]bool
	affected []int
	updates  int

	// OnChange runs after an update that moved at least one task.
	OnChange func()
}

func NewTracker(store Store, cal Calendar) *Tracker {
	return &Tracker{store: store, cal: cal, dirty: map[int]bool{}}
}

// MarkDirty queues a task for the next UpdateSchedule.
func (t *Tracker) MarkDirty(id int) {
	t.dirty[id] = true
}

func (t *Tracker) Dirty() bool { return len(t.dirty) > 0 }

// Updates counts the passes that did real work.
func (t *Tracker) Updates() int { return t.updates }

// AffectedTaskIDs lists the tasks whose dates moved in the last update.
func (t *Tracker) AffectedTaskIDs() []int {
	return append([]int(nil), t.affected...)
}

func (t *Tracker) UpdateSchedule() {
	if len(t.dirty) == 0 {
		return
	}
	t.updates++

	queue := make([]int, 0, len(t.dirty))
	for id := range t.dirty {
		queue = append(queue, id)
	}
	sort.Ints(queue)
	t.dirty = map[int]bool{}

	moved := map[int]bool{}
	// Each task may be revisited while its predecessors settle; the bound stops
	// a malformed link cycle from spinning forever.
	visits := map[int]int{}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if !t.store.TaskExists(id) || visits[id] > 64 {
			continue
		}
		visits[id]++
		if !t.reschedule(id) {
			continue
		}
		moved[id] = true
		queue = append(queue, t.store.Successors(id)...)
	}

	t.affected = t.affected[:0]
	for id := range moved {
		t.affected = append(t.affected, id)
	}
	sort.Ints(t.affected)
	if len(t.affected) > 0 && t.OnChange != nil {
		t.OnChange()
	}
}

// reschedule recomputes one task and reports whether its dates changed.
func (t *Tracker) reschedule(id int) bool {
	info := t.store.TaskInfo(id)
	start, ok := t.start(id, info)
	if !ok {
		return false
	}
	finish := start
	if d := durationDays(info); d > 1 {
		if unitsOf(info.Get(model.InfoDurationUnits)) == "cd" {
			finish = start.AddDate(0, 0, d-1)
		} else {
			finish = t.cal.AddWorkdays(start, d-1)
		}
	}
	if actual, ok := parse(info.Get(model.InfoActualFinish)); ok {
		finish = actual
	}

	es, ef := start.Format(isoDate), finish.Format(isoDate)
	if es == info.Get(model.InfoEarlyStart) && ef == info.Get(model.InfoEarlyFinish) {
		return false
	}
	t.store.SetScheduledDates(id, es, ef)
	return true
}

func (t *Tracker) start(id int, info model.Info) (time.Time, bool) {
	if d, ok := parse(info.Get(model.InfoActualStart)); ok {
		return d, true
	}
	start, ok := parse(info.Get(model.InfoFixedStartDate))
	if !ok {
		start, ok = parse(info.Get(model.InfoEarlyStart))
	}
	for _, p := range t.store.Predecessors(id) {
		link, found := t.store.Link(p, id)
		if !found {
			continue
		}
		bound, bok := t.bound(link, t.store.TaskInfo(p), durationDays(info))
		if !bok {
			continue
		}
		if !ok || bound.After(start) {
			start, ok = bound, true
		}
	}
	if !ok {
		return time.Time{}, false
	}
	return t.cal.NextWorkday(start), true
}

// bound is the earliest start the link allows for a successor lasting dur days.
func (t *Tracker) bound(link model.Link, pred model.Info, dur int) (time.Time, bool) {
	ps, sok := parse(pred.Get(model.InfoEarlyStart))
	pf, fok := parse(pred.Get(model.InfoEarlyFinish))
	back := max(dur-1, 0)
	switch link.Type {
	case model.LinkStartToStart:
		if !sok {
			return time.Time{}, false
		}
		return t.lag(ps, link), true
	case model.LinkFinishToFinish:
		if !fok {
			return time.Time{}, false
		}
		return t.cal.AddWorkdays(t.lag(pf, link), -back), true
	case model.LinkStartToFinish:
		if !sok {
			return time.Time{}, false
		}
		return t.cal.AddWorkdays(t.lag(ps, link), -back), true
	default:
		if !fok {
			return time.Time{}, false
		}
		return t.lag(t.cal.AddWorkdays(pf, 1), link), true
	}
}

func (t *Tracker) lag(d time.Time, link model.Link) time.Time {
	switch unitsOf(link.LagUnits) {
	case "cd":
		return d.AddDate(0, 0, link.Lag)
	case "w":
		return t.cal.AddWorkdays(d, 5*link.Lag)
	default:
		return t.cal.AddWorkdays(d, link.Lag)
	}
}

func unitsOf(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cd", "calendar days":
		return "cd"
	case "w", "weeks":
		return "w"
	default:
		return "wd"
	}
}

// durationDays rounds fractional durations up. Weeks count as five workdays.
func durationDays(info model.Info) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(info.Get(model.InfoDurationValue)), 64)
	if err != nil || v <= 0 || info.Get(model.InfoIsMilestone) == model.Yes {
		return 0
	}
	if unitsOf(info.Get(model.InfoDurationUnits)) == "w" {
		v *= 5
	}
	return int(math.Ceil(v))
}

func parse(s string) (time.Time, bool) {
	d, err := time.Parse(isoDate, strings.TrimSpace(s))
	return d, err == nil
}
