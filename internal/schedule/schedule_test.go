package schedule

import (
	"reflect"
	"testing"
	"time"

	"planner-cli/internal/calendar"
	"planner-cli/internal/model"
)

type fakeStore struct {
	tasks  map[int]model.Info
	links  map[[2]int]model.Link
	writes int
}

func newFakeStore() *fakeStore {
	return &fakeStore{tasks: map[int]model.Info{}, links: map[[2]int]model.Link{}}
}

func (s *fakeStore) add(id int, start, duration string) {
	s.tasks[id] = model.Info{
		model.InfoEarlyStart:    start,
		model.InfoDurationValue: duration,
		model.InfoDurationUnits: "wd",
	}
}

func (s *fakeStore) link(pred, succ int, typ model.LinkType, lag int) {
	s.links[[2]int{pred, succ}] = model.Link{Predecessor: pred, Successor: succ, Type: typ, Lag: lag}
}

func (s *fakeStore) TaskExists(id int) bool {
	_, ok := s.tasks[id]
	return ok
}

func (s *fakeStore) TaskInfo(id int) model.Info { return s.tasks[id] }

func (s *fakeStore) Predecessors(id int) []int {
	var out []int
	for k := range s.links {
		if k[1] == id {
			out = append(out, k[0])
		}
	}
	return out
}

func (s *fakeStore) Successors(id int) []int {
	var out []int
	for k := range s.links {
		if k[0] == id {
			out = append(out, k[1])
		}
	}
	return out
}

func (s *fakeStore) Link(pred, succ int) (model.Link, bool) {
	l, ok := s.links[[2]int{pred, succ}]
	return l, ok
}

func (s *fakeStore) SetScheduledDates(id int, es, ef string) {
	s.writes++
	s.tasks[id][model.InfoEarlyStart] = es
	s.tasks[id][model.InfoEarlyFinish] = ef
}

func newCalendar(t *testing.T) *calendar.Calendar {
	t.Helper()
	c, err := calendar.New(nil, []model.Holiday{{Date: "2024-03-06", Name: "Founders Day"}})
	if err != nil {
		t.Fatalf("calendar.New: %v", err)
	}
	return c
}

func dates(s *fakeStore, id int) [2]string {
	return [2]string{s.tasks[id][model.InfoEarlyStart], s.tasks[id][model.InfoEarlyFinish]}
}

func TestUpdateSchedule_CleanIsNoop(t *testing.T) {
	t.Parallel()

	s := newFakeStore()
	s.add(1, "2024-03-04", "1")
	tr := NewTracker(s, newCalendar(t))
	calls := 0
	tr.OnChange = func() { calls++ }

	tr.UpdateSchedule()
	if tr.Updates() != 0 || s.writes != 0 || calls != 0 {
		t.Fatalf("clean tracker did work")
	}
}

func TestUpdateSchedule_PropagatesAlongLinks(t *testing.T) {
	t.Parallel()

	s := newFakeStore()
	s.add(1, "2024-03-04", "2")
	s.add(2, "2024-03-04", "3")
	s.add(3, "2024-03-04", "1")
	s.add(4, "2024-03-01", "1")
	s.link(1, 2, model.LinkFinishToStart, 0)
	s.link(2, 3, model.LinkStartToStart, 1)

	tr := NewTracker(s, newCalendar(t))
	calls := 0
	tr.OnChange = func() { calls++ }
	tr.MarkDirty(1)
	tr.UpdateSchedule()

	// Task 1 spans Mon and Tue; Wed is a holiday so task 2 starts on Thu.
	cases := map[int][2]string{
		1: {"2024-03-04", "2024-03-05"},
		2: {"2024-03-07", "2024-03-11"},
		3: {"2024-03-08", "2024-03-08"},
		4: {"2024-03-01", ""},
	}
	for id, want := range cases {
		if got := dates(s, id); got != want {
			t.Fatalf("task %d = %v; want %v", id, got, want)
		}
	}
	if got := tr.AffectedTaskIDs(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("affected = %v", got)
	}
	if calls != 1 || tr.Dirty() {
		t.Fatalf("calls = %d, dirty = %v", calls, tr.Dirty())
	}

	tr.MarkDirty(3)
	tr.UpdateSchedule()
	if got := tr.AffectedTaskIDs(); len(got) != 0 {
		t.Fatalf("settled task reported as affected: %v", got)
	}
	if calls != 1 {
		t.Fatalf("OnChange ran without movement")
	}
}

func TestUpdateSchedule_ActualDatesWin(t *testing.T) {
	t.Parallel()

	s := newFakeStore()
	s.add(1, "2024-03-04", "5")
	s.tasks[1][model.InfoActualStart] = "2024-03-05"
	s.tasks[1][model.InfoActualFinish] = "2024-03-05"
	tr := NewTracker(s, newCalendar(t))
	tr.MarkDirty(1)
	tr.UpdateSchedule()
	if got := dates(s, 1); got != [2]string{"2024-03-05", "2024-03-05"} {
		t.Fatalf("dates = %v", got)
	}
}

func TestUpdateSchedule_CycleTerminates(t *testing.T) {
	t.Parallel()

	s := newFakeStore()
	s.add(1, "2024-03-04", "1")
	s.add(2, "2024-03-04", "1")
	s.link(1, 2, model.LinkFinishToStart, 0)
	s.link(2, 1, model.LinkFinishToStart, 0)
	tr := NewTracker(s, newCalendar(t))
	tr.MarkDirty(1)

	done := make(chan struct{})
	go func() {
		tr.UpdateSchedule()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("UpdateSchedule did not terminate on a cycle")
	}
}

func TestDurationDays(t *testing.T) {
	t.Parallel()

	cases := []struct {
		info model.Info
		want int
	}{
		{model.Info{model.InfoDurationValue: "3"}, 3},
		{model.Info{model.InfoDurationValue: "1.5"}, 2},
		{model.Info{model.InfoDurationValue: "2", model.InfoDurationUnits: "w"}, 10},
		{model.Info{model.InfoDurationValue: "4", model.InfoIsMilestone: model.Yes}, 0},
		{model.Info{model.InfoDurationValue: "x"}, 0},
	}
	for _, tc := range cases {
		if got := durationDays(tc.info); got != tc.want {
			t.Fatalf("durationDays(%v) = %d; want %d", tc.info, got, tc.want)
		}
	}
}
