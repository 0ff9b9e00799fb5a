package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"planner-cli/internal/model"
)

func codes(issues []DoctorIssue) map[string]DoctorIssueLevel {
	out := map[string]DoctorIssueLevel{}
	for _, it := range issues {
		out[it.Code] = it.Level
	}
	return out
}

func TestDoctorDocument_CleanProject(t *testing.T) {
	t.Parallel()

	doc := model.Project{
		Name:  "Clean",
		Tasks: []model.Task{{ID: 1, Title: "Spec", DurationValue: "2", DurationUnits: "wd", EarlyStart: "2024-03-04", EarlyFinish: "2024-03-05"}},
	}
	if got := DoctorDocument(doc); len(got) != 0 {
		t.Fatalf("expected no issues; got %#v", got)
	}
}

func TestDoctorDocument_ReportsEveryProblem(t *testing.T) {
	t.Parallel()

	doc := model.Project{
		Name: "Messy",
		Tasks: []model.Task{
			{ID: 1, Title: "", EarlyStart: "2024-03-06", EarlyFinish: "2024-03-04"},
			{ID: 2, Title: "Code", DurationValue: "-1", DurationUnits: "fortnights", FixedStart: "03/04/2024"},
			{ID: 3, Title: "Ship", SchedulingMode: "fixed start", Status: "done", ActualFinish: "2024-03-09"},
		},
		Groups:   []model.Group{{ID: 10, Title: " "}},
		Members:  []model.Member{{Group: 10}},
		Comments: []model.Comment{{ID: 1, Task: 1, Title: "Hi", Mentions: []int{99}}},
		Holidays: []model.Holiday{{Date: "2024-03-08", Name: "A"}, {Date: "2024-03-08", Name: "B"}, {Date: "soon", Name: "C"}},
		Links:    []model.Link{{Predecessor: 1, Successor: 2}, {Predecessor: 2, Successor: 3}, {Predecessor: 3, Successor: 1}},
	}

	got := codes(DoctorDocument(doc))
	want := map[string]DoctorIssueLevel{
		"title_empty":              DoctorIssueLevelWarn,
		"date_order":               DoctorIssueLevelError,
		"duration_invalid":         DoctorIssueLevelError,
		"duration_units_unknown":   DoctorIssueLevelWarn,
		"date_invalid":             DoctorIssueLevelError,
		"fixed_start_missing":      DoctorIssueLevelWarn,
		"status_invalid":           DoctorIssueLevelError,
		"actual_start_missing":     DoctorIssueLevelWarn,
		"mention_unknown_resource": DoctorIssueLevelWarn,
		"holiday_duplicate":        DoctorIssueLevelWarn,
		"link_cycle":               DoctorIssueLevelError,
	}
	for code, level := range want {
		if got[code] != level {
			t.Fatalf("code %s: level %q; want %q (all: %v)", code, got[code], level, got)
		}
	}
}

func TestLinkCycles(t *testing.T) {
	t.Parallel()

	links := []model.Link{
		{Predecessor: 1, Successor: 2},
		{Predecessor: 2, Successor: 3},
		{Predecessor: 3, Successor: 1},
		{Predecessor: 3, Successor: 4},
		{Predecessor: 5, Successor: 6},
	}
	got := linkCycles(links)
	want := [][]int{{1, 2, 3, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("linkCycles = %v; want %v", got, want)
	}
	if got := linkCycles(links[3:]); len(got) != 0 {
		t.Fatalf("acyclic links reported %v", got)
	}
}

func TestDoctorProject_UnreadableFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("name: [unterminated"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	r := DoctorProject(t.Context(), path)
	if !r.HasErrors() || len(r.Issues) != 1 || r.Issues[0].Code != "project_unreadable" || r.Issues[0].Path != path {
		t.Fatalf("unexpected report: %#v", r)
	}
}
