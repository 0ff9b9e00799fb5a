package calendar

import (
	"reflect"
	"testing"
	"time"

	"planner-cli/internal/model"
)

func day(s string) time.Time {
	d, err := time.Parse(isoDate, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestIsWorkdayAndHoliday(t *testing.T) {
	t.Parallel()

	c, err := New(nil, []model.Holiday{{Date: "2024-03-06", Name: "Founders Day"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cases := []struct {
		date string
		want bool
	}{
		{"2024-03-04", true},
		{"2024-03-06", false},
		{"2024-03-09", false},
		{"2024-03-10", false},
	}
	for _, tc := range cases {
		if got := c.IsWorkday(day(tc.date)); got != tc.want {
			t.Fatalf("IsWorkday(%s) = %v; want %v", tc.date, got, tc.want)
		}
	}
	if name, ok := c.Holiday(day("2024-03-06")); !ok || name != "Founders Day" {
		t.Fatalf("Holiday = %q, %v", name, ok)
	}
}

func TestAddWorkdays(t *testing.T) {
	t.Parallel()

	c, err := New(nil, []model.Holiday{{Date: "2024-03-06", Name: "Founders Day"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cases := []struct {
		from string
		n    int
		want string
	}{
		{"2024-03-04", 0, "2024-03-04"},
		{"2024-03-04", 1, "2024-03-05"},
		{"2024-03-04", 2, "2024-03-07"},
		{"2024-03-07", 2, "2024-03-11"},
		{"2024-03-07", -2, "2024-03-04"},
	}
	for _, tc := range cases {
		if got := c.AddWorkdays(day(tc.from), tc.n).Format(isoDate); got != tc.want {
			t.Fatalf("AddWorkdays(%s, %d) = %s; want %s", tc.from, tc.n, got, tc.want)
		}
	}
	if got := c.NextWorkday(day("2024-03-09")).Format(isoDate); got != "2024-03-11" {
		t.Fatalf("NextWorkday = %s", got)
	}
}

func TestSetHolidays_RejectsBadDates(t *testing.T) {
	t.Parallel()

	c, err := New(nil, []model.Holiday{{Date: "2024-12-25", Name: "Christmas"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.SetHolidays([]model.Holiday{{Date: "25/12/2024", Name: "bad"}}); err == nil {
		t.Fatalf("expected an error")
	}
	want := []model.Holiday{{Date: "2024-12-25", Name: "Christmas"}}
	if got := c.Holidays(); !reflect.DeepEqual(got, want) {
		t.Fatalf("holidays = %v", got)
	}
}

func TestParseWeekdays(t *testing.T) {
	t.Parallel()

	got, err := ParseWeekdays([]string{"sun", "Monday", " TUE "})
	if err != nil {
		t.Fatalf("ParseWeekdays: %v", err)
	}
	if want := []time.Weekday{time.Sunday, time.Monday, time.Tuesday}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseWeekdays = %v", got)
	}
	if _, err := ParseWeekdays([]string{"someday"}); err == nil {
		t.Fatalf("expected an error")
	}

	c, err := New([]time.Weekday{time.Sunday}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.IsWorkday(day("2024-03-04")) || !c.IsWorkday(day("2024-03-10")) {
		t.Fatalf("custom workdays not honored")
	}
}
