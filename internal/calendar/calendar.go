// Package calendar answers which days are worked and which are named holidays.
package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"planner-cli/internal/model"
)

const isoDate = "2006-01-02"

// DefaultWorkdays is Monday through Friday.
var DefaultWorkdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

type Calendar struct {
	workdays [7]bool
	holidays map[string]string
}

func New(workdays []time.Weekday, holidays []model.Holiday) (*Calendar, error) {
	c := &Calendar{holidays: map[string]string{}}
	if len(workdays) == 0 {
		workdays = DefaultWorkdays
	}
	for _, d := range workdays {
		if d < time.Sunday || d > time.Saturday {
			return nil, fmt.Errorf("invalid weekday: %d", d)
		}
		c.workdays[d] = true
	}
	if err := c.SetHolidays(holidays); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseWeekdays accepts english day names or their three letter prefixes.
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	out := make([]time.Weekday, 0, len(names))
	for _, raw := range names {
		n := strings.ToLower(strings.TrimSpace(raw))
		found := false
		for d := time.Sunday; d <= time.Saturday; d++ {
			full := strings.ToLower(d.String())
			if n == full || (len(n) == 3 && strings.HasPrefix(full, n)) {
				out = append(out, d)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown weekday: %q", raw)
		}
	}
	return out, nil
}

// SetHolidays replaces all holidays. Dates are ISO; a bad date leaves the calendar unchanged.
func (c *Calendar) SetHolidays(hs []model.Holiday) error {
	next := make(map[string]string, len(hs))
	for _, h := range hs {
		d, err := time.Parse(isoDate, strings.TrimSpace(h.Date))
		if err != nil {
			return fmt.Errorf("holiday %q: %w", h.Name, err)
		}
		next[d.Format(isoDate)] = h.Name
	}
	c.holidays = next
	return nil
}

func (c *Calendar) Holidays() []model.Holiday {
	out := make([]model.Holiday, 0, len(c.holidays))
	for d, name := range c.holidays {
		out = append(out, model.Holiday{Date: d, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func (c *Calendar) Holiday(d time.Time) (string, bool) {
	name, ok := c.holidays[d.Format(isoDate)]
	return name, ok
}

func (c *Calendar) IsWorkday(d time.Time) bool {
	if !c.workdays[d.Weekday()] {
		return false
	}
	_, holiday := c.Holiday(d)
	return !holiday
}

// AddWorkdays moves n workdays forward (or back when n is negative) from d.
// A zero n returns d itself, even on a day off.
func (c *Calendar) AddWorkdays(d time.Time, n int) time.Time {
	if !c.anyWorkday() {
		return d.AddDate(0, 0, n)
	}
	step := 1
	if n < 0 {
		step, n = -1, -n
	}
	for n > 0 {
		d = d.AddDate(0, 0, step)
		if c.IsWorkday(d) {
			n--
		}
	}
	return d
}

// NextWorkday returns d when it is a workday, else the first workday after it.
func (c *Calendar) NextWorkday(d time.Time) time.Time {
	if !c.anyWorkday() {
		return d
	}
	for !c.IsWorkday(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func (c *Calendar) anyWorkday() bool {
	for _, w := range c.workdays {
		if w {
			return true
		}
	}
	return false
}
