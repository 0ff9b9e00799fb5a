package editor

import (
	"fmt"
	"math"
	"strings"
	"time"

	"planner-cli/internal/model"
)

const (
	GanttBarNorthPadding  = 6
	GanttBarWestPadding   = 10
	GanttBarHeight        = 10
	GanttMilestoneWidth   = 10
	ganttShadingMinScale  = 5.0
	ganttSummaryBarHeight = 4
)

var (
	GanttBarColor          = RGB(128, 128, 200)
	GanttCriticalPathColor = RGB(200, 128, 128)
	GanttSummaryColor      = RGB(90, 90, 90)
	GanttHolidayColor      = RGB(220, 220, 220)
	GanttTodayColor        = RGB(255, 0, 0)
	HeaderBackgroundColor  = RGB(210, 210, 210)
)

const GanttTodayOpacity = 0.2

// gantt owns the timeline state and draws the Gantt band.
type gantt struct {
	ed *Editor

	start time.Time
	today time.Time
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(dateOnly(to).Sub(dateOnly(from)).Hours() / 24))
}

// effectiveFormat resolves the automatic header format from the scale.
func (g *gantt) effectiveFormat() Format {
	f := g.ed.columns.Format(AttrGanttChart)
	if f != FormatGanttAutomatic {
		return f
	}
	scale := g.ed.columns.GanttScale()
	switch {
	case scale >= 20:
		return FormatGanttDays
	case scale >= 10:
		return FormatGanttWeeks
	case scale >= 5:
		return FormatGanttMonths
	default:
		return FormatGanttYears
	}
}

func (g *gantt) headerLines() int {
	switch g.effectiveFormat() {
	case FormatGanttDays:
		return 2
	case FormatGanttWeekdays:
		return 3
	default:
		return 1
	}
}

// dayX is the left edge of a day column in Gantt-local coordinates.
func (g *gantt) dayX(d time.Time) int {
	return GanttBarWestPadding + int(float64(daysBetween(g.start, d))*g.ed.columns.GanttScale())
}

// DayAt maps a Gantt-local x coordinate to a date.
func (g *gantt) dayAt(x int) time.Time {
	off := int(math.Floor(float64(x-GanttBarWestPadding) / g.ed.columns.GanttScale()))
	return g.start.AddDate(0, 0, off)
}

func (g *gantt) visibleDays(width int) int {
	return int(math.Ceil(float64(width-GanttBarWestPadding)/g.ed.columns.GanttScale())) + 1
}

func (g *gantt) isOffDay(d time.Time) bool {
	cal := g.ed.calendar
	if cal == nil {
		return false
	}
	if _, ok := cal.Holiday(d); ok {
		return true
	}
	return !cal.IsWorkday(d)
}

func (g *gantt) shadeOffDays(s Surface, height int) {
	scale := g.ed.columns.GanttScale()
	if scale < ganttShadingMinScale {
		return
	}
	w := int(math.Ceil(scale))
	for i := 0; i < g.visibleDays(s.Width()); i++ {
		d := g.start.AddDate(0, 0, i)
		if g.isOffDay(d) {
			s.Fill(Rect{X: g.dayX(d), Y: 0, W: w, H: height}, GanttHolidayColor, 1)
		}
	}
}

func (g *gantt) drawToday(s Surface, height int) {
	x := GanttBarWestPadding + int((float64(daysBetween(g.start, g.today))+0.5)*g.ed.columns.GanttScale())
	if x < 0 || x >= s.Width() {
		return
	}
	s.VLine(x, 0, height, GanttTodayColor, GanttTodayOpacity)
}

func parseDate(info model.Info, keys ...model.InfoKey) (time.Time, bool) {
	for _, k := range keys {
		v := strings.TrimSpace(info.Get(k))
		if v == "" {
			continue
		}
		if d, err := time.Parse(isoDate, v); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func (g *gantt) buildRow(index int, row Row) Surface {
	ed := g.ed
	ed.schedule.UpdateSchedule()

	ref := row.Ref()
	height := ed.rows.Height(index)
	width := ed.columns.Width(AttrGanttChart)

	s := ed.painter.NewSurface(width, height, BackgroundColors[index%2])
	g.shadeOffDays(s, height)
	all := Rect{W: width, H: height}
	if ed.selection.Contains(ref) {
		s.Fill(all, SelectedColor, SelectedOpacity)
	}
	if ed.hover.Active && ed.hover.Ref == ref {
		s.Fill(all, HoverColor, HoverOpacity)
	}
	g.drawToday(s, height)

	scale := ed.columns.GanttScale()
	if ref.Kind == model.KindGroup {
		info := ed.groups.GroupInfo(ref.ID)
		start, ok1 := parseDate(info, model.InfoEarlyStart)
		finish, ok2 := parseDate(info, model.InfoEarlyFinish)
		if ok1 && ok2 {
			x0 := g.dayX(start)
			w := int(float64(daysBetween(start, finish)+1) * scale)
			s.Fill(Rect{X: x0, Y: GanttBarNorthPadding + GanttBarHeight - ganttSummaryBarHeight, W: w, H: ganttSummaryBarHeight}, GanttSummaryColor, 1)
		}
		return s
	}

	info := ed.tasks.TaskInfo(ref.ID)
	start, ok := parseDate(info, model.InfoEarlyStart, model.InfoActualStart)
	if !ok {
		return s
	}
	finish, ok := parseDate(info, model.InfoEarlyFinish, model.InfoActualFinish)
	if !ok {
		finish = start
	}
	color := GanttBarColor
	if info.Get(model.InfoIsOnCriticalPath) == model.Yes {
		color = GanttCriticalPathColor
	}
	if info.Get(model.InfoIsMilestone) == model.Yes {
		x := g.dayX(start) - GanttMilestoneWidth/2
		s.Fill(Rect{X: x, Y: GanttBarNorthPadding, W: GanttMilestoneWidth, H: GanttBarHeight}, color, 1)
		return s
	}
	w := int(float64(daysBetween(start, finish)+1) * scale)
	s.Fill(Rect{X: g.dayX(start), Y: GanttBarNorthPadding, W: w, H: GanttBarHeight}, color, 1)
	return s
}

var weekdayLetters = [7]string{"S", "M", "T", "W", "T", "F", "S"}

func (g *gantt) buildHeader(height int) Surface {
	ed := g.ed
	width := ed.columns.Width(AttrGanttChart)
	s := ed.painter.NewSurface(width, height, HeaderBackgroundColor)
	line := ed.lineHeight()
	scale := ed.columns.GanttScale()
	days := g.visibleDays(width)
	cell := int(math.Ceil(scale))

	label := func(x, y, w int, text string) {
		s.Text(Rect{X: x, Y: y, W: w, H: line}, text)
	}

	switch f := g.effectiveFormat(); f {
	case FormatGanttDays, FormatGanttWeekdays:
		for i := 0; i < days; i++ {
			d := g.start.AddDate(0, 0, i)
			x := g.dayX(d)
			if i == 0 || d.Day() == 1 {
				label(x, RowPadding, width-x, d.Format("Jan 2006"))
				s.VLine(x, 0, height, SeparatorColor, 1)
			}
			if g.isOffDay(d) {
				s.Fill(Rect{X: x, Y: RowPadding + line, W: cell, H: height - RowPadding - line}, GanttHolidayColor, 1)
			}
			label(x, RowPadding+line, cell, `<p align="center">`+fmt.Sprint(d.Day())+`</p>`)
			if f == FormatGanttWeekdays {
				label(x, RowPadding+2*line, cell, `<p align="center">`+weekdayLetters[d.Weekday()]+`</p>`)
			}
		}
	case FormatGanttWeeks:
		for i := 0; i < days; i++ {
			d := g.start.AddDate(0, 0, i)
			if i != 0 && d.Weekday() != time.Monday {
				continue
			}
			_, wk := d.ISOWeek()
			x := g.dayX(d)
			label(x, RowPadding, 7*cell, fmt.Sprintf("W%d", wk))
			s.VLine(x, 0, height, SeparatorColor, 1)
		}
	case FormatGanttMonths:
		for i := 0; i < days; i++ {
			d := g.start.AddDate(0, 0, i)
			if i != 0 && d.Day() != 1 {
				continue
			}
			x := g.dayX(d)
			label(x, RowPadding, width-x, d.Format("Jan"))
			s.VLine(x, 0, height, SeparatorColor, 1)
		}
	case FormatGanttYears:
		for i := 0; i < days; i++ {
			d := g.start.AddDate(0, 0, i)
			if i != 0 && d.YearDay() != 1 {
				continue
			}
			x := g.dayX(d)
			label(x, RowPadding, width-x, d.Format("2006"))
			s.VLine(x, 0, height, SeparatorColor, 1)
		}
	default:
		ed.rep.report(errInvalidArgument("gantt header", f, "unknown Gantt header format"))
	}
	g.drawToday(s, height)
	return s
}

// holidayMessage describes the day under a Gantt-local x coordinate when it is a holiday.
func (g *gantt) holidayMessage(x int) (string, bool) {
	if g.ed.calendar == nil {
		return "", false
	}
	d := g.dayAt(x)
	name, ok := g.ed.calendar.Holiday(d)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s: %s", d.Format("Mon, 02 Jan 2006"), name), true
}
