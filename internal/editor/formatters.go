package editor

import (
	"html"
	"sort"
	"strconv"
	"strings"
	"time"

	"planner-cli/internal/model"
)

const isoDate = "2006-01-02"

func defaultFormatters() map[Attribute]formatter {
	return map[Attribute]formatter{
		AttrID:                {fn: formatID},
		AttrTitle:             {fn: formatTitle},
		AttrDuration:          {fn: formatDuration},
		AttrStartDate:         {fn: formatDate(model.InfoActualStart, model.InfoEarlyStart)},
		AttrFinishDate:        {fn: formatDate(model.InfoActualFinish, model.InfoEarlyFinish)},
		AttrCriticalPath:      {fn: formatCriticalPath},
		AttrSlackWorkdays:     {fn: formatSlack(model.InfoSlackWorkdays, "wd")},
		AttrSlackCalendarDays: {fn: formatSlack(model.InfoSlackCalendarDays, "cd")},
		AttrPredecessors:      {fn: formatPredecessors, sorted: true},
		AttrSuccessors:        {fn: formatSuccessors, sorted: true},
		AttrCompletionStatus:  {fn: formatCompletionStatus},
		AttrResources:         {fn: formatResources, sorted: true},
		AttrAttachments:       {fn: formatAttachments, sorted: true},
		AttrComments:          {fn: formatComments, sorted: true},
		AttrGanttChart:        {fn: formatNothing},
	}
}

func single(text string) []fragment {
	return []fragment{{text: text, id: model.InvalidID}}
}

func formatNothing(*ContentCache, model.EntityRef, Format) ([]fragment, error) {
	return nil, nil
}

func formatID(c *ContentCache, ref model.EntityRef, _ Format) ([]fragment, error) {
	return single(html.EscapeString(taskReference(c.tasks, ref.ID))), nil
}

func taskReference(tasks TaskStore, id int) string {
	if r := strings.TrimSpace(tasks.TaskInfo(id).Get(model.InfoReference)); r != "" {
		return r
	}
	return strconv.Itoa(id)
}

func formatTitle(c *ContentCache, ref model.EntityRef, f Format) ([]fragment, error) {
	info := c.info(ref)
	title := html.EscapeString(info.Get(model.InfoTitle))

	var parent int
	if ref.Kind == model.KindGroup {
		parent = c.groups.GroupParent(ref.ID)
	} else {
		parent = c.tasks.TaskGroup(ref.ID)
	}

	switch f {
	case FormatTitleOnly:
		return single(title), nil
	case FormatTitleParentGroup:
		if parent == model.RootGroupID {
			return single(title), nil
		}
		p := html.EscapeString(c.groups.GroupInfo(parent).Get(model.InfoTitle))
		return single(p + ": " + title), nil
	case FormatTitleFullHierarchy:
		var path []string
		for id := parent; id != model.RootGroupID && len(path) < maxHierarchyDepth; id = c.groups.GroupParent(id) {
			path = append(path, html.EscapeString(c.groups.GroupInfo(id).Get(model.InfoTitle)))
		}
		if len(path) == 0 {
			return single(title), nil
		}
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
		return single(strings.Join(path, "/") + ": " + title), nil
	default:
		return nil, errInvalidArgument("format title", f, "unknown display format")
	}
}

// maxHierarchyDepth stops a walk up a corrupted (cyclic) parent chain.
const maxHierarchyDepth = 256

func formatDuration(c *ContentCache, ref model.EntityRef, _ Format) ([]fragment, error) {
	info := c.tasks.TaskInfo(ref.ID)
	value := strings.TrimSpace(info.Get(model.InfoDurationValue))
	units := strings.TrimSpace(info.Get(model.InfoDurationUnits))
	return single(html.EscapeString(strings.TrimSpace(value + " " + units))), nil
}

func formatSlack(key model.InfoKey, unit string) formatFunc {
	return func(c *ContentCache, ref model.EntityRef, _ Format) ([]fragment, error) {
		v := strings.TrimSpace(c.tasks.TaskInfo(ref.ID).Get(key))
		if v == "" {
			return single(""), nil
		}
		return single(html.EscapeString(v) + " " + unit), nil
	}
}

func formatDate(actual, early model.InfoKey) formatFunc {
	return func(c *ContentCache, ref model.EntityRef, f Format) ([]fragment, error) {
		info := c.tasks.TaskInfo(ref.ID)
		raw := strings.TrimSpace(info.Get(actual))
		if raw == "" {
			raw = strings.TrimSpace(info.Get(early))
		}
		if raw == "" {
			return single(""), nil
		}
		d, err := time.Parse(isoDate, raw)
		if err != nil {
			return single(""), nil
		}
		s, err := FormatDate(d, f)
		if err != nil {
			return nil, err
		}
		return single(s), nil
	}
}

// FormatDate renders d in one of the four date display formats.
func FormatDate(d time.Time, f Format) (string, error) {
	switch f {
	case FormatDateISO:
		return d.Format(isoDate), nil
	case FormatDateISOWeekday:
		return d.Format("2006-01-02 (Mon)"), nil
	case FormatDateLong:
		return d.Format("02 Jan 2006"), nil
	case FormatDateLongWeekday:
		return d.Format("Mon, 02 Jan 2006"), nil
	default:
		return "", errInvalidArgument("format date", f, "unknown display format")
	}
}

func formatCriticalPath(c *ContentCache, ref model.EntityRef, f Format) ([]fragment, error) {
	v := c.tasks.TaskInfo(ref.ID).Get(model.InfoIsOnCriticalPath)
	switch f {
	case FormatYesNo:
		return single(html.EscapeString(v)), nil
	case FormatRedGreen:
		if v == model.Yes {
			return single(`<font color="red">&#x25FC;</font>`), nil
		}
		return single(`<font color="green">&#x25FC;</font>`), nil
	default:
		return nil, errInvalidArgument("format critical path", f, "unknown display format")
	}
}

func formatCompletionStatus(c *ContentCache, ref model.EntityRef, f Format) ([]fragment, error) {
	if ref.Kind == model.KindGroup {
		switch f {
		case FormatStatusPercent:
			v := strings.TrimSpace(c.groups.GroupInfo(ref.ID).Get(model.InfoCompletionValue))
			if v == "" {
				return nil, nil
			}
			return single(html.EscapeString(v) + "%"), nil
		case FormatStatusText, FormatStatusSymbol:
			return nil, nil
		default:
			return nil, errInvalidArgument("format completion status", f, "unknown display format")
		}
	}

	status := c.tasks.TaskInfo(ref.ID).Get(model.InfoCompletionStatus)
	switch f {
	case FormatStatusText:
		return single(html.EscapeString(status)), nil
	case FormatStatusPercent:
		switch status {
		case model.StatusNotStarted:
			return single("0%"), nil
		case model.StatusStarted:
			return single("50%"), nil
		case model.StatusCompleted:
			return single("100%"), nil
		}
		return single(""), nil
	case FormatStatusSymbol:
		switch status {
		case model.StatusNotStarted:
			return single("&hellip;"), nil
		case model.StatusStarted:
			return single(`<font color="blue">&#x21E8;</font>`), nil
		case model.StatusCompleted:
			return single(`<font color="green">&#x2713;</font>`), nil
		}
		return single(""), nil
	default:
		return nil, errInvalidArgument("format completion status", f, "unknown display format")
	}
}

func formatPredecessors(c *ContentCache, ref model.EntityRef, f Format) ([]fragment, error) {
	var out []fragment
	for _, pred := range c.links.Predecessors(ref.ID) {
		link, _ := c.links.Link(pred, ref.ID)
		label, err := linkLabel(c.tasks, pred, link, f)
		if err != nil {
			return nil, err
		}
		out = append(out, fragment{text: label, id: pred})
	}
	return out, nil
}

func formatSuccessors(c *ContentCache, ref model.EntityRef, f Format) ([]fragment, error) {
	var out []fragment
	for _, succ := range c.links.Successors(ref.ID) {
		link, _ := c.links.Link(ref.ID, succ)
		label, err := linkLabel(c.tasks, succ, link, f)
		if err != nil {
			return nil, err
		}
		out = append(out, fragment{text: label, id: succ})
	}
	return out, nil
}

// linkLabel renders the other end of a link, e.g. "12 (Design), SS +2 wd".
func linkLabel(tasks TaskStore, other int, link model.Link, f Format) (string, error) {
	label := html.EscapeString(taskReference(tasks, other))
	switch f {
	case FormatRefsWithTitles:
		label += " (" + html.EscapeString(tasks.TaskInfo(other).Get(model.InfoTitle)) + ")"
	case FormatRefsOnly:
	default:
		return "", errInvalidArgument("format links", f, "unknown display format")
	}
	return label + linkSuffix(link), nil
}

func linkSuffix(link model.Link) string {
	var abbrev string
	switch link.Type {
	case model.LinkFinishToFinish:
		abbrev = "FF"
	case model.LinkStartToFinish:
		abbrev = "SF"
	case model.LinkStartToStart:
		abbrev = "SS"
	default:
		if link.Lag == 0 {
			return ""
		}
		abbrev = "FS"
	}
	if link.Lag == 0 {
		return ", " + abbrev
	}
	units := strings.TrimSpace(link.LagUnits)
	if units == "" {
		units = "wd"
	}
	sign := "+"
	if link.Lag < 0 {
		sign = "-"
	}
	lag := link.Lag
	if lag < 0 {
		lag = -lag
	}
	return ", " + abbrev + " " + sign + strconv.Itoa(lag) + " " + html.EscapeString(units)
}

func formatResources(c *ContentCache, ref model.EntityRef, _ Format) ([]fragment, error) {
	var out []fragment
	for _, id := range c.resources.TaskResourceIDs(ref.ID) {
		out = append(out, fragment{text: html.EscapeString(c.resources.ResourceName(id)), id: id})
	}
	return out, nil
}

func formatAttachments(c *ContentCache, ref model.EntityRef, _ Format) ([]fragment, error) {
	var out []fragment
	for _, id := range c.attachments.TaskAttachmentIDs(ref.ID) {
		a, ok := c.attachments.Attachment(id)
		if !ok {
			return nil, errInvariant("format attachments", id, "attachment listed for task does not exist")
		}
		out = append(out, fragment{text: html.EscapeString(a.Name), id: id})
	}
	return out, nil
}

func formatComments(c *ContentCache, ref model.EntityRef, f Format) ([]fragment, error) {
	ids := c.comments.TaskCommentIDs(ref.ID)
	switch f {
	case FormatCommentTitles:
		var out []fragment
		for _, id := range ids {
			cm, ok := c.comments.Comment(id)
			if !ok {
				return nil, errInvariant("format comments", id, "comment listed for task does not exist")
			}
			out = append(out, fragment{text: html.EscapeString(cm.Title), id: id})
		}
		return out, nil
	case FormatCommentResponsibilities:
		seen := map[string]bool{}
		var names []string
		for _, id := range ids {
			cm, ok := c.comments.Comment(id)
			if !ok {
				return nil, errInvariant("format comments", id, "comment listed for task does not exist")
			}
			for _, rid := range cm.Mentions {
				n := c.resources.ResourceName(rid)
				if n == "" || seen[n] {
					continue
				}
				seen[n] = true
				names = append(names, n)
			}
		}
		sort.Strings(names)
		out := make([]fragment, 0, len(names))
		for _, n := range names {
			out = append(out, fragment{text: html.EscapeString(n), id: model.InvalidID})
		}
		return out, nil
	default:
		return nil, errInvalidArgument("format comments", f, "unknown display format")
	}
}
