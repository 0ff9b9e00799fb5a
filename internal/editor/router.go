package editor

import (
	"sort"
	"time"

	"planner-cli/internal/model"
)

var allAttributes = Attributes()

// Attributes whose content depends on a task information field. A nil entry means
// the field is not displayed.
var taskInfoAttributes = map[model.InfoKey][]Attribute{
	model.InfoActualStart:       {AttrStartDate},
	model.InfoActualFinish:      {AttrFinishDate},
	model.InfoReference:         {AttrID},
	model.InfoTitle:             {AttrTitle},
	model.InfoSchedulingMode:    nil,
	model.InfoFixedStartDate:    nil,
	model.InfoLateStart:         nil,
	model.InfoLateFinish:        nil,
	model.InfoDurationValue:     {AttrDuration},
	model.InfoDurationUnits:     {AttrDuration},
	model.InfoCompletionStatus:  {AttrGanttChart, AttrCompletionStatus},
	model.InfoTextColor:         allAttributes,
	model.InfoBackgroundColor:   allAttributes,
	model.InfoTextStyle:         allAttributes,
	model.InfoAny:               allAttributes,
	model.InfoEarlyStart:        {AttrStartDate, AttrGanttChart},
	model.InfoEarlyFinish:       {AttrFinishDate, AttrGanttChart},
	model.InfoSlackWorkdays:     {AttrSlackWorkdays},
	model.InfoSlackCalendarDays: {AttrSlackCalendarDays},
	model.InfoIsMilestone:       {AttrGanttChart},
	model.InfoIsOnCriticalPath:  {AttrCriticalPath, AttrGanttChart},
	model.InfoAttachments:       {AttrAttachments},
	model.InfoComments:          {AttrComments},
	model.InfoResources:         {AttrResources},
	model.InfoLinkedTasks:       {AttrPredecessors, AttrSuccessors},
}

var groupInfoAttributes = map[model.InfoKey][]Attribute{
	model.InfoBackgroundColor: allAttributes,
	model.InfoTextColor:       allAttributes,
	model.InfoTextStyle:       allAttributes,
	model.InfoAny:             allAttributes,
	model.InfoCompletionValue: {AttrCompletionStatus},
	model.InfoParentGroupID:   nil,
	model.InfoTitle:           {AttrTitle},
	model.InfoEarlyStart:      {AttrGanttChart},
	model.InfoEarlyFinish:     {AttrGanttChart},
}

// Attributes derived from the schedule.
var scheduleAttributes = []Attribute{
	AttrStartDate,
	AttrFinishDate,
	AttrCriticalPath,
	AttrSlackWorkdays,
	AttrSlackCalendarDays,
	AttrGanttChart,
}

func (e *Editor) visibleOf(attrs []Attribute) []Attribute {
	var out []Attribute
	for _, a := range attrs {
		if e.columns.IsVisible(a) {
			out = append(out, a)
		}
	}
	return out
}

func onlyGantt(attrs []Attribute) bool {
	for _, a := range attrs {
		if a != AttrGanttChart {
			return false
		}
	}
	return len(attrs) > 0
}

// invalidate drops content for attrs and, when one of them is visible, the row
// surfaces of ref. Heights survive changes that only touch the Gantt band.
func (e *Editor) invalidate(ref model.EntityRef, attrs []Attribute) bool {
	e.content.Drop(ref, attrs...)
	if !e.columns.AnyVisible(attrs) {
		return false
	}
	if onlyGantt(e.visibleOf(attrs)) {
		e.rows.DropSurfaces(ref)
		return true
	}
	e.rows.Drop(ref)
	return true
}

// TaskInfoChanged handles an edit of one information field of a task.
func (e *Editor) TaskInfoChanged(taskID int, key model.InfoKey) {
	attrs, ok := taskInfoAttributes[key]
	if !ok {
		e.rep.report(errInvalidArgument("task info changed", key, "unknown information key"))
		return
	}
	changed := e.invalidate(model.TaskRef(taskID), attrs)

	switch key {
	case model.InfoReference, model.InfoTitle, model.InfoAny:
		// Linked tasks embed this task's reference and title.
		predVisible := e.columns.IsVisible(AttrPredecessors)
		for _, succ := range e.links.Successors(taskID) {
			ref := model.TaskRef(succ)
			e.content.Drop(ref, AttrPredecessors)
			if predVisible {
				e.rows.Drop(ref)
				changed = true
			}
		}
		succVisible := e.columns.IsVisible(AttrSuccessors)
		for _, pred := range e.links.Predecessors(taskID) {
			ref := model.TaskRef(pred)
			e.content.Drop(ref, AttrSuccessors)
			if succVisible {
				e.rows.Drop(ref)
				changed = true
			}
		}
	case model.InfoLinkedTasks:
		e.rows.ClearGantt()
		changed = true
	}
	if changed {
		e.rep.log.Debug("task invalidated", "task", taskID, "info", string(key))
	}
}

func (e *Editor) TaskDeleted(taskID int) {
	ref := model.TaskRef(taskID)
	e.content.DropEntity(ref)
	e.rows.Drop(ref)
	if e.hover.Active && e.hover.Ref == ref {
		e.hover = Hover{}
		e.interaction.Hover = Hover{}
		e.rows.actions = nil
	}
	if e.selection.Tasks[taskID] {
		delete(e.selection.Tasks, taskID)
		e.signals.selectionChanged(e.Selection())
	}
	e.projection.Rebuild()
}

func (e *Editor) GroupInfoChanged(groupID int, key model.InfoKey) {
	attrs, ok := groupInfoAttributes[key]
	if !ok {
		e.rep.report(errInvalidArgument("group info changed", key, "unknown information key"))
		return
	}
	e.invalidate(model.GroupRef(groupID), attrs)

	if key != model.InfoTitle && key != model.InfoAny {
		return
	}
	titleVisible := e.columns.IsVisible(AttrTitle)
	drop := func(ref model.EntityRef) {
		e.content.Drop(ref, AttrTitle)
		if titleVisible {
			e.rows.Drop(ref)
		}
	}
	switch e.columns.Format(AttrTitle) {
	case FormatTitleParentGroup:
		for _, ref := range e.groups.Children(groupID) {
			drop(ref)
		}
	case FormatTitleFullHierarchy:
		Walk(e.groups.Children, groupID, BreadthFirst, func(ref model.EntityRef, _ int) bool {
			drop(ref)
			return true
		})
	}
}

// GroupMembersChanged handles tasks or groups added to, removed from or reordered
// within a group.
func (e *Editor) GroupMembersChanged(groupID int) {
	e.projection.Rebuild()
	titleEmbedsParent := e.columns.Format(AttrTitle) != FormatTitleOnly
	drop := func(ref model.EntityRef) {
		e.rows.Drop(ref)
		if titleEmbedsParent {
			e.content.Drop(ref, AttrTitle)
		}
	}
	drop(model.GroupRef(groupID))
	Walk(e.groups.Children, groupID, BreadthFirst, func(ref model.EntityRef, _ int) bool {
		drop(ref)
		return true
	})
}

func (e *Editor) GroupDeleted(groupID int) {
	ref := model.GroupRef(groupID)
	e.content.DropEntity(ref)
	e.rows.Drop(ref)
	if e.hover.Active && e.hover.Ref == ref {
		e.hover = Hover{}
		e.interaction.Hover = Hover{}
		e.rows.actions = nil
	}
	if e.selection.Groups[groupID] {
		delete(e.selection.Groups, groupID)
		e.signals.selectionChanged(e.Selection())
	}
	e.projection.Forget(groupID)
	e.projection.Rebuild()
}

// ScheduleChanged drops the rows of every task the last schedule update touched,
// together with the summary rows of their groups.
func (e *Editor) ScheduleChanged() {
	groups := map[int]bool{}
	for _, id := range e.schedule.AffectedTaskIDs() {
		ref := model.TaskRef(id)
		e.content.Drop(ref, scheduleAttributes...)
		e.rows.Drop(ref)
		for g, n := e.tasks.TaskGroup(id), 0; g != model.RootGroupID && !groups[g] && n < maxHierarchyDepth; g, n = e.groups.GroupParent(g), n+1 {
			groups[g] = true
		}
	}
	for g := range groups {
		e.rows.DropSurfaces(model.GroupRef(g))
	}
	e.projection.Rebuild()
}

// SetSelection replaces the selection. Unknown ids reject the whole request.
func (e *Editor) SetSelection(taskIDs, groupIDs []int) error {
	for _, id := range taskIDs {
		if !e.tasks.TaskExists(id) {
			return e.rep.report(errInvalidArgument("set selection", id, "task does not exist"))
		}
	}
	for _, id := range groupIDs {
		if !e.groups.GroupExists(id) {
			return e.rep.report(errInvalidArgument("set selection", id, "group does not exist"))
		}
	}
	next := Selection{Tasks: toSet(taskIDs), Groups: toSet(groupIDs)}
	changed := false
	for _, id := range symmetricDifference(e.selection.Tasks, next.Tasks) {
		e.rows.DropSurfaces(model.TaskRef(id))
		changed = true
	}
	for _, id := range symmetricDifference(e.selection.Groups, next.Groups) {
		e.rows.DropSurfaces(model.GroupRef(id))
		changed = true
	}
	if !changed {
		return nil
	}
	e.selection = next
	e.signals.selectionChanged(e.Selection())
	return nil
}

func (e *Editor) CommentChanged(commentID int) {
	if !e.columns.IsVisible(AttrComments) {
		e.content.DropAttribute(AttrComments)
		return
	}
	taskID := e.comments.CommentTaskID(commentID)
	if taskID == model.InvalidID || !e.tasks.TaskExists(taskID) {
		return
	}
	e.invalidate(model.TaskRef(taskID), []Attribute{AttrComments})
}

func (e *Editor) ResourceChanged(resourceID int) {
	if e.columns.Format(AttrComments) == FormatCommentResponsibilities {
		// Responsibilities list resource names of any task's comments.
		e.content.DropAttribute(AttrComments)
		if e.columns.IsVisible(AttrComments) {
			e.rows.ClearAttributes()
			e.rows.ClearHeights()
		}
	}
	if !e.columns.IsVisible(AttrResources) {
		e.content.DropAttribute(AttrResources)
		return
	}
	for _, id := range e.resources.ResourceTaskIDs(resourceID) {
		e.invalidate(model.TaskRef(id), []Attribute{AttrResources})
	}
}

func (e *Editor) AttachmentChanged(attachmentID int) {
	if !e.columns.IsVisible(AttrAttachments) {
		e.content.DropAttribute(AttrAttachments)
		return
	}
	taskID := e.attachments.AttachmentTaskID(attachmentID)
	if taskID == model.InvalidID || !e.tasks.TaskExists(taskID) {
		return
	}
	e.invalidate(model.TaskRef(taskID), []Attribute{AttrAttachments})
}

func (e *Editor) SetDisplayFormat(attr Attribute, f Format) error {
	if !attr.Valid() {
		return e.rep.report(errInvalidArgument("set display format", attr, "unknown attribute"))
	}
	if !attr.Supports(f) {
		return e.rep.report(errInvalidArgument("set display format", f, "format not available for "+attr.Key()))
	}
	if !e.columns.setFormat(attr, f) {
		return nil
	}
	e.content.DropAttribute(attr)
	if attr == AttrGanttChart {
		e.rows.ClearGantt()
		e.headerGantt = nil
	} else {
		e.rows.Clear()
	}
	if e.updateHeaderHeight() {
		e.signals.sizeChanged()
	}
	return nil
}

// ResizeColumn sets a column width, clamped to MinColumnWidth.
func (e *Editor) ResizeColumn(attr Attribute, width int) error {
	if !attr.Valid() || attr == AttrGanttChart {
		return e.rep.report(errInvalidArgument("resize column", attr, "column cannot be resized"))
	}
	if !e.columns.setWidth(attr, width) {
		return nil
	}
	e.rows.Clear()
	e.headerAttrs = nil
	e.headerGantt = nil
	e.updateHeaderHeight()
	e.signals.sizeChanged()
	return nil
}

// ToggleColumn hides a visible column or shows a hidden one before anchor.
// Pass NoAnchor to append.
func (e *Editor) ToggleColumn(attr, anchor Attribute) error {
	if !attr.Valid() {
		return e.rep.report(errInvalidArgument("toggle column", attr, "unknown attribute"))
	}
	e.columns.toggle(attr, anchor)
	if attr == AttrGanttChart {
		e.headerGantt = nil
		e.rows.ClearGantt()
	} else {
		e.headerAttrs = nil
		e.rows.ClearAttributes()
		e.rows.ClearHeights()
	}
	e.updateHeaderHeight()
	e.signals.sizeChanged()
	return nil
}

func (e *Editor) Expand(groupID int) error {
	if !e.groups.GroupExists(groupID) {
		return e.rep.report(errInvalidArgument("expand", groupID, "group does not exist"))
	}
	if err := e.projection.Expand(groupID); err != nil {
		return e.rep.report(err)
	}
	e.rows.Drop(model.GroupRef(groupID))
	e.projection.Rebuild()
	e.signals.sizeChanged()
	return nil
}

func (e *Editor) Collapse(groupID int) error {
	if err := e.projection.Collapse(groupID); err != nil {
		return e.rep.report(err)
	}
	e.rows.Drop(model.GroupRef(groupID))
	e.projection.Rebuild()
	e.signals.sizeChanged()
	return nil
}

// ToggleExpanded flips the expansion of a group.
func (e *Editor) ToggleExpanded(groupID int) error {
	if e.projection.IsExpanded(groupID) {
		return e.Collapse(groupID)
	}
	return e.Expand(groupID)
}

func (e *Editor) SetGanttStartDate(d time.Time) error {
	if d.IsZero() {
		return e.rep.report(errInvalidArgument("set gantt start date", d, "invalid date"))
	}
	d = dateOnly(d)
	if d.Equal(e.gantt.start) {
		return nil
	}
	e.gantt.start = d
	e.rows.ClearGantt()
	e.headerGantt = nil
	e.signals.ganttStartDateChanged(d)
	return nil
}

func (e *Editor) SetGanttScale(scale float64) error {
	if scale < MinGanttScale || scale > MaxGanttScale {
		return e.rep.report(errInvalidArgument("set gantt scale", scale, "scale must be within [1, 50]"))
	}
	if !e.columns.setScale(scale) {
		return nil
	}
	e.headerGantt = nil
	e.rows.ClearGantt()
	if e.updateHeaderHeight() {
		e.signals.sizeChanged()
	}
	return nil
}

func (e *Editor) HolidaysChanged() {
	e.headerGantt = nil
	e.rows.ClearGantt()
}

// CheckIfCurrentDateChanged redraws the timeline when the day rolled over.
func (e *Editor) CheckIfCurrentDateChanged() bool {
	today := dateOnly(e.now())
	if today.Equal(e.gantt.today) {
		return false
	}
	e.gantt.today = today
	e.headerGantt = nil
	e.rows.ClearGantt()
	return true
}

func toSet(ids []int) map[int]bool {
	out := make(map[int]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

func symmetricDifference(a, b map[int]bool) []int {
	var out []int
	for id := range a {
		if !b[id] {
			out = append(out, id)
		}
	}
	for id := range b {
		if !a[id] {
			out = append(out, id)
		}
	}
	return out
}

func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for id, ok := range m {
		if ok {
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}
