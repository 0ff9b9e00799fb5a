package editor

import (
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	"planner-cli/internal/model"
)

type rowState struct{ attrs, gantt, height bool }

func rowsOf(h *harness, ref model.EntityRef) rowState {
	a, g, ht := h.ed.Rows().has(ref)
	return rowState{a, g, ht}
}

var (
	rowCached  = rowState{true, true, true}
	rowDropped = rowState{false, false, false}
)

func TestTaskInfoChanged_TitleCascadesToLinkedTasks(t *testing.T) {
	t.Parallel()

	w := abcWorld()
	h := newHarness(t, w)
	h.paintAll(t)

	a, b, c := model.TaskRef(1), model.TaskRef(2), model.TaskRef(3)
	before := h.ed.Content().Get(a, AttrTitle)

	w.tasks[2][model.InfoTitle] = "Bravissimo"
	h.ed.TaskInfoChanged(2, model.InfoTitle)

	if h.ed.Content().has(b, AttrTitle) {
		t.Fatalf("B's title should be dropped")
	}
	if h.ed.Content().has(c, AttrPredecessors) {
		t.Fatalf("C's predecessors embed B's title and should be dropped")
	}
	if !h.ed.Content().has(c, AttrTitle) {
		t.Fatalf("C's title is unrelated and should survive")
	}
	for _, attr := range DefaultVisibleAttributes() {
		if attr == AttrGanttChart {
			continue
		}
		if !h.ed.Content().has(a, attr) {
			t.Fatalf("A's %s content should survive", attr)
		}
	}
	if got := rowsOf(h, a); got != rowCached {
		t.Fatalf("A's row state = %+v; want fully cached", got)
	}
	if got := rowsOf(h, b); got != rowDropped {
		t.Fatalf("B's row state = %+v; want dropped", got)
	}
	if got := rowsOf(h, c); got != rowDropped {
		t.Fatalf("C's row state = %+v; want dropped", got)
	}

	if got := h.ed.Content().Get(c, AttrPredecessors).Fragments; len(got) != 1 || !strings.Contains(got[0], "B (Bravissimo)") {
		t.Fatalf("C's predecessors = %q", got)
	}
	if got := h.ed.Content().Get(a, AttrTitle); !reflect.DeepEqual(got, before) {
		t.Fatalf("A's title changed: %#v -> %#v", before, got)
	}
}

func TestTaskInfoChanged_UndisplayedFieldKeepsCaches(t *testing.T) {
	t.Parallel()

	w := abcWorld()
	h := newHarness(t, w)
	h.paintAll(t)
	entries := h.ed.Content().Len()

	w.tasks[1][model.InfoLateStart] = "2024-05-01"
	h.ed.TaskInfoChanged(1, model.InfoLateStart)

	if got := h.ed.Content().Len(); got != entries {
		t.Fatalf("content entries %d -> %d", entries, got)
	}
	for _, id := range []int{1, 2, 3} {
		if got := rowsOf(h, model.TaskRef(id)); got != rowCached {
			t.Fatalf("task %d row state = %+v", id, got)
		}
	}
}

func TestTaskInfoChanged_GanttOnlyKeepsHeight(t *testing.T) {
	t.Parallel()

	w := abcWorld()
	h := newHarness(t, w)
	h.paintAll(t)

	h.ed.TaskInfoChanged(1, model.InfoIsMilestone)
	if got := rowsOf(h, model.TaskRef(1)); got != (rowState{false, false, true}) {
		t.Fatalf("row state = %+v; want surfaces dropped, height kept", got)
	}
}

func TestTaskInfoChanged_LinkedTasksClearsEveryGanttSurface(t *testing.T) {
	t.Parallel()

	w := abcWorld()
	h := newHarness(t, w)
	h.paintAll(t)

	h.ed.TaskInfoChanged(1, model.InfoLinkedTasks)
	for _, id := range []int{1, 2, 3} {
		if _, gantt, _ := h.ed.Rows().has(model.TaskRef(id)); gantt {
			t.Fatalf("task %d kept its Gantt surface", id)
		}
	}
	if !h.ed.Content().has(model.TaskRef(3), AttrTitle) {
		t.Fatalf("unrelated content dropped")
	}
}

func TestTaskInfoChanged_UnknownKeyIsReported(t *testing.T) {
	t.Parallel()

	h := newHarness(t, abcWorld())
	h.ed.TaskInfoChanged(1, model.InfoKey("colour"))
	if len(h.log.errors) != 1 {
		t.Fatalf("logged errors = %v", h.log.errors)
	}
}

func TestSetSelection_DropsOnlyTheSelectedRowSurface(t *testing.T) {
	t.Parallel()

	h := newHarness(t, abcWorld())
	h.paintAll(t)
	a := model.TaskRef(1)
	entries := h.ed.Content().Len()

	if err := h.ed.SetSelection([]int{1}, nil); err != nil {
		t.Fatalf("SetSelection: %v", err)
	}

	if got := rowsOf(h, a); got != (rowState{false, false, true}) {
		t.Fatalf("A row state = %+v; want surfaces dropped, height kept", got)
	}
	if got := h.ed.Content().Len(); got != entries {
		t.Fatalf("content entries %d -> %d", entries, got)
	}
	for _, id := range []int{2, 3} {
		if got := rowsOf(h, model.TaskRef(id)); got != rowCached {
			t.Fatalf("task %d row state = %+v", id, got)
		}
	}
	if !reflect.DeepEqual(h.selections, [][]int{{1}}) {
		t.Fatalf("selection signals = %v", h.selections)
	}

	s := h.ed.Rows().Surface(0, BandAttributes).(*fakeSurface)
	if !s.hasFill(SelectedColor) {
		t.Fatalf("selected row is not tinted")
	}

	// Same selection again is a no-op.
	if err := h.ed.SetSelection([]int{1}, nil); err != nil {
		t.Fatalf("SetSelection: %v", err)
	}
	if len(h.selections) != 1 {
		t.Fatalf("unchanged selection raised a signal")
	}
}

func TestSetSelection_UnknownIDRejectsWholeRequest(t *testing.T) {
	t.Parallel()

	h := newHarness(t, abcWorld())
	if err := h.ed.SetSelection([]int{1, 42}, nil); err == nil {
		t.Fatalf("expected an error for an unknown task")
	}
	if tasks, _ := h.ed.Selection(); len(tasks) != 0 {
		t.Fatalf("selection partially applied: %v", tasks)
	}
}

func TestResizeColumn_ClearsRowsAndChangesMaximumOffset(t *testing.T) {
	t.Parallel()

	w := abcWorld()
	w.tasks[1][model.InfoTitle] = strings.Repeat("x", 40)
	h := newHarness(t, w)

	header := h.ed.HeaderHeight()
	if err := h.ed.Resize(2400, header+40); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	h.paintAll(t)

	if got := h.ed.Rows().Height(0); got != 2*fakeLineHeight+2*RowPadding {
		t.Fatalf("height before = %d", got)
	}
	before := h.ed.MaximumTopOffset()
	entries := h.ed.Content().Len()

	if err := h.ed.ResizeColumn(AttrTitle, 150); err != nil {
		t.Fatalf("ResizeColumn: %v", err)
	}
	for _, id := range []int{1, 2, 3} {
		if got := rowsOf(h, model.TaskRef(id)); got != rowDropped {
			t.Fatalf("task %d row state = %+v; want dropped", id, got)
		}
	}
	if got := h.ed.Content().Len(); got != entries {
		t.Fatalf("content does not depend on width; entries %d -> %d", entries, got)
	}

	if got := h.ed.Rows().Height(0); got != 3*fakeLineHeight+2*RowPadding {
		t.Fatalf("height after = %d", got)
	}
	after := h.ed.MaximumTopOffset()
	if after != before+fakeLineHeight {
		t.Fatalf("MaximumTopOffset %d -> %d; want +%d", before, after, fakeLineHeight)
	}
	if h.sizes == 0 {
		t.Fatalf("size-changed not signaled")
	}
}

func TestResizeColumn_ClampsAndRejectsGantt(t *testing.T) {
	t.Parallel()

	h := newHarness(t, abcWorld())
	if err := h.ed.ResizeColumn(AttrTitle, 3); err != nil {
		t.Fatalf("ResizeColumn: %v", err)
	}
	if got := h.ed.Columns().Width(AttrTitle); got != MinColumnWidth {
		t.Fatalf("width = %d; want %d", got, MinColumnWidth)
	}
	if err := h.ed.ResizeColumn(AttrGanttChart, 300); err == nil {
		t.Fatalf("resizing the Gantt column should fail")
	}
}

func TestDrop_IsIdempotent(t *testing.T) {
	t.Parallel()

	h := newHarness(t, abcWorld())
	h.paintAll(t)
	a := model.TaskRef(1)

	for i := 0; i < 2; i++ {
		h.ed.Content().Drop(a, AttrTitle, AttrComments)
		h.ed.Rows().Drop(a)
		h.ed.Rows().DropSurfaces(model.TaskRef(99))
		h.ed.Content().DropEntity(model.GroupRef(99))
	}
	if len(h.log.errors) != 0 {
		t.Fatalf("logged errors = %v", h.log.errors)
	}
	if h.ed.Content().has(a, AttrTitle) {
		t.Fatalf("title still cached")
	}
}

func TestContent_RecomputesAfterDrop(t *testing.T) {
	t.Parallel()

	w := abcWorld()
	h := newHarness(t, w)
	a := model.TaskRef(1)

	first := h.ed.Content().Get(a, AttrTitle)
	w.tasks[1][model.InfoTitle] = "Changed"
	if got := h.ed.Content().Get(a, AttrTitle); !reflect.DeepEqual(got, first) {
		t.Fatalf("cached content changed without a drop")
	}
	h.ed.TaskInfoChanged(1, model.InfoTitle)
	if got := h.ed.Content().Get(a, AttrTitle).Fragments; !reflect.DeepEqual(got, []string{"Changed"}) {
		t.Fatalf("recomputed content = %q", got)
	}
}

func TestGroupInfoChanged_FullHierarchyDropsDescendantTitles(t *testing.T) {
	t.Parallel()

	w := newWorld()
	w.addGroup(10, model.RootGroupID, "Outer")
	w.addGroup(11, 10, "Inner")
	w.addTask(1, 11, "1", "Leaf")
	w.addTask(2, model.RootGroupID, "2", "Other")

	h := newHarness(t, w)
	if err := h.ed.SetDisplayFormat(AttrTitle, FormatTitleFullHierarchy); err != nil {
		t.Fatalf("SetDisplayFormat: %v", err)
	}
	if got := h.ed.Content().Get(model.TaskRef(1), AttrTitle).Fragments; !reflect.DeepEqual(got, []string{"Outer/Inner: Leaf"}) {
		t.Fatalf("title = %q", got)
	}
	h.ed.Content().Get(model.TaskRef(2), AttrTitle)

	w.groups[10][model.InfoTitle] = "Program"
	h.ed.GroupInfoChanged(10, model.InfoTitle)

	if h.ed.Content().has(model.TaskRef(1), AttrTitle) {
		t.Fatalf("nested task title should be dropped")
	}
	if !h.ed.Content().has(model.TaskRef(2), AttrTitle) {
		t.Fatalf("task outside the group should keep its title")
	}
	if got := h.ed.Content().Get(model.TaskRef(1), AttrTitle).Fragments; !reflect.DeepEqual(got, []string{"Program/Inner: Leaf"}) {
		t.Fatalf("title = %q", got)
	}
}

func TestGroupMembersChanged_RebuildsProjection(t *testing.T) {
	t.Parallel()

	w := newWorld()
	w.addGroup(10, model.RootGroupID, "G")
	w.addTask(1, 10, "1", "Kept")
	h := newHarness(t, w)
	if err := h.ed.Expand(10); err != nil {
		t.Fatalf("Expand: %v", err)
	}
	h.paintAll(t)

	w.addTask(2, 10, "2", "Added")
	h.ed.GroupMembersChanged(10)

	if got := h.ed.Projection().Len(); got != 3 {
		t.Fatalf("rows = %d; want 3", got)
	}
	if got := rowsOf(h, model.TaskRef(1)); got != rowDropped {
		t.Fatalf("member row state = %+v", got)
	}
}

func TestTaskDeleted_ClearsSelection(t *testing.T) {
	t.Parallel()

	w := abcWorld()
	h := newHarness(t, w)
	if err := h.ed.SetSelection([]int{1, 2}, nil); err != nil {
		t.Fatalf("SetSelection: %v", err)
	}

	delete(w.tasks, 1)
	w.children[model.RootGroupID] = w.children[model.RootGroupID][1:]
	h.ed.TaskDeleted(1)

	if tasks, _ := h.ed.Selection(); !reflect.DeepEqual(tasks, []int{2}) {
		t.Fatalf("selection = %v", tasks)
	}
	if got := h.ed.Projection().Len(); got != 2 {
		t.Fatalf("rows = %d", got)
	}
}

func TestScheduleChanged_DropsAffectedTasksAndTheirGroups(t *testing.T) {
	t.Parallel()

	w := newWorld()
	w.addGroup(10, model.RootGroupID, "G")
	w.addTask(1, 10, "1", "Moved")
	w.addTask(2, 10, "2", "Still")
	h := newHarness(t, w)
	if err := h.ed.Expand(10); err != nil {
		t.Fatalf("Expand: %v", err)
	}
	h.paintAll(t)

	w.affected = []int{1}
	h.ed.ScheduleChanged()

	if got := rowsOf(h, model.TaskRef(1)); got != rowDropped {
		t.Fatalf("affected task row state = %+v", got)
	}
	if got := rowsOf(h, model.GroupRef(10)); got != (rowState{false, false, true}) {
		t.Fatalf("group row state = %+v", got)
	}
	if got := rowsOf(h, model.TaskRef(2)); got != rowCached {
		t.Fatalf("unaffected task row state = %+v", got)
	}
}

func TestCommentChanged_DropsOwningTask(t *testing.T) {
	t.Parallel()

	w := abcWorld()
	w.comments[7] = model.Comment{ID: 7, Task: 2, Title: "Check"}
	h := newHarness(t, w)
	h.paintAll(t)

	w.comments[7] = model.Comment{ID: 7, Task: 2, Title: "Checked"}
	h.ed.CommentChanged(7)

	if h.ed.Content().has(model.TaskRef(2), AttrComments) {
		t.Fatalf("comment content should be dropped")
	}
	if got := rowsOf(h, model.TaskRef(1)); got != rowCached {
		t.Fatalf("unrelated row dropped")
	}
	if got := h.ed.Content().Get(model.TaskRef(2), AttrComments).Fragments; !reflect.DeepEqual(got, []string{"Checked"}) {
		t.Fatalf("comments = %q", got)
	}
}

func TestSetDisplayFormat(t *testing.T) {
	t.Parallel()

	h := newHarness(t, abcWorld())
	h.paintAll(t)

	if err := h.ed.SetDisplayFormat(AttrStartDate, FormatYesNo); err == nil {
		t.Fatalf("unsupported format should fail")
	}
	if got := h.ed.Columns().Format(AttrStartDate); got != FormatDateISO {
		t.Fatalf("format changed on error: %q", got)
	}

	if err := h.ed.SetDisplayFormat(AttrCompletionStatus, FormatStatusText); err != nil {
		t.Fatalf("SetDisplayFormat: %v", err)
	}
	if h.ed.Content().has(model.TaskRef(1), AttrCompletionStatus) {
		t.Fatalf("status content should be dropped")
	}
	if got := h.ed.Content().Get(model.TaskRef(1), AttrCompletionStatus).Fragments; !reflect.DeepEqual(got, []string{`<p align="center">not started</p>`}) {
		t.Fatalf("status = %q", got)
	}
}

func TestToggleColumn(t *testing.T) {
	t.Parallel()

	h := newHarness(t, abcWorld())
	cols := h.ed.Columns()

	if err := h.ed.ToggleColumn(AttrCriticalPath, AttrTitle); err != nil {
		t.Fatalf("ToggleColumn: %v", err)
	}
	if got, want := cols.Index(AttrCriticalPath), cols.Index(AttrTitle)-1; got != want {
		t.Fatalf("critical path index = %d; want %d", got, want)
	}

	if err := h.ed.ToggleColumn(AttrSlackWorkdays, NoAnchor); err != nil {
		t.Fatalf("ToggleColumn: %v", err)
	}
	vis := cols.Visible()
	if vis[len(vis)-1] != AttrGanttChart || vis[len(vis)-2] != AttrSlackWorkdays {
		t.Fatalf("visible = %v; want slack before Gantt", vis)
	}

	if err := h.ed.ToggleColumn(AttrGanttChart, NoAnchor); err != nil {
		t.Fatalf("ToggleColumn: %v", err)
	}
	if cols.IsVisible(AttrGanttChart) || cols.TotalWidth() != cols.AttributesWidth() {
		t.Fatalf("Gantt should be hidden")
	}
}

func TestSetGanttScale(t *testing.T) {
	t.Parallel()

	h := newHarness(t, abcWorld())
	if err := h.ed.SetGanttScale(0.5); err == nil {
		t.Fatalf("scale below range should fail")
	}
	if err := h.ed.SetGanttScale(7); err != nil {
		t.Fatalf("SetGanttScale: %v", err)
	}
	if got := h.ed.EffectiveGanttFormat(); got != FormatGanttMonths {
		t.Fatalf("effective format = %q", got)
	}
}

func TestCheckIfCurrentDateChanged(t *testing.T) {
	t.Parallel()

	h := newHarness(t, abcWorld())
	h.paintAll(t)
	if h.ed.CheckIfCurrentDateChanged() {
		t.Fatalf("date did not change")
	}
	h.ed.now = func() time.Time { return testNow.AddDate(0, 0, 1) }
	if !h.ed.CheckIfCurrentDateChanged() {
		t.Fatalf("date change not detected")
	}
	if _, gantt, _ := h.ed.Rows().has(model.TaskRef(1)); gantt {
		t.Fatalf("Gantt surface should be dropped")
	}
}

func TestGroupDeleted_ForgetsExpansionAndCaches(t *testing.T) {
	t.Parallel()

	w := newWorld()
	w.addGroup(10, model.RootGroupID, "G")
	w.addTask(1, 10, "1", "Inside")
	w.addTask(2, model.RootGroupID, "2", "Outside")
	h := newHarness(t, w)
	if err := h.ed.Expand(10); err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if err := h.ed.SetSelection(nil, []int{10}); err != nil {
		t.Fatalf("SetSelection: %v", err)
	}
	h.paintAll(t)
	g := model.GroupRef(10)
	if !h.ed.Content().has(g, AttrTitle) {
		t.Fatalf("group title not cached before delete")
	}

	delete(w.groups, 10)
	delete(w.tasks, 1)
	delete(w.children, 10)
	w.children[model.RootGroupID] = []model.EntityRef{model.TaskRef(2)}
	h.ed.GroupDeleted(10)

	if slices.Contains(h.ed.Projection().ExpandedIDs(), 10) {
		t.Fatalf("expanded ids still list the deleted group: %v", h.ed.Projection().ExpandedIDs())
	}
	if h.ed.Content().has(g, AttrTitle) {
		t.Fatalf("group content survived")
	}
	if got := rowsOf(h, g); got != rowDropped {
		t.Fatalf("group row state = %+v", got)
	}
	if got := h.ed.Projection().IndexOf(g); got != -1 {
		t.Fatalf("IndexOf(deleted group) = %d", got)
	}
	if got := h.ed.Projection().Rows(); !reflect.DeepEqual(got, []Row{{ID: 2, Kind: model.KindTask}}) {
		t.Fatalf("rows = %#v", got)
	}
	if _, groups := h.ed.Selection(); len(groups) != 0 {
		t.Fatalf("selection still holds %v", groups)
	}
	if got := rowsOf(h, model.TaskRef(2)); got != rowCached {
		t.Fatalf("unrelated row state = %+v", got)
	}
}

func TestResourceChanged_DropsAssignedTasksOnly(t *testing.T) {
	t.Parallel()

	w := abcWorld()
	w.resourceNames[5] = "Ada"
	w.taskResources[2] = []int{5}
	h := newHarness(t, w)
	h.paintAll(t)

	w.resourceNames[5] = "Grace"
	h.ed.ResourceChanged(5)

	if h.ed.Content().has(model.TaskRef(2), AttrResources) {
		t.Fatalf("resources content should be dropped")
	}
	if got := rowsOf(h, model.TaskRef(2)); got != rowDropped {
		t.Fatalf("assigned task row state = %+v", got)
	}
	for _, id := range []int{1, 3} {
		if got := rowsOf(h, model.TaskRef(id)); got != rowCached {
			t.Fatalf("task %d row state = %+v", id, got)
		}
	}
	if got := h.ed.Content().Get(model.TaskRef(2), AttrResources).Fragments; !reflect.DeepEqual(got, []string{"Grace"}) {
		t.Fatalf("resources = %q", got)
	}
}

func TestAttachmentChanged_DropsOwningTaskOnly(t *testing.T) {
	t.Parallel()

	w := abcWorld()
	w.attachments[4] = model.Attachment{ID: 4, Task: 3, Name: "plan.pdf"}
	h := newHarness(t, w)
	h.paintAll(t)

	w.attachments[4] = model.Attachment{ID: 4, Task: 3, Name: "plan-v2.pdf"}
	h.ed.AttachmentChanged(4)

	if h.ed.Content().has(model.TaskRef(3), AttrAttachments) {
		t.Fatalf("attachments content should be dropped")
	}
	if got := rowsOf(h, model.TaskRef(3)); got != rowDropped {
		t.Fatalf("owning task row state = %+v", got)
	}
	for _, id := range []int{1, 2} {
		if got := rowsOf(h, model.TaskRef(id)); got != rowCached {
			t.Fatalf("task %d row state = %+v", id, got)
		}
	}

	// Unknown attachments are ignored.
	h.ed.AttachmentChanged(99)
	if got := rowsOf(h, model.TaskRef(1)); got != rowCached {
		t.Fatalf("unknown attachment dropped rows")
	}
}

func TestHiddenColumn_DropsContentKeepsRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		attr   Attribute
		change func(w *world, ed *Editor)
	}{
		{
			name: "attachments",
			attr: AttrAttachments,
			change: func(w *world, ed *Editor) {
				w.attachments[4] = model.Attachment{ID: 4, Task: 2, Name: "notes.txt"}
				ed.AttachmentChanged(4)
			},
		},
		{
			name: "resources",
			attr: AttrResources,
			change: func(w *world, ed *Editor) {
				w.resourceNames[5] = "Grace"
				ed.ResourceChanged(5)
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := abcWorld()
			w.resourceNames[5] = "Ada"
			w.taskResources[2] = []int{5}
			w.attachments[4] = model.Attachment{ID: 4, Task: 2, Name: "notes.md"}
			h := newHarness(t, w)
			if err := h.ed.ToggleColumn(tc.attr, NoAnchor); err != nil {
				t.Fatalf("ToggleColumn: %v", err)
			}
			if h.ed.Columns().IsVisible(tc.attr) {
				t.Fatalf("%s still visible", tc.attr)
			}
			h.paintAll(t)
			h.ed.Content().Get(model.TaskRef(2), tc.attr)

			tc.change(w, h.ed)

			if h.ed.Content().has(model.TaskRef(2), tc.attr) {
				t.Fatalf("hidden %s content should be dropped", tc.attr)
			}
			for _, id := range []int{1, 2, 3} {
				if got := rowsOf(h, model.TaskRef(id)); got != rowCached {
					t.Fatalf("task %d row state = %+v", id, got)
				}
			}
		})
	}
}

func TestRowSurface_RepaintsWhenParityFlips(t *testing.T) {
	t.Parallel()

	w := newWorld()
	w.addTask(1, model.RootGroupID, "1", "Before")
	w.addGroup(10, model.RootGroupID, "G")
	w.addTask(2, 10, "2", "Inside")
	w.addTask(3, model.RootGroupID, "3", "After")
	h := newHarness(t, w)
	if err := h.ed.Expand(10); err != nil {
		t.Fatalf("Expand: %v", err)
	}
	h.paintAll(t)
	first := h.ed.Rows().Surface(0, BandAttributes)
	if got := h.ed.Rows().Surface(3, BandAttributes).(*fakeSurface).bg; got != BackgroundColors[1] {
		t.Fatalf("task 3 background at index 3 = %v", got)
	}

	if err := h.ed.Collapse(10); err != nil {
		t.Fatalf("Collapse: %v", err)
	}
	if got := h.ed.Projection().IndexOf(model.TaskRef(3)); got != 2 {
		t.Fatalf("IndexOf(task 3) = %d", got)
	}
	for _, band := range []Band{BandAttributes, BandGantt} {
		if got := h.ed.Rows().Surface(2, band).(*fakeSurface).bg; got != BackgroundColors[0] {
			t.Fatalf("band %d background at index 2 = %v; want %v", band, got, BackgroundColors[0])
		}
	}
	if got := h.ed.Rows().Surface(0, BandAttributes); got != first {
		t.Fatalf("row that kept its index was repainted")
	}
}
