package editor

import (
	"reflect"
	"testing"
	"time"

	"planner-cli/internal/model"
)

func TestLinkSuffix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		link model.Link
		want string
	}{
		{link: model.Link{Type: model.LinkFinishToStart}, want: ""},
		{link: model.Link{}, want: ""},
		{link: model.Link{Type: model.LinkFinishToStart, Lag: 2}, want: ", FS +2 wd"},
		{link: model.Link{Type: model.LinkStartToStart}, want: ", SS"},
		{link: model.Link{Type: model.LinkFinishToFinish, Lag: -3, LagUnits: "cd"}, want: ", FF -3 cd"},
		{link: model.Link{Type: model.LinkStartToFinish, Lag: 1, LagUnits: "w"}, want: ", SF +1 w"},
	}
	for _, tc := range cases {
		if got := linkSuffix(tc.link); got != tc.want {
			t.Fatalf("linkSuffix(%+v) = %q; want %q", tc.link, got, tc.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	d := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	cases := map[Format]string{
		FormatDateISO:         "2024-03-04",
		FormatDateISOWeekday:  "2024-03-04 (Mon)",
		FormatDateLong:        "04 Mar 2024",
		FormatDateLongWeekday: "Mon, 04 Mar 2024",
	}
	for f, want := range cases {
		got, err := FormatDate(d, f)
		if err != nil || got != want {
			t.Fatalf("FormatDate(%q) = %q, %v; want %q", f, got, err, want)
		}
	}
	if _, err := FormatDate(d, FormatYesNo); err == nil {
		t.Fatalf("expected an error for a non-date format")
	}
}

func TestContent_Formatting(t *testing.T) {
	t.Parallel()

	w := abcWorld()
	w.tasks[1][model.InfoActualStart] = "2024-03-05"
	w.tasks[1][model.InfoEarlyFinish] = "2024-03-08"
	w.tasks[1][model.InfoSlackWorkdays] = "3"
	w.tasks[1][model.InfoIsOnCriticalPath] = model.Yes
	w.tasks[1][model.InfoTextStyle] = model.StyleBold
	w.tasks[2][model.InfoTextColor] = "#ff0000"
	w.tasks[3][model.InfoReference] = ""
	w.tasks[3][model.InfoCompletionStatus] = model.StatusCompleted
	w.links[[2]int{1, 3}] = model.Link{Predecessor: 1, Successor: 3, Type: model.LinkStartToStart, Lag: 1}
	w.taskResources[1] = []int{5, 4}
	w.resourceNames[4] = "Zoe"
	w.resourceNames[5] = "Adam"
	w.attachments[8] = model.Attachment{ID: 8, Task: 1, Name: "spec <draft>.pdf"}

	h := newHarness(t, w)
	cc := h.ed.Content()
	a, b, c := model.TaskRef(1), model.TaskRef(2), model.TaskRef(3)

	cases := []struct {
		name string
		ref  model.EntityRef
		attr Attribute
		want Content
	}{
		{name: "id centered and styled", ref: a, attr: AttrID, want: Content{
			Fragments: []string{`<p align="center"><b>A</b></p>`}, IDs: []int{-1}}},
		{name: "id falls back to number", ref: c, attr: AttrID, want: Content{
			Fragments: []string{`<p align="center">3</p>`}, IDs: []int{-1}}},
		{name: "colored title", ref: b, attr: AttrTitle, want: Content{
			Fragments: []string{`<font color="#ff0000">Bravo</font>`}, IDs: []int{-1}}},
		{name: "actual start wins", ref: a, attr: AttrStartDate, want: Content{
			Fragments: []string{`<p align="center"><b>2024-03-05</b></p>`}, IDs: []int{-1}}},
		{name: "early finish fallback", ref: a, attr: AttrFinishDate, want: Content{
			Fragments: []string{`<p align="center"><b>2024-03-08</b></p>`}, IDs: []int{-1}}},
		{name: "slack unit", ref: a, attr: AttrSlackWorkdays, want: Content{
			Fragments: []string{`<p align="center"><b>3 wd</b></p>`}, IDs: []int{-1}}},
		{name: "critical red", ref: a, attr: AttrCriticalPath, want: Content{
			Fragments: []string{`<p align="center"><b><font color="red">&#x25FC;</font></b></p>`}, IDs: []int{-1}}},
		{name: "completed symbol", ref: c, attr: AttrCompletionStatus, want: Content{
			Fragments: []string{`<p align="center"><font color="green">&#x2713;</font></p>`}, IDs: []int{-1}}},
		{name: "predecessors sorted with suffix", ref: c, attr: AttrPredecessors, want: Content{
			Fragments: []string{`A (Alpha), SS +1 wd`, `B (Bravo)`}, IDs: []int{1, 2}}},
		{name: "resources sorted", ref: a, attr: AttrResources, want: Content{
			Fragments: []string{`<b>Adam</b>`, `<b>Zoe</b>`}, IDs: []int{5, 4}}},
		{name: "escaped attachment", ref: a, attr: AttrAttachments, want: Content{
			Fragments: []string{`<b>spec &lt;draft&gt;.pdf</b>`}, IDs: []int{8}}},
		{name: "no comments", ref: b, attr: AttrComments, want: Content{
			Fragments: []string{}, IDs: []int{}}},
	}
	for _, tc := range cases {
		if got := cc.Get(tc.ref, tc.attr); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s:\nwant: %#v\ngot:  %#v", tc.name, tc.want, got)
		}
	}
}

func TestContent_GroupsShowOnlyTitleAndCompletion(t *testing.T) {
	t.Parallel()

	w := newWorld()
	w.addGroup(10, model.RootGroupID, "Phase")
	w.groups[10][model.InfoCompletionValue] = "40"
	h := newHarness(t, w)
	g := model.GroupRef(10)

	if got := h.ed.Content().Get(g, AttrDuration).Fragments; len(got) != 0 {
		t.Fatalf("group duration = %q", got)
	}
	if err := h.ed.SetDisplayFormat(AttrCompletionStatus, FormatStatusPercent); err != nil {
		t.Fatalf("SetDisplayFormat: %v", err)
	}
	if got := h.ed.Content().Get(g, AttrCompletionStatus).Fragments; !reflect.DeepEqual(got, []string{`<p align="center">40%</p>`}) {
		t.Fatalf("group completion = %q", got)
	}
}

func TestContent_CommentResponsibilities(t *testing.T) {
	t.Parallel()

	w := abcWorld()
	w.resourceNames[4] = "Zoe"
	w.resourceNames[5] = "Adam"
	w.comments[1] = model.Comment{ID: 1, Task: 1, Title: "one", Mentions: []int{4}}
	w.comments[2] = model.Comment{ID: 2, Task: 1, Title: "two", Mentions: []int{5, 4}}
	h := newHarness(t, w)
	if err := h.ed.SetDisplayFormat(AttrComments, FormatCommentResponsibilities); err != nil {
		t.Fatalf("SetDisplayFormat: %v", err)
	}
	got := h.ed.Content().Get(model.TaskRef(1), AttrComments)
	want := Content{Fragments: []string{"Adam", "Zoe"}, IDs: []int{-1, -1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("responsibilities:\nwant: %#v\ngot:  %#v", want, got)
	}

	w.resourceNames[5] = "Aaron"
	h.ed.ResourceChanged(5)
	if got := h.ed.Content().Get(model.TaskRef(1), AttrComments).Fragments; !reflect.DeepEqual(got, []string{"Aaron", "Zoe"}) {
		t.Fatalf("after rename = %q", got)
	}
}
