package project

import (
	"sort"
	"strconv"

	"planner-cli/internal/model"
)

func (p *Project) TaskExists(id int) bool {
	_, ok := p.tasks[id]
	return ok
}

// TaskInfo returns nil for an unknown task.
func (p *Project) TaskInfo(id int) model.Info {
	t, ok := p.tasks[id]
	if !ok {
		return nil
	}
	return taskInfo(t)
}

func (p *Project) TaskGroup(id int) int {
	if g, ok := p.taskGroup[id]; ok {
		return g
	}
	return model.RootGroupID
}

// Task returns a copy of the stored task.
func (p *Project) Task(id int) (model.Task, bool) {
	t, ok := p.tasks[id]
	if !ok {
		return model.Task{}, false
	}
	out := *t
	out.Resources = append([]int(nil), t.Resources...)
	return out, true
}

func (p *Project) GroupExists(id int) bool {
	_, ok := p.groups[id]
	return ok
}

// GroupInfo carries the stored fields plus the early start/finish span of the
// group's tasks. An unset completion value is the mean completion of those tasks.
func (p *Project) GroupInfo(id int) model.Info {
	g, ok := p.groups[id]
	if !ok {
		return nil
	}
	style := g.TextStyle
	if style == "" {
		style = model.StyleNormal
	}
	info := model.Info{
		model.InfoTitle:           g.Title,
		model.InfoParentGroupID:   strconv.Itoa(p.GroupParent(id)),
		model.InfoTextColor:       g.TextColor,
		model.InfoBackgroundColor: g.BackgroundColor,
		model.InfoTextStyle:       style,
		model.InfoCompletionValue: g.CompletionValue,
	}

	var start, finish string
	total, n := 0, 0
	walk(p.Children, id, func(ref model.EntityRef) {
		if ref.Kind != model.KindTask {
			return
		}
		t := p.tasks[ref.ID]
		total += completionPercent(t.Status)
		n++
		if es := firstSet(t.ActualStart, t.EarlyStart); es != "" && (start == "" || es < start) {
			start = es
		}
		if ef := firstSet(t.ActualFinish, t.EarlyFinish); ef != "" && ef > finish {
			finish = ef
		}
	})
	info[model.InfoEarlyStart] = start
	info[model.InfoEarlyFinish] = finish
	if g.CompletionValue == "" {
		pct := 0
		if n > 0 {
			pct = (total + n/2) / n
		}
		info[model.InfoCompletionValue] = strconv.Itoa(pct)
	}
	return info
}

func firstSet(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}

func (p *Project) GroupParent(id int) int {
	if g, ok := p.parent[id]; ok {
		return g
	}
	return model.RootGroupID
}

func (p *Project) Children(groupID int) []model.EntityRef {
	return append([]model.EntityRef(nil), p.children[groupID]...)
}

func (p *Project) Predecessors(taskID int) []int {
	var out []int
	for k := range p.links {
		if k[1] == taskID {
			out = append(out, k[0])
		}
	}
	sort.Ints(out)
	return out
}

func (p *Project) Successors(taskID int) []int {
	var out []int
	for k := range p.links {
		if k[0] == taskID {
			out = append(out, k[1])
		}
	}
	sort.Ints(out)
	return out
}

func (p *Project) Link(pred, succ int) (model.Link, bool) {
	l, ok := p.links[[2]int{pred, succ}]
	return l, ok
}

func (p *Project) TaskResourceIDs(taskID int) []int {
	t, ok := p.tasks[taskID]
	if !ok {
		return nil
	}
	return append([]int(nil), t.Resources...)
}

func (p *Project) ResourceName(id int) string { return p.resources[id] }

func (p *Project) ResourceTaskIDs(resourceID int) []int {
	var out []int
	for _, id := range p.TaskIDs() {
		for _, r := range p.tasks[id].Resources {
			if r == resourceID {
				out = append(out, id)
				break
			}
		}
	}
	return out
}

func (p *Project) TaskCommentIDs(taskID int) []int {
	var out []int
	for _, id := range sortedIDs(p.comments) {
		if p.comments[id].Task == taskID {
			out = append(out, id)
		}
	}
	return out
}

func (p *Project) Comment(id int) (model.Comment, bool) {
	c, ok := p.comments[id]
	return c, ok
}

func (p *Project) CommentTaskID(id int) int {
	if c, ok := p.comments[id]; ok {
		return c.Task
	}
	return model.InvalidID
}

func (p *Project) TaskAttachmentIDs(taskID int) []int {
	var out []int
	for _, id := range sortedIDs(p.attachments) {
		if p.attachments[id].Task == taskID {
			out = append(out, id)
		}
	}
	return out
}

func (p *Project) Attachment(id int) (model.Attachment, bool) {
	a, ok := p.attachments[id]
	return a, ok
}

func (p *Project) AttachmentTaskID(id int) int {
	if a, ok := p.attachments[id]; ok {
		return a.Task
	}
	return model.InvalidID
}

// SetScheduledDates stores computed dates without notifying observers; the
// scheduler reports them in bulk.
func (p *Project) SetScheduledDates(id int, earlyStart, earlyFinish string) {
	if t, ok := p.tasks[id]; ok {
		t.EarlyStart = earlyStart
		t.EarlyFinish = earlyFinish
	}
}
