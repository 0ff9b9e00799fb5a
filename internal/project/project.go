// Package project holds a project document in memory, answers the editor's store
// queries and turns edits into change notifications.
package project

import (
	"sort"

	"planner-cli/internal/model"
)

// Observer receives change notifications after each mutation has been applied.
// *editor.Editor satisfies it.
type Observer interface {
	TaskInfoChanged(taskID int, key model.InfoKey)
	TaskDeleted(taskID int)
	GroupInfoChanged(groupID int, key model.InfoKey)
	GroupMembersChanged(groupID int)
	GroupDeleted(groupID int)
	CommentChanged(commentID int)
	ResourceChanged(resourceID int)
	AttachmentChanged(attachmentID int)
	HolidaysChanged()
}

// Scheduler is told which tasks need new dates. *schedule.Tracker satisfies it.
type Scheduler interface {
	MarkDirty(taskID int)
	UpdateSchedule()
}

// Project is not safe for concurrent use.
type Project struct {
	name string

	tasks     map[int]*model.Task
	taskGroup map[int]int

	groups   map[int]*model.Group
	parent   map[int]int
	children map[int][]model.EntityRef

	links map[[2]int]model.Link

	resources   map[int]string
	comments    map[int]model.Comment
	attachments map[int]model.Attachment
	holidays    []model.Holiday

	observers []Observer
	sched     Scheduler
}

// New validates doc and copies it. Ids must be positive and unique per kind, every
// task and group must be a member of exactly one group, and links, comments and
// attachments must refer to existing tasks.
func New(doc model.Project) (*Project, error) {
	p := &Project{
		name:        doc.Name,
		tasks:       map[int]*model.Task{},
		taskGroup:   map[int]int{},
		groups:      map[int]*model.Group{},
		parent:      map[int]int{},
		children:    map[int][]model.EntityRef{},
		links:       map[[2]int]model.Link{},
		resources:   map[int]string{},
		comments:    map[int]model.Comment{},
		attachments: map[int]model.Attachment{},
		holidays:    append([]model.Holiday(nil), doc.Holidays...),
	}

	for i := range doc.Tasks {
		t := doc.Tasks[i]
		if t.ID <= 0 {
			return nil, invalidf("task id %d must be positive", t.ID)
		}
		if _, dup := p.tasks[t.ID]; dup {
			return nil, invalidf("duplicate task id %d", t.ID)
		}
		t.Resources = append([]int(nil), t.Resources...)
		p.tasks[t.ID] = &t
	}
	for i := range doc.Groups {
		g := doc.Groups[i]
		if g.ID <= 0 {
			return nil, invalidf("group id %d must be positive", g.ID)
		}
		if _, dup := p.groups[g.ID]; dup {
			return nil, invalidf("duplicate group id %d", g.ID)
		}
		g.Members = nil
		p.groups[g.ID] = &g
	}

	placed := map[model.EntityRef]bool{}
	place := func(group int, members []model.Member) error {
		for _, m := range members {
			if (m.Task == 0) == (m.Group == 0) {
				return invalidf("member of group %d must name exactly one task or group", group)
			}
			ref := m.Ref()
			if placed[ref] {
				return invalidf("%s %d is a member of more than one group", ref.Kind, ref.ID)
			}
			switch ref.Kind {
			case model.KindTask:
				if _, ok := p.tasks[ref.ID]; !ok {
					return invalidf("group %d lists unknown task %d", group, ref.ID)
				}
				p.taskGroup[ref.ID] = group
			case model.KindGroup:
				if _, ok := p.groups[ref.ID]; !ok {
					return invalidf("group %d lists unknown group %d", group, ref.ID)
				}
				p.parent[ref.ID] = group
			}
			placed[ref] = true
			p.children[group] = append(p.children[group], ref)
		}
		return nil
	}
	if err := place(model.RootGroupID, doc.Members); err != nil {
		return nil, err
	}
	for _, g := range doc.Groups {
		if err := place(g.ID, g.Members); err != nil {
			return nil, err
		}
	}
	// Tasks nobody lists belong to the root.
	for _, id := range p.TaskIDs() {
		if !placed[model.TaskRef(id)] {
			p.taskGroup[id] = model.RootGroupID
			p.children[model.RootGroupID] = append(p.children[model.RootGroupID], model.TaskRef(id))
		}
	}
	for _, id := range p.GroupIDs() {
		if !placed[model.GroupRef(id)] {
			return nil, invalidf("group %d is not a member of any group", id)
		}
	}
	reached := 0
	walk(p.Children, model.RootGroupID, func(ref model.EntityRef) {
		if ref.Kind == model.KindGroup {
			reached++
		}
	})
	if reached != len(p.groups) {
		return nil, invalidf("group membership contains a cycle")
	}

	for _, r := range doc.Resources {
		p.resources[r.ID] = r.Name
	}
	for _, t := range p.tasks {
		for _, r := range t.Resources {
			if _, ok := p.resources[r]; !ok {
				return nil, invalidf("task %d uses unknown resource %d", t.ID, r)
			}
		}
	}
	for _, l := range doc.Links {
		if err := p.checkLink(l); err != nil {
			return nil, err
		}
		if l.Type == "" {
			l.Type = model.LinkFinishToStart
		}
		p.links[[2]int{l.Predecessor, l.Successor}] = l
	}
	for _, c := range doc.Comments {
		if _, ok := p.tasks[c.Task]; !ok {
			return nil, invalidf("comment %d refers to unknown task %d", c.ID, c.Task)
		}
		if _, dup := p.comments[c.ID]; dup {
			return nil, invalidf("duplicate comment id %d", c.ID)
		}
		c.Mentions = append([]int(nil), c.Mentions...)
		p.comments[c.ID] = c
	}
	for _, a := range doc.Attachments {
		if _, ok := p.tasks[a.Task]; !ok {
			return nil, invalidf("attachment %d refers to unknown task %d", a.ID, a.Task)
		}
		if _, dup := p.attachments[a.ID]; dup {
			return nil, invalidf("duplicate attachment id %d", a.ID)
		}
		p.attachments[a.ID] = a
	}
	return p, nil
}

func (p *Project) checkLink(l model.Link) error {
	if _, ok := p.tasks[l.Predecessor]; !ok {
		return invalidf("link refers to unknown task %d", l.Predecessor)
	}
	if _, ok := p.tasks[l.Successor]; !ok {
		return invalidf("link refers to unknown task %d", l.Successor)
	}
	if l.Predecessor == l.Successor {
		return invalidf("task %d cannot be linked to itself", l.Predecessor)
	}
	switch l.Type {
	case "", model.LinkFinishToStart, model.LinkFinishToFinish, model.LinkStartToFinish, model.LinkStartToStart:
		return nil
	default:
		return invalidf("unknown link type %q", l.Type)
	}
}

// walk visits the members below root in pre-order.
func walk(children func(int) []model.EntityRef, root int, visit func(model.EntityRef)) {
	for _, ref := range children(root) {
		visit(ref)
		if ref.Kind == model.KindGroup {
			walk(children, ref.ID, visit)
		}
	}
}

func (p *Project) Name() string { return p.name }

// Observe registers o. Observers run in registration order.
func (p *Project) Observe(o Observer) {
	p.observers = append(p.observers, o)
}

func (p *Project) SetScheduler(s Scheduler) { p.sched = s }

// Document returns a copy of the project in its on-disk shape, ordered by id.
func (p *Project) Document() model.Project {
	doc := model.Project{Name: p.name}
	for _, ref := range p.children[model.RootGroupID] {
		doc.Members = append(doc.Members, model.MemberOf(ref))
	}
	for _, id := range p.TaskIDs() {
		t := *p.tasks[id]
		t.Resources = append([]int(nil), t.Resources...)
		doc.Tasks = append(doc.Tasks, t)
	}
	for _, id := range p.GroupIDs() {
		g := *p.groups[id]
		g.Members = nil
		for _, ref := range p.children[id] {
			g.Members = append(g.Members, model.MemberOf(ref))
		}
		doc.Groups = append(doc.Groups, g)
	}
	keys := make([][2]int, 0, len(p.links))
	for k := range p.links {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	for _, k := range keys {
		doc.Links = append(doc.Links, p.links[k])
	}
	for _, id := range sortedIDs(p.resources) {
		doc.Resources = append(doc.Resources, model.Resource{ID: id, Name: p.resources[id]})
	}
	for _, id := range sortedIDs(p.comments) {
		doc.Comments = append(doc.Comments, p.comments[id])
	}
	for _, id := range sortedIDs(p.attachments) {
		doc.Attachments = append(doc.Attachments, p.attachments[id])
	}
	doc.Holidays = append(doc.Holidays, p.holidays...)
	return doc
}

func sortedIDs[V any](m map[int]V) []int {
	out := make([]int, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

func (p *Project) TaskIDs() []int  { return sortedIDs(p.tasks) }
func (p *Project) GroupIDs() []int { return sortedIDs(p.groups) }

func (p *Project) Holidays() []model.Holiday {
	return append([]model.Holiday(nil), p.holidays...)
}

// Resources returns the resource table ordered by id.
func (p *Project) Resources() []model.Resource {
	out := make([]model.Resource, 0, len(p.resources))
	for _, id := range sortedIDs(p.resources) {
		out = append(out, model.Resource{ID: id, Name: p.resources[id]})
	}
	return out
}
