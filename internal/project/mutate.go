package project

import (
	"strings"

	"planner-cli/internal/model"
)

func (p *Project) notify(fn func(Observer)) {
	for _, o := range p.observers {
		fn(o)
	}
}

// reschedule queues tasks for new dates and brings the schedule up to date.
func (p *Project) reschedule(ids ...int) {
	if p.sched == nil || len(ids) == 0 {
		return
	}
	for _, id := range ids {
		p.sched.MarkDirty(id)
	}
	p.sched.UpdateSchedule()
}

// ancestors lists the groups above a member, nearest first, excluding the root.
func (p *Project) ancestors(group int) []int {
	var out []int
	seen := map[int]bool{}
	for g := group; g != model.RootGroupID && !seen[g]; g = p.GroupParent(g) {
		seen[g] = true
		out = append(out, g)
	}
	return out
}

// completionChanged notifies groups that derive their completion from tasks.
func (p *Project) completionChanged(group int) {
	for _, g := range p.ancestors(group) {
		if p.groups[g].CompletionValue == "" {
			p.notify(func(o Observer) { o.GroupInfoChanged(g, model.InfoCompletionValue) })
		}
	}
}

func (p *Project) SetTaskInfo(id int, key model.InfoKey, value string) error {
	t, ok := p.tasks[id]
	if !ok {
		return NotFoundError{Kind: "task", ID: id}
	}
	if err := setTaskField(t, key, value); err != nil {
		return err
	}
	p.notify(func(o Observer) { o.TaskInfoChanged(id, key) })
	if key == model.InfoCompletionStatus {
		p.completionChanged(p.TaskGroup(id))
	}
	if scheduleKeys[key] {
		p.reschedule(id)
	}
	return nil
}

func (p *Project) SetGroupInfo(id int, key model.InfoKey, value string) error {
	g, ok := p.groups[id]
	if !ok {
		return NotFoundError{Kind: "group", ID: id}
	}
	if err := setGroupField(g, key, value); err != nil {
		return err
	}
	p.notify(func(o Observer) { o.GroupInfoChanged(id, key) })
	return nil
}

func (p *Project) checkGroup(id int) error {
	if id == model.RootGroupID {
		return nil
	}
	if _, ok := p.groups[id]; !ok {
		return NotFoundError{Kind: "group", ID: id}
	}
	return nil
}

func nextID[V any](m map[int]V) int {
	next := 1
	for id := range m {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

// AddTask appends t to group and returns its id. A zero t.ID is allocated.
func (p *Project) AddTask(group int, t model.Task) (int, error) {
	if err := p.checkGroup(group); err != nil {
		return 0, err
	}
	if t.ID == 0 {
		t.ID = nextID(p.tasks)
	}
	if t.ID < 0 {
		return 0, InvalidValueError{Key: "task id", Value: "negative", Reason: "ids must be positive"}
	}
	if _, dup := p.tasks[t.ID]; dup {
		return 0, InvalidValueError{Key: "task id", Value: strings.TrimSpace(t.Title), Reason: "id already in use"}
	}
	for _, r := range t.Resources {
		if _, ok := p.resources[r]; !ok {
			return 0, NotFoundError{Kind: "resource", ID: r}
		}
	}
	t.Resources = append([]int(nil), t.Resources...)
	p.tasks[t.ID] = &t
	p.taskGroup[t.ID] = group
	p.children[group] = append(p.children[group], model.TaskRef(t.ID))

	p.notify(func(o Observer) { o.GroupMembersChanged(group) })
	p.completionChanged(group)
	p.reschedule(t.ID)
	return t.ID, nil
}

func (p *Project) DeleteTask(id int) error {
	if _, ok := p.tasks[id]; !ok {
		return NotFoundError{Kind: "task", ID: id}
	}
	group := p.TaskGroup(id)
	succ := p.deleteTask(id)
	p.notify(func(o Observer) { o.GroupMembersChanged(group) })
	p.completionChanged(group)
	p.reschedule(succ...)
	return nil
}

// deleteTask removes a task with its links, comments and attachments and returns
// the former successors.
func (p *Project) deleteTask(id int) []int {
	group := p.TaskGroup(id)
	preds, succs := p.Predecessors(id), p.Successors(id)
	for _, pr := range preds {
		delete(p.links, [2]int{pr, id})
	}
	for _, s := range succs {
		delete(p.links, [2]int{id, s})
	}
	for cid, c := range p.comments {
		if c.Task == id {
			delete(p.comments, cid)
		}
	}
	for aid, a := range p.attachments {
		if a.Task == id {
			delete(p.attachments, aid)
		}
	}
	p.children[group] = without(p.children[group], model.TaskRef(id))
	delete(p.tasks, id)
	delete(p.taskGroup, id)

	p.notify(func(o Observer) { o.TaskDeleted(id) })
	for _, other := range append(preds, succs...) {
		p.notify(func(o Observer) { o.TaskInfoChanged(other, model.InfoLinkedTasks) })
	}
	return succs
}

func without(refs []model.EntityRef, ref model.EntityRef) []model.EntityRef {
	out := refs[:0]
	for _, r := range refs {
		if r != ref {
			out = append(out, r)
		}
	}
	return out
}

func (p *Project) AddGroup(parent int, g model.Group) (int, error) {
	if err := p.checkGroup(parent); err != nil {
		return 0, err
	}
	if g.ID == 0 {
		g.ID = nextID(p.groups)
	}
	if g.ID < 0 {
		return 0, InvalidValueError{Key: "group id", Value: "negative", Reason: "ids must be positive"}
	}
	if _, dup := p.groups[g.ID]; dup {
		return 0, InvalidValueError{Key: "group id", Value: strings.TrimSpace(g.Title), Reason: "id already in use"}
	}
	g.Members = nil
	p.groups[g.ID] = &g
	p.parent[g.ID] = parent
	p.children[parent] = append(p.children[parent], model.GroupRef(g.ID))
	p.notify(func(o Observer) { o.GroupMembersChanged(parent) })
	return g.ID, nil
}

// DeleteGroup removes a group together with everything it contains.
func (p *Project) DeleteGroup(id int) error {
	if id == model.RootGroupID {
		return InvalidValueError{Key: "group id", Value: "0", Reason: "the root group cannot be deleted"}
	}
	if _, ok := p.groups[id]; !ok {
		return NotFoundError{Kind: "group", ID: id}
	}
	parent := p.GroupParent(id)
	var tasks, doomed []int
	walk(p.Children, id, func(ref model.EntityRef) {
		if ref.Kind == model.KindTask {
			tasks = append(tasks, ref.ID)
		} else {
			doomed = append(doomed, ref.ID)
		}
	})
	var succs []int
	for _, tid := range tasks {
		succs = append(succs, p.deleteTask(tid)...)
	}
	for i := len(doomed) - 1; i >= 0; i-- {
		p.deleteGroup(doomed[i])
	}
	p.deleteGroup(id)
	p.notify(func(o Observer) { o.GroupMembersChanged(parent) })
	p.completionChanged(parent)

	var resched []int
	for _, s := range succs {
		if p.TaskExists(s) {
			resched = append(resched, s)
		}
	}
	p.reschedule(resched...)
	return nil
}

func (p *Project) deleteGroup(id int) {
	parent := p.GroupParent(id)
	p.children[parent] = without(p.children[parent], model.GroupRef(id))
	delete(p.groups, id)
	delete(p.parent, id)
	delete(p.children, id)
	p.notify(func(o Observer) { o.GroupDeleted(id) })
}

// MoveMember moves a task or group into group at index. An index past the end
// appends.
func (p *Project) MoveMember(ref model.EntityRef, group, index int) error {
	if err := p.checkGroup(group); err != nil {
		return err
	}
	var from int
	switch ref.Kind {
	case model.KindTask:
		if _, ok := p.tasks[ref.ID]; !ok {
			return NotFoundError{Kind: "task", ID: ref.ID}
		}
		from = p.TaskGroup(ref.ID)
	case model.KindGroup:
		if _, ok := p.groups[ref.ID]; !ok {
			return NotFoundError{Kind: "group", ID: ref.ID}
		}
		for _, a := range append([]int{group}, p.ancestors(group)...) {
			if a == ref.ID {
				return InvalidValueError{Key: "group", Value: p.groups[ref.ID].Title, Reason: "cannot move a group into itself"}
			}
		}
		from = p.GroupParent(ref.ID)
	}

	p.children[from] = without(p.children[from], ref)
	members := p.children[group]
	if index < 0 || index > len(members) {
		index = len(members)
	}
	members = append(members, model.EntityRef{})
	copy(members[index+1:], members[index:])
	members[index] = ref
	p.children[group] = members

	if ref.Kind == model.KindTask {
		p.taskGroup[ref.ID] = group
	} else {
		p.parent[ref.ID] = group
		p.notify(func(o Observer) { o.GroupInfoChanged(ref.ID, model.InfoParentGroupID) })
	}
	p.notify(func(o Observer) { o.GroupMembersChanged(from) })
	if group != from {
		p.notify(func(o Observer) { o.GroupMembersChanged(group) })
		p.completionChanged(from)
		p.completionChanged(group)
	}
	return nil
}

func (p *Project) AddLink(l model.Link) error {
	if err := p.checkLink(l); err != nil {
		return err
	}
	key := [2]int{l.Predecessor, l.Successor}
	if _, dup := p.links[key]; dup {
		return InvalidValueError{Key: "link", Value: string(l.Type), Reason: "tasks are already linked"}
	}
	if l.Type == "" {
		l.Type = model.LinkFinishToStart
	}
	p.links[key] = l
	p.linkChanged(l.Predecessor, l.Successor)
	return nil
}

func (p *Project) RemoveLink(pred, succ int) error {
	key := [2]int{pred, succ}
	if _, ok := p.links[key]; !ok {
		return NotFoundError{Kind: "link to task", ID: succ}
	}
	delete(p.links, key)
	p.linkChanged(pred, succ)
	return nil
}

func (p *Project) linkChanged(pred, succ int) {
	p.notify(func(o Observer) {
		o.TaskInfoChanged(pred, model.InfoLinkedTasks)
		o.TaskInfoChanged(succ, model.InfoLinkedTasks)
	})
	p.reschedule(succ)
}

// SetResourceName adds or renames a resource.
func (p *Project) SetResourceName(id int, name string) error {
	if id <= 0 {
		return InvalidValueError{Key: "resource id", Value: name, Reason: "ids must be positive"}
	}
	p.resources[id] = strings.TrimSpace(name)
	p.notify(func(o Observer) { o.ResourceChanged(id) })
	return nil
}

func (p *Project) AssignResources(taskID int, ids []int) error {
	t, ok := p.tasks[taskID]
	if !ok {
		return NotFoundError{Kind: "task", ID: taskID}
	}
	for _, r := range ids {
		if _, ok := p.resources[r]; !ok {
			return NotFoundError{Kind: "resource", ID: r}
		}
	}
	t.Resources = append([]int(nil), ids...)
	p.notify(func(o Observer) { o.TaskInfoChanged(taskID, model.InfoResources) })
	return nil
}

// PutComment adds c, or replaces the comment with the same id. A zero id is allocated.
func (p *Project) PutComment(c model.Comment) (int, error) {
	if _, ok := p.tasks[c.Task]; !ok {
		return 0, NotFoundError{Kind: "task", ID: c.Task}
	}
	if c.ID == 0 {
		c.ID = nextID(p.comments)
	}
	if old, ok := p.comments[c.ID]; ok && old.Task != c.Task {
		p.notify(func(o Observer) { o.TaskInfoChanged(old.Task, model.InfoComments) })
	}
	c.Mentions = append([]int(nil), c.Mentions...)
	p.comments[c.ID] = c
	p.notify(func(o Observer) { o.CommentChanged(c.ID) })
	return c.ID, nil
}

func (p *Project) DeleteComment(id int) error {
	c, ok := p.comments[id]
	if !ok {
		return NotFoundError{Kind: "comment", ID: id}
	}
	delete(p.comments, id)
	p.notify(func(o Observer) { o.TaskInfoChanged(c.Task, model.InfoComments) })
	return nil
}

// PutAttachment adds a, or replaces the attachment with the same id.
func (p *Project) PutAttachment(a model.Attachment) (int, error) {
	if _, ok := p.tasks[a.Task]; !ok {
		return 0, NotFoundError{Kind: "task", ID: a.Task}
	}
	if a.ID == 0 {
		a.ID = nextID(p.attachments)
	}
	if old, ok := p.attachments[a.ID]; ok && old.Task != a.Task {
		p.notify(func(o Observer) { o.TaskInfoChanged(old.Task, model.InfoAttachments) })
	}
	p.attachments[a.ID] = a
	p.notify(func(o Observer) { o.AttachmentChanged(a.ID) })
	return a.ID, nil
}

func (p *Project) DeleteAttachment(id int) error {
	a, ok := p.attachments[id]
	if !ok {
		return NotFoundError{Kind: "attachment", ID: id}
	}
	delete(p.attachments, id)
	p.notify(func(o Observer) { o.TaskInfoChanged(a.Task, model.InfoAttachments) })
	return nil
}

// SetHolidays replaces the holiday list and reschedules every task.
func (p *Project) SetHolidays(hs []model.Holiday) error {
	for _, h := range hs {
		if err := checkDate("holiday", h.Date); err != nil || h.Date == "" {
			return InvalidValueError{Key: "holiday", Value: h.Date, Reason: "expected yyyy-mm-dd"}
		}
	}
	p.holidays = append([]model.Holiday(nil), hs...)
	p.notify(func(o Observer) { o.HolidaysChanged() })
	p.reschedule(p.TaskIDs()...)
	return nil
}
