package editor

import (
	"sort"

	"planner-cli/internal/model"
)

// Row is one visible line of the editor.
type Row struct {
	ID     int
	Kind   model.EntityKind
	Indent int
}

func (r Row) Ref() model.EntityRef { return model.EntityRef{ID: r.ID, Kind: r.Kind} }

// Projection flattens the group tree into visible rows, descending only into
// expanded groups. Row indices are stale after a membership or expansion change
// until Rebuild runs.
type Projection struct {
	groups   GroupStore
	expanded map[int]bool

	ids     []int
	kinds   []model.EntityKind
	indents []int
	index   map[model.EntityRef]int
}

func NewProjection(groups GroupStore) *Projection {
	return &Projection{
		groups:   groups,
		expanded: map[int]bool{model.RootGroupID: true},
		index:    map[model.EntityRef]int{},
	}
}

func (p *Projection) Rebuild() {
	p.ids = p.ids[:0]
	p.kinds = p.kinds[:0]
	p.indents = p.indents[:0]
	p.index = map[model.EntityRef]int{}
	Walk(p.groups.Children, model.RootGroupID, PreOrder, func(ref model.EntityRef, depth int) bool {
		p.index[ref] = len(p.ids)
		p.ids = append(p.ids, ref.ID)
		p.kinds = append(p.kinds, ref.Kind)
		p.indents = append(p.indents, depth)
		return ref.Kind == model.KindGroup && p.expanded[ref.ID]
	})
}

func (p *Projection) Len() int { return len(p.ids) }

func (p *Projection) Row(i int) (Row, bool) {
	if i < 0 || i >= len(p.ids) {
		return Row{}, false
	}
	return Row{ID: p.ids[i], Kind: p.kinds[i], Indent: p.indents[i]}, true
}

// Rows returns a copy of the current rows.
func (p *Projection) Rows() []Row {
	out := make([]Row, len(p.ids))
	for i := range p.ids {
		out[i] = Row{ID: p.ids[i], Kind: p.kinds[i], Indent: p.indents[i]}
	}
	return out
}

// IndexOf returns the row index of ref, or -1 when it is not visible.
func (p *Projection) IndexOf(ref model.EntityRef) int {
	if i, ok := p.index[ref]; ok {
		return i
	}
	return -1
}

func (p *Projection) IsExpanded(groupID int) bool { return p.expanded[groupID] }

func (p *Projection) Expand(groupID int) error {
	if p.expanded[groupID] {
		return errInvariant("expand", groupID, "group is already expanded")
	}
	p.expanded[groupID] = true
	return nil
}

func (p *Projection) Collapse(groupID int) error {
	if groupID == model.RootGroupID {
		return errInvalidArgument("collapse", groupID, "the root group cannot be collapsed")
	}
	if !p.expanded[groupID] {
		return errInvariant("collapse", groupID, "group is already collapsed")
	}
	delete(p.expanded, groupID)
	return nil
}

// Forget removes a deleted group from the expanded set.
func (p *Projection) Forget(groupID int) {
	if groupID == model.RootGroupID {
		return
	}
	delete(p.expanded, groupID)
}

// ExpandedIDs returns the expanded group ids in ascending order, root included.
func (p *Projection) ExpandedIDs() []int {
	out := make([]int, 0, len(p.expanded))
	for id := range p.expanded {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

func (p *Projection) SetExpanded(ids []int) {
	p.expanded = map[int]bool{model.RootGroupID: true}
	for _, id := range ids {
		p.expanded[id] = true
	}
}
