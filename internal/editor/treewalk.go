package editor

import "planner-cli/internal/model"

type WalkOrder int

const (
	PreOrder WalkOrder = iota
	BreadthFirst
)

// Walk visits every entity below root. Depth of root's direct members is 0.
// Returning false from visit for a group skips that group's members.
func Walk(children func(groupID int) []model.EntityRef, root int, order WalkOrder, visit func(ref model.EntityRef, depth int) bool) {
	switch order {
	case BreadthFirst:
		type queued struct {
			ref   model.EntityRef
			depth int
		}
		var queue []queued
		for _, ref := range children(root) {
			queue = append(queue, queued{ref: ref})
		}
		for len(queue) > 0 {
			q := queue[0]
			queue = queue[1:]
			if !visit(q.ref, q.depth) || q.ref.Kind != model.KindGroup {
				continue
			}
			for _, ref := range children(q.ref.ID) {
				queue = append(queue, queued{ref: ref, depth: q.depth + 1})
			}
		}
	default:
		var walk func(groupID, depth int)
		walk = func(groupID, depth int) {
			for _, ref := range children(groupID) {
				if !visit(ref, depth) || ref.Kind != model.KindGroup {
					continue
				}
				walk(ref.ID, depth+1)
			}
		}
		walk(root, 0)
	}
}
