package editor

import (
	"sort"
	"strings"

	"planner-cli/internal/model"
)

// Content is render-ready markup for one cell. IDs runs parallel to Fragments and
// holds the related entity id of each fragment, or model.InvalidID.
type Content struct {
	Fragments []string
	IDs       []int
}

type contentKey struct {
	ref  model.EntityRef
	attr Attribute
}

type fragment struct {
	text string
	id   int
}

type formatFunc func(c *ContentCache, ref model.EntityRef, f Format) ([]fragment, error)

type formatter struct {
	fn formatFunc
	// sorted marks multi-valued attributes ordered by displayed label.
	sorted bool
}

// ContentCache memoizes formatted cell content per entity and attribute. Entries
// live until dropped; a missing entry is recomputed on the next Get.
type ContentCache struct {
	tasks       TaskStore
	groups      GroupStore
	links       LinkStore
	resources   ResourceStore
	comments    CommentStore
	attachments AttachmentStore
	columns     *Columns
	rep         reporter

	formatters map[Attribute]formatter
	entries    map[contentKey]Content
}

func NewContentCache(d Deps, columns *Columns) *ContentCache {
	logger := d.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	return &ContentCache{
		tasks:       d.Tasks,
		groups:      d.Groups,
		links:       d.Links,
		resources:   d.Resources,
		comments:    d.Comments,
		attachments: d.Attachments,
		columns:     columns,
		rep:         reporter{log: logger},
		formatters:  defaultFormatters(),
		entries:     map[contentKey]Content{},
	}
}

func (c *ContentCache) Get(ref model.EntityRef, attr Attribute) Content {
	key := contentKey{ref: ref, attr: attr}
	if v, ok := c.entries[key]; ok {
		return v
	}
	v, err := c.compute(ref, attr)
	if err != nil {
		c.rep.report(err)
		return Content{}
	}
	c.entries[key] = v
	return v
}

func (c *ContentCache) has(ref model.EntityRef, attr Attribute) bool {
	_, ok := c.entries[contentKey{ref: ref, attr: attr}]
	return ok
}

func (c *ContentCache) Drop(ref model.EntityRef, attrs ...Attribute) {
	for _, a := range attrs {
		delete(c.entries, contentKey{ref: ref, attr: a})
	}
}

func (c *ContentCache) DropEntity(ref model.EntityRef) {
	for a := Attribute(0); a < numAttributes; a++ {
		delete(c.entries, contentKey{ref: ref, attr: a})
	}
}

func (c *ContentCache) DropAttribute(attr Attribute) {
	for k := range c.entries {
		if k.attr == attr {
			delete(c.entries, k)
		}
	}
}

func (c *ContentCache) Clear() {
	c.entries = map[contentKey]Content{}
}

func (c *ContentCache) Len() int { return len(c.entries) }

func (c *ContentCache) compute(ref model.EntityRef, attr Attribute) (Content, error) {
	fm, ok := c.formatters[attr]
	if !ok {
		return Content{}, errInvalidArgument("content", attr, "no formatter for attribute")
	}
	format := c.columns.Format(attr)
	if !attr.Supports(format) {
		return Content{}, errInvalidArgument("content", format, "display format not available for "+attr.Key())
	}
	if ref.Kind == model.KindGroup && attr != AttrTitle && attr != AttrCompletionStatus {
		return Content{}, nil
	}
	frags, err := fm.fn(c, ref, format)
	if err != nil {
		return Content{}, err
	}
	if fm.sorted {
		sort.SliceStable(frags, func(i, j int) bool { return frags[i].text < frags[j].text })
	}

	info := c.info(ref)
	out := Content{
		Fragments: make([]string, 0, len(frags)),
		IDs:       make([]int, 0, len(frags)),
	}
	for _, f := range frags {
		out.Fragments = append(out.Fragments, decorate(f.text, c.columns.Align(attr), info))
		out.IDs = append(out.IDs, f.id)
	}
	return out, nil
}

func (c *ContentCache) info(ref model.EntityRef) model.Info {
	if ref.Kind == model.KindGroup {
		return c.groups.GroupInfo(ref.ID)
	}
	return c.tasks.TaskInfo(ref.ID)
}

// decorate wraps text with the entity's color and style and the column alignment.
func decorate(text string, align Align, info model.Info) string {
	if color := strings.TrimSpace(info.Get(model.InfoTextColor)); color != "" {
		text = `<font color="` + color + `">` + text + `</font>`
	}
	switch info.Get(model.InfoTextStyle) {
	case model.StyleBold:
		text = "<b>" + text + "</b>"
	case model.StyleItalics:
		text = "<i>" + text + "</i>"
	case model.StyleBoldItalics:
		text = "<b><i>" + text + "</i></b>"
	}
	if align != AlignLeft {
		text = `<p align="` + string(align) + `">` + text + `</p>`
	}
	return text
}
