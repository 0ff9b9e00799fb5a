package publish

import (
	"bytes"
	"strings"

	"planner-cli/internal/model"
	"planner-cli/internal/project"
)

type RenderOptions struct {
	IncludeComments bool
}

// RenderProjectMarkdown writes the outline of p as a nested markdown list,
// one line per task with its scheduled dates.
func RenderProjectMarkdown(p *project.Project, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	name := strings.TrimSpace(p.Name())
	if name == "" {
		name = "Project"
	}
	writeLn("# " + name)
	writeLn("")

	var walk func(group, depth int)
	walk = func(group, depth int) {
		indent := strings.Repeat("  ", depth)
		for _, ref := range p.Children(group) {
			if ref.Kind == model.KindGroup {
				writeLn(indent + "- **" + strings.TrimSpace(p.GroupInfo(ref.ID).Get(model.InfoTitle)) + "**")
				walk(ref.ID, depth+1)
				continue
			}
			writeLn(indent + "- " + taskLine(p, ref.ID))
		}
	}
	walk(model.RootGroupID, 0)

	if hs := p.Holidays(); len(hs) > 0 {
		writeLn("")
		writeLn("## Holidays")
		writeLn("")
		for _, h := range hs {
			writeLn("- " + h.Date + " " + strings.TrimSpace(h.Name))
		}
	}

	if opt.IncludeComments {
		writeComments(p, writeLn)
	}
	return buf.String()
}

func taskLabel(p *project.Project, id int) string {
	info := p.TaskInfo(id)
	title := strings.TrimSpace(info.Get(model.InfoTitle))
	if ref := strings.TrimSpace(info.Get(model.InfoReference)); ref != "" {
		return "`" + ref + "` " + title
	}
	return title
}

func taskLine(p *project.Project, id int) string {
	info := p.TaskInfo(id)
	var parts []string

	start, finish := info.Get(model.InfoEarlyStart), info.Get(model.InfoEarlyFinish)
	switch {
	case info.Get(model.InfoIsMilestone) == model.Yes && start != "":
		parts = append(parts, "milestone on "+start)
	case start != "" && finish != "" && start != finish:
		parts = append(parts, start+" to "+finish)
	case start != "":
		parts = append(parts, start)
	}
	if v := strings.TrimSpace(info.Get(model.InfoDurationValue)); v != "" {
		units := strings.TrimSpace(info.Get(model.InfoDurationUnits))
		if units == "" {
			units = "wd"
		}
		parts = append(parts, v+" "+units)
	}
	if st := info.Get(model.InfoCompletionStatus); st != "" {
		parts = append(parts, st)
	}

	var names []string
	for _, rid := range p.TaskResourceIDs(id) {
		if n := p.ResourceName(rid); n != "" {
			names = append(names, n)
		}
	}
	if len(names) > 0 {
		parts = append(parts, "for "+strings.Join(names, ", "))
	}

	line := taskLabel(p, id)
	if len(parts) > 0 {
		line += ": " + strings.Join(parts, ", ")
	}
	return line
}

func writeComments(p *project.Project, writeLn func(string)) {
	header := false
	for _, tid := range p.TaskIDs() {
		for _, cid := range p.TaskCommentIDs(tid) {
			c, ok := p.Comment(cid)
			if !ok {
				continue
			}
			if !header {
				writeLn("")
				writeLn("## Comments")
				header = true
			}
			writeLn("")
			writeLn("### " + taskLabel(p, tid) + ": " + strings.TrimSpace(c.Title))
			writeLn("")
			var names []string
			for _, rid := range c.Mentions {
				if n := p.ResourceName(rid); n != "" {
					names = append(names, n)
				}
			}
			if len(names) > 0 {
				writeLn("*For: " + strings.Join(names, ", ") + "*")
				writeLn("")
			}
			body := strings.TrimSpace(c.Body)
			if body == "" {
				body = "(empty)"
			}
			writeLn(body)
		}
	}
}
