package tui

import (
	"fmt"
	"strings"

	"planner-cli/internal/project"
)

// Comment is a task comment with its mentions resolved to resource names.
type Comment struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Body     string   `json:"body,omitempty"`
	Mentions []string `json:"mentions,omitempty"`
}

// TaskComments returns the comments of a task in display order.
func TaskComments(p *project.Project, taskID int) []Comment {
	var out []Comment
	for _, cid := range p.TaskCommentIDs(taskID) {
		c, ok := p.Comment(cid)
		if !ok {
			continue
		}
		names := make([]string, 0, len(c.Mentions))
		for _, rid := range c.Mentions {
			if n := p.ResourceName(rid); n != "" {
				names = append(names, n)
			}
		}
		out = append(out, Comment{ID: c.ID, Title: c.Title, Body: c.Body, Mentions: names})
	}
	return out
}

// CommentsMarkdown lays out comments as one markdown document, separated by
// horizontal rules.
func CommentsMarkdown(cs []Comment) string {
	var b strings.Builder
	for i, c := range cs {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		fmt.Fprintf(&b, "## %s\n\n", c.Title)
		if len(c.Mentions) > 0 {
			fmt.Fprintf(&b, "*For: %s*\n\n", strings.Join(c.Mentions, ", "))
		}
		if body := strings.TrimSpace(c.Body); body != "" {
			b.WriteString(body)
			b.WriteString("\n")
		}
	}
	return b.String()
}
