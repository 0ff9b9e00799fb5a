package tui

import (
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"planner-cli/internal/model"
	"planner-cli/internal/project"
)

func TestTaskComments_ResolvesMentions(t *testing.T) {
	t.Parallel()

	doc := chain()
	doc.Resources = append(doc.Resources, model.Resource{ID: 8, Name: "Grace"})
	doc.Comments = append(doc.Comments, model.Comment{ID: 2, Task: 2, Title: "Ship it", Mentions: []int{8, 7}})
	p, err := project.New(doc)
	if err != nil {
		t.Fatalf("project.New: %v", err)
	}

	got := TaskComments(p, 2)
	want := []Comment{
		{ID: 1, Title: "Check dates", Body: "Needs review.", Mentions: []string{"Ada"}},
		{ID: 2, Title: "Ship it", Mentions: []string{"Grace", "Ada"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TaskComments = %#v", got)
	}
	if got := TaskComments(p, 1); len(got) != 0 {
		t.Fatalf("task without comments = %#v", got)
	}
}

func TestCommentsMarkdown(t *testing.T) {
	t.Parallel()

	got := CommentsMarkdown([]Comment{
		{ID: 1, Title: "Check dates", Body: "  Needs review.\n", Mentions: []string{"Ada", "Grace"}},
		{ID: 2, Title: "Ship it"},
	})
	want := "## Check dates\n\n*For: Ada, Grace*\n\nNeeds review.\n\n---\n\n## Ship it\n\n"
	if got != want {
		t.Fatalf("CommentsMarkdown = %q; want %q", got, want)
	}
}

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	if got := RenderMarkdown("  \n", 40, styles.NoTTYStyle); got != "" {
		t.Fatalf("blank markdown rendered as %q", got)
	}
	out := RenderMarkdown("## Heading\n\nSome *body* text.", 40, styles.NoTTYStyle)
	if !strings.Contains(out, "Heading") || !strings.Contains(out, "body") {
		t.Fatalf("rendered = %q", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Fatalf("rendered output keeps trailing newlines")
	}
}

func TestMarkdownStyle_AsciiOutputIsNoTTY(t *testing.T) {
	t.Parallel()

	r := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.Ascii))
	r.SetColorProfile(termenv.Ascii)
	if got := MarkdownStyle(r); got != styles.NoTTYStyle {
		t.Fatalf("MarkdownStyle = %q", got)
	}
}
