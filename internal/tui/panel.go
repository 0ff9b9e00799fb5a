package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"planner-cli/internal/model"
)

// Border and padding of the comments panel, per axis.
const (
	panelFrameW = 4
	panelFrameH = 3
)

func (m *appModel) openComments(taskID int) {
	cs := TaskComments(m.s.Project, taskID)
	if len(cs) == 0 {
		m.setMessage("no comments")
		return
	}
	title := m.s.Project.TaskInfo(taskID).Get(model.InfoTitle)
	m.commentsTitle = fmt.Sprintf("%s (%d)", title, len(cs))
	m.resizeComments()
	style := MarkdownStyle(m.s.Painter.Renderer())
	m.comments.SetContent(RenderMarkdown(CommentsMarkdown(cs), m.comments.Width, style))
	m.comments.GotoTop()
	m.mode = modeComments
}

func (m *appModel) resizeComments() {
	m.comments.Width = max(m.width-panelFrameW, 10)
	m.comments.Height = max(m.tableLines()-panelFrameH, 1)
}

func (m *appModel) updateComments(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Cancel) || key.Matches(msg, m.keys.Quit) || key.Matches(msg, m.keys.Comments) {
		m.mode = modeTable
		return nil
	}
	var cmd tea.Cmd
	m.comments, cmd = m.comments.Update(msg)
	return cmd
}

func (m *appModel) commentsView() string {
	header := m.theme.title.Render(m.commentsTitle)
	body := lipgloss.JoinVertical(lipgloss.Left, header, m.comments.View())
	return m.theme.panel.Width(max(m.width-2, 1)).Render(body)
}
