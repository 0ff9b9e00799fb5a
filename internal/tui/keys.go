package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Left      key.Binding
	Right     key.Binding
	First     key.Binding
	Last      key.Binding
	Toggle    key.Binding
	ExpandAll key.Binding
	EditTitle key.Binding
	Duration  key.Binding
	Status    key.Binding
	Comments  key.Binding
	Column    key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Save      key.Binding
	Help      key.Binding
	Quit      key.Binding
	Cancel    key.Binding
	Confirm   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "scroll left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "scroll right")),
		First:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first row")),
		Last:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last row")),
		Toggle:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand/collapse")),
		ExpandAll: key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "expand all")),
		EditTitle: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit title")),
		Duration:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "duration")),
		Status:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle status")),
		Comments:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comments")),
		Column:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle column")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "gantt zoom in")),
		ZoomOut:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "gantt zoom out")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.EditTitle, k.Comments, k.Save, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.First, k.Last},
		{k.Left, k.Right, k.Toggle, k.ExpandAll, k.Column},
		{k.EditTitle, k.Duration, k.Status, k.Comments},
		{k.ZoomIn, k.ZoomOut, k.Save, k.Help, k.Quit},
	}
}
