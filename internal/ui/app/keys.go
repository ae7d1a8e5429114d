package app

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyMap struct {
	// global
	Quit   key.Binding
	Help   key.Binding
	Undo   key.Binding
	Logout key.Binding

	// browse
	Up        key.Binding
	Down      key.Binding
	SectionUp key.Binding
	SectionDn key.Binding
	New       key.Binding
	Edit      key.Binding
	Search    key.Binding
	Trash     key.Binding

	// trash view
	Toggle    key.Binding
	SelectAll key.Binding
	Restore   key.Binding
	Purge     key.Binding

	// edit mode
	Save     key.Binding
	Title    key.Binding
	External key.Binding
	Back     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Undo: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "undo clear"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "log out"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		SectionUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "prev section"),
		),
		SectionDn: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "next section"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new note"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter", "edit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Trash: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "to trash"),
		),

		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
		Purge: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete forever"),
		),

		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save now"),
		),
		Title: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "edit title"),
		),
		External: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "$EDITOR"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Help,
		k.New,
		k.Edit,
		k.Search,
		k.Trash,
		k.Quit,
	}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.SectionUp, k.SectionDn},
		{k.New, k.Edit},
		{k.Search, k.Trash},
		{k.Undo, k.Logout},
		{k.Help, k.Quit},
	}
}

func (k KeyMap) EditShortHelp() []key.Binding {
	return []key.Binding{
		k.Back,
		k.Save,
		k.Title,
		k.External,
		k.Undo,
	}
}

func (k KeyMap) TrashShortHelp() []key.Binding {
	return []key.Binding{
		k.Toggle,
		k.SelectAll,
		k.Restore,
		k.Purge,
		k.Quit,
	}
}

type editKeyMap struct{ KeyMap }

func (k editKeyMap) ShortHelp() []key.Binding { return k.KeyMap.EditShortHelp() }

type trashKeyMap struct{ KeyMap }

func (k trashKeyMap) ShortHelp() []key.Binding { return k.KeyMap.TrashShortHelp() }
