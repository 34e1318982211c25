package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down  key.Binding
	Up    key.Binding
	Left  key.Binding
	Right key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back   key.Binding
	Quit   key.Binding
	Logout key.Binding

	// Views
	Dashboard   key.Binding
	Editor      key.Binding
	Kanban      key.Binding
	Leaderboard key.Binding
	Admin       key.Binding
	NextProject key.Binding

	// Search palette
	Search key.Binding

	// Help toggle
	Help key.Binding

	// Toasts
	Dismiss key.Binding

	// Content actions
	New       key.Binding
	Edit      key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	React     key.Binding
	Note      key.Binding
	Summarize key.Binding
	Export    key.Binding

	// Collaboration
	Chat     key.Binding
	MarkRead key.Binding
	Role     key.Binding

	// Preferences
	Theme key.Binding
	Sound key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev column"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next column"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "log out"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "dashboard"),
		),
		Editor: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "pages"),
		),
		Kanban: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "board"),
		),
		Leaderboard: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "leaderboard"),
		),
		Admin: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "admin"),
		),
		NextProject: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next project"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dismiss toast"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("<", "H"),
			key.WithHelp("</H", "move card left"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys(">", "L"),
			key.WithHelp(">/L", "move card right"),
		),
		React: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "react 👍"),
		),
		Note: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sticky note"),
		),
		Summarize: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "summarize page"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export markdown"),
		),
		Chat: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "chat"),
		),
		MarkRead: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark mentions read"),
		),
		Role: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "cycle role"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next theme"),
		),
		Sound: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "toggle sound"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help, k.Search,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Select, k.Back},
		{k.Dashboard, k.Editor, k.Kanban, k.Leaderboard, k.Admin, k.NextProject},
		{k.New, k.Edit, k.MoveLeft, k.MoveRight, k.React, k.Note},
		{k.Summarize, k.Export, k.Chat, k.MarkRead, k.Role},
		{k.Search, k.Help, k.Dismiss, k.Theme, k.Sound, k.Logout, k.Quit},
	}
}
