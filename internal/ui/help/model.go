// Package help renders the shortcut overlay: the keys that act on the
// current view first, then the ones that work everywhere.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/flowstate/internal/keys"
	"github.com/nhle/flowstate/internal/model"
	"github.com/nhle/flowstate/internal/theme"
)

var viewNames = map[model.View]string{
	model.ViewDashboard:   "Dashboard",
	model.ViewEditor:      "Pages",
	model.ViewKanban:      "Board",
	model.ViewLeaderboard: "Leaderboard",
	model.ViewAdmin:       "Admin",
}

// group adapts a set of binding columns to help.KeyMap.
type group [][]key.Binding

func (g group) ShortHelp() []key.Binding {
	var out []key.Binding
	for _, col := range g {
		out = append(out, col...)
	}
	return out
}

func (g group) FullHelp() [][]key.Binding { return g }

// Model is the help overlay.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	styles theme.Styles
	view   model.View
	width  int
	height int
}

func New(km *keys.KeyMap, styles theme.Styles, width, height int) Model {
	h := help.New()
	h.ShowAll = true
	m := Model{keys: km, help: h, styles: styles, view: model.ViewDashboard}
	m.SetSize(width, height)
	return m
}

// bindingsFor returns the keys that act on v.
func (m Model) bindingsFor(v model.View) group {
	k := m.keys
	switch v {
	case model.ViewDashboard:
		return group{{k.Up, k.Down, k.Select}, {k.New}}
	case model.ViewEditor:
		return group{{k.Up, k.Down, k.Select}, {k.New, k.Edit, k.Note}, {k.Summarize, k.Export}}
	case model.ViewKanban:
		return group{{k.Up, k.Down, k.Left, k.Right}, {k.New, k.Edit, k.MoveLeft, k.MoveRight, k.React}}
	case model.ViewLeaderboard:
		return group{{k.Up, k.Down}}
	case model.ViewAdmin:
		return group{{k.Up, k.Down}, {k.Role}}
	}
	return nil
}

func (m Model) globalBindings() group {
	k := m.keys
	return group{
		{k.Dashboard, k.Editor, k.Kanban, k.Leaderboard, k.Admin, k.NextProject},
		{k.Search, k.Chat, k.MarkRead, k.Dismiss},
		{k.Theme, k.Sound, k.Help, k.Back, k.Logout, k.Quit},
	}
}

func (m Model) View() string {
	name := viewNames[m.view]
	if name == "" {
		name = string(m.view)
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	if local := m.bindingsFor(m.view); len(local) > 0 {
		b.WriteString(m.styles.Accent.Render(name))
		b.WriteString("\n")
		b.WriteString(m.help.View(local))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.Accent.Render("Everywhere"))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.globalBindings()))

	return m.styles.Panel.
		Width(max(m.width-4, 0)).
		Render(lipgloss.NewStyle().MaxWidth(max(m.width-6, 0)).Render(b.String()))
}

// SetView picks whose bindings are listed first.
func (m *Model) SetView(v model.View) {
	m.view = v
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = max(width-6, 0)
}

// SetStyles applies a new theme.
func (m *Model) SetStyles(s theme.Styles) {
	m.styles = s
}
