package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/flowstate/internal/keys"
	"github.com/nhle/flowstate/internal/model"
	"github.com/nhle/flowstate/internal/theme"
)

// DefaultReaction is the emoji toggled by the react key.
const DefaultReaction = "👍"

// MoveMsg asks to move a card to a neighbouring column.
type MoveMsg struct {
	CardID, FromColumnID, ToColumnID string
}

// NewCardMsg asks to add a card to a column.
type NewCardMsg struct {
	ColumnID string
}

// EditCardMsg asks to edit the selected card.
type EditCardMsg struct {
	ColumnID string
	Card     model.KanbanCard
}

// ReactMsg asks to toggle a reaction on a card.
type ReactMsg struct {
	ColumnID, CardID, Emoji string
}

// Model renders a kanban board and tracks the selected card.
type Model struct {
	keys     *keys.KeyMap
	styles   theme.Styles
	columns  []model.KanbanColumn
	names    map[string]string
	col, row int
	readOnly bool
	width    int
	height   int
}

// New creates an empty board view.
func New(km *keys.KeyMap, styles theme.Styles, width, height int) Model {
	return Model{keys: km, styles: styles, width: width, height: height, names: map[string]string{}}
}

// SetBoard replaces the rendered columns, keeping the cursor in range.
func (m *Model) SetBoard(b model.Board, users []model.User, readOnly bool) {
	m.columns = b.Columns
	m.readOnly = readOnly
	m.names = make(map[string]string, len(users))
	for _, u := range users {
		m.names[u.ID] = u.Name
	}
	m.clamp()
}

// Focus moves the cursor to the card with id, if present.
func (m *Model) Focus(cardID string) bool {
	for ci, c := range m.columns {
		for ri, card := range c.Cards {
			if card.ID == cardID {
				m.col, m.row = ci, ri
				return true
			}
		}
	}
	return false
}

// Selected returns the column and card under the cursor.
func (m Model) Selected() (model.KanbanColumn, model.KanbanCard, bool) {
	if m.col >= len(m.columns) {
		return model.KanbanColumn{}, model.KanbanCard{}, false
	}
	c := m.columns[m.col]
	if m.row >= len(c.Cards) {
		return c, model.KanbanCard{}, false
	}
	return c, c.Cards[m.row], true
}

func (m *Model) clamp() {
	m.col = min(m.col, max(len(m.columns)-1, 0))
	n := 0
	if m.col < len(m.columns) {
		n = len(m.columns[m.col].Cards)
	}
	m.row = min(m.row, max(n-1, 0))
}

// Update handles key presses for the board.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Left):
		if m.col > 0 {
			m.col--
			m.clamp()
		}
	case key.Matches(km, m.keys.Right):
		if m.col < len(m.columns)-1 {
			m.col++
			m.clamp()
		}
	case key.Matches(km, m.keys.Up):
		if m.row > 0 {
			m.row--
		}
	case key.Matches(km, m.keys.Down):
		m.row++
		m.clamp()
	case key.Matches(km, m.keys.MoveLeft):
		return m, m.move(-1)
	case key.Matches(km, m.keys.MoveRight):
		return m, m.move(1)
	case key.Matches(km, m.keys.New):
		if col, _, _ := m.Selected(); col.ID != "" {
			return m, func() tea.Msg { return NewCardMsg{ColumnID: col.ID} }
		}
	case key.Matches(km, m.keys.Edit), key.Matches(km, m.keys.Select):
		if col, card, ok := m.Selected(); ok {
			return m, func() tea.Msg { return EditCardMsg{ColumnID: col.ID, Card: card} }
		}
	case key.Matches(km, m.keys.React):
		if col, card, ok := m.Selected(); ok {
			return m, func() tea.Msg {
				return ReactMsg{ColumnID: col.ID, CardID: card.ID, Emoji: DefaultReaction}
			}
		}
	}
	return m, nil
}

func (m *Model) move(dir int) tea.Cmd {
	from, card, ok := m.Selected()
	to := m.col + dir
	if !ok || to < 0 || to >= len(m.columns) {
		return nil
	}
	msg := MoveMsg{CardID: card.ID, FromColumnID: from.ID, ToColumnID: m.columns[to].ID}
	if !m.readOnly {
		m.col = to
		m.row = len(m.columns[to].Cards)
	}
	return func() tea.Msg { return msg }
}

// View renders the columns side by side.
func (m Model) View() string {
	if len(m.columns) == 0 {
		return m.styles.Muted.Render("This board has no columns.")
	}

	colWidth := max(m.width/len(m.columns)-2, 16)
	rendered := make([]string, 0, len(m.columns))
	for ci, c := range m.columns {
		lines := []string{m.styles.Title.Render(fmt.Sprintf("%s (%d)", c.Title, len(c.Cards))), ""}
		for ri, card := range c.Cards {
			text := m.cardText(card, colWidth-4)
			if ci == m.col && ri == m.row {
				lines = append(lines, m.styles.Selected.Render(text))
			} else {
				lines = append(lines, m.styles.Item.Render(text))
			}
			lines = append(lines, "")
		}
		rendered = append(rendered, m.styles.Border.
			Width(colWidth).
			Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) cardText(c model.KanbanCard, width int) string {
	var b strings.Builder
	b.WriteString(truncate(c.Title, width))
	b.WriteString("\n")
	b.WriteString(theme.PriorityStyle(c.Priority).Render(string(c.Priority)))
	if c.DueDate != "" {
		b.WriteString(m.styles.Muted.Render(" · " + c.DueDate))
	}
	if name, ok := m.names[c.AssigneeID]; ok {
		b.WriteString("\n" + m.styles.Muted.Render("@"+name))
	}
	if len(c.Labels) > 0 {
		b.WriteString("\n" + m.styles.Accent.Render(truncate(strings.Join(c.Labels, " "), width)))
	}
	if len(c.Reactions) > 0 {
		var parts []string
		for _, r := range c.Reactions {
			parts = append(parts, fmt.Sprintf("%s %d", r.Emoji, len(r.UserIDs)))
		}
		b.WriteString("\n" + strings.Join(parts, "  "))
	}
	return b.String()
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

// SetSize updates the board dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetStyles applies a new theme.
func (m *Model) SetStyles(s theme.Styles) {
	m.styles = s
}
