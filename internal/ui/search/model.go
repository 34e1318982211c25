package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/flowstate/internal/model"
	"github.com/nhle/flowstate/internal/theme"
)

// SelectedMsg is emitted when the user picks a result.
type SelectedMsg struct {
	Result model.SearchResult
}

// ClosedMsg is emitted when the palette is dismissed without a choice.
type ClosedMsg struct{}

// Func runs a query against the workspace.
type Func func(query string) []model.SearchResult

const maxResults = 10

// Model is the search palette.
type Model struct {
	input   textinput.Model
	search  Func
	results []model.SearchResult
	cursor  int
	styles  theme.Styles
	width   int
	height  int
}

// New creates a new search palette model.
func New(search Func, styles theme.Styles, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "search pages and tasks..."
	ti.Prompt = "/ "
	ti.Width = width - 6

	return Model{
		input:  ti,
		search: search,
		styles: styles,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.Reset()
			return m, func() tea.Msg { return ClosedMsg{} }
		case "enter":
			if m.cursor < len(m.results) {
				r := m.results[m.cursor]
				m.Reset()
				return m, func() tea.Msg { return SelectedMsg{Result: r} }
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		}
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != prev {
		m.refresh(q)
	}
	return m, cmd
}

func (m *Model) refresh(query string) {
	m.cursor = 0
	m.results = nil
	if strings.TrimSpace(query) == "" || m.search == nil {
		return
	}
	m.results = m.search(query)
	if len(m.results) > maxResults {
		m.results = m.results[:maxResults]
	}
}

// Results returns the current matches.
func (m Model) Results() []model.SearchResult {
	return m.results
}

// View renders the palette.
func (m Model) View() string {
	title := m.styles.Title.MarginBottom(1).Render("Search")
	lines := []string{title, m.input.View(), ""}

	switch {
	case m.input.Value() == "":
	case len(m.results) == 0:
		lines = append(lines, m.styles.Muted.Render("No results"))
	default:
		for i, r := range m.results {
			line := fmt.Sprintf("%-4s %s  %s", kindIcon(r.Kind), r.Title, m.styles.Muted.Render(r.Context))
			if i == m.cursor {
				lines = append(lines, m.styles.Selected.Render(line))
			} else {
				lines = append(lines, m.styles.Item.Render(line))
			}
		}
	}

	return m.styles.Panel.
		Width(max(m.width-4, 0)).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func kindIcon(k model.SearchResultKind) string {
	if k == model.SearchResultTask {
		return "[T]"
	}
	return "[P]"
}

// SetSize updates the palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// SetStyles applies a new theme.
func (m *Model) SetStyles(s theme.Styles) {
	m.styles = s
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Reset clears the query and results.
func (m *Model) Reset() {
	m.input.Reset()
	m.results = nil
	m.cursor = 0
}
