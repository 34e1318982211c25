package search

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/flowstate/internal/model"
	"github.com/nhle/flowstate/internal/theme"
)

func fakeSearch(query string) []model.SearchResult {
	all := []model.SearchResult{
		{ID: "page-1", Kind: model.SearchResultPage, Title: "Project Phoenix Overview", Context: "Phoenix",
			Target: model.NavigationTarget{View: model.ViewEditor, PageID: "page-1"}},
		{ID: "card-1", Kind: model.SearchResultTask, Title: "Design new logo", Context: "Phoenix / To Do",
			Target: model.NavigationTarget{View: model.ViewKanban, CardID: "card-1"}},
	}
	var out []model.SearchResult
	for _, r := range all {
		if strings.Contains(strings.ToLower(r.Title), strings.ToLower(query)) {
			out = append(out, r)
		}
	}
	return out
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func newPalette() Model {
	m := New(fakeSearch, theme.StylesFor(theme.Default()), 80, 24)
	m.Focus()
	return m
}

func TestPalette_FiltersAsYouType(t *testing.T) {
	m := typeText(newPalette(), "o")
	assert.Len(t, m.Results(), 2)

	m = typeText(m, "ver")
	require.Len(t, m.Results(), 1)
	assert.Equal(t, "page-1", m.Results()[0].ID)
	assert.Contains(t, m.View(), "Project Phoenix Overview")
}

func TestPalette_SelectEmitsTarget(t *testing.T) {
	m := typeText(newPalette(), "o")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(SelectedMsg)
	require.True(t, ok)
	assert.Equal(t, model.ViewKanban, msg.Result.Target.View)
	assert.Empty(t, m.Results())
}

func TestPalette_NoResults(t *testing.T) {
	m := typeText(newPalette(), "zzz")
	assert.Empty(t, m.Results())
	assert.Contains(t, m.View(), "No results")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestPalette_EscCloses(t *testing.T) {
	m := typeText(newPalette(), "o")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, ClosedMsg{}, cmd())
	assert.Empty(t, m.Results())
}
