package forms

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/flowstate/internal/model"
	"github.com/nhle/flowstate/internal/theme"
)

func TestValues_LabelList(t *testing.T) {
	assert.Equal(t, []string{"Design", "Q3"}, Values{Labels: " Design, ,Q3 "}.LabelList())
	assert.Equal(t, []string{}, Values{}.LabelList())
}

func TestValidators(t *testing.T) {
	assert.Error(t, validateRequired("Title")("  "))
	assert.NoError(t, validateRequired("Title")("x"))

	assert.NoError(t, validateOptionalDate(""))
	assert.NoError(t, validateOptionalDate("2026-05-04"))
	assert.Error(t, validateOptionalDate("04/05/2026"))
}

func TestStartCard_PriorityFromText(t *testing.T) {
	cases := []struct {
		name        string
		title       string
		description string
		chosen      model.Priority
		want        model.Priority
	}{
		{"auto high", "Checkout crash", "", "", model.PriorityHigh},
		{"auto from description", "Search", "enhance ranking", "", model.PriorityMedium},
		{"auto low", "Plan offsite", "", "", model.PriorityLow},
		{"explicit wins", "Checkout crash", "", model.PriorityLow, model.PriorityLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := New(theme.StylesFor(theme.Default()), 80, 24)
			m.StartCard("col-1", "")
			m.fb.Title = tc.title
			m.fb.Description = tc.description
			m.fb.Priority = tc.chosen

			got := m.submitted().Values
			assert.Equal(t, "col-1", got.ColumnID)
			assert.Equal(t, tc.want, got.Priority)
		})
	}
}

func TestStartCard_ShowsIdea(t *testing.T) {
	m := New(theme.StylesFor(theme.Default()), 100, 30)
	m.StartCard("col-1", "Add missing unit tests")

	require.True(t, m.Active())
	assert.Equal(t, KindCard, m.Kind())
	assert.Contains(t, m.View(), "Idea: Add missing unit tests")
}

func TestStartCardEdit_PrefillsValues(t *testing.T) {
	m := New(theme.StylesFor(theme.Default()), 80, 24)
	card := model.KanbanCard{
		ID: "card-1", Title: "Design new logo", Labels: []string{"Design", "Branding"},
		Priority: model.PriorityHigh, DueDate: "2024-08-15", AssigneeID: "user-2",
	}
	m.StartCardEdit("col-1", card, []model.User{{ID: "user-2", Name: "Bob"}})

	require.True(t, m.Active())
	assert.Equal(t, KindCardEdit, m.Kind())
	got := m.submitted().Values
	assert.Equal(t, "col-1", got.ColumnID)
	assert.Equal(t, "card-1", got.CardID)
	assert.Equal(t, []string{"Design", "Branding"}, got.LabelList())
	assert.Equal(t, model.PriorityHigh, got.Priority)
	assert.Contains(t, m.View(), "Edit Card")
}

func TestStartPage_UsesTemplateContent(t *testing.T) {
	m := New(theme.StylesFor(theme.Default()), 80, 24)
	templates := []model.PageTemplate{
		{ID: "blank", Name: "Blank", Content: ""},
		{ID: "meeting-notes", Name: "Meeting Notes", Content: "<h1>Meeting</h1>"},
	}
	m.StartPage(templates, nil)
	m.fb.Title = "  Standup "
	m.fb.TemplateID = "meeting-notes"

	got := m.submitted()
	assert.Equal(t, KindPage, got.Kind)
	assert.Equal(t, "Standup", got.Values.Title)
	assert.Equal(t, "<h1>Meeting</h1>", got.Values.Content)
}

func TestEscCancels(t *testing.T) {
	m := New(theme.StylesFor(theme.Default()), 80, 24)
	m.StartChat()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CancelledMsg{Kind: KindChat}, cmd())
	assert.False(t, m.Active())
}

func TestUpdateWithoutForm(t *testing.T) {
	m := New(theme.StylesFor(theme.Default()), 80, 24)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, m.View())
}
