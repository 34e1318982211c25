package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/flowstate/internal/model"
	"github.com/nhle/flowstate/internal/prefs"
	"github.com/nhle/flowstate/internal/theme"
	"github.com/nhle/flowstate/internal/ui/board"
	"github.com/nhle/flowstate/internal/ui/forms"
	"github.com/nhle/flowstate/internal/ui/search"
	"github.com/nhle/flowstate/internal/workspace"
	helpers "github.com/nhle/flowstate/tests/testutil"
)

func newModel(t *testing.T, data workspace.Data, store *prefs.Store) Model {
	t.Helper()
	s, err := NewSession(data, Deps{Clock: helpers.NewFakeClock(), Log: zerolog.Nop(), Prefs: store})
	require.NoError(t, err)
	t.Cleanup(s.Logout)

	m := New(s, prefs.Preferences{Theme: theme.Default()})
	m = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 45})
	return update(t, m, forms.SubmittedMsg{Kind: forms.KindLaunch, Values: forms.Values{Title: "Dana"}})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// press sends a key and feeds back any message the resulting command
// produces synchronously, except for the simulators' blocking waits.
func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	m = next.(Model)
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case board.MoveMsg, board.NewCardMsg, board.EditCardMsg, board.ReactMsg:
		return update(t, m, msg)
	}
	return m
}

func cardColumn(p model.Project, cardID string) string {
	for _, c := range p.Kanban.Columns {
		for _, card := range c.Cards {
			if card.ID == cardID {
				return c.ID
			}
		}
	}
	return ""
}

func TestModel_LaunchFlow(t *testing.T) {
	m := newModel(t, workspace.Seed(), nil)
	assert.True(t, m.session.Launched())
	assert.Equal(t, overlayNone, m.overlay)
	assert.Equal(t, "Dana", m.session.Workspace.CurrentUser().Name)

	view := m.View()
	assert.Contains(t, view, "Phoenix Initiative")
	assert.Contains(t, view, "Dana")
}

func TestModel_StartsOnLaunchForm(t *testing.T) {
	s, err := NewSession(workspace.Seed(), Deps{Clock: helpers.NewFakeClock(), Log: zerolog.Nop()})
	require.NoError(t, err)
	m := New(s, prefs.Preferences{Theme: theme.Default()})
	assert.Equal(t, overlayForm, m.overlay)
	assert.Equal(t, forms.KindLaunch, m.form.Kind())
	assert.False(t, s.Launched())

	m = update(t, m, forms.CancelledMsg{Kind: forms.KindLaunch})
	t.Cleanup(s.Logout)
	assert.True(t, s.Launched())
	assert.Equal(t, "Alex", s.Workspace.CurrentUser().Name)
}

func TestModel_LaunchedSessionSkipsForm(t *testing.T) {
	s, err := NewSession(workspace.Seed(), Deps{Clock: helpers.NewFakeClock(), Log: zerolog.Nop()})
	require.NoError(t, err)
	_, err = s.Launch("Dana Scully")
	require.NoError(t, err)
	t.Cleanup(s.Logout)

	m := New(s, prefs.Preferences{Theme: theme.Default()}).WithExportDir(t.TempDir())
	assert.Equal(t, overlayNone, m.overlay)
	assert.NotNil(t, m.initCmd)
}

func TestModel_NewCardFormSuggestsAndKeepsDraft(t *testing.T) {
	m := newModel(t, workspace.Seed(), nil)
	col := m.session.Workspace.ActiveProject().Kanban.Columns[0]

	m = update(t, m, board.NewCardMsg{ColumnID: col.ID})
	require.Equal(t, overlayForm, m.overlay)
	require.Equal(t, forms.KindCard, m.form.Kind())
	assert.Contains(t, m.View(), "Idea: ")

	m = update(t, m, forms.SubmittedMsg{Kind: forms.KindCard, Values: forms.Values{
		ColumnID:    col.ID,
		Title:       "Login page",
		Description: "crashes on submit",
		Priority:    model.PriorityHigh,
	}})
	cards := m.session.Workspace.ActiveProject().Kanban.Columns[0].Cards
	got := cards[len(cards)-1]
	assert.Equal(t, "Login page", got.Title)
	assert.Equal(t, "crashes on submit", got.Description)
	assert.Equal(t, model.PriorityHigh, got.Priority)
}

func TestModel_DismissToast(t *testing.T) {
	m := newModel(t, workspace.Seed(), nil)
	older := m.session.Toasts.Push(model.ToastInfo, "older", "")
	newest := m.session.Toasts.Push(model.ToastInfo, "newest", "")
	before := len(m.session.Toasts.List())

	m = press(t, m, "d")

	ids := []uint64{}
	for _, tt := range m.session.Toasts.List() {
		ids = append(ids, tt.ID)
	}
	assert.Len(t, ids, before-1)
	assert.NotContains(t, ids, newest.ID)
	assert.Contains(t, ids, older.ID)
	assert.NotContains(t, m.View(), "newest")
}

func TestModel_KanbanMoveViaKeys(t *testing.T) {
	m := newModel(t, workspace.Seed(), nil)
	m = press(t, m, "3")
	require.Equal(t, model.ViewKanban, m.session.Workspace.Navigation().View)

	m = press(t, m, ">")
	assert.Equal(t, "col-2", cardColumn(m.session.Workspace.ActiveProject(), "card-1"))
	assert.Contains(t, m.View(), "Setup project repository")
}

func TestModel_ViewerCannotOpenCreateForms(t *testing.T) {
	data := workspace.Seed()
	data.CurrentUserID = "user-3"
	m := newModel(t, data, nil)

	m = press(t, m, "n")
	assert.Equal(t, overlayNone, m.overlay)
	require.NotEmpty(t, m.session.Toasts.List())
	assert.Equal(t, "Viewers have read-only access.", m.session.Toasts.List()[0].Message)

	m = press(t, m, "3")
	m = press(t, m, ">")
	assert.Equal(t, "col-1", cardColumn(m.session.Workspace.ActiveProject(), "card-1"))
	assert.Contains(t, m.keyHints(), "Not allowed")
}

func TestModel_FormSubmissionsReachWorkspace(t *testing.T) {
	m := newModel(t, workspace.Seed(), nil)

	m = update(t, m, forms.SubmittedMsg{Kind: forms.KindProject, Values: forms.Values{Title: "Launch"}})
	p := m.session.Workspace.ActiveProject()
	assert.Equal(t, "Launch", p.Name)
	require.Len(t, p.Kanban.Columns, 3)

	m = update(t, m, forms.SubmittedMsg{Kind: forms.KindCard, Values: forms.Values{ColumnID: p.Kanban.Columns[0].ID, Title: "Write docs"}})
	p = m.session.Workspace.ActiveProject()
	require.Len(t, p.Kanban.Columns[0].Cards, 1)

	m = update(t, m, forms.SubmittedMsg{Kind: forms.KindChat, Values: forms.Values{Content: "hello @Sam"}})
	p = m.session.Workspace.ActiveProject()
	require.Len(t, p.ChatHistory, 1)
	assert.Equal(t, "hello @Sam", p.ChatHistory[0].Text)

	m = update(t, m, forms.SubmittedMsg{Kind: forms.KindProject, Values: forms.Values{Title: "  "}})
	assert.Contains(t, m.keyHints(), "Invalid")
}

func TestModel_SearchSelectionNavigates(t *testing.T) {
	m := newModel(t, workspace.Seed(), nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	assert.Equal(t, overlaySearch, m.overlay)

	target := model.NavigationTarget{View: model.ViewEditor, PageID: "page-1-1"}
	m = update(t, m, search.SelectedMsg{Result: model.SearchResult{Target: target}})
	assert.Equal(t, overlayNone, m.overlay)
	assert.Equal(t, target, m.session.Workspace.Navigation())

	page, ok := m.currentPage()
	require.True(t, ok)
	assert.Equal(t, "Technical Specification", page.Title)
	assert.Contains(t, m.View(), "TypeScript")
}

func TestModel_StaleSummaryDropped(t *testing.T) {
	m := newModel(t, workspace.Seed(), nil)
	m.session.Workspace.Navigate(model.NavigationTarget{View: model.ViewEditor, PageID: "page-1"})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("S")})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.summarizing)
	result := cmd()

	m = press(t, m, "1")
	m = update(t, m, result)
	assert.Empty(t, m.summary)
}

func TestModel_SummaryShown(t *testing.T) {
	m := newModel(t, workspace.Seed(), nil)
	m.session.Workspace.Navigate(model.NavigationTarget{View: model.ViewEditor, PageID: "page-1"})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("S")})
	m = update(t, next.(Model), cmd())
	assert.False(t, m.summarizing)
	assert.Contains(t, m.summary, "API Key not configured")
	assert.Contains(t, m.View(), "AI Summary")
}

func TestModel_AdminCyclesRole(t *testing.T) {
	m := newModel(t, workspace.Seed(), nil)
	m = press(t, m, "5")
	m = press(t, m, "j")
	m = press(t, m, "r")

	sam, err := m.session.Workspace.User("user-2")
	require.NoError(t, err)
	assert.Equal(t, model.RoleViewer, sam.Role)
	assert.Contains(t, m.View(), "Changed Role")
}

func TestModel_ThemeAndSoundPersist(t *testing.T) {
	store := helpers.NewTestPrefs(t)
	m := newModel(t, workspace.Seed(), store)

	m = press(t, m, "t")
	assert.Equal(t, "dark", m.prefs.Theme.ID)
	m = press(t, m, "o")
	assert.True(t, m.prefs.SoundEnabled)

	p, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dark", p.Theme.ID)
	assert.True(t, p.SoundEnabled)
}

func TestModel_LogoutReturnsToLaunchForm(t *testing.T) {
	m := newModel(t, workspace.Seed(), nil)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = next.(Model)
	assert.False(t, m.session.Launched())
	assert.Equal(t, overlayForm, m.overlay)
	assert.Equal(t, forms.KindLaunch, m.form.Kind())
}

func TestNextRole(t *testing.T) {
	assert.Equal(t, model.RoleAdmin, nextRole(model.RoleOwner))
	assert.Equal(t, model.RoleOwner, nextRole(model.RoleViewer))
}
