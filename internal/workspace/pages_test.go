package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/flowstate/internal/model"
)

func TestCreatePage_Root(t *testing.T) {
	w, rec := seeded(t)

	page, err := w.CreatePage("Retro", "<p>went well</p>", "")
	require.NoError(t, err)

	p := w.ActiveProject()
	require.Len(t, p.Pages, 3)
	assert.Equal(t, page.ID, p.Pages[2].ID)
	assert.Empty(t, page.ParentID)

	alex := w.CurrentUser()
	assert.Equal(t, 265, alex.XP)
	assert.Equal(t, 1, alex.Stats.PagesCreated)
	assert.True(t, alex.HasBadge("badge-3"))
	assert.Equal(t, []string{
		"+15 XP: New Page Created",
		"Badge Unlocked: First Steps",
		"Badge Unlocked: Doc Drafter",
	}, rec.messages())

	assert.Equal(t, model.NavigationTarget{View: model.ViewEditor, PageID: page.ID}, w.Navigation())
	audit := p.AuditLog[len(p.AuditLog)-1]
	assert.Equal(t, "Created Page", audit.Action)
	assert.Equal(t, "Retro", audit.Target)
	assertDerivedFields(t, w)
}

func TestCreatePage_NestedChildIsAppendedLast(t *testing.T) {
	w, _ := seeded(t)

	first, err := w.CreatePage("Deep one", "", "page-1-1")
	require.NoError(t, err)
	second, err := w.CreatePage("Deep two", "", "page-1-1")
	require.NoError(t, err)
	assert.Equal(t, "page-1-1", first.ParentID)

	spec, err := w.FindPage("page-1-1")
	require.NoError(t, err)
	require.Len(t, spec.Children, 2)
	assert.Equal(t, first.ID, spec.Children[0].ID)
	assert.Equal(t, second.ID, spec.Children[1].ID)

	root, err := w.FindPage("page-1")
	require.NoError(t, err)
	var ids []string
	root.Walk(func(p model.Page) { ids = append(ids, p.ID) })
	assert.Equal(t, []string{"page-1", "page-1-1", first.ID, second.ID, "page-1-2"}, ids)
}

func TestCreatePage_UnknownParentReportsError(t *testing.T) {
	w, rec := seeded(t)
	before := len(w.ActiveProject().AllPages())

	_, err := w.CreatePage("Lost", "", "page-404")
	require.ErrorIs(t, err, ErrNotFound)

	assert.Len(t, w.ActiveProject().AllPages(), before)
	assert.Equal(t, 250, w.CurrentUser().XP)
	assert.Empty(t, rec.messages())
}

func TestCreatePage_ParentMustBeInActiveProject(t *testing.T) {
	w, _ := seeded(t)
	_, err := w.CreatePage("Cross", "", "page-3")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePage_ViewerForbidden(t *testing.T) {
	w, _ := seededAs(t, "user-3")
	_, err := w.CreatePage("Mine", "", "")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Len(t, w.ActiveProject().Pages, 2)
}

func TestUpdatePageContent(t *testing.T) {
	w, _ := seeded(t)
	require.NoError(t, w.UpdatePageContent("page-2", "", "<p>new</p>"))

	p, err := w.FindPage("page-2")
	require.NoError(t, err)
	assert.Equal(t, "Meeting Notes", p.Title)
	assert.Equal(t, "<p>new</p>", p.Content)

	assert.ErrorIs(t, w.UpdatePageContent("page-404", "", ""), ErrNotFound)
}

func TestStickyNotes(t *testing.T) {
	w, _ := seeded(t)

	note, err := w.AddStickyNote("page-1-2", "check budget", model.Position{X: 10, Y: 20})
	require.NoError(t, err)
	assert.Equal(t, "user-1", note.AuthorID)

	content := "check budget twice"
	pos := model.Position{X: 30, Y: 40}
	require.NoError(t, w.UpdateStickyNote("page-1-2", note.ID, NoteUpdate{Content: &content}))
	require.NoError(t, w.UpdateStickyNote("page-1-2", note.ID, NoteUpdate{Position: &pos}))

	page, err := w.FindPage("page-1-2")
	require.NoError(t, err)
	require.Len(t, page.StickyNotes, 1)
	assert.Equal(t, content, page.StickyNotes[0].Content)
	assert.Equal(t, pos, page.StickyNotes[0].Position)

	assert.ErrorIs(t, w.UpdateStickyNote("page-1-2", "note-404", NoteUpdate{}), ErrNotFound)
	_, err = w.AddStickyNote("page-404", "x", model.Position{})
	assert.ErrorIs(t, err, ErrNotFound)
}
