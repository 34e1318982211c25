package workspace

import (
	"strings"

	"github.com/nhle/flowstate/internal/gamify"
	"github.com/nhle/flowstate/internal/model"
)

// NoteUpdate holds the sticky-note fields to change; nil fields are kept.
type NoteUpdate struct {
	Content  *string
	Position *model.Position
}

// CreatePage adds a page to the active project, under parentID when it is
// set and at the root otherwise. The acting user earns XP and the view
// moves to the new page.
func (w *Workspace) CreatePage(title, content, parentID string) (model.Page, error) {
	var created model.Page
	err := w.apply("CreatePage", func() error {
		if err := w.requireWriter(); err != nil {
			return err
		}
		title = strings.TrimSpace(title)
		if title == "" {
			return invalid("page title is blank")
		}
		p := w.active()

		n := &pageNode{id: newID("page"), title: title, content: content, parentID: parentID}
		if parentID != "" {
			parent, ok := p.pages[parentID]
			if !ok {
				return notFound("parent page", parentID)
			}
			parent.children = append(parent.children, n.id)
		} else {
			p.roots = append(p.roots, n.id)
		}
		p.pages[n.id] = n

		w.current().Stats.PagesCreated++
		w.award(w.currentUserID, gamify.XPPageCreated, "New Page Created")
		w.nav = model.NavigationTarget{View: model.ViewEditor, PageID: n.id}
		w.audit("Created Page", title)

		created = p.page(n.id)
		return nil
	})
	return created, err
}

// UpdatePageContent replaces a page's title and content in the active
// project. An empty title keeps the current one.
func (w *Workspace) UpdatePageContent(pageID, title, content string) error {
	return w.apply("UpdatePageContent", func() error {
		if err := w.requireWriter(); err != nil {
			return err
		}
		n, ok := w.active().pages[pageID]
		if !ok {
			return notFound("page", pageID)
		}
		if t := strings.TrimSpace(title); t != "" {
			n.title = t
		}
		n.content = content
		return nil
	})
}

// AddStickyNote pins a note authored by the acting user onto a page of the
// active project.
func (w *Workspace) AddStickyNote(pageID, content string, pos model.Position) (model.StickyNote, error) {
	var note model.StickyNote
	err := w.apply("AddStickyNote", func() error {
		if err := w.requireWriter(); err != nil {
			return err
		}
		n, ok := w.active().pages[pageID]
		if !ok {
			return notFound("page", pageID)
		}
		note = model.StickyNote{ID: newID("note"), Content: content, AuthorID: w.currentUserID, Position: pos}
		n.notes = append(n.notes, note)
		return nil
	})
	return note, err
}

func (w *Workspace) UpdateStickyNote(pageID, noteID string, upd NoteUpdate) error {
	return w.apply("UpdateStickyNote", func() error {
		if err := w.requireWriter(); err != nil {
			return err
		}
		n, ok := w.active().pages[pageID]
		if !ok {
			return notFound("page", pageID)
		}
		for i := range n.notes {
			if n.notes[i].ID != noteID {
				continue
			}
			if upd.Content != nil {
				n.notes[i].Content = *upd.Content
			}
			if upd.Position != nil {
				n.notes[i].Position = *upd.Position
			}
			return nil
		}
		return notFound("sticky note", noteID)
	})
}

// FindPage returns the page with id from any project, with its subtree.
func (w *Workspace) FindPage(id string) (model.Page, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, pid := range w.projectOrder {
		p := w.projects[pid]
		if _, ok := p.pages[id]; ok {
			return p.page(id), nil
		}
	}
	return model.Page{}, notFound("page", id)
}
