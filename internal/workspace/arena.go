package workspace

import "github.com/nhle/flowstate/internal/model"

// pageNode is one page in a project's arena. Children are held as ids so a
// page is found by id without walking the tree.
type pageNode struct {
	id       string
	title    string
	content  string
	parentID string
	children []string
	notes    []model.StickyNote
}

type project struct {
	id      string
	name    string
	iconURL string

	roots []string
	pages map[string]*pageNode

	columns   []model.KanbanColumn
	memberIDs []string
	chat      []model.ChatMessage
	audit     []model.AuditLogEntry
}

// loadProject builds the arena for p. seen holds page ids already taken
// by other projects; a repeated id is rejected.
func loadProject(p model.Project, seen map[string]bool) (*project, error) {
	out := &project{
		id:        p.ID,
		name:      p.Name,
		iconURL:   p.IconURL,
		pages:     make(map[string]*pageNode),
		columns:   cloneColumns(p.Kanban.Columns),
		memberIDs: append([]string(nil), p.MemberIDs...),
		chat:      append([]model.ChatMessage(nil), p.ChatHistory...),
		audit:     append([]model.AuditLogEntry(nil), p.AuditLog...),
	}
	for _, pg := range p.Pages {
		id, err := out.load(pg, "", seen)
		if err != nil {
			return nil, err
		}
		out.roots = append(out.roots, id)
	}
	return out, nil
}

func (p *project) load(pg model.Page, parentID string, seen map[string]bool) (string, error) {
	if seen[pg.ID] {
		return "", invalid("duplicate page %q", pg.ID)
	}
	seen[pg.ID] = true
	n := p.insert(pg, parentID)
	for _, c := range pg.Children {
		id, err := p.load(c, n.id, seen)
		if err != nil {
			return "", err
		}
		n.children = append(n.children, id)
	}
	return n.id, nil
}

// insert adds a single node for pg under parentID. Children are linked by
// the caller.
func (p *project) insert(pg model.Page, parentID string) *pageNode {
	n := &pageNode{
		id:       pg.ID,
		title:    pg.Title,
		content:  pg.Content,
		parentID: parentID,
		notes:    append([]model.StickyNote(nil), pg.StickyNotes...),
	}
	p.pages[n.id] = n
	return n
}

// page rebuilds the nested snapshot rooted at id.
func (p *project) page(id string) model.Page {
	n := p.pages[id]
	out := model.Page{
		ID:          n.id,
		Title:       n.title,
		Content:     n.content,
		ParentID:    n.parentID,
		StickyNotes: append([]model.StickyNote(nil), n.notes...),
	}
	for _, c := range n.children {
		out.Children = append(out.Children, p.page(c))
	}
	return out
}

// walk visits page ids depth-first in tree order.
func (p *project) walk(fn func(*pageNode)) {
	var visit func(id string)
	visit = func(id string) {
		n := p.pages[id]
		fn(n)
		for _, c := range n.children {
			visit(c)
		}
	}
	for _, r := range p.roots {
		visit(r)
	}
}

func (p *project) column(id string) (*model.KanbanColumn, error) {
	for i := range p.columns {
		if p.columns[i].ID == id {
			return &p.columns[i], nil
		}
	}
	return nil, notFound("column", id)
}

func (p *project) card(columnID, cardID string) (*model.KanbanCard, error) {
	col, err := p.column(columnID)
	if err != nil {
		return nil, err
	}
	for i := range col.Cards {
		if col.Cards[i].ID == cardID {
			return &col.Cards[i], nil
		}
	}
	return nil, notFound("card", cardID)
}

func (p *project) snapshot() model.Project {
	out := model.Project{
		ID:          p.id,
		Name:        p.name,
		IconURL:     p.iconURL,
		Kanban:      model.Board{Columns: cloneColumns(p.columns)},
		MemberIDs:   append([]string(nil), p.memberIDs...),
		ChatHistory: append([]model.ChatMessage(nil), p.chat...),
		AuditLog:    append([]model.AuditLogEntry(nil), p.audit...),
	}
	for _, r := range p.roots {
		out.Pages = append(out.Pages, p.page(r))
	}
	return out
}

func cloneColumns(cols []model.KanbanColumn) []model.KanbanColumn {
	out := make([]model.KanbanColumn, len(cols))
	for i, c := range cols {
		out[i] = model.KanbanColumn{ID: c.ID, Title: c.Title, Cards: make([]model.KanbanCard, len(c.Cards))}
		for j, card := range c.Cards {
			out[i].Cards[j] = card.Clone()
		}
	}
	return out
}
