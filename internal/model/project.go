package model

// Position is a point in editor-local coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StickyNote is a free-text note pinned onto a page.
type StickyNote struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	AuthorID string   `json:"author_id"`
	Position Position `json:"position"`
}

// Page is a document in a project's page tree. Content is an opaque
// formatted-text (HTML) blob.
type Page struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	ParentID    string       `json:"parent_id,omitempty"`
	Children    []Page       `json:"children,omitempty"`
	StickyNotes []StickyNote `json:"sticky_notes,omitempty"`
}

// Walk calls fn for p and every descendant in depth-first order.
func (p Page) Walk(fn func(Page)) {
	fn(p)
	for _, c := range p.Children {
		c.Walk(fn)
	}
}

// Board is a project's kanban board.
type Board struct {
	Columns []KanbanColumn `json:"columns"`
}

// Project groups pages, a kanban board, chat and the audit trail.
type Project struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	IconURL     string          `json:"icon_url"`
	Pages       []Page          `json:"pages"`
	Kanban      Board           `json:"kanban"`
	MemberIDs   []string        `json:"member_ids"`
	ChatHistory []ChatMessage   `json:"chat_history"`
	AuditLog    []AuditLogEntry `json:"audit_log"`
}

// AllPages flattens the page tree depth-first.
func (p Project) AllPages() []Page {
	var out []Page
	for _, root := range p.Pages {
		root.Walk(func(pg Page) { out = append(out, pg) })
	}
	return out
}

// PageTemplate is a starting point offered when creating a page.
type PageTemplate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Content     string `json:"content"`
}
