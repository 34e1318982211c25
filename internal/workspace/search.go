package workspace

import (
	"strings"

	"github.com/nhle/flowstate/internal/model"
)

// Search matches query case-insensitively against page titles and content
// and card titles and descriptions in every project. Pages come before
// cards within each project. An empty query matches nothing.
func (w *Workspace) Search(query string) []model.SearchResult {
	if query == "" {
		return nil
	}
	q := strings.ToLower(query)
	has := func(fields ...string) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []model.SearchResult
	for _, pid := range w.projectOrder {
		p := w.projects[pid]
		p.walk(func(n *pageNode) {
			if !has(n.title, n.content) {
				return
			}
			out = append(out, model.SearchResult{
				ID:      n.id,
				Kind:    model.SearchResultPage,
				Title:   n.title,
				Context: p.name,
				Target:  model.NavigationTarget{View: model.ViewEditor, PageID: n.id},
			})
		})
		for _, col := range p.columns {
			for _, c := range col.Cards {
				if !has(c.Title, c.Description) {
					continue
				}
				out = append(out, model.SearchResult{
					ID:      c.ID,
					Kind:    model.SearchResultTask,
					Title:   c.Title,
					Context: p.name + " / " + col.Title,
					Target:  model.NavigationTarget{View: model.ViewKanban, CardID: c.ID},
				})
			}
		}
	}
	return out
}
