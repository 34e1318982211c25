package workspace

import (
	"fmt"
	"strings"

	"github.com/nhle/flowstate/internal/model"
)

// Default board for new projects.
var defaultColumns = []string{"To Do", "In Progress", "Done"}

// CreateProject adds a project with a welcome page and an empty default
// board, makes every user a member, activates it and navigates to the
// dashboard.
func (w *Workspace) CreateProject(name string) (model.Project, error) {
	var created model.Project
	err := w.apply("CreateProject", func() error {
		if err := w.requireWriter(); err != nil {
			return err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return invalid("project name is blank")
		}

		p := &project{
			id:        newID("proj"),
			name:      name,
			iconURL:   fmt.Sprintf("https://picsum.photos/seed/%s/40/40", slug(name)),
			pages:     make(map[string]*pageNode),
			memberIDs: append([]string(nil), w.userOrder...),
		}
		welcome := &pageNode{
			id:      newID("page"),
			title:   "Welcome to " + name,
			content: fmt.Sprintf("<h1>Welcome to your new project: %s</h1><p>This is your starting page. Feel free to edit it or create new ones.</p>", name),
		}
		p.pages[welcome.id] = welcome
		p.roots = []string{welcome.id}
		for _, title := range defaultColumns {
			p.columns = append(p.columns, model.KanbanColumn{ID: newID("col"), Title: title, Cards: []model.KanbanCard{}})
		}

		w.projects[p.id] = p
		w.projectOrder = append(w.projectOrder, p.id)
		w.activeProjectID = p.id
		w.nav = model.NavigationTarget{View: model.ViewDashboard}
		w.audit("Created Project", name)

		created = p.snapshot()
		return nil
	})
	return created, err
}

// SetActiveProject switches the active project and returns to the
// dashboard.
func (w *Workspace) SetActiveProject(id string) error {
	return w.apply("SetActiveProject", func() error {
		if _, ok := w.projects[id]; !ok {
			return notFound("project", id)
		}
		w.activeProjectID = id
		w.nav = model.NavigationTarget{View: model.ViewDashboard}
		return nil
	})
}

// Projects returns every project in creation order.
func (w *Workspace) Projects() []model.Project {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]model.Project, 0, len(w.projectOrder))
	for _, id := range w.projectOrder {
		out = append(out, w.projects[id].snapshot())
	}
	return out
}

func (w *Workspace) ActiveProject() model.Project {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.active().snapshot()
}

// Project returns the project with id.
func (w *Workspace) Project(id string) (model.Project, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.projects[id]
	if !ok {
		return model.Project{}, notFound("project", id)
	}
	return p.snapshot(), nil
}

func slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
