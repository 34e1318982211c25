package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/flowstate/internal/keys"
	"github.com/nhle/flowstate/internal/model"
	"github.com/nhle/flowstate/internal/prefs"
	appsync "github.com/nhle/flowstate/internal/sync"
	"github.com/nhle/flowstate/internal/theme"
	"github.com/nhle/flowstate/internal/ui"
	"github.com/nhle/flowstate/internal/ui/board"
	"github.com/nhle/flowstate/internal/ui/forms"
	helpview "github.com/nhle/flowstate/internal/ui/help"
	"github.com/nhle/flowstate/internal/ui/search"
	"github.com/nhle/flowstate/internal/workspace"
)

// refreshInterval paces redraws for toasts and presence cursors.
const refreshInterval = 250 * time.Millisecond

type tickMsg time.Time

// overlay is a panel drawn in place of the current view.
type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlaySearch
	overlayForm
)

// Model is the root Bubble Tea model. It routes keys to workspace
// commands and renders the navigation target the workspace reports.
type Model struct {
	session *Session
	keys    *keys.KeyMap
	layout  ui.Layout
	styles  theme.Styles
	prefs   prefs.Preferences

	overlay overlay
	help    helpview.Model
	search  search.Model
	form    forms.Model
	board   board.Model
	xpBar   progress.Model

	// cursors for list views
	projectCursor int
	pageCursor    int
	userCursor    int

	summary       string
	summaryPageID string
	summarizing   bool
	status        string
	exportDir     string

	initCmd tea.Cmd
	ready   bool
	width   int
	height  int
}

// New creates the root model for a session. p is the preferences loaded
// at startup. A session that is not launched yet opens on the launch form.
func New(s *Session, p prefs.Preferences) Model {
	km := keys.DefaultKeyMap()
	styles := theme.StylesFor(p.Theme)
	m := Model{
		session:   s,
		keys:      km,
		styles:    styles,
		prefs:     p,
		layout:    ui.NewLayout(80, 24, styles),
		help:      helpview.New(km, styles, 80, 24),
		search:    search.New(s.Workspace.Search, styles, 80, 24),
		form:      forms.New(styles, 80, 24),
		board:     board.New(km, styles, 80, 24),
		xpBar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		exportDir: ".",
	}
	if s.Launched() {
		m.initCmd = s.Chat.WaitForNext()
	} else {
		m.initCmd = m.startLaunch()
	}
	return m
}

// WithExportDir sets the directory page exports are written to.
func (m Model) WithExportDir(dir string) Model {
	if dir != "" {
		m.exportDir = dir
	}
	return m
}

// Init starts the launch form and the redraw ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initCmd, tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) startLaunch() tea.Cmd {
	m.overlay = overlayForm
	return m.form.StartLaunch()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout = ui.NewLayout(msg.Width, msg.Height, m.styles)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.help.SetSize(w, h)
		m.search.SetSize(w, h)
		m.form.SetSize(w, h)
		m.board.SetSize(w, h)
		m.xpBar.Width = min(40, w/2)
		m.syncEditor()
		return m.updateOverlay(msg)

	case tickMsg:
		return m, tick()

	case appsync.ChatPostedMsg:
		if !m.session.Launched() {
			return m, nil
		}
		return m, m.session.Chat.WaitForNext()

	case SummaryMsg:
		if m.session.Guard.Current(msg.Ticket) {
			m.session.Guard.Done(msg.Ticket)
			m.summary = msg.Text
			m.summaryPageID = msg.PageID
			m.summarizing = false
		}
		return m, nil

	case forms.SubmittedMsg:
		m.overlay = overlayNone
		return m, m.submit(msg)

	case forms.CancelledMsg:
		if msg.Kind == forms.KindLaunch {
			return m, m.launch("")
		}
		m.overlay = overlayNone
		return m, nil

	case search.SelectedMsg:
		m.overlay = overlayNone
		m.navigate(msg.Result.Target)
		return m, nil

	case search.ClosedMsg:
		m.overlay = overlayNone
		return m, nil

	case board.MoveMsg:
		m.report(m.session.Workspace.MoveKanbanCard(msg.CardID, msg.FromColumnID, msg.ToColumnID))
		m.syncBoard()
		return m, nil

	case board.NewCardMsg:
		if m.readOnlyBlocked() {
			return m, nil
		}
		m.overlay = overlayForm
		return m, m.form.StartCard(msg.ColumnID, m.session.Ideas.Suggest(m.session.Workspace.ActiveProject().Name))

	case board.EditCardMsg:
		if m.readOnlyBlocked() {
			return m, nil
		}
		m.overlay = overlayForm
		return m, m.form.StartCardEdit(msg.ColumnID, msg.Card, m.session.Workspace.Users())

	case board.ReactMsg:
		m.report(m.session.Workspace.AddReactionToCard(msg.ColumnID, msg.CardID, msg.Emoji))
		m.syncBoard()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.session.Logout()
			return m, tea.Quit
		}
		if m.overlay != overlayNone {
			return m.overlayKey(msg)
		}
		return m.handleKey(msg)
	}

	return m.updateOverlay(msg)
}

func (m Model) overlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.overlay == overlayHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) {
			m.overlay = overlayNone
		}
		return m, nil
	}
	return m.updateOverlay(msg)
}

// updateOverlay dispatches the message to the open overlay.
func (m Model) updateOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.overlay {
	case overlaySearch:
		m.search, cmd = m.search.Update(msg)
	case overlayForm:
		m.form, cmd = m.form.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ws := m.session.Workspace
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.session.Logout()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Logout):
		m.session.Logout()
		m.summary = ""
		return m, m.startLaunch()
	case key.Matches(msg, m.keys.Help):
		m.help.SetView(ws.Navigation().View)
		m.overlay = overlayHelp
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.overlay = overlaySearch
		m.search.Reset()
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Dashboard):
		m.navigate(model.NavigationTarget{View: model.ViewDashboard})
		return m, nil
	case key.Matches(msg, m.keys.Editor):
		m.navigate(model.NavigationTarget{View: model.ViewEditor, PageID: ws.Navigation().PageID})
		return m, nil
	case key.Matches(msg, m.keys.Kanban):
		m.navigate(model.NavigationTarget{View: model.ViewKanban})
		return m, nil
	case key.Matches(msg, m.keys.Leaderboard):
		m.navigate(model.NavigationTarget{View: model.ViewLeaderboard})
		return m, nil
	case key.Matches(msg, m.keys.Admin):
		m.navigate(model.NavigationTarget{View: model.ViewAdmin})
		return m, nil
	case key.Matches(msg, m.keys.NextProject):
		m.cycleProject()
		return m, nil
	case key.Matches(msg, m.keys.Chat):
		m.overlay = overlayForm
		return m, m.form.StartChat()
	case key.Matches(msg, m.keys.MarkRead):
		m.report(ws.MarkMentionsAsRead())
		return m, nil
	case key.Matches(msg, m.keys.Dismiss):
		if toasts := m.session.Toasts.List(); len(toasts) > 0 {
			m.session.Toasts.Remove(toasts[0].ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Sound):
		m.toggleSound()
		return m, nil
	}

	switch ws.Navigation().View {
	case model.ViewDashboard:
		return m.dashboardKey(msg)
	case model.ViewEditor:
		return m.editorKey(msg)
	case model.ViewKanban:
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(msg)
		return m, cmd
	case model.ViewAdmin:
		return m.adminKey(msg)
	case model.ViewLeaderboard:
		m.userCursor = moveCursor(msg, m.keys, m.userCursor, len(ws.Users()))
	}
	return m, nil
}

func (m Model) dashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ws := m.session.Workspace
	projects := ws.Projects()
	switch {
	case key.Matches(msg, m.keys.New):
		if m.readOnlyBlocked() {
			return m, nil
		}
		m.overlay = overlayForm
		return m, m.form.StartProject()
	case key.Matches(msg, m.keys.Select):
		if m.projectCursor < len(projects) {
			m.report(ws.SetActiveProject(projects[m.projectCursor].ID))
			m.syncEditor()
		}
	default:
		m.projectCursor = moveCursor(msg, m.keys, m.projectCursor, len(projects))
	}
	return m, nil
}

func (m Model) editorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ws := m.session.Workspace
	pages := ws.ActiveProject().AllPages()
	page, hasPage := m.currentPage()

	switch {
	case key.Matches(msg, m.keys.Select):
		if m.pageCursor < len(pages) {
			m.navigate(model.NavigationTarget{View: model.ViewEditor, PageID: pages[m.pageCursor].ID})
		}
	case key.Matches(msg, m.keys.New):
		if m.readOnlyBlocked() {
			return m, nil
		}
		m.overlay = overlayForm
		return m, m.form.StartPage(workspace.PageTemplates, pages)
	case key.Matches(msg, m.keys.Edit):
		if !hasPage || m.readOnlyBlocked() {
			return m, nil
		}
		m.overlay = overlayForm
		return m, m.form.StartPageEdit(page)
	case key.Matches(msg, m.keys.Note):
		if !hasPage || m.readOnlyBlocked() {
			return m, nil
		}
		m.overlay = overlayForm
		return m, m.form.StartNote(page.ID)
	case key.Matches(msg, m.keys.Summarize):
		if !hasPage {
			return m, nil
		}
		cmd, err := m.session.Summarize(page.ID)
		if m.report(err) {
			m.summarizing = true
			m.summary = ""
			m.summaryPageID = page.ID
		}
		return m, cmd
	case key.Matches(msg, m.keys.Export):
		if !hasPage {
			return m, nil
		}
		path, err := m.session.ExportPage(page.ID, m.exportDir)
		if m.report(err) {
			m.status = "Exported " + path
		}
	default:
		m.pageCursor = moveCursor(msg, m.keys, m.pageCursor, len(pages))
	}
	return m, nil
}

func (m Model) adminKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ws := m.session.Workspace
	users := ws.Users()
	if key.Matches(msg, m.keys.Role) && m.userCursor < len(users) {
		u := users[m.userCursor]
		m.report(ws.UpdateUserRole(u.ID, nextRole(u.Role)))
		return m, nil
	}
	m.userCursor = moveCursor(msg, m.keys, m.userCursor, len(users))
	return m, nil
}

func nextRole(r model.Role) model.Role {
	for i, known := range model.Roles {
		if known == r {
			return model.Roles[(i+1)%len(model.Roles)]
		}
	}
	return model.RoleViewer
}

func moveCursor(msg tea.KeyMsg, km *keys.KeyMap, cursor, n int) int {
	switch {
	case key.Matches(msg, km.Down):
		cursor++
	case key.Matches(msg, km.Up):
		cursor--
	}
	return max(min(cursor, n-1), 0)
}

// submit runs the workspace command a completed form feeds.
func (m *Model) submit(msg forms.SubmittedMsg) tea.Cmd {
	ws := m.session.Workspace
	v := msg.Values

	switch msg.Kind {
	case forms.KindLaunch:
		return m.launch(v.Title)
	case forms.KindProject:
		_, err := ws.CreateProject(v.Title)
		m.report(err)
		m.syncEditor()
	case forms.KindPage:
		_, err := ws.CreatePage(v.Title, v.Content, v.ParentID)
		m.report(err)
		m.syncEditor()
	case forms.KindPageEdit:
		m.report(ws.UpdatePageContent(v.PageID, v.Title, v.Content))
		m.syncEditor()
	case forms.KindCard:
		_, err := ws.AddKanbanCardDraft(v.ColumnID, workspace.CardDraft{
			Title:       v.Title,
			Description: v.Description,
			Priority:    v.Priority,
		})
		m.report(err)
	case forms.KindCardEdit:
		priority := v.Priority
		m.report(ws.UpdateKanbanCard(v.ColumnID, v.CardID, workspace.CardUpdate{
			Title:       &v.Title,
			Description: &v.Description,
			AssigneeID:  &v.AssigneeID,
			Labels:      v.LabelList(),
			Priority:    &priority,
			DueDate:     &v.DueDate,
			IssueURL:    &v.IssueURL,
		}))
	case forms.KindNote:
		_, err := ws.AddStickyNote(v.PageID, v.Content, model.Position{X: 0, Y: 0})
		m.report(err)
	case forms.KindChat:
		_, err := ws.AddChatMessage(v.Content)
		m.report(err)
	}
	m.syncBoard()
	return nil
}

func (m *Model) launch(name string) tea.Cmd {
	m.overlay = overlayNone
	cmd, err := m.session.Launch(name)
	if !m.report(err) {
		return m.startLaunch()
	}
	m.syncBoard()
	m.syncEditor()
	return cmd
}

// navigate moves the workspace to target and refreshes the views that
// depend on it.
func (m *Model) navigate(target model.NavigationTarget) {
	ws := m.session.Workspace
	ws.Navigate(target)
	if m.summaryPageID != target.PageID {
		m.session.Guard.Cancel()
		m.summary = ""
		m.summarizing = false
	}
	m.syncBoard()
	if target.CardID != "" {
		m.board.Focus(target.CardID)
	}
	m.syncEditor()
}

func (m *Model) cycleProject() {
	ws := m.session.Workspace
	projects := ws.Projects()
	active := ws.ActiveProject().ID
	for i, p := range projects {
		if p.ID == active {
			next := projects[(i+1)%len(projects)]
			m.report(ws.SetActiveProject(next.ID))
			break
		}
	}
	m.syncBoard()
	m.syncEditor()
}

func (m *Model) cycleTheme() {
	themes := m.prefs.Themes()
	next := themes[0]
	for i, t := range themes {
		if t.ID == m.prefs.Theme.ID {
			next = themes[(i+1)%len(themes)]
		}
	}
	if m.session.Prefs != nil {
		if !m.report(m.session.Prefs.SetActiveTheme(context.Background(), next.ID)) {
			return
		}
	}
	m.applyTheme(next)
	m.status = "Theme: " + next.Name
}

func (m *Model) applyTheme(t model.Theme) {
	m.prefs.Theme = t
	m.styles = theme.StylesFor(t)
	m.layout.Styles = m.styles
	m.help.SetStyles(m.styles)
	m.search.SetStyles(m.styles)
	m.form.SetStyles(m.styles)
	m.board.SetStyles(m.styles)
}

func (m *Model) toggleSound() {
	on := !m.prefs.SoundEnabled
	if m.session.Prefs != nil {
		var err error
		on, err = m.session.Prefs.ToggleSound(context.Background())
		if !m.report(err) {
			return
		}
	}
	m.prefs.SoundEnabled = on
	state := "off"
	if on {
		state = "on"
	}
	m.session.Toasts.Push(model.ToastInfo, "Ambient sound "+state, "🎵")
}

// syncBoard reloads the kanban view from the active project.
func (m *Model) syncBoard() {
	ws := m.session.Workspace
	m.board.SetBoard(ws.ActiveProject().Kanban, ws.Users(), ws.IsReadOnly())
}

// syncEditor points the presence simulator at the page on screen.
func (m *Model) syncEditor() {
	if page, ok := m.currentPage(); ok {
		m.session.ShowPage(page, m.editorWidth())
	}
}

// currentPage resolves the page the editor shows: the navigation target,
// or the first page of the active project.
func (m Model) currentPage() (model.Page, bool) {
	ws := m.session.Workspace
	if id := ws.Navigation().PageID; id != "" {
		if p, err := ws.FindPage(id); err == nil {
			return p, true
		}
	}
	pages := ws.ActiveProject().AllPages()
	if len(pages) == 0 {
		return model.Page{}, false
	}
	return pages[0], true
}

func (m Model) readOnlyBlocked() bool {
	if m.session.Workspace.IsReadOnly() {
		m.session.Toasts.Push(model.ToastInfo, "Viewers have read-only access.", "🔒")
		return true
	}
	return false
}

// report shows err in the status bar and reports whether it was nil.
func (m *Model) report(err error) bool {
	if err == nil {
		return true
	}
	switch {
	case errors.Is(err, workspace.ErrForbidden):
		m.status = "Not allowed: " + err.Error()
	case errors.Is(err, workspace.ErrNotFound):
		m.status = "Not found: " + err.Error()
	case errors.Is(err, workspace.ErrInvalid):
		m.status = "Invalid: " + err.Error()
	default:
		m.status = fmt.Sprintf("Error: %v", err)
	}
	return false
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.headerTitle(), m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}
