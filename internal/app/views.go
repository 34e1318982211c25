package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/flowstate/internal/gamify"
	"github.com/nhle/flowstate/internal/markdown"
	"github.com/nhle/flowstate/internal/model"
	"github.com/nhle/flowstate/internal/theme"
)

const (
	recentChat  = 6
	recentAudit = 5
	maxToasts   = 3
)

func (m Model) headerTitle() string {
	if !m.session.Launched() {
		return "FlowState"
	}
	return "FlowState · " + m.session.Workspace.ActiveProject().Name
}

func (m Model) headerStatus() string {
	if !m.session.Launched() {
		return ""
	}
	u := m.session.Workspace.CurrentUser()
	status := fmt.Sprintf("%s · Lvl %d %s · %d XP", u.Name, u.Level, u.Title, u.XP)
	if n := u.UnreadMentions(); n > 0 {
		status += fmt.Sprintf(" · %d @", n)
	}
	if u.Role.ReadOnly() {
		status += " · read-only"
	}
	return status
}

// renderContent returns the toasts followed by the overlay or the view
// the workspace is navigated to.
func (m Model) renderContent() string {
	var body string
	switch {
	case m.overlay == overlayHelp:
		body = m.help.View()
	case m.overlay == overlaySearch:
		body = m.search.View()
	case m.overlay == overlayForm:
		body = m.form.View()
	default:
		switch m.session.Workspace.Navigation().View {
		case model.ViewEditor:
			body = m.editorView()
		case model.ViewKanban:
			body = m.board.View()
		case model.ViewLeaderboard:
			body = m.leaderboardView()
		case model.ViewAdmin:
			body = m.adminView()
		default:
			body = m.dashboardView()
		}
	}

	if toasts := m.toastsView(); toasts != "" {
		return lipgloss.JoinVertical(lipgloss.Left, toasts, body)
	}
	return body
}

func (m Model) toastsView() string {
	toasts := m.session.Toasts.List()
	if len(toasts) == 0 {
		return ""
	}
	if len(toasts) > maxToasts {
		toasts = toasts[:maxToasts]
	}
	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		text := t.Message
		if t.Icon != "" {
			text = t.Icon + " " + text
		}
		rendered = append(rendered, theme.ToastStyle(m.styles.Toast, t.Kind).Render(text))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) section(title string, lines ...string) string {
	out := []string{m.styles.Accent.Render(title)}
	if len(lines) == 0 {
		out = append(out, m.styles.Muted.Render("  nothing yet"))
	}
	out = append(out, lines...)
	return strings.Join(out, "\n")
}

func (m Model) userName(id string) string {
	if u, err := m.session.Workspace.User(id); err == nil {
		return u.Name
	}
	return "Someone"
}

func (m Model) dashboardView() string {
	ws := m.session.Workspace
	u := ws.CurrentUser()
	p := ws.ActiveProject()

	progress := float64(u.XP%gamify.LevelThreshold) / float64(gamify.LevelThreshold)
	profile := []string{
		m.styles.Title.Render(fmt.Sprintf("%s · %s", u.Name, u.Role)),
		fmt.Sprintf("Level %d %s", u.Level, u.Title),
		m.xpBar.ViewAs(progress) + fmt.Sprintf(" %d/%d", u.XP%gamify.LevelThreshold, gamify.LevelThreshold),
	}
	var badges []string
	for _, b := range u.Badges {
		badges = append(badges, m.styles.Badge.Render(b.Icon+" "+b.Name))
	}
	if len(badges) > 0 {
		profile = append(profile, strings.Join(badges, " "))
	}

	var projects []string
	for i, proj := range ws.Projects() {
		line := proj.Name
		if proj.ID == p.ID {
			line += " (active)"
		}
		if i == m.projectCursor {
			projects = append(projects, m.styles.Selected.Render(line))
		} else {
			projects = append(projects, m.styles.Item.Render(line))
		}
	}

	var mentions []string
	for _, mn := range u.Mentions {
		marker := "  "
		if !mn.Read {
			marker = "● "
		}
		mentions = append(mentions, fmt.Sprintf("%s%s: %s %s", marker, m.userName(mn.FromUserID),
			mn.Text, m.styles.Muted.Render("("+mn.Location+")")))
	}

	chat := p.ChatHistory
	if len(chat) > recentChat {
		chat = chat[len(chat)-recentChat:]
	}
	var chatLines []string
	for _, c := range chat {
		chatLines = append(chatLines, fmt.Sprintf("%s %s: %s",
			m.styles.Muted.Render(c.Timestamp), m.userName(c.AuthorID), c.Text))
	}

	audit := p.AuditLog
	if len(audit) > recentAudit {
		audit = audit[len(audit)-recentAudit:]
	}
	var auditLines []string
	for i := len(audit) - 1; i >= 0; i-- {
		a := audit[i]
		auditLines = append(auditLines, fmt.Sprintf("%s %s %s %s",
			m.styles.Muted.Render(a.Timestamp), m.userName(a.ActorID), strings.ToLower(a.Action), a.Target))
	}

	var cards, done int
	for _, c := range p.Kanban.Columns {
		cards += len(c.Cards)
		if strings.EqualFold(c.Title, "done") {
			done += len(c.Cards)
		}
	}
	stats := fmt.Sprintf("%d pages · %d cards · %d done · %d members",
		len(p.AllPages()), cards, done, len(p.MemberIDs))

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Panel.Render(strings.Join(profile, "\n")),
		m.section("Projects", projects...),
		"",
		m.styles.Muted.Render(stats),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.section("Mentions", mentions...),
		"",
		m.section("Team chat", chatLines...),
		"",
		m.section("Recent activity", auditLines...),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (m Model) editorWidth() int {
	return max(m.layout.ContentWidth()-m.treeWidth()-6, 20)
}

func (m Model) treeWidth() int {
	return min(30, max(m.layout.ContentWidth()/4, 16))
}

func (m Model) editorView() string {
	ws := m.session.Workspace
	p := ws.ActiveProject()
	current, ok := m.currentPage()

	var tree []string
	i := 0
	var walk func(pages []model.Page, depth int)
	walk = func(pages []model.Page, depth int) {
		for _, pg := range pages {
			line := strings.Repeat("  ", depth) + pg.Title
			switch {
			case i == m.pageCursor:
				tree = append(tree, m.styles.Selected.Render(line))
			case ok && pg.ID == current.ID:
				tree = append(tree, m.styles.Accent.Render("  "+line))
			default:
				tree = append(tree, m.styles.Item.Render(line))
			}
			i++
			walk(pg.Children, depth+1)
		}
	}
	walk(p.Pages, 0)
	left := m.styles.Border.Width(m.treeWidth()).Render(m.section("Pages", tree...))

	if !ok {
		return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", m.styles.Muted.Render("No pages yet. Press n to create one."))
	}

	body, err := markdown.FromHTML(current.Content)
	if err != nil {
		body = current.Content
	}
	doc := []string{m.styles.Title.Render(current.Title), "", strings.TrimRight(body, "\n")}

	state := m.session.Presence.State()
	var cursors []string
	for _, c := range state.Collaborators {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
		activity := "viewing"
		if c.Typing {
			activity = fmt.Sprintf("typing in block %d", c.Block+1)
		}
		cursors = append(cursors, fmt.Sprintf("%s %s %s", dot, c.Name, m.styles.Muted.Render(activity)))
	}
	if len(cursors) > 0 {
		doc = append(doc, "", strings.Join(cursors, "   "))
	}
	if n := len(state.Heatmap); n > 0 {
		doc = append(doc, m.styles.Muted.Render(fmt.Sprintf("%d recent edit hotspots", n)))
	}

	for _, note := range current.StickyNotes {
		doc = append(doc, "", m.styles.Badge.Render("📝 "+note.Content+" · "+m.userName(note.AuthorID)))
	}

	switch {
	case m.summarizing && m.summaryPageID == current.ID:
		doc = append(doc, "", m.styles.Muted.Render("Summarizing..."))
	case m.summary != "" && m.summaryPageID == current.ID:
		doc = append(doc, "", m.styles.Panel.Render(m.styles.Accent.Render("AI Summary")+"\n"+m.summary))
	}

	right := lipgloss.NewStyle().Width(m.editorWidth()).Render(strings.Join(doc, "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (m Model) leaderboardView() string {
	lines := []string{m.styles.Title.Render("Leaderboard"), ""}
	for i, u := range m.session.Workspace.Leaderboard() {
		medal := fmt.Sprintf("%2d.", i+1)
		switch i {
		case 0:
			medal = "🥇"
		case 1:
			medal = "🥈"
		case 2:
			medal = "🥉"
		}
		line := fmt.Sprintf("%s %-16s Lvl %-3d %-12s %5d XP  %d badges",
			medal, u.Name, u.Level, u.Title, u.XP, len(u.Badges))
		if i == m.userCursor {
			lines = append(lines, m.styles.Selected.Render(line))
		} else {
			lines = append(lines, m.styles.Item.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) adminView() string {
	ws := m.session.Workspace
	if !ws.CurrentUser().Role.CanAdminister() {
		return m.styles.Muted.Render("The admin panel is available to owners and admins.")
	}

	lines := []string{m.styles.Title.Render("Members"), ""}
	for i, u := range ws.Users() {
		line := fmt.Sprintf("%-16s %-8s Lvl %d", u.Name, u.Role, u.Level)
		if i == m.userCursor {
			lines = append(lines, m.styles.Selected.Render(line))
		} else {
			lines = append(lines, m.styles.Item.Render(line))
		}
	}

	audit := ws.ActiveProject().AuditLog
	var auditLines []string
	for i := len(audit) - 1; i >= 0; i-- {
		a := audit[i]
		auditLines = append(auditLines, fmt.Sprintf("%s  %-10s %-14s %s",
			m.styles.Muted.Render(a.Timestamp), m.userName(a.ActorID), a.Action, a.Target))
	}
	return strings.Join(lines, "\n") + "\n\n" + m.section("Audit log", auditLines...)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.status != "" {
		return m.status
	}

	switch m.overlay {
	case overlayHelp:
		return "? close help | esc back"
	case overlaySearch:
		return "enter open | ↑/↓ select | esc close"
	case overlayForm:
		return "enter submit | esc cancel"
	}

	switch m.session.Workspace.Navigation().View {
	case model.ViewEditor:
		return "enter open | n new | e edit | s note | S summarize | x export | ? help"
	case model.ViewKanban:
		return "h/l column | </> move | n new | e edit | + react | ? help"
	case model.ViewAdmin:
		return "j/k select | r cycle role | ? help"
	case model.ViewLeaderboard:
		return "1-5 views | ? help"
	default:
		return "1-5 views | tab project | n new project | / search | c chat | ? help"
	}
}
