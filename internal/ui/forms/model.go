package forms

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/flowstate/internal/model"
	"github.com/nhle/flowstate/internal/theme"
	"github.com/nhle/flowstate/internal/triage"
)

// Kind says which command a form feeds.
type Kind int

const (
	KindLaunch Kind = iota
	KindProject
	KindPage
	KindPageEdit
	KindCard
	KindCardEdit
	KindNote
	KindChat
)

var titles = map[Kind]string{
	KindLaunch:   "Welcome to FlowState",
	KindProject:  "New Project",
	KindPage:     "New Page",
	KindPageEdit: "Edit Page",
	KindCard:     "New Card",
	KindCardEdit: "Edit Card",
	KindNote:     "New Sticky Note",
	KindChat:     "Message",
}

// Values holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies. The ID fields
// carry the context the form was opened for.
type Values struct {
	Title       string
	Content     string
	TemplateID  string
	ParentID    string
	Description string
	AssigneeID  string
	Labels      string
	Priority    model.Priority
	DueDate     string
	IssueURL    string

	PageID   string
	ColumnID string
	CardID   string
}

// LabelList splits the comma-separated label field.
func (v Values) LabelList() []string {
	out := []string{}
	for _, l := range strings.Split(v.Labels, ",") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// SubmittedMsg is dispatched when a form completes.
type SubmittedMsg struct {
	Kind   Kind
	Values Values
}

// CancelledMsg is dispatched when the user aborts a form.
type CancelledMsg struct {
	Kind Kind
}

// Model wraps the huh form currently on screen.
type Model struct {
	form      *huh.Form
	kind      Kind
	fb        *Values
	templates []model.PageTemplate
	styles    theme.Styles
	width     int
	height    int
}

// New creates an idle form model.
func New(styles theme.Styles, width, height int) Model {
	return Model{
		fb:     &Values{},
		styles: styles,
		width:  width,
		height: height,
	}
}

// Active reports whether a form is open.
func (m Model) Active() bool {
	return m.form != nil
}

// Kind returns the kind of the open form.
func (m Model) Kind() Kind {
	return m.kind
}

func (m *Model) start(kind Kind, v Values, fields ...huh.Field) tea.Cmd {
	m.kind = kind
	*m.fb = v
	m.form = huh.NewForm(huh.NewGroup(fields...)).
		WithWidth(m.formWidth()).
		WithHeight(m.formHeight())
	return m.form.Init()
}

// StartLaunch asks for the display name used for this session. A value
// of the form "google_signup:<name>" is accepted as-is.
func (m *Model) StartLaunch() tea.Cmd {
	return m.start(KindLaunch, Values{},
		huh.NewInput().
			Title("Your name").
			Placeholder("leave blank to continue as the demo user").
			Value(&m.fb.Title),
	)
}

// StartProject opens the new-project form.
func (m *Model) StartProject() tea.Cmd {
	return m.start(KindProject, Values{},
		huh.NewInput().
			Title("Project name").
			Value(&m.fb.Title).
			Validate(validateRequired("Name")),
	)
}

// StartPage opens the new-page form. parents are the pages the new page
// may be nested under.
func (m *Model) StartPage(templates []model.PageTemplate, parents []model.Page) tea.Cmd {
	m.templates = templates

	tmplOpts := make([]huh.Option[string], 0, len(templates))
	for _, t := range templates {
		tmplOpts = append(tmplOpts, huh.NewOption(t.Name+" - "+t.Description, t.ID))
	}
	parentOpts := []huh.Option[string]{huh.NewOption("None (top level)", "")}
	for _, p := range parents {
		parentOpts = append(parentOpts, huh.NewOption(p.Title, p.ID))
	}

	v := Values{}
	if len(templates) > 0 {
		v.TemplateID = templates[0].ID
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Value(&m.fb.Title).
			Validate(validateRequired("Title")),
	}
	if len(tmplOpts) > 0 {
		fields = append(fields, huh.NewSelect[string]().
			Title("Template").
			Options(tmplOpts...).
			Value(&m.fb.TemplateID))
	}
	fields = append(fields, huh.NewSelect[string]().
		Title("Parent").
		Options(parentOpts...).
		Value(&m.fb.ParentID))

	return m.start(KindPage, v, fields...)
}

// StartPageEdit opens the page editor.
func (m *Model) StartPageEdit(p model.Page) tea.Cmd {
	return m.start(KindPageEdit, Values{PageID: p.ID, Title: p.Title, Content: p.Content},
		huh.NewInput().
			Title("Title").
			Value(&m.fb.Title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Content (HTML)").
			Lines(10).
			Value(&m.fb.Content),
	)
}

// StartCard opens the quick-add card form for a column. idea, when set,
// is shown under the title as a suggested task. Leaving the priority on
// Auto predicts it from the title and description on submit.
func (m *Model) StartCard(columnID, idea string) tea.Cmd {
	title := huh.NewInput().
		Title("Card title").
		Value(&m.fb.Title).
		Validate(validateRequired("Title"))
	if idea != "" {
		title = title.Description("Idea: " + idea)
	}
	return m.start(KindCard, Values{ColumnID: columnID},
		title,
		huh.NewText().
			Title("Description").
			Lines(3).
			Value(&m.fb.Description),
		huh.NewSelect[model.Priority]().
			Title("Priority").
			Options(
				huh.NewOption("Auto (from text)", model.Priority("")),
				huh.NewOption("High", model.PriorityHigh),
				huh.NewOption("Medium", model.PriorityMedium),
				huh.NewOption("Low", model.PriorityLow),
			).
			Value(&m.fb.Priority),
	)
}

// StartCardEdit opens the full card editor.
func (m *Model) StartCardEdit(columnID string, c model.KanbanCard, users []model.User) tea.Cmd {
	userOpts := []huh.Option[string]{huh.NewOption("Unassigned", "")}
	for _, u := range users {
		userOpts = append(userOpts, huh.NewOption(u.Name, u.ID))
	}

	v := Values{
		ColumnID:    columnID,
		CardID:      c.ID,
		Title:       c.Title,
		Description: c.Description,
		AssigneeID:  c.AssigneeID,
		Labels:      strings.Join(c.Labels, ", "),
		Priority:    c.Priority,
		DueDate:     c.DueDate,
		IssueURL:    c.IssueURL,
	}

	return m.start(KindCardEdit, v,
		huh.NewInput().
			Title("Title").
			Value(&m.fb.Title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Value(&m.fb.Description),
		huh.NewSelect[string]().
			Title("Assignee").
			Options(userOpts...).
			Value(&m.fb.AssigneeID),
		huh.NewSelect[model.Priority]().
			Title("Priority").
			Description("Suggested from text: "+string(triage.PredictPriority(c.Title+" "+c.Description))).
			Options(
				huh.NewOption("High", model.PriorityHigh),
				huh.NewOption("Medium", model.PriorityMedium),
				huh.NewOption("Low", model.PriorityLow),
			).
			Value(&m.fb.Priority),
		huh.NewInput().
			Title("Labels").
			Placeholder("comma separated").
			Value(&m.fb.Labels),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD").
			Value(&m.fb.DueDate).
			Validate(validateOptionalDate),
		huh.NewInput().
			Title("Issue URL").
			Placeholder("optional").
			Value(&m.fb.IssueURL),
	)
}

// StartNote opens the sticky-note form for a page.
func (m *Model) StartNote(pageID string) tea.Cmd {
	return m.start(KindNote, Values{PageID: pageID},
		huh.NewText().
			Title("Note").
			Lines(3).
			Value(&m.fb.Content).
			Validate(validateRequired("Note")),
	)
}

// StartChat opens the chat composer.
func (m *Model) StartChat() tea.Cmd {
	return m.start(KindChat, Values{},
		huh.NewInput().
			Title("Message").
			Placeholder("@name to mention someone").
			Value(&m.fb.Content).
			Validate(validateRequired("Message")),
	)
}

// Close discards the open form.
func (m *Model) Close() {
	m.form = nil
}

// Update handles messages for the open form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		kind := m.kind
		m.form = nil
		return m, func() tea.Msg { return CancelledMsg{Kind: kind} }
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		submitted := m.submitted()
		m.form = nil
		return m, func() tea.Msg { return submitted }
	case huh.StateAborted:
		kind := m.kind
		m.form = nil
		return m, func() tea.Msg { return CancelledMsg{Kind: kind} }
	}

	return m, cmd
}

func (m Model) submitted() SubmittedMsg {
	v := *m.fb
	v.Title = strings.TrimSpace(v.Title)
	v.DueDate = strings.TrimSpace(v.DueDate)
	switch m.kind {
	case KindPage:
		v.Content = templateContent(m.templates, v.TemplateID)
	case KindCard:
		v.Description = strings.TrimSpace(v.Description)
		if v.Priority == "" {
			v.Priority = triage.PredictPriority(v.Title + " " + v.Description)
		}
	}
	return SubmittedMsg{Kind: m.kind, Values: v}
}

func templateContent(templates []model.PageTemplate, id string) string {
	for _, t := range templates {
		if t.ID == id {
			return t.Content
		}
	}
	return ""
}

// View renders the open form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	content := m.styles.Title.MarginBottom(1).Render(titles[m.kind]) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetStyles applies a new theme.
func (m *Model) SetStyles(s theme.Styles) {
	m.styles = s
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func (m Model) formHeight() int {
	return max(m.height-4, 10)
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	_, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
