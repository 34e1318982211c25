package model

// Priority is a kanban card's urgency.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Reaction is one emoji and the set of users who reacted with it.
type Reaction struct {
	Emoji   string   `json:"emoji"`
	UserIDs []string `json:"user_ids"`
}

// KanbanCard is a single task on a board.
type KanbanCard struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssigneeID  string     `json:"assignee_id,omitempty"`
	Labels      []string   `json:"labels"`
	Priority    Priority   `json:"priority"`
	DueDate     string     `json:"due_date"`
	Reactions   []Reaction `json:"reactions"`
	IssueURL    string     `json:"issue_url,omitempty"`
}

// Clone returns a deep copy of c.
func (c KanbanCard) Clone() KanbanCard {
	out := c
	out.Labels = append([]string(nil), c.Labels...)
	out.Reactions = make([]Reaction, len(c.Reactions))
	for i, r := range c.Reactions {
		out.Reactions[i] = Reaction{Emoji: r.Emoji, UserIDs: append([]string(nil), r.UserIDs...)}
	}
	return out
}

// KanbanColumn is an ordered list of cards.
type KanbanColumn struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Cards []KanbanCard `json:"cards"`
}
