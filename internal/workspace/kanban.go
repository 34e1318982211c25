package workspace

import (
	"fmt"
	"strings"

	"github.com/nhle/flowstate/internal/gamify"
	"github.com/nhle/flowstate/internal/model"
)

// doneTitle marks the column whose cards count as completed tasks.
const doneTitle = "done"

// CardUpdate holds the card fields to change. Nil pointers keep the
// current value; a non-nil Labels slice replaces the labels, even when
// empty.
type CardUpdate struct {
	Title       *string
	Description *string
	AssigneeID  *string
	Labels      []string
	Priority    *model.Priority
	DueDate     *string
	IssueURL    *string
}

// CardDraft describes a new card. An empty Priority means Medium.
type CardDraft struct {
	Title       string
	Description string
	Priority    model.Priority
}

// AddKanbanCard appends a Medium-priority card due today, assigned to the
// acting user, to a column of the active project.
func (w *Workspace) AddKanbanCard(columnID, title string) (model.KanbanCard, error) {
	return w.AddKanbanCardDraft(columnID, CardDraft{Title: title})
}

// AddKanbanCardDraft is AddKanbanCard with a description and priority
// filled in up front. It pays the creation award only.
func (w *Workspace) AddKanbanCardDraft(columnID string, d CardDraft) (model.KanbanCard, error) {
	var card model.KanbanCard
	err := w.apply("AddKanbanCard", func() error {
		if err := w.requireWriter(); err != nil {
			return err
		}
		col, err := w.active().column(columnID)
		if err != nil {
			return err
		}
		title := strings.TrimSpace(d.Title)
		if title == "" {
			return invalid("card title is blank")
		}
		priority := d.Priority
		if priority == "" {
			priority = model.PriorityMedium
		}
		if !validPriority(priority) {
			return invalid("unknown priority %q", priority)
		}

		card = model.KanbanCard{
			ID:          newID("card"),
			Title:       title,
			Description: d.Description,
			AssigneeID:  w.currentUserID,
			Labels:      []string{},
			Priority:    priority,
			DueDate:     w.clock.Now().Format("2006-01-02"),
			Reactions:   []model.Reaction{},
		}
		col.Cards = append(col.Cards, card)
		w.award(w.currentUserID, gamify.XPCardCreated, "Card Created")
		return nil
	})
	return card, err
}

// UpdateKanbanCard merges upd into a card. The edit pays XP when the edit
// policy allows it.
func (w *Workspace) UpdateKanbanCard(columnID, cardID string, upd CardUpdate) error {
	return w.apply("UpdateKanbanCard", func() error {
		if err := w.requireWriter(); err != nil {
			return err
		}
		card, err := w.active().card(columnID, cardID)
		if err != nil {
			return err
		}
		if upd.Priority != nil && !validPriority(*upd.Priority) {
			return invalid("unknown priority %q", *upd.Priority)
		}
		if upd.AssigneeID != nil && *upd.AssigneeID != "" {
			if _, ok := w.users[*upd.AssigneeID]; !ok {
				return notFound("user", *upd.AssigneeID)
			}
		}

		if upd.Title != nil {
			card.Title = *upd.Title
		}
		if upd.Description != nil {
			card.Description = *upd.Description
		}
		if upd.AssigneeID != nil {
			card.AssigneeID = *upd.AssigneeID
		}
		if upd.Labels != nil {
			card.Labels = append([]string{}, upd.Labels...)
		}
		if upd.Priority != nil {
			card.Priority = *upd.Priority
		}
		if upd.DueDate != nil {
			card.DueDate = *upd.DueDate
		}
		if upd.IssueURL != nil {
			card.IssueURL = *upd.IssueURL
		}

		if w.edits.AllowEdit(w.currentUserID, w.clock.Now()) {
			w.award(w.currentUserID, gamify.XPCardEdited, "Card Edited")
		}
		return nil
	})
}

// MoveKanbanCard moves a card to the end of another column. A move into a
// column titled "done" completes the task for the acting user instead of
// paying the move award, and cards linked to an issue announce a webhook.
// Moving within one column changes nothing.
func (w *Workspace) MoveKanbanCard(cardID, fromColumnID, toColumnID string) error {
	return w.apply("MoveKanbanCard", func() error {
		if err := w.requireWriter(); err != nil {
			return err
		}
		if fromColumnID == toColumnID {
			return nil
		}
		p := w.active()
		from, err := p.column(fromColumnID)
		if err != nil {
			return err
		}
		to, err := p.column(toColumnID)
		if err != nil {
			return err
		}
		idx := -1
		for i, c := range from.Cards {
			if c.ID == cardID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return notFound("card", cardID)
		}

		card := from.Cards[idx]
		from.Cards = append(from.Cards[:idx], from.Cards[idx+1:]...)
		to.Cards = append(to.Cards, card)

		w.current().Stats.CardsMoved++
		if strings.EqualFold(to.Title, doneTitle) {
			w.completeTask(w.currentUserID)
			if card.IssueURL != "" {
				w.queue(model.ToastWebhook, fmt.Sprintf("✅ Card %q completed. Simulating webhook.", card.Title))
			}
		} else {
			w.award(w.currentUserID, gamify.XPCardMoved, "Card Moved")
		}
		w.audit("Moved Card", card.Title+" to "+to.Title)
		return nil
	})
}

// AddReactionToCard toggles the acting user's emoji reaction on a card.
// An emoji nobody reacts with any more is removed from the card.
func (w *Workspace) AddReactionToCard(columnID, cardID, emoji string) error {
	return w.apply("AddReactionToCard", func() error {
		if err := w.requireWriter(); err != nil {
			return err
		}
		if emoji == "" {
			return invalid("emoji is empty")
		}
		card, err := w.active().card(columnID, cardID)
		if err != nil {
			return err
		}
		card.Reactions = toggleReaction(card.Reactions, emoji, w.currentUserID)
		return nil
	})
}

func toggleReaction(reactions []model.Reaction, emoji, userID string) []model.Reaction {
	for i, r := range reactions {
		if r.Emoji != emoji {
			continue
		}
		users := make([]string, 0, len(r.UserIDs))
		reacted := false
		for _, id := range r.UserIDs {
			if id == userID {
				reacted = true
				continue
			}
			users = append(users, id)
		}
		if !reacted {
			users = append(users, userID)
		}
		if len(users) == 0 {
			return append(reactions[:i:i], reactions[i+1:]...)
		}
		reactions[i].UserIDs = users
		return reactions
	}
	return append(reactions, model.Reaction{Emoji: emoji, UserIDs: []string{userID}})
}

func validPriority(p model.Priority) bool {
	switch p {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
		return true
	}
	return false
}
