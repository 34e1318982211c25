package workspace

import (
	"fmt"
	"strings"

	"github.com/nhle/flowstate/internal/mention"
	"github.com/nhle/flowstate/internal/model"
)

// AddChatMessage posts text from the acting user to the active project.
// Read-only users may chat.
func (w *Workspace) AddChatMessage(text string) (model.ChatMessage, error) {
	var msg model.ChatMessage
	err := w.apply("AddChatMessage", func() error {
		var err error
		msg, err = w.post(w.currentUserID, text)
		return err
	})
	return msg, err
}

// PostChatMessageAs posts text to the active project on behalf of another
// member.
func (w *Workspace) PostChatMessageAs(userID, text string) (model.ChatMessage, error) {
	var msg model.ChatMessage
	err := w.apply("PostChatMessageAs", func() error {
		if _, ok := w.users[userID]; !ok {
			return notFound("user", userID)
		}
		var err error
		msg, err = w.post(userID, text)
		return err
	})
	return msg, err
}

// post appends the message and records a mention for every user the text
// names with an @handle.
func (w *Workspace) post(authorID, text string) (model.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.ChatMessage{}, invalid("chat message is empty")
	}
	p := w.active()
	msg := model.ChatMessage{
		ID:        newID("msg"),
		AuthorID:  authorID,
		Text:      text,
		Timestamp: w.clock.Now().Format("15:04"),
	}
	p.chat = append(p.chat, msg)

	author := w.users[authorID]
	for _, target := range mention.Resolve(text, w.members(p), authorID) {
		u := w.users[target.ID]
		u.Mentions = append(u.Mentions, model.Mention{
			ID:         newID("mention"),
			FromUserID: authorID,
			Text:       text,
			Location:   "Chat: " + p.name,
		})
		if u.ID == w.currentUserID {
			w.queue(model.ToastInfo, fmt.Sprintf("%s mentioned you in %s", author.Name, p.name))
		}
	}
	return msg, nil
}

func (w *Workspace) members(p *project) []model.User {
	out := make([]model.User, 0, len(p.memberIDs))
	for _, id := range p.memberIDs {
		if u, ok := w.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out
}

// MarkMentionsAsRead marks every mention of the acting user as read.
func (w *Workspace) MarkMentionsAsRead() error {
	return w.apply("MarkMentionsAsRead", func() error {
		u := w.current()
		for i := range u.Mentions {
			u.Mentions[i].Read = true
		}
		return nil
	})
}
