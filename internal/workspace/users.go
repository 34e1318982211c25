package workspace

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/nhle/flowstate/internal/model"
)

const avatarURL = "https://api.dicebear.com/8.x/adventurer/svg?seed="

// UpdateUserRole changes a user's role. Only owners and admins may do it.
// Changing the acting user's own role takes effect on the next operation.
func (w *Workspace) UpdateUserRole(userID string, role model.Role) error {
	return w.apply("UpdateUserRole", func() error {
		actor := w.current()
		if !actor.Role.CanAdminister() {
			return fmt.Errorf("%s is a %s: %w", actor.Name, actor.Role, ErrForbidden)
		}
		if !role.Valid() {
			return invalid("unknown role %q", role)
		}
		u, ok := w.users[userID]
		if !ok {
			return notFound("user", userID)
		}
		u.Role = role
		w.audit("Changed Role", fmt.Sprintf("%s to %s", u.Name, role))
		return nil
	})
}

// RenameUser sets a user's display name and the avatar derived from it.
func (w *Workspace) RenameUser(userID, name string) error {
	return w.apply("RenameUser", func() error {
		name = strings.TrimSpace(name)
		if name == "" {
			return invalid("user name is blank")
		}
		u, ok := w.users[userID]
		if !ok {
			return notFound("user", userID)
		}
		u.Name = name
		u.AvatarURL = avatarURL + url.QueryEscape(name)
		return nil
	})
}

// CurrentUser returns the acting user as of now.
func (w *Workspace) CurrentUser() model.User {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current().Clone()
}

// User returns the user with id.
func (w *Workspace) User(id string) (model.User, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	u, ok := w.users[id]
	if !ok {
		return model.User{}, notFound("user", id)
	}
	return u.Clone(), nil
}

// Users returns every user in seed order.
func (w *Workspace) Users() []model.User {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]model.User, 0, len(w.userOrder))
	for _, id := range w.userOrder {
		out = append(out, w.users[id].Clone())
	}
	return out
}

// Leaderboard returns users by XP, highest first. Ties keep seed order.
func (w *Workspace) Leaderboard() []model.User {
	out := w.Users()
	sort.SliceStable(out, func(i, j int) bool { return out[i].XP > out[j].XP })
	return out
}

// IsReadOnly reports whether the acting user's role disables mutations.
func (w *Workspace) IsReadOnly() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current().Role.ReadOnly()
}
