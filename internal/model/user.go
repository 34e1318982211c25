package model

// Role is a user's authorization level within the workspace.
type Role string

const (
	RoleOwner  Role = "Owner"
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
	RoleViewer Role = "Viewer"
)

// Roles lists every role in descending order of privilege.
var Roles = []Role{RoleOwner, RoleAdmin, RoleEditor, RoleViewer}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ReadOnly reports whether the role disables mutating operations.
func (r Role) ReadOnly() bool {
	return r == RoleViewer
}

// CanAdminister reports whether the role may open the admin panel and
// change other users' roles.
func (r Role) CanAdminister() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Badge is an achievement from the static catalog.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Mention records that another user referenced this user somewhere.
type Mention struct {
	ID         string `json:"id"`
	FromUserID string `json:"from_user_id"`
	Text       string `json:"text"`
	Location   string `json:"location"`
	Read       bool   `json:"read"`
}

// UserStats holds the activity counters that badge predicates read.
type UserStats struct {
	PagesCreated   int `json:"pages_created"`
	CardsMoved     int `json:"cards_moved"`
	TasksCompleted int `json:"tasks_completed"`
}

// User is a workspace member. Level and Title are derived from XP and are
// only ever written by the gamify package.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	Role      Role      `json:"role"`
	XP        int       `json:"xp"`
	Level     int       `json:"level"`
	Title     string    `json:"title"`
	Badges    []Badge   `json:"badges"`
	Mentions  []Mention `json:"mentions"`
	Stats     UserStats `json:"stats"`
}

// HasBadge reports whether the user already holds the badge with id.
func (u User) HasBadge(id string) bool {
	for _, b := range u.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

// UnreadMentions returns the number of mentions not yet marked read.
func (u User) UnreadMentions() int {
	n := 0
	for _, m := range u.Mentions {
		if !m.Read {
			n++
		}
	}
	return n
}

// Clone returns a copy of u that shares no slices with it.
func (u User) Clone() User {
	c := u
	c.Badges = append([]Badge(nil), u.Badges...)
	c.Mentions = append([]Mention(nil), u.Mentions...)
	return c
}
