package gamify

import "github.com/nhle/flowstate/internal/model"

// XP awards for workspace actions.
const (
	XPPageCreated   = 15
	XPCardCreated   = 10
	XPCardEdited    = 2
	XPCardMoved     = 5
	XPTaskCompleted = 50
)

// LevelThreshold is the XP needed per level.
const LevelThreshold = 100

// Badge ids in the static catalog.
const (
	BadgeFirstSteps   = "badge-1"
	BadgeTaskMaster   = "badge-2"
	BadgeDocDrafter   = "badge-3"
	BadgeCollaborator = "badge-4"
)

// Titles maps level-1 to a display title. Levels past the end keep the
// last title.
var Titles = []string{"Rookie", "Contributor", "Pro", "Expert", "Architect", "Visionary"}

var catalog = []model.Badge{
	{ID: BadgeFirstSteps, Name: "First Steps", Description: "Earn your first XP.", Icon: "👣"},
	{ID: BadgeTaskMaster, Name: "Task Master", Description: "Complete your first task.", Icon: "✅"},
	{ID: BadgeDocDrafter, Name: "Doc Drafter", Description: "Create a new page.", Icon: "✍️"},
	{ID: BadgeCollaborator, Name: "Collaborator", Description: "Move 10 cards.", Icon: "🤝"},
}

// Catalog returns a copy of every badge that can be earned.
func Catalog() []model.Badge {
	return append([]model.Badge(nil), catalog...)
}

// BadgeByID looks up a catalog badge.
func BadgeByID(id string) (model.Badge, bool) {
	for _, b := range catalog {
		if b.ID == id {
			return b, true
		}
	}
	return model.Badge{}, false
}
