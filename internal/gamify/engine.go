// Package gamify maps XP changes and activity events onto levels, titles,
// badges and the notifications they produce. Everything here is pure: the
// caller owns the user record and decides what to do with the events.
package gamify

import (
	"fmt"

	"github.com/nhle/flowstate/internal/model"
)

// Event is a notification the caller should surface to the user.
type Event struct {
	Kind    model.ToastKind
	Message string
	Icon    string
}

// predicate unlocks badge when met returns true for the updated user.
type predicate struct {
	badge string
	met   func(model.User) bool
}

// predicates are evaluated in order; order decides toast order.
var predicates = []predicate{
	{badge: BadgeFirstSteps, met: func(u model.User) bool { return u.XP > 0 }},
	{badge: BadgeTaskMaster, met: func(u model.User) bool { return u.Stats.TasksCompleted >= 1 }},
	{badge: BadgeDocDrafter, met: func(u model.User) bool { return u.Stats.PagesCreated >= 1 }},
	{badge: BadgeCollaborator, met: func(u model.User) bool { return u.Stats.CardsMoved >= 10 }},
}

// LevelFor returns the level for an XP total.
func LevelFor(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/LevelThreshold + 1
}

// TitleFor returns the display title for a level.
func TitleFor(level int) string {
	i := level - 1
	if i < 0 {
		i = 0
	}
	if i > len(Titles)-1 {
		i = len(Titles) - 1
	}
	return Titles[i]
}

// Normalize recomputes the derived fields of u from its XP.
func Normalize(u model.User) model.User {
	if u.XP < 0 {
		u.XP = 0
	}
	u.Level = LevelFor(u.XP)
	u.Title = TitleFor(u.Level)
	return u
}

// AwardXP adds delta to the user's XP and returns the updated user with the
// events the change produced: an xp event when message is set, a levelup
// event when the level went up, and any badges newly unlocked.
func AwardXP(u model.User, delta int, message string) (model.User, []Event) {
	u = u.Clone()
	prevLevel := LevelFor(u.XP)

	u.XP += delta
	u = Normalize(u)

	var events []Event
	if message != "" {
		events = append(events, Event{
			Kind:    model.ToastXP,
			Message: fmt.Sprintf("+%d XP: %s", delta, message),
		})
	}
	if u.Level > prevLevel {
		events = append(events, Event{
			Kind:    model.ToastLevelUp,
			Message: fmt.Sprintf("Leveled up to Level %d - %s!", u.Level, u.Title),
		})
	}

	u, badgeEvents := CheckBadges(u)
	return u, append(events, badgeEvents...)
}

// CheckBadges awards every catalog badge whose predicate the user meets and
// does not hold yet. Calling it again without an intervening change awards
// nothing.
func CheckBadges(u model.User) (model.User, []Event) {
	var events []Event
	for _, p := range predicates {
		if u.HasBadge(p.badge) || !p.met(u) {
			continue
		}
		b, _ := BadgeByID(p.badge)
		u.Badges = append(u.Badges, b)
		events = append(events, Event{
			Kind:    model.ToastBadge,
			Message: "Badge Unlocked: " + b.Name,
			Icon:    b.Icon,
		})
	}
	return u, events
}

// CompleteTask records a completed task and pays the completion award.
func CompleteTask(u model.User) (model.User, []Event) {
	u = u.Clone()
	u.Stats.TasksCompleted++
	return AwardXP(u, XPTaskCompleted, "Task Completed!")
}
