package gamify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/flowstate/internal/model"
)

func kinds(events []Event) []model.ToastKind {
	out := make([]model.ToastKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestLevelAndTitle(t *testing.T) {
	cases := []struct {
		xp    int
		level int
		title string
	}{
		{0, 1, "Rookie"},
		{99, 1, "Rookie"},
		{100, 2, "Contributor"},
		{250, 3, "Pro"},
		{550, 6, "Visionary"},
		{5000, 51, "Visionary"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.level, LevelFor(tc.xp), "xp %d", tc.xp)
		assert.Equal(t, tc.title, TitleFor(LevelFor(tc.xp)), "xp %d", tc.xp)
	}
}

func TestAwardXP_KeepsDerivedFieldsConsistent(t *testing.T) {
	u := model.User{ID: "u"}
	for _, delta := range []int{15, 10, 2, 5, 50, 50, 100, -30, 400} {
		u, _ = AwardXP(u, delta, "")
		assert.Equal(t, u.XP/100+1, u.Level)
		assert.Equal(t, TitleFor(u.Level), u.Title)
	}
}

func TestAwardXP_ClampsAtZero(t *testing.T) {
	u, _ := AwardXP(model.User{XP: 20}, -50, "")
	assert.Equal(t, 0, u.XP)
	assert.Equal(t, 1, u.Level)
}

func TestAwardXP_Events(t *testing.T) {
	u := Normalize(model.User{ID: "u", XP: 95})
	u.Badges = []model.Badge{{ID: BadgeFirstSteps}}

	got, events := AwardXP(u, 10, "Card Created")
	require.Len(t, events, 2)
	assert.Equal(t, []model.ToastKind{model.ToastXP, model.ToastLevelUp}, kinds(events))
	assert.Equal(t, "+10 XP: Card Created", events[0].Message)
	assert.Equal(t, "Leveled up to Level 2 - Contributor!", events[1].Message)
	assert.Equal(t, 105, got.XP)
	assert.Equal(t, 95, u.XP, "input user must not be mutated")
}

func TestAwardXP_NoMessageNoXPEvent(t *testing.T) {
	u := model.User{XP: 10, Badges: []model.Badge{{ID: BadgeFirstSteps}}}
	_, events := AwardXP(u, 5, "")
	assert.Empty(t, events)
}

func TestAwardXP_FirstXPUnlocksFirstSteps(t *testing.T) {
	_, events := AwardXP(model.User{}, 2, "Card Edited")
	require.Len(t, events, 2)
	assert.Equal(t, model.ToastBadge, events[1].Kind)
	assert.Equal(t, "Badge Unlocked: First Steps", events[1].Message)
}

func TestCheckBadges_Idempotent(t *testing.T) {
	u := model.User{XP: 10, Stats: model.UserStats{TasksCompleted: 1, PagesCreated: 2, CardsMoved: 12}}

	once, events := CheckBadges(u)
	require.Len(t, events, 4)
	assert.Equal(t, "Badge Unlocked: First Steps", events[0].Message)
	assert.Equal(t, "Badge Unlocked: Task Master", events[1].Message)
	assert.Equal(t, "Badge Unlocked: Doc Drafter", events[2].Message)
	assert.Equal(t, "Badge Unlocked: Collaborator", events[3].Message)

	twice, again := CheckBadges(once)
	assert.Empty(t, again)
	assert.Equal(t, once.Badges, twice.Badges)
}

func TestCompleteTask(t *testing.T) {
	u := Normalize(model.User{XP: 30, Badges: []model.Badge{{ID: BadgeFirstSteps}}})

	got, events := CompleteTask(u)
	assert.Equal(t, 80, got.XP)
	assert.Equal(t, 1, got.Stats.TasksCompleted)
	assert.Equal(t, []model.ToastKind{model.ToastXP, model.ToastBadge}, kinds(events))
	assert.Equal(t, "+50 XP: Task Completed!", events[0].Message)
	assert.True(t, got.HasBadge(BadgeTaskMaster))
}
