package gamify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/flowstate/internal/model"
)

func TestUnlimited_AlwaysAllows(t *testing.T) {
	now := time.Now()
	for i := 0; i < 100; i++ {
		assert.True(t, Unlimited{}.AllowEdit("u", now))
	}
}

func TestLimited_BurstThenRefill(t *testing.T) {
	p := NewLimited(6, 2)
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	assert.True(t, p.AllowEdit("u", now))
	assert.True(t, p.AllowEdit("u", now))
	assert.False(t, p.AllowEdit("u", now))

	// other users have their own bucket
	assert.True(t, p.AllowEdit("v", now))

	// one token every ten seconds
	assert.True(t, p.AllowEdit("u", now.Add(11*time.Second)))
	assert.False(t, p.AllowEdit("u", now.Add(11*time.Second)))
}

func TestLimited_ClampsZeroRate(t *testing.T) {
	var p *Limited
	require.NotPanics(t, func() { p = NewLimited(0, 0) })
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	assert.True(t, p.AllowEdit("u", now))
	assert.False(t, p.AllowEdit("u", now.Add(30*time.Second)))
	assert.True(t, p.AllowEdit("u", now.Add(61*time.Second)))
}

func TestPolicyFromConfig(t *testing.T) {
	p, err := PolicyFromConfig(model.GamificationConfig{EditXPPolicy: model.EditXPUnlimited})
	require.NoError(t, err)
	assert.IsType(t, Unlimited{}, p)

	p, err = PolicyFromConfig(model.GamificationConfig{EditXPPolicy: model.EditXPLimited, EditXPPerMinute: 5, EditXPBurst: 5})
	require.NoError(t, err)
	assert.IsType(t, &Limited{}, p)

	_, err = PolicyFromConfig(model.GamificationConfig{EditXPPolicy: model.EditXPLimited})
	assert.Error(t, err)

	_, err = PolicyFromConfig(model.GamificationConfig{EditXPPolicy: "weekly"})
	assert.Error(t, err)
}
