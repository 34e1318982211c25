package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard_NewRequestInvalidatesOld(t *testing.T) {
	var g Guard
	ctx1, t1 := g.Begin(context.Background())
	assert.True(t, g.Current(t1))

	_, t2 := g.Begin(context.Background())
	assert.False(t, g.Current(t1))
	assert.True(t, g.Current(t2))
	assert.ErrorIs(t, ctx1.Err(), context.Canceled)
}

func TestGuard_Cancel(t *testing.T) {
	var g Guard
	ctx, ticket := g.Begin(context.Background())
	g.Cancel()
	assert.False(t, g.Current(ticket))
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestGuard_Done(t *testing.T) {
	var g Guard
	_, old := g.Begin(context.Background())
	ctx, cur := g.Begin(context.Background())

	g.Done(old)
	assert.NoError(t, ctx.Err())
	assert.True(t, g.Current(cur))

	g.Done(cur)
	assert.False(t, g.Current(cur))
}
