package sync

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/flowstate/internal/workspace"
)

func newSimulator(t *testing.T) (*ChatSimulator, *workspace.Workspace, clockwork.FakeClock) {
	t.Helper()
	ws, err := workspace.New(workspace.Seed())
	require.NoError(t, err)
	clock := clockwork.NewFakeClock()
	sim := NewChatSimulator(ws,
		WithClock(clock),
		WithInterval(12*time.Second),
		WithRand(rand.New(rand.NewPCG(1, 2))),
	)
	t.Cleanup(sim.Stop)
	return sim, ws, clock
}

func TestPostOnce_SpeaksAsSomeoneElse(t *testing.T) {
	sim, ws, _ := newSimulator(t)

	for i := 0; i < 20; i++ {
		got, ok := sim.PostOnce()
		require.True(t, ok)
		require.NoError(t, got.Err)
		assert.NotEqual(t, ws.CurrentUser().ID, got.Message.AuthorID)
		assert.Contains(t, CannedMessages, got.Message.Text)
	}
	assert.Len(t, ws.ActiveProject().ChatHistory, 3+20)
}

func TestStart_PostsOnEveryTick(t *testing.T) {
	sim, ws, clock := newSimulator(t)

	wait := sim.Start()
	require.NotNil(t, wait)
	assert.Nil(t, sim.Start(), "second start is a no-op")
	assert.True(t, sim.Running())

	for i := 1; i <= 3; i++ {
		clock.BlockUntil(1)
		clock.Advance(12 * time.Second)

		msg, ok := wait().(ChatPostedMsg)
		require.True(t, ok)
		require.NoError(t, msg.Err)
		assert.Len(t, ws.ActiveProject().ChatHistory, 3+i)
		wait = sim.WaitForNext()
	}
}

func TestStop_EndsPosting(t *testing.T) {
	sim, ws, clock := newSimulator(t)

	sim.Start()
	clock.BlockUntil(1)
	sim.Stop()
	assert.False(t, sim.Running())

	clock.Advance(time.Minute)
	assert.Len(t, ws.ActiveProject().ChatHistory, 3)

	// stop twice is safe, and the simulator restarts after a stop
	sim.Stop()
	wait := sim.Start()
	clock.BlockUntil(1)
	clock.Advance(12 * time.Second)
	_, ok := wait().(ChatPostedMsg)
	assert.True(t, ok)
}

func TestStop_ReleasesPendingWait(t *testing.T) {
	sim, _, clock := newSimulator(t)

	wait := sim.Start()
	clock.BlockUntil(1)

	got := make(chan any, 1)
	go func() { got <- wait() }()
	sim.Stop()

	select {
	case msg := <-got:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("wait still blocked after stop")
	}
	assert.Nil(t, sim.WaitForNext(), "no wait without a running simulator")
}

func TestRestart_DropsEarlierPosts(t *testing.T) {
	sim, ws, clock := newSimulator(t)

	sim.Start()
	clock.BlockUntil(1)
	clock.Advance(12 * time.Second)
	require.Eventually(t, func() bool {
		return len(ws.ActiveProject().ChatHistory) == 4
	}, time.Second, time.Millisecond)
	sim.Stop()

	wait := sim.Start()
	clock.BlockUntil(1)

	got := make(chan any, 1)
	go func() { got <- wait() }()
	select {
	case msg := <-got:
		t.Fatalf("delivered a post from the earlier run: %#v", msg)
	case <-time.After(50 * time.Millisecond):
	}

	clock.Advance(12 * time.Second)
	select {
	case msg := <-got:
		posted, ok := msg.(ChatPostedMsg)
		require.True(t, ok)
		assert.Equal(t, ws.ActiveProject().ChatHistory[4].ID, posted.Message.ID)
	case <-time.After(time.Second):
		t.Fatal("no post from the new run")
	}
}
