package testutil

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/nhle/flowstate/internal/prefs"
	"github.com/nhle/flowstate/internal/workspace"
)

// Now is the instant fake clocks start at.
var Now = time.Date(2026, time.May, 4, 9, 30, 0, 0, time.UTC)

// NewFakeClock returns a fake clock set to Now.
func NewFakeClock() clockwork.FakeClock {
	return clockwork.NewFakeClockAt(Now)
}

// NewTestPrefs creates an in-memory preference store with all migrations
// applied. It automatically closes the store when the test completes.
func NewTestPrefs(t *testing.T) *prefs.Store {
	t.Helper()

	s, err := prefs.Open(":memory:", zerolog.Nop())
	if err != nil {
		t.Fatalf("creating test prefs: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test prefs: %v", err)
		}
	})

	return s
}

// NewSeededWorkspace loads the demo workspace on a fake clock. Extra
// options are applied after the clock.
func NewSeededWorkspace(t *testing.T, opts ...workspace.Option) *workspace.Workspace {
	t.Helper()

	ws, err := workspace.New(workspace.Seed(), append([]workspace.Option{workspace.WithClock(NewFakeClock())}, opts...)...)
	if err != nil {
		t.Fatalf("loading seeded workspace: %v", err)
	}
	return ws
}
