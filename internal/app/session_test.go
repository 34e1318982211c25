package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/flowstate/internal/ai"
	"github.com/nhle/flowstate/internal/metrics"
	"github.com/nhle/flowstate/internal/model"
	"github.com/nhle/flowstate/internal/workspace"
	helpers "github.com/nhle/flowstate/tests/testutil"
)

type stubSummarizer struct {
	out string
}

func (s stubSummarizer) Ready() bool { return true }

func (s stubSummarizer) Summarize(context.Context, string) (string, error) {
	return s.out, nil
}

func newSession(t *testing.T, deps Deps) *Session {
	t.Helper()
	if deps.Clock == nil {
		deps.Clock = helpers.NewFakeClock()
	}
	deps.Log = zerolog.Nop()
	s, err := NewSession(workspace.Seed(), deps)
	require.NoError(t, err)
	t.Cleanup(s.Logout)
	return s
}

func TestSession_LaunchRenamesAndStartsSimulators(t *testing.T) {
	s := newSession(t, Deps{})

	cmd, err := s.Launch("google_signup:Dana Scully")
	require.NoError(t, err)
	assert.NotNil(t, cmd)
	assert.True(t, s.Launched())
	assert.True(t, s.Chat.Running())

	u := s.Workspace.CurrentUser()
	assert.Equal(t, "Dana Scully", u.Name)
	assert.Equal(t, "https://api.dicebear.com/8.x/adventurer/svg?seed=Dana+Scully", u.AvatarURL)

	again, err := s.Launch("Someone Else")
	require.NoError(t, err)
	assert.Nil(t, again)
	assert.Equal(t, "Dana Scully", s.Workspace.CurrentUser().Name)

	s.Logout()
	assert.False(t, s.Launched())
	assert.False(t, s.Chat.Running())
}

func TestSession_BlankLaunchKeepsDemoUser(t *testing.T) {
	s := newSession(t, Deps{})
	_, err := s.Launch("   ")
	require.NoError(t, err)
	assert.Equal(t, "Alex", s.Workspace.CurrentUser().Name)

	s.Logout()
	_, err = s.Launch(SignupPrefix)
	require.NoError(t, err)
	assert.Equal(t, "Alex", s.Workspace.CurrentUser().Name)
}

func TestSession_ToastsFeedMetrics(t *testing.T) {
	rec := metrics.New()
	s := newSession(t, Deps{Metrics: rec})

	_, err := s.Workspace.CreatePage("Runbook", "<p>steps</p>", "")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.Toasts.WithLabelValues(string(model.ToastXP))))
	assert.Equal(t, 15.0, testutil.ToFloat64(rec.XPAwarded))
	assert.NotEmpty(t, s.Toasts.List())
}

func TestSession_InvalidConfig(t *testing.T) {
	cfg := model.DefaultAppConfig()
	cfg.Gamification.EditXPPolicy = "sometimes"
	_, err := NewSession(workspace.Seed(), Deps{Config: cfg})
	assert.Error(t, err)
}

func TestSession_SummarizeIsGuarded(t *testing.T) {
	s := newSession(t, Deps{Summarizer: stubSummarizer{out: "- key point"}})

	cmd, err := s.Summarize("page-1")
	require.NoError(t, err)
	msg := cmd().(SummaryMsg)
	assert.Equal(t, "page-1", msg.PageID)
	assert.True(t, s.Guard.Current(msg.Ticket))

	_, err = s.Summarize("page-1")
	require.NoError(t, err)
	assert.False(t, s.Guard.Current(msg.Ticket))

	_, err = s.Summarize("missing")
	assert.ErrorIs(t, err, workspace.ErrNotFound)
}

func TestSession_SummarizeWithoutKeyReturnsMock(t *testing.T) {
	s := newSession(t, Deps{})
	cmd, err := s.Summarize("page-1")
	require.NoError(t, err)
	assert.Equal(t, ai.MockSummary, cmd().(SummaryMsg).Text)
}

func TestSession_ExportAndImport(t *testing.T) {
	s := newSession(t, Deps{})
	dir := t.TempDir()

	path, err := s.ExportPage("page-1", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "project-phoenix-overview.md"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Project Phoenix Overview\n\n")

	src := filepath.Join(dir, "Launch Checklist.md")
	require.NoError(t, os.WriteFile(src, []byte("## Steps\n\n- build\n- ship\n"), 0o644))
	page, err := s.ImportFile(src)
	require.NoError(t, err)
	assert.Equal(t, "Launch Checklist", page.Title)
	assert.Contains(t, page.Content, "<h2>Steps</h2>")

	found, err := s.Workspace.FindPage(page.ID)
	require.NoError(t, err)
	assert.Equal(t, page.Title, found.Title)

	_, err = s.ImportFile(filepath.Join(dir, "nope.md"))
	assert.Error(t, err)
}
