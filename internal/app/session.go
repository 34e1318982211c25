package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/nhle/flowstate/internal/ai"
	"github.com/nhle/flowstate/internal/gamify"
	"github.com/nhle/flowstate/internal/logging"
	"github.com/nhle/flowstate/internal/markdown"
	"github.com/nhle/flowstate/internal/metrics"
	"github.com/nhle/flowstate/internal/model"
	"github.com/nhle/flowstate/internal/prefs"
	"github.com/nhle/flowstate/internal/presence"
	appsync "github.com/nhle/flowstate/internal/sync"
	"github.com/nhle/flowstate/internal/toast"
	"github.com/nhle/flowstate/internal/triage"
	"github.com/nhle/flowstate/internal/workspace"
)

// SignupPrefix marks a launch argument coming from the sign-up flow.
const SignupPrefix = "google_signup:"

// Deps are the collaborators a session is built from. Zero values fall
// back to defaults: real clock, discarded logs, no metrics, no summarizer.
type Deps struct {
	Config     *model.AppConfig
	Log        zerolog.Logger
	Clock      clockwork.Clock
	Metrics    *metrics.Recorder
	Summarizer ai.Summarizer
	Prefs      *prefs.Store
	Rand       *rand.Rand
	Presence   presence.Random
}

// Session owns one signed-in run of the workspace: the store, its toast
// queue and the two background simulators.
type Session struct {
	Workspace  *workspace.Workspace
	Toasts     *toast.Queue
	Chat       *appsync.ChatSimulator
	Presence   *presence.Simulator
	Summarizer ai.Summarizer
	Prefs      *prefs.Store
	Metrics    *metrics.Recorder
	Guard      *ai.Guard
	Ideas      *triage.Suggester

	log zerolog.Logger

	mu           gosync.Mutex
	launched     bool
	stopPresence context.CancelFunc
	presenceDone chan struct{}
}

// NewSession wires a workspace loaded from data to its toast queue,
// metrics and simulators. Nothing runs until Launch.
func NewSession(data workspace.Data, deps Deps) (*Session, error) {
	cfg := deps.Config
	if cfg == nil {
		cfg = model.DefaultAppConfig()
	}
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	log := deps.Log

	policy, err := gamify.PolicyFromConfig(cfg.Gamification)
	if err != nil {
		return nil, err
	}

	rec := deps.Metrics
	toasts := toast.New(
		time.Duration(cfg.Simulation.ToastTTLSec)*time.Second,
		toast.WithClock(clock),
		toast.WithLogger(logging.Component(log, "toast")),
		toast.WithObserver(func(t model.Toast) { rec.Toast(string(t.Kind)) }),
	)

	ws, err := workspace.New(data,
		workspace.WithClock(clock),
		workspace.WithNotifier(toasts),
		workspace.WithLogger(logging.Component(log, "workspace")),
		workspace.WithMetrics(rec),
		workspace.WithEditPolicy(policy),
	)
	if err != nil {
		return nil, fmt.Errorf("loading workspace: %w", err)
	}

	chatOpts := []appsync.Option{
		appsync.WithClock(clock),
		appsync.WithInterval(time.Duration(cfg.Simulation.ChatIntervalSec) * time.Second),
		appsync.WithLogger(logging.Component(log, "chat")),
	}
	var ideasRand *rand.Rand
	if deps.Rand != nil {
		ideasRand = rand.New(rand.NewPCG(deps.Rand.Uint64(), deps.Rand.Uint64()))
		chatOpts = append(chatOpts, appsync.WithRand(deps.Rand))
	}

	presenceOpts := []presence.Option{
		presence.WithClock(clock),
		presence.WithInterval(time.Duration(cfg.Simulation.PresenceIntervalMs) * time.Millisecond),
		presence.WithLogger(logging.Component(log, "presence")),
	}
	if deps.Presence != nil {
		presenceOpts = append(presenceOpts, presence.WithRandom(deps.Presence))
	}

	return &Session{
		Workspace:  ws,
		Toasts:     toasts,
		Chat:       appsync.NewChatSimulator(ws, chatOpts...),
		Presence:   presence.New(ws.Users(), ws.CurrentUser().ID, presenceOpts...),
		Summarizer: deps.Summarizer,
		Prefs:      deps.Prefs,
		Metrics:    rec,
		Guard:      &ai.Guard{},
		Ideas:      triage.NewSuggester(ideasRand),
		log:        logging.Component(log, "session"),
	}, nil
}

// Launch signs in and starts both simulators. A non-blank arg renames the
// main user, with SignupPrefix stripped. The returned command waits for
// the first simulated chat post. Launching twice does nothing.
func (s *Session) Launch(arg string) (tea.Cmd, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.launched {
		return nil, nil
	}

	if name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(arg), SignupPrefix)); name != "" {
		if err := s.Workspace.RenameUser(workspace.MainUserID, name); err != nil {
			return nil, err
		}
	}

	cmd := s.Chat.Start()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Presence.Run(ctx)
	}()
	s.stopPresence = cancel
	s.presenceDone = done
	s.launched = true

	s.log.Info().Str("user", s.Workspace.CurrentUser().Name).Msg("session launched")
	return cmd, nil
}

// Logout stops both simulators and drops any pending summary.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.launched {
		return
	}

	s.Chat.Stop()
	s.stopPresence()
	<-s.presenceDone
	s.Guard.Cancel()
	s.launched = false
	s.log.Info().Msg("session closed")
}

// Launched reports whether the session is signed in.
func (s *Session) Launched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.launched
}

// ShowPage points the presence simulator at a page rendered width columns wide.
func (s *Session) ShowPage(page model.Page, width int) {
	surface, err := presence.BlocksFromHTML(page.Content, width)
	if err != nil {
		s.log.Warn().Err(err).Str("page", page.ID).Msg("page content unreadable")
		return
	}
	s.Presence.SetSurface(surface)
}

// SummaryMsg carries a finished summary back to the view.
type SummaryMsg struct {
	PageID string
	Ticket uint64
	Text   string
}

// Summarize starts summarizing a page. Starting another summary, or
// calling Guard.Cancel, makes the result stale.
func (s *Session) Summarize(pageID string) (tea.Cmd, error) {
	page, err := s.Workspace.FindPage(pageID)
	if err != nil {
		return nil, err
	}
	text := markdown.PlainText(page.Content)
	ctx, ticket := s.Guard.Begin(s.log.WithContext(context.Background()))
	summarizer := s.Summarizer
	return func() tea.Msg {
		return SummaryMsg{PageID: pageID, Ticket: ticket, Text: ai.Summarize(ctx, summarizer, text)}
	}, nil
}

// ExportPage writes a page as markdown into dir and returns the file path.
func (s *Session) ExportPage(pageID, dir string) (string, error) {
	page, err := s.Workspace.FindPage(pageID)
	if err != nil {
		return "", err
	}
	name, data, err := markdown.Export(page.Title, page.Content)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// ImportFile creates a top-level page in the active project from a
// markdown file.
func (s *Session) ImportFile(path string) (model.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Page{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	title, content, err := markdown.Import(filepath.Base(path), f)
	if err != nil {
		return model.Page{}, err
	}
	return s.Workspace.CreatePage(title, content, "")
}
