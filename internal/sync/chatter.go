// Package sync runs the background chat simulator: while a session is
// open, other members post canned messages to the active project.
package sync

import (
	"math/rand/v2"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/nhle/flowstate/internal/model"
)

// DefaultChatInterval is how often a simulated member speaks.
const DefaultChatInterval = 12 * time.Second

// CannedMessages are the lines simulated members choose from.
var CannedMessages = []string{
	"Quick update: I've pushed the latest changes.",
	"Anyone available for a code review?",
	"What's the status on the API integration?",
	"Just saw the new designs, they look amazing! ✨",
	"Let's touch base on the Phoenix Initiative tomorrow.",
}

// ChatPostedMsg is a tea.Msg sent after each simulated post.
type ChatPostedMsg struct {
	Message model.ChatMessage
	Err     error
}

// Poster is the part of the workspace the simulator writes to.
type Poster interface {
	PostChatMessageAs(userID, text string) (model.ChatMessage, error)
	CurrentUser() model.User
	Users() []model.User
}

// ChatSimulator posts a random canned message from a random member other
// than the current user on every tick.
type ChatSimulator struct {
	ws       Poster
	clock    clockwork.Clock
	interval time.Duration
	log      zerolog.Logger

	rngMu gosync.Mutex
	rng   *rand.Rand

	resultCh chan ChatPostedMsg
	stopCh   chan struct{}
	done     chan struct{}
	mu       gosync.Mutex
	running  bool
}

type Option func(*ChatSimulator)

func WithClock(c clockwork.Clock) Option {
	return func(s *ChatSimulator) { s.clock = c }
}

func WithInterval(d time.Duration) Option {
	return func(s *ChatSimulator) {
		if d > 0 {
			s.interval = d
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *ChatSimulator) { s.log = l }
}

// WithRand fixes the random source, for reproducible runs.
func WithRand(r *rand.Rand) Option {
	return func(s *ChatSimulator) { s.rng = r }
}

// NewChatSimulator creates a stopped simulator posting to ws.
func NewChatSimulator(ws Poster, opts ...Option) *ChatSimulator {
	s := &ChatSimulator{
		ws:       ws,
		clock:    clockwork.NewRealClock(),
		interval: DefaultChatInterval,
		log:      zerolog.Nop(),
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the ticker goroutine and returns a command that waits for
// the first post. Each run gets its own result channel, so posts from an
// earlier run are never delivered. Starting a running simulator does nothing.
func (s *ChatSimulator) Start() tea.Cmd {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})
	s.resultCh = make(chan ChatPostedMsg, 16)
	stop, done, results := s.stopCh, s.done, s.resultCh
	s.mu.Unlock()

	go s.loop(stop, done, results)
	s.log.Debug().Dur("interval", s.interval).Msg("chat simulator started")

	return waitForResult(stop, results)
}

// Stop halts the ticker goroutine and waits for it to exit.
func (s *ChatSimulator) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	close(s.stopCh)
	s.running = false
	done := s.done
	s.mu.Unlock()

	<-done
	s.log.Debug().Msg("chat simulator stopped")
}

func (s *ChatSimulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *ChatSimulator) loop(stop <-chan struct{}, done chan<- struct{}, results chan<- ChatPostedMsg) {
	defer close(done)

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			if msg, ok := s.PostOnce(); ok {
				sendResult(results, msg)
			}
		}
	}
}

// PostOnce posts one simulated message now. It reports false when there
// is nobody besides the current user to speak.
func (s *ChatSimulator) PostOnce() (ChatPostedMsg, bool) {
	current := s.ws.CurrentUser().ID
	var others []model.User
	for _, u := range s.ws.Users() {
		if u.ID != current {
			others = append(others, u)
		}
	}
	if len(others) == 0 {
		return ChatPostedMsg{}, false
	}

	s.rngMu.Lock()
	author := others[s.rng.IntN(len(others))]
	text := CannedMessages[s.rng.IntN(len(CannedMessages))]
	s.rngMu.Unlock()

	msg, err := s.ws.PostChatMessageAs(author.ID, text)
	if err != nil {
		s.log.Warn().Err(err).Str("author", author.ID).Msg("simulated chat post failed")
	}
	return ChatPostedMsg{Message: msg, Err: err}, true
}

// sendResult sends a ChatPostedMsg on the result channel without blocking.
func sendResult(results chan<- ChatPostedMsg, msg ChatPostedMsg) {
	select {
	case results <- msg:
	default:
		// Drop if nobody is listening
	}
}

// waitForResult waits for one post of a run. It yields a nil message once
// that run is stopped, so a pending wait never outlives the run.
func waitForResult(stop <-chan struct{}, results <-chan ChatPostedMsg) tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-results:
			return msg
		case <-stop:
			return nil
		}
	}
}

// WaitForNext returns a tea.Cmd that waits for the next simulated post of
// the current run, or nil when the simulator is stopped. Call it again
// after handling each ChatPostedMsg to keep listening.
func (s *ChatSimulator) WaitForNext() tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	return waitForResult(s.stopCh, s.resultCh)
}
