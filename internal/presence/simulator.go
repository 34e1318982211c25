// Package presence simulates other people working in the editor: cursors
// that wander, start typing in a block, stop, and leave a heat trace.
// It never touches document state.
package presence

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/nhle/flowstate/internal/model"
)

// DefaultInterval is how often collaborators move.
const DefaultInterval = 2 * time.Second

const (
	maxCollaborators = 3
	startTyping      = 0.95
	stopTyping       = 0.7
)

// Colors are assigned to collaborators in order.
var Colors = []string{"#3B82F6", "#10B981", "#F59E0B"}

// Random is the randomness a simulator draws on. *rand.Rand satisfies it.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// Collaborator is one simulated cursor.
type Collaborator struct {
	UserID   string
	Name     string
	Color    string
	Position model.Position
	Typing   bool
	// Block indexes the surface block being typed in, or -1.
	Block int
}

// HeatPoint marks where someone stopped typing.
type HeatPoint struct {
	Position  model.Position
	Intensity float64
}

// State is a snapshot of the simulation.
type State struct {
	Collaborators []Collaborator
	Heatmap       []HeatPoint
}

// Simulator is safe for concurrent use.
type Simulator struct {
	clock    clockwork.Clock
	interval time.Duration
	log      zerolog.Logger

	mu      sync.Mutex
	rng     Random
	surface Surface
	collabs []Collaborator
	heat    []HeatPoint
}

type Option func(*Simulator)

func WithClock(c clockwork.Clock) Option {
	return func(s *Simulator) { s.clock = c }
}

func WithInterval(d time.Duration) Option {
	return func(s *Simulator) {
		if d > 0 {
			s.interval = d
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Simulator) { s.log = l }
}

func WithRandom(r Random) Option {
	return func(s *Simulator) { s.rng = r }
}

// New creates a simulator for up to three users other than currentUserID.
func New(users []model.User, currentUserID string, opts ...Option) *Simulator {
	s := &Simulator{
		clock:    clockwork.NewRealClock(),
		interval: DefaultInterval,
		log:      zerolog.Nop(),
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, u := range users {
		if u.ID == currentUserID || len(s.collabs) == maxCollaborators {
			continue
		}
		s.collabs = append(s.collabs, Collaborator{
			UserID: u.ID,
			Name:   u.Name,
			Color:  Colors[len(s.collabs)],
			Block:  -1,
		})
	}
	return s
}

// SetSurface switches to a new editor surface. Collaborators stop typing
// and the heatmap is cleared.
func (s *Simulator) SetSurface(surface Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface = surface
	s.heat = nil
	for i := range s.collabs {
		s.collabs[i].Typing = false
		s.collabs[i].Block = -1
		s.collabs[i].Position = s.wander()
	}
}

// Step advances every collaborator once. An idle collaborator starts
// typing in a random block with probability 0.05; a typing one stops with
// probability 0.3 and leaves a heat point at the centre of its block.
func (s *Simulator) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.collabs {
		c := &s.collabs[i]
		switch {
		case !c.Typing && s.rng.Float64() > startTyping:
			if n := len(s.surface.Blocks); n > 0 {
				c.Block = s.rng.IntN(n)
			}
		case c.Typing && s.rng.Float64() > stopTyping:
			if c.Block >= 0 && c.Block < len(s.surface.Blocks) {
				x, y := s.surface.Blocks[c.Block].Box.Center()
				s.heat = append(s.heat, HeatPoint{
					Position:  model.Position{X: x, Y: y},
					Intensity: s.rng.Float64(),
				})
			}
			c.Block = -1
		}

		c.Typing = c.Block >= 0
		if c.Typing {
			b := s.surface.Blocks[c.Block].Box
			c.Position = model.Position{X: b.X + b.W, Y: b.Y}
		} else {
			c.Position = s.wander()
		}
	}
}

// wander picks a random point on the surface. Callers hold mu.
func (s *Simulator) wander() model.Position {
	return model.Position{
		X: s.rng.Float64() * s.surface.Width,
		Y: s.rng.Float64() * s.surface.Height,
	}
}

// State returns a copy of the current simulation state.
func (s *Simulator) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Collaborators: append([]Collaborator(nil), s.collabs...),
		Heatmap:       append([]HeatPoint(nil), s.heat...),
	}
}

// Run steps the simulation on every tick until ctx is done.
func (s *Simulator) Run(ctx context.Context) error {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Debug().Dur("interval", s.interval).Int("collaborators", len(s.collabs)).Msg("presence simulator started")
	for {
		select {
		case <-ctx.Done():
			s.log.Debug().Msg("presence simulator stopped")
			return nil
		case <-ticker.Chan():
			s.Step()
		}
	}
}
