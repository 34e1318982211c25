package gamify

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/nhle/flowstate/internal/model"
)

// EditPolicy decides whether a card edit pays XP.
type EditPolicy interface {
	AllowEdit(userID string, now time.Time) bool
}

// Unlimited pays for every edit.
type Unlimited struct{}

func (Unlimited) AllowEdit(string, time.Time) bool { return true }

// Limited pays at most perMinute edits per user per minute, allowing burst
// edits back to back.
type Limited struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewLimited returns a per-user token bucket policy. Values below one are
// raised to one.
func NewLimited(perMinute, burst int) *Limited {
	if perMinute < 1 {
		perMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &Limited{
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *Limited) AllowEdit(userID string, now time.Time) bool {
	l.mu.Lock()
	lim, ok := l.limiters[userID]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[userID] = lim
	}
	l.mu.Unlock()
	return lim.AllowN(now, 1)
}

// PolicyFromConfig builds the edit policy named by cfg.
func PolicyFromConfig(cfg model.GamificationConfig) (EditPolicy, error) {
	switch cfg.EditXPPolicy {
	case "", model.EditXPUnlimited:
		return Unlimited{}, nil
	case model.EditXPLimited:
		if cfg.EditXPPerMinute <= 0 {
			return nil, fmt.Errorf("edit xp per minute must be positive, got %d", cfg.EditXPPerMinute)
		}
		return NewLimited(cfg.EditXPPerMinute, cfg.EditXPBurst), nil
	default:
		return nil, fmt.Errorf("unknown edit xp policy %q", cfg.EditXPPolicy)
	}
}
