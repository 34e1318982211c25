// Package toast holds the session's transient notifications. Each toast
// lives for a fixed display duration unless dismissed earlier.
package toast

import (
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/nhle/flowstate/internal/model"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 5 * time.Second

// Queue is safe for concurrent use.
type Queue struct {
	items   *cache.Cache
	seq     atomic.Uint64
	clock   clockwork.Clock
	log     zerolog.Logger
	observe func(model.Toast)
}

type Option func(*Queue)

func WithLogger(l zerolog.Logger) Option {
	return func(q *Queue) { q.log = l }
}

// WithClock sets the clock used to stamp CreatedAt. Expiry always follows
// wall time.
func WithClock(c clockwork.Clock) Option {
	return func(q *Queue) { q.clock = c }
}

// WithObserver registers a callback run for every pushed toast.
func WithObserver(fn func(model.Toast)) Option {
	return func(q *Queue) { q.observe = fn }
}

// New returns an empty queue whose toasts expire after ttl. A non-positive
// ttl uses DefaultTTL.
func New(ttl time.Duration, opts ...Option) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	q := &Queue{
		items: cache.New(ttl, ttl),
		clock: clockwork.NewRealClock(),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(q)
	}
	q.items.OnEvicted(func(key string, v interface{}) {
		if t, ok := v.(model.Toast); ok {
			q.log.Debug().Uint64("toast", t.ID).Str("kind", string(t.Kind)).Msg("toast removed")
		}
	})
	return q
}

// Push adds a toast and returns it with its assigned id.
func (q *Queue) Push(kind model.ToastKind, message, icon string) model.Toast {
	t := model.Toast{
		ID:        q.seq.Add(1),
		Kind:      kind,
		Message:   message,
		Icon:      icon,
		CreatedAt: q.clock.Now(),
	}
	q.items.SetDefault(key(t.ID), t)
	if q.observe != nil {
		q.observe(t)
	}
	return t
}

// Remove dismisses a toast. Unknown ids are ignored.
func (q *Queue) Remove(id uint64) {
	q.items.Delete(key(id))
}

// List returns the unexpired toasts, newest first.
func (q *Queue) List() []model.Toast {
	items := q.items.Items()
	out := make([]model.Toast, 0, len(items))
	for _, it := range items {
		if t, ok := it.Object.(model.Toast); ok {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (q *Queue) Len() int {
	return len(q.List())
}

func key(id uint64) string {
	return strconv.FormatUint(id, 10)
}
