// Package workspace is the single source of truth for projects, pages,
// kanban boards, chat and users. Every mutation is a named operation that
// runs under one lock, applies gamification side effects, and queues the
// resulting toasts. Reads return deep copies.
package workspace

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/nhle/flowstate/internal/gamify"
	"github.com/nhle/flowstate/internal/metrics"
	"github.com/nhle/flowstate/internal/model"
)

// Notifier receives the toasts produced by workspace operations.
type Notifier interface {
	Push(kind model.ToastKind, message, icon string) model.Toast
}

type nopNotifier struct{}

func (nopNotifier) Push(kind model.ToastKind, message, icon string) model.Toast {
	return model.Toast{Kind: kind, Message: message, Icon: icon}
}

// Workspace is safe for concurrent use.
type Workspace struct {
	mu sync.RWMutex

	clock   clockwork.Clock
	notify  Notifier
	log     zerolog.Logger
	metrics *metrics.Recorder
	edits   gamify.EditPolicy

	users        map[string]*model.User
	userOrder    []string
	projects     map[string]*project
	projectOrder []string

	currentUserID   string
	activeProjectID string
	nav             model.NavigationTarget

	// pending collects events raised inside the current operation; apply
	// flushes them to the notifier once the lock is released.
	pending []gamify.Event
}

type Option func(*Workspace)

func WithClock(c clockwork.Clock) Option {
	return func(w *Workspace) { w.clock = c }
}

func WithNotifier(n Notifier) Option {
	return func(w *Workspace) { w.notify = n }
}

func WithLogger(l zerolog.Logger) Option {
	return func(w *Workspace) { w.log = l }
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(w *Workspace) { w.metrics = r }
}

// WithEditPolicy decides which card edits pay XP. The default pays every
// edit.
func WithEditPolicy(p gamify.EditPolicy) Option {
	return func(w *Workspace) { w.edits = p }
}

// New builds a workspace from data. The current user and active project
// named by data must exist.
func New(data Data, opts ...Option) (*Workspace, error) {
	w := &Workspace{
		clock:    clockwork.NewRealClock(),
		notify:   nopNotifier{},
		log:      zerolog.Nop(),
		edits:    gamify.Unlimited{},
		users:    make(map[string]*model.User),
		projects: make(map[string]*project),
		nav:      model.NavigationTarget{View: model.ViewDashboard},
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, u := range data.Users {
		if _, dup := w.users[u.ID]; dup {
			return nil, invalid("duplicate user %q", u.ID)
		}
		u = gamify.Normalize(u.Clone())
		w.users[u.ID] = &u
		w.userOrder = append(w.userOrder, u.ID)
	}
	pageIDs := make(map[string]bool)
	for _, p := range data.Projects {
		if _, dup := w.projects[p.ID]; dup {
			return nil, invalid("duplicate project %q", p.ID)
		}
		proj, err := loadProject(p, pageIDs)
		if err != nil {
			return nil, err
		}
		w.projects[p.ID] = proj
		w.projectOrder = append(w.projectOrder, p.ID)
	}

	if _, ok := w.users[data.CurrentUserID]; !ok {
		return nil, notFound("user", data.CurrentUserID)
	}
	if _, ok := w.projects[data.ActiveProjectID]; !ok {
		return nil, notFound("project", data.ActiveProjectID)
	}
	w.currentUserID = data.CurrentUserID
	w.activeProjectID = data.ActiveProjectID
	return w, nil
}

// apply runs fn under the write lock and then delivers queued toasts,
// counts the command and logs the outcome.
func (w *Workspace) apply(op string, fn func() error) error {
	w.mu.Lock()
	err := fn()
	events := w.pending
	w.pending = nil
	w.mu.Unlock()

	for _, e := range events {
		w.notify.Push(e.Kind, e.Message, e.Icon)
	}
	w.metrics.Command(op, result(err))

	if err != nil {
		w.log.Warn().Str("op", op).Err(err).Msg("command rejected")
	} else {
		w.log.Debug().Str("op", op).Int("toasts", len(events)).Msg("command applied")
	}
	return err
}

// award pays XP to a user and queues the events it raised. Callers hold
// the write lock.
func (w *Workspace) award(userID string, delta int, message string) {
	u, ok := w.users[userID]
	if !ok {
		return
	}
	updated, events := gamify.AwardXP(*u, delta, message)
	*u = updated
	w.pending = append(w.pending, events...)
	w.metrics.XP(delta)
}

func (w *Workspace) completeTask(userID string) {
	u, ok := w.users[userID]
	if !ok {
		return
	}
	updated, events := gamify.CompleteTask(*u)
	*u = updated
	w.pending = append(w.pending, events...)
	w.metrics.XP(gamify.XPTaskCompleted)
}

func (w *Workspace) queue(kind model.ToastKind, message string) {
	w.pending = append(w.pending, gamify.Event{Kind: kind, Message: message})
}

// requireWriter fails with ErrForbidden for read-only roles. Callers hold
// the lock.
func (w *Workspace) requireWriter() error {
	u := w.users[w.currentUserID]
	if u.Role.ReadOnly() {
		return fmt.Errorf("%s is a %s: %w", u.Name, u.Role, ErrForbidden)
	}
	return nil
}

func (w *Workspace) active() *project {
	return w.projects[w.activeProjectID]
}

func (w *Workspace) current() *model.User {
	return w.users[w.currentUserID]
}

// audit appends an entry to the active project's log.
func (w *Workspace) audit(action, target string) {
	p := w.active()
	p.audit = append(p.audit, model.AuditLogEntry{
		ID:        newID("log"),
		ActorID:   w.currentUserID,
		Action:    action,
		Target:    target,
		Timestamp: w.clock.Now().Format("Jan 2 15:04"),
	})
}

// newID returns a time-ordered id tagged with the entity kind.
func newID(kind string) string {
	return kind + "-" + uuid.Must(uuid.NewV7()).String()
}

// Navigate records where the view layer should go next. A target page or
// card that lives in another project makes that project active.
func (w *Workspace) Navigate(target model.NavigationTarget) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if id := w.owner(target); id != "" {
		w.activeProjectID = id
	}
	w.nav = target
}

// owner returns the project holding the target's page or card, or "".
func (w *Workspace) owner(target model.NavigationTarget) string {
	for _, pid := range w.projectOrder {
		p := w.projects[pid]
		if target.PageID != "" {
			if _, ok := p.pages[target.PageID]; ok {
				return pid
			}
		}
		if target.CardID != "" {
			for _, col := range p.columns {
				for _, c := range col.Cards {
					if c.ID == target.CardID {
						return pid
					}
				}
			}
		}
	}
	return ""
}

// Navigation returns the current navigation target.
func (w *Workspace) Navigation() model.NavigationTarget {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.nav
}
