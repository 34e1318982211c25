package model

import "time"

// ToastKind classifies a transient notification.
type ToastKind string

const (
	ToastXP      ToastKind = "xp"
	ToastBadge   ToastKind = "badge"
	ToastLevelUp ToastKind = "levelup"
	ToastInfo    ToastKind = "info"
	ToastWebhook ToastKind = "webhook"
)

// Toast is an ephemeral, session-scoped notification. IDs increase
// monotonically within a queue.
type Toast struct {
	ID        uint64    `json:"id"`
	Kind      ToastKind `json:"kind"`
	Message   string    `json:"message"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
