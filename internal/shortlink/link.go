// Package shortlink implements the link lifecycle engine: token generation,
// activation and expiry semantics, and click recording.
package shortlink

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates no link exists for the given token.
	ErrNotFound = errors.New("link not found")

	// ErrDuplicateToken indicates an insert collided with an existing token.
	// Callers retry with a freshly generated token.
	ErrDuplicateToken = errors.New("token already exists")

	// ErrNotResolvable indicates the token cannot be resolved: it is unknown,
	// deactivated, or expired.
	ErrNotResolvable = errors.New("link not resolvable")
)

// ShortLink is a mapping from a short token to a target URL.
// Active starts true and transitions to false exactly once; an inactive link
// is never resolvable regardless of DueDate.
type ShortLink struct {
	ID          int64
	Token       string
	OriginalURL string
	Active      bool
	DueDate     time.Time
	CreatedAt   time.Time
}

// Expired reports whether the link is past its due date at the given instant.
// Expiry is evaluated strictly; there is no grace period. An active link past
// its due date may still be observed as active until a resolve or the sweeper
// deactivates it.
func (l ShortLink) Expired(now time.Time) bool {
	return l.DueDate.Before(now)
}

// ClickEvent records a single successful resolve of a link.
// Events are append-only: created once, never mutated.
type ClickEvent struct {
	ID        int64
	LinkID    int64
	ClickedAt time.Time
}

// ListFilter selects which links a listing returns.
type ListFilter string

const (
	FilterAll      ListFilter = "all"
	FilterActive   ListFilter = "active"
	FilterInactive ListFilter = "inactive"
)
