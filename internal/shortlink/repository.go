package shortlink

import (
	"context"
	"time"
)

// LinkRepository is the durable store for ShortLink records.
// All coordination is delegated to the persistence engine: Deactivate and
// BulkDeactivate are each a single atomic write.
type LinkRepository interface {
	// Insert persists a new active link. Returns ErrDuplicateToken if the
	// token already exists.
	Insert(ctx context.Context, link *ShortLink) error

	// FindByToken returns the link for the token in any active state.
	// Returns ErrNotFound when absent.
	FindByToken(ctx context.Context, token string) (*ShortLink, error)

	// FindActiveByToken returns the link only if it is still active,
	// independent of its due date. Returns ErrNotFound otherwise.
	FindActiveByToken(ctx context.Context, token string) (*ShortLink, error)

	// Deactivate sets the link inactive if it is currently active and reports
	// whether a change occurred. Idempotent: false when already inactive or
	// unknown, without error.
	Deactivate(ctx context.Context, token string) (bool, error)

	// List returns links matching the filter ordered ascending by ID, plus
	// the total count matching the filter before pagination. A negative
	// limit returns everything from offset.
	List(ctx context.Context, filter ListFilter, offset, limit int) ([]ShortLink, int, error)

	// BulkDeactivate atomically deactivates every active link whose due date
	// is before now and returns the number of links changed.
	BulkDeactivate(ctx context.Context, now time.Time) (int64, error)
}

// ClickRepository is the append-only store for ClickEvent records.
type ClickRepository interface {
	// Record appends a click event for the link at the given instant.
	Record(ctx context.Context, linkID int64, at time.Time) error

	// CountSince counts click events for the link with ClickedAt >= since.
	CountSince(ctx context.Context, linkID int64, since time.Time) (int, error)
}
