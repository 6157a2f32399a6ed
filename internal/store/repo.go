package store

import (
	"context"
	"errors"

	"github.com/RobotSudo/time-bot/internal/domain"
)

// ErrNotFound is returned by Get when no row exists for the user.
var ErrNotFound = errors.New("profile not found")

// Repo defines storage operations for user profiles and the scheduler's
// bookkeeping. All writes are upserts keyed by user ID; a row is created on
// first write with the remaining fields absent.
type Repo interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)

	// SetOffset stores the user's UTC offset, creating the row if needed.
	SetOffset(ctx context.Context, userID string, offset float64) error
	// SetBirthday stores the canonical MM-DD and clears last_announced,
	// since a changed birthday invalidates prior announcement state.
	SetBirthday(ctx context.Context, userID, md string) error

	// SetLastChecked records the local date (YYYY-MM-DD) the scheduler
	// evaluated the user, closing the once-per-local-day gate.
	SetLastChecked(ctx context.Context, userID, localDate string) error
	// SetLastAnnounced records the local year an announcement went out.
	SetLastAnnounced(ctx context.Context, userID string, year int) error

	Close() error
}
