package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the persistence boundary for sessions. All session-table mutation
// in the application goes through this interface; no other component writes
// to it directly.
//
// The interface keeps the soft-flag/hard-delete duality explicit: MarkInactive
// and its bulk variants flip IsActive so revoked rows stay inspectable for
// audit until the sweep, while Delete and DeleteExpired remove rows outright
// (eviction and cleanup).
type Store interface {
	// Insert persists a new session. The token hash must be unique across
	// all stored sessions; a collision is surfaced as an error.
	Insert(ctx context.Context, s *Session) error

	// FindActiveByTokenHash returns the session matching the token hash
	// with IsActive true and ExpiresAt after now. Absence of such a row is
	// reported as ErrSessionNotFoundOrExpired.
	FindActiveByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*Session, error)

	// ListActiveByUser returns the user's active, non-hard-expired sessions
	// ordered by LastActivity ascending (oldest activity first).
	ListActiveByUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]Session, error)

	// UpdateActivity sets LastActivity for the session.
	UpdateActivity(ctx context.Context, id uuid.UUID, at time.Time) error

	// MarkInactive flips IsActive to false for the session.
	MarkInactive(ctx context.Context, id uuid.UUID) error

	// MarkInactiveOwned flips IsActive to false for the session only when it
	// is owned by userID, and reports whether a row matched.
	MarkInactiveOwned(ctx context.Context, id, userID uuid.UUID) (bool, error)

	// MarkAllInactiveByUser flips IsActive to false for every session owned
	// by the user. Zero matching rows is not an error.
	MarkAllInactiveByUser(ctx context.Context, userID uuid.UUID) error

	// Delete hard-deletes the session (eviction path).
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteExpired hard-deletes sessions past their hard expiry at now, and
	// sessions still flagged active whose LastActivity is before idleCutoff
	// (idle-expired rows never touched by a Validate call). It returns the
	// number of rows removed.
	DeleteExpired(ctx context.Context, now, idleCutoff time.Time) (int64, error)
}
