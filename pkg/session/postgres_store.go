package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BryanPMX/CAF-sub004/pkg/pg"
)

// PostgresStore implements Store on top of the backend's relational store.
//
// Per-session monotonicity of LastActivity relies on Postgres row-level
// locking of the UPDATE path; no application-level lock is taken.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore returns a session store backed by the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const sessionColumns = `id, user_id, token_hash, device_info, ip_address, user_agent,
	last_activity, expires_at, is_active, created_at, updated_at`

// Insert persists a new session. A token_hash collision (unique constraint)
// is surfaced, not swallowed: with 256-bit token entropy it indicates a bug
// or an attack, never normal operation.
func (p *PostgresStore) Insert(ctx context.Context, s *Session) error {
	if s == nil || s.TokenHash == "" {
		return ErrInvalidSession
	}

	_, err := p.pool.Exec(ctx, `
		INSERT INTO sessions (`+sessionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		s.ID, s.UserID, s.TokenHash, s.DeviceInfo, s.IPAddress, s.UserAgent,
		s.LastActivity, s.ExpiresAt, s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return fmt.Errorf("duplicate token hash: %w", err)
		}
		return err
	}
	return nil
}

// FindActiveByTokenHash returns the active, non-hard-expired session for the
// token hash, or ErrSessionNotFoundOrExpired.
func (p *PostgresStore) FindActiveByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*Session, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE token_hash = $1 AND is_active = TRUE AND expires_at > $2`,
		tokenHash, now,
	)

	s, err := scanSession(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrSessionNotFoundOrExpired
		}
		return nil, err
	}
	return s, nil
}

// ListActiveByUser returns the user's active, non-hard-expired sessions
// ordered by LastActivity ascending.
func (p *PostgresStore) ListActiveByUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]Session, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE user_id = $1 AND is_active = TRUE AND expires_at > $2
		ORDER BY last_activity ASC`,
		userID, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// UpdateActivity sets LastActivity for the session.
func (p *PostgresStore) UpdateActivity(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := p.pool.Exec(ctx, `
		UPDATE sessions SET last_activity = $2, updated_at = $2 WHERE id = $1`,
		id, at,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFoundOrExpired
	}
	return nil
}

// MarkInactive flips IsActive to false for the session.
func (p *PostgresStore) MarkInactive(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx, `
		UPDATE sessions SET is_active = FALSE, updated_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFoundOrExpired
	}
	return nil
}

// MarkInactiveOwned flips IsActive only when the session is owned by userID.
// The ownership predicate lives in the WHERE clause so a non-owner cannot
// learn whether the id exists.
func (p *PostgresStore) MarkInactiveOwned(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tag, err := p.pool.Exec(ctx, `
		UPDATE sessions SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// MarkAllInactiveByUser flips IsActive for every session owned by the user.
func (p *PostgresStore) MarkAllInactiveByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := p.pool.Exec(ctx, `
		UPDATE sessions SET is_active = FALSE, updated_at = NOW()
		WHERE user_id = $1 AND is_active = TRUE`,
		userID,
	)
	return err
}

// Delete hard-deletes the session.
func (p *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

// DeleteExpired hard-deletes hard-expired sessions and active sessions whose
// LastActivity is before idleCutoff.
func (p *PostgresStore) DeleteExpired(ctx context.Context, now, idleCutoff time.Time) (int64, error) {
	tag, err := p.pool.Exec(ctx, `
		DELETE FROM sessions
		WHERE expires_at < $1 OR (is_active = TRUE AND last_activity < $2)`,
		now, idleCutoff,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanSession(row pgx.Row) (*Session, error) {
	var s Session
	err := row.Scan(
		&s.ID, &s.UserID, &s.TokenHash, &s.DeviceInfo, &s.IPAddress, &s.UserAgent,
		&s.LastActivity, &s.ExpiresAt, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
