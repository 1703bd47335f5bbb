package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/BryanPMX/CAF-sub004/pkg/devicecontext"
)

// Service is the session lifecycle state machine: creation with eviction,
// validation with sliding expiry, revocation, and cleanup.
//
// All operations are short store round-trips. Per-session ordering of
// LastActivity updates relies on the store serializing writes to a row;
// no application-level lock is taken.
type Service struct {
	store Store
	cfg   Config
	log   *slog.Logger
	now   func() time.Time
}

// ServiceOption configures optional Service behavior.
type ServiceOption func(*Service)

// WithClock overrides the service's time source. Intended for tests that
// need to move sessions across their expiry windows without sleeping.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService returns a Service bound to the given store and policy.
// A nil logger falls back to slog.Default().
func NewService(store Store, cfg Config, log *slog.Logger, opts ...ServiceOption) *Service {
	if log == nil {
		log = slog.Default()
	}

	s := &Service{
		store: store,
		cfg:   cfg,
		log:   log,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Config returns the policy the service was constructed with.
func (s *Service) Config() Config {
	return s.cfg
}

// HashToken returns the storage/lookup key for a raw bearer token, exposed
// so callers can compute it before calling Validate.
func (s *Service) HashToken(rawToken string) string {
	return HashToken(rawToken)
}

// Create opens a session for the user on successful login.
//
// When the user already holds MaxConcurrentSessions active sessions, the one
// with the oldest LastActivity is hard-deleted first (LRU by activity, not by
// creation: an old but recently used session survives over a newer idle one).
//
// Two logins for the same user racing each other can both observe a free
// slot and transiently exceed the cap by one; the next Create or sweep
// restores the invariant. This over-admission is tolerated deliberately
// instead of serializing logins behind a cross-request lock.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, rawToken string, r *http.Request) (*Session, error) {
	now := s.now()

	active, err := s.store.ListActiveByUser(ctx, userID, now)
	if err != nil {
		return nil, errors.Join(ErrStore, err)
	}

	if len(active) >= s.cfg.MaxConcurrentSessions {
		// ListActiveByUser orders by LastActivity ascending, so the first
		// entry is the eviction candidate.
		evicted := active[0]
		if err := s.store.Delete(ctx, evicted.ID); err != nil {
			return nil, errors.Join(ErrStore, err)
		}
		s.log.InfoContext(ctx, "evicted least recently active session",
			slog.String("session_id", evicted.ID.String()),
			slog.String("user_id", userID.String()),
			slog.Time("last_activity", evicted.LastActivity))
	}

	device := devicecontext.Extract(r)

	sess := &Session{
		ID:           uuid.New(),
		UserID:       userID,
		TokenHash:    HashToken(rawToken),
		DeviceInfo:   device.DeviceInfo,
		IPAddress:    device.IPAddress,
		UserAgent:    device.UserAgent,
		LastActivity: now,
		ExpiresAt:    now.Add(s.cfg.SessionTimeout),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Insert(ctx, sess); err != nil {
		return nil, errors.Join(ErrStore, err)
	}

	return sess, nil
}

// Validate checks a token hash against the store and refreshes the session's
// activity clock on success.
//
// A hash that matches no active, non-hard-expired row fails with
// ErrSessionNotFoundOrExpired. A matching session idle for longer than
// InactivityTimeout is flagged inactive and fails with
// ErrSessionExpiredDueToInactivity; the variant exists for audit logging and
// must be presented to the credential holder identically to the first case.
func (s *Service) Validate(ctx context.Context, tokenHash string) (*Session, error) {
	now := s.now()

	sess, err := s.store.FindActiveByTokenHash(ctx, tokenHash, now)
	if err != nil {
		if errors.Is(err, ErrSessionNotFoundOrExpired) {
			return nil, ErrSessionNotFoundOrExpired
		}
		return nil, errors.Join(ErrStore, err)
	}

	if sess.IdleFor(now) > s.cfg.InactivityTimeout {
		if err := s.store.MarkInactive(ctx, sess.ID); err != nil {
			return nil, errors.Join(ErrStore, err)
		}
		sess.IsActive = false
		s.log.InfoContext(ctx, "session expired due to inactivity",
			slog.String("session_id", sess.ID.String()),
			slog.String("user_id", sess.UserID.String()),
			slog.Duration("idle_for", sess.IdleFor(now)))
		return nil, ErrSessionExpiredDueToInactivity
	}

	if err := s.store.UpdateActivity(ctx, sess.ID, now); err != nil {
		return nil, errors.Join(ErrStore, err)
	}
	sess.LastActivity = now
	sess.UpdatedAt = now

	return sess, nil
}

// RevokeSession flips the session inactive when it is owned by userID.
// A missing row and a row owned by someone else both fail with
// ErrNotFoundOrForbidden.
func (s *Service) RevokeSession(ctx context.Context, sessionID, userID uuid.UUID) error {
	matched, err := s.store.MarkInactiveOwned(ctx, sessionID, userID)
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	if !matched {
		return ErrNotFoundOrForbidden
	}

	s.log.InfoContext(ctx, "session revoked",
		slog.String("session_id", sessionID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// RevokeAllUserSessions flips every session owned by the user inactive.
// Used on password change and forced logout-everywhere. Idempotent: zero
// matching rows is not an error.
func (s *Service) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.MarkAllInactiveByUser(ctx, userID); err != nil {
		return errors.Join(ErrStore, err)
	}

	s.log.InfoContext(ctx, "all user sessions revoked",
		slog.String("user_id", userID.String()))
	return nil
}

// GetActiveSessions returns the user's active, non-hard-expired sessions
// ordered by LastActivity ascending.
func (s *Service) GetActiveSessions(ctx context.Context, userID uuid.UUID) ([]Session, error) {
	sessions, err := s.store.ListActiveByUser(ctx, userID, s.now())
	if err != nil {
		return nil, errors.Join(ErrStore, err)
	}
	return sessions, nil
}

// Cleanup hard-deletes sessions past their hard expiry, plus sessions still
// flagged active that went idle-expired without a Validate call ever flipping
// their flag. It returns the number of rows removed.
func (s *Service) Cleanup(ctx context.Context) (int64, error) {
	now := s.now()

	deleted, err := s.store.DeleteExpired(ctx, now, now.Add(-s.cfg.InactivityTimeout))
	if err != nil {
		return 0, errors.Join(ErrStore, err)
	}
	return deleted, nil
}
