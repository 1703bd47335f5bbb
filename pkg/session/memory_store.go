package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store with an in-process map. It backs unit tests
// and single-node development setups; production deployments use
// PostgresStore or RedisStore.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session // by id
	byHash   map[string]uuid.UUID   // token hash -> id
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]*Session),
		byHash:   make(map[string]uuid.UUID),
	}
}

// Insert stores a new session, enforcing token hash uniqueness.
func (m *MemoryStore) Insert(ctx context.Context, s *Session) error {
	if s == nil || s.TokenHash == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byHash[s.TokenHash]; exists {
		return ErrStore
	}

	cp := *s
	m.sessions[s.ID] = &cp
	m.byHash[s.TokenHash] = s.ID
	return nil
}

// FindActiveByTokenHash returns the active, non-hard-expired session for the
// token hash, or ErrSessionNotFoundOrExpired.
func (m *MemoryStore) FindActiveByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byHash[tokenHash]
	if !ok {
		return nil, ErrSessionNotFoundOrExpired
	}

	s := m.sessions[id]
	if s == nil || !s.IsActive || !s.ExpiresAt.After(now) {
		return nil, ErrSessionNotFoundOrExpired
	}

	cp := *s
	return &cp, nil
}

// ListActiveByUser returns the user's active, non-hard-expired sessions
// ordered by LastActivity ascending.
func (m *MemoryStore) ListActiveByUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Session
	for _, s := range m.sessions {
		if s.UserID == userID && s.IsActive && s.ExpiresAt.After(now) {
			out = append(out, *s)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].LastActivity.Before(out[j].LastActivity)
	})
	return out, nil
}

// UpdateActivity sets LastActivity for the session.
func (m *MemoryStore) UpdateActivity(ctx context.Context, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFoundOrExpired
	}

	s.LastActivity = at
	s.UpdatedAt = at
	return nil
}

// MarkInactive flips IsActive to false for the session.
func (m *MemoryStore) MarkInactive(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFoundOrExpired
	}

	s.IsActive = false
	s.UpdatedAt = time.Now()
	return nil
}

// MarkInactiveOwned flips IsActive for the session only when owned by userID.
func (m *MemoryStore) MarkInactiveOwned(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok || s.UserID != userID {
		return false, nil
	}

	s.IsActive = false
	s.UpdatedAt = time.Now()
	return true, nil
}

// MarkAllInactiveByUser flips IsActive for every session owned by the user.
func (m *MemoryStore) MarkAllInactiveByUser(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for _, s := range m.sessions {
		if s.UserID == userID {
			s.IsActive = false
			s.UpdatedAt = now
		}
	}
	return nil
}

// Delete hard-deletes the session.
func (m *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		delete(m.byHash, s.TokenHash)
		delete(m.sessions, id)
	}
	return nil
}

// DeleteExpired hard-deletes hard-expired sessions and active sessions whose
// LastActivity is before idleCutoff.
func (m *MemoryStore) DeleteExpired(ctx context.Context, now, idleCutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted int64
	for id, s := range m.sessions {
		if now.After(s.ExpiresAt) || (s.IsActive && s.LastActivity.Before(idleCutoff)) {
			delete(m.byHash, s.TokenHash)
			delete(m.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

// Len reports the number of stored sessions, swept or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
