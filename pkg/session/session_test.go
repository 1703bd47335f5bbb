package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BryanPMX/CAF-sub004/pkg/session"
)

func TestSession_IsExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := &session.Session{ExpiresAt: now}

	assert.False(t, s.IsExpired(now), "expiry boundary itself is not expired")
	assert.False(t, s.IsExpired(now.Add(-time.Second)))
	assert.True(t, s.IsExpired(now.Add(time.Second)))
}

func TestSession_IdleFor(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := &session.Session{LastActivity: now.Add(-90 * time.Minute)}

	assert.Equal(t, 90*time.Minute, s.IdleFor(now))
}
