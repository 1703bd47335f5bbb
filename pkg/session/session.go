package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side record binding a hashed bearer token to a user.
//
// DeviceInfo, IPAddress, and UserAgent are informational only. They feed
// audit trails and the "your devices" view and must never be used for
// authorization decisions.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	TokenHash string    `json:"-"`

	DeviceInfo string `json:"device_info"`
	IPAddress  string `json:"ip_address"`
	UserAgent  string `json:"user_agent"`

	// LastActivity advances on every successful validation. ExpiresAt is the
	// absolute ceiling fixed at creation and is never extended. IsActive
	// flips to false on revocation or detected staleness; an inactive
	// session is never valid even before ExpiresAt.
	LastActivity time.Time `json:"last_activity"`
	ExpiresAt    time.Time `json:"expires_at"`
	IsActive     bool      `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsExpired reports whether the session passed its hard ceiling at now.
func (s *Session) IsExpired(now time.Time) bool {
	return s != nil && now.After(s.ExpiresAt)
}

// IdleFor returns the time elapsed since the last validated use.
func (s *Session) IdleFor(now time.Time) time.Duration {
	if s == nil {
		return 0
	}
	return now.Sub(s.LastActivity)
}
