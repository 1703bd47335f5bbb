package session

import "time"

// Config is the process-wide session policy. It is loaded once at startup
// and passed to NewService by value; there is no runtime mutation API, so
// changing policy requires a restart.
type Config struct {
	// MaxConcurrentSessions caps active sessions per user. Exceeding the cap
	// on login evicts the least-recently-active session.
	MaxConcurrentSessions int `env:"SESSION_MAX_CONCURRENT" envDefault:"5" validate:"gte=1"`

	// SessionTimeout is the absolute session lifetime. ExpiresAt is always
	// CreatedAt + SessionTimeout and is never extended.
	SessionTimeout time.Duration `env:"SESSION_TIMEOUT" envDefault:"24h" validate:"gt=0"`

	// InactivityTimeout is the sliding idle ceiling. A session unused for
	// longer than this fails validation even before its hard expiry.
	InactivityTimeout time.Duration `env:"SESSION_INACTIVITY_TIMEOUT" envDefault:"2h" validate:"gt=0,ltefield=SessionTimeout"`

	// CleanupInterval is the period of the background hard-delete sweep
	// (0 disables the sweep).
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
}

// DefaultConfig returns the default session policy.
func DefaultConfig() Config {
	return Config{
		MaxConcurrentSessions: 5,
		SessionTimeout:        24 * time.Hour,
		InactivityTimeout:     2 * time.Hour,
		CleanupInterval:       5 * time.Minute,
	}
}
