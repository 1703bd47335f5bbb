package session

import "errors"

var (
	// ErrSessionNotFoundOrExpired indicates the token hash matched no valid
	// session. It covers "never existed", "revoked", and "hard-expired"
	// uniformly: distinguishing them would aid token-guessing attacks.
	ErrSessionNotFoundOrExpired = errors.New("session.not_found_or_expired")

	// ErrSessionExpiredDueToInactivity indicates the session exceeded the
	// idle window and was flagged inactive during this call. The distinction
	// from ErrSessionNotFoundOrExpired exists for audit logging only and
	// must not leak to the credential holder.
	ErrSessionExpiredDueToInactivity = errors.New("session.expired_due_to_inactivity")

	// ErrNotFoundOrForbidden indicates a revoke target that does not exist
	// or is not owned by the caller. The two cases are deliberately
	// indistinguishable to prevent session-id enumeration.
	ErrNotFoundOrForbidden = errors.New("session.not_found_or_forbidden")

	// ErrStore indicates an underlying persistence failure. It is always
	// surfaced, never silently retried by this layer.
	ErrStore = errors.New("session.store_failure")

	// ErrInvalidSession indicates a malformed session passed to a store.
	ErrInvalidSession = errors.New("session.invalid")
)
