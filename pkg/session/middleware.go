package session

import (
	"net/http"
	"strings"
)

// Middleware implements the Authenticate(token) -> SessionContext contract
// for the surrounding application: it reads the bearer token, validates the
// session, and attaches the session identity to the request context.
//
// Every failure variant produces the same 401 response. In particular,
// ErrSessionExpiredDueToInactivity is logged by the service for audit but is
// indistinguishable to the credential holder from a token that never existed.
func Middleware(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			sess, err := svc.Validate(r.Context(), svc.HashToken(token))
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := WithSessionContext(r.Context(), SessionContext{
				SessionID: sess.ID,
				UserID:    sess.UserID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return "", false
	}

	token := strings.TrimSpace(auth[len(prefix):])
	return token, token != ""
}
