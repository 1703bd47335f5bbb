package session_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BryanPMX/CAF-sub004/pkg/session"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	setup := func(t *testing.T) (*session.Service, http.Handler, *session.SessionContext) {
		t.Helper()
		store := session.NewMemoryStore()
		svc := session.NewService(store, session.DefaultConfig(), slog.New(slog.DiscardHandler))

		var captured session.SessionContext
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sc, ok := session.FromContext(r.Context())
			require.True(t, ok)
			captured = sc
			w.WriteHeader(http.StatusOK)
		})

		return svc, session.Middleware(svc)(next), &captured
	}

	t.Run("attaches session context for a valid token", func(t *testing.T) {
		t.Parallel()
		svc, handler, captured := setup(t)
		userID := uuid.New()

		created, err := svc.Create(ctx, userID, "raw-token", httptest.NewRequest("POST", "/login", nil))
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/cases", nil)
		r.Header.Set("Authorization", "Bearer raw-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, created.ID, captured.SessionID)
		assert.Equal(t, userID, captured.UserID)
	})

	t.Run("missing authorization header", func(t *testing.T) {
		t.Parallel()
		_, handler, _ := setup(t)

		r := httptest.NewRequest("GET", "/cases", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed authorization scheme", func(t *testing.T) {
		t.Parallel()
		_, handler, _ := setup(t)

		r := httptest.NewRequest("GET", "/cases", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown and revoked tokens get identical responses", func(t *testing.T) {
		t.Parallel()
		svc, handler, _ := setup(t)
		userID := uuid.New()

		created, err := svc.Create(ctx, userID, "revoked-token", httptest.NewRequest("POST", "/login", nil))
		require.NoError(t, err)
		require.NoError(t, svc.RevokeSession(ctx, created.ID, userID))

		responses := make([]*httptest.ResponseRecorder, 0, 2)
		for _, token := range []string{"never-issued", "revoked-token"} {
			r := httptest.NewRequest("GET", "/cases", nil)
			r.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			responses = append(responses, w)
		}

		assert.Equal(t, http.StatusUnauthorized, responses[0].Code)
		assert.Equal(t, http.StatusUnauthorized, responses[1].Code)
		assert.Equal(t, responses[0].Body.String(), responses[1].Body.String())
	})
}
