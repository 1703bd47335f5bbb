package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BryanPMX/CAF-sub004/pkg/session"
)

// newRouter builds the HTTP surface. Session issuance sits outside the auth
// middleware: it is called by the login flow after the caller's credentials
// have already been verified upstream. Everything under the middleware
// requires a valid bearer token.
func newRouter(svc *session.Service, healthcheck func(context.Context) error) http.Handler {
	h := &handlers{svc: svc}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler(healthcheck))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Post("/sessions", h.createSession)

	r.Group(func(r chi.Router) {
		r.Use(session.Middleware(svc))

		r.Get("/auth/check", h.authCheck)
		r.Get("/sessions", h.listSessions)
		r.Delete("/sessions/{id}", h.revokeSession)
		r.Delete("/sessions", h.revokeAllSessions)
	})

	return r
}

type handlers struct {
	svc *session.Service
}

type createSessionRequest struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

func (h *handlers) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user_id")
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	sess, err := h.svc.Create(r.Context(), userID, req.Token, r)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sess)
}

func (h *handlers) authCheck(w http.ResponseWriter, r *http.Request) {
	sc, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"session_id": sc.SessionID.String(),
		"user_id":    sc.UserID.String(),
	})
}

func (h *handlers) listSessions(w http.ResponseWriter, r *http.Request) {
	sc, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sessions, err := h.svc.GetActiveSessions(r.Context(), sc.UserID)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

func (h *handlers) revokeSession(w http.ResponseWriter, r *http.Request) {
	sc, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		// An unparseable id gets the same answer as a session the caller
		// does not own: no probing which ids exist.
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	if err := h.svc.RevokeSession(r.Context(), sessionID, sc.UserID); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) revokeAllSessions(w http.ResponseWriter, r *http.Request) {
	sc, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.RevokeAllUserSessions(r.Context(), sc.UserID); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func healthHandler(check func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := check(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "unhealthy")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// writeServiceError maps service errors onto status codes. Store failures
// stay generic; the detail lands in the log, not the response.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFoundOrExpired),
		errors.Is(err, session.ErrSessionExpiredDueToInactivity):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, session.ErrNotFoundOrForbidden):
		writeError(w, http.StatusNotFound, "session not found")
	default:
		slog.ErrorContext(ctx, "session operation failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
