package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"kakasaku_backend/internal/domain"
	"kakasaku_backend/internal/middleware"
	"kakasaku_backend/internal/realtime"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthLogin checks admin credentials and issues a session token. Unknown
// email and wrong password produce the same response so the endpoint does
// not leak which accounts exist.
func (a *App) AuthLogin(w http.ResponseWriter, r *http.Request) {
	m := a.msgs(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_payload", m.FormIncomplete)
		return
	}
	if err := a.Validate.Struct(req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_payload", m.FormIncomplete)
		return
	}

	admin, err := a.Admins.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusUnauthorized, "invalid_credentials", m.LoginFailed)
		return
	}
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		a.error(w, http.StatusUnauthorized, "invalid_credentials", m.LoginFailed)
		return
	}

	token, claims, err := middleware.SignSession(a.JWTSecret, admin.ID, a.SessionTTL)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.publish(r.Context(), realtime.Change{
		Collection: realtime.CollectionSessions,
		Op:         realtime.OpInsert,
		RecordID:   admin.ID,
		NewRow:     json.RawMessage(`{"event":"signed_in"}`),
	})

	a.json(w, http.StatusOK, map[string]any{
		"token":      token,
		"admin_id":   admin.ID,
		"email":      admin.Email,
		"expires_at": claims.ExpiresAt.Time,
	})
}

// AuthLogout revokes the presented token for the remainder of its lifetime
// and announces the sign-out on the bus.
func (a *App) AuthLogout(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	claims, err := middleware.ParseSession(a.JWTSecret, token)
	if err != nil {
		a.fail(w, r, domain.ErrUnauthorized)
		return
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if err := a.Revocations.Revoke(r.Context(), claims.ID, remaining); err != nil {
		a.fail(w, r, err)
		return
	}

	a.publish(r.Context(), realtime.Change{
		Collection: realtime.CollectionSessions,
		Op:         realtime.OpDelete,
		RecordID:   claims.Subject,
		OldRow:     json.RawMessage(`{"event":"signed_out"}`),
	})

	w.WriteHeader(http.StatusNoContent)
}

// AuthSession reports who the current token belongs to. The auth
// middleware already verified it, so this only echoes the context.
func (a *App) AuthSession(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"admin_id": middleware.AdminIDFromContext(r.Context()),
	})
}
