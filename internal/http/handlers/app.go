package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"kakasaku_backend/internal/domain"
	"kakasaku_backend/internal/i18nfmt"
	"kakasaku_backend/internal/infra"
	"kakasaku_backend/internal/middleware"
	"kakasaku_backend/internal/realtime"
	"kakasaku_backend/internal/stats"
)

// ChangePublisher pushes change notifications onto the realtime bus.
type ChangePublisher interface {
	Publish(ctx context.Context, change realtime.Change) error
}

// SessionRevoker invalidates session token ids.
type SessionRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// ProgressSource serves live aggregation snapshots.
type ProgressSource interface {
	General(ctx context.Context) (stats.Snapshot, error)
	Program(ctx context.Context, programID string) (stats.Snapshot, error)
	Forget(programID string)
}

// App bundles every collaborator the handlers need. Components receive it
// explicitly; nothing reaches for a hidden global client.
type App struct {
	SQL         infra.SQLExecutor
	Donations   domain.DonationRepository
	Programs    domain.ProgramRepository
	Members     domain.MemberRepository
	Admins      domain.AdminRepository
	Bus         ChangePublisher
	Hub         *realtime.Hub
	Stats       ProgressSource
	Revocations SessionRevoker
	Logger      zerolog.Logger
	Validate    *validator.Validate
	JWTSecret   string
	SessionTTL  time.Duration

	// AllowedOrigins gates websocket handshakes; same list the CORS
	// middleware uses for regular requests.
	AllowedOrigins []string
}

// NewApp wires the default repository implementations over the SQL executor.
func NewApp(sql infra.SQLExecutor, deps App) *App {
	app := &deps
	app.SQL = sql
	if app.Validate == nil {
		app.Validate = validator.New()
	}
	if app.SessionTTL == 0 {
		app.SessionTTL = 24 * time.Hour
	}
	return app
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

// msgs picks the notification catalog for the request locale.
func (a *App) msgs(r *http.Request) i18nfmt.Messages {
	return i18nfmt.For(middleware.LocaleFromContext(r.Context()))
}

func (a *App) locale(r *http.Request) string {
	return middleware.LocaleFromContext(r.Context())
}

// fail converts a domain error into the JSON error envelope with a
// localized message.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	m := a.msgs(r)
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		a.error(w, http.StatusConflict, "duplicate_email", m.DuplicateEmail)
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", m.NotFound)
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", m.Unauthorized)
	case errors.Is(err, domain.ErrAmountTooSmall):
		a.error(w, http.StatusBadRequest, "amount_too_small", m.AmountTooSmall)
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusBadRequest, "invalid_payload", m.FormIncomplete)
	default:
		a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		a.error(w, http.StatusServiceUnavailable, "unavailable", m.GenericError)
	}
}

// publish sends a change event; failures are logged, never surfaced to the
// caller, because the write itself already succeeded.
func (a *App) publish(ctx context.Context, change realtime.Change) {
	if a.Bus == nil {
		return
	}
	if err := a.Bus.Publish(ctx, change); err != nil {
		a.Logger.Warn().Err(err).Str("collection", change.Collection).Msg("publish change failed")
	}
}
