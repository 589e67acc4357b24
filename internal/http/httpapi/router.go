package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"kakasaku_backend/internal/http/handlers"
	"kakasaku_backend/internal/infra"
	"kakasaku_backend/internal/infra/geoip"
	"kakasaku_backend/internal/middleware"
)

// NewRouter builds the full route tree. Public routes sit in front; the
// admin subtree is gated by the session middleware.
func NewRouter(app *handlers.App, cfg *infra.Config, sessions middleware.RevocationChecker, country geoip.CountryResolver) http.Handler {
	r := chi.NewRouter()

	var lookup middleware.CountryLookup
	if country != nil {
		lookup = country.CountryCode
	}

	// Middlewares dasar
	r.Use(
		middleware.RequestID,
		middleware.Logger(app.Logger),
		chimw.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Locale"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		middleware.I18N("id", lookup),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	// Health
	r.Get("/v1/healthz", app.Health)

	// Publik: donasi, pendaftaran anggota, program, progress, login
	r.Post("/v1/donations", app.DonationsCreate)
	r.Get("/v1/donations/stats", app.DonationsStats)
	r.Post("/v1/kakasaku/members", app.MembersCreate)
	r.Route("/v1/programs", func(r chi.Router) {
		r.Get("/", app.ProgramsList)
		r.Get("/{id}", app.ProgramsGet)
		r.Get("/{id}/progress", app.ProgramProgress)
	})
	r.Get("/v1/events", app.Events)
	r.Post("/v1/auth/login", app.AuthLogin)

	// Admin: semua rute di bawah ini butuh sesi yang masih hidup
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(app.JWTSecret, sessions))

		r.Get("/v1/auth/session", app.AuthSession)
		r.Post("/v1/auth/logout", app.AuthLogout)

		r.Route("/v1/admin", func(r chi.Router) {
			r.Get("/summary", app.AdminSummary)
			r.Get("/donations", app.DonationsList)
			r.Get("/kakasaku/members", app.MembersList)
			r.Post("/kakasaku/members/{id}/toggle", app.MemberTogglePayment)
			r.Route("/programs", func(r chi.Router) {
				r.Post("/", app.ProgramsCreate)
				r.Put("/{id}", app.ProgramsUpdate)
				r.Delete("/{id}", app.ProgramsDelete)
			})
		})
	})

	return r
}
