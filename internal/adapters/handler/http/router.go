package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/wellnest/api/internal/core/domain"
	"github.com/wellnest/api/internal/metrics"
)

type Handlers struct {
	Auth        *AuthHandler
	Users       *UserHandler
	Journals    *JournalHandler
	Rants       *RantHandler
	Care        *CareHandler
	Assessments *AssessmentHandler
	Manager     *ManagerHandler
	Health      *HealthHandler
}

type RouterConfig struct {
	CORSOrigin string
	// TrustProxy rewrites RemoteAddr from proxy headers. Off, the peer
	// address is used, so clients cannot pick their own rate limit key.
	TrustProxy bool
	// Metrics is nil when performance monitoring is off.
	Metrics     *metrics.Metrics
	AuthLimiter *RateLimiter
	Logger      *zap.Logger
}

func NewHandler(h Handlers, mw *AuthMiddleware, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(requestLogger(cfg.Logger))
	r.Use(recoverer(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Message: "method not allowed"})
	})

	r.Get("/healthz", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Get("/health", h.Health.Health)

	limit := func(next http.Handler) http.Handler { return next }
	if cfg.AuthLimiter != nil {
		limit = cfg.AuthLimiter.Handler
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(limit).Post("/register", h.Auth.Register)
			r.With(limit).Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.Post("/logout", h.Auth.Logout)
			r.With(mw.Authenticate).Get("/me", h.Users.GetMe)
		})

		// Public reads.
		r.Get("/rants", h.Rants.ListRants)
		r.Get("/courses", h.Care.ListCourses)
		r.Get("/courses/{id}", h.Care.GetCourse)

		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate)

			r.Route("/journals", func(r chi.Router) {
				r.Get("/", h.Journals.ListJournals)
				r.Post("/", h.Journals.CreateJournal)
				r.Delete("/{id}", h.Journals.DeleteJournal)
			})

			r.Route("/moods", func(r chi.Router) {
				r.Get("/", h.Journals.ListMoods)
				r.Post("/", h.Journals.CreateMood)
				r.Get("/stats", h.Journals.MoodStats)
			})

			r.Post("/rants", h.Rants.CreateRant)
			r.Post("/rants/{id}/support", h.Rants.Support)

			r.Route("/therapists", func(r chi.Router) {
				r.Get("/", h.Care.ListTherapists)
				r.Get("/{id}", h.Care.GetTherapist)
				r.With(mw.Require(domain.RoleAdmin)).Post("/", h.Care.CreateTherapist)
			})

			r.Route("/appointments", func(r chi.Router) {
				r.Get("/", h.Care.ListAppointments)
				r.Post("/", h.Care.CreateAppointment)
				r.Patch("/{id}", h.Care.UpdateAppointment)
			})

			r.With(mw.Require(domain.RoleAdmin)).Post("/courses", h.Care.CreateCourse)

			r.Route("/assessments", func(r chi.Router) {
				r.Get("/", h.Assessments.List)
				r.With(mw.Require(domain.RoleManager)).Post("/", h.Assessments.Create)
				r.Post("/{id}/responses", h.Assessments.Respond)
				r.Get("/{id}/responses", h.Assessments.Responses)
			})

			r.Route("/manager", func(r chi.Router) {
				r.Use(mw.Require(domain.RoleManager))
				r.Get("/metrics", h.Manager.Metrics)
				r.Get("/employees", h.Manager.Employees)
				r.Get("/surveys", h.Manager.Surveys)
				r.Post("/surveys", h.Manager.CreateSurvey)
			})

			r.With(mw.Require(domain.RoleAdmin)).Post("/organizations", h.Users.CreateOrganization)
		})
	})

	return r
}
