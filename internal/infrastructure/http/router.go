package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/infrastructure/http/handlers"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler      *handlers.AuthHandler
	EmployeesHandler *handlers.EmployeesHandler
	HealthHandler    *handlers.HealthHandler
	RequireJWT       func(http.Handler) http.Handler // JWT auth for /api/employees/*
	Log              zerolog.Logger
	Secure           func(http.Handler) http.Handler
	IPRateLimit      func(http.Handler) http.Handler
	AuthRateLimit    func(http.Handler) http.Handler // stricter limit for /api/auth/*
	Metrics          bool                            // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(chimid.AllowContentType("application/json"))

		r.Route("/auth", func(r chi.Router) {
			if cfg.AuthRateLimit != nil {
				r.Use(cfg.AuthRateLimit)
			}
			r.Post("/login", cfg.AuthHandler.Login)
			r.Post("/request-otp", cfg.AuthHandler.RequestOTP)
			r.Post("/reset-password", cfg.AuthHandler.ResetPassword)
		})

		if cfg.EmployeesHandler != nil && cfg.RequireJWT != nil {
			r.Route("/employees", func(r chi.Router) {
				r.Use(cfg.RequireJWT)
				r.Get("/", cfg.EmployeesHandler.List)
				r.Post("/", cfg.EmployeesHandler.Create)
				r.Get("/me", cfg.EmployeesHandler.Me)
				r.Get("/departments", cfg.EmployeesHandler.Departments)
				r.Get("/{id}", cfg.EmployeesHandler.Get)
				r.Put("/{id}", cfg.EmployeesHandler.Update)
				r.Patch("/{id}/status", cfg.EmployeesHandler.SetStatus)
				r.Delete("/{id}", cfg.EmployeesHandler.Delete)
				r.Get("/{id}/hierarchy", cfg.EmployeesHandler.Hierarchy)
			})
		}
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
