package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bookaroo/create-event-service/internal/api/handlers"
	"github.com/bookaroo/create-event-service/internal/config"
	"github.com/bookaroo/create-event-service/internal/logger"
	"github.com/bookaroo/create-event-service/middleware"
)

// Deps is everything the router mounts.
type Deps struct {
	CreateEvent *handlers.CreateEventHandler
	Readiness   *handlers.ReadinessHandler
	RateLimiter *middleware.RedisRateLimiter
}

func NewRouter(cfg *config.Config, deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(logger.Log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Metrics)

	r.Get("/api/healthz", deps.Readiness.Healthz)
	r.Get("/api/readyz", deps.Readiness.Readyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))

		if cfg.RLEnabled && deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware(middleware.RateLimitConfig{
				Limit:  cfg.RLLimit,
				Window: cfg.RLWindow,
				KeyFn:  middleware.KeyByUser,
			}))
		}

		r.Post("/create-event", deps.CreateEvent.CreateEvent)
	})

	return r
}
