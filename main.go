package main

import (
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"

	"github.com/bookaroo/create-event-service/internal/api"
	"github.com/bookaroo/create-event-service/internal/api/handlers"
	"github.com/bookaroo/create-event-service/internal/auditlog"
	"github.com/bookaroo/create-event-service/internal/broadcast"
	"github.com/bookaroo/create-event-service/internal/config"
	"github.com/bookaroo/create-event-service/internal/downstream"
	"github.com/bookaroo/create-event-service/internal/logger"
	"github.com/bookaroo/create-event-service/internal/retry"
	"github.com/bookaroo/create-event-service/internal/workflow"
	"github.com/bookaroo/create-event-service/middleware"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Logging sidecar: degrade to a local no-op when Rabbit is absent
	var rabbit *auditlog.Publisher
	var sink auditlog.Sink = auditlog.NoopSink{}
	if cfg.RabbitURL != "" {
		p, err := auditlog.NewPublisher(cfg.RabbitURL, cfg.AuditQueue)
		if err != nil {
			zlog.Fatal().Err(err).Msg("audit log publisher init failed")
		}
		rabbit = p
		sink = p
		zlog.Info().Str("queue", cfg.AuditQueue).Msg("audit log publisher ready")
	} else {
		zlog.Warn().Msg("RABBIT_URL empty: workflow logs will not reach the logging queue")
	}
	defer func() {
		if rabbit != nil {
			_ = rabbit.Close()
		}
	}()

	// Downstream clients share one wrapped HTTP client
	httpClient := downstream.NewClient(downstream.ClientConfig{
		ReadTimeout:  cfg.DownstreamReadTimeout,
		WriteTimeout: cfg.DownstreamWriteTimeout,
	})

	billing := downstream.NewBillingClient(cfg.BillingURL, httpClient, retry.Config{
		MaxAttempts:  cfg.PaymentMaxAttempts,
		InitialDelay: cfg.PaymentInitialDelay,
		MaxDelay:     retry.DefaultConfig().MaxDelay,
	})
	events := downstream.NewEventsClient(cfg.EventsURL, httpClient)
	users := downstream.NewUserClient(cfg.UserMgmtURL, httpClient)
	notifier := downstream.NewNotificationClient(cfg.NotificationsURL, httpClient)

	broadcaster := broadcast.New(users, notifier, cfg.FrontendURL)

	wf := workflow.New(billing, events, broadcaster, notifier, sink)

	// Optional Redis-backed rate limiting
	var limiter *middleware.RedisRateLimiter
	if cfg.RLEnabled {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zlog.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		limiter = middleware.NewRedisRateLimiter(redis.NewClient(opts))
	}

	readiness := handlers.NewReadinessHandler(
		handlers.NewHTTPReadinessChecker("billing", cfg.BillingURL),
		handlers.NewHTTPReadinessChecker("events", cfg.EventsURL),
		handlers.NewHTTPReadinessChecker("user-management", cfg.UserMgmtURL),
		handlers.NewHTTPReadinessChecker("notifications", cfg.NotificationsURL),
	)

	router := api.NewRouter(cfg, api.Deps{
		CreateEvent: handlers.NewCreateEventHandler(wf),
		Readiness:   readiness,
		RateLimiter: limiter,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	zlog.Info().Str("addr", cfg.HTTPAddr).Msg("create-event-service listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal().Err(err).Msg("server crashed")
	}
}
