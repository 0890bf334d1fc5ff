package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string

	HTTPAddr string

	// Collaborator base URLs
	BillingURL       string
	EventsURL        string
	UserMgmtURL      string
	NotificationsURL string
	FrontendURL      string

	JWTSecret string

	// Logging queue
	RabbitURL  string
	AuditQueue string

	// Rate limiting
	RedisURL  string
	RLEnabled bool
	RLLimit   int
	RLWindow  time.Duration

	// Payment verification retry policy
	PaymentMaxAttempts  int
	PaymentInitialDelay time.Duration

	// Downstream call timeouts
	DownstreamReadTimeout  time.Duration
	DownstreamWriteTimeout time.Duration

	LogLevel  string
	LogFormat string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.AppEnv = getEnv("APP_ENV", "dev")
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.BillingURL = getEnv("BILLING_SERVICE_URL", "http://billing-service:5000")
	cfg.EventsURL = getEnv("EVENTS_SERVICE_URL", "http://events-service:8081")
	cfg.UserMgmtURL = getEnv("USER_MGMT_SERVICE_URL", "http://user-management-service:8082")
	cfg.NotificationsURL = getEnv("NOTIFICATIONS_SERVICE_URL", "http://notifications-service:8083")
	cfg.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")

	cfg.JWTSecret = getEnv("JWT_SECRET", "")

	cfg.RabbitURL = getEnv("RABBIT_URL", "")
	cfg.AuditQueue = getEnv("AUDIT_QUEUE", "logs.queue")

	cfg.RedisURL = getEnv("REDIS_URL", "redis://localhost:6379/0")
	cfg.RLEnabled = getEnv("RL_ENABLED", "false") == "true"
	cfg.RLLimit = getIntEnv("RL_LIMIT", 30)
	cfg.RLWindow = getDuration("RL_WINDOW", 1*time.Minute)

	cfg.PaymentMaxAttempts = getIntEnv("PAYMENT_RETRY_MAX_ATTEMPTS", 3)
	cfg.PaymentInitialDelay = getDuration("PAYMENT_RETRY_INITIAL_DELAY", 1*time.Second)

	cfg.DownstreamReadTimeout = getDuration("DOWNSTREAM_READ_TIMEOUT", 2*time.Second)
	cfg.DownstreamWriteTimeout = getDuration("DOWNSTREAM_WRITE_TIMEOUT", 5*time.Second)

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")

	cfg.HTTPReadTimeout = getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	cfg.HTTPWriteTimeout = getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	cfg.HTTPIdleTimeout = getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing JWT_SECRET")
	}

	// Rabbit optional in dev; log delivery degrades to a local no-op
	if cfg.AppEnv != "dev" && cfg.RabbitURL == "" {
		return nil, fmt.Errorf("missing RABBIT_URL (required when APP_ENV != dev)")
	}

	return cfg, nil
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getIntEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
