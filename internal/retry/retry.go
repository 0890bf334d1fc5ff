package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/bookaroo/create-event-service/internal/domain"
)

// Config holds the bounded-retry parameters. Pure values only; safe to
// share across concurrent requests.
type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// DefaultConfig is the policy applied to payment verification.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
	}
}

// Delay returns the exponential backoff delay before the given retry
// (0-based), doubling from InitialDelay and capped at MaxDelay.
func Delay(attempt int, cfg Config) time.Duration {
	delay := cfg.InitialDelay << uint(attempt)
	if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
		delay = cfg.MaxDelay
	}
	return delay
}

// Do executes fn up to cfg.MaxAttempts times. Transient failures are
// retried after an exponentially growing sleep; permanent failures
// propagate immediately. A cancelled context aborts a pending sleep
// and returns ctx.Err().
func Do(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(Delay(attempt-1, cfg)):
			}
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !domain.IsTransient(err) {
			return err
		}
	}

	return fmt.Errorf("all %d attempts failed: %w", cfg.MaxAttempts, lastErr)
}
