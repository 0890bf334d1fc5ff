package broadcast

import (
	"context"
	"fmt"

	"github.com/bookaroo/create-event-service/internal/domain"
	"github.com/bookaroo/create-event-service/internal/logger"
)

// Registry is the interest-registry port.
type Registry interface {
	GetInterestedUsers(ctx context.Context, category string) ([]domain.InterestedUser, error)
}

// Notifier is the e-mail sending port.
type Notifier interface {
	SendEmail(ctx context.Context, msg domain.EmailMessage) error
}

// Broadcaster fans an event out to every user interested in one of its
// categories.
type Broadcaster struct {
	registry    Registry
	notifier    Notifier
	frontendURL string
}

func New(registry Registry, notifier Notifier, frontendURL string) *Broadcaster {
	return &Broadcaster{
		registry:    registry,
		notifier:    notifier,
		frontendURL: frontendURL,
	}
}

// BroadcastCategory notifies everyone interested in category about the
// created event. A registry failure aborts the whole category and is
// surfaced to the caller; individual send failures are logged and do
// not stop the batch (partial success).
func (b *Broadcaster) BroadcastCategory(ctx context.Context, category, eventID string) error {
	log := logger.Ctx(ctx)

	users, err := b.registry.GetInterestedUsers(ctx, category)
	if err != nil {
		return domain.ErrBroadcast(
			fmt.Sprintf("failed to fetch users interested in %q", category), err)
	}

	log.Info().
		Str("category", category).
		Int("users", len(users)).
		Msg("interest registry answered")

	if len(users) == 0 {
		return nil
	}

	eventURL := fmt.Sprintf("%s/events/%s", b.frontendURL, eventID)

	sent, failed := 0, 0
	for _, user := range users {
		msg := enrichEmail(user, category, eventURL)
		if err := b.notifier.SendEmail(ctx, msg); err != nil {
			failed++
			log.Warn().Err(err).
				Str("category", category).
				Str("recipient", user.Email).
				Msg("broadcast message failed")
			continue
		}
		sent++
	}

	log.Info().
		Str("category", category).
		Int("sent", sent).
		Int("failed", failed).
		Msg("category broadcast finished")

	return nil
}
