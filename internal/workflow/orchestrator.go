package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/bookaroo/create-event-service/internal/auditlog"
	"github.com/bookaroo/create-event-service/internal/domain"
	"github.com/bookaroo/create-event-service/internal/logger"
)

// Ports onto the four collaborators. The orchestrator never talks to
// the network directly.
type PaymentVerifier interface {
	VerifyEventPayment(ctx context.Context, eventID, organizerID string) (bool, string, error)
}

type EventCreator interface {
	CreateEvent(ctx context.Context, bearerToken string, event domain.PersistableEvent) (*domain.CreatedEvent, error)
}

type CategoryBroadcaster interface {
	BroadcastCategory(ctx context.Context, category, eventID string) error
}

type Notifier interface {
	SendEmail(ctx context.Context, msg domain.EmailMessage) error
}

// Request carries everything one workflow run needs. The bearer token
// and organizer e-mail come from the caller's verified claims and are
// threaded explicitly; nothing is read from ambient state.
type Request struct {
	Submission     domain.EventSubmission
	BearerToken    string
	OrganizerEmail string
}

// Service walks the event-creation workflow:
// payment verification, creation, interest broadcast, organizer
// confirmation, with every milestone mirrored to the logging queue.
type Service struct {
	billing     PaymentVerifier
	events      EventCreator
	broadcaster CategoryBroadcaster
	notifier    Notifier
	sink        auditlog.Sink
}

func New(billing PaymentVerifier, events EventCreator, broadcaster CategoryBroadcaster, notifier Notifier, sink auditlog.Sink) *Service {
	return &Service{
		billing:     billing,
		events:      events,
		broadcaster: broadcaster,
		notifier:    notifier,
		sink:        sink,
	}
}

// CreateEvent runs the full workflow for one submission and always
// returns a classified result; no fault leaks to the caller.
func (s *Service) CreateEvent(ctx context.Context, req Request) (res domain.WorkflowResult) {
	log := logger.Ctx(ctx)
	sub := req.Submission

	defer func() {
		if r := recover(); r != nil {
			errMsg := fmt.Sprintf("An unexpected error occurred: %v", r)
			log.Error().Str("panic", fmt.Sprint(r)).Msg("workflow panicked")
			s.sink.Send(ctx, auditlog.NewRecord(auditlog.LevelError, errMsg, res.EventID))
			res = domain.WorkflowResult{
				Outcome: domain.OutcomeUnexpected,
				Message: "Event Creation Exception",
				Error:   errMsg,
				EventID: res.EventID,
			}
		}
		recordOutcome(res.Outcome)
	}()

	// RECEIVED
	log.Info().Str("event_id", sub.ID).Str("title", sub.Title).Msg("event creation request received")
	s.sink.Send(ctx, auditlog.NewRecord(auditlog.LevelInfo,
		fmt.Sprintf("Received event details for %q (id %s)", sub.Title, sub.ID), ""))

	// PAYMENT_VERIFIED
	paid, reason, err := s.billing.VerifyEventPayment(ctx, sub.ID, sub.Organizer.ID)
	if err != nil {
		return s.fail(ctx, domain.OutcomeCreationFailed, "Event Creation Failed",
			"Error verifying event creation payment with billing service: "+err.Error(), "")
	}
	if !paid {
		// A declined payment is a normal negative answer, not an error.
		errMsg := fmt.Sprintf("No payment has been made for the event creation of event title: %s", sub.Title)
		if reason != "" {
			errMsg = errMsg + ": " + reason
		}
		log.Info().Str("event_id", sub.ID).Msg("payment not completed, stopping")
		s.sink.Send(ctx, auditlog.NewRecord(auditlog.LevelWarn, errMsg, ""))
		return domain.WorkflowResult{
			Outcome: domain.OutcomePaymentNotCompleted,
			Message: "Event Creation Failed",
			Error:   errMsg,
		}
	}

	// EVENT_CREATED
	persistable, err := domain.ToPersistable(sub)
	if err != nil {
		return s.fail(ctx, domain.OutcomeCreationFailed, "Event Creation Failed",
			"Error creating event with events service: "+err.Error(), "")
	}

	created, err := s.events.CreateEvent(ctx, req.BearerToken, persistable)
	if err != nil {
		return s.fail(ctx, domain.OutcomeCreationFailed, "Event Creation Failed",
			"Error creating event with events service: "+err.Error(), "")
	}
	res.EventID = created.ID

	log.Info().Str("event_id", created.ID).Msg("event created")
	s.sink.Send(ctx, auditlog.NewRecord(auditlog.LevelInfo,
		fmt.Sprintf("Created event with ID: %s", created.ID), created.ID))

	// BROADCASTED: one pass per category, sequential; a registry
	// failure aborts the stage, per-recipient losses do not.
	for _, category := range created.Categories {
		if err := s.broadcaster.BroadcastCategory(ctx, category, created.ID); err != nil {
			return s.fail(ctx, domain.OutcomePartialBroadcast, "Event Creation Succeeded with errors",
				"Error broadcasting to interested users: "+err.Error(), created.ID)
		}
	}

	log.Info().Str("event_id", created.ID).Msg("event broadcasted")
	s.sink.Send(ctx, auditlog.NewRecord(auditlog.LevelInfo,
		fmt.Sprintf("Broadcasted event with ID: %s to interested users successfully", created.ID), created.ID))

	// NOTIFIED: best-effort organizer confirmation.
	s.notifyOrganizer(ctx, req, created)

	// COMPLETED
	return domain.WorkflowResult{
		Outcome: domain.OutcomeSuccess,
		Message: "Success",
		EventID: created.ID,
	}
}

func (s *Service) notifyOrganizer(ctx context.Context, req Request, created *domain.CreatedEvent) {
	log := logger.Ctx(ctx)

	if req.OrganizerEmail == "" {
		log.Warn().Str("event_id", created.ID).Msg("no organizer email in claims, skipping confirmation")
		return
	}

	sub := req.Submission
	msg := domain.EmailMessage{
		Email:   req.OrganizerEmail,
		Subject: "Event Creation Success - " + sub.Title,
		MainMessage: fmt.Sprintf(
			"%s, your event '%s' has been successfully created!\n\n"+
				"Event Details:\n"+
				"- Title: %s\n"+
				"- Start Date: %s\n"+
				"- Categories: %s\n\n"+
				"You can view and manage your event in your dashboard.\n\n"+
				"Best regards,\nEvent Service Team",
			sub.Organizer.Username,
			sub.Title,
			sub.Title,
			sub.StartDateTime,
			strings.Join(created.Categories, ", "),
		),
	}

	if err := s.notifier.SendEmail(ctx, msg); err != nil {
		log.Warn().Err(err).Str("event_id", created.ID).Msg("organizer confirmation failed")
		return
	}
	log.Info().Str("event_id", created.ID).Str("recipient", req.OrganizerEmail).Msg("organizer confirmation sent")
}

func (s *Service) fail(ctx context.Context, outcome domain.Outcome, message, errMsg, eventID string) domain.WorkflowResult {
	logger.Ctx(ctx).Error().Str("event_id", eventID).Msg(errMsg)
	s.sink.Send(ctx, auditlog.NewRecord(auditlog.LevelError, errMsg, eventID))
	return domain.WorkflowResult{
		Outcome: outcome,
		Message: message,
		Error:   errMsg,
		EventID: eventID,
	}
}
