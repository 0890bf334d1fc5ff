package workflow

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/bookaroo/create-event-service/internal/auditlog"
	"github.com/bookaroo/create-event-service/internal/domain"
	"github.com/bookaroo/create-event-service/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter(io.Discard)
	os.Exit(m.Run())
}

type mockBilling struct {
	mock.Mock
}

func (m *mockBilling) VerifyEventPayment(ctx context.Context, eventID, organizerID string) (bool, string, error) {
	args := m.Called(ctx, eventID, organizerID)
	return args.Bool(0), args.String(1), args.Error(2)
}

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) CreateEvent(ctx context.Context, bearerToken string, event domain.PersistableEvent) (*domain.CreatedEvent, error) {
	args := m.Called(ctx, bearerToken, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreatedEvent), args.Error(1)
}

type mockBroadcaster struct {
	mock.Mock
}

func (m *mockBroadcaster) BroadcastCategory(ctx context.Context, category, eventID string) error {
	args := m.Called(ctx, category, eventID)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendEmail(ctx context.Context, msg domain.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// recordingSink captures audit records in order.
type recordingSink struct {
	mu      sync.Mutex
	records []auditlog.Record
}

func (s *recordingSink) Send(_ context.Context, rec auditlog.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
}

func (s *recordingSink) all() []auditlog.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]auditlog.Record(nil), s.records...)
}

type fixture struct {
	billing     *mockBilling
	events      *mockEvents
	broadcaster *mockBroadcaster
	notifier    *mockNotifier
	sink        *recordingSink
	svc         *Service
}

func newFixture() *fixture {
	f := &fixture{
		billing:     new(mockBilling),
		events:      new(mockEvents),
		broadcaster: new(mockBroadcaster),
		notifier:    new(mockNotifier),
		sink:        &recordingSink{},
	}
	f.svc = New(f.billing, f.events, f.broadcaster, f.notifier, f.sink)
	return f
}

func sampleRequest() Request {
	return Request{
		Submission: domain.EventSubmission{
			ID:            "evt-1",
			Title:         "Jazz Night",
			StartDateTime: "2026-09-01T19:00:00",
			Categories:    []string{"Music", "Jazz"},
			Organizer:     domain.Organizer{ID: "org-1", Username: "alex"},
		},
		BearerToken:    "Bearer tok",
		OrganizerEmail: "alex@example.com",
	}
}

func sampleCreated() *domain.CreatedEvent {
	return &domain.CreatedEvent{
		ID:         "created-1",
		Title:      "Jazz Night",
		Categories: []string{"music", "jazz"},
	}
}

func TestCreateEvent_FullSuccess(t *testing.T) {
	f := newFixture()

	f.billing.On("VerifyEventPayment", mock.Anything, "evt-1", "org-1").Return(true, "", nil)
	f.events.On("CreateEvent", mock.Anything, "Bearer tok", mock.Anything).Return(sampleCreated(), nil)
	f.broadcaster.On("BroadcastCategory", mock.Anything, "music", "created-1").Return(nil).Once()
	f.broadcaster.On("BroadcastCategory", mock.Anything, "jazz", "created-1").Return(nil).Once()
	f.notifier.On("SendEmail", mock.Anything, mock.MatchedBy(func(msg domain.EmailMessage) bool {
		return msg.Email == "alex@example.com"
	})).Return(nil).Once()

	res := f.svc.CreateEvent(context.Background(), sampleRequest())

	assert.Equal(t, domain.OutcomeSuccess, res.Outcome)
	assert.Equal(t, "Success", res.Message)
	assert.Empty(t, res.Error)
	assert.Equal(t, "created-1", res.EventID)

	records := f.sink.all()
	require.Len(t, records, 3)
	for _, rec := range records {
		assert.Equal(t, auditlog.LevelInfo, rec.Level)
		assert.Equal(t, auditlog.ServiceName, rec.ServiceName)
	}
	assert.Equal(t, auditlog.NoTransactionID, records[0].TransactionID, "no event id exists before creation")
	assert.Equal(t, "created-1", records[1].TransactionID)
	assert.Equal(t, "created-1", records[2].TransactionID)

	f.billing.AssertExpectations(t)
	f.events.AssertExpectations(t)
	f.broadcaster.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestCreateEvent_PaymentNotCompleted(t *testing.T) {
	f := newFixture()

	f.billing.On("VerifyEventPayment", mock.Anything, "evt-1", "org-1").Return(false, "no payment record", nil)

	res := f.svc.CreateEvent(context.Background(), sampleRequest())

	assert.Equal(t, domain.OutcomePaymentNotCompleted, res.Outcome)
	assert.Equal(t, "Event Creation Failed", res.Message)
	assert.Contains(t, res.Error, "No payment has been made")
	assert.Contains(t, res.Error, "Jazz Night")
	assert.Contains(t, res.Error, "no payment record")

	f.events.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything, mock.Anything)
	f.broadcaster.AssertNotCalled(t, "BroadcastCategory", mock.Anything, mock.Anything, mock.Anything)

	records := f.sink.all()
	require.Len(t, records, 2)
	assert.Equal(t, auditlog.LevelWarn, records[1].Level)
}

func TestCreateEvent_BillingFailure(t *testing.T) {
	f := newFixture()

	f.billing.On("VerifyEventPayment", mock.Anything, "evt-1", "org-1").
		Return(false, "", errors.New("billing unreachable"))

	res := f.svc.CreateEvent(context.Background(), sampleRequest())

	assert.Equal(t, domain.OutcomeCreationFailed, res.Outcome)
	assert.Contains(t, res.Error, "Error verifying event creation payment with billing service")
	f.events.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateEvent_CreationFailure(t *testing.T) {
	f := newFixture()

	f.billing.On("VerifyEventPayment", mock.Anything, "evt-1", "org-1").Return(true, "", nil)
	f.events.On("CreateEvent", mock.Anything, "Bearer tok", mock.Anything).
		Return(nil, errors.New("database refused"))

	res := f.svc.CreateEvent(context.Background(), sampleRequest())

	assert.Equal(t, domain.OutcomeCreationFailed, res.Outcome)
	assert.Equal(t, "Event Creation Failed", res.Message)
	assert.Contains(t, res.Error, "Error creating event with events service")

	f.broadcaster.AssertNotCalled(t, "BroadcastCategory", mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)

	records := f.sink.all()
	require.Len(t, records, 2)
	assert.Equal(t, auditlog.LevelError, records[1].Level)
}

func TestCreateEvent_MalformedStartDateFailsBeforeCreation(t *testing.T) {
	f := newFixture()

	f.billing.On("VerifyEventPayment", mock.Anything, "evt-1", "org-1").Return(true, "", nil)

	req := sampleRequest()
	req.Submission.StartDateTime = "not a timestamp"

	res := f.svc.CreateEvent(context.Background(), req)

	assert.Equal(t, domain.OutcomeCreationFailed, res.Outcome)
	f.events.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateEvent_BroadcastFailureIsPartialSuccess(t *testing.T) {
	f := newFixture()

	f.billing.On("VerifyEventPayment", mock.Anything, "evt-1", "org-1").Return(true, "", nil)
	f.events.On("CreateEvent", mock.Anything, "Bearer tok", mock.Anything).Return(sampleCreated(), nil)
	f.broadcaster.On("BroadcastCategory", mock.Anything, "music", "created-1").
		Return(domain.ErrBroadcast("registry down", nil)).Once()

	res := f.svc.CreateEvent(context.Background(), sampleRequest())

	assert.Equal(t, domain.OutcomePartialBroadcast, res.Outcome)
	assert.Equal(t, "Event Creation Succeeded with errors", res.Message)
	assert.Contains(t, res.Error, "Error broadcasting to interested users")
	assert.Equal(t, "created-1", res.EventID, "the created event survives the broadcast failure")

	// jazz is never attempted once music aborts the stage
	f.broadcaster.AssertNumberOfCalls(t, "BroadcastCategory", 1)
	f.notifier.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
}

func TestCreateEvent_MissingOrganizerEmailStillSucceeds(t *testing.T) {
	f := newFixture()

	f.billing.On("VerifyEventPayment", mock.Anything, "evt-1", "org-1").Return(true, "", nil)
	f.events.On("CreateEvent", mock.Anything, "Bearer tok", mock.Anything).Return(sampleCreated(), nil)
	f.broadcaster.On("BroadcastCategory", mock.Anything, mock.Anything, "created-1").Return(nil)

	req := sampleRequest()
	req.OrganizerEmail = ""

	res := f.svc.CreateEvent(context.Background(), req)

	assert.Equal(t, domain.OutcomeSuccess, res.Outcome)
	f.notifier.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
}

func TestCreateEvent_OrganizerConfirmationFailureStillSucceeds(t *testing.T) {
	f := newFixture()

	f.billing.On("VerifyEventPayment", mock.Anything, "evt-1", "org-1").Return(true, "", nil)
	f.events.On("CreateEvent", mock.Anything, "Bearer tok", mock.Anything).Return(sampleCreated(), nil)
	f.broadcaster.On("BroadcastCategory", mock.Anything, mock.Anything, "created-1").Return(nil)
	f.notifier.On("SendEmail", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	res := f.svc.CreateEvent(context.Background(), sampleRequest())

	assert.Equal(t, domain.OutcomeSuccess, res.Outcome)
}

func TestCreateEvent_OrganizerConfirmationContent(t *testing.T) {
	f := newFixture()

	f.billing.On("VerifyEventPayment", mock.Anything, "evt-1", "org-1").Return(true, "", nil)
	f.events.On("CreateEvent", mock.Anything, "Bearer tok", mock.Anything).Return(sampleCreated(), nil)
	f.broadcaster.On("BroadcastCategory", mock.Anything, mock.Anything, "created-1").Return(nil)

	var got domain.EmailMessage
	f.notifier.On("SendEmail", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).(domain.EmailMessage) }).
		Return(nil)

	f.svc.CreateEvent(context.Background(), sampleRequest())

	assert.Equal(t, "alex@example.com", got.Email)
	assert.Equal(t, "Event Creation Success - Jazz Night", got.Subject)
	assert.Contains(t, got.MainMessage, "alex")
	assert.Contains(t, got.MainMessage, "2026-09-01T19:00:00")
	assert.Contains(t, got.MainMessage, "music, jazz")
}

func TestCreateEvent_PanicBecomesUnexpectedOutcome(t *testing.T) {
	f := newFixture()

	f.billing.On("VerifyEventPayment", mock.Anything, "evt-1", "org-1").Return(true, "", nil)
	f.events.On("CreateEvent", mock.Anything, "Bearer tok", mock.Anything).
		Run(func(mock.Arguments) { panic("boom") }).
		Return(nil, nil)

	var res domain.WorkflowResult
	require.NotPanics(t, func() {
		res = f.svc.CreateEvent(context.Background(), sampleRequest())
	})

	assert.Equal(t, domain.OutcomeUnexpected, res.Outcome)
	assert.Equal(t, "Event Creation Exception", res.Message)
	assert.Contains(t, res.Error, "An unexpected error occurred")
	assert.Contains(t, res.Error, "boom")

	records := f.sink.all()
	last := records[len(records)-1]
	assert.Equal(t, auditlog.LevelError, last.Level)
}
