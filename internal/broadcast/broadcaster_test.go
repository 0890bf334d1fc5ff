package broadcast

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

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

type mockRegistry struct {
	mock.Mock
}

func (m *mockRegistry) GetInterestedUsers(ctx context.Context, category string) ([]domain.InterestedUser, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterestedUser), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendEmail(ctx context.Context, msg domain.EmailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func TestBroadcastCategory_NotifiesEveryInterestedUser(t *testing.T) {
	registry := new(mockRegistry)
	notifier := new(mockNotifier)

	registry.On("GetInterestedUsers", mock.Anything, "music").Return([]domain.InterestedUser{
		{ID: "u1", Username: "alex", Email: "alex@example.com"},
		{ID: "u2", Username: "sam", Email: "sam@example.com"},
	}, nil)
	notifier.On("SendEmail", mock.Anything, mock.MatchedBy(func(msg domain.EmailMessage) bool {
		return msg.Email == "alex@example.com"
	})).Return(nil).Once()
	notifier.On("SendEmail", mock.Anything, mock.MatchedBy(func(msg domain.EmailMessage) bool {
		return msg.Email == "sam@example.com"
	})).Return(nil).Once()

	b := New(registry, notifier, "https://app.example.com")

	err := b.BroadcastCategory(context.Background(), "music", "evt-1")
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestBroadcastCategory_EmailMentionsCategoryAndEventLink(t *testing.T) {
	registry := new(mockRegistry)
	notifier := new(mockNotifier)

	registry.On("GetInterestedUsers", mock.Anything, "music").Return([]domain.InterestedUser{
		{ID: "u1", Username: "alex", Email: "alex@example.com"},
	}, nil)

	var got domain.EmailMessage
	notifier.On("SendEmail", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).(domain.EmailMessage) }).
		Return(nil)

	b := New(registry, notifier, "https://app.example.com")

	require.NoError(t, b.BroadcastCategory(context.Background(), "music", "evt-1"))
	assert.Contains(t, got.Subject, "music")
	assert.Contains(t, got.MainMessage, "alex")
	assert.Contains(t, got.MainMessage, "https://app.example.com/events/evt-1")
}

func TestBroadcastCategory_NoInterestedUsers(t *testing.T) {
	registry := new(mockRegistry)
	notifier := new(mockNotifier)

	registry.On("GetInterestedUsers", mock.Anything, "knitting").Return([]domain.InterestedUser{}, nil)

	b := New(registry, notifier, "https://app.example.com")

	require.NoError(t, b.BroadcastCategory(context.Background(), "knitting", "evt-1"))
	notifier.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
}

func TestBroadcastCategory_SendFailureDoesNotAbortBatch(t *testing.T) {
	registry := new(mockRegistry)
	notifier := new(mockNotifier)

	registry.On("GetInterestedUsers", mock.Anything, "music").Return([]domain.InterestedUser{
		{ID: "u1", Username: "alex", Email: "alex@example.com"},
		{ID: "u2", Username: "sam", Email: "sam@example.com"},
	}, nil)
	notifier.On("SendEmail", mock.Anything, mock.MatchedBy(func(msg domain.EmailMessage) bool {
		return msg.Email == "alex@example.com"
	})).Return(errors.New("smtp down")).Once()
	notifier.On("SendEmail", mock.Anything, mock.MatchedBy(func(msg domain.EmailMessage) bool {
		return msg.Email == "sam@example.com"
	})).Return(nil).Once()

	b := New(registry, notifier, "https://app.example.com")

	err := b.BroadcastCategory(context.Background(), "music", "evt-1")
	require.NoError(t, err, "per-recipient losses are tolerated")
	notifier.AssertExpectations(t)
}

func TestBroadcastCategory_RegistryFailureAbortsCategory(t *testing.T) {
	registry := new(mockRegistry)
	notifier := new(mockNotifier)

	registry.On("GetInterestedUsers", mock.Anything, "music").Return(nil, errors.New("registry down"))

	b := New(registry, notifier, "https://app.example.com")

	err := b.BroadcastCategory(context.Background(), "music", "evt-1")
	require.Error(t, err)

	var ae *domain.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, domain.CodeBroadcast, ae.Code)
	notifier.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
}
