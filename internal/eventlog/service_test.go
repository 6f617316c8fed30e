package eventlog

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/event"
)

// MockEventBus is a mock implementation of event.Bus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}

func TestService_Subscribe(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)
	mockBus := new(MockEventBus)

	for _, et := range LoggedEventTypes {
		mockBus.On("Subscribe", et, mock.Anything).Return()
	}

	err := svc.Subscribe(mockBus)
	assert.NoError(t, err)
	mockBus.AssertExpectations(t)
	mockBus.AssertNumberOfCalls(t, "Subscribe", 8)
}

func TestService_HandleEvent_ExtractsPlayer(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	ctx := context.Background()

	evt := event.NewSpinRejectedEvent("player-1", "campaign-1", domain.ReasonCooldownActive)

	mockRepo.On("LogEvent", ctx, string(event.SpinRejected),
		mock.MatchedBy(func(id *string) bool { return id != nil && *id == "player-1" }),
		mock.MatchedBy(func(payload []byte) bool {
			return strings.Contains(string(payload), `"reason":"cooldown_active"`)
		}),
		mock.Anything,
	).Return(nil)

	err := svc.handleEvent(ctx, evt)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_HandleEvent_NoPlayer(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	ctx := context.Background()

	evt := event.NewMaintenanceEvent(event.SessionsExpired, time.Now(), 3)
	mockRepo.On("LogEvent", ctx, string(event.SessionsExpired), (*string)(nil), mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, svc.handleEvent(ctx, evt))
	mockRepo.AssertExpectations(t)
}

func TestService_HandleEvent_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	ctx := context.Background()

	evt := event.NewInventoryConflictEvent("campaign-1", "prize-1", 2)
	mockRepo.On("LogEvent", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down"))

	assert.Error(t, svc.handleEvent(ctx, evt))
}

func TestService_HandleEvent_UnencodablePayload(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)

	evt := event.Event{Type: event.SpinCommitted, Payload: make(chan int)}

	assert.NoError(t, svc.handleEvent(context.Background(), evt))
	mockRepo.AssertNotCalled(t, "LogEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CleanupOldEvents(t *testing.T) {
	mockRepo := new(MockRepository)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := &service{repo: mockRepo, now: func() time.Time { return now }}
	ctx := context.Background()

	mockRepo.On("CleanupOldEvents", ctx, now.Add(-48*time.Hour)).Return(int64(5), nil)

	count, err := svc.CleanupOldEvents(ctx, 48*time.Hour)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)
	mockRepo.AssertExpectations(t)
}

func TestService_ListEvents(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)
	ctx := context.Background()
	filter := Filter{PlayerID: "player-1", Limit: 10}

	mockRepo.On("ListEvents", ctx, filter).Return([]Entry{{ID: 1, EventType: string(event.PrizeWon)}}, nil)

	entries, err := svc.ListEvents(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestService_LogsThroughMemoryBus(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)
	bus := event.NewMemoryBus()
	require.NoError(t, svc.Subscribe(bus))

	mockRepo.On("LogEvent", mock.Anything, string(event.LedgerDrift), mock.Anything, mock.Anything, mock.Anything).Return(nil)

	rec := domain.Reconciliation{PlayerID: "player-9", CachedBalance: 10, LedgerBalance: 7}
	require.NoError(t, bus.Publish(context.Background(), event.NewLedgerDriftEvent(rec)))
	mockRepo.AssertExpectations(t)
}
