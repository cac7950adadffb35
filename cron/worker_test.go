package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"coachhub/database"
	"coachhub/models"
	"coachhub/services/notification"
	"coachhub/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockLookup struct{ mock.Mock }

func (m *MockLookup) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error {
	return m.Called(ctx, userID, title, body, data).Error(0)
}

func reminderTask(t *testing.T) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(models.ReminderPayload{BookingID: "bk-1", UserID: "user-1", Title: "Upcoming session", Body: "soon"})
	require.NoError(t, err)
	return asynq.NewTask(tasks.TypeBookingReminder, b)
}

func TestReminderHandler_SendsForConfirmed(t *testing.T) {
	lookup := &MockLookup{}
	notifier := &MockNotifier{}
	lookup.On("GetByID", mock.Anything, "bk-1").Return(&models.Booking{ID: "bk-1", Status: models.BookingConfirmed}, nil)
	notifier.On("SendUserPushNotification", mock.Anything, "user-1", "Upcoming session", "soon", mock.Anything).Return(nil)

	err := handleReminderTask(lookup, notifier, zap.NewNop())(context.Background(), reminderTask(t))
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestReminderHandler_SkipsCancelled(t *testing.T) {
	lookup := &MockLookup{}
	notifier := &MockNotifier{}
	lookup.On("GetByID", mock.Anything, "bk-1").Return(&models.Booking{ID: "bk-1", Status: models.BookingCancelled}, nil)

	err := handleReminderTask(lookup, notifier, zap.NewNop())(context.Background(), reminderTask(t))
	require.NoError(t, err)
	notifier.AssertNotCalled(t, "SendUserPushNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderHandler_Outcomes(t *testing.T) {
	t.Run("missing booking", func(t *testing.T) {
		lookup := &MockLookup{}
		lookup.On("GetByID", mock.Anything, "bk-1").Return(nil, database.ErrNotFound)
		assert.NoError(t, handleReminderTask(lookup, &MockNotifier{}, zap.NewNop())(context.Background(), reminderTask(t)))
	})

	t.Run("store failure retries", func(t *testing.T) {
		lookup := &MockLookup{}
		lookup.On("GetByID", mock.Anything, "bk-1").Return(nil, errors.New("timeout"))
		assert.Error(t, handleReminderTask(lookup, &MockNotifier{}, zap.NewNop())(context.Background(), reminderTask(t)))
	})

	t.Run("no device is not retried", func(t *testing.T) {
		lookup := &MockLookup{}
		notifier := &MockNotifier{}
		lookup.On("GetByID", mock.Anything, "bk-1").Return(&models.Booking{Status: models.BookingConfirmed}, nil)
		notifier.On("SendUserPushNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(notification.ErrNoDeviceToken)
		assert.NoError(t, handleReminderTask(lookup, notifier, zap.NewNop())(context.Background(), reminderTask(t)))
	})

	t.Run("bad payload skips retry", func(t *testing.T) {
		err := handleReminderTask(&MockLookup{}, &MockNotifier{}, zap.NewNop())(context.Background(), asynq.NewTask(tasks.TypeBookingReminder, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})
}
