package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"coachhub/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBookingReminder = "reminder:booking"

// Enqueuer is the subset of *asynq.Client used to queue reminders.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReminderTaskID is stable per booking so a booking is reminded at most once.
func ReminderTaskID(bookingID string) string {
	return fmt.Sprintf("booking:%s:reminder", bookingID)
}

func NewBookingReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(ReminderTaskID(payload.BookingID)),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// ReminderScheduler queues a push reminder ahead of each confirmed member booking.
type ReminderScheduler struct {
	client Enqueuer
	lead   time.Duration
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewReminderScheduler renders session times in loc, the business timezone.
func NewReminderScheduler(client Enqueuer, lead time.Duration, loc *time.Location, logger *zap.Logger) *ReminderScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderScheduler{client: client, lead: lead, loc: loc, logger: logger, now: time.Now}
}

// ScheduleBookingReminder implements booking.ReminderScheduler.
func (s *ReminderScheduler) ScheduleBookingReminder(ctx context.Context, b *models.Booking) error {
	if b.ClientUserID == "" {
		return nil
	}
	fireAt := b.StartTime.Add(-s.lead)
	if !fireAt.After(s.now()) {
		s.logger.Debug("Reminder time already passed; skipping", zap.String("bookingID", b.ID))
		return nil
	}

	payload := models.ReminderPayload{
		BookingID: b.ID,
		UserID:    b.ClientUserID,
		Title:     "Upcoming session",
		Body:      fmt.Sprintf("Your session starts at %s.", b.StartTime.In(s.loc).Format("Mon Jan 2, 15:04 MST")),
		FireDate:  fireAt.UTC().Format(time.RFC3339),
	}
	task, opts, err := NewBookingReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("build reminder task: %w", err)
	}

	info, err := s.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue reminder for booking %s: %w", b.ID, err)
	}
	s.logger.Info("Booking reminder scheduled",
		zap.String("bookingID", b.ID), zap.String("taskID", info.ID), zap.Time("fireAt", fireAt))
	return nil
}
