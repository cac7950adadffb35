package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"coachhub/config"
	"coachhub/database"
	"coachhub/metrics"
	"coachhub/models"
	"coachhub/services/notification"
	"coachhub/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingLookup re-reads a booking when its reminder fires.
type BookingLookup interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
}

// InitReminderWorker runs the asynq worker in the background and returns it for shutdown.
func InitReminderWorker(bookings BookingLookup, notifSvc notification.NotificationService, logger *zap.Logger) *asynq.Server {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingReminder, handleReminderTask(bookings, notifSvc, logger))

	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Reminder worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("Reminder worker gave up")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

func handleReminderTask(bookings BookingLookup, notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid reminder payload", zap.Error(err))
			metrics.RecordReminder("invalid")
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		b, err := bookings.GetByID(ctx, p.BookingID)
		if errors.Is(err, database.ErrNotFound) {
			metrics.RecordReminder("skipped")
			return nil
		}
		if err != nil {
			metrics.RecordReminder("error")
			return fmt.Errorf("load booking %s: %w", p.BookingID, err)
		}
		if b.Status != models.BookingConfirmed {
			logger.Info("Skipping reminder for inactive booking",
				zap.String("bookingID", b.ID), zap.String("status", string(b.Status)))
			metrics.RecordReminder("skipped")
			return nil
		}

		data := map[string]string{
			"type":      "booking_reminder",
			"bookingId": p.BookingID,
			"fireDate":  p.FireDate,
		}
		err = notifSvc.SendUserPushNotification(ctx, p.UserID, p.Title, p.Body, data)
		if errors.Is(err, notification.ErrNoDeviceToken) {
			metrics.RecordReminder("skipped")
			return nil
		}
		if err != nil {
			logger.Error("Failed to send reminder", zap.String("bookingID", p.BookingID), zap.Error(err))
			metrics.RecordReminder("error")
			return err
		}
		metrics.RecordReminder("sent")
		return nil
	}
}
