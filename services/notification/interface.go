package notification

import (
	"context"
	"errors"
	"fmt"

	"coachhub/database"
	profileRepo "coachhub/database/repository/profile"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// ErrNoDeviceToken is returned when the recipient never registered a device.
var ErrNoDeviceToken = errors.New("user has no FCM token")

// NotificationService sends FCM pushes to members.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

// Sender is the subset of *messaging.Client used here.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Profiles profileRepo.ProfileRepository
	FCM      Sender
	Logger   *zap.Logger
}

func NewDefaultNotificationService(profiles profileRepo.ProfileRepository, fcm Sender, logger *zap.Logger) (*DefaultNotificationService, error) {
	if profiles == nil || fcm == nil {
		return nil, fmt.Errorf("notification service initialization error: profile repository or FCM client is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{Profiles: profiles, FCM: fcm, Logger: logger}, nil
}

// SendUserPushNotification looks up a member's FCM token and sends a push.
func (s *DefaultNotificationService) SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error {
	p, err := s.Profiles.GetByUserID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("SendUserPushNotification: user %s: %w", userID, ErrNoDeviceToken)
	}
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: could not load profile %s: %w", userID, err)
	}
	if p.FCMToken == "" {
		return fmt.Errorf("SendUserPushNotification: user %s: %w", userID, ErrNoDeviceToken)
	}

	msg := &messaging.Message{
		Token: p.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	id, err := s.FCM.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: failed to send FCM message: %w", err)
	}
	s.Logger.Debug("Push sent", zap.String("userID", userID), zap.String("messageID", id))
	return nil
}

// NoopNotificationService logs instead of sending; used when Firebase is not configured.
type NoopNotificationService struct {
	Logger *zap.Logger
}

func (n NoopNotificationService) SendUserPushNotification(_ context.Context, userID, title, _ string, _ map[string]string) error {
	if n.Logger != nil {
		n.Logger.Info("Push notifications disabled; dropping message", zap.String("userID", userID), zap.String("title", title))
	}
	return nil
}
