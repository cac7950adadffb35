package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"coachhub/metrics"
	"coachhub/models"
	"coachhub/services/booking"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// ErrInvalidSignature is returned when a webhook payload fails Stripe signature verification.
var ErrInvalidSignature = errors.New("invalid webhook signature")

const (
	eventCheckoutCompleted = "checkout.session.completed"
	eventCheckoutExpired   = "checkout.session.expired"
)

// BookingConfirmer is the part of the booking engine driven by payment events.
type BookingConfirmer interface {
	ConfirmDirectPayment(ctx context.Context, bookingID, paymentRef string) (*models.Booking, error)
	ExpireDirectPayment(ctx context.Context, bookingID string) (*models.Booking, error)
}

// EventStore de-duplicates webhook deliveries.
type EventStore interface {
	FirstSeen(ctx context.Context, id string) (bool, error)
	Forget(ctx context.Context, id string) error
}

// WebhookProcessor verifies and applies Stripe webhook events.
type WebhookProcessor struct {
	Secret    string
	Bookings  BookingConfirmer
	Events    EventStore
	Logger    *zap.Logger
	construct func(payload []byte, header, secret string) (stripe.Event, error)
}

func NewWebhookProcessor(secret string, bookings BookingConfirmer, events EventStore, logger *zap.Logger) *WebhookProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookProcessor{
		Secret:    secret,
		Bookings:  bookings,
		Events:    events,
		Logger:    logger,
		construct: webhook.ConstructEvent,
	}
}

// Handle processes one delivery. A nil error means Stripe should consider it delivered.
func (p *WebhookProcessor) Handle(ctx context.Context, payload []byte, signature string) error {
	event, err := p.construct(payload, signature, p.Secret)
	if err != nil {
		metrics.RecordWebhookEvent("unknown", "rejected")
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	eventType := string(event.Type)

	first, err := p.Events.FirstSeen(ctx, event.ID)
	if err != nil {
		// Without the store we cannot tell replays apart; let Stripe retry.
		metrics.RecordWebhookEvent(eventType, "error")
		return fmt.Errorf("webhook de-duplication store: %w", err)
	}
	if !first {
		p.Logger.Info("Ignoring duplicate Stripe event", zap.String("eventID", event.ID), zap.String("type", eventType))
		metrics.RecordWebhookEvent(eventType, "duplicate")
		return nil
	}

	if err := p.apply(ctx, event); err != nil {
		if ferr := p.Events.Forget(ctx, event.ID); ferr != nil {
			p.Logger.Warn("Failed to clear event marker", zap.String("eventID", event.ID), zap.Error(ferr))
		}
		metrics.RecordWebhookEvent(eventType, "error")
		return err
	}
	metrics.RecordWebhookEvent(eventType, "applied")
	return nil
}

func (p *WebhookProcessor) apply(ctx context.Context, event stripe.Event) error {
	switch string(event.Type) {
	case eventCheckoutCompleted:
		cs, bookingID, err := decodeSession(event)
		if err != nil {
			p.Logger.Warn("Dropping malformed checkout event", zap.String("eventID", event.ID), zap.Error(err))
			return nil
		}
		if cs.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
			p.Logger.Info("Checkout completed without payment yet",
				zap.String("bookingID", bookingID), zap.String("paymentStatus", string(cs.PaymentStatus)))
			return nil
		}
		ref := cs.ID
		if cs.PaymentIntent != nil && cs.PaymentIntent.ID != "" {
			ref = cs.PaymentIntent.ID
		}
		_, err = p.Bookings.ConfirmDirectPayment(ctx, bookingID, ref)
		return p.settle(bookingID, err)

	case eventCheckoutExpired:
		_, bookingID, err := decodeSession(event)
		if err != nil {
			p.Logger.Warn("Dropping malformed checkout event", zap.String("eventID", event.ID), zap.Error(err))
			return nil
		}
		_, err = p.Bookings.ExpireDirectPayment(ctx, bookingID)
		return p.settle(bookingID, err)
	}

	p.Logger.Debug("Unhandled Stripe event type", zap.String("type", string(event.Type)))
	return nil
}

// settle decides which booking errors are final. Only backend failures are retried.
func (p *WebhookProcessor) settle(bookingID string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, booking.ErrRemoteFailure):
		return err
	case errors.Is(err, booking.ErrValidation):
		p.Logger.Warn("Payment arrived for a cancelled booking; refund manually",
			zap.String("bookingID", bookingID), zap.Error(err))
		return nil
	default:
		p.Logger.Warn("Payment event did not match a booking", zap.String("bookingID", bookingID), zap.Error(err))
		return nil
	}
}

func decodeSession(event stripe.Event) (*stripe.CheckoutSession, string, error) {
	if event.Data == nil {
		return nil, "", fmt.Errorf("event %s has no data", event.ID)
	}
	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return nil, "", fmt.Errorf("decode checkout session: %w", err)
	}
	bookingID := cs.Metadata["booking_id"]
	if bookingID == "" {
		bookingID = cs.ClientReferenceID
	}
	if bookingID == "" {
		return nil, "", fmt.Errorf("checkout session %s carries no booking id", cs.ID)
	}
	return &cs, bookingID, nil
}
