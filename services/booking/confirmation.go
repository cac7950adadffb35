package booking

import (
	"context"
	"errors"

	"coachhub/database"
	"coachhub/metrics"
	"coachhub/models"

	"go.uber.org/zap"
)

// ConfirmDirectPayment marks a pending direct-pay booking as paid. Repeated calls for a confirmed booking succeed.
func (s *DefaultBookingService) ConfirmDirectPayment(ctx context.Context, bookingID, paymentRef string) (*models.Booking, error) {
	confirmed, err := s.Bookings.Transition(ctx, bookingID, models.BookingTransition{
		From:       []models.BookingStatus{models.BookingPending},
		To:         models.BookingConfirmed,
		PaymentRef: paymentRef,
		At:         s.now().UTC(),
	})
	if err == nil {
		metrics.RecordBooking(string(confirmed.Status), string(confirmed.PaymentMethod))
		s.logger().Info("Direct payment confirmed",
			zap.String("bookingID", bookingID), zap.String("paymentRef", paymentRef))
		s.scheduleReminder(ctx, confirmed)
		return confirmed, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, remoteError("failed to confirm booking", err)
	}

	// Not pending: either already confirmed, cancelled or unknown.
	current, gerr := s.Bookings.GetByID(ctx, bookingID)
	if errors.Is(gerr, database.ErrNotFound) {
		return nil, notFoundError("booking not found")
	}
	if gerr != nil {
		return nil, remoteError("failed to load booking", gerr)
	}
	switch current.Status {
	case models.BookingConfirmed:
		return current, nil
	case models.BookingCancelled:
		s.logger().Warn("Payment received for a cancelled booking; refund required",
			zap.String("bookingID", bookingID), zap.String("paymentRef", paymentRef))
		return nil, validationError("booking was cancelled before payment completed")
	}
	return nil, remoteError("booking changed while confirming", err)
}

// ExpireDirectPayment cancels a booking whose checkout lapsed. Non-pending bookings are left alone.
func (s *DefaultBookingService) ExpireDirectPayment(ctx context.Context, bookingID string) (*models.Booking, error) {
	expired, err := s.Bookings.Transition(ctx, bookingID, models.BookingTransition{
		From:        []models.BookingStatus{models.BookingPending},
		To:          models.BookingCancelled,
		CancelledBy: "system",
		At:          s.now().UTC(),
	})
	if errors.Is(err, database.ErrNotFound) {
		current, gerr := s.Bookings.GetByID(ctx, bookingID)
		if errors.Is(gerr, database.ErrNotFound) {
			return nil, notFoundError("booking not found")
		}
		if gerr != nil {
			return nil, remoteError("failed to load booking", gerr)
		}
		return current, nil
	}
	if err != nil {
		return nil, remoteError("failed to expire booking", err)
	}
	metrics.RecordBookingCancellation("expired")
	s.logger().Info("Pending booking expired", zap.String("bookingID", bookingID))
	return expired, nil
}
