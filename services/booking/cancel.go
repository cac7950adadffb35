package booking

import (
	"context"
	"errors"

	"coachhub/database"
	"coachhub/metrics"
	"coachhub/models"

	"go.uber.org/zap"
)

// CancelBooking releases the slot. Late cancellations are forfeited; consumed credit is never restored.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, caller models.Caller, bookingID string) (*models.Booking, error) {
	if !caller.Authenticated() {
		return nil, forbiddenError("sign in to cancel a booking")
	}
	if bookingID == "" {
		return nil, validationError("booking id is required")
	}

	existing, err := s.Bookings.GetByID(ctx, bookingID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFoundError("booking not found")
	}
	if err != nil {
		return nil, remoteError("failed to load booking", err)
	}
	if existing.ClientUserID != caller.UserID && !caller.IsAdmin() {
		return nil, forbiddenError("only the client or an admin can cancel this booking")
	}
	if existing.Status == models.BookingCancelled {
		return nil, validationError("booking is already cancelled")
	}

	now := s.now()
	forfeited := existing.StartTime.Sub(now) < s.Policy.CancellationNotice
	cancelled, err := s.Bookings.Transition(ctx, bookingID, models.BookingTransition{
		From:        []models.BookingStatus{models.BookingPending, models.BookingConfirmed},
		To:          models.BookingCancelled,
		Forfeited:   forfeited,
		CancelledBy: caller.UserID,
		At:          now.UTC(),
	})
	if errors.Is(err, database.ErrNotFound) {
		// Lost a race with another cancel or an expiring checkout.
		return nil, validationError("booking is already cancelled")
	}
	if err != nil {
		return nil, remoteError("failed to cancel booking", err)
	}

	policy := "normal"
	if forfeited {
		policy = "forfeited"
	}
	metrics.RecordBookingCancellation(policy)
	s.logger().Info("Booking cancelled",
		zap.String("bookingID", bookingID),
		zap.String("by", caller.UserID),
		zap.Bool("forfeited", forfeited))
	return cancelled, nil
}

// ListMyBookings returns the caller's bookings, newest first.
func (s *DefaultBookingService) ListMyBookings(ctx context.Context, caller models.Caller) ([]models.Booking, error) {
	if !caller.Authenticated() {
		return nil, forbiddenError("sign in to list bookings")
	}
	bookings, err := s.Bookings.ListByClient(ctx, caller.UserID)
	if err != nil {
		return nil, remoteError("failed to list bookings", err)
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}
