package booking

import (
	"context"
	"time"

	availabilityRepo "coachhub/database/repository/availability"
	blockedRepo "coachhub/database/repository/blocked"
	bookingRepo "coachhub/database/repository/booking"
	creditsRepo "coachhub/database/repository/credits"
	serviceTypeRepo "coachhub/database/repository/servicetype"
	"coachhub/models"

	"go.uber.org/zap"
)

// BookingService computes open slots and writes reservations against them.
type BookingService interface {
	GetAvailableSlots(ctx context.Context, caller models.Caller, q models.SlotQuery) ([]models.TimeSlot, error)
	CreateBooking(ctx context.Context, caller models.Caller, req models.CreateBookingRequest) (*models.BookingResult, error)
	CancelBooking(ctx context.Context, caller models.Caller, bookingID string) (*models.Booking, error)
	ListMyBookings(ctx context.Context, caller models.Caller) ([]models.Booking, error)

	// ConfirmDirectPayment and ExpireDirectPayment are driven by the payment processor's webhook.
	ConfirmDirectPayment(ctx context.Context, bookingID, paymentRef string) (*models.Booking, error)
	ExpireDirectPayment(ctx context.Context, bookingID string) (*models.Booking, error)
}

// CheckoutProvider opens a hosted checkout page for a direct-pay booking.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error)
}

// Transactor runs fn atomically; stores called with the ctx given to fn take part.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReminderScheduler queues the pre-session reminder of a confirmed booking.
type ReminderScheduler interface {
	ScheduleBookingReminder(ctx context.Context, b *models.Booking) error
}

// Policy carries the business rules the engine applies.
type Policy struct {
	Location           *time.Location
	Currency           string
	CancellationNotice time.Duration
	CheckoutExpiry     time.Duration
	LockTTL            time.Duration
	LockWait           time.Duration
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Availability availabilityRepo.AvailabilityRepository
	Blocked      blockedRepo.BlockedRepository
	Bookings     bookingRepo.BookingRepository
	Credits      creditsRepo.CreditRepository
	ServiceTypes serviceTypeRepo.ServiceTypeRepository
	Tx           Transactor
	Checkout     CheckoutProvider
	Reminders    ReminderScheduler
	Policy       Policy
	Logger       *zap.Logger
	Clock        func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *DefaultBookingService) location() *time.Location {
	if s.Policy.Location != nil {
		return s.Policy.Location
	}
	return time.UTC
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
