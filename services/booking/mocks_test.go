package booking

import (
	"context"
	"time"

	"coachhub/models"

	"github.com/stretchr/testify/mock"
)

type MockAvailabilityRepo struct{ mock.Mock }

func (m *MockAvailabilityRepo) Create(ctx context.Context, w *models.AvailabilityWindow) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockAvailabilityRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAvailabilityRepo) GetByID(ctx context.Context, id string) (*models.AvailabilityWindow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AvailabilityWindow), args.Error(1)
}

func (m *MockAvailabilityRepo) ListByCoach(ctx context.Context, coachID string) ([]models.AvailabilityWindow, error) {
	args := m.Called(ctx, coachID)
	return args.Get(0).([]models.AvailabilityWindow), args.Error(1)
}

func (m *MockAvailabilityRepo) ListByCoachAndDay(ctx context.Context, coachID string, day time.Weekday) ([]models.AvailabilityWindow, error) {
	args := m.Called(ctx, coachID, day)
	return args.Get(0).([]models.AvailabilityWindow), args.Error(1)
}

func (m *MockAvailabilityRepo) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockBlockedRepo struct{ mock.Mock }

func (m *MockBlockedRepo) Create(ctx context.Context, b *models.BlockedTime) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBlockedRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBlockedRepo) ListOverlapping(ctx context.Context, coachID string, from, to time.Time) ([]models.BlockedTime, error) {
	args := m.Called(ctx, coachID, from, to)
	return args.Get(0).([]models.BlockedTime), args.Error(1)
}

func (m *MockBlockedRepo) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockBookingRepo struct{ mock.Mock }

func (m *MockBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepo) ListActiveOverlapping(ctx context.Context, coachID string, from, to time.Time) ([]models.Booking, error) {
	args := m.Called(ctx, coachID, from, to)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepo) HasActiveOverlap(ctx context.Context, coachID string, from, to time.Time) (bool, error) {
	args := m.Called(ctx, coachID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepo) ListByClient(ctx context.Context, userID string) ([]models.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepo) Transition(ctx context.Context, id string, t models.BookingTransition) (*models.Booking, error) {
	args := m.Called(ctx, id, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepo) SetCheckoutSession(ctx context.Context, id, sessionID string) error {
	return m.Called(ctx, id, sessionID).Error(0)
}

func (m *MockBookingRepo) AcquireCoachLock(ctx context.Context, coachID, owner string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, coachID, owner, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepo) ReleaseCoachLock(ctx context.Context, coachID, owner string) error {
	return m.Called(ctx, coachID, owner).Error(0)
}

func (m *MockBookingRepo) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockCreditRepo struct{ mock.Mock }

func (m *MockCreditRepo) GetMonthlyCredit(ctx context.Context, userID, period string) (*models.MonthlyCredit, error) {
	args := m.Called(ctx, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MonthlyCredit), args.Error(1)
}

func (m *MockCreditRepo) ConsumeMonthlyCredit(ctx context.Context, userID, period string) (*models.MonthlyCredit, error) {
	args := m.Called(ctx, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MonthlyCredit), args.Error(1)
}

func (m *MockCreditRepo) GrantMonthlyCredits(ctx context.Context, userID, period string, amount int) (*models.MonthlyCredit, error) {
	args := m.Called(ctx, userID, period, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MonthlyCredit), args.Error(1)
}

func (m *MockCreditRepo) CreatePackage(ctx context.Context, p *models.PurchasedPackage) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockCreditRepo) GetPackage(ctx context.Context, id string) (*models.PurchasedPackage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchasedPackage), args.Error(1)
}

func (m *MockCreditRepo) ListActivePackages(ctx context.Context, userID string, now time.Time) ([]models.PurchasedPackage, error) {
	args := m.Called(ctx, userID, now)
	return args.Get(0).([]models.PurchasedPackage), args.Error(1)
}

func (m *MockCreditRepo) ConsumePackageSession(ctx context.Context, id, userID string, now time.Time) (*models.PurchasedPackage, error) {
	args := m.Called(ctx, id, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchasedPackage), args.Error(1)
}

func (m *MockCreditRepo) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockServiceTypeRepo struct{ mock.Mock }

func (m *MockServiceTypeRepo) Create(ctx context.Context, st *models.ServiceType) error {
	return m.Called(ctx, st).Error(0)
}

func (m *MockServiceTypeRepo) GetByID(ctx context.Context, id string) (*models.ServiceType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceType), args.Error(1)
}

func (m *MockServiceTypeRepo) List(ctx context.Context) ([]models.ServiceType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ServiceType), args.Error(1)
}

func (m *MockServiceTypeRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockServiceTypeRepo) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockCheckout struct{ mock.Mock }

func (m *MockCheckout) CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckoutSession), args.Error(1)
}

type MockReminders struct{ mock.Mock }

func (m *MockReminders) ScheduleBookingReminder(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

// inlineTx runs fn directly; Mongo transactions are covered by the repository tests.
type inlineTx struct{}

func (inlineTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	svc          *DefaultBookingService
	availability *MockAvailabilityRepo
	blocked      *MockBlockedRepo
	bookings     *MockBookingRepo
	credits      *MockCreditRepo
	serviceTypes *MockServiceTypeRepo
	checkout     *MockCheckout
	reminders    *MockReminders
}

// fixedNow is a Sunday, one day before the Monday the scenarios book against.
var fixedNow = time.Date(2030, 1, 6, 8, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		availability: &MockAvailabilityRepo{},
		blocked:      &MockBlockedRepo{},
		bookings:     &MockBookingRepo{},
		credits:      &MockCreditRepo{},
		serviceTypes: &MockServiceTypeRepo{},
		checkout:     &MockCheckout{},
		reminders:    &MockReminders{},
	}
	f.svc = &DefaultBookingService{
		Availability: f.availability,
		Blocked:      f.blocked,
		Bookings:     f.bookings,
		Credits:      f.credits,
		ServiceTypes: f.serviceTypes,
		Tx:           inlineTx{},
		Checkout:     f.checkout,
		Reminders:    f.reminders,
		Policy: Policy{
			Location:           time.UTC,
			Currency:           "usd",
			CancellationNotice: 24 * time.Hour,
			CheckoutExpiry:     time.Hour,
			LockTTL:            10 * time.Second,
			LockWait:           0,
		},
		Clock: func() time.Time { return fixedNow },
	}
	return f
}
