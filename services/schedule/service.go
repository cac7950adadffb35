package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coachhub/database"
	availabilityRepo "coachhub/database/repository/availability"
	blockedRepo "coachhub/database/repository/blocked"
	serviceTypeRepo "coachhub/database/repository/servicetype"
	"coachhub/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var (
	ErrForbidden = errors.New("admin access required")
	ErrInvalid   = errors.New("invalid input")
	ErrNotFound  = errors.New("not found")
)

var validate = validator.New()

// ScheduleService manages coach availability, blocked times and the service catalog.
type ScheduleService interface {
	CreateWindow(ctx context.Context, caller models.Caller, w models.AvailabilityWindow) (*models.AvailabilityWindow, error)
	DeleteWindow(ctx context.Context, caller models.Caller, id string) error
	ListWindows(ctx context.Context, coachID string) ([]models.AvailabilityWindow, error)
	ListWindowsForDay(ctx context.Context, coachID string, day time.Weekday) ([]models.AvailabilityWindow, error)

	CreateBlockedTime(ctx context.Context, caller models.Caller, b models.BlockedTime) (*models.BlockedTime, error)
	DeleteBlockedTime(ctx context.Context, caller models.Caller, id string) error
	ListBlockedTimes(ctx context.Context, coachID string, from, to time.Time) ([]models.BlockedTime, error)

	CreateServiceType(ctx context.Context, caller models.Caller, st models.ServiceType) (*models.ServiceType, error)
	DeleteServiceType(ctx context.Context, caller models.Caller, id string) error
	ListServiceTypes(ctx context.Context, caller models.Caller) ([]models.ServiceTypeView, error)
	GetServiceType(ctx context.Context, caller models.Caller, id string) (*models.ServiceTypeView, error)
}

type DefaultScheduleService struct {
	Availability availabilityRepo.AvailabilityRepository
	Blocked      blockedRepo.BlockedRepository
	ServiceTypes serviceTypeRepo.ServiceTypeRepository
	Logger       *zap.Logger
	Clock        func() time.Time
}

func (s *DefaultScheduleService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *DefaultScheduleService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func requireAdmin(caller models.Caller) error {
	if !caller.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func structError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return invalid("%s failed %s", fieldErrs[0].Field(), fieldErrs[0].Tag())
	}
	return invalid("%v", err)
}

func translate(err error, what string) error {
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}
