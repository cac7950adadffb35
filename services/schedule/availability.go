package schedule

import (
	"context"
	"time"

	"coachhub/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultScheduleService) CreateWindow(ctx context.Context, caller models.Caller, w models.AvailabilityWindow) (*models.AvailabilityWindow, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := validate.Struct(w); err != nil {
		return nil, structError(err)
	}
	start, err := time.Parse("15:04", w.StartTime)
	if err != nil {
		return nil, invalid("startTime %q is not HH:MM", w.StartTime)
	}
	end, err := time.Parse("15:04", w.EndTime)
	if err != nil {
		return nil, invalid("endTime %q is not HH:MM", w.EndTime)
	}
	if !end.After(start) {
		return nil, invalid("endTime must be after startTime")
	}

	w.ID = uuid.New().String()
	w.CreatedAt = s.now().UTC()
	if err := s.Availability.Create(ctx, &w); err != nil {
		return nil, err
	}
	s.logger().Info("Availability window created",
		zap.String("windowID", w.ID), zap.String("coachID", w.CoachID),
		zap.String("day", w.DayOfWeek.String()), zap.String("from", w.StartTime), zap.String("to", w.EndTime))
	return &w, nil
}

func (s *DefaultScheduleService) DeleteWindow(ctx context.Context, caller models.Caller, id string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if err := s.Availability.Delete(ctx, id); err != nil {
		return translate(err, "availability window "+id)
	}
	return nil
}

func (s *DefaultScheduleService) ListWindows(ctx context.Context, coachID string) ([]models.AvailabilityWindow, error) {
	if coachID == "" {
		return nil, invalid("coachId is required")
	}
	return s.Availability.ListByCoach(ctx, coachID)
}

func (s *DefaultScheduleService) ListWindowsForDay(ctx context.Context, coachID string, day time.Weekday) ([]models.AvailabilityWindow, error) {
	if coachID == "" {
		return nil, invalid("coachId is required")
	}
	if day < time.Sunday || day > time.Saturday {
		return nil, invalid("dayOfWeek must be between 0 and 6")
	}
	return s.Availability.ListByCoachAndDay(ctx, coachID, day)
}

func (s *DefaultScheduleService) CreateBlockedTime(ctx context.Context, caller models.Caller, b models.BlockedTime) (*models.BlockedTime, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if err := validate.Struct(b); err != nil {
		return nil, structError(err)
	}
	if !b.EndDateTime.After(b.StartDateTime) {
		return nil, invalid("endDateTime must be after startDateTime")
	}

	b.ID = uuid.New().String()
	b.StartDateTime = b.StartDateTime.UTC()
	b.EndDateTime = b.EndDateTime.UTC()
	b.CreatedAt = s.now().UTC()
	if err := s.Blocked.Create(ctx, &b); err != nil {
		return nil, err
	}
	s.logger().Info("Blocked time created",
		zap.String("blockID", b.ID), zap.String("coachID", b.CoachID), zap.String("reason", b.Reason))
	return &b, nil
}

func (s *DefaultScheduleService) DeleteBlockedTime(ctx context.Context, caller models.Caller, id string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if err := s.Blocked.Delete(ctx, id); err != nil {
		return translate(err, "blocked time "+id)
	}
	return nil
}

func (s *DefaultScheduleService) ListBlockedTimes(ctx context.Context, coachID string, from, to time.Time) ([]models.BlockedTime, error) {
	if coachID == "" {
		return nil, invalid("coachId is required")
	}
	if !to.After(from) {
		return nil, invalid("to must be after from")
	}
	return s.Blocked.ListOverlapping(ctx, coachID, from, to)
}
