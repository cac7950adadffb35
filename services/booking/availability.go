package booking

import (
	"context"
	"errors"
	"time"

	"coachhub/database"
	"coachhub/metrics"
	"coachhub/models"

	"go.uber.org/zap"
)

// GetAvailableSlots returns the bookable slots of q.CoachID on q.Date. An empty result is not an error.
func (s *DefaultBookingService) GetAvailableSlots(ctx context.Context, caller models.Caller, q models.SlotQuery) ([]models.TimeSlot, error) {
	if q.CoachID == "" {
		return nil, validationError("coachId is required")
	}
	if q.Date == "" {
		return nil, validationError("date is required")
	}
	date, err := time.ParseInLocation("2006-01-02", q.Date, s.location())
	if err != nil {
		return nil, validationError("date must be formatted as YYYY-MM-DD")
	}

	minutes := q.DurationMinutes
	if minutes == 0 && q.ServiceTypeID != "" {
		st, err := s.serviceType(ctx, q.ServiceTypeID)
		if err != nil {
			return nil, err
		}
		minutes = st.DurationMinutes
	}
	if minutes <= 0 {
		return nil, validationError("durationMinutes or serviceTypeId is required")
	}
	duration := time.Duration(minutes) * time.Minute

	windows, err := s.Availability.ListByCoachAndDay(ctx, q.CoachID, date.Weekday())
	if err != nil {
		return nil, remoteError("failed to load availability", err)
	}
	if len(windows) == 0 {
		metrics.RecordSlotQuery(0)
		return []models.TimeSlot{}, nil
	}
	for _, w := range windows {
		if _, _, err := WindowBounds(date, w); err != nil {
			s.logger().Warn("Skipping malformed availability window",
				zap.String("windowID", w.ID), zap.String("coachID", w.CoachID), zap.Error(err))
		}
	}

	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)

	blocked, err := s.Blocked.ListOverlapping(ctx, q.CoachID, dayStart, dayEnd)
	if err != nil {
		return nil, remoteError("failed to load blocked times", err)
	}
	bookings, err := s.Bookings.ListActiveOverlapping(ctx, q.CoachID, dayStart, dayEnd)
	if err != nil {
		return nil, remoteError("failed to load bookings", err)
	}

	slots := BuildSlots(date, windows, blocked, bookings, duration, s.now())
	metrics.RecordSlotQuery(len(slots))
	s.logger().Debug("Computed available slots",
		zap.String("coachID", q.CoachID),
		zap.String("date", q.Date),
		zap.String("callerID", caller.UserID),
		zap.Int("slots", len(slots)))
	return slots, nil
}

// ensureOpen rejects [start, end) unless one of the coach's windows for that weekday contains it
// and no blocked period touches it.
func (s *DefaultBookingService) ensureOpen(ctx context.Context, coachID string, start, end time.Time) error {
	loc := s.location()
	y, m, d := start.In(loc).Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, loc)

	windows, err := s.Availability.ListByCoachAndDay(ctx, coachID, date.Weekday())
	if err != nil {
		return remoteError("failed to load availability", err)
	}
	if !withinWindow(date, start, end, windows) {
		return conflictError("the selected time is outside the coach's availability")
	}

	blocked, err := s.Blocked.ListOverlapping(ctx, coachID, start, end)
	if err != nil {
		return remoteError("failed to load blocked times", err)
	}
	if intersectsBlocked(start, end, blocked) {
		return conflictError("the selected time is blocked by the coach")
	}
	return nil
}

func (s *DefaultBookingService) serviceType(ctx context.Context, id string) (*models.ServiceType, error) {
	st, err := s.ServiceTypes.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, validationError("unknown service type")
	}
	if err != nil {
		return nil, remoteError("failed to load service type", err)
	}
	return st, nil
}
