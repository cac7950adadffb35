package booking

import (
	"fmt"
	"sort"
	"time"

	"coachhub/models"
)

// BuildSlots lays back-to-back candidates of length duration across every window matching
// date's weekday, then drops those that intersect a block or an active booking, or that start
// before now. The result is de-duplicated by start time and sorted ascending.
func BuildSlots(
	date time.Time,
	windows []models.AvailabilityWindow,
	blocked []models.BlockedTime,
	bookings []models.Booking,
	duration time.Duration,
	now time.Time,
) []models.TimeSlot {
	slots := []models.TimeSlot{}
	if duration <= 0 {
		return slots
	}

	seen := make(map[int64]struct{})
	for _, w := range windows {
		if w.DayOfWeek != date.Weekday() {
			continue
		}
		windowStart, windowEnd, err := WindowBounds(date, w)
		if err != nil {
			continue
		}

		for start := windowStart; !start.Add(duration).After(windowEnd); start = start.Add(duration) {
			end := start.Add(duration)
			if start.Before(now) {
				continue
			}
			if intersectsBlocked(start, end, blocked) || intersectsBooking(start, end, bookings) {
				continue
			}
			key := start.UnixNano()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			slots = append(slots, models.TimeSlot{StartTime: start, EndTime: end, Available: true})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
	return slots
}

// WindowBounds anchors a window's wall-clock times onto date, in date's location.
func WindowBounds(date time.Time, w models.AvailabilityWindow) (time.Time, time.Time, error) {
	start, err := atClock(date, w.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := atClock(date, w.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("window %s-%s ends before it starts", w.StartTime, w.EndTime)
	}
	return start, end, nil
}

func atClock(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: expected HH:MM", clock)
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// overlaps treats both intervals as half-open.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func withinWindow(date, start, end time.Time, windows []models.AvailabilityWindow) bool {
	for _, w := range windows {
		ws, we, err := WindowBounds(date, w)
		if err != nil {
			continue
		}
		if !start.Before(ws) && !end.After(we) {
			return true
		}
	}
	return false
}

func intersectsBlocked(start, end time.Time, blocked []models.BlockedTime) bool {
	for _, b := range blocked {
		if overlaps(start, end, b.StartDateTime, b.EndDateTime) {
			return true
		}
	}
	return false
}

func intersectsBooking(start, end time.Time, bookings []models.Booking) bool {
	for _, b := range bookings {
		if b.Status.Active() && overlaps(start, end, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}
