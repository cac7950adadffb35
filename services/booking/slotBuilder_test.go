package booking

import (
	"testing"
	"time"
	_ "time/tzdata"

	"coachhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2030, 1, 7, hour, minute, 0, 0, time.UTC)
}

func mondayWindow(start, end string) models.AvailabilityWindow {
	return models.AvailabilityWindow{ID: "w-" + start, CoachID: "coach-1", DayOfWeek: time.Monday, StartTime: start, EndTime: end}
}

func starts(slots []models.TimeSlot) []time.Time {
	out := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime)
	}
	return out
}

func TestBuildSlots(t *testing.T) {
	hour := time.Hour
	tests := []struct {
		name     string
		windows  []models.AvailabilityWindow
		blocked  []models.BlockedTime
		bookings []models.Booking
		duration time.Duration
		now      time.Time
		want     []time.Time
	}{
		{
			name:     "no windows",
			duration: hour,
			now:      fixedNow,
			want:     []time.Time{},
		},
		{
			name:     "morning window in hour steps",
			windows:  []models.AvailabilityWindow{mondayWindow("09:00", "12:00")},
			duration: hour,
			now:      fixedNow,
			want:     []time.Time{at(9, 0), at(10, 0), at(11, 0)},
		},
		{
			name:     "partial block removes the slot it touches",
			windows:  []models.AvailabilityWindow{mondayWindow("09:00", "12:00")},
			blocked:  []models.BlockedTime{{CoachID: "coach-1", StartDateTime: at(10, 0), EndDateTime: at(10, 30)}},
			duration: hour,
			now:      fixedNow,
			want:     []time.Time{at(9, 0), at(11, 0)},
		},
		{
			name:    "active bookings remove slots, cancelled ones do not",
			windows: []models.AvailabilityWindow{mondayWindow("09:00", "12:00")},
			bookings: []models.Booking{
				{StartTime: at(9, 0), EndTime: at(10, 0), Status: models.BookingConfirmed},
				{StartTime: at(10, 0), EndTime: at(11, 0), Status: models.BookingCancelled},
				{StartTime: at(11, 0), EndTime: at(12, 0), Status: models.BookingPending},
			},
			duration: hour,
			now:      fixedNow,
			want:     []time.Time{at(10, 0)},
		},
		{
			name:     "trailing remainder shorter than duration is dropped",
			windows:  []models.AvailabilityWindow{mondayWindow("09:00", "10:45")},
			duration: 30 * time.Minute,
			now:      fixedNow,
			want:     []time.Time{at(9, 0), at(9, 30), at(10, 0)},
		},
		{
			name:     "slots before now are skipped",
			windows:  []models.AvailabilityWindow{mondayWindow("09:00", "12:00")},
			duration: hour,
			now:      at(10, 15),
			want:     []time.Time{at(11, 0)},
		},
		{
			name:     "windows for another weekday are ignored",
			windows:  []models.AvailabilityWindow{{CoachID: "coach-1", DayOfWeek: time.Tuesday, StartTime: "09:00", EndTime: "12:00"}},
			duration: hour,
			now:      fixedNow,
			want:     []time.Time{},
		},
		{
			name: "overlapping windows are de-duplicated and sorted",
			windows: []models.AvailabilityWindow{
				mondayWindow("14:00", "16:00"),
				mondayWindow("09:00", "11:00"),
				mondayWindow("10:00", "12:00"),
			},
			duration: hour,
			now:      fixedNow,
			want:     []time.Time{at(9, 0), at(10, 0), at(11, 0), at(14, 0), at(15, 0)},
		},
		{
			name:     "malformed window is skipped",
			windows:  []models.AvailabilityWindow{mondayWindow("12:00", "09:00"), mondayWindow("9am", "10:00")},
			duration: hour,
			now:      fixedNow,
			want:     []time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildSlots(monday, tt.windows, tt.blocked, tt.bookings, tt.duration, tt.now)
			assert.Equal(t, tt.want, starts(got))
		})
	}
}

func TestBuildSlots_HoldsInvariants(t *testing.T) {
	windows := []models.AvailabilityWindow{mondayWindow("08:00", "13:00"), mondayWindow("15:00", "18:30")}
	blocked := []models.BlockedTime{
		{StartDateTime: at(9, 45), EndDateTime: at(10, 15)},
		{StartDateTime: at(16, 0), EndDateTime: at(17, 0)},
	}
	bookings := []models.Booking{{StartTime: at(11, 0), EndTime: at(11, 45), Status: models.BookingConfirmed}}
	duration := 45 * time.Minute

	slots := BuildSlots(monday, windows, blocked, bookings, duration, fixedNow)
	require.NotEmpty(t, slots)

	for _, s := range slots {
		assert.Equal(t, duration, s.EndTime.Sub(s.StartTime))
		assert.True(t, s.Available)

		inWindow := false
		for _, w := range windows {
			ws, we, err := WindowBounds(monday, w)
			require.NoError(t, err)
			if !s.StartTime.Before(ws) && !s.EndTime.After(we) {
				inWindow = true
			}
		}
		assert.True(t, inWindow, "slot %s outside every window", s.StartTime)

		for _, b := range blocked {
			assert.False(t, overlaps(s.StartTime, s.EndTime, b.StartDateTime, b.EndDateTime), "slot %s hits a block", s.StartTime)
		}
		for _, b := range bookings {
			assert.False(t, overlaps(s.StartTime, s.EndTime, b.StartTime, b.EndTime), "slot %s hits a booking", s.StartTime)
		}
	}

	again := BuildSlots(monday, windows, blocked, bookings, duration, fixedNow)
	assert.Equal(t, slots, again)
}

func TestWindowBounds_UsesDateLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	date := time.Date(2030, 1, 7, 0, 0, 0, 0, loc)

	start, end, err := WindowBounds(date, mondayWindow("09:00", "10:30"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 1, 7, 14, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, 90*time.Minute, end.Sub(start))

	_, _, err = WindowBounds(date, mondayWindow("10:00", "10:00"))
	assert.Error(t, err)
}
