package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"coachhub/database"
	"coachhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetAvailableSlots(t *testing.T) {
	dayEnd := monday.AddDate(0, 0, 1)

	t.Run("returns open slots for the service duration", func(t *testing.T) {
		f := newFixture()
		f.serviceTypes.On("GetByID", mock.Anything, "st-1").Return(&models.ServiceType{ID: "st-1", DurationMinutes: 60}, nil)
		f.availability.On("ListByCoachAndDay", mock.Anything, "coach-1", time.Monday).
			Return([]models.AvailabilityWindow{mondayWindow("09:00", "12:00")}, nil)
		f.blocked.On("ListOverlapping", mock.Anything, "coach-1", monday, dayEnd).
			Return([]models.BlockedTime{{StartDateTime: at(10, 0), EndDateTime: at(10, 30)}}, nil)
		f.bookings.On("ListActiveOverlapping", mock.Anything, "coach-1", monday, dayEnd).
			Return([]models.Booking{}, nil)

		slots, err := f.svc.GetAvailableSlots(context.Background(), models.Caller{}, models.SlotQuery{
			CoachID: "coach-1", Date: "2030-01-07", ServiceTypeID: "st-1",
		})
		require.NoError(t, err)
		assert.Equal(t, []time.Time{at(9, 0), at(11, 0)}, starts(slots))
		f.availability.AssertExpectations(t)
		f.blocked.AssertExpectations(t)
		f.bookings.AssertExpectations(t)
	})

	t.Run("no windows short-circuits", func(t *testing.T) {
		f := newFixture()
		f.availability.On("ListByCoachAndDay", mock.Anything, "coach-1", time.Monday).
			Return([]models.AvailabilityWindow{}, nil)

		slots, err := f.svc.GetAvailableSlots(context.Background(), models.Caller{}, models.SlotQuery{
			CoachID: "coach-1", Date: "2030-01-07", DurationMinutes: 30,
		})
		require.NoError(t, err)
		assert.Empty(t, slots)
		assert.NotNil(t, slots)
		f.blocked.AssertNotCalled(t, "ListOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("validation", func(t *testing.T) {
		f := newFixture()
		cases := []models.SlotQuery{
			{Date: "2030-01-07", DurationMinutes: 60},
			{CoachID: "coach-1", DurationMinutes: 60},
			{CoachID: "coach-1", Date: "07/01/2030", DurationMinutes: 60},
			{CoachID: "coach-1", Date: "2030-01-07"},
		}
		for _, q := range cases {
			_, err := f.svc.GetAvailableSlots(context.Background(), models.Caller{}, q)
			assert.ErrorIs(t, err, ErrValidation, "query %+v", q)
		}
	})

	t.Run("unknown service type", func(t *testing.T) {
		f := newFixture()
		f.serviceTypes.On("GetByID", mock.Anything, "missing").Return(nil, database.ErrNotFound)

		_, err := f.svc.GetAvailableSlots(context.Background(), models.Caller{}, models.SlotQuery{
			CoachID: "coach-1", Date: "2030-01-07", ServiceTypeID: "missing",
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture()
		f.availability.On("ListByCoachAndDay", mock.Anything, "coach-1", time.Monday).
			Return([]models.AvailabilityWindow(nil), errors.New("connection reset"))

		_, err := f.svc.GetAvailableSlots(context.Background(), models.Caller{}, models.SlotQuery{
			CoachID: "coach-1", Date: "2030-01-07", DurationMinutes: 60,
		})
		assert.ErrorIs(t, err, ErrRemoteFailure)
	})
}
