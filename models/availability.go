package models

import "time"

// AvailabilityWindow is a recurring weekly open period for a coach.
type AvailabilityWindow struct {
	ID        string       `bson:"id" json:"id"`
	CoachID   string       `bson:"coach_id" json:"coachId" validate:"required"`
	DayOfWeek time.Weekday `bson:"day_of_week" json:"dayOfWeek" validate:"gte=0,lte=6"` // 0 = Sunday
	StartTime string       `bson:"start_time" json:"startTime" validate:"required"`      // "HH:MM" in business timezone
	EndTime   string       `bson:"end_time" json:"endTime" validate:"required"`          // "HH:MM" in business timezone
	CreatedAt time.Time    `bson:"created_at" json:"createdAt"`
}
