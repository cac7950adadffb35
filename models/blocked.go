package models

import "time"

// BlockedTime is an ad-hoc exclusion interval overlaying a coach's availability.
type BlockedTime struct {
	ID            string    `bson:"id" json:"id"`
	CoachID       string    `bson:"coach_id" json:"coachId" validate:"required"`
	StartDateTime time.Time `bson:"start_date_time" json:"startDateTime" validate:"required"`
	EndDateTime   time.Time `bson:"end_date_time" json:"endDateTime" validate:"required"`
	Reason        string    `bson:"reason" json:"reason"` // e.g. "vacation", "tournament"
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
}
