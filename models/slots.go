package models

import "time"

// TimeSlot is a derived bookable window. It is never persisted.
type TimeSlot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Available bool      `json:"available"`
}

// SlotQuery asks for the open slots of a coach on one calendar date.
type SlotQuery struct {
	CoachID         string `form:"-" json:"coachId"`
	Date            string `form:"date" json:"date"` // "2006-01-02" in business timezone
	DurationMinutes int    `form:"durationMinutes" json:"durationMinutes"`
	ServiceTypeID   string `form:"serviceTypeId" json:"serviceTypeId"`
}
