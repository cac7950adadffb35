package models

import "time"

// ServiceType defines the duration and price applied to a booking.
type ServiceType struct {
	ID              string    `bson:"id" json:"id"`
	Name            string    `bson:"name" json:"name" validate:"required"` // e.g. "1:1 Technical Session"
	DurationMinutes int       `bson:"duration_minutes" json:"durationMinutes" validate:"gt=0"`
	BasePrice       float64   `bson:"base_price" json:"basePrice" validate:"gte=0"`
	MemberPrice     float64   `bson:"member_price" json:"memberPrice" validate:"gte=0"`
	MaxParticipants int       `bson:"max_participants" json:"maxParticipants" validate:"gte=1"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
}

// Duration returns the service length as a time.Duration.
func (s ServiceType) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// PriceFor returns the member price for members and the base price otherwise.
func (s ServiceType) PriceFor(caller Caller) float64 {
	if caller.IsMember() {
		return s.MemberPrice
	}
	return s.BasePrice
}

// ServiceTypeView is a service type with the price resolved for one caller.
type ServiceTypeView struct {
	ServiceType
	Price float64 `json:"price"`
}
