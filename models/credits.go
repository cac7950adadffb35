package models

import "time"

// MonthlyCredit is the hybrid-membership credit counter for one user and month.
type MonthlyCredit struct {
	UserID    string    `bson:"user_id" json:"userId"`
	Period    string    `bson:"period" json:"period"` // "2006-01"
	Granted   int       `bson:"granted" json:"granted"`
	Remaining int       `bson:"remaining" json:"remaining"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// PurchasedPackage is a prepaid bundle of sessions.
type PurchasedPackage struct {
	ID                string    `bson:"id" json:"id"`
	UserID            string    `bson:"user_id" json:"userId" validate:"required"`
	Name              string    `bson:"name" json:"name" validate:"required"`
	SessionsTotal     int       `bson:"sessions_total" json:"sessionsTotal" validate:"gt=0"`
	SessionsRemaining int       `bson:"sessions_remaining" json:"sessionsRemaining"`
	ExpiresAt         time.Time `bson:"expires_at" json:"expiresAt" validate:"required"`
	PurchasedAt       time.Time `bson:"purchased_at" json:"purchasedAt"`
}

// Usable reports whether one session can be drawn from the package at now.
func (p PurchasedPackage) Usable(now time.Time) bool {
	return p.SessionsRemaining >= 1 && p.ExpiresAt.After(now)
}

// CreditBalance is the caller-facing summary of what they can pay with.
type CreditBalance struct {
	Monthly  *MonthlyCredit     `json:"monthly,omitempty"`
	Packages []PurchasedPackage `json:"packages"`
}

// CreditPeriod returns the monthly credit period a booking at t draws from.
func CreditPeriod(t time.Time) string {
	return t.Format("2006-01")
}
