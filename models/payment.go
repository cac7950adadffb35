package models

import "time"

// CheckoutRequest asks the payment processor for a hosted checkout page.
type CheckoutRequest struct {
	BookingID     string
	Description   string
	Amount        float64
	Currency      string
	CustomerEmail string
	ExpiresAt     time.Time
	Metadata      map[string]string
}

// CheckoutSession is the processor's answer to a CheckoutRequest.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
