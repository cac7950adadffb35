package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Active reports whether a booking in this status holds its slot.
func (s BookingStatus) Active() bool {
	return s == BookingPending || s == BookingConfirmed
}

type PaymentMethod string

const (
	PaymentHybridCredit PaymentMethod = "hybrid_credit"
	PaymentPackage      PaymentMethod = "package"
	PaymentDirectPay    PaymentMethod = "direct_pay"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentHybridCredit, PaymentPackage, PaymentDirectPay:
		return true
	}
	return false
}

// Booking is a reservation of a coach for one service-type slot.
type Booking struct {
	ID                 string        `bson:"id" json:"id"`
	CoachID            string        `bson:"coach_id" json:"coachId"`
	ClientUserID       string        `bson:"client_user_id,omitempty" json:"clientUserId,omitempty"`
	GuestEmail         string        `bson:"guest_email,omitempty" json:"guestEmail,omitempty"`
	ServiceTypeID      string        `bson:"service_type_id" json:"serviceTypeId"`
	StartTime          time.Time     `bson:"start_time" json:"startTime"`
	EndTime            time.Time     `bson:"end_time" json:"endTime"`
	Status             BookingStatus `bson:"status" json:"status"`
	PaymentMethod      PaymentMethod `bson:"payment_method" json:"paymentMethod"`
	PurchasedPackageID string        `bson:"purchased_package_id,omitempty" json:"purchasedPackageId,omitempty"`
	Price              float64       `bson:"price" json:"price"`
	Currency           string        `bson:"currency" json:"currency"`
	CheckoutSessionID  string        `bson:"checkout_session_id,omitempty" json:"checkoutSessionId,omitempty"`
	PaymentRef         string        `bson:"payment_ref,omitempty" json:"paymentRef,omitempty"`
	Active             bool          `bson:"active" json:"-"`                  // mirrors Status.Active(); backs the unique slot index
	Forfeited          bool          `bson:"forfeited" json:"forfeited"`       // late cancellation, credit not restored
	CancelledAt        *time.Time    `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
	CancelledBy        string        `bson:"cancelled_by,omitempty" json:"cancelledBy,omitempty"`
	CreatedAt          time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time     `bson:"updated_at" json:"updatedAt"`
}

// CreateBookingRequest is the input to the booking writer.
type CreateBookingRequest struct {
	ServiceTypeID      string        `json:"serviceTypeId" validate:"required"`
	CoachID            string        `json:"coachId" validate:"required"`
	StartTime          time.Time     `json:"startTime" validate:"required"`
	EndTime            time.Time     `json:"endTime" validate:"required"`
	PaymentMethod      PaymentMethod `json:"paymentMethod" validate:"required"`
	PurchasedPackageID string        `json:"purchasedPackageId,omitempty"`
	GuestEmail         string        `json:"guestEmail,omitempty" validate:"omitempty,email"`
}

// BookingResult carries the persisted booking and, for direct pay, where to send the client.
type BookingResult struct {
	Booking     *Booking `json:"booking"`
	CheckoutURL string   `json:"checkoutUrl,omitempty"`
}

// BookingTransition describes a conditional status write.
type BookingTransition struct {
	From        []BookingStatus
	To          BookingStatus
	Forfeited   bool
	CancelledBy string
	PaymentRef  string
	At          time.Time
}
