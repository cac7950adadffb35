package payment

import (
	"context"
	"fmt"
	"math"
	"strings"

	"coachhub/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// StripeCheckout opens Stripe-hosted Checkout Sessions for direct-pay bookings.
type StripeCheckout struct {
	SuccessURL string
	CancelURL  string
	Logger     *zap.Logger

	// newSession is swapped in tests.
	newSession func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

func NewStripeCheckout(successURL, cancelURL string, logger *zap.Logger) *StripeCheckout {
	return &StripeCheckout{
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		Logger:     logger,
		newSession: session.New,
	}
}

// CreateCheckoutSession implements booking.CheckoutProvider.
func (s *StripeCheckout) CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("checkout amount must be positive, got %.2f", req.Amount)
	}

	params := buildSessionParams(req, s.SuccessURL, s.CancelURL)
	params.Context = ctx

	cs, err := s.newSession(params)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Error("Stripe checkout session creation failed",
				zap.String("bookingID", req.BookingID), zap.Error(err))
		}
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}
	return &models.CheckoutSession{ID: cs.ID, URL: cs.URL}, nil
}

func buildSessionParams(req models.CheckoutRequest, successURL, cancelURL string) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(successURL),
		CancelURL:         stripe.String(cancelURL),
		ClientReferenceID: stripe.String(req.BookingID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(strings.ToLower(req.Currency)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
					UnitAmount: stripe.Int64(toMinorUnits(req.Amount)),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if !req.ExpiresAt.IsZero() {
		params.ExpiresAt = stripe.Int64(req.ExpiresAt.Unix())
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	params.AddMetadata("booking_id", req.BookingID)
	return params
}

// toMinorUnits converts a decimal price to cents.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
