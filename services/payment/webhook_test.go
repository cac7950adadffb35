package payment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"coachhub/models"
	"coachhub/services/booking"
	"coachhub/utils"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

const testSecret = "whsec_test"

type MockConfirmer struct{ mock.Mock }

func (m *MockConfirmer) ConfirmDirectPayment(ctx context.Context, bookingID, paymentRef string) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, paymentRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockConfirmer) ExpireDirectPayment(ctx context.Context, bookingID string) (*models.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func signed(t *testing.T, payload string) ([]byte, string) {
	t.Helper()
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: []byte(payload),
		Secret:  testSecret,
	})
	return sp.Payload, sp.Header
}

func checkoutEvent(id, eventType, paymentStatus string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"object": "event",
		"api_version": %q,
		"type": %q,
		"data": {"object": {
			"id": "cs_test_1",
			"object": "checkout.session",
			"client_reference_id": "bk-1",
			"payment_status": %q,
			"payment_intent": "pi_123",
			"metadata": {"booking_id": "bk-1"}
		}}
	}`, id, stripe.APIVersion, eventType, paymentStatus)
}

func newProcessor(t *testing.T) (*WebhookProcessor, *MockConfirmer, redismock.ClientMock) {
	db, rmock := redismock.NewClientMock()
	confirmer := &MockConfirmer{}
	p := NewWebhookProcessor(testSecret, confirmer, utils.NewEventDeduper(db, "stripe:event:", 48*time.Hour), nil)
	return p, confirmer, rmock
}

func TestWebhook_CompletedConfirmsBooking(t *testing.T) {
	p, confirmer, rmock := newProcessor(t)
	rmock.Regexp().ExpectSetNX("stripe:event:evt_1", `.+`, 48*time.Hour).SetVal(true)
	confirmer.On("ConfirmDirectPayment", mock.Anything, "bk-1", "pi_123").
		Return(&models.Booking{ID: "bk-1", Status: models.BookingConfirmed}, nil)

	payload, header := signed(t, checkoutEvent("evt_1", "checkout.session.completed", "paid"))
	require.NoError(t, p.Handle(context.Background(), payload, header))

	confirmer.AssertExpectations(t)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestWebhook_DuplicateIgnored(t *testing.T) {
	p, confirmer, rmock := newProcessor(t)
	rmock.Regexp().ExpectSetNX("stripe:event:evt_1", `.+`, 48*time.Hour).SetVal(true)
	rmock.Regexp().ExpectSetNX("stripe:event:evt_1", `.+`, 48*time.Hour).SetVal(false)
	confirmer.On("ConfirmDirectPayment", mock.Anything, "bk-1", "pi_123").
		Return(&models.Booking{ID: "bk-1", Status: models.BookingConfirmed}, nil).Once()

	payload, header := signed(t, checkoutEvent("evt_1", "checkout.session.completed", "paid"))
	require.NoError(t, p.Handle(context.Background(), payload, header))
	require.NoError(t, p.Handle(context.Background(), payload, header))

	confirmer.AssertNumberOfCalls(t, "ConfirmDirectPayment", 1)
}

func TestWebhook_ExpiredCancelsBooking(t *testing.T) {
	p, confirmer, rmock := newProcessor(t)
	rmock.Regexp().ExpectSetNX("stripe:event:evt_2", `.+`, 48*time.Hour).SetVal(true)
	confirmer.On("ExpireDirectPayment", mock.Anything, "bk-1").
		Return(&models.Booking{ID: "bk-1", Status: models.BookingCancelled}, nil)

	payload, header := signed(t, checkoutEvent("evt_2", "checkout.session.expired", "unpaid"))
	require.NoError(t, p.Handle(context.Background(), payload, header))
	confirmer.AssertExpectations(t)
}

func TestWebhook_UnpaidCompletionWaits(t *testing.T) {
	p, confirmer, rmock := newProcessor(t)
	rmock.Regexp().ExpectSetNX("stripe:event:evt_3", `.+`, 48*time.Hour).SetVal(true)

	payload, header := signed(t, checkoutEvent("evt_3", "checkout.session.completed", "unpaid"))
	require.NoError(t, p.Handle(context.Background(), payload, header))
	confirmer.AssertNotCalled(t, "ConfirmDirectPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhook_PaymentAfterExpiryAcknowledged(t *testing.T) {
	p, confirmer, rmock := newProcessor(t)
	rmock.Regexp().ExpectSetNX("stripe:event:evt_4", `.+`, 48*time.Hour).SetVal(true)
	confirmer.On("ConfirmDirectPayment", mock.Anything, "bk-1", "pi_123").Return(nil, booking.ErrValidation)

	payload, header := signed(t, checkoutEvent("evt_4", "checkout.session.completed", "paid"))
	assert.NoError(t, p.Handle(context.Background(), payload, header))
}

func TestWebhook_BackendFailureIsRetried(t *testing.T) {
	p, confirmer, rmock := newProcessor(t)
	rmock.Regexp().ExpectSetNX("stripe:event:evt_5", `.+`, 48*time.Hour).SetVal(true)
	rmock.ExpectDel("stripe:event:evt_5").SetVal(1)
	confirmer.On("ConfirmDirectPayment", mock.Anything, "bk-1", "pi_123").
		Return(nil, &booking.BookingError{Code: booking.CodeRemoteFailure, Message: "mongo down"})

	payload, header := signed(t, checkoutEvent("evt_5", "checkout.session.completed", "paid"))
	err := p.Handle(context.Background(), payload, header)
	assert.ErrorIs(t, err, booking.ErrRemoteFailure)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestWebhook_UnknownTypeAcknowledged(t *testing.T) {
	p, confirmer, rmock := newProcessor(t)
	rmock.Regexp().ExpectSetNX("stripe:event:evt_6", `.+`, 48*time.Hour).SetVal(true)

	payload, header := signed(t, checkoutEvent("evt_6", "customer.created", "paid"))
	assert.NoError(t, p.Handle(context.Background(), payload, header))
	assert.Empty(t, confirmer.Calls)
}

func TestWebhook_BadSignature(t *testing.T) {
	p, confirmer, _ := newProcessor(t)

	payload := []byte(checkoutEvent("evt_7", "checkout.session.completed", "paid"))
	err := p.Handle(context.Background(), payload, "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Empty(t, confirmer.Calls)
}

func TestWebhook_StoreDown(t *testing.T) {
	p, _, rmock := newProcessor(t)
	rmock.Regexp().ExpectSetNX("stripe:event:evt_8", `.+`, 48*time.Hour).SetErr(errors.New("redis down"))

	payload, header := signed(t, checkoutEvent("evt_8", "checkout.session.completed", "paid"))
	assert.Error(t, p.Handle(context.Background(), payload, header))
}
