package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coachhub/database"
	creditsRepo "coachhub/database/repository/credits"
	"coachhub/metrics"
	"coachhub/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var validate = validator.New()

// CreateBooking reserves [StartTime, EndTime) with the coach and settles it with the chosen payment method.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, caller models.Caller, req models.CreateBookingRequest) (*models.BookingResult, error) {
	result, err := s.createBooking(ctx, caller, req)
	if err != nil {
		var be *BookingError
		if errors.As(err, &be) {
			metrics.RecordBookingRejection(string(be.Code))
		}
		s.logger().Info("Booking rejected",
			zap.String("coachID", req.CoachID),
			zap.Time("start", req.StartTime),
			zap.String("method", string(req.PaymentMethod)),
			zap.Error(err))
		return nil, err
	}
	return result, nil
}

func (s *DefaultBookingService) createBooking(ctx context.Context, caller models.Caller, req models.CreateBookingRequest) (*models.BookingResult, error) {
	now := s.now()

	// Step 1: Validate input and resolve the service type.
	st, err := s.validateCreate(ctx, caller, req, now)
	if err != nil {
		return nil, err
	}

	// Step 2: Serialize writers on this coach's calendar.
	owner := uuid.New().String()
	if err := s.lockCoach(ctx, req.CoachID, owner); err != nil {
		return nil, err
	}
	defer s.unlockCoach(ctx, req.CoachID, owner)

	// Step 3: Re-check the coach's calendar as it stands now.
	if err := s.ensureOpen(ctx, req.CoachID, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	overlap, err := s.Bookings.HasActiveOverlap(ctx, req.CoachID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, remoteError("failed to check existing bookings", err)
	}
	if overlap {
		return nil, conflictError("the selected time overlaps an existing booking")
	}

	// Step 4: Verify the payment method can settle before anything is written.
	if err := s.checkCredit(ctx, caller, req, now); err != nil {
		return nil, err
	}

	// Step 5: Insert the booking and draw the credit together.
	booking := s.newBooking(caller, req, st, now)
	err = s.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.Bookings.Create(txCtx, booking); err != nil {
			return err
		}
		return s.consumeCredit(txCtx, caller, req, now)
	})
	if err != nil {
		return nil, translateWriteError(err)
	}

	result := &models.BookingResult{Booking: booking}

	// Step 6: Direct pay hands the client over to the hosted checkout.
	if req.PaymentMethod == models.PaymentDirectPay {
		url, err := s.startCheckout(ctx, caller, booking, st)
		if err != nil {
			return nil, err
		}
		result.CheckoutURL = url
	} else {
		s.scheduleReminder(ctx, booking)
	}

	metrics.RecordBooking(string(booking.Status), string(booking.PaymentMethod))
	s.logger().Info("Booking created",
		zap.String("bookingID", booking.ID),
		zap.String("coachID", booking.CoachID),
		zap.String("status", string(booking.Status)),
		zap.String("method", string(booking.PaymentMethod)))
	return result, nil
}

func (s *DefaultBookingService) validateCreate(ctx context.Context, caller models.Caller, req models.CreateBookingRequest, now time.Time) (*models.ServiceType, error) {
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return nil, validationError(fmt.Sprintf("%s is invalid (%s)", fieldErrs[0].Field(), fieldErrs[0].Tag()))
		}
		return nil, validationError(err.Error())
	}
	if !req.PaymentMethod.Valid() {
		return nil, validationError(fmt.Sprintf("unsupported payment method %q", req.PaymentMethod))
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, validationError("endTime must be after startTime")
	}
	if req.StartTime.Before(now) {
		return nil, validationError("cannot book a time in the past")
	}
	if req.PaymentMethod == models.PaymentPackage && req.PurchasedPackageID == "" {
		return nil, validationError("purchasedPackageId is required when paying with a package")
	}
	if !caller.Authenticated() {
		if req.PaymentMethod != models.PaymentDirectPay {
			return nil, paymentRequiredError("guests can only pay directly")
		}
		if req.GuestEmail == "" {
			return nil, validationError("guestEmail is required for guest bookings")
		}
	}

	st, err := s.serviceType(ctx, req.ServiceTypeID)
	if err != nil {
		return nil, err
	}
	if req.EndTime.Sub(req.StartTime) != st.Duration() {
		return nil, validationError(fmt.Sprintf("%s lasts %d minutes", st.Name, st.DurationMinutes))
	}
	if req.PaymentMethod == models.PaymentDirectPay && st.PriceFor(caller) <= 0 {
		return nil, validationError("this service cannot be paid directly")
	}
	return st, nil
}

func (s *DefaultBookingService) checkCredit(ctx context.Context, caller models.Caller, req models.CreateBookingRequest, now time.Time) error {
	switch req.PaymentMethod {
	case models.PaymentHybridCredit:
		period := models.CreditPeriod(req.StartTime.In(s.location()))
		mc, err := s.Credits.GetMonthlyCredit(ctx, caller.UserID, period)
		if errors.Is(err, database.ErrNotFound) {
			return paymentRequiredError(fmt.Sprintf("no monthly credits for %s", period))
		}
		if err != nil {
			return remoteError("failed to load monthly credits", err)
		}
		if mc.Remaining < 1 {
			return paymentRequiredError(fmt.Sprintf("no monthly credits left for %s", period))
		}

	case models.PaymentPackage:
		pkg, err := s.Credits.GetPackage(ctx, req.PurchasedPackageID)
		if errors.Is(err, database.ErrNotFound) {
			return paymentRequiredError("package not found")
		}
		if err != nil {
			return remoteError("failed to load package", err)
		}
		if pkg.UserID != caller.UserID {
			return paymentRequiredError("package belongs to another member")
		}
		if !pkg.ExpiresAt.After(now) {
			return paymentRequiredError("package has expired")
		}
		if pkg.SessionsRemaining < 1 {
			return paymentRequiredError("package has no sessions left")
		}
	}
	return nil
}

func (s *DefaultBookingService) consumeCredit(ctx context.Context, caller models.Caller, req models.CreateBookingRequest, now time.Time) error {
	switch req.PaymentMethod {
	case models.PaymentHybridCredit:
		_, err := s.Credits.ConsumeMonthlyCredit(ctx, caller.UserID, models.CreditPeriod(req.StartTime.In(s.location())))
		return err
	case models.PaymentPackage:
		_, err := s.Credits.ConsumePackageSession(ctx, req.PurchasedPackageID, caller.UserID, now)
		return err
	}
	return nil
}

func (s *DefaultBookingService) newBooking(caller models.Caller, req models.CreateBookingRequest, st *models.ServiceType, now time.Time) *models.Booking {
	status := models.BookingConfirmed
	if req.PaymentMethod == models.PaymentDirectPay {
		status = models.BookingPending
	}
	b := &models.Booking{
		ID:                 uuid.New().String(),
		CoachID:            req.CoachID,
		ClientUserID:       caller.UserID,
		ServiceTypeID:      st.ID,
		StartTime:          req.StartTime.UTC(),
		EndTime:            req.EndTime.UTC(),
		Status:             status,
		PaymentMethod:      req.PaymentMethod,
		PurchasedPackageID: req.PurchasedPackageID,
		Price:              st.PriceFor(caller),
		Currency:           s.Policy.Currency,
		Active:             true,
		CreatedAt:          now.UTC(),
		UpdatedAt:          now.UTC(),
	}
	if !caller.Authenticated() {
		b.GuestEmail = req.GuestEmail
	}
	return b
}

// minCheckoutExpiry stays above the 30 minute floor the payment provider enforces on expires_at.
const minCheckoutExpiry = 31 * time.Minute

func (s *DefaultBookingService) startCheckout(ctx context.Context, caller models.Caller, b *models.Booking, st *models.ServiceType) (string, error) {
	email := b.GuestEmail
	if email == "" {
		email = caller.Email
	}
	expiry := s.Policy.CheckoutExpiry
	if expiry < minCheckoutExpiry {
		expiry = minCheckoutExpiry
	}
	session, err := s.Checkout.CreateCheckoutSession(ctx, models.CheckoutRequest{
		BookingID:     b.ID,
		Description:   st.Name,
		Amount:        b.Price,
		Currency:      b.Currency,
		CustomerEmail: email,
		ExpiresAt:     s.now().Add(expiry),
		Metadata: map[string]string{
			"booking_id": b.ID,
			"coach_id":   b.CoachID,
		},
	})
	if err != nil {
		// Free the slot held by the pending booking.
		if _, cerr := s.Bookings.Transition(ctx, b.ID, models.BookingTransition{
			From:        []models.BookingStatus{models.BookingPending},
			To:          models.BookingCancelled,
			CancelledBy: "system",
			At:          s.now().UTC(),
		}); cerr != nil {
			s.logger().Error("Failed to release pending booking after checkout error",
				zap.String("bookingID", b.ID), zap.Error(cerr))
		}
		return "", remoteError("failed to start checkout", err)
	}

	if err := s.Bookings.SetCheckoutSession(ctx, b.ID, session.ID); err != nil {
		s.logger().Warn("Failed to store checkout session on booking",
			zap.String("bookingID", b.ID), zap.String("sessionID", session.ID), zap.Error(err))
	}
	b.CheckoutSessionID = session.ID
	return session.URL, nil
}

func (s *DefaultBookingService) lockCoach(ctx context.Context, coachID, owner string) error {
	deadline := time.Now().Add(s.Policy.LockWait)
	for {
		ok, err := s.Bookings.AcquireCoachLock(ctx, coachID, owner, s.Policy.LockTTL)
		if err != nil {
			return remoteError("failed to lock coach calendar", err)
		}
		if ok {
			return nil
		}
		if !time.Now().Before(deadline) {
			return conflictError("another booking for this coach is in progress")
		}
		select {
		case <-ctx.Done():
			return remoteError("gave up waiting for coach calendar", ctx.Err())
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func (s *DefaultBookingService) unlockCoach(ctx context.Context, coachID, owner string) {
	if err := s.Bookings.ReleaseCoachLock(context.WithoutCancel(ctx), coachID, owner); err != nil {
		s.logger().Warn("Failed to release coach lock; it will expire", zap.String("coachID", coachID), zap.Error(err))
	}
}

func (s *DefaultBookingService) scheduleReminder(ctx context.Context, b *models.Booking) {
	if s.Reminders == nil || b.ClientUserID == "" {
		return
	}
	if err := s.Reminders.ScheduleBookingReminder(ctx, b); err != nil {
		s.logger().Warn("Failed to schedule booking reminder", zap.String("bookingID", b.ID), zap.Error(err))
	}
}

func translateWriteError(err error) error {
	var be *BookingError
	switch {
	case errors.As(err, &be):
		return be
	case errors.Is(err, database.ErrDuplicate):
		return conflictError("the selected time was just booked")
	case errors.Is(err, creditsRepo.ErrExhausted):
		return paymentRequiredError("credit was used up by another booking")
	}
	return remoteError("failed to save booking", err)
}
