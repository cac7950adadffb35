package handlers

import (
	"errors"
	"net/http"

	"coachhub/services/academy"
	"coachhub/services/booking"
	"coachhub/services/community"
	"coachhub/services/membership"
	"coachhub/services/payment"
	"coachhub/services/schedule"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type statusMapping struct {
	target error
	status int
	label  string
}

var errorStatuses = []statusMapping{
	{booking.ErrValidation, http.StatusBadRequest, "validation"},
	{booking.ErrBookingConflict, http.StatusConflict, "booking_conflict"},
	{booking.ErrPaymentRequired, http.StatusPaymentRequired, "payment_required"},
	{booking.ErrRemoteFailure, http.StatusBadGateway, "remote_failure"},
	{booking.ErrNotFound, http.StatusNotFound, "not_found"},
	{booking.ErrForbidden, http.StatusForbidden, "forbidden"},

	{schedule.ErrInvalid, http.StatusBadRequest, "validation"},
	{schedule.ErrForbidden, http.StatusForbidden, "forbidden"},
	{schedule.ErrNotFound, http.StatusNotFound, "not_found"},

	{membership.ErrInvalid, http.StatusBadRequest, "validation"},
	{membership.ErrForbidden, http.StatusForbidden, "forbidden"},
	{membership.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},

	{academy.ErrLocked, http.StatusForbidden, "phase_locked"},
	{academy.ErrNotFound, http.StatusNotFound, "not_found"},
	{academy.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},

	{community.ErrInvalid, http.StatusBadRequest, "validation"},
	{community.ErrNotFound, http.StatusNotFound, "not_found"},
	{community.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},

	{payment.ErrInvalidSignature, http.StatusBadRequest, "invalid_signature"},
}

// statusFor maps a service error onto an HTTP status and a stable error label.
func statusFor(err error) (int, string) {
	for _, m := range errorStatuses {
		if errors.Is(err, m.target) {
			return m.status, m.label
		}
	}
	return http.StatusInternalServerError, "internal_error"
}

// respondError writes err in the {error, message} shape.
func respondError(c *gin.Context, err error) {
	status, label := statusFor(err)
	logger := getLogger(c)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		if status == http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": label, "message": "An unexpected error occurred. Please try again later."})
			return
		}
	} else {
		logger.Info("Request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": label, "message": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
}
