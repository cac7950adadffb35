package handlers

import (
	"net/http"

	"coachhub/models"
	"coachhub/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves slot queries and the client side of the booking lifecycle.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// GetSlotsHandler lists the open slots of a coach on one date.
func (h *BookingHandler) GetSlotsHandler(c *gin.Context) {
	var q models.SlotQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	q.CoachID = c.Param("coachID")

	slots, err := h.Service.GetAvailableSlots(c.Request.Context(), callerFrom(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coachId": q.CoachID, "date": q.Date, "slots": slots})
}

// CreateBookingHandler books a slot. Guests may only book with direct pay.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.Service.CreateBooking(c.Request.Context(), callerFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Debug("Booking created", zap.String("bookingID", result.Booking.ID))
	c.JSON(http.StatusCreated, result)
}

func (h *BookingHandler) ListMyBookingsHandler(c *gin.Context) {
	bookings, err := h.Service.ListMyBookings(c.Request.Context(), callerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	b, err := h.Service.CancelBooking(c.Request.Context(), callerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b, "forfeited": b.Forfeited})
}
