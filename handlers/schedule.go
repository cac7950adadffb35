package handlers

import (
	"fmt"
	"net/http"
	"time"

	"coachhub/models"
	"coachhub/services/schedule"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler serves the service catalog and the admin schedule endpoints.
type ScheduleHandler struct {
	Service schedule.ScheduleService
}

func NewScheduleHandler(svc schedule.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

func (h *ScheduleHandler) ListServiceTypesHandler(c *gin.Context) {
	types, err := h.Service.ListServiceTypes(c.Request.Context(), callerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"serviceTypes": types})
}

func (h *ScheduleHandler) GetServiceTypeHandler(c *gin.Context) {
	st, err := h.Service.GetServiceType(c.Request.Context(), callerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *ScheduleHandler) CreateServiceTypeHandler(c *gin.Context) {
	var st models.ServiceType
	if err := c.ShouldBindJSON(&st); err != nil {
		badRequest(c, err)
		return
	}
	created, err := h.Service.CreateServiceType(c.Request.Context(), callerFrom(c), st)
	if err != nil {
		respondError(c, err)
		return
	}
	zap.L().Info("Service type created", zap.String("serviceTypeID", created.ID))
	c.JSON(http.StatusCreated, created)
}

func (h *ScheduleHandler) DeleteServiceTypeHandler(c *gin.Context) {
	if err := h.Service.DeleteServiceType(c.Request.Context(), callerFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListWindowsHandler lists a coach's weekly windows, optionally for one weekday.
func (h *ScheduleHandler) ListWindowsHandler(c *gin.Context) {
	var q struct {
		CoachID   string `form:"coachId" binding:"required"`
		DayOfWeek *int   `form:"dayOfWeek" binding:"omitempty,gte=0,lte=6"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	var (
		windows []models.AvailabilityWindow
		err     error
	)
	if q.DayOfWeek != nil {
		windows, err = h.Service.ListWindowsForDay(c.Request.Context(), q.CoachID, time.Weekday(*q.DayOfWeek))
	} else {
		windows, err = h.Service.ListWindows(c.Request.Context(), q.CoachID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"windows": windows})
}

func (h *ScheduleHandler) CreateWindowHandler(c *gin.Context) {
	var w models.AvailabilityWindow
	if err := c.ShouldBindJSON(&w); err != nil {
		badRequest(c, err)
		return
	}
	created, err := h.Service.CreateWindow(c.Request.Context(), callerFrom(c), w)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ScheduleHandler) DeleteWindowHandler(c *gin.Context) {
	if err := h.Service.DeleteWindow(c.Request.Context(), callerFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListBlockedTimesHandler lists blocks intersecting [from, to), both RFC 3339.
func (h *ScheduleHandler) ListBlockedTimesHandler(c *gin.Context) {
	var q struct {
		CoachID string `form:"coachId" binding:"required"`
		From    string `form:"from" binding:"required"`
		To      string `form:"to" binding:"required"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	from, err := time.Parse(time.RFC3339, q.From)
	if err != nil {
		badRequest(c, fmt.Errorf("from: %w", err))
		return
	}
	to, err := time.Parse(time.RFC3339, q.To)
	if err != nil {
		badRequest(c, fmt.Errorf("to: %w", err))
		return
	}

	blocks, err := h.Service.ListBlockedTimes(c.Request.Context(), q.CoachID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blockedTimes": blocks})
}

func (h *ScheduleHandler) CreateBlockedTimeHandler(c *gin.Context) {
	var b models.BlockedTime
	if err := c.ShouldBindJSON(&b); err != nil {
		badRequest(c, err)
		return
	}
	created, err := h.Service.CreateBlockedTime(c.Request.Context(), callerFrom(c), b)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ScheduleHandler) DeleteBlockedTimeHandler(c *gin.Context) {
	if err := h.Service.DeleteBlockedTime(c.Request.Context(), callerFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
