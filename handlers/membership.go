package handlers

import (
	"net/http"

	"coachhub/models"
	"coachhub/services/membership"

	"github.com/gin-gonic/gin"
)

// MembershipHandler serves credit balances, device tokens and the admin credit endpoints.
type MembershipHandler struct {
	Service membership.MembershipService
}

func NewMembershipHandler(svc membership.MembershipService) *MembershipHandler {
	return &MembershipHandler{Service: svc}
}

func (h *MembershipHandler) GetBalanceHandler(c *gin.Context) {
	balance, err := h.Service.GetBalance(c.Request.Context(), callerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

func (h *MembershipHandler) UpdateFCMTokenHandler(c *gin.Context) {
	var input struct {
		FCMToken string `json:"fcmToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Service.UpdateFCMToken(c.Request.Context(), callerFrom(c), input.FCMToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "FCM token updated"})
}

func (h *MembershipHandler) GrantCreditsHandler(c *gin.Context) {
	var input struct {
		UserID string `json:"userId" binding:"required"`
		Period string `json:"period" binding:"required"`
		Amount int    `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	credit, err := h.Service.GrantMonthlyCredits(c.Request.Context(), callerFrom(c), input.UserID, input.Period, input.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, credit)
}

func (h *MembershipHandler) IssuePackageHandler(c *gin.Context) {
	var pkg models.PurchasedPackage
	if err := c.ShouldBindJSON(&pkg); err != nil {
		badRequest(c, err)
		return
	}
	issued, err := h.Service.IssuePackage(c.Request.Context(), callerFrom(c), pkg)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, issued)
}
