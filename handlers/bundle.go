package handlers

import (
	"coachhub/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Verifier *utils.TokenVerifier

	// Slots and bookings
	GetSlotsHandler       gin.HandlerFunc
	CreateBookingHandler  gin.HandlerFunc
	ListMyBookingsHandler gin.HandlerFunc
	CancelBookingHandler  gin.HandlerFunc

	// Catalog
	ListServiceTypesHandler gin.HandlerFunc
	GetServiceTypeHandler   gin.HandlerFunc

	// Payments
	StripeWebhookHandler gin.HandlerFunc

	// Member endpoints
	GetBalanceHandler     gin.HandlerFunc
	UpdateFCMTokenHandler gin.HandlerFunc

	// Academy
	GetCurriculumHandler  gin.HandlerFunc
	CompleteLessonHandler gin.HandlerFunc

	// Training Room
	ListFeedHandler   gin.HandlerFunc
	CreatePostHandler gin.HandlerFunc
	LikePostHandler   gin.HandlerFunc
	UnlikePostHandler gin.HandlerFunc
	AddCommentHandler gin.HandlerFunc

	// Admin endpoints
	ListWindowsHandler       gin.HandlerFunc
	CreateWindowHandler      gin.HandlerFunc
	DeleteWindowHandler      gin.HandlerFunc
	ListBlockedTimesHandler  gin.HandlerFunc
	CreateBlockedTimeHandler gin.HandlerFunc
	DeleteBlockedTimeHandler gin.HandlerFunc
	CreateServiceTypeHandler gin.HandlerFunc
	DeleteServiceTypeHandler gin.HandlerFunc
	GrantCreditsHandler      gin.HandlerFunc
	IssuePackageHandler      gin.HandlerFunc
}
