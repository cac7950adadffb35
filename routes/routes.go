package routes

import (
	"net/http"
	"time"

	"coachhub/handlers"
	"coachhub/middleware"
	"coachhub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterHealthRoutes registers the health-check and metrics endpoints.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		state := "ok"
		if !status.CheckedAt.IsZero() && !status.OK() {
			code = http.StatusServiceUnavailable
			state = "degraded"
		}
		c.JSON(code, gin.H{"status": state, "dependencies": status})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterBookingRoutes registers slot lookup, the service catalog and client bookings.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	optional := middleware.AuthMiddleware(hb.Verifier, true)
	required := middleware.AuthMiddleware(hb.Verifier, false)

	api := r.Group("/api")
	{
		api.GET("/coaches/:coachID/slots", optional, hb.GetSlotsHandler)
		api.GET("/service-types", optional, hb.ListServiceTypesHandler)
		api.GET("/service-types/:id", optional, hb.GetServiceTypeHandler)

		// Guests may book with direct pay, so the token is optional here.
		api.POST("/bookings", optional, hb.CreateBookingHandler)
		api.GET("/bookings/me", required, hb.ListMyBookingsHandler)
		api.POST("/bookings/:id/cancel", required, hb.CancelBookingHandler)
	}
}

// RegisterPaymentRoutes registers processor callbacks. They authenticate by signature, not token.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.POST("/stripe/webhook", hb.StripeWebhookHandler)
	}
}

// RegisterMemberRoutes registers the signed-in member endpoints.
func RegisterMemberRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(hb.Verifier, false))
	{
		api.GET("/credits/balance", hb.GetBalanceHandler)
		api.PUT("/profile/fcm-token", hb.UpdateFCMTokenHandler)

		api.GET("/academy/courses/:courseID", hb.GetCurriculumHandler)
		api.POST("/academy/lessons/:lessonID/complete", hb.CompleteLessonHandler)

		api.GET("/community/feed", hb.ListFeedHandler)
		api.POST("/community/posts", hb.CreatePostHandler)
		api.POST("/community/posts/:id/like", hb.LikePostHandler)
		api.DELETE("/community/posts/:id/like", hb.UnlikePostHandler)
		api.POST("/community/posts/:id/comments", hb.AddCommentHandler)
	}
}

// RegisterAdminRoutes registers the admin data API.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(hb.Verifier, false), middleware.AdminOnlyMiddleware())
	{
		admin.GET("/availability", hb.ListWindowsHandler)
		admin.POST("/availability", hb.CreateWindowHandler)
		admin.DELETE("/availability/:id", hb.DeleteWindowHandler)

		admin.GET("/blocked-times", hb.ListBlockedTimesHandler)
		admin.POST("/blocked-times", hb.CreateBlockedTimeHandler)
		admin.DELETE("/blocked-times/:id", hb.DeleteBlockedTimeHandler)

		admin.GET("/service-types", hb.ListServiceTypesHandler)
		admin.POST("/service-types", hb.CreateServiceTypeHandler)
		admin.DELETE("/service-types/:id", hb.DeleteServiceTypeHandler)

		admin.POST("/credits/grant", hb.GrantCreditsHandler)
		admin.POST("/packages", hb.IssuePackageHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoutes(r)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterMemberRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
