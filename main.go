package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coachhub/config"
	"coachhub/cron"
	"coachhub/database"
	"coachhub/database/repository"
	"coachhub/handlers"
	"coachhub/middleware"
	"coachhub/routes"
	"coachhub/services/academy"
	"coachhub/services/booking"
	"coachhub/services/community"
	"coachhub/services/membership"
	"coachhub/services/notification"
	"coachhub/services/payment"
	"coachhub/services/schedule"
	"coachhub/services/tasks"
	"coachhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.AppConfig.JWTSecret == "" {
		logger.Fatal("main: JWT_SECRET must be set")
	}
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitCache()
	stripe.Key = config.AppConfig.StripeSecretKey

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// repositories.
	repos := repository.NewMongoRepositories(database.DB())
	indexCtx, cancelIndexes := context.WithTimeout(ctx, 30*time.Second)
	if err := repos.EnsureIndexes(indexCtx); err != nil {
		logger.Fatal("main: failed to ensure indexes", zap.Error(err))
	}
	cancelIndexes()

	queue := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queue.Close()

	// services.
	var notificationService notification.NotificationService = notification.NoopNotificationService{Logger: logger}
	if config.FirebaseEnabled() {
		fcm, err := utils.NewFCMClient(ctx)
		if err != nil {
			logger.Fatal("main: failed to initialize firebase", zap.Error(err))
		}
		svc, err := notification.NewDefaultNotificationService(repos.Profiles, fcm, logger)
		if err != nil {
			logger.Fatal("main: failed to build notification service", zap.Error(err))
		}
		notificationService = svc
	} else {
		logger.Warn("main: FIREBASE_CREDENTIALS_FILE not set; push reminders are disabled")
	}

	bookingService := &booking.DefaultBookingService{
		Availability: repos.Availability,
		Blocked:      repos.Blocked,
		Bookings:     repos.Bookings,
		Credits:      repos.Credits,
		ServiceTypes: repos.ServiceTypes,
		Tx:           database.NewMongoTransactor(database.MongoClient),
		Checkout:     payment.NewStripeCheckout(config.AppConfig.CheckoutSuccessURL, config.AppConfig.CheckoutCancelURL, logger),
		Reminders:    tasks.NewReminderScheduler(queue, config.AppConfig.ReminderLead(), config.AppConfig.Location(), logger),
		Policy: booking.Policy{
			Location:           config.AppConfig.Location(),
			Currency:           config.AppConfig.Currency,
			CancellationNotice: config.AppConfig.CancellationNotice(),
			CheckoutExpiry:     config.AppConfig.CheckoutExpiry(),
			LockTTL:            config.AppConfig.BookingLockTTL(),
			LockWait:           config.AppConfig.BookingLockWait(),
		},
		Logger: logger,
	}

	scheduleService := &schedule.DefaultScheduleService{
		Availability: repos.Availability,
		Blocked:      repos.Blocked,
		ServiceTypes: repos.ServiceTypes,
		Logger:       logger,
	}
	membershipService := &membership.DefaultMembershipService{
		Credits:  repos.Credits,
		Profiles: repos.Profiles,
		Location: config.AppConfig.Location(),
		Logger:   logger,
	}
	academyService := &academy.DefaultAcademyService{Repo: repos.Academy, Logger: logger}

	counterCache := community.NewCounterCache()
	communityService := &community.DefaultCommunityService{Repo: repos.Community, Cache: counterCache, Logger: logger}
	subscriber := &community.Subscriber{
		Open:   community.WatchRepository(repos.Community),
		Cache:  counterCache,
		Logger: logger,
	}
	go subscriber.Run(ctx)

	webhooks := payment.NewWebhookProcessor(
		config.AppConfig.StripeWebhookSecret,
		bookingService,
		utils.NewEventDeduper(utils.GetCacheClient(), "stripe:event:", 48*time.Hour),
		logger,
	)

	worker := cron.InitReminderWorker(repos.Bookings, notificationService, logger)
	utils.StartHealthMonitor(ctx, utils.GetCacheClient(), database.MongoClient, 30*time.Second)

	bookingHandler := handlers.NewBookingHandler(bookingService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	membershipHandler := handlers.NewMembershipHandler(membershipService)
	academyHandler := handlers.NewAcademyHandler(academyService)
	communityHandler := handlers.NewCommunityHandler(communityService)
	paymentHandler := handlers.NewPaymentHandler(webhooks)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Verifier: utils.NewTokenVerifier(config.AppConfig.JWTSecret),

		GetSlotsHandler:       bookingHandler.GetSlotsHandler,
		CreateBookingHandler:  bookingHandler.CreateBookingHandler,
		ListMyBookingsHandler: bookingHandler.ListMyBookingsHandler,
		CancelBookingHandler:  bookingHandler.CancelBookingHandler,

		ListServiceTypesHandler: scheduleHandler.ListServiceTypesHandler,
		GetServiceTypeHandler:   scheduleHandler.GetServiceTypeHandler,

		StripeWebhookHandler: paymentHandler.StripeWebhookHandler,

		GetBalanceHandler:     membershipHandler.GetBalanceHandler,
		UpdateFCMTokenHandler: membershipHandler.UpdateFCMTokenHandler,

		GetCurriculumHandler:  academyHandler.GetCurriculumHandler,
		CompleteLessonHandler: academyHandler.CompleteLessonHandler,

		ListFeedHandler:   communityHandler.ListFeedHandler,
		CreatePostHandler: communityHandler.CreatePostHandler,
		LikePostHandler:   communityHandler.LikePostHandler,
		UnlikePostHandler: communityHandler.UnlikePostHandler,
		AddCommentHandler: communityHandler.AddCommentHandler,

		ListWindowsHandler:       scheduleHandler.ListWindowsHandler,
		CreateWindowHandler:      scheduleHandler.CreateWindowHandler,
		DeleteWindowHandler:      scheduleHandler.DeleteWindowHandler,
		ListBlockedTimesHandler:  scheduleHandler.ListBlockedTimesHandler,
		CreateBlockedTimeHandler: scheduleHandler.CreateBlockedTimeHandler,
		DeleteBlockedTimeHandler: scheduleHandler.DeleteBlockedTimeHandler,
		CreateServiceTypeHandler: scheduleHandler.CreateServiceTypeHandler,
		DeleteServiceTypeHandler: scheduleHandler.DeleteServiceTypeHandler,
		GrantCreditsHandler:      membershipHandler.GrantCreditsHandler,
		IssuePackageHandler:      membershipHandler.IssuePackageHandler,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	if err := database.MongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
