package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hirewheels/config"
	"hirewheels/cron"
	"hirewheels/database"
	riderRepoPkg "hirewheels/database/repository/rider"
	"hirewheels/handlers"
	"hirewheels/routes"
	"hirewheels/services/catalog"
	"hirewheels/services/draft"
	"hirewheels/services/notification"
	"hirewheels/services/pricing"
	"hirewheels/services/ride"
	riderSvcPkg "hirewheels/services/rider"
	"hirewheels/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	utils.StartHealthMonitor([]*redis.Client{
		utils.GetCacheClient(),
		utils.GetDraftCacheClient(),
		utils.GetAuthCacheClient(),
		utils.GetOTPCacheClient(),
	}, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	riderRepo := riderRepoPkg.NewMongoRiderRepo()

	// services.
	riderService := &riderSvcPkg.DefaultRiderService{
		Repo:   riderRepo,
		Logger: logger,
	}

	notificationService := &notification.DefaultNotificationService{
		Logger: logger,
	}

	pricingClient := pricing.NewClient(logger)
	catalogClient := catalog.NewClient(logger)

	draftStore := draft.NewStore(utils.GetDraftCacheClient())
	recalculator := draft.NewRecalculator(pricingClient, draftStore, logger)
	draftService := &draft.DefaultDraftService{
		Store:  draftStore,
		Recalc: recalculator,
		Logger: logger,
	}

	reminderClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer reminderClient.Close()

	rideService := &ride.DefaultRideService{
		Drafts:       draftService,
		Riders:       riderService,
		Repo:         riderRepo,
		Upstream:     ride.NewClient(logger),
		Notification: notificationService,
		Reminders:    reminderClient,
		Logger:       logger,
	}

	handlers.RiderSvc = riderService
	handlers.DraftSvc = draftService
	handlers.PricingClient = pricingClient
	handlers.CatalogSvc = catalogClient
	handlers.RideSvc = rideService

	routes.RegisterRoutes(router, riderRepo)

	// Background reminder worker.
	cron.InitReminderWorker(riderService, notificationService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
