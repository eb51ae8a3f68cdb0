// File: medibook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	"medibook/cron"
	"medibook/database"
	doctorRepo "medibook/database/repository/doctor"
	reviewRepo "medibook/database/repository/review"
	scheduleRepo "medibook/database/repository/schedule"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	"medibook/services/directory"
	"medibook/services/review"
	"medibook/services/schedule"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitLockCache()

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	docRepo := doctorRepo.NewMongoDoctorRepo()
	schedRepo := scheduleRepo.NewMongoScheduleRepo()
	revRepo := reviewRepo.NewMongoReviewRepo()

	// services.
	locker := utils.NewRedisSlotLocker(utils.GetLockClient(), utils.SlotLockTTL)

	directoryService, err := directory.NewDefaultDirectoryService(docRepo, utils.GetCacheClient(), asynqClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize directory service: %v", err)
	}
	scheduleService, err := schedule.NewDefaultScheduleService(schedRepo, docRepo, locker, asynqClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize schedule service: %v", err)
	}
	reviewService, err := review.NewDefaultReviewService(revRepo, docRepo, asynqClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize review service: %v", err)
	}

	doctorHandler := handlers.NewDoctorHandler(directoryService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Doctor endpoints.
		RegisterDoctorHandler: doctorHandler.RegisterDoctorHandler,
		GetDoctorByIDHandler:  doctorHandler.GetDoctorByIDHandler,
		GetAllDoctorsHandler:  doctorHandler.GetAllDoctorsHandler,
		UpdateDoctorHandler:   doctorHandler.UpdateDoctorHandler,
		DeleteDoctorHandler:   doctorHandler.DeleteDoctorHandler,

		// Search endpoint.
		SearchDoctorsHandler: doctorHandler.SearchDoctorsHandler,

		// Availability endpoints.
		SetupAvailabilityHandler: scheduleHandler.SetupAvailabilityHandler,
		GetAvailabilityHandler:   scheduleHandler.GetAvailabilityHandler,
		BookSlotHandler:          scheduleHandler.BookSlotHandler,
		CancelBookingHandler:     scheduleHandler.CancelBookingHandler,
		BlockSlotHandler:         scheduleHandler.BlockSlotHandler,
		UnblockSlotHandler:       scheduleHandler.UnblockSlotHandler,

		// Review endpoints.
		SubmitReviewHandler: reviewHandler.SubmitReviewHandler,
		ListReviewsHandler:  reviewHandler.ListReviewsHandler,
		DeleteReviewHandler: reviewHandler.DeleteReviewHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background workers and monitors.
	cron.InitCacheWorker()
	utils.StartHealthMonitor(map[string]*redis.Client{
		"cache": utils.GetCacheClient(),
		"locks": utils.GetLockClient(),
	}, database.MongoClient)

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
