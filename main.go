package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"mindease/config"
	"mindease/cron"
	"mindease/database"
	scheduleRepo "mindease/database/repository/schedule"
	sessionRepo "mindease/database/repository/session"
	therapistRepo "mindease/database/repository/therapist"
	"mindease/handlers"
	"mindease/routes"
	"mindease/services/booking"
	"mindease/services/scheduling"
	"mindease/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	therapists := therapistRepo.NewMongoTherapistRepo()
	schedules := scheduleRepo.NewMongoScheduleRepo()
	sessions := sessionRepo.NewMongoSessionRepo()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndexes()
	if err := therapists.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	if err := schedules.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	if err := sessions.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	// services.
	schedulingService := &scheduling.DefaultService{
		Therapists: therapists,
		Schedules:  schedules,
		Sessions:   sessions,
		Cache:      utils.GetCacheClient(),
	}
	bookingService := &booking.DefaultService{
		Sessions:   sessions,
		Schedules:  schedules,
		Therapists: therapists,
	}

	// Background horizon maintenance.
	cron.InitScheduleWorker(schedulingService, therapists)

	// Assemble the handler bundle and register routes.
	handlerBundle := &handlers.HandlerBundle{
		Therapist: handlers.NewTherapistHandler(therapists, schedulingService),
		Schedule:  handlers.NewScheduleHandler(schedulingService),
		Booking:   handlers.NewBookingHandler(bookingService),
	}
	routes.RegisterRoutes(router, handlerBundle)

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
