package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/volcano-island/service-campsite/internal/application"
	"github.com/volcano-island/service-campsite/internal/config"
	"github.com/volcano-island/service-campsite/internal/domain/reservation"
	"github.com/volcano-island/service-campsite/internal/events"
	"github.com/volcano-island/service-campsite/internal/handler"
	"github.com/volcano-island/service-campsite/internal/logger"
	"github.com/volcano-island/service-campsite/internal/middleware"
	"github.com/volcano-island/service-campsite/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-campsite")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-campsite",
		zap.String("addr", cfg.HTTPAddr),
	)

	// Connect to database. TranslateError turns unique-constraint
	// violations into gorm.ErrDuplicatedKey, which the repository maps
	// to an unavailable-dates conflict.
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(&repository.ReservationModel{}); err != nil {
		log.Fatal("failed to run auto-migration", zap.Error(err))
	}

	// Initialize Kafka publisher when brokers are configured
	var publisher *events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewPublisher(cfg.KafkaBrokers, log)
		defer func() { _ = publisher.Close() }()
	} else {
		log.Info("no kafka brokers configured, reservation events disabled")
	}

	// Initialize repository and services
	repo := repository.NewGormReservationRepository(db)
	validator := reservation.NewValidator()
	availabilityService := application.NewAvailabilityService(repo, validator)
	reservationService := application.NewReservationService(repo, validator, publisher, log, cfg.BookingSuffixBound)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.RequestID())

	handler.NewAvailabilityHandler(availabilityService, log).RegisterRoutes(&router.RouterGroup)
	handler.NewReservationHandler(reservationService, log).RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-campsite...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-campsite stopped")
}
