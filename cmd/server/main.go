package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"oakvale/server/config"
	"oakvale/server/internal/api"
	"oakvale/server/internal/auth"
	"oakvale/server/internal/database"
	"oakvale/server/internal/processor"
	"oakvale/server/internal/queue"
	"oakvale/server/internal/scheduler"
	"oakvale/server/internal/telegram"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	logger.Infof("Using database at: %s", cfg.Database.Path)
	db, err := database.NewDatabase(cfg.Database.Path, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	ctx := context.Background()
	if cfg.Database.SeedCatalog {
		if _, err := db.SeedCatalog(ctx, time.Now()); err != nil {
			logger.WithError(err).Fatal("Failed to seed catalog")
		}
	}

	authService := auth.NewService(db, auth.Config{
		Secret:        cfg.Auth.JWTSecret,
		TTL:           cfg.Auth.SessionTTL,
		AdminEmail:    cfg.Auth.AdminEmail,
		AdminPassword: cfg.Auth.AdminPassword,
		AdminName:     cfg.Auth.AdminName,
		AdminPhone:    cfg.Auth.AdminPhone,
	}, logger)
	if err := authService.EnsureAdmin(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to create admin account")
	}

	// Booking notifications
	bookingQueue := queue.NewBookingQueue(cfg.Booking.QueueSize, logger)
	telegramService := telegram.NewService(telegram.Config{
		BotToken:   cfg.Telegram.BotToken,
		ChatID:     cfg.Telegram.ChatID,
		APIBaseURL: cfg.Telegram.APIBaseURL,
	}, logger)
	if !telegramService.Enabled() {
		logger.Info("Telegram is not configured, booking notifications disabled")
	}
	notifications := processor.NewNotificationProcessor(bookingQueue, cfg, logger, telegramService)
	notifications.Start()
	bookingQueue.Start()

	maintenance := scheduler.NewScheduler(db, cfg.Booking.MaintenanceInterval, logger)
	maintenance.Start()

	gin.SetMode(gin.ReleaseMode)
	handler := api.NewHandler(db, authService, bookingQueue, cfg, logger)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}

	maintenance.Stop()
	bookingQueue.Close()
	notifications.Stop()
}
