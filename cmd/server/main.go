package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"placementportal/config"
	_ "placementportal/docs"
	"placementportal/internal/adapters/auth"
	"placementportal/internal/adapters/metrics"
	httpdelivery "placementportal/internal/delivery/http"
	"placementportal/internal/delivery/http/controllers"
	"placementportal/internal/delivery/http/middleware"
	"placementportal/internal/repository/postgres"
	"placementportal/internal/services"
)

// @title Placement Portal Mock Interview API
// @version 1.0
// @description Peer mock-interview slot booking for the placement portal.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	logger := config.NewLogger()
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.PingContext(ctx); err != nil {
		cancel()
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	if cfg.RunMigrations {
		if err := postgres.Migrate(ctx, db, logger); err != nil {
			cancel()
			logger.Error("failed to run migrations", "err", err)
			os.Exit(1)
		}
	}
	cancel()

	slotRepo := postgres.NewSlotRepository(db)
	userRepo := postgres.NewUserRepository(db)

	jwt := auth.NewJWT(cfg.JWTSecret)
	bookingMetrics := metrics.NewBooking()

	bookingSvc := services.NewBookingService(slotRepo, services.BookingPolicy{Horizon: cfg.BookingHorizon}, logger, bookingMetrics)
	authSvc := services.NewAuthService(userRepo, auth.NewBcryptHasher(bcrypt.DefaultCost), jwt, cfg.JWTExpiry, logger)

	router := httpdelivery.NewRouter(httpdelivery.RouterDeps{
		Interviews: controllers.NewInterviewController(logger, bookingSvc),
		Auth:       controllers.NewAuthController(logger, authSvc),
		Verifier:   jwt,
		Metrics:    bookingMetrics.Handler(),
		DB:         db,
		Logger:     logger,
	})
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, router))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down gracefully")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
