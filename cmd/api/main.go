package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/medidesk/clinic-platform/internal/api/router"
	"github.com/medidesk/clinic-platform/internal/appointments"
	appconfig "github.com/medidesk/clinic-platform/internal/config"
	"github.com/medidesk/clinic-platform/internal/doctors"
	"github.com/medidesk/clinic-platform/internal/http/handlers"
	"github.com/medidesk/clinic-platform/internal/observability/metrics"
	"github.com/medidesk/clinic-platform/pkg/logging"
)

func main() {
	// Load configuration
	_ = godotenv.Load()
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinic-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Database
	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create pgx pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Redis cache (optional)
	redisClient := buildRedisClient(ctx, cfg, logger)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	// Metrics
	registry := prometheus.NewRegistry()
	calMetrics := metrics.NewCalendarMetrics(registry)

	// Repositories and services
	apptRepo := appointments.NewRepository(pool)
	apptCache := appointments.NewCache(redisClient, cfg.CacheTTL)
	apptService := appointments.NewService(apptRepo, apptCache, logger.Component("appointments"), calMetrics)
	doctorRepo := doctors.NewRepository(pool)

	// Handlers
	calendarHandler := handlers.NewCalendarHandler(apptService, logger.Component("calendar"), calMetrics, nil)
	doctorsHandler := handlers.NewDoctorsHandler(doctorRepo, logger.Component("doctors"))
	adminHandler := handlers.NewAppointmentsAdminHandler(apptService, logger.Component("admin"))

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		CalendarHandler:    calendarHandler,
		DoctorsHandler:     doctorsHandler,
		AppointmentsAdmin:  adminHandler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		StaffAuthSecret:    cfg.StaffJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  4 * cfg.ReadTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildRedisClient returns a verified Redis client or nil when caching is
// disabled or Redis is unreachable. The API degrades to direct database
// reads in that case.
func buildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) *redis.Client {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	options := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		options.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available, appointment cache disabled", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}
