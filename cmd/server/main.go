package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/harbourview/aptly/internal/adapter/api"
	"github.com/harbourview/aptly/internal/adapter/metrics"
	"github.com/harbourview/aptly/internal/adapter/notifier"
	"github.com/harbourview/aptly/internal/adapter/store/postgres"
	"github.com/harbourview/aptly/internal/pkg/config"
	"github.com/harbourview/aptly/internal/pkg/logger"
	"github.com/harbourview/aptly/internal/usecase"

	_ "github.com/lib/pq" // Keep for postgres driver
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logger.New(cfg.LogLevel)
	slog.SetDefault(logger)

	m := metrics.New()

	// --- Start Admin and Metrics Server ---
	adminMux := http.NewServeMux()
	adminMux.Handle("/metrics", promhttp.Handler())

	adminServer := &http.Server{
		Addr:    cfg.AdminAddr,
		Handler: adminMux,
	}

	go func() {
		logger.Info("starting admin & metrics server", "addr", adminServer.Addr)
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("admin & metrics server failed", "error", err)
		}
	}()

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	central, err := postgres.OpenCentral(ctx, cfg.PostgresURL, cfg.CentralDBName, logger)
	if err != nil {
		logger.Error("failed to open central store", "error", err)
		os.Exit(1)
	}
	defer central.Close()

	tenants := postgres.NewTenantPool(cfg.PostgresURL, logger, m)
	defer tenants.Close()

	// --- Safety Alert Broadcasting ---
	var broadcaster notifier.Broadcaster = notifier.NewStdoutBroadcaster()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("could not connect to redis, alerts will log to stdout", "error", err)
		} else {
			broadcaster = notifier.NewRedisBroadcaster(redisClient, logger)
			defer redisClient.Close()
		}
	}

	// --- Initialize Use Cases and Services ---
	apartmentService := usecase.NewApartmentService(central.Apartments(), central, logger)
	authService := usecase.NewAuthService(
		central.ServiceProviders(),
		central.Apartments(),
		central.CentralManagers(),
		tenants,
		cfg.JWTSecret,
		cfg.JWTExpiry,
		logger,
		m,
	)
	registrationService := usecase.NewRegistrationService(
		apartmentService,
		central.CentralManagers(),
		central.ServiceProviders(),
		tenants,
		logger,
	)
	visitorService := usecase.NewVisitorService(tenants, cfg.BaseURL, logger, m)

	svc := api.Services{
		Auth:          authService,
		Apartments:    apartmentService,
		Registration:  registrationService,
		Visitors:      visitorService,
		Complaints:    usecase.NewComplaintService(tenants, logger),
		Resources:     usecase.NewResourceService(tenants, logger),
		Maintenance:   usecase.NewMaintenanceService(tenants, logger),
		Notifications: usecase.NewNotificationService(tenants, logger),
		SafetyAlerts:  usecase.NewSafetyAlertService(tenants, broadcaster, logger),
		Listings:      usecase.NewListingService(central.ServiceProviders(), central.ServiceListings(), logger),
	}

	// --- Initialize API Server ---
	apiServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      api.NewRouter(cfg, logger, svc),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		logger.Info("starting api server", "addr", apiServer.Addr)
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("api server failed", "error", err)
			stop() // Trigger shutdown on server error
		}
	}()

	// --- Wait for shutdown signal ---
	<-ctx.Done()
	logger.Info("shutting down servers...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("admin server shutdown failed", "error", err)
	}
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("api server shutdown failed", "error", err)
	}

	logger.Info("servers shut down gracefully")
}
