package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job_order/internal/config"
	"job_order/internal/database"
	"job_order/internal/handlers"
	"job_order/internal/logger"
	"job_order/internal/orderform"
	"job_order/internal/redis"
	"job_order/internal/repository"
	"job_order/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	appLog, err := logger.NewZapLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer appLog.Sync()
	ctx := context.Background()

	// Initialize database
	db, err := database.Initialize(cfg)
	if err != nil {
		appLog.Errorf(ctx, "failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			appLog.Errorf(ctx, "failed to close database: %v", err)
		}
	}()

	// Redis is optional; without it lookups are uncached and saves are not
	// locked across instances.
	cache, locker := services.NoCache(), services.NoLock()
	if cfg.RedisURL != "" {
		redisClient, err := redis.Initialize(cfg.RedisURL)
		if err != nil {
			appLog.Errorf(ctx, "failed to connect to redis: %v", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		cache, locker = redisClient, redisClient
	} else {
		appLog.Warnf(ctx, "REDIS_URL not set, running without lookup cache and order locks")
	}

	// Initialize repositories
	detailRepo := repository.NewOrderDetailRepository(db)
	orderRepo := repository.NewOrderRepository(db, detailRepo)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	measurementRepo := repository.NewMeasurementRepository(db)

	// Initialize services
	orderService := services.NewOrderService(orderRepo, locker, cfg.SaveLockTTL, appLog)
	lookupService := services.NewLookupService(productRepo, customerRepo, measurementRepo, cache, cfg.CacheTTL, appLog)
	entryService := services.NewEntryService(services.NewLocalStore(orderService), orderform.AdminFields{
		ModuleEntryCode: cfg.ModuleEntryCode,
		CompanyID:       cfg.CompanyID,
		FinancialPeriod: cfg.FinancialPeriod,
		UserID:          cfg.UserID,
	}, appLog)

	// Initialize handlers
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(cfg.AllowedOrigins, appLog,
		handlers.NewAPIHandler(lookupService, appLog),
		handlers.NewOrderHandler(orderService, appLog),
		handlers.NewEntryHandler(entryService, appLog),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		appLog.Infow(ctx, "server starting", zap.String("port", cfg.ServerPort), zap.String("db_driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Errorf(ctx, "failed to start server: %v", err)
			stop()
		}
	}()

	<-sigCtx.Done()
	appLog.Infof(ctx, "shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Errorf(ctx, "server forced to shutdown: %v", err)
	}
}
