package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"multibagger-scanner/internal/scanner/config"
	delivery "multibagger-scanner/internal/scanner/delivery/http"
	_ "multibagger-scanner/internal/scanner/docs"
	"multibagger-scanner/internal/scanner/repository"
	"multibagger-scanner/internal/scanner/service"
	"multibagger-scanner/pkg/cache"
	"multibagger-scanner/pkg/logger"
	"multibagger-scanner/pkg/metrics"
	"multibagger-scanner/pkg/postgres"
	"multibagger-scanner/pkg/ratelimit"
	"multibagger-scanner/pkg/redis"
	"multibagger-scanner/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the scanner service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Scanner Service",
		logger.Field("name", cfg.App.Name),
		logger.Field("env", cfg.App.Env),
		logger.Field("cache_driver", cfg.Cache.Driver))

	if cfg.Finnhub.APIKey == "" {
		appLogger.Warn("FINNHUB_API_KEY is not set, fundamentals requests will be rejected")
	}

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		appLogger.Fatal("Failed to get database handle", logger.ErrorField(err))
	}
	defer sqlDB.Close()

	// The cache never blocks startup; an unreachable Redis degrades to pass-through.
	var redisClient *redis.Client
	if cfg.Cache.Driver == cache.DriverRedis {
		redisClient, err = redis.NewClient(redisConfig(cfg))
		if err != nil {
			appLogger.Warn("Redis unavailable, continuing without cache", logger.ErrorField(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}
	var rc *goredis.Client
	if redisClient != nil {
		rc = redisClient.Client
	}
	store := cache.New(cfg.Cache.Driver, rc, cfg.Cache.CleanupInterval, appLogger)

	m := metrics.New(prometheus.DefaultRegisterer)

	// One limiter per process so concurrent scans share the Finnhub quota.
	finnhubLimiter := ratelimit.NewSlidingWindow(cfg.Finnhub.MaxRequestPerMinute, cfg.Finnhub.Window)

	// Initialize repositories
	historyRepo := repository.NewYahooFinanceRepository(cfg, appLogger, m)
	fundamentalsRepo := repository.NewFinnhubRepository(cfg, appLogger, finnhubLimiter, store, m)
	scanResultRepo := repository.NewScanResultRepository(db.DB)
	portfolioRepo := repository.NewPortfolioRepository(db.DB)

	// Initialize services
	scannerSvc := service.NewScannerService(cfg, appLogger, historyRepo, fundamentalsRepo, scanResultRepo, m)
	if cfg.Telegram.BotToken != "" {
		notifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Warn("Telegram alerts disabled", logger.ErrorField(err))
		} else {
			scannerSvc = service.NewMatchAlertingScanner(scannerSvc, notifier, appLogger)
		}
	}
	portfolioSvc := service.NewPortfolioService(portfolioRepo, appLogger)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	apiV1 := e.Group("/api/v1")
	delivery.NewScanHandler(scannerSvc, appLogger).RegisterRoutes(apiV1)
	delivery.NewPortfolioHandler(portfolioSvc, appLogger).RegisterRoutes(apiV1.Group("/portfolio"))

	checks := map[string]delivery.HealthCheck{
		"database": sqlDB.PingContext,
		"redis":    nil,
	}
	switch {
	case redisClient != nil:
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	case cfg.Cache.Driver == cache.DriverRedis:
		checks["redis"] = func(context.Context) error {
			return errors.New("redis was unreachable at startup")
		}
	}
	delivery.NewHealthHandler(cfg, checks).RegisterRoutes(e)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", swagger.WrapHandler)

	go func() {
		addr := cfg.API.Address()
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func redisConfig(cfg *config.Config) redis.Config {
	return redis.Config{
		Host:        cfg.Redis.Host,
		Port:        cfg.Redis.Port,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		PoolSize:    cfg.Redis.PoolSize,
		DialTimeout: cfg.Redis.DialTimeoutDuration(),
	}
}

// @title Multibagger Scanner API
// @version 1.0
// @description Screens equities against price, volume and fundamental thresholds and keeps a watchlist.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "scanner-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-scanner.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing scanner-service CLI: %s\n", err)
		os.Exit(1)
	}
}
