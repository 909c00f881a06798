// cmd/console-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cloud-api-console/internal/api"
	"cloud-api-console/internal/common/config"
	"cloud-api-console/internal/common/database"
	"cloud-api-console/internal/common/gemini"
	commonhttp "cloud-api-console/internal/common/http"
	"cloud-api-console/internal/common/logger"
	"cloud-api-console/internal/common/observability"
	"cloud-api-console/internal/common/requeststate"
	"cloud-api-console/internal/tasks"
	"cloud-api-console/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLog.Sync() }()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting console server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	ctx := context.Background()

	obs := observability.New(observability.Options{
		ServiceName:    cfg.Observability.ServiceName,
		JaegerEndpoint: cfg.Observability.JaegerEndpoint,
		DisableMetrics: !cfg.Observability.MetricsEnabled,
	}, log)

	// --- Model backend ---
	httpClient := commonhttp.NewClient(config.GetDuration(cfg.GenAI.Timeout))
	model, err := gemini.NewSDKModel(ctx, gemini.SDKConfig{
		APIKey:     cfg.GenAI.APIKey,
		BaseURL:    cfg.GenAI.BaseURL,
		HTTPClient: httpClient.Standard(),
	}, log)
	if err != nil {
		zapLog.Fatal("model client init failed", zap.Error(err))
	}

	// --- Request state ---
	ttl := time.Duration(cfg.State.TTL) * time.Second
	readyChecks := map[string]api.ReadyCheck{}
	var store requeststate.Store
	switch cfg.State.Backend {
	case config.StateBackendRedis:
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(ctx, cfg.Database.Redis)
			return err
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		zapLog.Info("Redis connected successfully")
		store = requeststate.NewRedisStore(rdb.Client, ttl, time.Duration(cfg.State.LockTTL)*time.Second)
		readyChecks["redis"] = rdb.Ping
	default:
		store = requeststate.NewMemoryStore(ttl)
	}
	tracker := requeststate.NewTracker(store, log)

	// --- Catalog ---
	catalog, err := registry.LoadOrBuiltin(cfg.Catalog.Path)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}
	if err := catalog.Validate(); err != nil {
		zapLog.Fatal("catalog invalid", zap.Error(err))
	}

	// --- Tasks ---
	dispatcher := tasks.NewDispatcher(obs, log)
	tasks.RegisterAll(dispatcher, cfg, model, log)
	zapLog.Info("Tasks registered", zap.Strings("enabled", dispatcher.TaskTypes()))

	// --- HTTP API ---
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	server := api.NewServer(dispatcher, tracker, catalog, log, api.Options{
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		TrustedProxies: cfg.Server.TrustedProxies,
		DisableMetrics: !cfg.Observability.MetricsEnabled,
		RateLimit:      cfg.Server.RateLimit.Enabled,
		RatePerSecond:  cfg.Server.RateLimit.RequestsPerSecond,
		RateBurst:      cfg.Server.RateLimit.Burst,
		ReadyChecks:    readyChecks,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       config.GetDuration(cfg.Server.ReadTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("observability shutdown failed", zap.Error(err))
	}

	zapLog.Info("Console server stopped")
}
