// Package main is the entry point of the density conversion HTTP service.
//
// 12-Factor App compliance:
//   - III. Config: Configuration via environment variables
//   - VII. Port Binding: Self-contained HTTP server
//   - IX. Disposability: Graceful shutdown
//   - XI. Logs: Structured logging to stdout
//
// Usage:
//
//	go run ./cmd/density-api
//
// Environment Variables:
//
//	DENSITY_APP_ENVIRONMENT         - Deployment environment (development, staging, production)
//	DENSITY_SERVER_PORT             - HTTP server port (default: 8080)
//	DENSITY_CONVERTER_STRICT_MATERIAL - Reject empty material identifiers (default: false)
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vbpupil/measurement-converter/internal/application/port"
	"github.com/vbpupil/measurement-converter/internal/application/service"
	"github.com/vbpupil/measurement-converter/internal/infrastructure/config"
	"github.com/vbpupil/measurement-converter/internal/infrastructure/logging"
	"github.com/vbpupil/measurement-converter/internal/infrastructure/metrics"
	"github.com/vbpupil/measurement-converter/internal/infrastructure/persistance/memory"
	"github.com/vbpupil/measurement-converter/internal/interfaces/http/handler"
	"github.com/vbpupil/measurement-converter/internal/interfaces/http/middleware"
	"github.com/vbpupil/measurement-converter/pkg/logger"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", "error", err)
	}

	log := logger.MustNew(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.App.Environment == "development",
	})
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("Starting density converter",
		"version", version,
		"environment", cfg.App.Environment,
		"strict_material", cfg.Converter.StrictMaterial,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logAdapter := logging.NewAdapter(log)

	var (
		sink           port.Metrics = port.NopMetrics{}
		metricsHandler http.Handler
	)
	if cfg.Metrics.Enabled {
		prom := metrics.NewPrometheus(cfg.Metrics.Namespace)
		sink = prom
		metricsHandler = prom.Handler()
	}

	repo := memory.NewMaterialRepository(nil)
	materials := service.NewMaterialService(repo, logAdapter)
	conversions := service.NewConversionService(repo, logAdapter, sink, cfg.Converter.StrictMaterial)

	if count, err := materials.Count(ctx); err == nil {
		sink.Gauge("materials_loaded", float64(count), nil)
		log.Info("Density table loaded", "materials", count)
	}

	var rateLimit *middleware.RateLimiterConfig
	if cfg.RateLimit.Enabled {
		rl := middleware.DefaultRateLimiterConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		rateLimit = &rl
	}

	router := handler.NewRouter(handler.RouterConfig{
		Version:            version,
		Logger:             logAdapter,
		Metrics:            sink,
		MetricsHandler:     metricsHandler,
		MetricsPath:        cfg.Metrics.Path,
		Conversions:        conversions,
		Materials:          materials,
		RateLimit:          rateLimit,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		RequestTimeout:     cfg.Server.RequestTimeout,
		MaxRequestSize:     cfg.Server.MaxRequestSize,
	})

	addr := cfg.Server.Address()
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	log.Info("Server shutdown complete")
}
