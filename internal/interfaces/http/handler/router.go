package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/vbpupil/measurement-converter/internal/application/dto"
	"github.com/vbpupil/measurement-converter/internal/application/port"
	"github.com/vbpupil/measurement-converter/internal/application/service"
	"github.com/vbpupil/measurement-converter/internal/interfaces/http/middleware"
)

// RouterConfig holds the dependencies and settings of the HTTP router.
type RouterConfig struct {
	// Version is reported in headers, metadata and /health.
	Version string

	// Logger receives request and panic logs.
	Logger port.Logger

	// Metrics records request metrics. Nil disables the metrics middleware.
	Metrics port.Metrics

	// MetricsHandler is served at MetricsPath when not nil.
	MetricsHandler http.Handler

	// MetricsPath is the path of the metrics endpoint.
	MetricsPath string

	// Conversions backs /api/v1/conversions.
	Conversions *service.ConversionService

	// Materials backs /api/v1/materials and the health check.
	Materials *service.MaterialService

	// RateLimit enables per-client rate limiting when not nil.
	RateLimit *middleware.RateLimiterConfig

	// CORSAllowedOrigins lists allowed CORS origins.
	CORSAllowedOrigins []string

	// RequestTimeout bounds each request when positive.
	RequestTimeout time.Duration

	// MaxRequestSize caps request bodies when positive.
	MaxRequestSize int64
}

// NewRouter builds the chi router with the full middleware stack.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Order matters! Middleware is executed in the order added.
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recoverer(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}
	if cfg.MaxRequestSize > 0 {
		r.Use(chimiddleware.RequestSize(cfg.MaxRequestSize))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "X-API-Version"},
		MaxAge:         300,
	}))
	if cfg.RateLimit != nil {
		r.Use(middleware.RateLimiter(*cfg.RateLimit))
	}
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.APIVersion(cfg.Version))

	r.Get("/health", NewHealthHandler(cfg.Materials, cfg.Version).ServeHTTP)
	if cfg.MetricsHandler != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Route("/materials", NewMaterialHandler(cfg.Materials, cfg.Version).Routes)
		r.Route("/conversions", NewConversionHandler(cfg.Conversions, cfg.Logger, cfg.Version).Routes)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, dto.NewErrorResponse[any](dto.CodeNotFound, "The requested resource was not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusMethodNotAllowed)
		render.JSON(w, r, dto.NewErrorResponse[any](dto.CodeMethodNotAllowed, "The requested method is not allowed for this resource"))
	})

	return r
}
