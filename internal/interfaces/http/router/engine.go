package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tourdesk/backend/internal/infrastructure/config"
	"github.com/tourdesk/backend/internal/infrastructure/logger"
	"github.com/tourdesk/backend/internal/infrastructure/telemetry"
	"github.com/tourdesk/backend/internal/interfaces/http/dto"
	"github.com/tourdesk/backend/internal/interfaces/http/handler"
	"github.com/tourdesk/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// EngineConfig configures the gin engine and its middleware chain
type EngineConfig struct {
	Logger           *zap.Logger
	HTTP             config.HTTPConfig
	ServiceName      string
	TracingEnabled   bool
	MeterProvider    *telemetry.MeterProvider
	ProfilingEnabled bool
	// RateLimiter is owned by the caller, which stops it on shutdown
	RateLimiter *middleware.RateLimiter
}

// NewEngine builds a gin engine with the global middleware chain:
// request ID, recovery, request logging, tracing, metrics, profiling labels,
// security headers, CORS and rate limiting. /health is mounted outside /api.
func NewEngine(cfg EngineConfig, system *handler.SystemHandler) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	engine.HandleMethodNotAllowed = true

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.ServiceName,
			Enabled:     cfg.TracingEnabled,
		}),
		middleware.TracingAttributeInjector(),
		middleware.SpanErrorMarker(),
		middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: cfg.MeterProvider,
			Enabled:       cfg.MeterProvider != nil,
		}),
		middleware.ProfilingWithConfig(middleware.ProfilingConfig{
			Enabled:   cfg.ProfilingEnabled,
			SkipPaths: middleware.DefaultProfilingConfig().SkipPaths,
		}),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig(cfg.HTTP)),
	)
	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter))
	}

	engine.NoRoute(func(c *gin.Context) {
		(&handler.BaseHandler{}).NotFound(c, "Route not found")
	})
	engine.NoMethod(func(c *gin.Context) {
		(&handler.BaseHandler{}).Error(c, http.StatusMethodNotAllowed, dto.ErrCodeMethodNotAllowed, "Method not allowed")
	})

	if system != nil {
		engine.GET("/health", system.Health)
	}
	return engine, nil
}

func corsConfig(httpCfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = httpCfg.CORSAllowOrigins
	if len(httpCfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = httpCfg.CORSAllowMethods
	}
	if len(httpCfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = httpCfg.CORSAllowHeaders
	}
	return cors
}
