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
	"github.com/tourdesk/backend/api"
	tourismapp "github.com/tourdesk/backend/internal/application/tourism"
	"github.com/tourdesk/backend/internal/infrastructure/cache"
	"github.com/tourdesk/backend/internal/infrastructure/config"
	"github.com/tourdesk/backend/internal/infrastructure/logger"
	"github.com/tourdesk/backend/internal/infrastructure/persistence/memory"
	"github.com/tourdesk/backend/internal/infrastructure/storage"
	"github.com/tourdesk/backend/internal/infrastructure/telemetry"
	"github.com/tourdesk/backend/internal/interfaces/http/handler"
	"github.com/tourdesk/backend/internal/interfaces/http/middleware"
	"github.com/tourdesk/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		boot, bootErr := logger.NewForEnvironment(os.Getenv("TOURDESK_APP_ENV"))
		if bootErr != nil {
			panic("Failed to load configuration: " + err.Error())
		}
		boot.Fatal("Failed to load configuration", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}
	baseCore, err := logger.NewCore(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := zap.New(baseCore, zap.AddCaller())

	ctx := context.Background()
	providers := setupTelemetry(ctx, cfg, log)
	if providers.logs.IsEnabled() {
		log = telemetry.NewBridgedLogger(baseCore, telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: providers.logs,
			Level:          logger.ParseLevel(cfg.Telemetry.LogsMinLevel),
		}), zap.AddCaller())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting TourDesk backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)
	log.Warn("Records are held in memory and are lost on restart")

	store := memory.NewStore()
	if cfg.App.SeedDemoData {
		if err := memory.Seed(store, memory.DefaultSeedOptions()); err != nil {
			log.Fatal("Failed to seed demo data", zap.Error(err))
		}
		log.Info("Seeded demo data", zap.Any("counts", store.Counts()))
	}

	tourismMetrics, err := telemetry.NewTourismMetrics(telemetry.TourismMetricsConfig{
		Meter:    providers.meters.Meter("tourdesk"),
		Logger:   log,
		Provider: store,
	})
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}
	defer tourismMetrics.Stop()

	blobs, err := storage.New(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize file storage", zap.Error(err))
	}

	// Initialize application services
	opts := []tourismapp.Option{tourismapp.WithMetrics(tourismMetrics), tourismapp.WithLogger(log)}
	tourService := tourismapp.NewTourService(store.Tours, opts...)
	touristService := tourismapp.NewTouristService(store.Tourists, opts...)
	transactionService := tourismapp.NewTransactionService(store.Transactions, opts...)
	fileService := tourismapp.NewFileService(store.Files, blobs, opts...)
	dashboardService := tourismapp.NewDashboardService(store)
	exportService := tourismapp.NewExportService(store.Tours, store.Tourists, store.Transactions, opts...)

	var idempotency gin.HandlerFunc
	if cfg.Idempotency.Enabled {
		idemStore, err := cache.NewIdempotencyStoreFactory(cfg.Idempotency, cfg.Redis, cache.WithLogger(log)).CreateStore(ctx)
		if err != nil {
			log.Fatal("Failed to create idempotency store", zap.Error(err))
		}
		defer func() {
			if err := idemStore.Close(); err != nil {
				log.Error("Error closing idempotency store", zap.Error(err))
			}
		}()
		idempotency = middleware.Idempotency(middleware.IdempotencyConfig{
			Store: idemStore,
			TTL:   cfg.Idempotency.TTL,
		})
	}

	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow, cfg.HTTP.RateLimitBurst)
		defer limiter.Stop()
	}

	doc, err := api.Load(ctx)
	if err != nil {
		log.Fatal("Failed to load API description", zap.Error(err))
	}

	systemHandler := handler.NewSystemHandler(cfg.App.Name, fileService)
	engine, err := router.NewEngine(router.EngineConfig{
		Logger:           log,
		HTTP:             cfg.HTTP,
		ServiceName:      cfg.Telemetry.ServiceName,
		TracingEnabled:   cfg.Telemetry.Enabled,
		MeterProvider:    providers.meters,
		ProfilingEnabled: cfg.Profiling.Enabled,
		RateLimiter:      limiter,
	}, systemHandler)
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	groups := router.APIGroups(router.Handlers{
		Tours:        handler.NewTourHandler(tourService),
		Tourists:     handler.NewTouristHandler(touristService),
		Transactions: handler.NewTransactionHandler(transactionService),
		Files:        handler.NewFileHandler(fileService, cfg.HTTP.MaxUploadSize),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		Export:       handler.NewExportHandler(exportService),
		System:       systemHandler,
		Docs:         handler.NewDocsHandler(doc),
	}, router.RouteOptions{
		MaxBodySize:   cfg.HTTP.MaxBodySize,
		MaxUploadSize: cfg.HTTP.MaxUploadSize,
		Idempotency:   idempotency,
	})
	router.NewRouter(engine).Register(groups...).Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	providers.shutdown(shutdownCtx, log)

	log.Info("Server exited gracefully")
}

// telemetryProviders holds the OpenTelemetry providers and the profiler.
// Disabled parts are no-ops but still answer lifecycle calls.
type telemetryProviders struct {
	tracer   *telemetry.TracerProvider
	meters   *telemetry.MeterProvider
	logs     *telemetry.LoggerProvider
	profiler *telemetry.Profiler
}

func setupTelemetry(ctx context.Context, cfg *config.Config, log *zap.Logger) *telemetryProviders {
	tc := cfg.Telemetry
	var err error
	p := &telemetryProviders{}

	p.tracer, err = telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           tc.Enabled,
		CollectorEndpoint: tc.CollectorEndpoint,
		SamplingRatio:     tc.SamplingRatio,
		ServiceName:       tc.ServiceName,
		Insecure:          tc.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	p.meters, err = telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           tc.MetricsEnabled,
		CollectorEndpoint: tc.CollectorEndpoint,
		ExportInterval:    tc.MetricsInterval,
		ServiceName:       tc.ServiceName,
		Insecure:          tc.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	p.logs, err = telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           tc.LogsEnabled,
		CollectorEndpoint: tc.CollectorEndpoint,
		ServiceName:       tc.ServiceName,
		Insecure:          tc.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}

	p.profiler, err = telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Profiling.Enabled,
		ServerAddress:     cfg.Profiling.ServerAddress,
		ApplicationName:   tc.ServiceName,
		BasicAuthUser:     cfg.Profiling.BasicAuthUser,
		BasicAuthPassword: cfg.Profiling.BasicAuthPassword,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if cfg.Profiling.Enabled && cfg.Profiling.SpanProfiles {
		p.tracer.EnableSpanProfiles()
	}
	return p
}

// shutdown flushes exporters in reverse start order
func (p *telemetryProviders) shutdown(ctx context.Context, log *zap.Logger) {
	if err := p.profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := p.logs.Shutdown(ctx); err != nil {
		log.Error("Error shutting down logger provider", zap.Error(err))
	}
	if err := p.meters.Shutdown(ctx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := p.tracer.Shutdown(ctx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
}
