package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/posalpro/backend/internal/application/activity"
	analyticsapp "github.com/posalpro/backend/internal/application/analytics"
	catalogapp "github.com/posalpro/backend/internal/application/catalog"
	dashboardapp "github.com/posalpro/backend/internal/application/dashboard"
	identityapp "github.com/posalpro/backend/internal/application/identity"
	partnerapp "github.com/posalpro/backend/internal/application/partner"
	proposalapp "github.com/posalpro/backend/internal/application/proposal"
	"github.com/posalpro/backend/internal/infrastructure/auth"
	"github.com/posalpro/backend/internal/infrastructure/cache"
	"github.com/posalpro/backend/internal/infrastructure/config"
	"github.com/posalpro/backend/internal/infrastructure/logger"
	"github.com/posalpro/backend/internal/infrastructure/persistence"
	"github.com/posalpro/backend/internal/infrastructure/telemetry"
	"github.com/posalpro/backend/internal/interfaces/http/handler"
	"github.com/posalpro/backend/internal/interfaces/http/middleware"
	"github.com/posalpro/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting PosalPro Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Connect to the database with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, mapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	if err := telemetry.RegisterDBTracing(db.DB, dbTracing, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Stats cache: Redis with in-memory fallback for local development
	cacheFactory := cache.NewStatsCacheFactory(cfg.Redis, cache.WithLogger(log))
	statsCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to create stats cache", zap.Error(err))
	}

	// Initialize repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	proposalRepo := persistence.NewGormProposalRepository(db.DB)
	versionRepo := persistence.NewGormVersionRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	eventRepo := persistence.NewGormEventRepository(db.DB)
	accessLogRepo := persistence.NewGormAccessLogRepository(db.DB)
	changeLogRepo := persistence.NewGormChangeLogRepository(db.DB)
	dashboardRepo := persistence.NewGormDashboardRepository(db.DB)

	// Activity recorder feeds the change log consumed by the dashboard
	recorder := activity.NewRecorder(changeLogRepo, log)

	// Initialize application services
	customerService := partnerapp.NewCustomerService(customerRepo, proposalRepo, recorder)
	productService := catalogapp.NewProductService(productRepo, recorder)
	proposalService := proposalapp.NewProposalService(proposalRepo, versionRepo, customerRepo, productRepo, recorder, log)
	versionService := proposalapp.NewVersionService(versionRepo, proposalRepo)
	ingestService := analyticsapp.NewIngestService(eventRepo)
	dashboardService := dashboardapp.NewDashboardService(dashboardRepo, statsCache, cfg.Dashboard.CacheTTL, log)

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, roleRepo, jwtService, recorder, log)
	userService := identityapp.NewUserService(userRepo, roleRepo, recorder)
	roleService := identityapp.NewRoleService(roleRepo, recorder)

	// Permission gate records every allow/deny decision in the access log
	gate := middleware.NewPermissionGate(accessLogRepo, log)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		System:    handler.NewSystemHandler(db, version),
		Auth:      handler.NewAuthHandler(authService),
		Customer:  handler.NewCustomerHandler(customerService),
		Product:   handler.NewProductHandler(productService),
		Proposal:  handler.NewProposalHandler(proposalService, versionService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Analytics: handler.NewAnalyticsHandler(ingestService),
		User:      handler.NewUserHandler(userService),
		Role:      handler.NewRoleHandler(roleService),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Config{
		JWTService: jwtService,
		Gate:       gate,
		HTTP:       cfg.HTTP,
		Telemetry: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
		Logger: log,
	}, handlers)

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// mapGormLogLevel translates the application log level into a GORM log
// level. Query logging only kicks in at debug.
func mapGormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return gormlogger.Info
	case "warn", "warning":
		return gormlogger.Warn
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}
