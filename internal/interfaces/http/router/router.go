package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/posalpro/backend/internal/bridge"
	"github.com/posalpro/backend/internal/infrastructure/auth"
	"github.com/posalpro/backend/internal/infrastructure/config"
	"github.com/posalpro/backend/internal/infrastructure/logger"
	"github.com/posalpro/backend/internal/interfaces/http/handler"
	"github.com/posalpro/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router wires up
type Handlers struct {
	System    *handler.SystemHandler
	Auth      *handler.AuthHandler
	Customer  *handler.CustomerHandler
	Product   *handler.ProductHandler
	Proposal  *handler.ProposalHandler
	Dashboard *handler.DashboardHandler
	Analytics *handler.AnalyticsHandler
	User      *handler.UserHandler
	Role      *handler.RoleHandler
}

// Config holds router dependencies
type Config struct {
	JWTService *auth.JWTService
	Gate       *middleware.PermissionGate
	HTTP       config.HTTPConfig
	Telemetry  middleware.TracingConfig
	Logger     *zap.Logger
}

// New builds the gin engine with the full middleware chain and all
// routes registered
func New(cfg Config, h Handlers) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()

	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(cfg.Telemetry))
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(middleware.CORSWithConfig(corsFromConfig(cfg.HTTP)))

	// Open endpoints
	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: cfg.JWTService,
		SkipPaths:  []string{"/api/v1/health", "/api/v1/auth/login"},
		Logger:     cfg.Logger,
	}))
	api.Use(middleware.TraceAttributes())
	if cfg.HTTP.RateLimitEnabled && cfg.HTTP.RateLimitRequests > 0 {
		window := cfg.HTTP.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, window)
		api.Use(middleware.RateLimit(limiter))
	}

	api.GET("/health", h.System.Health)

	registerAuthRoutes(api, h)
	registerCustomerRoutes(api, cfg.Gate, h)
	registerProductRoutes(api, cfg.Gate, h)
	registerProposalRoutes(api, cfg.Gate, h)
	registerDashboardRoutes(api, cfg.Gate, h)
	registerAnalyticsRoutes(api, h)
	registerIdentityRoutes(api, cfg.Gate, h)

	return engine
}

func corsFromConfig(httpCfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(httpCfg.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = httpCfg.CORSAllowOrigins
	}
	if len(httpCfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = httpCfg.CORSAllowMethods
	}
	if len(httpCfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = httpCfg.CORSAllowHeaders
	}
	return cors
}

func registerAuthRoutes(api *gin.RouterGroup, h Handlers) {
	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/password", h.Auth.ChangePassword)
}

func registerCustomerRoutes(api *gin.RouterGroup, gate *middleware.PermissionGate, h Handlers) {
	customers := api.Group("/customers")
	customers.GET("", gate.Require("customers", bridge.ActionRead, bridge.ScopeAll), h.Customer.List)
	customers.POST("", gate.Require("customers", bridge.ActionCreate, bridge.ScopeAll), h.Customer.Create)
	customers.GET("/:id", gate.Require("customers", bridge.ActionRead, bridge.ScopeAll), h.Customer.Get)
	customers.PUT("/:id", gate.Require("customers", bridge.ActionUpdate, bridge.ScopeAll), h.Customer.Update)
	customers.PATCH("/:id", gate.Require("customers", bridge.ActionUpdate, bridge.ScopeAll), h.Customer.Update)
	customers.DELETE("/:id", gate.Require("customers", bridge.ActionDelete, bridge.ScopeAll), h.Customer.Delete)
	customers.POST("/:id/activate", gate.Require("customers", bridge.ActionUpdate, bridge.ScopeAll), h.Customer.Activate)
	customers.POST("/:id/deactivate", gate.Require("customers", bridge.ActionUpdate, bridge.ScopeAll), h.Customer.Deactivate)
}

func registerProductRoutes(api *gin.RouterGroup, gate *middleware.PermissionGate, h Handlers) {
	products := api.Group("/products")
	products.GET("", gate.Require("products", bridge.ActionRead, bridge.ScopeAll), h.Product.List)
	products.POST("", gate.Require("products", bridge.ActionCreate, bridge.ScopeAll), h.Product.Create)
	products.GET("/sku/:sku", gate.Require("products", bridge.ActionRead, bridge.ScopeAll), h.Product.GetBySKU)
	products.GET("/:id", gate.Require("products", bridge.ActionRead, bridge.ScopeAll), h.Product.Get)
	products.PUT("/:id", gate.Require("products", bridge.ActionUpdate, bridge.ScopeAll), h.Product.Update)
	products.PATCH("/:id", gate.Require("products", bridge.ActionUpdate, bridge.ScopeAll), h.Product.Update)
	products.DELETE("/:id", gate.Require("products", bridge.ActionDelete, bridge.ScopeAll), h.Product.Delete)
	products.POST("/:id/activate", gate.Require("products", bridge.ActionUpdate, bridge.ScopeAll), h.Product.Activate)
	products.POST("/:id/deactivate", gate.Require("products", bridge.ActionUpdate, bridge.ScopeAll), h.Product.Deactivate)
}

func registerProposalRoutes(api *gin.RouterGroup, gate *middleware.PermissionGate, h Handlers) {
	proposals := api.Group("/proposals")
	proposals.GET("", gate.Require("proposals", bridge.ActionRead, bridge.ScopeTeam), h.Proposal.List)
	proposals.POST("", gate.Require("proposals", bridge.ActionCreate, bridge.ScopeOwn), h.Proposal.Create)
	proposals.GET("/:id", gate.Require("proposals", bridge.ActionRead, bridge.ScopeTeam), h.Proposal.Get)
	proposals.PUT("/:id", gate.Require("proposals", bridge.ActionUpdate, bridge.ScopeOwn), h.Proposal.Update)
	proposals.PATCH("/:id", gate.Require("proposals", bridge.ActionUpdate, bridge.ScopeOwn), h.Proposal.Update)
	proposals.DELETE("/:id", gate.Require("proposals", bridge.ActionDelete, bridge.ScopeOwn), h.Proposal.Delete)
	proposals.POST("/:id/items", gate.Require("proposals", bridge.ActionUpdate, bridge.ScopeOwn), h.Proposal.AddLineItem)
	proposals.PUT("/:id/items/:productId", gate.Require("proposals", bridge.ActionUpdate, bridge.ScopeOwn), h.Proposal.UpdateLineItem)
	proposals.DELETE("/:id/items/:productId", gate.Require("proposals", bridge.ActionUpdate, bridge.ScopeOwn), h.Proposal.RemoveLineItem)
	proposals.POST("/:id/transition", gate.Require("proposals", bridge.ActionUpdate, bridge.ScopeTeam), h.Proposal.Transition)
	proposals.GET("/:id/versions", gate.Require("proposals", bridge.ActionRead, bridge.ScopeTeam), h.Proposal.ListVersions)
	proposals.GET("/:id/versions/:number", gate.Require("proposals", bridge.ActionRead, bridge.ScopeTeam), h.Proposal.GetVersion)
	proposals.GET("/:id/diff", gate.Require("proposals", bridge.ActionRead, bridge.ScopeTeam), h.Proposal.DiffVersions)
}

func registerDashboardRoutes(api *gin.RouterGroup, gate *middleware.PermissionGate, h Handlers) {
	dashboard := api.Group("/dashboard")
	dashboard.GET("/stats", gate.Require("dashboard", bridge.ActionRead, bridge.ScopeTeam), h.Dashboard.Stats)
	dashboard.GET("/activity", gate.Require("dashboard", bridge.ActionRead, bridge.ScopeTeam), h.Dashboard.RecentActivity)
}

func registerAnalyticsRoutes(api *gin.RouterGroup, h Handlers) {
	// Ingest is open to any authenticated caller; clients batch their
	// own usage events
	analytics := api.Group("/analytics")
	analytics.POST("/events", h.Analytics.TrackBatch)
	analytics.GET("/events", h.Analytics.Recent)
}

func registerIdentityRoutes(api *gin.RouterGroup, gate *middleware.PermissionGate, h Handlers) {
	users := api.Group("/users")
	users.GET("", gate.Require("users", bridge.ActionRead, bridge.ScopeAll), h.User.List)
	users.POST("", gate.Require("users", bridge.ActionCreate, bridge.ScopeAll), h.User.Create)
	users.GET("/:id", gate.Require("users", bridge.ActionRead, bridge.ScopeAll), h.User.Get)
	users.PUT("/:id", gate.Require("users", bridge.ActionUpdate, bridge.ScopeAll), h.User.Update)
	users.DELETE("/:id", gate.Require("users", bridge.ActionDelete, bridge.ScopeAll), h.User.Delete)
	users.POST("/:id/activate", gate.Require("users", bridge.ActionUpdate, bridge.ScopeAll), h.User.Activate)
	users.POST("/:id/deactivate", gate.Require("users", bridge.ActionUpdate, bridge.ScopeAll), h.User.Deactivate)
	users.POST("/:id/unlock", gate.Require("users", bridge.ActionUpdate, bridge.ScopeAll), h.User.Unlock)
	users.POST("/:id/roles/:roleId", gate.Require("users", bridge.ActionUpdate, bridge.ScopeAll), h.User.AssignRole)
	users.DELETE("/:id/roles/:roleId", gate.Require("users", bridge.ActionUpdate, bridge.ScopeAll), h.User.RemoveRole)

	roles := api.Group("/roles")
	roles.GET("", gate.Require("roles", bridge.ActionRead, bridge.ScopeAll), h.Role.List)
	roles.POST("", gate.Require("roles", bridge.ActionCreate, bridge.ScopeAll), h.Role.Create)
	roles.GET("/:id", gate.Require("roles", bridge.ActionRead, bridge.ScopeAll), h.Role.Get)
	roles.PUT("/:id", gate.Require("roles", bridge.ActionUpdate, bridge.ScopeAll), h.Role.Update)
	roles.DELETE("/:id", gate.Require("roles", bridge.ActionDelete, bridge.ScopeAll), h.Role.Delete)
	roles.POST("/:id/permissions", gate.Require("roles", bridge.ActionUpdate, bridge.ScopeAll), h.Role.GrantPermission)
	roles.DELETE("/:id/permissions", gate.Require("roles", bridge.ActionUpdate, bridge.ScopeAll), h.Role.RevokePermission)
}
