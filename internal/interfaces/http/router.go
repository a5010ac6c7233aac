package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/InfringeScope/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/InfringeScope/internal/interfaces/http/handlers"
	"github.com/turtacn/InfringeScope/internal/interfaces/http/middleware"
	"github.com/turtacn/InfringeScope/pkg/errors"
)

// RouterConfig aggregates the handlers and infrastructure needed to build
// the route tree.  A nil handler leaves its routes unregistered.
type RouterConfig struct {
	// Handlers
	CompanyHandler      *handlers.CompanyHandler
	PatentHandler       *handlers.PatentHandler
	InfringementHandler *handlers.InfringementHandler
	UserHandler         *handlers.UserHandler
	HealthHandler       *handlers.HealthHandler

	// Middleware
	CORSAllowedOrigins []string
	Logging            middleware.LoggingConfig

	// Infrastructure
	Logger           logging.Logger
	MetricsCollector prometheus.MetricsCollector
	Metrics          *prometheus.AppMetrics
	MetricsPath      string

	// Mode is passed to gin.SetMode; empty means release.
	Mode string
}

// NewRouter builds the gin engine.  Global middleware runs in the order
// recovery, request id, CORS, logging, metrics.
func NewRouter(cfg RouterConfig) *gin.Engine {
	mode := cfg.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{Code: string(errors.ErrCodeNotFound), Message: "route not found"})
	})

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSAllowedOrigins)))
	r.Use(middleware.RequestLogging(cfg.Logger, cfg.Logging))
	r.Use(middleware.Metrics(cfg.Metrics))

	if h := cfg.HealthHandler; h != nil {
		r.GET("/healthz", h.Liveness)
		r.GET("/readyz", h.Readiness)
	}

	if cfg.MetricsCollector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(cfg.MetricsCollector.Handler()))
	}

	api := r.Group("/api/v1")
	registerCompanyRoutes(api, cfg.CompanyHandler)
	registerPatentRoutes(api, cfg.PatentHandler)
	registerInfringementRoutes(api, cfg.InfringementHandler)
	registerUserRoutes(api, cfg.UserHandler)

	return r
}

func registerCompanyRoutes(r *gin.RouterGroup, h *handlers.CompanyHandler) {
	if h == nil {
		return
	}
	g := r.Group("/companies")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}

func registerPatentRoutes(r *gin.RouterGroup, h *handlers.PatentHandler) {
	if h == nil {
		return
	}
	g := r.Group("/patents")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}

// registerInfringementRoutes mounts /infringement.  The static /check route
// and the /:id wildcard differ in method, so they do not collide.
func registerInfringementRoutes(r *gin.RouterGroup, h *handlers.InfringementHandler) {
	if h == nil {
		return
	}
	g := r.Group("/infringement")
	g.POST("/check", h.Check)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}

func registerUserRoutes(r *gin.RouterGroup, h *handlers.UserHandler) {
	if h == nil {
		return
	}
	r.GET("/users", h.ListUsers)
	r.GET("/users/:id", h.GetUser)
	r.GET("/items", h.ListItems)
	r.GET("/items/:id", h.GetItem)
}

//Personal.AI order the ending
