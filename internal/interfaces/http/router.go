// Package http assembles the gin router and HTTP server for the matching
// API.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openmetab/keggmatch/internal/application/matching"
	"github.com/openmetab/keggmatch/internal/config"
	"github.com/openmetab/keggmatch/internal/infrastructure/monitoring/logging"
	"github.com/openmetab/keggmatch/internal/infrastructure/monitoring/prometheus"
	"github.com/openmetab/keggmatch/internal/interfaces/http/handlers"
	"github.com/openmetab/keggmatch/internal/interfaces/http/middleware"
)

// The application service satisfies the handler port.
var _ handlers.Matcher = (*matching.Service)(nil)

// RouterDeps carries everything the router wires together.
type RouterDeps struct {
	Matcher        handlers.Matcher
	Logger         logging.Logger
	Metrics        *prometheus.AppMetrics
	MetricsHandler http.Handler
	Health         *handlers.HealthHandler
	Limiter        middleware.RateLimiter
}

// NewRouter builds the gin engine with the full middleware chain and all
// routes registered.
func NewRouter(cfg *config.Config, deps RouterDeps) *gin.Engine {
	gin.SetMode(ginMode(cfg.Server.Mode))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if deps.Logger != nil {
		r.Use(middleware.RequestLogging(deps.Logger, middleware.DefaultLoggingConfig()))
	}
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	if deps.Limiter != nil {
		limitCfg := middleware.DefaultRateLimitConfig()
		limitCfg.RequestsPerSecond = cfg.Server.RateLimitRPS
		limitCfg.BurstSize = cfg.Server.RateLimitBurst
		r.Use(middleware.RateLimit(deps.Limiter, limitCfg))
	}

	if deps.Health != nil {
		r.GET("/healthz", deps.Health.Healthz)
		r.GET("/readyz", deps.Health.Readyz)
	}
	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	match := handlers.NewMatchHandler(deps.Matcher, cfg.Batch.Delay)
	v1 := r.Group("/api/v1")
	{
		v1.POST("/compounds/match", match.Match)
		v1.POST("/compounds/match/batch", match.MatchBatch)
	}

	return r
}

func ginMode(mode string) string {
	switch mode {
	case "debug":
		return gin.DebugMode
	case "test":
		return gin.TestMode
	default:
		return gin.ReleaseMode
	}
}
