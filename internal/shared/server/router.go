package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/generations"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// RouterDeps carries handlers needed to build the router.
type RouterDeps struct {
	Config      config.Config
	Generations *generations.Handler
	Health      *health.Service
	// RateLimiter backs the POST /generate limit; nil creates a fresh one.
	RateLimiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigins),
	)

	r.GET("/", func(c *gin.Context) {
		respond.OK(c, gin.H{"message": "AI Resume Builder API is running"})
	})
	r.GET("/test", func(c *gin.Context) {
		respond.OK(c, gin.H{"message": "API is working!"})
	})
	r.GET("/healthz", func(c *gin.Context) {
		payload, ok := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, payload)
	})
	r.GET("/metrics", metrics.Handler())

	if deps.Generations != nil {
		var generateMW []gin.HandlerFunc
		rule := middleware.PerMinute(deps.Config.GenerateRatePerMinute, deps.Config.GenerateBurst)
		if rule.Enabled() {
			generateMW = append(generateMW, middleware.RateLimit(rule, deps.RateLimiter))
		}
		deps.Generations.RegisterRoutes(r, generateMW...)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
