package server

import (
	"keyimport-core/internal/handler"
	"keyimport-core/internal/handler/response"

	"keyimport-core/pkg/monitor"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHTTPRouter builds the gin engine with all routes registered.
func NewHTTPRouter() *gin.Engine {
	// 0. metrics first so the middleware has registered collectors
	monitor.Init()

	// 1. default middleware: Logger, Recovery
	r := gin.Default()

	// 2. shared middleware
	r.Use(monitor.PrometheusMiddleware())

	// 3. infrastructure routes
	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 4. API routes
	api := r.Group("/api/v1")
	{
		api.GET("/ping", func(c *gin.Context) {
			response.Success(c, gin.H{"pong": true})
		})

		imp := api.Group("/import")
		{
			imp.POST("/detect", handler.Import.Detect)
			imp.POST("/inspect", handler.Import.Inspect)
			imp.POST("/suggest", handler.Import.Suggest)
		}
	}

	return r
}
