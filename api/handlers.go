// Package api exposes the search engine over HTTP using Gin.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sumry-app/SUMRY-sub001/internal/analytics"
	"github.com/sumry-app/SUMRY-sub001/pkg/metrics"
	"github.com/sumry-app/SUMRY-sub001/services"
)

// API provides HTTP handlers for the search engine.
type API struct {
	engine    services.SearchEngine
	analytics *analytics.Service
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewAPI creates a new API instance. A nil logger disables logging.
func NewAPI(engine services.SearchEngine, tracker *analytics.Service, m *metrics.Metrics, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		engine:    engine,
		analytics: tracker,
		metrics:   m,
		logger:    logger,
	}
}

// SetupRoutes configures all API routes on the given router.
func (api *API) SetupRoutes(router *gin.Engine) {
	router.Use(CORSMiddleware())
	router.Use(MetricsMiddleware(api.metrics))

	router.GET("/health", api.healthCheck)
	router.GET("/metrics", gin.WrapH(api.metrics.Handler()))

	collections := router.Group("/collections")
	{
		collections.GET("", api.listCollections)
		collections.PUT("/:name", api.setCollection)
		collections.GET("/:name", api.getCollection)
		collections.DELETE("/:name", api.deleteCollection)

		collections.POST("/:name/search", api.search)
		collections.GET("/:name/suggest", api.suggest)

		reports := collections.Group("/:name/reports")
		{
			reports.POST("/scores", api.scoreReport)
			reports.POST("/trends", api.trendReport)
		}
	}

	cache := router.Group("/cache")
	{
		cache.GET("/stats", api.cacheStats)
		cache.POST("/invalidate", api.invalidateCache)
	}

	analyticsGroup := router.Group("/analytics")
	{
		analyticsGroup.GET("/searches", api.searchAnalytics)
	}
}

// healthCheck returns the health status of the service
func (api *API) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"collections": len(api.engine.ListCollections()),
	})
}

// cacheStats reports cumulative cache hit and miss counts.
func (api *API) cacheStats(c *gin.Context) {
	hits, misses := api.engine.CacheStats()
	c.JSON(http.StatusOK, gin.H{
		"hits":   hits,
		"misses": misses,
	})
}

// invalidateCache drops cached results whose key contains the given pattern,
// or all of them when the pattern is empty.
func (api *API) invalidateCache(c *gin.Context) {
	var req struct {
		Pattern string `json:"pattern"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
				"Invalid request body: "+err.Error())
			return
		}
	}

	removed := api.engine.InvalidateCache(req.Pattern)
	c.JSON(http.StatusOK, gin.H{
		"pattern": req.Pattern,
		"removed": removed,
	})
}
