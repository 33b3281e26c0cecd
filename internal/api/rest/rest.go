package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-revshare-engine/internal/api/middleware"
	"github.com/feral-file/ff-revshare-engine/internal/api/shared/errors"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, cronSecret string) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Scheduled dividend round (bearer secret)
		v1.GET("/cron/distribute-dividends", middleware.CronAuth(cronSecret), handler.DistributeDividends)

		// GitHub webhooks (authenticated by payload signature)
		v1.POST("/github/webhooks", handler.ReceiveGitHubWebhook)
		v1.GET("/github/webhooks", handler.GetGitHubWebhookStatus)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errors.NewNotFoundError("Route not found", c.Request.URL.Path))
	})
}
