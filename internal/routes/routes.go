package routes

import (
	"net/http"

	"fintrack_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all HTTP routes of the API.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers, authMW gin.HandlerFunc) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, authMW)
		appHandlers.UserHandler.RegisterRoutes(api, authMW)
		appHandlers.TransactionHandler.RegisterRoutes(api, authMW)
		appHandlers.InvestmentHandler.RegisterRoutes(api, authMW)
		appHandlers.TaxHandler.RegisterRoutes(api, authMW)
		appHandlers.DocumentHandler.RegisterRoutes(api, authMW)
	}
}
