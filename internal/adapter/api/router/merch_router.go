package router

import (
	"github.com/labstack/echo/v4"

	"sunstone/internal/adapter/api/handler"
	"sunstone/internal/adapter/api/middleware"
)

func SetupMerchRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	merchHandler := handler.GetMerchHandler()

	e.GET("/v1/merch", merchHandler.GetCatalog)

	authenticated := e.Group("/v1/merch")
	authenticated.Use(authMiddleware.Authenticate)

	authenticated.POST("/spin", merchHandler.Spin, rateLimitMiddleware.Limit("spin"))
	authenticated.POST("/spin/settle", merchHandler.Settle)
	authenticated.POST("/spin/abandon", merchHandler.Abandon)
}
