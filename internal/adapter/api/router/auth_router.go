package router

import (
	"github.com/labstack/echo/v4"

	"sunstone/internal/adapter/api/handler"
	"sunstone/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	e.GET("/v1/auth/me", authHandler.Me, authMiddleware.Authenticate)
}
