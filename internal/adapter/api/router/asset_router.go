package router

import (
	"github.com/labstack/echo/v4"

	"sunstone/internal/adapter/api/handler"
	"sunstone/internal/adapter/api/middleware"
)

func SetupAssetRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	assetHandler := handler.GetAssetHandler()

	e.GET("/v1/assets", assetHandler.ListAssets)

	admin := e.Group("/v1/admin/assets")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.POST("", assetHandler.UploadAsset)
	admin.DELETE("/:assetId", assetHandler.DeleteAsset)
}
