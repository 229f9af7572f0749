package router

import (
	"github.com/labstack/echo/v4"

	"sunstone/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	SetupCommentRouter(e, authMiddleware, rateLimitMiddleware)
	SetupMerchRouter(e, authMiddleware, rateLimitMiddleware)
	SetupRoleRouter(e)
	SetupRevealRouter(e)
	SetupAuthRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
