package router

import (
	"github.com/labstack/echo/v4"

	"sunstone/internal/adapter/api/handler"
)

func SetupRoleRouter(e *echo.Echo) {
	roleHandler := handler.GetRoleHandler()

	e.GET("/v1/roles/:uid", roleHandler.GetRole)
}
