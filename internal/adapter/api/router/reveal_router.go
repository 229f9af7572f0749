package router

import (
	"github.com/labstack/echo/v4"

	"sunstone/internal/adapter/api/handler"
)

func SetupRevealRouter(e *echo.Echo) {
	revealHandler := handler.GetRevealHandler()

	e.GET("/v1/reveal", revealHandler.States)
	e.POST("/v1/reveal/:section", revealHandler.Observe)
}
