package router

import (
	"github.com/labstack/echo/v4"

	"sunstone/internal/adapter/api/handler"
)

func SetupFeedRouter(e *echo.Echo, feedHandler *handler.FeedHandler) {
	e.GET("/v1/ws/feed", feedHandler.HandleFeed)
}
