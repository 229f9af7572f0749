package router

import (
	"github.com/labstack/echo/v4"

	"sunstone/internal/adapter/api/handler"
	"sunstone/internal/adapter/api/middleware"
)

func SetupCommentRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	commentHandler := handler.GetCommentHandler()

	// Public routes: anyone can read the feed. Optional auth so signed-in
	// readers are rate-limit keyed by uid rather than shared IP.
	comments := e.Group("/v1/comments")
	comments.Use(authMiddleware.OptionalAuthenticate)
	comments.Use(rateLimitMiddleware.Limit("read_feed"))
	comments.GET("", commentHandler.ListComments)
	comments.GET("/:commentId/replies", commentHandler.ListReplies)

	// Writing requires a signed-in identity.
	authenticated := e.Group("/v1/comments")
	authenticated.Use(authMiddleware.Authenticate)

	authenticated.POST("", commentHandler.PostComment, rateLimitMiddleware.Limit("post_comment"))
	authenticated.DELETE("/:commentId", commentHandler.DeleteComment)
	authenticated.POST("/:commentId/replies", commentHandler.PostReply, rateLimitMiddleware.Limit("post_reply"))
	authenticated.DELETE("/:commentId/replies/:replyId", commentHandler.DeleteReply)
}
