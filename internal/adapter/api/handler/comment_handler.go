package handler

import (
	"github.com/labstack/echo/v4"

	"sunstone/internal/usecase"
	"sunstone/pkg/errors"
	"sunstone/pkg/response"
	"sunstone/pkg/utils"
)

type CommentHandler struct {
	commentUseCase *usecase.CommentUseCase
}

func NewCommentHandler(commentUseCase *usecase.CommentUseCase) *CommentHandler {
	return &CommentHandler{
		commentUseCase: commentUseCase,
	}
}

type postCommentRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

func (h *CommentHandler) ListComments(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	comments, total, err := h.commentUseCase.ListComments(c.Request().Context(), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, comments, total, pagination.Page, pagination.PageSize)
}

func (h *CommentHandler) PostComment(c echo.Context) error {
	var req postCommentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	comment, err := h.commentUseCase.PostComment(c.Request().Context(), uid, req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, comment)
}

func (h *CommentHandler) DeleteComment(c echo.Context) error {
	commentID := c.Param("commentId")
	if commentID == "" {
		return response.Error(c, errors.BadRequest("Comment ID is required", nil))
	}

	uid := c.Get("uid").(string)

	if err := h.commentUseCase.DeleteComment(c.Request().Context(), uid, commentID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"deleted": commentID})
}

func (h *CommentHandler) ListReplies(c echo.Context) error {
	commentID := c.Param("commentId")
	if commentID == "" {
		return response.Error(c, errors.BadRequest("Comment ID is required", nil))
	}

	replies, err := h.commentUseCase.ListReplies(c.Request().Context(), commentID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, replies)
}

func (h *CommentHandler) PostReply(c echo.Context) error {
	commentID := c.Param("commentId")
	if commentID == "" {
		return response.Error(c, errors.BadRequest("Comment ID is required", nil))
	}

	var req postCommentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	reply, err := h.commentUseCase.PostReply(c.Request().Context(), uid, commentID, req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, reply)
}

func (h *CommentHandler) DeleteReply(c echo.Context) error {
	commentID := c.Param("commentId")
	replyID := c.Param("replyId")
	if commentID == "" || replyID == "" {
		return response.Error(c, errors.BadRequest("Comment ID and reply ID are required", nil))
	}

	uid := c.Get("uid").(string)

	if err := h.commentUseCase.DeleteReply(c.Request().Context(), uid, commentID, replyID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"deleted": replyID})
}
