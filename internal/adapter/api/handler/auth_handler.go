package handler

import (
	"github.com/labstack/echo/v4"

	"sunstone/internal/usecase"
	"sunstone/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

func (h *AuthHandler) Me(c echo.Context) error {
	uid := c.Get("uid").(string)

	me, err := h.authUseCase.CurrentUser(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, me)
}
