package handler

import (
	"github.com/labstack/echo/v4"

	"sunstone/internal/usecase"
	"sunstone/pkg/response"
)

// DevTokenHandler mints custom tokens for local testing, where the Google
// sign-in popup is not available. Only routed in development.
type DevTokenHandler struct {
	authUseCase *usecase.AuthUseCase
}

var devTokenHandler *DevTokenHandler

func SetupDevTokenHandler(authUseCase *usecase.AuthUseCase) {
	devTokenHandler = &DevTokenHandler{authUseCase: authUseCase}
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	uid := c.QueryParam("uid")

	token, err := h.authUseCase.DevToken(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"uid":   uid,
		"token": token,
	})
}
