package handler

import (
	"github.com/labstack/echo/v4"

	"sunstone/internal/usecase"
	"sunstone/pkg/errors"
	"sunstone/pkg/response"
)

type RevealHandler struct {
	revealUseCase *usecase.RevealUseCase
}

func NewRevealHandler(revealUseCase *usecase.RevealUseCase) *RevealHandler {
	return &RevealHandler{
		revealUseCase: revealUseCase,
	}
}

// Visitors identify themselves with an opaque id minted client-side; no
// account is involved.
func visitorID(c echo.Context) string {
	return c.Request().Header.Get("X-Visitor-Id")
}

type observeRequest struct {
	Ratio float64 `json:"ratio" validate:"min=0,max=1"`
}

func (h *RevealHandler) Observe(c echo.Context) error {
	section := c.Param("section")
	if section == "" {
		return response.Error(c, errors.BadRequest("Section is required", nil))
	}

	var req observeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	fired, state, err := h.revealUseCase.Observe(c.Request().Context(), visitorID(c), section, req.Ratio)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"section":  section,
		"revealed": fired,
		"state":    state.String(),
	})
}

func (h *RevealHandler) States(c echo.Context) error {
	id := visitorID(c)
	if id == "" {
		return response.Error(c, errors.BadRequest("Visitor id is required", nil))
	}

	return response.Success(c, h.revealUseCase.States(c.Request().Context(), id))
}
