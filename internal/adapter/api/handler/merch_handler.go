package handler

import (
	"github.com/labstack/echo/v4"

	"sunstone/internal/usecase"
	"sunstone/pkg/response"
)

type MerchHandler struct {
	merchUseCase *usecase.MerchUseCase
}

func NewMerchHandler(merchUseCase *usecase.MerchUseCase) *MerchHandler {
	return &MerchHandler{
		merchUseCase: merchUseCase,
	}
}

type spinRequest struct {
	// WidgetID identifies the wheel instance on the page; independent
	// widgets spin independently.
	WidgetID      string  `json:"widget_id" validate:"required"`
	ViewportWidth float64 `json:"viewport_width" validate:"required,gt=0"`
}

type settleRequest struct {
	WidgetID string `json:"widget_id" validate:"required"`
	SpinID   string `json:"spin_id" validate:"required"`
}

type abandonRequest struct {
	WidgetID string `json:"widget_id" validate:"required"`
}

func (h *MerchHandler) GetCatalog(c echo.Context) error {
	items, err := h.merchUseCase.Catalog(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, items)
}

func (h *MerchHandler) Spin(c echo.Context) error {
	var req spinRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	// Widget instances are scoped per user so one visitor cannot hold
	// another's wheel busy.
	result, err := h.merchUseCase.Spin(c.Request().Context(), uid+":"+req.WidgetID, req.ViewportWidth)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *MerchHandler) Settle(c echo.Context) error {
	var req settleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	item, err := h.merchUseCase.Settle(c.Request().Context(), uid+":"+req.WidgetID, req.SpinID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

// Abandon drops an in-flight spin without settling, for wheels torn down
// before the animation finished. Nothing is decremented.
func (h *MerchHandler) Abandon(c echo.Context) error {
	var req abandonRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	h.merchUseCase.Abandon(uid + ":" + req.WidgetID)

	return response.Success(c, map[string]string{"abandoned": req.WidgetID})
}
