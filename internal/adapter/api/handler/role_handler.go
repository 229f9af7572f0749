package handler

import (
	"github.com/labstack/echo/v4"

	"sunstone/internal/domain/entity"
	"sunstone/internal/usecase"
	"sunstone/pkg/errors"
	"sunstone/pkg/response"
)

type RoleHandler struct {
	roleUseCase *usecase.RoleUseCase
}

func NewRoleHandler(roleUseCase *usecase.RoleUseCase) *RoleHandler {
	return &RoleHandler{
		roleUseCase: roleUseCase,
	}
}

// GetRole is public: roles are cosmetic badge data, nothing more.
func (h *RoleHandler) GetRole(c echo.Context) error {
	uid := c.Param("uid")
	if uid == "" {
		return response.Error(c, errors.BadRequest("UID is required", nil))
	}

	role := h.roleUseCase.Resolve(c.Request().Context(), uid)

	return response.Success(c, map[string]string{
		"uid":   uid,
		"role":  role,
		"badge": entity.BadgeLabel(role),
	})
}
