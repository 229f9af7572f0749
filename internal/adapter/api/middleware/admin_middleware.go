package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sunstone/internal/domain/entity"
	"sunstone/internal/domain/repository"
)

type AdminMiddleware struct {
	roleRepo repository.RoleRepository
}

func NewAdminMiddleware(roleRepo repository.RoleRepository) *AdminMiddleware {
	return &AdminMiddleware{
		roleRepo: roleRepo,
	}
}

func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		role, err := m.roleRepo.GetByUID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusForbidden, "Admin privileges required")
		}

		if role.Role != entity.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Admin privileges required")
		}

		return next(c)
	}
}
