package repository

import (
	"context"

	"sunstone/internal/domain/entity"
)

type RoleRepository interface {
	GetByUID(ctx context.Context, uid string) (*entity.UserRole, error)
}
