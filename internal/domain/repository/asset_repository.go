package repository

import (
	"context"

	"sunstone/internal/domain/entity"
)

type AssetRepository interface {
	Create(ctx context.Context, asset *entity.Asset) error
	GetByID(ctx context.Context, id string) (*entity.Asset, error)
	ListByKind(ctx context.Context, kind string, limit, offset int) ([]*entity.Asset, int64, error)
	Delete(ctx context.Context, id string) error
}
