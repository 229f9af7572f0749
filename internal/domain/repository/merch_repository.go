package repository

import (
	"context"
	"errors"

	"sunstone/internal/domain/entity"
)

// ErrStockDepleted is returned by DecrementStock when the item's stock is
// already zero at transaction time.
var ErrStockDepleted = errors.New("merch stock depleted")

type MerchRepository interface {
	GetItem(ctx context.Context, id string) (*entity.MerchItem, error)
	// ListItems resolves the given catalog ids, skipping ids with no
	// backing document.
	ListItems(ctx context.Context, ids []string) ([]*entity.MerchItem, error)
	// DecrementStock atomically re-reads and decrements the item's stock.
	// Returns ErrStockDepleted when stock is already zero; the counter is
	// never driven negative.
	DecrementStock(ctx context.Context, id string) error
}
