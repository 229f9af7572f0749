package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sunstone/internal/domain/entity"
	"sunstone/internal/domain/repository"
	"sunstone/pkg/errors"
	"sunstone/pkg/logger"
)

type firestoreMerchRepository struct {
	client *firestore.Client
}

func NewFirestoreMerchRepository(client *firestore.Client) repository.MerchRepository {
	return &firestoreMerchRepository{
		client: client,
	}
}

func (r *firestoreMerchRepository) stock() *firestore.CollectionRef {
	return r.client.Collection("merch_stock")
}

func (r *firestoreMerchRepository) GetItem(ctx context.Context, id string) (*entity.MerchItem, error) {
	doc, err := r.stock().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Merch item", err)
		}
		return nil, errors.Internal("Failed to get merch item", err)
	}

	var item entity.MerchItem
	if err := doc.DataTo(&item); err != nil {
		return nil, errors.Internal("Failed to parse merch item data", err)
	}
	item.ID = doc.Ref.ID

	return &item, nil
}

func (r *firestoreMerchRepository) ListItems(ctx context.Context, ids []string) ([]*entity.MerchItem, error) {
	items := make([]*entity.MerchItem, 0, len(ids))

	for _, id := range ids {
		item, err := r.GetItem(ctx, id)
		if err != nil {
			if errors.Is(err, "NOT_FOUND") {
				logger.Warn("Merch catalog id %s has no stock document", id)
				continue
			}
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *firestoreMerchRepository) DecrementStock(ctx context.Context, id string) error {
	ref := r.stock().Doc(id)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Merch item", err)
			}
			return err
		}

		var item entity.MerchItem
		if err := doc.DataTo(&item); err != nil {
			return err
		}

		if item.Stock <= 0 {
			return repository.ErrStockDepleted
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "stock", Value: firestore.Increment(-1)},
		})
	})

	if err != nil {
		if err == repository.ErrStockDepleted {
			return err
		}
		if appErr, ok := err.(*errors.AppError); ok {
			return appErr
		}
		return errors.Internal("Failed to decrement merch stock", err)
	}

	return nil
}
