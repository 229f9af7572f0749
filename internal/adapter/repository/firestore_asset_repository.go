package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sunstone/internal/domain/entity"
	"sunstone/internal/domain/repository"
	"sunstone/pkg/errors"
)

type firestoreAssetRepository struct {
	client *firestore.Client
}

func NewFirestoreAssetRepository(client *firestore.Client) repository.AssetRepository {
	return &firestoreAssetRepository{
		client: client,
	}
}

func (r *firestoreAssetRepository) Create(ctx context.Context, asset *entity.Asset) error {
	if asset.ID == "" {
		asset.ID = uuid.New().String()
	}
	asset.CreatedAt = time.Now()

	_, err := r.client.Collection("assets").Doc(asset.ID).Set(ctx, asset)
	if err != nil {
		return errors.Internal("Failed to create asset metadata", err)
	}

	return nil
}

func (r *firestoreAssetRepository) GetByID(ctx context.Context, id string) (*entity.Asset, error) {
	doc, err := r.client.Collection("assets").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Asset", err)
		}
		return nil, errors.Internal("Failed to get asset metadata", err)
	}

	var asset entity.Asset
	if err := doc.DataTo(&asset); err != nil {
		return nil, errors.Internal("Failed to parse asset metadata", err)
	}

	return &asset, nil
}

func (r *firestoreAssetRepository) ListByKind(ctx context.Context, kind string, limit, offset int) ([]*entity.Asset, int64, error) {
	query := r.client.Collection("assets").Query
	if kind != "" {
		query = query.Where("kind", "==", kind)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count assets", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var assets []*entity.Asset

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate assets", err)
		}

		var asset entity.Asset
		if err := doc.DataTo(&asset); err != nil {
			return nil, 0, errors.Internal("Failed to parse asset metadata", err)
		}
		assets = append(assets, &asset)
	}

	return assets, total, nil
}

func (r *firestoreAssetRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("assets").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete asset metadata", err)
	}

	return nil
}
