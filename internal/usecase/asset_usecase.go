package usecase

import (
	"context"
	"io"

	"sunstone/internal/domain/entity"
	"sunstone/internal/domain/repository"
	"sunstone/internal/domain/service"
	"sunstone/pkg/errors"
)

var allowedAssetKinds = map[string]bool{
	"merch":      true,
	"background": true,
	"logo":       true,
}

type AssetUseCase struct {
	assetRepo   repository.AssetRepository
	fileService service.FileUploadService
}

func NewAssetUseCase(assetRepo repository.AssetRepository, fileService service.FileUploadService) *AssetUseCase {
	return &AssetUseCase{
		assetRepo:   assetRepo,
		fileService: fileService,
	}
}

type UploadAssetInput struct {
	File     io.Reader
	Filename string
	FileType string
	FileSize int64
	Kind     string
}

func (uc *AssetUseCase) Upload(ctx context.Context, uid string, input UploadAssetInput) (*entity.Asset, error) {
	if !allowedAssetKinds[input.Kind] {
		return nil, errors.BadRequest("Unknown asset kind", nil)
	}

	url, err := uc.fileService.UploadFile(ctx, input.File, input.FileType, input.Kind)
	if err != nil {
		return nil, errors.Internal("Failed to upload asset", err)
	}

	asset := &entity.Asset{
		URL:        url,
		ObjectName: url,
		Kind:       input.Kind,
		Filename:   input.Filename,
		FileType:   input.FileType,
		FileSize:   input.FileSize,
		UploadedBy: uid,
	}

	if err := uc.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}

	return asset, nil
}

func (uc *AssetUseCase) List(ctx context.Context, kind string, limit, offset int) ([]*entity.Asset, int64, error) {
	if kind != "" && !allowedAssetKinds[kind] {
		return nil, 0, errors.BadRequest("Unknown asset kind", nil)
	}
	return uc.assetRepo.ListByKind(ctx, kind, limit, offset)
}

func (uc *AssetUseCase) Delete(ctx context.Context, id string) error {
	asset, err := uc.assetRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.fileService.DeleteFile(ctx, asset.URL); err != nil {
		return errors.Internal("Failed to delete asset object", err)
	}

	return uc.assetRepo.Delete(ctx, id)
}
