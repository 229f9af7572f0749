package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"sunstone/internal/usecase"
	"sunstone/pkg/errors"
	"sunstone/pkg/logger"
	"sunstone/pkg/response"
	"sunstone/pkg/utils"
)

type AssetHandler struct {
	assetUseCase *usecase.AssetUseCase
	maxFileSize  int64
}

var assetHandler *AssetHandler

func NewAssetHandler(assetUseCase *usecase.AssetUseCase) *AssetHandler {
	return &AssetHandler{
		assetUseCase: assetUseCase,
		maxFileSize:  5 * 1024 * 1024,
	}
}

func SetupAssetHandler(assetUseCase *usecase.AssetUseCase) {
	assetHandler = NewAssetHandler(assetUseCase)
}

func GetAssetHandler() *AssetHandler {
	return assetHandler
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

func (h *AssetHandler) UploadAsset(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	if file.Size > h.maxFileSize {
		return response.Error(c, errors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", h.maxFileSize/(1024*1024)), nil))
	}

	fileType := file.Header.Get("Content-Type")
	if !allowedImageTypes[fileType] {
		return response.Error(c, errors.BadRequest("Only image uploads are supported", nil))
	}

	kind := c.FormValue("kind")
	if kind == "" {
		kind = "merch"
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to open uploaded file", err))
	}
	defer src.Close()

	uid := c.Get("uid").(string)

	asset, err := h.assetUseCase.Upload(c.Request().Context(), uid, usecase.UploadAssetInput{
		File:     src,
		Filename: file.Filename,
		FileType: fileType,
		FileSize: file.Size,
		Kind:     kind,
	})
	if err != nil {
		return response.Error(c, err)
	}

	logger.Info("Asset %s uploaded by %s", asset.ID, uid)
	return response.Created(c, asset)
}

func (h *AssetHandler) ListAssets(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	kind := c.QueryParam("kind")

	assets, total, err := h.assetUseCase.List(c.Request().Context(), kind, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, assets, total, pagination.Page, pagination.PageSize)
}

func (h *AssetHandler) DeleteAsset(c echo.Context) error {
	id := c.Param("assetId")
	if id == "" {
		return response.Error(c, errors.BadRequest("Asset ID is required", nil))
	}

	if err := h.assetUseCase.Delete(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"deleted": id})
}
