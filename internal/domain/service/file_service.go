package service

import (
	"context"
	"io"
)

// FileUploadService abstracts the asset image store (Cloud Storage in
// production).
type FileUploadService interface {
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
	Close() error
}
