package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"tasklane.app/server/common/id"
)

var ErrUnsupportedMime = errors.New("unsupported content type")

// ObjectStore abstracts the bucket the images live in.
type ObjectStore interface {
	PresignPut(ctx context.Context, key, contentType string) (string, error)
	PresignGet(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

var mimeExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
	"image/gif":  "gif",
}

type StorageService struct {
	objects ObjectStore
}

func NewStorageService(objects ObjectStore) *StorageService {
	return &StorageService{objects: objects}
}

// PresignUpload mints a fresh object key for the given image type and
// returns a time-limited URL the client PUTs the bytes to.
func (s *StorageService) PresignUpload(ctx context.Context, contentType string) (url, key string, err error) {
	ext, ok := mimeExtensions[contentType]
	if !ok {
		return "", "", ErrUnsupportedMime
	}

	key = fmt.Sprintf("images/%s.%s", strconv.FormatInt(id.New(), 10), ext)
	url, err = s.objects.PresignPut(ctx, key, contentType)
	if err != nil {
		return "", "", fmt.Errorf("presigning upload: %w", err)
	}
	return url, key, nil
}

func (s *StorageService) PresignDownload(ctx context.Context, key string) (string, error) {
	url, err := s.objects.PresignGet(ctx, key)
	if err != nil {
		return "", fmt.Errorf("presigning download: %w", err)
	}
	return url, nil
}
