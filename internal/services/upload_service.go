package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"hela9_backend/internal/imageprocessor"
	"hela9_backend/internal/logger"
	"hela9_backend/internal/services/dto"
	"hela9_backend/internal/storage"
	"hela9_backend/pkg/apperrors"
)

// Виды загрузок, первая часть ключа в хранилище.
const (
	UploadKindAvatar       = "avatars"
	UploadKindPhoto        = "photos"
	UploadKindPublication  = "publications"
	UploadKindPaymentProof = "payment_proofs"

	signedURLExpiry = time.Hour
)

var allowedImageTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
}

// UploadService сохраняет изображения в хранилище.
// Файл пишется до коммита транзакции; при сбое коммита вызывающий делает Discard.
type UploadService interface {
	// Validate проверяет тип и размер, не трогая хранилище.
	Validate(file *dto.FileInput) error
	StoreImage(ctx context.Context, kind, ownerID string, file *dto.FileInput) (string, error)
	// StoreAvatar уменьшает изображение перед сохранением.
	StoreAvatar(ctx context.Context, ownerID string, file *dto.FileInput) (string, error)
	Discard(ctx context.Context, keys ...string)
	URL(ctx context.Context, key string) string
	SignedURL(ctx context.Context, key string) string
}

type uploadService struct {
	storage   storage.Storage
	processor *imageprocessor.Processor
	maxSize   int64
}

func NewUploadService(store storage.Storage, processor *imageprocessor.Processor, maxSize int64) UploadService {
	if processor == nil {
		processor = imageprocessor.NewProcessor(0, 0)
	}
	return &uploadService{storage: store, processor: processor, maxSize: maxSize}
}

func (s *uploadService) Validate(file *dto.FileInput) error {
	if file == nil || file.Content == nil {
		return apperrors.ErrInvalidFileType
	}
	if _, ok := allowedImageTypes[extension(file.Filename)]; !ok {
		return apperrors.ErrInvalidFileType
	}
	if s.maxSize > 0 && file.Size > s.maxSize {
		return apperrors.ErrFileTooLarge
	}
	return nil
}

func (s *uploadService) StoreImage(ctx context.Context, kind, ownerID string, file *dto.FileInput) (string, error) {
	if err := s.Validate(file); err != nil {
		return "", err
	}
	ext := extension(file.Filename)
	key := buildKey(kind, ownerID, ext)
	if err := s.storage.Save(ctx, key, file.Content, allowedImageTypes[ext]); err != nil {
		return "", apperrors.ErrStorage(err)
	}
	return key, nil
}

func (s *uploadService) StoreAvatar(ctx context.Context, ownerID string, file *dto.FileInput) (string, error) {
	if err := s.Validate(file); err != nil {
		return "", err
	}
	buf, format, err := s.processor.Fit(file.Content)
	if err != nil {
		logger.CtxWarn(ctx, "Avatar could not be decoded", "owner_id", ownerID, "error", err)
		return "", apperrors.ErrInvalidFileType
	}
	ext := "jpg"
	if format == "png" {
		ext = "png"
	}
	key := buildKey(UploadKindAvatar, ownerID, ext)
	if err := s.storage.Save(ctx, key, buf, allowedImageTypes[ext]); err != nil {
		return "", apperrors.ErrStorage(err)
	}
	return key, nil
}

func (s *uploadService) Discard(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			logger.CtxWithError(ctx, "Failed to delete orphaned upload", err, "key", key)
		}
	}
}

func (s *uploadService) URL(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	url, err := s.storage.GetURL(ctx, key)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to build upload URL", err, "key", key)
		return ""
	}
	return url
}

func (s *uploadService) SignedURL(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	url, err := s.storage.GetSignedURL(ctx, key, signedURLExpiry)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to sign upload URL", err, "key", key)
		return ""
	}
	return url
}

func extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

func buildKey(kind, ownerID, ext string) string {
	return fmt.Sprintf("%s/%s/%s.%s", kind, ownerID, uuid.NewString(), ext)
}
