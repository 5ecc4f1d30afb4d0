package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Storage - хранилище загруженных файлов (аватары, фото, публикации, подтверждения оплаты).
// path - ключ внутри хранилища, например "avatars/<user_id>/<uuid>.jpg".
type Storage interface {
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error
	Delete(ctx context.Context, path string) error
	// GetURL returns a public URL for the file
	GetURL(ctx context.Context, path string) (string, error)
	// GetSignedURL returns a temporary URL for private files
	GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

// Config holds storage configuration
type Config struct {
	Type       string // local, s3, cloudflare_r2
	BasePath   string // For local storage
	BaseURL    string // Public URL base
	Bucket     string // For S3/R2
	Region     string // For S3
	AccessKey  string // For S3/R2
	SecretKey  string // For S3/R2
	Endpoint   string // For R2 or custom S3
	PublicRead bool   // Make files public by default
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3", "cloudflare_r2":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
