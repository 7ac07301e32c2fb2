// Package storage provides the blob stores behind file uploads.
package storage

import (
	"context"
	"fmt"

	tourismapp "github.com/tourdesk/backend/internal/application/tourism"
	"github.com/tourdesk/backend/internal/domain/shared"
	infraconfig "github.com/tourdesk/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrObjectNotFound is wrapped by every backend when a key is missing
var ErrObjectNotFound = shared.ErrObjectNotFound

// Backend names accepted in configuration
const (
	BackendLocal  = "local"
	BackendS3     = "s3"
	BackendMemory = "memory"
)

// New opens the configured backend. The S3 bucket is created if missing.
func New(ctx context.Context, cfg *infraconfig.StorageConfig, logger *zap.Logger) (tourismapp.BlobStore, error) {
	switch cfg.Backend {
	case BackendLocal, "":
		store, err := NewLocalStorage(cfg.LocalDir)
		if err != nil {
			return nil, err
		}
		logger.Info("Using local file storage", zap.String("dir", store.Root()))
		return store, nil
	case BackendS3:
		store, err := NewS3ObjectStorage(cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		logger.Info("Using S3 file storage", zap.String("bucket", store.Bucket()))
		return store, nil
	case BackendMemory:
		logger.Warn("Using in-memory file storage, uploads are lost on restart")
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
