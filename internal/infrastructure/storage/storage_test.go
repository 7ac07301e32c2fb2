package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tourismapp "github.com/tourdesk/backend/internal/application/tourism"
	"github.com/tourdesk/backend/internal/domain/shared"
	"github.com/tourdesk/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func readAll(t *testing.T, rc io.ReadCloser) string {
	t.Helper()
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}

// exerciseBlobStore runs the contract every backend must satisfy
func exerciseBlobStore(t *testing.T, store tourismapp.BlobStore) {
	ctx := context.Background()

	exists, err := store.Exists(ctx, "a1b2c3")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Put(ctx, "a1b2c3", strings.NewReader("tour contract"), 13, "text/plain"))

	exists, err = store.Exists(ctx, "a1b2c3")
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := store.Open(ctx, "a1b2c3")
	require.NoError(t, err)
	assert.Equal(t, "tour contract", readAll(t, rc))

	require.NoError(t, store.Delete(ctx, "a1b2c3"))
	_, err = store.Open(ctx, "a1b2c3")
	assert.ErrorIs(t, err, shared.ErrObjectNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "a1b2c3"), ErrObjectNotFound)
}

func TestLocalStorage(t *testing.T) {
	store, err := NewLocalStorage(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	exerciseBlobStore(t, store)
}

func TestLocalStorage_RejectsUnsafeKeys(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "  ", "../escape", "nested/key", `win\key`} {
		t.Run(key, func(t *testing.T) {
			assert.Error(t, store.Put(ctx, key, strings.NewReader("x"), 1, ""))
			_, err := store.Open(ctx, key)
			assert.Error(t, err)
		})
	}
}

func TestLocalStorage_PutLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "k1", strings.NewReader("data"), 4, ""))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k1", entries[0].Name())
}

func TestMemoryStorage(t *testing.T) {
	exerciseBlobStore(t, NewMemoryStorage())
}

func TestMemoryStorage_OpenReturnsCopy(t *testing.T) {
	store := NewMemoryStorage()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "k", strings.NewReader("abc"), 3, ""))

	rc, err := store.Open(ctx, "k")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	b[0] = 'z'

	rc, err = store.Open(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", readAll(t, rc))
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		assert.ErrorContains(t, err, "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{AccessKey: "k", SecretKey: "s"})
		assert.ErrorContains(t, err, "bucket is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{Bucket: "b", SecretKey: "s"})
		assert.ErrorContains(t, err, "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{Bucket: "b", AccessKey: "k"})
		assert.ErrorContains(t, err, "secret key is required")
	})

	t.Run("valid config creates storage", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(&config.StorageConfig{
			Bucket:    "tourdesk-uploads",
			AccessKey: "k",
			SecretKey: "s",
			Endpoint:  "localhost:9000",
			PathStyle: true,
		}, WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.Equal(t, "tourdesk-uploads", storage.Bucket())
	})
}

func TestS3ObjectStorage_EmptyKey(t *testing.T) {
	storage, err := NewS3ObjectStorage(&config.StorageConfig{Bucket: "b", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	ctx := context.Background()

	assert.ErrorContains(t, storage.Put(ctx, "", strings.NewReader(""), 0, ""), "storage key is required")
	_, err = storage.Open(ctx, "")
	assert.ErrorContains(t, err, "storage key is required")
	assert.ErrorContains(t, storage.Delete(ctx, ""), "storage key is required")
	_, err = storage.Exists(ctx, "")
	assert.ErrorContains(t, err, "storage key is required")
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	store, err := New(ctx, &config.StorageConfig{Backend: BackendLocal, LocalDir: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, store)

	store, err = New(ctx, &config.StorageConfig{Backend: BackendMemory}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, store)

	_, err = New(ctx, &config.StorageConfig{Backend: "ftp"}, zap.NewNop())
	assert.ErrorContains(t, err, "unknown storage backend")
}
