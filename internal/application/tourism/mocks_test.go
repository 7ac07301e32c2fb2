package tourism

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockBlobStore is a mock implementation of BlobStore
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, r, size, contentType)
	return args.Error(0)
}

func (m *MockBlobStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockMetrics is a mock implementation of Metrics
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordCreated(ctx context.Context, entity string) {
	m.Called(ctx, entity)
}

func (m *MockMetrics) RecordUpdated(ctx context.Context, entity string) {
	m.Called(ctx, entity)
}

func (m *MockMetrics) RecordDeleted(ctx context.Context, entity string) {
	m.Called(ctx, entity)
}

func (m *MockMetrics) RecordExport(ctx context.Context, entity, format string) {
	m.Called(ctx, entity, format)
}

func (m *MockMetrics) RecordUpload(ctx context.Context, category string, size int64) {
	m.Called(ctx, category, size)
}
