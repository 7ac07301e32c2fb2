package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	tourismapp "github.com/tourdesk/backend/internal/application/tourism"
)

var _ tourismapp.BlobStore = (*MemoryStorage)(nil)

// MemoryStorage keeps uploads in process memory. Intended for tests and demos.
type MemoryStorage struct {
	mu   sync.RWMutex
	objs map[string][]byte
}

// NewMemoryStorage returns an empty store
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objs: make(map[string][]byte)}
}

// Put stores the content of r, replacing any previous value
func (s *MemoryStorage) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	s.mu.Lock()
	s.objs[key] = b
	s.mu.Unlock()
	return nil
}

// Open returns a reader over a copy of the content
func (s *MemoryStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	b, ok := s.objs[key]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("object %s: %w", key, ErrObjectNotFound)
	}
	return io.NopCloser(bytes.NewReader(bytes.Clone(b))), nil
}

// Delete removes key
func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objs[key]; !ok {
		return fmt.Errorf("object %s: %w", key, ErrObjectNotFound)
	}
	delete(s.objs, key)
	return nil
}

// Exists reports whether key is stored
func (s *MemoryStorage) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objs[key]
	return ok, nil
}
