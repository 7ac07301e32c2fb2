package tourism

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/tourdesk/backend/internal/domain/shared"
	"github.com/tourdesk/backend/internal/domain/tourism"
	"github.com/tourdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// BlobStore holds uploaded file content under opaque keys.
// Implemented by the storage package (local directory, S3, memory).
// Missing keys surface shared.ErrObjectNotFound.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// UploadInput is one received multipart file
type UploadInput struct {
	OriginalName string
	ContentType  string
	Size         int64
	Category     string
	Body         io.Reader
}

// FileService stores upload content in a BlobStore and its metadata in the
// file collection
type FileService struct {
	records *FileRecordService
	blobs   BlobStore
	opts    serviceOptions
}

// NewFileService creates a FileService
func NewFileService(repo shared.Repository[tourism.File, tourism.FileInput, tourism.FilePatch], blobs BlobStore, opts ...Option) *FileService {
	return &FileService{
		records: NewCRUDService("file", "files", repo, tourism.ErrFileNotFound, opts...),
		blobs:   blobs,
		opts:    newServiceOptions(opts),
	}
}

// newStorageKey returns 32 hex characters with no extension
func newStorageKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Upload writes the content and then records its metadata. A failed write
// leaves no record behind.
func (s *FileService) Upload(ctx context.Context, in UploadInput) (tourism.File, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "tourism.file", "upload",
		telemetry.SpanAttrFileSize, in.Size,
		telemetry.SpanAttrContentType, in.ContentType)
	defer span.End()

	key := newStorageKey()
	if err := s.blobs.Put(ctx, key, in.Body, in.Size, in.ContentType); err != nil {
		telemetry.RecordError(span, err)
		return tourism.File{}, fmt.Errorf("store upload %q: %w", in.OriginalName, err)
	}
	telemetry.AddEvent(span, "content stored", telemetry.SpanAttrStorageKey, key)

	file := s.records.Create(ctx, tourism.FileInput{
		Filename:     key,
		OriginalName: in.OriginalName,
		FileType:     in.ContentType,
		FileSize:     in.Size,
		Category:     in.Category,
		UploadDate:   s.opts.now().Format(tourism.DateLayout),
	})
	telemetry.SetAttributes(span, telemetry.SpanAttrRecordID, file.ID)
	s.opts.metrics.RecordUpload(ctx, file.Category, file.FileSize)
	return file, nil
}

// List returns all file records
func (s *FileService) List(ctx context.Context) []tourism.File {
	return s.records.List(ctx)
}

// Get returns one file record
func (s *FileService) Get(ctx context.Context, id string) (tourism.File, error) {
	return s.records.Get(ctx, id)
}

// Update patches file metadata
func (s *FileService) Update(ctx context.Context, id string, patch tourism.FilePatch) (tourism.File, error) {
	return s.records.Update(ctx, id, patch)
}

// Delete removes the record and then its content. Content removal failures
// are logged only; the record is already gone.
func (s *FileService) Delete(ctx context.Context, id string) error {
	file, err := s.records.Remove(ctx, id)
	if err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, file.Filename); err != nil && !errors.Is(err, shared.ErrObjectNotFound) {
		s.opts.log(ctx).Warn("Failed to delete stored file content",
			zap.String("file_id", id),
			zap.String("key", file.Filename),
			zap.Error(err),
		)
	}
	return nil
}

// Open returns the record and a reader over its content. The caller closes it.
func (s *FileService) Open(ctx context.Context, id string) (tourism.File, io.ReadCloser, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "tourism.file", "open",
		telemetry.SpanAttrRecordID, id)
	defer span.End()

	file, err := s.records.Get(ctx, id)
	if err != nil {
		return tourism.File{}, nil, err
	}
	body, err := s.blobs.Open(ctx, file.Filename)
	if err != nil {
		telemetry.RecordError(span, err)
		if errors.Is(err, shared.ErrObjectNotFound) {
			return tourism.File{}, nil, err
		}
		return tourism.File{}, nil, fmt.Errorf("open stored file %s: %w", file.Filename, err)
	}
	return file, body, nil
}

// CheckStorage reports whether the blob store answers
func (s *FileService) CheckStorage(ctx context.Context) error {
	_, err := s.blobs.Exists(ctx, "healthcheck")
	return err
}
