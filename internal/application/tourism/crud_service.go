package tourism

import (
	"context"

	"github.com/tourdesk/backend/internal/domain/shared"
	"github.com/tourdesk/backend/internal/domain/tourism"
	"github.com/tourdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CRUDService exposes one collection to the HTTP layer. It adds tracing,
// logging and metrics around the repository and turns absent lookups into
// the collection's not-found error.
type CRUDService[T, I, P any] struct {
	kind     string
	entity   string
	repo     shared.Repository[T, I, P]
	notFound error
	opts     serviceOptions
}

// NewCRUDService creates a service for one collection. kind names spans
// ("tour"), entity labels metrics and logs ("tours").
func NewCRUDService[T, I, P any](kind, entity string, repo shared.Repository[T, I, P], notFound error, opts ...Option) *CRUDService[T, I, P] {
	return &CRUDService[T, I, P]{
		kind:     kind,
		entity:   entity,
		repo:     repo,
		notFound: notFound,
		opts:     newServiceOptions(opts),
	}
}

type (
	// TourService manages tours
	TourService = CRUDService[tourism.Tour, tourism.TourInput, tourism.TourPatch]
	// TouristService manages tourists
	TouristService = CRUDService[tourism.Tourist, tourism.TouristInput, tourism.TouristPatch]
	// TransactionService manages transactions
	TransactionService = CRUDService[tourism.Transaction, tourism.TransactionInput, tourism.TransactionPatch]
	// FileRecordService manages file metadata without touching blobs
	FileRecordService = CRUDService[tourism.File, tourism.FileInput, tourism.FilePatch]
)

// NewTourService creates the tour service
func NewTourService(repo shared.Repository[tourism.Tour, tourism.TourInput, tourism.TourPatch], opts ...Option) *TourService {
	return NewCRUDService("tour", "tours", repo, tourism.ErrTourNotFound, opts...)
}

// NewTouristService creates the tourist service
func NewTouristService(repo shared.Repository[tourism.Tourist, tourism.TouristInput, tourism.TouristPatch], opts ...Option) *TouristService {
	return NewCRUDService("tourist", "tourists", repo, tourism.ErrTouristNotFound, opts...)
}

// NewTransactionService creates the transaction service
func NewTransactionService(repo shared.Repository[tourism.Transaction, tourism.TransactionInput, tourism.TransactionPatch], opts ...Option) *TransactionService {
	return NewCRUDService("transaction", "transactions", repo, tourism.ErrTransactionNotFound, opts...)
}

// Entity returns the collection label, e.g. "tours"
func (s *CRUDService[T, I, P]) Entity() string {
	return s.entity
}

// List returns every record in insertion order
func (s *CRUDService[T, I, P]) List(ctx context.Context) []T {
	_, span := telemetry.StartServiceSpan(ctx, "tourism."+s.kind, "list",
		telemetry.SpanAttrEntity, s.entity)
	defer span.End()

	records := s.repo.List()
	telemetry.SetAttributes(span, telemetry.SpanAttrCount, len(records))
	return records
}

// Get returns the record with id or the not-found error
func (s *CRUDService[T, I, P]) Get(ctx context.Context, id string) (T, error) {
	_, span := telemetry.StartServiceSpan(ctx, "tourism."+s.kind, "get",
		telemetry.SpanAttrEntity, s.entity,
		telemetry.SpanAttrRecordID, id)
	defer span.End()

	record, ok := s.repo.Get(id)
	telemetry.SetAttributes(span, telemetry.SpanAttrFound, ok)
	if !ok {
		var zero T
		return zero, s.notFound
	}
	return record, nil
}

// Create stores a new record. Input is assumed validated.
func (s *CRUDService[T, I, P]) Create(ctx context.Context, in I) T {
	ctx, span := telemetry.StartServiceSpan(ctx, "tourism."+s.kind, "create",
		telemetry.SpanAttrEntity, s.entity)
	defer span.End()

	record := s.repo.Create(in)
	s.opts.metrics.RecordCreated(ctx, s.entity)
	s.opts.log(ctx).Info("Record created", zap.String("entity", s.entity))
	return record
}

// Update merges patch into the record with id
func (s *CRUDService[T, I, P]) Update(ctx context.Context, id string, patch P) (T, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "tourism."+s.kind, "update",
		telemetry.SpanAttrEntity, s.entity,
		telemetry.SpanAttrRecordID, id)
	defer span.End()

	record, ok := s.repo.Update(id, patch)
	telemetry.SetAttributes(span, telemetry.SpanAttrFound, ok)
	if !ok {
		var zero T
		return zero, s.notFound
	}
	s.opts.metrics.RecordUpdated(ctx, s.entity)
	s.opts.log(ctx).Info("Record updated", zap.String("entity", s.entity), zap.String("id", id))
	return record, nil
}

// Delete removes the record with id
func (s *CRUDService[T, I, P]) Delete(ctx context.Context, id string) error {
	_, err := s.Remove(ctx, id)
	return err
}

// Remove deletes the record with id and returns what was stored
func (s *CRUDService[T, I, P]) Remove(ctx context.Context, id string) (T, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "tourism."+s.kind, "delete",
		telemetry.SpanAttrEntity, s.entity,
		telemetry.SpanAttrRecordID, id)
	defer span.End()

	record, ok := s.repo.Remove(id)
	if !ok {
		telemetry.SetAttributes(span, telemetry.SpanAttrFound, false)
		return record, s.notFound
	}
	s.opts.metrics.RecordDeleted(ctx, s.entity)
	s.opts.log(ctx).Info("Record deleted", zap.String("entity", s.entity), zap.String("id", id))
	return record, nil
}
