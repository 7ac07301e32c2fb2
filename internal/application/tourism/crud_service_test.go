package tourism

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tourdesk/backend/internal/domain/tourism"
	"github.com/tourdesk/backend/internal/infrastructure/persistence/memory"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func ptr[V any](v V) *V { return &v }

func withSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func spanNames(recorder *tracetest.SpanRecorder) []string {
	var names []string
	for _, s := range recorder.Ended() {
		names = append(names, s.Name())
	}
	return names
}

func tourInput(name string) tourism.TourInput {
	return tourism.TourInput{
		Name:      name,
		Location:  "Porto",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-03",
		Capacity:  12,
		Price:     decimal.RequireFromString("199.90"),
	}
}

func TestCRUDService_Lifecycle(t *testing.T) {
	recorder := withSpanRecorder(t)
	metrics := new(MockMetrics)
	metrics.On("RecordCreated", mock.Anything, "tours").Once()
	metrics.On("RecordUpdated", mock.Anything, "tours").Once()
	metrics.On("RecordDeleted", mock.Anything, "tours").Once()

	core, logs := observer.New(zapcore.InfoLevel)
	svc := NewTourService(memory.NewStore().Tours, WithMetrics(metrics), WithLogger(zap.New(core)))
	ctx := context.Background()

	created := svc.Create(ctx, tourInput("Douro Valley"))
	assert.Equal(t, tourism.TourStatusActive, created.Status)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := svc.Update(ctx, created.ID, tourism.TourPatch{Capacity: ptr(20)})
	require.NoError(t, err)
	assert.Equal(t, 20, updated.Capacity)
	assert.Equal(t, created.Name, updated.Name)

	assert.Len(t, svc.List(ctx), 1)
	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, svc.List(ctx))

	metrics.AssertExpectations(t)
	assert.Equal(t, []string{
		"tourism.tour.create",
		"tourism.tour.get",
		"tourism.tour.update",
		"tourism.tour.list",
		"tourism.tour.delete",
		"tourism.tour.list",
	}, spanNames(recorder))
	assert.Equal(t, 3, logs.FilterField(zap.String("entity", "tours")).Len())
}

func TestCRUDService_NotFound(t *testing.T) {
	metrics := new(MockMetrics)
	svc := NewTouristService(memory.NewStore().Tourists, WithMetrics(metrics))
	ctx := context.Background()

	_, err := svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, tourism.ErrTouristNotFound)

	_, err = svc.Update(ctx, "missing", tourism.TouristPatch{Name: ptr("x")})
	assert.ErrorIs(t, err, tourism.ErrTouristNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "missing"), tourism.ErrTouristNotFound)
	metrics.AssertNotCalled(t, "RecordUpdated", mock.Anything, mock.Anything)
	metrics.AssertNotCalled(t, "RecordDeleted", mock.Anything, mock.Anything)
}

func TestCRUDService_RemoveReturnsDeletedRecord(t *testing.T) {
	svc := NewTransactionService(memory.NewStore().Transactions)
	ctx := context.Background()
	created := svc.Create(ctx, tourism.TransactionInput{
		Type:     tourism.TransactionTypeIncome,
		Category: "booking",
		Amount:   decimal.RequireFromString("99.90"),
		Date:     "2025-06-01",
		TourID:   ptr("tour-1"),
	})

	removed, err := svc.Remove(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, removed)

	_, err = svc.Remove(ctx, created.ID)
	assert.ErrorIs(t, err, tourism.ErrTransactionNotFound)
}

func TestCRUDService_Entity(t *testing.T) {
	store := memory.NewStore()
	assert.Equal(t, "tours", NewTourService(store.Tours).Entity())
	assert.Equal(t, "tourists", NewTouristService(store.Tourists).Entity())
	assert.Equal(t, "transactions", NewTransactionService(store.Transactions).Entity())
}

func TestDashboardService_Stats(t *testing.T) {
	store := memory.NewStore()
	store.Tours.Create(tourInput("a"))
	store.Transactions.Create(tourism.TransactionInput{
		Type:   tourism.TransactionTypeIncome,
		Amount: decimal.RequireFromString("10.25"),
		Date:   "2025-01-01",
	})

	stats := NewDashboardService(store).Stats(context.Background())
	assert.Equal(t, 1, stats.ActiveTours)
	assert.Equal(t, "10.25", stats.TotalRevenue.StringFixed(2))
	assert.Equal(t, "10.25", stats.NetProfit.StringFixed(2))
}
