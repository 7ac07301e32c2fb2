package telemetry

import (
	"context"
	"errors"

	"github.com/tourdesk/backend/internal/domain/tourism"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when no meter is supplied.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// StatsProvider exposes the store figures the observable gauges report.
type StatsProvider interface {
	DashboardStats() tourism.DashboardStats
	Counts() map[string]int
}

// TourismMetrics records record churn, exports and uploads, and publishes
// dashboard figures as observable gauges read on each collection.
type TourismMetrics struct {
	logger *zap.Logger

	recordsCreated *Counter
	recordsUpdated *Counter
	recordsDeleted *Counter
	exports        *Counter
	uploadedBytes  *Counter

	registration metric.Registration
}

// TourismMetricsConfig configures NewTourismMetrics.
type TourismMetricsConfig struct {
	Meter    metric.Meter
	Logger   *zap.Logger
	Provider StatsProvider
}

// NewTourismMetrics creates the instruments. With a nil Provider the gauges
// are not registered.
func NewTourismMetrics(cfg TourismMetricsConfig) (*TourismMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tm := &TourismMetrics{logger: logger}

	var err error
	if tm.recordsCreated, err = NewCounter(cfg.Meter, "tourdesk_records_created_total",
		"Total number of records created", "{records}"); err != nil {
		return nil, err
	}
	if tm.recordsUpdated, err = NewCounter(cfg.Meter, "tourdesk_records_updated_total",
		"Total number of records updated", "{records}"); err != nil {
		return nil, err
	}
	if tm.recordsDeleted, err = NewCounter(cfg.Meter, "tourdesk_records_deleted_total",
		"Total number of records deleted", "{records}"); err != nil {
		return nil, err
	}
	if tm.exports, err = NewCounter(cfg.Meter, "tourdesk_exports_total",
		"Total number of export requests", "{exports}"); err != nil {
		return nil, err
	}
	if tm.uploadedBytes, err = NewCounter(cfg.Meter, "tourdesk_file_upload_bytes_total",
		"Total bytes of uploaded file content", "By"); err != nil {
		return nil, err
	}

	if cfg.Provider != nil {
		if err := tm.registerGauges(cfg.Meter, cfg.Provider); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

func (tm *TourismMetrics) registerGauges(meter metric.Meter, provider StatsProvider) error {
	records, err := meter.Int64ObservableGauge("tourdesk_records",
		metric.WithDescription("Current number of stored records"),
		metric.WithUnit("{records}"))
	if err != nil {
		return err
	}
	activeTours, err := meter.Int64ObservableGauge("tourdesk_active_tours",
		metric.WithDescription("Tours whose status is active"),
		metric.WithUnit("{tours}"))
	if err != nil {
		return err
	}
	revenue, err := meter.Float64ObservableGauge("tourdesk_total_revenue",
		metric.WithDescription("Sum of income transaction amounts"))
	if err != nil {
		return err
	}
	netProfit, err := meter.Float64ObservableGauge("tourdesk_net_profit",
		metric.WithDescription("Income minus expenses"))
	if err != nil {
		return err
	}

	tm.registration, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		for entity, n := range provider.Counts() {
			o.ObserveInt64(records, int64(n), metric.WithAttributes(AttrEntity.String(entity)))
		}
		stats := provider.DashboardStats()
		o.ObserveInt64(activeTours, int64(stats.ActiveTours))
		o.ObserveFloat64(revenue, stats.TotalRevenue.InexactFloat64())
		o.ObserveFloat64(netProfit, stats.NetProfit.InexactFloat64())
		return nil
	}, records, activeTours, revenue, netProfit)
	return err
}

// RecordCreated counts a new record of the given entity kind
func (tm *TourismMetrics) RecordCreated(ctx context.Context, entity string) {
	tm.recordsCreated.Inc(ctx, AttrEntity.String(entity))
}

// RecordUpdated counts a successful update
func (tm *TourismMetrics) RecordUpdated(ctx context.Context, entity string) {
	tm.recordsUpdated.Inc(ctx, AttrEntity.String(entity))
}

// RecordDeleted counts a successful delete
func (tm *TourismMetrics) RecordDeleted(ctx context.Context, entity string) {
	tm.recordsDeleted.Inc(ctx, AttrEntity.String(entity))
}

// RecordExport counts an export request by entity and format
func (tm *TourismMetrics) RecordExport(ctx context.Context, entity, format string) {
	tm.exports.Inc(ctx, AttrEntity.String(entity), AttrFormat.String(format))
}

// RecordUpload adds size bytes under the file's category
func (tm *TourismMetrics) RecordUpload(ctx context.Context, category string, size int64) {
	tm.uploadedBytes.Add(ctx, size, AttrCategory.String(category))
}

// Stop unregisters the gauge callback
func (tm *TourismMetrics) Stop() {
	if tm.registration == nil {
		return
	}
	if err := tm.registration.Unregister(); err != nil {
		tm.logger.Warn("Failed to unregister tourism gauges", zap.Error(err))
	}
	tm.registration = nil
}
