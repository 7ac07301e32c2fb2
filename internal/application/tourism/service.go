// Package tourism holds the use cases behind the REST API: record CRUD,
// dashboard figures, export stubs and file upload orchestration.
package tourism

import (
	"context"
	"time"

	"github.com/tourdesk/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Metrics receives business counters. telemetry.TourismMetrics implements it.
type Metrics interface {
	RecordCreated(ctx context.Context, entity string)
	RecordUpdated(ctx context.Context, entity string)
	RecordDeleted(ctx context.Context, entity string)
	RecordExport(ctx context.Context, entity, format string)
	RecordUpload(ctx context.Context, category string, size int64)
}

type nopMetrics struct{}

func (nopMetrics) RecordCreated(context.Context, string)        {}
func (nopMetrics) RecordUpdated(context.Context, string)        {}
func (nopMetrics) RecordDeleted(context.Context, string)        {}
func (nopMetrics) RecordExport(context.Context, string, string) {}
func (nopMetrics) RecordUpload(context.Context, string, int64)  {}

type serviceOptions struct {
	metrics Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures a service.
type Option func(*serviceOptions)

// WithMetrics sets the metrics sink
func WithMetrics(m Metrics) Option {
	return func(o *serviceOptions) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithLogger sets the fallback logger used when the request context carries none
func WithLogger(l *zap.Logger) Option {
	return func(o *serviceOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(o *serviceOptions) {
		if now != nil {
			o.now = now
		}
	}
}

func newServiceOptions(opts []Option) serviceOptions {
	o := serviceOptions{
		metrics: nopMetrics{},
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// log returns the request logger, or the service logger outside a request
func (o serviceOptions) log(ctx context.Context) *logger.ContextLogger {
	return logger.L(logger.WithContext(ctx, logger.FromContextOr(ctx, o.logger)))
}
