package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourdesk/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
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

func TestStartServiceSpan(t *testing.T) {
	recorder := withRecorder(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "tour", "create",
		telemetry.SpanAttrEntity, "tours",
		telemetry.SpanAttrCount, 3,
		42, "ignored",
	)
	telemetry.SetAttributes(span, telemetry.SpanAttrFound, true)
	telemetry.AddEvent(span, "stored", telemetry.SpanAttrRecordID, "abc")
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	got := ended[0]
	assert.Equal(t, "tour.create", got.Name())
	assert.Contains(t, got.Attributes(), attribute.String(telemetry.SpanAttrEntity, "tours"))
	assert.Contains(t, got.Attributes(), attribute.Int(telemetry.SpanAttrCount, 3))
	assert.Contains(t, got.Attributes(), attribute.Bool(telemetry.SpanAttrFound, true))
	require.Len(t, got.Events(), 1)
	assert.Equal(t, "stored", got.Events()[0].Name)
}

func TestRecordError(t *testing.T) {
	recorder := withRecorder(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "file", "upload")
	telemetry.RecordError(span, errors.New("disk full"))
	telemetry.RecordError(span, nil)
	telemetry.RecordError(nil, errors.New("ignored"))
	span.End()

	got := recorder.Ended()[0]
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Equal(t, "disk full", got.Status().Description)
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))

	tp.EnableSpanProfiles()
	assert.False(t, tp.SpanProfilesEnabled())
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(context.Background()))
}
