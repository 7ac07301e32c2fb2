package telemetry

import (
	"context"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := NewProfiler(ProfilerConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_RequiresAddressAndName(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "tourdesk"}, zap.NewNop())
	assert.ErrorContains(t, err, "server address")

	_, err = NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, zap.NewNop())
	assert.ErrorContains(t, err, "application name")
}

func TestSanitizeLabels(t *testing.T) {
	pairs := sanitizeLabels(map[string]string{
		"Operation":  "export",
		"entity":     "tours",
		"request_id": "abc",
		"empty":      "",
		"Big-Key":    strings.Repeat("x", MaxLabelValueLength+10),
		"!!!":        "dropped",
	})

	require.Len(t, pairs, 6)
	assert.Equal(t, []string{"big_key", "operation", "export", "entity", "tours"}, []string{pairs[0], pairs[2], pairs[3], pairs[4], pairs[5]})
	assert.Len(t, pairs[1], MaxLabelValueLength)
	assert.Nil(t, sanitizeLabels(nil))
}

func TestWithProfilingLabels(t *testing.T) {
	var got string
	WithProfilingLabels(context.Background(), OperationLabels("export", map[string]string{"entity": "tours"}), func(ctx context.Context) {
		got, _ = pprof.Label(ctx, ProfilingLabelOperation)
	})
	assert.Equal(t, "export", got)

	called := false
	WithProfilingLabels(context.Background(), nil, func(context.Context) { called = true })
	assert.True(t, called)
}

func TestHTTPRequestLabels(t *testing.T) {
	assert.Equal(t, map[string]string{"route": "/api/v1/tours", "method": "GET"}, HTTPRequestLabels("/api/v1/tours", "GET"))
	assert.Empty(t, HTTPRequestLabels("", ""))
}
