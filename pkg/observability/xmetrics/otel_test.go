package xmetrics

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestObserver(t *testing.T) (Observer, *tracetest.InMemoryExporter, *sdkmetric.ManualReader) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})

	obs, err := NewOTelObserver(
		WithInstrumentationName("xpathconf-test"),
		WithTracerProvider(tp),
		WithMeterProvider(mp),
	)
	require.NoError(t, err)
	return obs, exporter, reader
}

func collectTotal(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	totals := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != metricOperationTotal {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				status, _ := dp.Attributes.Value(attribute.Key("status"))
				totals[status.AsString()] += dp.Value
			}
		}
	}
	return totals
}

func TestNewOTelObserver_Defaults(t *testing.T) {
	obs, err := NewOTelObserver(nil, WithTracerProvider(nil), WithMeterProvider(nil), WithInstrumentationName(""))
	require.NoError(t, err)
	require.NotNil(t, obs)
}

func TestOTelObserver_SpanAndMetrics(t *testing.T) {
	obs, exporter, reader := newTestObserver(t)

	_, span := obs.Start(context.Background(), SpanOptions{
		Component: "xpathconf",
		Operation: "pathconf",
		Attrs:     []Attr{String("path", "/tmp"), Int("name", 3), {Key: "", Value: "dropped"}},
	})
	span.End(Result{Attrs: []Attr{Int64("value", 255), {Key: "d", Value: time.Second}}})
	span.End(Result{}) // 幂等

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "xpathconf.pathconf", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range spans[0].Attributes {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "xpathconf", attrs["component"].AsString())
	assert.Equal(t, "/tmp", attrs["path"].AsString())
	assert.Equal(t, int64(3), attrs["name"].AsInt64())
	assert.Equal(t, int64(255), attrs["value"].AsInt64())
	assert.Equal(t, time.Second.Nanoseconds(), attrs["d"].AsInt64())

	assert.Equal(t, map[string]int64{"ok": 1}, collectTotal(t, reader))
}

func TestOTelObserver_ErrorResult(t *testing.T) {
	obs, exporter, reader := newTestObserver(t)

	ctx, cancel := context.WithCancel(context.Background())
	_, span := obs.Start(ctx, SpanOptions{})
	cancel()
	span.End(Result{Err: errors.New("enoent")})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "unknown.unknown", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "enoent", spans[0].Status.Description)

	// ctx 已取消，指标仍需记录。
	assert.Equal(t, map[string]int64{"error": 1}, collectTotal(t, reader))
}

func TestErrorType(t *testing.T) {
	wrapped := fmt.Errorf("pathconf: %w", syscall.ENOENT)
	assert.Equal(t, syscall.ENOENT.Error(), errorType(wrapped))
	assert.Equal(t, errorTypeCanceled, errorType(context.Canceled))
	assert.Equal(t, errorTypeDeadline, errorType(fmt.Errorf("wait: %w", context.DeadlineExceeded)))
	assert.Equal(t, errorTypeOther, errorType(errors.New("x")))
	assert.Equal(t, errorTypeOther, errorType(nil))
}

func TestOTelObserver_ErrnoMetricLabel(t *testing.T) {
	obs, _, reader := newTestObserver(t)

	_, span := obs.Start(context.Background(), SpanOptions{Component: "xpathconf", Operation: "pathconf"})
	span.End(Result{Err: fmt.Errorf("query: %w", syscall.EACCES)})

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var found bool
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != metricOperationTotal {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			require.Len(t, sum.DataPoints, 1)
			v, ok := sum.DataPoints[0].Attributes.Value(keyErrorType)
			require.True(t, ok)
			assert.Equal(t, syscall.EACCES.Error(), v.AsString())
			found = true
		}
	}
	assert.True(t, found)
}

func TestOTelObserver_ExplicitErrorStatus(t *testing.T) {
	obs, exporter, _ := newTestObserver(t)

	_, span := obs.Start(context.Background(), SpanOptions{Operation: "op"})
	span.End(Result{Status: StatusError})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "operation failed", spans[0].Status.Description)
}
