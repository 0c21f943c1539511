package xmetrics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultInstrumentationName = "github.com/omeyang/xpathconf"
	unknownValue               = "unknown"

	metricOperationTotal    = "xpathconf.operation.total"
	metricOperationDuration = "xpathconf.operation.duration"

	keyComponent = attribute.Key("component")
	keyOperation = attribute.Key("operation")
	keyStatus    = attribute.Key("status")
	keyErrorType = attribute.Key("error.type")
)

// error.type 取值。errno 以其描述文本作为取值，基数有限。
const (
	errorTypeCanceled = "canceled"
	errorTypeDeadline = "deadline_exceeded"
	errorTypeOther    = "other"
)

type otelConfig struct {
	name   string
	tracer trace.TracerProvider
	meter  metric.MeterProvider
}

// Option 定义 OTel Observer 的配置选项。
type Option func(*otelConfig)

// WithInstrumentationName 设置 instrumentation 名称，空串忽略。
func WithInstrumentationName(name string) Option {
	return func(cfg *otelConfig) {
		if name != "" {
			cfg.name = name
		}
	}
}

// WithTracerProvider 设置 TracerProvider，nil 时使用全局 provider。
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.tracer = provider
		}
	}
}

// WithMeterProvider 设置 MeterProvider，nil 时使用全局 provider。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.meter = provider
		}
	}
}

// NewOTelObserver 创建基于 OpenTelemetry 的 Observer。
//
// 每个跨度产生一个名为 "<component>.<operation>" 的 span，
// 并记录 xpathconf.operation.total 与 xpathconf.operation.duration（秒）。
// 失败时指标额外携带 error.type，errno 取其描述文本。
func NewOTelObserver(opts ...Option) (Observer, error) {
	cfg := otelConfig{
		name:   defaultInstrumentationName,
		tracer: otel.GetTracerProvider(),
		meter:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	m := cfg.meter.Meter(cfg.name)
	obs := &otelObserver{tracer: cfg.tracer.Tracer(cfg.name)}
	var err error
	if obs.total, err = m.Int64Counter(metricOperationTotal,
		metric.WithDescription("pathconf facade operations"),
		metric.WithUnit("{operation}"),
	); err != nil {
		return nil, fmt.Errorf("xmetrics: create %s: %w", metricOperationTotal, err)
	}
	if obs.duration, err = m.Float64Histogram(metricOperationDuration,
		metric.WithDescription("pathconf facade operation latency"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("xmetrics: create %s: %w", metricOperationDuration, err)
	}
	return obs, nil
}

type otelObserver struct {
	tracer   trace.Tracer
	total    metric.Int64Counter
	duration metric.Float64Histogram
}

func (o *otelObserver) Start(ctx context.Context, opts SpanOptions) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	base := []attribute.KeyValue{
		keyComponent.String(orUnknown(opts.Component)),
		keyOperation.String(orUnknown(opts.Operation)),
	}

	spanName := base[0].Value.AsString() + "." + base[1].Value.AsString()
	ctx, span := o.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(append(base, convertAttrs(opts.Attrs)...)...),
	)
	return ctx, &otelSpan{
		observer: o,
		span:     span,
		ctx:      context.WithoutCancel(ctx),
		base:     base,
		start:    time.Now(),
	}
}

type otelSpan struct {
	observer *otelObserver
	span     trace.Span
	// 调用方 ctx 取消后仍需记录指标。
	ctx   context.Context
	base  []attribute.KeyValue
	start time.Time
	once  sync.Once
}

// End 结束观测并记录指标，多次调用只记录一次。
func (s *otelSpan) End(result Result) {
	s.once.Do(func() {
		elapsed := time.Since(s.start).Seconds()
		status := resolveStatus(result)

		if result.Err != nil {
			s.span.RecordError(result.Err)
		}
		s.span.SetStatus(spanStatus(status, result.Err))
		if kvs := convertAttrs(result.Attrs); len(kvs) > 0 {
			s.span.SetAttributes(kvs...)
		}
		s.span.End()

		labels := append(s.base[:len(s.base):len(s.base)], keyStatus.String(string(status)))
		if status == StatusError {
			labels = append(labels, keyErrorType.String(errorType(result.Err)))
		}
		set := metric.WithAttributeSet(attribute.NewSet(labels...))
		s.observer.total.Add(s.ctx, 1, set)
		s.observer.duration.Record(s.ctx, elapsed, set)
	})
}

func spanStatus(status Status, err error) (codes.Code, string) {
	if status != StatusError {
		return codes.Ok, ""
	}
	if err != nil {
		return codes.Error, err.Error()
	}
	return codes.Error, "operation failed"
}

// errorType 将错误归类为低基数的 error.type 取值。
func errorType(err error) string {
	var errno syscall.Errno
	switch {
	case err == nil:
		return errorTypeOther
	case errors.Is(err, context.Canceled):
		return errorTypeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return errorTypeDeadline
	case errors.As(err, &errno):
		return errno.Error()
	default:
		return errorTypeOther
	}
}

func orUnknown(s string) string {
	if s == "" {
		return unknownValue
	}
	return s
}

// convertAttrs 转换属性，忽略空 key 与 nil 值。
func convertAttrs(attrs []Attr) []attribute.KeyValue {
	var out []attribute.KeyValue
	for _, a := range attrs {
		if a.Key == "" || a.Value == nil {
			continue
		}
		out = append(out, a.keyValue())
	}
	return out
}

func (a Attr) keyValue() attribute.KeyValue {
	key := attribute.Key(a.Key)
	switch v := a.Value.(type) {
	case string:
		return key.String(v)
	case bool:
		return key.Bool(v)
	case int:
		return key.Int(v)
	case int64:
		return key.Int64(v)
	case float64:
		return key.Float64(v)
	case time.Duration:
		return key.Int64(v.Nanoseconds())
	case fmt.Stringer:
		return key.String(v.String())
	default:
		return key.String(fmt.Sprint(v))
	}
}
