package xmetrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/omeyang/xoskit/pkg/errors/xerrno"
)

const (
	defaultInstrumentationName = "github.com/omeyang/xoskit/xmetrics"

	// MetricFailures 是失败计数器的名称。
	MetricFailures = "xoskit.os.failures"
)

// FailureObserver 把 SystemError 记录为 OTel 指标，可选记录 span。
type FailureObserver struct {
	failures metric.Int64Counter
	tracer   trace.Tracer
}

// NewFailureObserver 创建 FailureObserver。
func NewFailureObserver(opts ...Option) (*FailureObserver, error) {
	cfg := &config{
		instrumentationName: defaultInstrumentationName,
		meterProvider:       otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		if opt == nil {
			return nil, ErrNilOption
		}
		opt(cfg)
	}

	meter := cfg.meterProvider.Meter(cfg.instrumentationName)
	failures, err := meter.Int64Counter(
		MetricFailures,
		metric.WithDescription("failed os calls raised as system errors"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateCounter, err)
	}

	o := &FailureObserver{failures: failures}
	if cfg.tracerProvider != nil {
		o.tracer = cfg.tracerProvider.Tracer(cfg.instrumentationName)
	}
	return o, nil
}

// Failed 实现 xdual.Observer。
func (o *FailureObserver) Failed(err *xerrno.SystemError) {
	if o == nil || err == nil {
		return
	}
	attrs := failureAttrs(err)
	ctx := context.Background()
	o.failures.Add(ctx, 1, metric.WithAttributes(attrs...))

	if o.tracer == nil {
		return
	}
	_, span := o.tracer.Start(ctx, attrs[0].Value.AsString(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
		trace.WithAttributes(
			attribute.String("code.filepath", err.File()),
			attribute.Int("code.lineno", err.Line()),
			attribute.Int64("thread.id", int64(err.Thread())),
		),
	)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Message())
	span.End()
}
