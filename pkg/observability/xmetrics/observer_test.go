package xmetrics

import (
	"context"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/goleak"

	"github.com/omeyang/xoskit/pkg/errors/xerrno"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestObserver(t *testing.T, opts ...Option) (*FailureObserver, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	obs, err := NewFailureObserver(append([]Option{WithMeterProvider(mp)}, opts...)...)
	require.NoError(t, err)
	return obs, reader
}

// collectFailures 返回 xoskit.os.failures 的所有数据点。
func collectFailures(t *testing.T, reader *sdkmetric.ManualReader) []metricdata.DataPoint[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != MetricFailures {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "unexpected data type %T", m.Data)
			assert.True(t, sum.IsMonotonic)
			return sum.DataPoints
		}
	}
	return nil
}

func attrValue(t *testing.T, set attribute.Set, key string) string {
	t.Helper()
	v, ok := set.Value(attribute.Key(key))
	require.True(t, ok, "missing attribute %s", key)
	return v.AsString()
}

func newFailure(fn string, errno syscall.Errno) *xerrno.SystemError {
	return xerrno.New(xerrno.Make(int(errno)),
		xerrno.WithMessage("error opening file: [/x]"),
		xerrno.WithLocation("/src/xposix/descriptor.go", 42, fn),
	)
}

func TestFailed_CountsByOperationAndErrno(t *testing.T) {
	obs, reader := newTestObserver(t)

	obs.Failed(newFailure("github.com/omeyang/xoskit/pkg/os/xposix.Open", syscall.ENOENT))
	obs.Failed(newFailure("github.com/omeyang/xoskit/pkg/os/xposix.Open", syscall.ENOENT))
	obs.Failed(newFailure("github.com/omeyang/xoskit/pkg/os/xposix.Dup", syscall.EBADF))

	points := collectFailures(t, reader)
	require.Len(t, points, 2)

	got := map[string]int64{}
	for _, dp := range points {
		key := attrValue(t, dp.Attributes, AttrOperation) + "/" + attrValue(t, dp.Attributes, AttrErrno)
		assert.Equal(t, "system", attrValue(t, dp.Attributes, AttrCategory))
		got[key] = dp.Value
	}
	assert.Equal(t, map[string]int64{
		"xposix.Open/ENOENT": 2,
		"xposix.Dup/EBADF":   1,
	}, got)
}

func TestFailed_GenericCategory(t *testing.T) {
	obs, reader := newTestObserver(t)

	obs.Failed(xerrno.New(xerrno.MakeCategory(xerrno.GenericUnknown, xerrno.Generic)))

	points := collectFailures(t, reader)
	require.Len(t, points, 1)
	assert.Equal(t, "generic", attrValue(t, points[0].Attributes, AttrCategory))
	assert.Equal(t, "generic 1", attrValue(t, points[0].Attributes, AttrErrno))
}

func TestFailed_NilSafe(t *testing.T) {
	var nilObs *FailureObserver
	assert.NotPanics(t, func() { nilObs.Failed(newFailure("f", syscall.EIO)) })

	obs, reader := newTestObserver(t)
	obs.Failed(nil)
	assert.Empty(t, collectFailures(t, reader))
}

func TestFailed_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	obs, _ := newTestObserver(t, WithTracerProvider(tp))
	obs.Failed(newFailure("github.com/omeyang/xoskit/pkg/os/xposix.Open", syscall.EACCES))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "xposix.Open", span.Name())
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "error opening file: [/x]", span.Status().Description)
	require.Len(t, span.Events(), 1)
	assert.Equal(t, "exception", span.Events()[0].Name)

	attrs := attribute.NewSet(span.Attributes()...)
	assert.Equal(t, "EACCES", attrValue(t, attrs, AttrErrno))
	assert.Equal(t, "/src/xposix/descriptor.go", attrValue(t, attrs, "code.filepath"))
}

func TestNewFailureObserver_Options(t *testing.T) {
	_, err := NewFailureObserver(nil)
	assert.ErrorIs(t, err, ErrNilOption)

	obs, err := NewFailureObserver(WithInstrumentationName(""), WithMeterProvider(nil))
	require.NoError(t, err)
	assert.Nil(t, obs.tracer)
	assert.NotPanics(t, func() { obs.Failed(newFailure("f", syscall.EIO)) })
}

func TestOperationName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "unknown"},
		{"main.run", "main.run"},
		{"github.com/omeyang/xoskit/pkg/os/xposix.Open", "xposix.Open"},
		{"example.com/m.(*T).Method", "m.(*T).Method"},
		{"example.com/pkg/xdual.Call[...]", "xdual.Call"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, operationName(tt.in))
		})
	}
}
