package xmetrics_test

import (
	"context"
	"fmt"
	"syscall"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/omeyang/xoskit/pkg/errors/xdual"
	"github.com/omeyang/xoskit/pkg/errors/xerrno"
	"github.com/omeyang/xoskit/pkg/observability/xmetrics"
)

func ExampleNewFailureObserver() {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	obs, err := xmetrics.NewFailureObserver(xmetrics.WithMeterProvider(mp))
	if err != nil {
		panic(err)
	}
	prev := xdual.SetObserver(obs)
	defer xdual.SetObserver(prev)

	_ = xdual.Exec(func(ec *xerrno.Code) {
		*ec = xerrno.Make(int(syscall.EPERM))
	}, "error doing something")

	var rm metricdata.ResourceMetrics
	_ = reader.Collect(context.Background(), &rm)
	sum := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	fmt.Println(rm.ScopeMetrics[0].Metrics[0].Name, sum.DataPoints[0].Value)
	// Output: xoskit.os.failures 1
}
