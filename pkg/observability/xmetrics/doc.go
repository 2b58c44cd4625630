// Package xmetrics 把系统调用失败上报到 OpenTelemetry。
//
// [FailureObserver] 实现 xdual.Observer：每个经普通形式返回的
// *xerrno.SystemError 使计数器 xoskit.os.failures 加一，
// 属性为 operation（如 "xposix.Open"）、errno（如 "ENOENT"）和 category。
// 配置了 TracerProvider 时，每次失败还会生成一个状态为 Error 的瞬时 span。
//
//	obs, err := xmetrics.NewFailureObserver(xmetrics.WithMeterProvider(mp))
//	if err != nil {
//		return err
//	}
//	xdual.SetObserver(obs)
package xmetrics
