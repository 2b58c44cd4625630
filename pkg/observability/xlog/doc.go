// Package xlog 基于 log/slog 构建日志实例。
//
// Builder 统一处理级别、输出格式、文件轮转（xrotate）和固定属性：
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetRotation("/var/log/app.log", xrotate.WithMaxSize(50)).
//		SetProcessAttrs().
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
// 默认启用 [EnrichHandler]，从 context 中的 OpenTelemetry span 注入
// trace_id 和 span_id。
//
// slog.Logger 会丢弃 Handler 返回的错误；通过 SetOnError 可以接收这些错误，
// 回调内部再次失败不会递归。
package xlog
