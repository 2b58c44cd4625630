// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志构建器，基于 log/slog
//   - xmetrics: xdual 失败观察者，输出 OpenTelemetry 指标和 span
//   - xrotate: 日志文件轮转
package observability
