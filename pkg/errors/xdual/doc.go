// Package xdual 实现"双形式 API"约定：每个可能在 OS 边界失败的操作同时提供
// 不返回 error 的 Try 形式和返回 *xerrno.SystemError 的普通形式。
//
// # 约定
//
// Try 形式 TryXxx(args..., ec *xerrno.Code) R：
//
//   - 入口处 ec 必须为零值，由 [Enter] 检查，违反时 panic（契约违反，不可恢复）
//   - 只执行一次底层系统调用
//   - 失败时立即用 xerrno.FromError 设置 *ec，返回哨兵结果（如空句柄、-1）
//   - 成功时返回真实结果，*ec 保持零值
//
// 普通形式 Xxx(args...) (R, error) 由 [Call] / [Exec] 从 Try 形式派生：
//
//	func Open(path string, flags int, mode uint32) (*FD, error) {
//		return xdual.Call(func(ec *xerrno.Code) *FD {
//			return TryOpen(path, flags, mode, ec)
//		}, "error opening file: [", path, "], flags: [", xdiag.Hex(flags), "]")
//	}
//
// 消息参数只在失败时交给 xdiag.Join 格式化，成功路径没有格式化开销。
// 返回的 SystemError 记录普通形式（Call 的调用方）的文件、行号与函数名。
//
// # 查找类操作
//
// "未找到"不是错误。[CallFound] 让 Try 形式额外返回 found 布尔值，
// 与错误码分开报告。
//
// # 观测
//
// [SetObserver] 安装的 [Observer] 会在普通形式失败时收到 SystemError，
// 用于日志（[LogObserver]）或指标（xmetrics）。Try 形式从不通知 Observer。
package xdual
