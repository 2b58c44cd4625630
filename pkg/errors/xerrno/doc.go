// Package xerrno 把操作系统错误转换为可比较的错误码，并提供携带出错上下文的错误类型。
//
// # 错误码
//
// [Code] 是 (数值, [Category]) 二元组，零值表示"无错误"：
//
//   - [Make]: 包装一个明确的 errno 数值（适用于直接返回错误号的 API）
//   - [FromError]: 从刚刚失败的系统调用返回的 error 中提取 errno
//
// 两者都是纯转换，不读取也不修改任何全局状态。Go 的系统调用直接返回 errno，
// 调用方必须在失败点立即转换，中间不得插入其他系统调用。
//
// Code 可以直接用 == 比较，也可以通过 [Code.Err] 取得 syscall.Errno 参与 errors.Is：
//
//	ec := xerrno.Make(int(syscall.ENOENT))
//	errors.Is(ec.Err(), fs.ErrNotExist) // true
//
// # 上下文错误
//
// [SystemError] 包装一个非零 Code，并记录出错位置（文件、行号、函数）、
// 出错的 goroutine 与 OS 线程，以及可选的描述消息。
// %v 输出简短消息，%+v 追加完整来源，[SystemError.LogValue] 支持 slog 结构化输出。
//
// SystemError 只用于报告本层无法恢复的 OS 失败，不用于正常控制流。
package xerrno
