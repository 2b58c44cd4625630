// Package xproc 提供进程与执行流标识工具。
//
// # 功能概览
//
//   - [ProcessID]: 当前进程 ID
//   - [ProcessName]: 当前进程名称（首次调用后缓存）
//   - [GoroutineID]: 当前 goroutine ID（仅用于诊断）
//   - [ThreadID]: 当前 OS 线程 ID（Linux 通过 gettid，其他平台返回 0）
//
// GoroutineID 和 ThreadID 被 xerrno 用来在 SystemError 中记录出错的执行流。
package xproc
