// Package xsys 以双形式约定管理进程资源限制。
//
// # 功能概览
//
//   - [TryGetFileLimit] / [GetFileLimit]: 查询最大打开文件数（RLIMIT_NOFILE）
//   - [TrySetFileLimit] / [SetFileLimit]: 设置最大打开文件数
//
// # 平台支持
//
// 非 Unix 平台上两种形式都以 ENOSYS 失败，可用 [ErrUnsupportedPlatform] 匹配。
// limit 为 0 时在所有平台上都以 EINVAL 失败。
package xsys
