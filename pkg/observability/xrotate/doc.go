// Package xrotate 提供按大小轮转的日志文件输出，基于 lumberjack v2。
//
// [Rotator] 是 io.WriteCloser 的超集，额外提供 Rotate 手动轮转，所有实现并发安全。
//
// # 文件权限
//
// lumberjack 以 0600 创建日志文件。WithFileMode 在首次写入、累计写满一个文件
// 以及手动轮转后，通过 xposix 的 stat/chmod 调整权限。
// 权限检查使用 Try 形式：普通形式会通知 xdual Observer，而 Observer
// 可能正把日志写入同一个 Rotator。
package xrotate
