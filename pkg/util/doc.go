// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xproc: 进程信息查询，PID、进程名、线程 ID、goroutine ID
//   - xsys: 系统资源限制管理，文件描述符上限
package util
