//go:build linux

package xproc

import "golang.org/x/sys/unix"

// gettid 是 unix.Gettid 的包级变量，支持测试中 mock。
var gettid = unix.Gettid

// ThreadID 返回当前 goroutine 此刻所在的 OS 线程 ID。
//
// goroutine 可能在两次调用之间被调度到其他线程，结果只代表调用瞬间。
func ThreadID() int {
	return gettid()
}
