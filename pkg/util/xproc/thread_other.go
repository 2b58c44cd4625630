//go:build !linux

package xproc

// ThreadID 在非 Linux 平台上返回 0（没有可移植的线程 ID 系统调用）。
func ThreadID() int {
	return 0
}
