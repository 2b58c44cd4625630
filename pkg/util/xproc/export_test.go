package xproc

import "sync"

// ResetProcessName 清除进程名缓存。
func ResetProcessName() {
	processName = sync.OnceValue(resolveProcessName)
}
