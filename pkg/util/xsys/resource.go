package xsys

import "syscall"

// 普通形式返回 *xerrno.SystemError，其错误码与 Try 形式设置的一致。
// 下列哨兵就是对应的 errno，可直接用 errors.Is 匹配。
var (
	// ErrInvalidFileLimit 表示文件描述符上限为 0（EINVAL）。
	ErrInvalidFileLimit error = syscall.EINVAL

	// ErrUnsupportedPlatform 表示当前平台没有 RLIMIT_NOFILE（ENOSYS）。
	ErrUnsupportedPlatform error = syscall.ENOSYS
)

func validFileLimit(limit uint64) bool {
	return limit > 0
}
