//go:build !unix

package xsys

import (
	"syscall"

	"github.com/omeyang/xoskit/pkg/errors/xdual"
	"github.com/omeyang/xoskit/pkg/errors/xerrno"
)

// TrySetFileLimit 在非 Unix 平台上以 ENOSYS 失败，limit 为 0 时以 EINVAL 失败。
func TrySetFileLimit(limit uint64, ec *xerrno.Code) {
	xdual.Enter(ec)
	if !validFileLimit(limit) {
		*ec = xerrno.Make(int(syscall.EINVAL))
		return
	}
	*ec = xerrno.Make(int(syscall.ENOSYS))
}

// SetFileLimit 是 [TrySetFileLimit] 的普通形式。
// 错误码为 EINVAL 或 ENOSYS，分别可用 [ErrInvalidFileLimit] 与 [ErrUnsupportedPlatform] 匹配。
func SetFileLimit(limit uint64) error {
	return xdual.Exec(func(ec *xerrno.Code) {
		TrySetFileLimit(limit, ec)
	}, "error setting file limit: [", limit, "]")
}

// TryGetFileLimit 在非 Unix 平台上以 ENOSYS 失败。
func TryGetFileLimit(ec *xerrno.Code) (soft, hard uint64) {
	xdual.Enter(ec)
	*ec = xerrno.Make(int(syscall.ENOSYS))
	return 0, 0
}

// GetFileLimit 是 [TryGetFileLimit] 的普通形式，总是返回错误码为 ENOSYS 的 SystemError。
func GetFileLimit() (soft, hard uint64, err error) {
	lim, err := xdual.Call(func(ec *xerrno.Code) [2]uint64 {
		s, h := TryGetFileLimit(ec)
		return [2]uint64{s, h}
	}, "error getting file limit")
	return lim[0], lim[1], err
}
