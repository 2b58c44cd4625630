//go:build unix

package xsys

import (
	"sync"

	"golang.org/x/sys/unix"

	"github.com/omeyang/xoskit/pkg/errors/xdual"
	"github.com/omeyang/xoskit/pkg/errors/xerrno"
)

// 系统调用函数变量，支持测试中 mock 替换以覆盖错误路径。
// 注意：mock 测试不可使用 t.Parallel()，因为替换包级变量会引发竞态。
var (
	getrlimit = unix.Getrlimit
	setrlimit = unix.Setrlimit
)

// fileLimitMu 保护 TrySetFileLimit 的 getrlimit→setrlimit 读改写序列，
// 避免进程内并发调用导致互相覆盖。
var fileLimitMu sync.Mutex

// TrySetFileLimit 把 RLIMIT_NOFILE 的 soft limit 设为 limit。
//
// 仅在 hard limit 不足时提升 hard limit（需要 CAP_SYS_RESOURCE）；
// 不会降低 hard limit，因为非特权进程无法再提升回来。
// limit 为 0 时以 EINVAL 失败。并发安全。
func TrySetFileLimit(limit uint64, ec *xerrno.Code) {
	xdual.Enter(ec)
	if !validFileLimit(limit) {
		*ec = xerrno.Make(int(unix.EINVAL))
		return
	}

	fileLimitMu.Lock()
	defer fileLimitMu.Unlock()

	var rlimit unix.Rlimit
	if err := getrlimit(unix.RLIMIT_NOFILE, &rlimit); err != nil {
		*ec = xerrno.FromError(err)
		return
	}

	rlimit.Cur = limit
	if rlimit.Max < limit {
		rlimit.Max = limit
	}

	if err := setrlimit(unix.RLIMIT_NOFILE, &rlimit); err != nil {
		*ec = xerrno.FromError(err)
	}
}

// SetFileLimit 是 [TrySetFileLimit] 的普通形式。
// limit 为 0 时返回错误码为 EINVAL 的 SystemError，可用 [ErrInvalidFileLimit] 匹配。
func SetFileLimit(limit uint64) error {
	return xdual.Exec(func(ec *xerrno.Code) {
		TrySetFileLimit(limit, ec)
	}, "error setting file limit: [", limit, "]")
}

// TryGetFileLimit 返回 RLIMIT_NOFILE 的 soft 与 hard limit，失败时均为 0。
func TryGetFileLimit(ec *xerrno.Code) (soft, hard uint64) {
	xdual.Enter(ec)
	var rlimit unix.Rlimit
	if err := getrlimit(unix.RLIMIT_NOFILE, &rlimit); err != nil {
		*ec = xerrno.FromError(err)
		return 0, 0
	}
	return rlimit.Cur, rlimit.Max
}

// GetFileLimit 是 [TryGetFileLimit] 的普通形式。
func GetFileLimit() (soft, hard uint64, err error) {
	lim, err := xdual.Call(func(ec *xerrno.Code) [2]uint64 {
		s, h := TryGetFileLimit(ec)
		return [2]uint64{s, h}
	}, "error getting file limit")
	return lim[0], lim[1], err
}
