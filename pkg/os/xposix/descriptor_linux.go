package xposix

import (
	"golang.org/x/sys/unix"

	"github.com/omeyang/xoskit/pkg/errors/xdual"
	"github.com/omeyang/xoskit/pkg/errors/xerrno"
)

var (
	sysFdatasync = unix.Fdatasync
	sysReadv     = unix.Readv
	sysWritev    = unix.Writev
	sysPreadv    = unix.Preadv
	sysPwritev   = unix.Pwritev
)

// TryFdatasync 只刷数据，不刷与读取无关的元数据。
func TryFdatasync(fd *FD, ec *xerrno.Code) {
	mustFD(fd)
	xdual.Enter(ec)
	if err := sysFdatasync(fd.Get()); err != nil {
		*ec = xerrno.FromError(err)
	}
}

// Fdatasync 是 [TryFdatasync] 的普通形式。
func Fdatasync(fd *FD) error {
	return xdual.Exec(func(ec *xerrno.Code) {
		TryFdatasync(fd, ec)
	}, "error syncing data of file descriptor: [", fd, "]")
}

// TryReadv 把 fd 中的数据依次读入 iovs。
func TryReadv(fd *FD, iovs [][]byte, ec *xerrno.Code) int {
	mustFD(fd)
	xdual.Enter(ec)
	n, err := sysReadv(fd.Get(), iovs)
	if err != nil {
		*ec = xerrno.FromError(err)
		return -1
	}
	return n
}

// Readv 是 [TryReadv] 的普通形式。
func Readv(fd *FD, iovs [][]byte) (int, error) {
	return xdual.Call(func(ec *xerrno.Code) int {
		return TryReadv(fd, iovs, ec)
	}, "error reading vector from file descriptor: [", fd, "], iovcnt: [", len(iovs), "]")
}

// TryWritev 把 iovs 依次写入 fd。
func TryWritev(fd *FD, iovs [][]byte, ec *xerrno.Code) int {
	mustFD(fd)
	xdual.Enter(ec)
	n, err := sysWritev(fd.Get(), iovs)
	if err != nil {
		*ec = xerrno.FromError(err)
		return -1
	}
	return n
}

// Writev 是 [TryWritev] 的普通形式。
func Writev(fd *FD, iovs [][]byte) (int, error) {
	return xdual.Call(func(ec *xerrno.Code) int {
		return TryWritev(fd, iovs, ec)
	}, "error writing vector to file descriptor: [", fd, "], iovcnt: [", len(iovs), "]")
}

// TryPreadv 从 offset 处读入 iovs，不改变文件偏移。
func TryPreadv(fd *FD, iovs [][]byte, offset int64, ec *xerrno.Code) int {
	mustFD(fd)
	xdual.Enter(ec)
	n, err := sysPreadv(fd.Get(), iovs, offset)
	if err != nil {
		*ec = xerrno.FromError(err)
		return -1
	}
	return n
}

// Preadv 是 [TryPreadv] 的普通形式。
func Preadv(fd *FD, iovs [][]byte, offset int64) (int, error) {
	return xdual.Call(func(ec *xerrno.Code) int {
		return TryPreadv(fd, iovs, offset, ec)
	}, "error reading vector from file descriptor: [", fd, "], iovcnt: [", len(iovs), "], offset: [", offset, "]")
}

// TryPwritev 把 iovs 写入 offset 处，不改变文件偏移。
func TryPwritev(fd *FD, iovs [][]byte, offset int64, ec *xerrno.Code) int {
	mustFD(fd)
	xdual.Enter(ec)
	n, err := sysPwritev(fd.Get(), iovs, offset)
	if err != nil {
		*ec = xerrno.FromError(err)
		return -1
	}
	return n
}

// Pwritev 是 [TryPwritev] 的普通形式。
func Pwritev(fd *FD, iovs [][]byte, offset int64) (int, error) {
	return xdual.Call(func(ec *xerrno.Code) int {
		return TryPwritev(fd, iovs, offset, ec)
	}, "error writing vector to file descriptor: [", fd, "], iovcnt: [", len(iovs), "], offset: [", offset, "]")
}
