//go:build unix

package xposix

import (
	"io/fs"
	"os"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/omeyang/xoskit/pkg/debug/xdiag"
	"github.com/omeyang/xoskit/pkg/errors/xdual"
	"github.com/omeyang/xoskit/pkg/errors/xerrno"
	"github.com/omeyang/xoskit/pkg/resource/xhandle"
)

var (
	errBadFD       = xerrno.Make(int(unix.EBADF))
	errNotDir      = xerrno.Make(int(unix.ENOTDIR))
	errInvalidArgs = xerrno.Make(int(unix.EINVAL))
)

// rawFD 返回 f 底层的描述符而不改变其阻塞模式（(*os.File).Fd 会切换为阻塞）。
func rawFD(f *os.File) (int, bool) {
	if f == nil {
		return -1, false
	}
	rc, err := f.SyscallConn()
	if err != nil {
		return -1, false
	}
	fd := -1
	if err := rc.Control(func(p uintptr) { fd = int(p) }); err != nil {
		return -1, false
	}
	return fd, true
}

// TryFopen 以 os.OpenFile 语义打开 path，失败时返回空句柄。
func TryFopen(path string, flag int, perm uint32, ec *xerrno.Code) *Stream {
	xdual.Enter(ec)
	f, err := os.OpenFile(path, flag, fs.FileMode(perm))
	if err != nil {
		*ec = xerrno.FromError(err)
		return EmptyStream()
	}
	return NewStream(f)
}

// Fopen 是 [TryFopen] 的普通形式。
func Fopen(path string, flag int, perm uint32) (*Stream, error) {
	return xdual.Call(func(ec *xerrno.Code) *Stream {
		return TryFopen(path, flag, perm, ec)
	}, "error opening file stream: [", path, "], flags: [", xdiag.Hex(flag), "], mode: [", xdiag.Octal(perm), "]")
}

// TryFdopen 把 fd 包装为流。
//
// 成功时流接管描述符，fd 变为空句柄；失败时 fd 保持不变。
func TryFdopen(fd *FD, name string, ec *xerrno.Code) *Stream {
	mustFD(fd)
	xdual.Enter(ec)
	if _, err := sysFcntl(uintptr(fd.Get()), unix.F_GETFL, 0); err != nil {
		*ec = xerrno.FromError(err)
		return EmptyStream()
	}
	return NewStream(os.NewFile(uintptr(fd.Release()), name))
}

// Fdopen 是 [TryFdopen] 的普通形式。
func Fdopen(fd *FD, name string) (*Stream, error) {
	return xdual.Call(func(ec *xerrno.Code) *Stream {
		return TryFdopen(fd, name, ec)
	}, "error opening stream from file descriptor: [", fd, "], name: [", name, "]")
}

// TryFileno 返回流底层的描述符。结果不拥有描述符，生命周期随流。
func TryFileno(s *Stream, ec *xerrno.Code) int {
	mustStream(s)
	xdual.Enter(ec)
	fd, ok := rawFD(s.Get())
	if !ok {
		*ec = errBadFD
	}
	return fd
}

// Fileno 是 [TryFileno] 的普通形式。
func Fileno(s *Stream) (int, error) {
	return xdual.Call(func(ec *xerrno.Code) int {
		return TryFileno(s, ec)
	}, "error getting file descriptor of stream: [", s, "]")
}

// EmptyStream 返回空流句柄。
func EmptyStream() *Stream { return xhandle.Empty[*os.File, StreamTraits]() }

func fdName(fd int) string { return "fd:" + strconv.Itoa(fd) }
