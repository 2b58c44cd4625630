//go:build unix

package xposix

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"

	"github.com/omeyang/xoskit/pkg/errors/xdual"
	"github.com/omeyang/xoskit/pkg/errors/xerrno"
	"github.com/omeyang/xoskit/pkg/resource/xhandle"
)

// EmptyDir 返回空目录流句柄。
func EmptyDir() *DirStream { return xhandle.Empty[*os.File, DirTraits]() }

func newDir(f *os.File) *DirStream { return xhandle.New[*os.File, DirTraits](f) }

// TryOpendir 以目录方式打开 path。path 不是目录时以 ENOTDIR 失败。
func TryOpendir(path string, ec *xerrno.Code) *DirStream {
	xdual.Enter(ec)
	fd, err := sysOpen(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		*ec = xerrno.FromError(err)
		return EmptyDir()
	}
	return newDir(os.NewFile(uintptr(fd), path))
}

// Opendir 是 [TryOpendir] 的普通形式。
func Opendir(path string) (*DirStream, error) {
	return xdual.Call(func(ec *xerrno.Code) *DirStream {
		return TryOpendir(path, ec)
	}, "error opening directory: [", path, "]")
}

// TryFdopendir 把目录描述符包装为目录流。
//
// 成功时目录流接管描述符，fd 变为空句柄；失败时 fd 保持不变。
func TryFdopendir(fd *FD, ec *xerrno.Code) *DirStream {
	mustFD(fd)
	xdual.Enter(ec)
	var st unix.Stat_t
	if err := sysFstat(fd.Get(), &st); err != nil {
		*ec = xerrno.FromError(err)
		return EmptyDir()
	}
	if uint32(st.Mode)&unix.S_IFMT != unix.S_IFDIR {
		*ec = errNotDir
		return EmptyDir()
	}
	raw := fd.Release()
	return newDir(os.NewFile(uintptr(raw), fdName(raw)))
}

// Fdopendir 是 [TryFdopendir] 的普通形式。
func Fdopendir(fd *FD) (*DirStream, error) {
	return xdual.Call(func(ec *xerrno.Code) *DirStream {
		return TryFdopendir(fd, ec)
	}, "error opening directory stream from file descriptor: [", fd, "]")
}

// TryReaddir 读取下一个目录项，不含 "." 与 ".."。
//
// 读到末尾时返回 found == false 且不设置 ec。
func TryReaddir(d *DirStream, ec *xerrno.Code) (fs.DirEntry, bool) {
	mustDir(d)
	xdual.Enter(ec)
	f := d.Get()
	if f == nil {
		*ec = errBadFD
		return nil, false
	}
	entries, err := f.ReadDir(1)
	if len(entries) == 1 {
		return entries[0], true
	}
	if err != nil && !errors.Is(err, io.EOF) {
		*ec = xerrno.FromError(err)
	}
	return nil, false
}

// Readdir 是 [TryReaddir] 的普通形式。
func Readdir(d *DirStream) (fs.DirEntry, bool, error) {
	return xdual.CallFound(func(ec *xerrno.Code) (fs.DirEntry, bool) {
		return TryReaddir(d, ec)
	}, "error reading directory: [", d, "]")
}

// TryRewinddir 把目录流重置到开头。
func TryRewinddir(d *DirStream, ec *xerrno.Code) {
	mustDir(d)
	xdual.Enter(ec)
	f := d.Get()
	if f == nil {
		*ec = errBadFD
		return
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		*ec = xerrno.FromError(err)
	}
}

// Rewinddir 是 [TryRewinddir] 的普通形式。
func Rewinddir(d *DirStream) error {
	return xdual.Exec(func(ec *xerrno.Code) {
		TryRewinddir(d, ec)
	}, "error rewinding directory: [", d, "]")
}

// TryDirfd 返回目录流底层的描述符，不转移所有权。
func TryDirfd(d *DirStream, ec *xerrno.Code) int {
	mustDir(d)
	xdual.Enter(ec)
	fd, ok := rawFD(d.Get())
	if !ok {
		*ec = errBadFD
	}
	return fd
}

// Dirfd 是 [TryDirfd] 的普通形式。
func Dirfd(d *DirStream) (int, error) {
	return xdual.Call(func(ec *xerrno.Code) int {
		return TryDirfd(d, ec)
	}, "error getting file descriptor of directory: [", d, "]")
}
