//go:build unix

package xposix

import (
	"golang.org/x/sys/unix"

	"github.com/omeyang/xoskit/pkg/debug/xdiag"
	"github.com/omeyang/xoskit/pkg/errors/xdual"
	"github.com/omeyang/xoskit/pkg/errors/xerrno"
)

// TryOpen 打开 path，失败时返回空句柄并设置 ec。
func TryOpen(path string, flags int, mode uint32, ec *xerrno.Code) *FD {
	xdual.Enter(ec)
	fd, err := sysOpen(path, flags, mode)
	if err != nil {
		*ec = xerrno.FromError(err)
		return EmptyFD()
	}
	return NewFD(fd)
}

// Open 是 [TryOpen] 的普通形式。
func Open(path string, flags int, mode uint32) (*FD, error) {
	return xdual.Call(func(ec *xerrno.Code) *FD {
		return TryOpen(path, flags, mode, ec)
	}, "error opening file: [", path, "], flags: [", xdiag.Hex(flags), "], mode: [", xdiag.Octal(mode), "]")
}

// TryCreat 等价于 open(path, O_CREAT|O_WRONLY|O_TRUNC, mode)。
func TryCreat(path string, mode uint32, ec *xerrno.Code) *FD {
	return TryOpen(path, unix.O_CREAT|unix.O_WRONLY|unix.O_TRUNC|unix.O_CLOEXEC, mode, ec)
}

// Creat 是 [TryCreat] 的普通形式。
func Creat(path string, mode uint32) (*FD, error) {
	return xdual.Call(func(ec *xerrno.Code) *FD {
		return TryCreat(path, mode, ec)
	}, "error creating file: [", path, "], mode: [", xdiag.Octal(mode), "]")
}

// TryOpenat 相对目录描述符 dir 打开 rel。
func TryOpenat(dir *FD, rel string, flags int, mode uint32, ec *xerrno.Code) *FD {
	mustFD(dir)
	xdual.Enter(ec)
	fd, err := sysOpenat(dir.Get(), rel, flags, mode)
	if err != nil {
		*ec = xerrno.FromError(err)
		return EmptyFD()
	}
	return NewFD(fd)
}

// Openat 是 [TryOpenat] 的普通形式。
func Openat(dir *FD, rel string, flags int, mode uint32) (*FD, error) {
	return xdual.Call(func(ec *xerrno.Code) *FD {
		return TryOpenat(dir, rel, flags, mode, ec)
	}, "error opening file: [", rel, "] relative to: [", dir, "], flags: [", xdiag.Hex(flags), "], mode: [", xdiag.Octal(mode), "]")
}

// TryDup 复制 fd。空句柄交由内核处理，得到 EBADF。
func TryDup(fd *FD, ec *xerrno.Code) *FD {
	mustFD(fd)
	return TryDupRaw(fd.Get(), ec)
}

// Dup 是 [TryDup] 的普通形式。
func Dup(fd *FD) (*FD, error) {
	return xdual.Call(func(ec *xerrno.Code) *FD {
		return TryDup(fd, ec)
	}, "error duplicating file descriptor: [", fd, "]")
}

// TryDupRaw 复制未托管的原始描述符 fd，返回新描述符的句柄。
func TryDupRaw(fd int, ec *xerrno.Code) *FD {
	xdual.Enter(ec)
	nfd, err := sysDup(fd)
	if err != nil {
		*ec = xerrno.FromError(err)
		return EmptyFD()
	}
	return NewFD(nfd)
}

// DupRaw 是 [TryDupRaw] 的普通形式。
func DupRaw(fd int) (*FD, error) {
	return xdual.Call(func(ec *xerrno.Code) *FD {
		return TryDupRaw(fd, ec)
	}, "error duplicating file descriptor: [", fd, "]")
}

// TryPipe 创建管道，返回读端和写端。失败时两者均为空句柄。
func TryPipe(ec *xerrno.Code) (r, w *FD) {
	xdual.Enter(ec)
	var p [2]int
	if err := sysPipe(p[:]); err != nil {
		*ec = xerrno.FromError(err)
		return EmptyFD(), EmptyFD()
	}
	return NewFD(p[0]), NewFD(p[1])
}

// Pipe 是 [TryPipe] 的普通形式。
func Pipe() (r, w *FD, err error) {
	ends, err := xdual.Call(func(ec *xerrno.Code) [2]*FD {
		r, w := TryPipe(ec)
		return [2]*FD{r, w}
	}, "error creating pipe")
	return ends[0], ends[1], err
}

// TryRead 从 fd 读取到 p，失败时返回 -1。
func TryRead(fd *FD, p []byte, ec *xerrno.Code) int {
	mustFD(fd)
	xdual.Enter(ec)
	n, err := sysRead(fd.Get(), p)
	if err != nil {
		*ec = xerrno.FromError(err)
		return -1
	}
	return n
}

// Read 是 [TryRead] 的普通形式。返回 0 表示 EOF。
func Read(fd *FD, p []byte) (int, error) {
	return xdual.Call(func(ec *xerrno.Code) int {
		return TryRead(fd, p, ec)
	}, "error reading from file descriptor: [", fd, "], count: [", len(p), "]")
}

// TryWrite 把 p 写入 fd，失败时返回 -1。
func TryWrite(fd *FD, p []byte, ec *xerrno.Code) int {
	mustFD(fd)
	xdual.Enter(ec)
	n, err := sysWrite(fd.Get(), p)
	if err != nil {
		*ec = xerrno.FromError(err)
		return -1
	}
	return n
}

// Write 是 [TryWrite] 的普通形式。
func Write(fd *FD, p []byte) (int, error) {
	return xdual.Call(func(ec *xerrno.Code) int {
		return TryWrite(fd, p, ec)
	}, "error writing to file descriptor: [", fd, "], count: [", len(p), "]")
}

// TryPread 从 fd 的 offset 处读取，不改变文件偏移。
func TryPread(fd *FD, p []byte, offset int64, ec *xerrno.Code) int {
	mustFD(fd)
	xdual.Enter(ec)
	n, err := sysPread(fd.Get(), p, offset)
	if err != nil {
		*ec = xerrno.FromError(err)
		return -1
	}
	return n
}

// Pread 是 [TryPread] 的普通形式。
func Pread(fd *FD, p []byte, offset int64) (int, error) {
	return xdual.Call(func(ec *xerrno.Code) int {
		return TryPread(fd, p, offset, ec)
	}, "error reading from file descriptor: [", fd, "], count: [", len(p), "], offset: [", offset, "]")
}

// TryPwrite 向 fd 的 offset 处写入，不改变文件偏移。
func TryPwrite(fd *FD, p []byte, offset int64, ec *xerrno.Code) int {
	mustFD(fd)
	xdual.Enter(ec)
	n, err := sysPwrite(fd.Get(), p, offset)
	if err != nil {
		*ec = xerrno.FromError(err)
		return -1
	}
	return n
}

// Pwrite 是 [TryPwrite] 的普通形式。
func Pwrite(fd *FD, p []byte, offset int64) (int, error) {
	return xdual.Call(func(ec *xerrno.Code) int {
		return TryPwrite(fd, p, offset, ec)
	}, "error writing to file descriptor: [", fd, "], count: [", len(p), "], offset: [", offset, "]")
}

// TryLseek 移动 fd 的文件偏移，返回新偏移；失败时返回 -1。
func TryLseek(fd *FD, offset int64, whence int, ec *xerrno.Code) int64 {
	mustFD(fd)
	xdual.Enter(ec)
	off, err := sysSeek(fd.Get(), offset, whence)
	if err != nil {
		*ec = xerrno.FromError(err)
		return -1
	}
	return off
}

// Lseek 是 [TryLseek] 的普通形式。
func Lseek(fd *FD, offset int64, whence int) (int64, error) {
	return xdual.Call(func(ec *xerrno.Code) int64 {
		return TryLseek(fd, offset, whence, ec)
	}, "error seeking file descriptor: [", fd, "], offset: [", offset, "], whence: [", whence, "]")
}

// TryFtruncate 把 fd 截断到 length。
func TryFtruncate(fd *FD, length int64, ec *xerrno.Code) {
	mustFD(fd)
	xdual.Enter(ec)
	if err := sysFtruncate(fd.Get(), length); err != nil {
		*ec = xerrno.FromError(err)
	}
}

// Ftruncate 是 [TryFtruncate] 的普通形式。
func Ftruncate(fd *FD, length int64) error {
	return xdual.Exec(func(ec *xerrno.Code) {
		TryFtruncate(fd, length, ec)
	}, "error truncating file descriptor: [", fd, "], length: [", length, "]")
}

// TryTruncate 把 path 截断到 length。
func TryTruncate(path string, length int64, ec *xerrno.Code) {
	xdual.Enter(ec)
	if err := sysTruncate(path, length); err != nil {
		*ec = xerrno.FromError(err)
	}
}

// Truncate 是 [TryTruncate] 的普通形式。
func Truncate(path string, length int64) error {
	return xdual.Exec(func(ec *xerrno.Code) {
		TryTruncate(path, length, ec)
	}, "error truncating file: [", path, "], length: [", length, "]")
}

// TryFsync 把 fd 的数据和元数据刷到存储设备。
func TryFsync(fd *FD, ec *xerrno.Code) {
	mustFD(fd)
	xdual.Enter(ec)
	if err := sysFsync(fd.Get()); err != nil {
		*ec = xerrno.FromError(err)
	}
}

// Fsync 是 [TryFsync] 的普通形式。
func Fsync(fd *FD) error {
	return xdual.Exec(func(ec *xerrno.Code) {
		TryFsync(fd, ec)
	}, "error syncing file descriptor: [", fd, "]")
}

// TryFchdir 把工作目录切换到 fd 指向的目录。
func TryFchdir(fd *FD, ec *xerrno.Code) {
	mustFD(fd)
	xdual.Enter(ec)
	if err := sysFchdir(fd.Get()); err != nil {
		*ec = xerrno.FromError(err)
	}
}

// Fchdir 是 [TryFchdir] 的普通形式。
func Fchdir(fd *FD) error {
	return xdual.Exec(func(ec *xerrno.Code) {
		TryFchdir(fd, ec)
	}, "error changing directory to file descriptor: [", fd, "]")
}

// TryFchmod 把 fd 指向文件的权限位设为 mode。
func TryFchmod(fd *FD, mode uint32, ec *xerrno.Code) {
	mustFD(fd)
	xdual.Enter(ec)
	if err := sysFchmod(fd.Get(), mode); err != nil {
		*ec = xerrno.FromError(err)
	}
}

// Fchmod 是 [TryFchmod] 的普通形式。
func Fchmod(fd *FD, mode uint32) error {
	return xdual.Exec(func(ec *xerrno.Code) {
		TryFchmod(fd, mode, ec)
	}, "error changing mode of file descriptor: [", fd, "], mode: [", xdiag.Octal(mode), "]")
}
