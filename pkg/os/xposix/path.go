//go:build unix

package xposix

import (
	"golang.org/x/sys/unix"

	"github.com/omeyang/xoskit/pkg/debug/xdiag"
	"github.com/omeyang/xoskit/pkg/errors/xdual"
	"github.com/omeyang/xoskit/pkg/errors/xerrno"
)

// readlinkMax 是 ReadlinkAll 缓冲区的上限。
const readlinkMax = 64 << 10

// TryUnlink 删除 path。
func TryUnlink(path string, ec *xerrno.Code) {
	xdual.Enter(ec)
	if err := sysUnlink(path); err != nil {
		*ec = xerrno.FromError(err)
	}
}

// Unlink 是 [TryUnlink] 的普通形式。
func Unlink(path string) error {
	return xdual.Exec(func(ec *xerrno.Code) {
		TryUnlink(path, ec)
	}, "error unlinking file: [", path, "]")
}

// TryUnlinkat 删除相对目录描述符 dir 的 rel。
// flags 含 unix.AT_REMOVEDIR 时删除空目录。
func TryUnlinkat(dir *FD, rel string, flags int, ec *xerrno.Code) {
	mustFD(dir)
	xdual.Enter(ec)
	if err := sysUnlinkat(dir.Get(), rel, flags); err != nil {
		*ec = xerrno.FromError(err)
	}
}

// Unlinkat 是 [TryUnlinkat] 的普通形式。
func Unlinkat(dir *FD, rel string, flags int) error {
	return xdual.Exec(func(ec *xerrno.Code) {
		TryUnlinkat(dir, rel, flags, ec)
	}, "error unlinking file: [", rel, "] relative to: [", dir, "], flags: [", xdiag.Hex(flags), "]")
}

// TryRename 把 from 重命名为 to。
func TryRename(from, to string, ec *xerrno.Code) {
	xdual.Enter(ec)
	if err := sysRename(from, to); err != nil {
		*ec = xerrno.FromError(err)
	}
}

// Rename 是 [TryRename] 的普通形式。
func Rename(from, to string) error {
	return xdual.Exec(func(ec *xerrno.Code) {
		TryRename(from, to, ec)
	}, "error renaming file: [", from, "] to: [", to, "]")
}

// TryLink 为 target 创建硬链接 name。
func TryLink(target, name string, ec *xerrno.Code) {
	xdual.Enter(ec)
	if err := sysLink(target, name); err != nil {
		*ec = xerrno.FromError(err)
	}
}

// Link 是 [TryLink] 的普通形式。
func Link(target, name string) error {
	return xdual.Exec(func(ec *xerrno.Code) {
		TryLink(target, name, ec)
	}, "error creating hard link: [", name, "] to: [", target, "]")
}

// TrySymlink 创建指向 target 的符号链接 name。target 不必存在。
func TrySymlink(target, name string, ec *xerrno.Code) {
	xdual.Enter(ec)
	if err := sysSymlink(target, name); err != nil {
		*ec = xerrno.FromError(err)
	}
}

// Symlink 是 [TrySymlink] 的普通形式。
func Symlink(target, name string) error {
	return xdual.Exec(func(ec *xerrno.Code) {
		TrySymlink(target, name, ec)
	}, "error creating symbolic link: [", name, "] to: [", target, "]")
}

// TryReadlink 把 path 的链接内容读入 buf，返回写入字节数，失败时返回 -1。
//
// 结果不以 NUL 结尾；返回值等于 len(buf) 时内容可能被截断。
func TryReadlink(path string, buf []byte, ec *xerrno.Code) int {
	xdual.Enter(ec)
	n, err := sysReadlink(path, buf)
	if err != nil {
		*ec = xerrno.FromError(err)
		return -1
	}
	return n
}

// Readlink 是 [TryReadlink] 的普通形式。
func Readlink(path string, buf []byte) (int, error) {
	return xdual.Call(func(ec *xerrno.Code) int {
		return TryReadlink(path, buf, ec)
	}, "error reading link: [", path, "], size: [", len(buf), "]")
}

// TryReadlinkAll 读取 path 的完整链接内容，缓冲区按需倍增。
//
// 超过 64KiB 仍未容纳时以 ENAMETOOLONG 失败。
func TryReadlinkAll(path string, ec *xerrno.Code) string {
	xdual.Enter(ec)
	for size := 128; size <= readlinkMax; size *= 2 {
		buf := make([]byte, size)
		n, err := sysReadlink(path, buf)
		if err != nil {
			*ec = xerrno.FromError(err)
			return ""
		}
		if n < size {
			return string(buf[:n])
		}
	}
	*ec = xerrno.Make(int(unix.ENAMETOOLONG))
	return ""
}

// ReadlinkAll 是 [TryReadlinkAll] 的普通形式。
func ReadlinkAll(path string) (string, error) {
	return xdual.Call(func(ec *xerrno.Code) string {
		return TryReadlinkAll(path, ec)
	}, "error reading link: [", path, "]")
}

// TryMkdir 以权限 mode（受 umask 影响）创建目录 path。
func TryMkdir(path string, mode uint32, ec *xerrno.Code) {
	xdual.Enter(ec)
	if err := sysMkdir(path, mode); err != nil {
		*ec = xerrno.FromError(err)
	}
}

// Mkdir 是 [TryMkdir] 的普通形式。
func Mkdir(path string, mode uint32) error {
	return xdual.Exec(func(ec *xerrno.Code) {
		TryMkdir(path, mode, ec)
	}, "error creating directory: [", path, "], mode: [", xdiag.Octal(mode), "]")
}

// TryMkdirat 相对目录描述符 dir 创建目录 rel。
func TryMkdirat(dir *FD, rel string, mode uint32, ec *xerrno.Code) {
	mustFD(dir)
	xdual.Enter(ec)
	if err := sysMkdirat(dir.Get(), rel, mode); err != nil {
		*ec = xerrno.FromError(err)
	}
}

// Mkdirat 是 [TryMkdirat] 的普通形式。
func Mkdirat(dir *FD, rel string, mode uint32) error {
	return xdual.Exec(func(ec *xerrno.Code) {
		TryMkdirat(dir, rel, mode, ec)
	}, "error creating directory: [", rel, "] relative to: [", dir, "], mode: [", xdiag.Octal(mode), "]")
}

// TryRmdir 删除空目录 path。
func TryRmdir(path string, ec *xerrno.Code) {
	xdual.Enter(ec)
	if err := sysRmdir(path); err != nil {
		*ec = xerrno.FromError(err)
	}
}

// Rmdir 是 [TryRmdir] 的普通形式。
func Rmdir(path string) error {
	return xdual.Exec(func(ec *xerrno.Code) {
		TryRmdir(path, ec)
	}, "error removing directory: [", path, "]")
}

// TryChdir 切换当前工作目录。影响整个进程。
func TryChdir(path string, ec *xerrno.Code) {
	xdual.Enter(ec)
	if err := sysChdir(path); err != nil {
		*ec = xerrno.FromError(err)
	}
}

// Chdir 是 [TryChdir] 的普通形式。
func Chdir(path string) error {
	return xdual.Exec(func(ec *xerrno.Code) {
		TryChdir(path, ec)
	}, "error changing directory to: [", path, "]")
}

// TryGetcwd 返回当前工作目录，失败时返回空串。
func TryGetcwd(ec *xerrno.Code) string {
	xdual.Enter(ec)
	dir, err := sysGetwd()
	if err != nil {
		*ec = xerrno.FromError(err)
		return ""
	}
	return dir
}

// Getcwd 是 [TryGetcwd] 的普通形式。
func Getcwd() (string, error) {
	return xdual.Call(TryGetcwd, "error getting current directory")
}

// TryChmod 把 path 的权限位设为 mode。
func TryChmod(path string, mode uint32, ec *xerrno.Code) {
	xdual.Enter(ec)
	if err := sysChmod(path, mode); err != nil {
		*ec = xerrno.FromError(err)
	}
}

// Chmod 是 [TryChmod] 的普通形式。
func Chmod(path string, mode uint32) error {
	return xdual.Exec(func(ec *xerrno.Code) {
		TryChmod(path, mode, ec)
	}, "error changing mode of file: [", path, "], mode: [", xdiag.Octal(mode), "]")
}
