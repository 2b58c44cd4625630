//go:build unix

package xposix

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/omeyang/xoskit/pkg/debug/xdiag"
	"github.com/omeyang/xoskit/pkg/errors/xdual"
	"github.com/omeyang/xoskit/pkg/errors/xerrno"
)

// FileInfo 是 stat 结果。
type FileInfo struct {
	st unix.Stat_t
}

// Sys 返回底层 unix.Stat_t。
func (fi *FileInfo) Sys() *unix.Stat_t { return &fi.st }

// Size 返回文件字节数。
func (fi *FileInfo) Size() int64 { return fi.st.Size }

// Mode 返回 st_mode，包含文件类型位和权限位。
func (fi *FileInfo) Mode() uint32 { return uint32(fi.st.Mode) }

// Perm 返回权限位（含 setuid/setgid/sticky）。
func (fi *FileInfo) Perm() uint32 { return fi.Mode() & 0o7777 }

// Ino 返回 inode 编号。
func (fi *FileInfo) Ino() uint64 { return uint64(fi.st.Ino) }

// Dev 返回文件所在设备的编号。
func (fi *FileInfo) Dev() uint64 { return uint64(fi.st.Dev) }

// Nlink 返回硬链接数。
func (fi *FileInfo) Nlink() uint64 { return uint64(fi.st.Nlink) }

// Uid 返回属主用户 ID。
func (fi *FileInfo) Uid() uint32 { return fi.st.Uid }

// Gid 返回属组 ID。
func (fi *FileInfo) Gid() uint32 { return fi.st.Gid }

// ModTime 返回最后修改时间。
func (fi *FileInfo) ModTime() time.Time {
	return time.Unix(fi.st.Mtim.Unix())
}

func (fi *FileInfo) typ() uint32 { return fi.Mode() & unix.S_IFMT }

// IsRegular 报告是否为普通文件。
func (fi *FileInfo) IsRegular() bool { return fi.typ() == unix.S_IFREG }

// IsDir 报告是否为目录。
func (fi *FileInfo) IsDir() bool { return fi.typ() == unix.S_IFDIR }

// IsSymlink 报告是否为符号链接。仅 Lstat 的结果可能为 true。
func (fi *FileInfo) IsSymlink() bool { return fi.typ() == unix.S_IFLNK }

// IsFIFO 报告是否为命名管道。
func (fi *FileInfo) IsFIFO() bool { return fi.typ() == unix.S_IFIFO }

// IsSocket 报告是否为 Unix 域套接字。
func (fi *FileInfo) IsSocket() bool { return fi.typ() == unix.S_IFSOCK }

// IsCharDevice 报告是否为字符设备。
func (fi *FileInfo) IsCharDevice() bool { return fi.typ() == unix.S_IFCHR }

// IsBlockDevice 报告是否为块设备。
func (fi *FileInfo) IsBlockDevice() bool { return fi.typ() == unix.S_IFBLK }

// Describe 返回 "mode:0100644 size:N" 形式的描述。
func (fi *FileInfo) Describe() string {
	return xdiag.Join("mode:", xdiag.Octal(fi.Mode()), " size:", fi.Size())
}

// TryFstat 获取 fd 的元数据，失败时返回 nil。
func TryFstat(fd *FD, ec *xerrno.Code) *FileInfo {
	mustFD(fd)
	xdual.Enter(ec)
	var fi FileInfo
	if err := sysFstat(fd.Get(), &fi.st); err != nil {
		*ec = xerrno.FromError(err)
		return nil
	}
	return &fi
}

// Fstat 是 [TryFstat] 的普通形式。
func Fstat(fd *FD) (*FileInfo, error) {
	return xdual.Call(func(ec *xerrno.Code) *FileInfo {
		return TryFstat(fd, ec)
	}, "error getting status of file descriptor: [", fd, "]")
}

// TryStat 获取 path 的元数据，跟随符号链接。
func TryStat(path string, ec *xerrno.Code) *FileInfo {
	xdual.Enter(ec)
	var fi FileInfo
	if err := sysStat(path, &fi.st); err != nil {
		*ec = xerrno.FromError(err)
		return nil
	}
	return &fi
}

// Stat 是 [TryStat] 的普通形式。
func Stat(path string) (*FileInfo, error) {
	return xdual.Call(func(ec *xerrno.Code) *FileInfo {
		return TryStat(path, ec)
	}, "error getting status of file: [", path, "]")
}

// TryLstat 获取 path 的元数据，不跟随符号链接。
func TryLstat(path string, ec *xerrno.Code) *FileInfo {
	xdual.Enter(ec)
	var fi FileInfo
	if err := sysLstat(path, &fi.st); err != nil {
		*ec = xerrno.FromError(err)
		return nil
	}
	return &fi
}

// Lstat 是 [TryLstat] 的普通形式。
func Lstat(path string) (*FileInfo, error) {
	return xdual.Call(func(ec *xerrno.Code) *FileInfo {
		return TryLstat(path, ec)
	}, "error getting status of link: [", path, "]")
}

// TryFstatat 获取相对目录描述符 dir 的 rel 的元数据。
// flags 为 0 时跟随符号链接，unix.AT_SYMLINK_NOFOLLOW 时不跟随。
func TryFstatat(dir *FD, rel string, flags int, ec *xerrno.Code) *FileInfo {
	mustFD(dir)
	xdual.Enter(ec)
	var fi FileInfo
	if err := sysFstatat(dir.Get(), rel, &fi.st, flags); err != nil {
		*ec = xerrno.FromError(err)
		return nil
	}
	return &fi
}

// Fstatat 是 [TryFstatat] 的普通形式。
func Fstatat(dir *FD, rel string, flags int) (*FileInfo, error) {
	return xdual.Call(func(ec *xerrno.Code) *FileInfo {
		return TryFstatat(dir, rel, flags, ec)
	}, "error getting status of file: [", rel, "] relative to: [", dir, "], flags: [", xdiag.Hex(flags), "]")
}

// Access 检查调用方对 path 的 mode 权限（unix.F_OK/R_OK/W_OK/X_OK 的组合）。
//
// 返回零值表示允许；拒绝或路径不存在都以错误码返回，不 panic，也不构造 SystemError。
func Access(path string, mode uint32) xerrno.Code {
	if err := sysAccess(path, mode); err != nil {
		return xerrno.FromError(err)
	}
	return xerrno.Code{}
}
