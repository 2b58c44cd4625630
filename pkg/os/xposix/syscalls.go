//go:build unix

package xposix

import "golang.org/x/sys/unix"

// 系统调用函数变量，支持测试中 mock 替换以覆盖错误路径。
// 注意：mock 测试不可使用 t.Parallel()，因为替换包级变量会引发竞态。
var (
	sysOpen      = unix.Open
	sysOpenat    = unix.Openat
	sysClose     = unix.Close
	sysDup       = unix.Dup
	sysPipe      = unix.Pipe
	sysRead      = unix.Read
	sysWrite     = unix.Write
	sysPread     = unix.Pread
	sysPwrite    = unix.Pwrite
	sysSeek      = unix.Seek
	sysFtruncate = unix.Ftruncate
	sysTruncate  = unix.Truncate
	sysFsync     = unix.Fsync
	sysFstat     = unix.Fstat
	sysStat      = unix.Stat
	sysLstat     = unix.Lstat
	sysFstatat   = unix.Fstatat
	sysAccess    = unix.Access
	sysFcntl     = unix.FcntlInt
	sysUnlink    = unix.Unlink
	sysUnlinkat  = unix.Unlinkat
	sysRename    = unix.Rename
	sysLink      = unix.Link
	sysSymlink   = unix.Symlink
	sysReadlink  = unix.Readlink
	sysMkdir     = unix.Mkdir
	sysMkdirat   = unix.Mkdirat
	sysRmdir     = unix.Rmdir
	sysChdir     = unix.Chdir
	sysChmod     = unix.Chmod
	sysFchmod    = unix.Fchmod
	sysFchdir    = unix.Fchdir
	sysGetwd     = unix.Getwd
	sysMmap      = unix.Mmap
	sysMunmap    = unix.Munmap
	sysMsync     = unix.Msync
)
