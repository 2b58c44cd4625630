// Package xposix 用 xhandle 句柄和 xdual 双形式约定包装 POSIX 资源与系统调用。
//
// # 资源族
//
//   - [FD]: 文件描述符（int，无效值 -1，unix.Close 释放）
//   - [Stream]: 流（*os.File，无效值 nil）
//   - [DirStream]: 目录流（以目录方式打开的 *os.File）
//   - [MappedRegion]: mmap 映射的内存区（*Mapping，unix.Munmap 释放）
//
// # 双形式
//
// 每个操作提供两种形式：
//
//	var ec xerrno.Code
//	fd := xposix.TryOpen("/etc/hosts", unix.O_RDONLY, 0, &ec) // 失败时 fd 为空句柄，ec 非零
//
//	fd, err := xposix.Open("/etc/hosts", unix.O_RDONLY, 0)    // 失败时 err 为 *xerrno.SystemError
//
// Try 形式执行一次系统调用，失败时立即把 errno 写入 ec；普通形式由 xdual.Call 派生，
// 错误消息包含操作标签与实际参数，仅在失败时格式化。
//
// # 契约
//
// nil 句柄指针、未清零的 ec 属于编程错误，直接 panic。
// 空句柄（Valid() == false）则原样交给内核，由内核报告 EBADF，
// 因此对已关闭或从未打开的描述符调用 TryDup 会得到 EBADF 而不是崩溃。
//
// # 相对目录
//
// [Openat]、[Fstatat]、[Mkdirat]、[Unlinkat] 以目录描述符为基准解析相对路径，
// 目录在操作期间被重命名也不受影响。
//
// # 平台
//
// 本包仅在 Unix 平台编译；Readv/Writev/Preadv/Pwritev/Fdatasync 仅在 Linux 提供。
package xposix
