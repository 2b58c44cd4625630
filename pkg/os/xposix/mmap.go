//go:build unix

package xposix

import (
	"github.com/omeyang/xoskit/pkg/debug/xdiag"
	"github.com/omeyang/xoskit/pkg/errors/xdual"
	"github.com/omeyang/xoskit/pkg/errors/xerrno"
	"github.com/omeyang/xoskit/pkg/resource/xhandle"
)

// EmptyRegion 返回空映射句柄。
func EmptyRegion() *MappedRegion { return xhandle.Empty[*Mapping, MappingTraits]() }

// TryMmap 映射 fd 从 offset 起的 length 字节。
//
// 匿名映射传入 EmptyFD() 并在 flags 中包含 unix.MAP_ANON。
func TryMmap(fd *FD, offset int64, length, prot, flags int, ec *xerrno.Code) *MappedRegion {
	mustFD(fd)
	xdual.Enter(ec)
	data, err := sysMmap(fd.Get(), offset, length, prot, flags)
	if err != nil {
		*ec = xerrno.FromError(err)
		return EmptyRegion()
	}
	return xhandle.New[*Mapping, MappingTraits](&Mapping{data: data})
}

// Mmap 是 [TryMmap] 的普通形式。
func Mmap(fd *FD, offset int64, length, prot, flags int) (*MappedRegion, error) {
	return xdual.Call(func(ec *xerrno.Code) *MappedRegion {
		return TryMmap(fd, offset, length, prot, flags, ec)
	}, "error mapping file descriptor: [", fd, "], offset: [", offset, "], length: [", length,
		"], prot: [", xdiag.Hex(prot), "], flags: [", xdiag.Hex(flags), "]")
}

// TryMsync 把映射区写回底层文件。空句柄以 EINVAL 失败。
func TryMsync(m *MappedRegion, flags int, ec *xerrno.Code) {
	mustRegion(m)
	xdual.Enter(ec)
	if !m.Valid() {
		*ec = errInvalidArgs
		return
	}
	if err := sysMsync(m.Get().data, flags); err != nil {
		*ec = xerrno.FromError(err)
	}
}

// Msync 是 [TryMsync] 的普通形式。
func Msync(m *MappedRegion, flags int) error {
	return xdual.Exec(func(ec *xerrno.Code) {
		TryMsync(m, flags, ec)
	}, "error syncing mapped region: [", m, "], flags: [", xdiag.Hex(flags), "]")
}
