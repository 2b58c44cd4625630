//go:build unix

package xposix

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/omeyang/xoskit/pkg/resource/xhandle"
)

// DescriptorTraits 是文件描述符资源族。
type DescriptorTraits struct{}

// Invalid 返回 -1。
func (DescriptorTraits) Invalid() int { return -1 }

// Close 关闭 fd。失败只记录 Debug 日志：close 失败后描述符状态未定义，不能重试。
func (DescriptorTraits) Close(fd int) {
	if err := sysClose(fd); err != nil {
		slog.Debug("xposix: close descriptor failed", "fd", fd, "error", err)
	}
}

// Describe 返回描述符数值。
func (DescriptorTraits) Describe(fd int) string { return strconv.Itoa(fd) }

// FD 是独占的文件描述符句柄。
type FD = xhandle.Handle[int, DescriptorTraits]

// NewFD 接管已打开的描述符 fd。
func NewFD(fd int) *FD { return xhandle.New[int, DescriptorTraits](fd) }

// EmptyFD 返回空描述符句柄，可用作匿名 mmap 的 fd 参数。
func EmptyFD() *FD { return xhandle.Empty[int, DescriptorTraits]() }

// StreamTraits 是流资源族。
type StreamTraits struct{}

// Invalid 返回 nil。
func (StreamTraits) Invalid() *os.File { return nil }

// Close 关闭流。
func (StreamTraits) Close(f *os.File) {
	if err := f.Close(); err != nil {
		slog.Debug("xposix: close stream failed", "name", f.Name(), "error", err)
	}
}

// Describe 返回 "name" 形式的流描述。
func (StreamTraits) Describe(f *os.File) string { return f.Name() }

// Stream 是独占的流句柄。
type Stream = xhandle.Handle[*os.File, StreamTraits]

// NewStream 接管已打开的 f。
func NewStream(f *os.File) *Stream { return xhandle.New[*os.File, StreamTraits](f) }

// DirTraits 是目录流资源族。
type DirTraits struct{}

// Invalid 返回 nil。
func (DirTraits) Invalid() *os.File { return nil }

// Close 关闭目录流。
func (DirTraits) Close(d *os.File) {
	if err := d.Close(); err != nil {
		slog.Debug("xposix: close dir stream failed", "name", d.Name(), "error", err)
	}
}

// Describe 返回 "dir:name" 形式的目录流描述。
func (DirTraits) Describe(d *os.File) string { return "dir:" + d.Name() }

// DirStream 是独占的目录流句柄。
type DirStream = xhandle.Handle[*os.File, DirTraits]

// Mapping 是一段 mmap 映射的内存。
type Mapping struct {
	data []byte
}

// Bytes 返回映射的内存。Unmap 之后不得再访问。
func (m *Mapping) Bytes() []byte { return m.data }

// Len 返回映射长度。
func (m *Mapping) Len() int { return len(m.data) }

// MappingTraits 是 mmap 内存区资源族。
type MappingTraits struct{}

// Invalid 返回 nil。
func (MappingTraits) Invalid() *Mapping { return nil }

// Close 解除映射。
func (MappingTraits) Close(m *Mapping) {
	if err := sysMunmap(m.data); err != nil {
		slog.Debug("xposix: munmap failed", "len", len(m.data), "error", err)
	}
	m.data = nil
}

// Describe 返回 "mmap[len]" 形式的描述。
func (MappingTraits) Describe(m *Mapping) string {
	return "mmap[" + strconv.Itoa(len(m.data)) + "]"
}

// MappedRegion 是独占的 mmap 内存区句柄。
type MappedRegion = xhandle.Handle[*Mapping, MappingTraits]

// mustFD 检查描述符句柄指针；nil 属于契约违反。
func mustFD(fd *FD) {
	if fd == nil {
		panic("xposix: nil descriptor handle")
	}
}

func mustStream(s *Stream) {
	if s == nil {
		panic("xposix: nil stream handle")
	}
}

func mustDir(d *DirStream) {
	if d == nil {
		panic("xposix: nil dir stream handle")
	}
}

func mustRegion(m *MappedRegion) {
	if m == nil {
		panic("xposix: nil mapped region handle")
	}
}
