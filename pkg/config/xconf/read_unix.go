//go:build unix

package xconf

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/omeyang/xoskit/pkg/os/xposix"
)

// readFile 经描述符句柄读取整个文件，超过 limit 字节时以 ErrTooLarge 失败。
func readFile(path string, limit int64) ([]byte, error) {
	fd, err := xposix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	defer fd.Close()

	fi, err := xposix.Fstat(fd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	if fi.Size() > limit {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, path, fi.Size())
	}

	// 按 fstat 大小预分配；文件在读取期间增长时继续读到 EOF 或上限。
	buf := make([]byte, 0, fi.Size()+1)
	for {
		if len(buf) == cap(buf) {
			if int64(len(buf)) > limit {
				return nil, fmt.Errorf("%w: %s grew past %d bytes", ErrTooLarge, path, limit)
			}
			buf = append(buf, 0)[:len(buf)]
		}
		n, err := xposix.Read(fd, buf[len(buf):cap(buf)])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
		}
		if n == 0 {
			return buf, nil
		}
		buf = buf[:len(buf)+n]
	}
}
