//go:build unix

package xerrno

import (
	"syscall"

	"golang.org/x/sys/unix"
)

func errnoName(v int) string {
	return unix.ErrnoName(syscall.Errno(v))
}
