package xproc

import (
	"bytes"
	"runtime"
	"strconv"
)

// goroutinePrefix 是 runtime.Stack 输出的首行前缀："goroutine 42 [running]:"。
var goroutinePrefix = []byte("goroutine ")

// GoroutineID 返回当前 goroutine 的 ID，解析失败时返回 0。
//
// Go 运行时不导出 goroutine ID，这里从 runtime.Stack 首行解析。
// 仅用于诊断（如 xerrno.SystemError 记录出错的执行流），不可用于协调或加锁。
func GoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parseGoroutineID(buf[:n])
}

// parseGoroutineID 从 runtime.Stack 首行提取 ID。
func parseGoroutineID(b []byte) uint64 {
	if !bytes.HasPrefix(b, goroutinePrefix) {
		return 0
	}
	b = b[len(goroutinePrefix):]
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
