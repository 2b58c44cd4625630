package xerrno

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"

	"github.com/omeyang/xoskit/pkg/util/xproc"
)

// SystemError 是携带出错上下文的 OS 错误。
//
// 所有字段在构造后不可变。
type SystemError struct {
	code      Code
	msg       string
	file      string
	line      int
	function  string
	goroutine uint64
	thread    int
}

// New 用非零错误码构造 SystemError，默认记录调用 New 的位置和当前 goroutine/线程。
//
// code 为零值属于调用方的契约违反，会 panic。
func New(code Code, opts ...Option) *SystemError {
	if code.IsZero() {
		panic("xerrno: SystemError requires a non-zero code")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	e := &SystemError{
		code:     code,
		msg:      o.msg,
		file:     o.file,
		line:     o.line,
		function: o.function,
	}
	if !o.location {
		// skip=1: runtime.Caller → New → 调用方
		if pc, file, line, ok := runtime.Caller(1 + o.skip); ok {
			e.file, e.line = file, line
			if fn := runtime.FuncForPC(pc); fn != nil {
				e.function = fn.Name()
			}
		}
	}
	if o.hasGID {
		e.goroutine = o.goroutine
	} else {
		e.goroutine = xproc.GoroutineID()
	}
	if o.hasTID {
		e.thread = o.thread
	} else {
		e.thread = xproc.ThreadID()
	}
	return e
}

// Code 返回错误码。
func (e *SystemError) Code() Code { return e.code }

// Category 返回错误码类别。
func (e *SystemError) Category() Category { return e.code.Category() }

// Message 返回附加的描述消息，可能为空。
func (e *SystemError) Message() string { return e.msg }

// File 返回出错的源文件。
func (e *SystemError) File() string { return e.file }

// Line 返回出错的行号。
func (e *SystemError) Line() int { return e.line }

// Function 返回出错的函数全名。
func (e *SystemError) Function() string { return e.function }

// Goroutine 返回出错的 goroutine ID，0 表示未知。
func (e *SystemError) Goroutine() uint64 { return e.goroutine }

// Thread 返回出错时所在的 OS 线程 ID，0 表示未知。
func (e *SystemError) Thread() int { return e.thread }

// Error 返回 "<消息>: <错误码描述>"，无消息时只返回错误码描述。
func (e *SystemError) Error() string {
	if e.msg == "" {
		return e.code.Message()
	}
	return e.msg + ": " + e.code.Message()
}

// Unwrap 返回错误码对应的 error（System 类别为 syscall.Errno）。
func (e *SystemError) Unwrap() error {
	return e.code.Err()
}

// Format 实现 fmt.Formatter：%+v 追加错误码与完整来源。
func (e *SystemError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = io.WriteString(s, e.Error())
			_, _ = io.WriteString(s, " ["+e.code.Name()+" "+e.code.Category().Name()+":"+strconv.Itoa(e.code.value)+"]")
			_, _ = io.WriteString(s, " at "+e.file+":"+strconv.Itoa(e.line))
			if e.function != "" {
				_, _ = io.WriteString(s, " ("+e.function+")")
			}
			_, _ = io.WriteString(s, " goroutine "+strconv.FormatUint(e.goroutine, 10))
			_, _ = io.WriteString(s, " thread "+strconv.Itoa(e.thread))
			return
		}
		_, _ = io.WriteString(s, e.Error())
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		_, _ = io.WriteString(s, strconv.Quote(e.Error()))
	}
}

// LogValue 实现 slog.LogValuer。
func (e *SystemError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("msg", e.msg),
		slog.String("errno", e.code.Name()),
		slog.Int("code", e.code.value),
		slog.String("category", e.code.Category().Name()),
		slog.String("message", e.code.Message()),
		slog.String("file", e.file),
		slog.Int("line", e.line),
		slog.String("func", e.function),
		slog.Uint64("goroutine", e.goroutine),
		slog.Int("thread", e.thread),
	)
}

// AsSystemError 在 err 链中查找 *SystemError。
func AsSystemError(err error) (*SystemError, bool) {
	var se *SystemError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
