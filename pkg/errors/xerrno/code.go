package xerrno

import (
	"errors"
	"strconv"
	"syscall"
)

// Code 是 (数值, 类别) 形式的错误码，零值表示无错误。
type Code struct {
	value int
	cat   Category
}

// Make 用平台 errno 类别包装 n。Make(0) 返回零值。
func Make(n int) Code {
	if n == 0 {
		return Code{}
	}
	return Code{value: n, cat: System}
}

// MakeCategory 用指定类别包装 n。cat 为 nil 时使用 [System]。
func MakeCategory(n int, cat Category) Code {
	if n == 0 {
		return Code{}
	}
	if cat == nil {
		cat = System
	}
	return Code{value: n, cat: cat}
}

// FromError 从系统调用返回的 err 中提取错误码。
//
// err 为 nil 时返回零值；err 链中含 syscall.Errno（包括 *os.PathError、
// *os.SyscallError 包装的情况）时返回对应的 System 错误码；
// 其他 error 返回 Generic 类别的 [GenericUnknown]。
func FromError(err error) Code {
	if err == nil {
		return Code{}
	}
	var se *SystemError
	if errors.As(err, &se) {
		return se.code
	}
	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return Code{value: int(errno), cat: System}
	}
	return Code{value: GenericUnknown, cat: Generic}
}

// Value 返回错误码数值。
func (c Code) Value() int { return c.value }

// Category 返回错误码类别，零值返回 [System]。
func (c Code) Category() Category {
	if c.cat == nil {
		return System
	}
	return c.cat
}

// IsZero 报告 c 是否表示无错误。
func (c Code) IsZero() bool { return c.value == 0 }

// Message 返回错误码描述，零值返回 "success"。
func (c Code) Message() string {
	if c.IsZero() {
		return "success"
	}
	return c.Category().Message(c.value)
}

// Name 返回错误码的符号名，如 "ENOENT"；未知值返回 "errno 4095" 形式。
func (c Code) Name() string {
	if c.IsZero() {
		return "OK"
	}
	if c.Category() != System {
		return c.Category().Name() + " " + strconv.Itoa(c.value)
	}
	if name := errnoName(c.value); name != "" {
		return name
	}
	return "errno " + strconv.Itoa(c.value)
}

// String 返回 "ENOENT (system:2): no such file or directory" 形式的文本。
func (c Code) String() string {
	if c.IsZero() {
		return "OK"
	}
	return c.Name() + " (" + c.Category().Name() + ":" + strconv.Itoa(c.value) + "): " + c.Message()
}

// Describe 实现 xdiag.Describer。
func (c Code) Describe() string { return c.String() }

// Err 返回等价的 error：零值为 nil，System 类别为 syscall.Errno。
//
// 返回 syscall.Errno 让 errors.Is(err, fs.ErrNotExist) 等判断直接可用。
func (c Code) Err() error {
	if c.IsZero() {
		return nil
	}
	if c.Category() == System {
		return syscall.Errno(c.value)
	}
	return &categoryError{code: c}
}

// Is 报告 c 对应的 error 是否匹配 target。
func (c Code) Is(target error) bool {
	err := c.Err()
	if err == nil {
		return target == nil
	}
	return errors.Is(err, target)
}

// categoryError 是非 System 类别错误码的 error 形式。
type categoryError struct {
	code Code
}

func (e *categoryError) Error() string { return e.code.Message() }
