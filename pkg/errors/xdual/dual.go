package xdual

import (
	"github.com/omeyang/xoskit/pkg/debug/xdiag"
	"github.com/omeyang/xoskit/pkg/errors/xerrno"
)

// Enter 检查 Try 形式的错误码出参：不得为 nil，且必须为零值。
//
// 违反属于编程错误，直接 panic，不会转换为错误码。
func Enter(ec *xerrno.Code) {
	if ec == nil {
		panic("xdual: nil error code")
	}
	if !ec.IsZero() {
		panic("xdual: error code must be clear on entry, got " + ec.String())
	}
}

// Call 以局部错误码调用 try；错误码非零时返回 *xerrno.SystemError。
//
// msg 仅在失败时经 xdiag.Join 拼接为消息。失败时 try 返回的哨兵结果原样返回。
//
//go:noinline
func Call[R any](try func(ec *xerrno.Code) R, msg ...any) (R, error) {
	var ec xerrno.Code
	r := try(&ec)
	if ec.IsZero() {
		return r, nil
	}
	return r, raise(ec, msg)
}

// Exec 是无返回值操作的 [Call]。
//
//go:noinline
func Exec(try func(ec *xerrno.Code), msg ...any) error {
	var ec xerrno.Code
	try(&ec)
	if ec.IsZero() {
		return nil
	}
	return raise(ec, msg)
}

// CallFound 是查找类操作的 [Call]：found 为 false 表示未找到，不是错误。
//
//go:noinline
func CallFound[R any](try func(ec *xerrno.Code) (R, bool), msg ...any) (R, bool, error) {
	var ec xerrno.Code
	r, found := try(&ec)
	if ec.IsZero() {
		return r, found, nil
	}
	return r, false, raise(ec, msg)
}

// raise 构造 SystemError 并通知 Observer。
//
// 调用链固定为 普通形式 → Call/Exec/CallFound → raise → xerrno.New，
// WithCallerSkip(2) 把位置归属到普通形式。
func raise(ec xerrno.Code, msg []any) error {
	err := xerrno.New(ec,
		xerrno.WithMessage(xdiag.Join(msg...)),
		xerrno.WithCallerSkip(2),
	)
	notify(err)
	return err
}

// Must 在 err 非 nil 时 panic，否则返回 r。
// 用于失败即不可恢复、允许展开调用栈的场景（如进程启动）。
func Must[R any](r R, err error) R {
	if err != nil {
		panic(err)
	}
	return r
}

// MustExec 在 err 非 nil 时 panic。
func MustExec(err error) {
	if err != nil {
		panic(err)
	}
}
