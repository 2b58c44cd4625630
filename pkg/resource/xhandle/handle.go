package xhandle

import "github.com/omeyang/xoskit/pkg/debug/xdiag"

// InvalidText 是空句柄的诊断文本。
const InvalidText = "invalid"

// Handle 独占一个资源值，并在 Reset、Close 时通过 R 释放它。
type Handle[T comparable, R Traits[T]] struct {
	_ noCopy

	value T
	// set 为 false 时 value 字段无意义，句柄视为空。
	// 这让零值 Handle 在 Invalid() != T 零值时依然是空句柄。
	set bool
}

// Empty 返回空句柄。
func Empty[T comparable, R Traits[T]]() *Handle[T, R] {
	return &Handle[T, R]{}
}

// New 返回接管 v 的句柄。v 等于 Invalid() 时得到空句柄。
func New[T comparable, R Traits[T]](v T) *Handle[T, R] {
	return &Handle[T, R]{value: v, set: true}
}

func (h *Handle[T, R]) traits() R {
	var r R
	return r
}

// Get 返回持有的值，不转移所有权。空句柄（含 nil 接收者）返回 Invalid()。
func (h *Handle[T, R]) Get() T {
	if h == nil || !h.set {
		return h.traits().Invalid()
	}
	return h.value
}

// Valid 报告句柄当前是否持有有效资源。
func (h *Handle[T, R]) Valid() bool {
	return h.Get() != h.traits().Invalid()
}

// Reset 用 v 替换当前值。
//
// v 与当前值不同时，先释放当前有效值，再接管 v；
// v 与当前值相同时什么也不做，因此重复 Reset 同一个值不会重复释放。
func (h *Handle[T, R]) Reset(v T) {
	if h == nil {
		panic("xhandle: Reset on nil handle")
	}
	cur := h.Get()
	if cur == v {
		return
	}
	r := h.traits()
	if cur != r.Invalid() {
		r.Close(cur)
	}
	h.value, h.set = v, true
}

// ResetEmpty 释放当前有效值并使句柄变空，等价于 Reset(Invalid())。
func (h *Handle[T, R]) ResetEmpty() {
	h.Reset(h.traits().Invalid())
}

// Release 交出持有的值并使句柄变空，不释放资源。
// 用于把所有权交给更底层的 API 或另一种句柄。
func (h *Handle[T, R]) Release() T {
	if h == nil {
		return h.traits().Invalid()
	}
	v := h.Get()
	var zero T
	h.value, h.set = zero, false
	return v
}

// Move 把所有权转移到新句柄，h 变空。转移过程中不释放任何资源。
func (h *Handle[T, R]) Move() *Handle[T, R] {
	return New[T, R](h.Release())
}

// Assign 从 other 接管所有权：先释放 h 当前持有的值（若不同），other 变空。
// h.Assign(h) 是安全的：Release 先让 h 变空，Reset 再接管同一个值，不会释放。
// other 为 nil 时等价于 ResetEmpty。
func (h *Handle[T, R]) Assign(other *Handle[T, R]) {
	if other == nil {
		h.ResetEmpty()
		return
	}
	h.Reset(other.Release())
}

// Swap 交换两个句柄持有的值，不释放任何资源。
func (h *Handle[T, R]) Swap(other *Handle[T, R]) {
	if h == nil || other == nil {
		panic("xhandle: Swap with nil handle")
	}
	a, b := h.Release(), other.Release()
	h.value, h.set = b, true
	other.value, other.set = a, true
}

// Close 释放持有的有效值并使句柄变空，相当于析构。
//
// Close 幂等且总是返回 nil：释放结果由 Traits 丢弃。
// 返回 error 只为满足 io.Closer，便于 defer 与组合。
func (h *Handle[T, R]) Close() error {
	if h == nil {
		return nil
	}
	h.ResetEmpty()
	return nil
}

// Describe 返回诊断文本：空句柄为 "invalid"，否则描述持有的值。
func (h *Handle[T, R]) Describe() string {
	if !h.Valid() {
		return InvalidText
	}
	v := h.Get()
	if dt, ok := any(h.traits()).(DescribeTraits[T]); ok {
		return dt.Describe(v)
	}
	return xdiag.Describe(v)
}

// String 实现 fmt.Stringer，与 Describe 相同。
func (h *Handle[T, R]) String() string {
	return h.Describe()
}
