package xhandle

// Traits 描述一个资源族：什么值代表"不持有资源"，以及如何释放有效值。
type Traits[T comparable] interface {
	// Invalid 返回表示"不持有资源"的哨兵值，如 nil 指针或 -1。
	Invalid() T

	// Close 释放一个有效值。不会收到 Invalid()，不得 panic。
	Close(v T)
}

// DescribeTraits 是 Traits 的可选扩展，为有效值提供诊断文本。
// 未实现时 [Handle.Describe] 回退到 xdiag.Describe。
type DescribeTraits[T comparable] interface {
	Describe(v T) string
}

// noCopy 让 go vet copylocks 检查拒绝按值复制 Handle。
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
