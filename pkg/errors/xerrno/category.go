package xerrno

import (
	"strconv"
	"syscall"
)

// Category 标识错误码的来源，并负责把数值翻译为文本。
//
// 实现必须是可比较的值类型，Code 依赖它参与 == 比较。
type Category interface {
	// Name 返回类别名称，如 "system"。
	Name() string

	// Message 返回数值 v 对应的描述。
	Message(v int) string
}

type systemCategory struct{}

func (systemCategory) Name() string { return "system" }

func (systemCategory) Message(v int) string {
	return syscall.Errno(v).Error()
}

type genericCategory struct{}

func (genericCategory) Name() string { return "generic" }

func (genericCategory) Message(v int) string {
	if v == GenericUnknown {
		return "unknown error"
	}
	return "generic error " + strconv.Itoa(v)
}

var (
	// System 是平台 errno 类别，与 syscall.Errno 一一对应。
	System Category = systemCategory{}

	// Generic 是非 errno 失败的类别，如底层 API 返回了不含 errno 的 error。
	Generic Category = genericCategory{}
)

// GenericUnknown 是无法映射到 errno 的失败使用的 Generic 数值。
const GenericUnknown = 1
