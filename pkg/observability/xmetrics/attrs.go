package xmetrics

import (
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/omeyang/xoskit/pkg/errors/xerrno"
)

// 属性键。
const (
	AttrOperation = "operation"
	AttrErrno     = "errno"
	AttrCategory  = "category"

	unknownOperation = "unknown"
)

// operationName 把完整函数名裁剪为 "包.函数"。
//
//	github.com/omeyang/xoskit/pkg/os/xposix.Open → xposix.Open
//	example.com/m.(*T).Method                    → m.(*T).Method
func operationName(function string) string {
	if function == "" {
		return unknownOperation
	}
	if i := strings.LastIndexByte(function, '/'); i >= 0 {
		function = function[i+1:]
	}
	// 泛型实例化的形参列表不参与聚合。
	if i := strings.IndexByte(function, '['); i >= 0 {
		function = function[:i]
	}
	return function
}

// failureAttrs 返回 err 的指标属性。errno 使用符号名以控制基数。
func failureAttrs(err *xerrno.SystemError) []attribute.KeyValue {
	code := err.Code()
	return []attribute.KeyValue{
		attribute.String(AttrOperation, operationName(err.Function())),
		attribute.String(AttrErrno, code.Name()),
		attribute.String(AttrCategory, code.Category().Name()),
	}
}
