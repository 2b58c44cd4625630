package xdiag

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// NilText 是 nil 值（含 typed nil 指针）的描述文本。
const NilText = "nil"

// Describer 由需要自定义诊断文本的类型实现。
//
// 实现应保证对零值与 nil 接收者安全；即使实现 panic，Describe 也会兜底。
type Describer interface {
	Describe() string
}

// Octal 以八进制展示权限位，如 0644。
type Octal uint32

// Describe 实现 [Describer]。
func (o Octal) Describe() string {
	if o == 0 {
		return "0"
	}
	return "0" + strconv.FormatUint(uint64(o), 8)
}

// Hex 以十六进制展示标志位，如 0x241。
type Hex uint64

// Describe 实现 [Describer]。
func (h Hex) Describe() string {
	return "0x" + strconv.FormatUint(uint64(h), 16)
}

// Describe 返回 v 的诊断文本。
//
// 常见标量类型走快速路径，不经过 fmt；其余类型依次尝试
// [Describer]、error、[fmt.Stringer]，最后回退到 fmt.Sprint。
func Describe(v any) (s string) {
	switch x := v.(type) {
	case nil:
		return NilText
	case string:
		return x
	case []byte:
		if x == nil {
			return NilText
		}
		return string(x)
	case *string:
		if x == nil {
			return NilText
		}
		return *x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case uintptr:
		return "0x" + strconv.FormatUint(uint64(x), 16)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}

	if isNilPointer(v) {
		return NilText
	}

	defer func() {
		if r := recover(); r != nil {
			s = "<panic: " + fmt.Sprint(r) + ">"
		}
	}()

	switch x := v.(type) {
	case Describer:
		return x.Describe()
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

// isNilPointer 判断接口内是否装着 nil 的指针/map/slice/func/chan。
func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

// Join 依次拼接 vs 中每个值的 [Describe] 结果。
//
// Join 本身不插入任何分隔符，标签由调用方穿插在参数之间。
func Join(vs ...any) string {
	switch len(vs) {
	case 0:
		return ""
	case 1:
		return Describe(vs[0])
	}
	var b strings.Builder
	for _, v := range vs {
		b.WriteString(Describe(v))
	}
	return b.String()
}
