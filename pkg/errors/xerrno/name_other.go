//go:build !unix

package xerrno

// errnoName 在非 Unix 平台上没有符号名表，统一回退为数值形式。
func errnoName(int) string {
	return ""
}
