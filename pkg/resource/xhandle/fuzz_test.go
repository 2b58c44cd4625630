package xhandle

import "testing"

// FuzzHandleOps 以随机操作序列驱动句柄，验证每个被接管的有效值恰好释放一次。
//
// 每个字节编码一个操作与一个值（0..7，其中 7 映射为无效值 -1）。
// 所有值在一次运行中最多被接管一次，模拟"同一资源只有一个所有者"。
func FuzzHandleOps(f *testing.F) {
	f.Add([]byte{0x00, 0x11, 0x22, 0x33})
	f.Add([]byte{0x01, 0x01, 0x41})
	f.Add([]byte{0x07, 0x50, 0x60, 0x20})

	f.Fuzz(func(t *testing.T, ops []byte) {
		resetCloseLog(t)

		a, b := Empty[int, countTraits](), Empty[int, countTraits]()
		adopted := map[int]bool{}
		released := map[int]bool{}

		adopt := func(v int) bool {
			if v == -1 {
				return true
			}
			if adopted[v] {
				return false
			}
			adopted[v] = true
			return true
		}

		for _, op := range ops {
			v := int(op & 0x07)
			if v == 7 {
				v = -1
			}
			switch op >> 4 & 0x07 {
			case 0:
				if adopt(v) {
					a.Reset(v)
				}
			case 1:
				if adopt(v) {
					b.Reset(v)
				}
			case 2:
				b.Assign(a)
			case 3:
				a.Assign(a)
			case 4:
				if r := a.Release(); r != -1 {
					released[r] = true
				}
			case 5:
				a.Swap(b)
			case 6:
				_ = a.Close()
			default:
				a.Reset(a.Get())
			}
		}
		_ = a.Close()
		_ = b.Close()

		for v := range adopted {
			want := 1
			if released[v] {
				want = 0
			}
			if got := closeCount(v); got != want {
				t.Fatalf("value %d closed %d times, want %d (ops=%x)", v, got, want, ops)
			}
		}
	})
}
