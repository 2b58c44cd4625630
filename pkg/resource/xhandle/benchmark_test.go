package xhandle

import "testing"

type nopTraits struct{}

func (nopTraits) Invalid() int { return -1 }
func (nopTraits) Close(int)    {}

func BenchmarkHandle_NewClose(b *testing.B) {
	for b.Loop() {
		h := New[int, nopTraits](3)
		_ = h.Close()
	}
}

func BenchmarkHandle_Move(b *testing.B) {
	h := New[int, nopTraits](3)
	for b.Loop() {
		h = h.Move()
	}
	_ = h.Close()
}
