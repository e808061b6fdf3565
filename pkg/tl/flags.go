package tl

import (
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
)

// Flags 是变体中 flags:# 字段的位掩码，每个可选字段占用一位。
type Flags uint32

// Has 判断第 n 位是否置位。
func (f Flags) Has(n int) bool {
	return f&(1<<n) != 0
}

func (f *Flags) Set(n int) {
	*f |= 1 << n
}

func (f *Flags) Unset(n int) {
	*f &^= 1 << n
}

// SetTo 按 v 置位或清除第 n 位。
func (f *Flags) SetTo(n int, v bool) {
	if v {
		f.Set(n)
	} else {
		f.Unset(n)
	}
}

// Zero 判断是否没有任何位被置位。
func (f Flags) Zero() bool {
	return f == 0
}

func (f Flags) Encode(b *bin.Buffer) {
	b.PutUint32(uint32(f))
}

// DecodeFlags 读取一个 flags 字段。
func DecodeFlags(r *bin.Reader) (Flags, error) {
	v, err := r.Uint32()
	return Flags(v), err
}
