package bin

import (
	"encoding/binary"
	"math"

	"github.com/lk2023060901/danmu-tl-go/pkg/util/merr"
)

// Buffer 是只追加的编码缓冲区。零值可直接使用。
//
// 写入不返回错误：无法编码的值（例如超过 MaxBytesLen 的字节串）会被记录为
// 第一个错误并跳过写入，调用方在编码结束后通过 Err 检查。
type Buffer struct {
	Buf []byte
	err error
}

// Reset 清空缓冲区并保留底层容量。
func (b *Buffer) Reset() {
	b.Buf = b.Buf[:0]
	b.err = nil
}

// Err 返回编码过程中记录的第一个错误。
func (b *Buffer) Err() error {
	return b.err
}

// Len 返回已写入的字节数。
func (b *Buffer) Len() int {
	return len(b.Buf)
}

// Bytes 返回已写入的字节，不做拷贝。
func (b *Buffer) Bytes() []byte {
	return b.Buf
}

// Copy 返回已写入字节的拷贝。
func (b *Buffer) Copy() []byte {
	out := make([]byte, len(b.Buf))
	copy(out, b.Buf)
	return out
}

// Grow 预留至少 n 字节的写入空间。
func (b *Buffer) Grow(n int) {
	if cap(b.Buf)-len(b.Buf) >= n {
		return
	}
	buf := make([]byte, len(b.Buf), 2*cap(b.Buf)+n)
	copy(buf, b.Buf)
	b.Buf = buf
}

// Truncate 将缓冲区截断到前 n 字节，并把记录的错误替换为 err。
// n 超出当前长度时只替换错误。
func (b *Buffer) Truncate(n int, err error) {
	if n >= 0 && n < len(b.Buf) {
		b.Buf = b.Buf[:n]
	}
	b.err = err
}

func (b *Buffer) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Buffer) PutUint32(v uint32) {
	b.Buf = binary.LittleEndian.AppendUint32(b.Buf, v)
}

func (b *Buffer) PutInt32(v int32) {
	b.PutUint32(uint32(v))
}

// PutID 写入构造器 ID。
func (b *Buffer) PutID(id uint32) {
	b.PutUint32(id)
}

func (b *Buffer) PutInt64(v int64) {
	b.Buf = binary.LittleEndian.AppendUint64(b.Buf, uint64(v))
}

func (b *Buffer) PutDouble(v float64) {
	b.Buf = binary.LittleEndian.AppendUint64(b.Buf, math.Float64bits(v))
}

// PutBool 以 boxed 形式写入 boolTrue/boolFalse。
func (b *Buffer) PutBool(v bool) {
	if v {
		b.PutID(TypeBoolTrue)
		return
	}
	b.PutID(TypeBoolFalse)
}

// PutBytes 写入带长度前缀的字节串并补齐到 4 字节边界。
func (b *Buffer) PutBytes(v []byte) {
	n := len(v)
	if n > MaxBytesLen {
		b.setErr(merr.WrapErrLengthInvalid("bytes", n, 0, MaxBytesLen))
		return
	}
	b.Grow(EncodedBytesLen(n))

	var header int
	if n < longLenMarker {
		b.Buf = append(b.Buf, byte(n))
		header = 1
	} else {
		b.Buf = append(b.Buf, longLenMarker, byte(n), byte(n>>8), byte(n>>16))
		header = 4
	}
	b.Buf = append(b.Buf, v...)
	for pad := paddedLen(header+n) - header - n; pad > 0; pad-- {
		b.Buf = append(b.Buf, 0)
	}
}

// PutString 写入带长度前缀的 UTF-8 字符串。
func (b *Buffer) PutString(s string) {
	b.PutBytes([]byte(s))
}

// PutVectorHeader 写入 boxed vector 标记与元素个数。
func (b *Buffer) PutVectorHeader(n int) {
	b.PutID(TypeVector)
	b.PutInt32(int32(n))
}

// PutRaw 原样追加已经序列化好的字节。
func (b *Buffer) PutRaw(raw []byte) {
	b.Buf = append(b.Buf, raw...)
}
