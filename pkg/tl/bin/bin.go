// Package bin 实现 TL wire 格式的字节游标。
//
// Buffer 负责编码（只追加），Reader 负责解码（只读 + 读偏移）。
// 所有定长整数与浮点数均为小端序；字节串带长度前缀并补齐到 4 字节边界：
//
//	len < 254:  [len:1][payload][pad]      1+len 补齐到 4 的倍数
//	len >= 254: [0xFE][len:3 LE][payload][pad]  4+len 补齐到 4 的倍数
//
// Reader 的任何读取失败都不会移动读偏移，返回的切片均为拷贝，不与输入共享内存。
package bin

const (
	// Word 为 TL 的对齐单位。
	Word = 4

	// TypeVector 为 boxed vector 的构造器 ID（vector#1cb5c415）。
	TypeVector uint32 = 0x1cb5c415
	// TypeBoolTrue 为 boolTrue#997275b5。
	TypeBoolTrue uint32 = 0x997275b5
	// TypeBoolFalse 为 boolFalse#bc799737。
	TypeBoolFalse uint32 = 0xbc799737

	// longLenMarker 表示长格式长度前缀。
	longLenMarker = 0xFE
	// MaxBytesLen 为长度前缀可表达的最大负载长度（3 字节）。
	MaxBytesLen = 1<<24 - 1
)

// paddedLen 返回 n 向上补齐到 Word 倍数后的长度。
func paddedLen(n int) int {
	return (n + Word - 1) &^ (Word - 1)
}

// EncodedBytesLen 返回长度为 n 的字节串编码后在 wire 上占用的字节数（含前缀与填充）。
func EncodedBytesLen(n int) int {
	if n < longLenMarker {
		return paddedLen(1 + n)
	}
	return paddedLen(4 + n)
}
