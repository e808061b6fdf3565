package compressor

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/lk2023060901/danmu-tl-go/pkg/util/merr"
)

// DefaultMaxDecompressedSize 为解压结果的默认上限。
const DefaultMaxDecompressedSize = 16 << 20

// GzipCompressor 基于 github.com/klauspost/compress/gzip 的压缩实现，对应 gzip_packed 负载。
//
// writer 通过 sync.Pool 复用，实例可以在多个 goroutine 中并发使用。
type GzipCompressor struct {
	level   int
	maxSize int
	writers sync.Pool
}

// 编译期断言：确保 GzipCompressor 实现了 Compressor 接口。
var _ Compressor = (*GzipCompressor)(nil)

// NewGzipCompressor 创建一个 GzipCompressor。
//
// 参数说明：
//   - level：gzip 压缩级别，非法值返回错误；
//   - maxDecompressedSize <= 0：使用 DefaultMaxDecompressedSize。
func NewGzipCompressor(level, maxDecompressedSize int) (*GzipCompressor, error) {
	if level < gzip.HuffmanOnly || level > gzip.BestCompression {
		return nil, merr.WrapErrParameterInvalidMsg("invalid gzip level %d", level)
	}
	if maxDecompressedSize <= 0 {
		maxDecompressedSize = DefaultMaxDecompressedSize
	}
	c := &GzipCompressor{level: level, maxSize: maxDecompressedSize}
	c.writers.New = func() any {
		w, _ := gzip.NewWriterLevel(nil, level)
		return w
	}
	return c, nil
}

// MaxDecompressedSize 返回解压结果的上限。
func (c *GzipCompressor) MaxDecompressedSize() int {
	return c.maxSize
}

// Compress 实现 Compressor 接口。
func (c *GzipCompressor) Compress(dst, src []byte) ([]byte, error) {
	buf := bytes.NewBuffer(dst[:0])
	w := c.writers.Get().(*gzip.Writer)
	defer c.writers.Put(w)

	w.Reset(buf)
	if _, err := w.Write(src); err != nil {
		return nil, merr.WrapErrIoFailed("gzip", err)
	}
	if err := w.Close(); err != nil {
		return nil, merr.WrapErrIoFailed("gzip", err)
	}
	return buf.Bytes(), nil
}

// Decompress 实现 Compressor 接口，解压结果超过上限时返回 ErrPayloadTooLarge。
func (c *GzipCompressor) Decompress(dst, src []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, merr.WrapErrCorruptPayload("gunzip", err)
	}
	defer r.Close()

	buf := bytes.NewBuffer(dst[:0])
	n, err := io.Copy(buf, io.LimitReader(r, int64(c.maxSize)+1))
	if err != nil {
		return nil, merr.WrapErrCorruptPayload("gunzip", err)
	}
	if n > int64(c.maxSize) {
		return nil, merr.WrapErrPayloadTooLarge(int(n), c.maxSize, "gunzip")
	}
	return buf.Bytes(), nil
}
