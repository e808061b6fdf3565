package codec

import (
	"github.com/lk2023060901/danmu-tl-go/pkg/metrics"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
	"github.com/lk2023060901/danmu-tl-go/pkg/util/merr"
)

// GzipPackedTypeID 为 gzip_packed#3072cfa1 packed_data:bytes 的构造器 ID。
const GzipPackedTypeID uint32 = 0x3072cfa1

// GzipPacked 表示 gzip 压缩后的 boxed TL 负载。
type GzipPacked struct {
	Data []byte
}

func (*GzipPacked) TypeID() uint32 { return GzipPackedTypeID }
func (*GzipPacked) TypeName() string { return "gzip_packed" }

func (g *GzipPacked) Encode(b *bin.Buffer) error {
	if g == nil {
		return tl.ErrNil("gzip_packed")
	}
	b.PutBytes(g.Data)
	return nil
}

// IsGzipPacked 判断 data 是否以 gzip_packed 构造器开头。
func IsGzipPacked(data []byte) bool {
	id, err := bin.NewReader(data).PeekID()
	return err == nil && id == GzipPackedTypeID
}

func (c *codec) pack(body []byte) ([]byte, error) {
	packed, err := c.compressor.Compress(nil, body)
	if err != nil {
		return nil, err
	}
	var b bin.Buffer
	b.PutID(GzipPackedTypeID)
	if err := (&GzipPacked{Data: packed}).Encode(&b); err != nil {
		return nil, err
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// unpack 校验负载大小，并在负载为 gzip_packed 时解出内层字节。只解一层。
func (c *codec) unpack(data []byte) ([]byte, error) {
	metrics.CodecPayloadBytes.WithLabelValues(metrics.InboundLabel).Observe(float64(len(data)))
	if len(data) > c.maxPayloadSize {
		return nil, merr.WrapErrPayloadTooLarge(len(data), c.maxPayloadSize)
	}
	if !IsGzipPacked(data) {
		return data, nil
	}

	r := bin.NewReader(data)
	if err := r.ConsumeID(GzipPackedTypeID); err != nil {
		return nil, err
	}
	packed, err := r.Bytes()
	if err != nil {
		return nil, tl.FieldErr("gzip_packed", "packed_data", err)
	}
	plain, err := c.compressor.Decompress(nil, packed)
	if err != nil {
		return nil, err
	}
	if len(plain) > c.maxPayloadSize {
		return nil, merr.WrapErrPayloadTooLarge(len(plain), c.maxPayloadSize, "gzip_packed")
	}
	metrics.CodecGzipPackedTotal.Inc()
	return plain, nil
}
