package codec

import (
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/lk2023060901/danmu-tl-go/internal/network/compressor"
	"github.com/lk2023060901/danmu-tl-go/internal/network/serializer"
	"github.com/lk2023060901/danmu-tl-go/pkg/log"
	"github.com/lk2023060901/danmu-tl-go/pkg/metrics"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl"
	"github.com/lk2023060901/danmu-tl-go/pkg/util/conc"
	"github.com/lk2023060901/danmu-tl-go/pkg/util/hardware"
	"github.com/lk2023060901/danmu-tl-go/pkg/util/merr"
)

// Codec 抽象了“从 TL 对象到负载字节，以及从负载字节回到 TL 对象”的完整编解码流程。
//
// Pipeline（写出 Marshal）：
//
//	obj --> serializer --> [gzip_packed?] --> payload
//
// Pipeline（读入 Unmarshal/Decode）：
//
//	payload --> size check --> [gzip_packed 解包] --> serializer --> obj
type Codec interface {
	log.WithLogger
	log.LoggerBinder

	// Marshal 编码 obj。开启压缩且结果不小于 MinCompressSize 时，
	// 若压缩确实缩小了负载，则以 gzip_packed 包装输出。
	Marshal(obj any) ([]byte, error)

	// Unmarshal 解码 data 并赋值给 out 指向的变量，out 的约定见 serializer.TLSerializer。
	Unmarshal(data []byte, out any) error

	// Decode 解码 data 为 TL 对象。
	Decode(data []byte) (tl.Object, error)

	// DecodeBatch 并发解码多个互相独立的负载，结果与输入顺序一致。
	// 任一负载失败则整体失败，返回按输入顺序第一个错误。
	DecodeBatch(payloads [][]byte) ([]tl.Object, error)

	// TranscodeJSON 将负载解码后渲染为 JSON，仅用于诊断输出。
	TranscodeJSON(data []byte) ([]byte, error)

	// Close 释放内部协程池。
	Close()
}

type codec struct {
	log.Binder

	reg        *tl.Registry
	serializer serializer.Serializer
	compressor compressor.Compressor
	json       serializer.JSONSerializer
	pool       *conc.Pool[tl.Object]

	compress        bool
	minCompressSize int
	maxPayloadSize  int
}

var _ Codec = (*codec)(nil)

// New 创建一个基于 reg 的 Codec。
func New(reg *tl.Registry, opts Options) (Codec, error) {
	if reg == nil {
		return nil, merr.WrapErrParameterMissing("registry", "codec requires a tl registry")
	}
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	c := &codec{
		reg:             reg,
		serializer:      opts.Serializer,
		compressor:      opts.Compressor,
		compress:        opts.EnableCompression,
		minCompressSize: opts.MinCompressSize,
		maxPayloadSize:  opts.MaxPayloadSize,
	}
	if c.serializer == nil {
		c.serializer = serializer.NewTLSerializer(reg)
	}
	if c.compressor == nil {
		gz, err := compressor.NewGzipCompressor(opts.CompressionLevel, opts.MaxPayloadSize)
		if err != nil {
			return nil, err
		}
		c.compressor = gz
	}
	// 解码任务的 panic 以错误返回给调用方，不终止进程。
	c.pool = conc.NewPool[tl.Object](opts.DecodeWorkers, conc.WithPreAlloc(true), conc.WithConcealPanic(true))
	c.SetLogger(log.With(log.FieldComponent("tl-codec")))
	return c, nil
}

// Marshal 实现 Codec.Marshal。
func (c *codec) Marshal(obj any) ([]byte, error) {
	start := time.Now()
	body, err := c.serializer.Marshal(obj)
	if err != nil {
		return nil, err
	}

	if c.compress && len(body) >= c.minCompressSize {
		packed, err := c.pack(body)
		if err != nil {
			return nil, err
		}
		if len(packed) < len(body) {
			body = packed
		}
	}

	metrics.CodecPayloadBytes.WithLabelValues(metrics.OutboundLabel).Observe(float64(len(body)))
	metrics.CodecLatency.WithLabelValues(metrics.EncodeLabel).Observe(float64(time.Since(start).Microseconds()))
	return body, nil
}

// Unmarshal 实现 Codec.Unmarshal。
func (c *codec) Unmarshal(data []byte, out any) error {
	start := time.Now()
	plain, err := c.unpack(data)
	if err != nil {
		return err
	}
	if err := c.serializer.Unmarshal(plain, out); err != nil {
		return err
	}
	metrics.CodecLatency.WithLabelValues(metrics.DecodeLabel).Observe(float64(time.Since(start).Microseconds()))
	return nil
}

// Decode 实现 Codec.Decode。
func (c *codec) Decode(data []byte) (tl.Object, error) {
	start := time.Now()
	plain, err := c.unpack(data)
	if err != nil {
		return nil, err
	}
	obj, err := c.reg.Decode(plain)
	if err != nil {
		return nil, err
	}
	metrics.CodecLatency.WithLabelValues(metrics.DecodeLabel).Observe(float64(time.Since(start).Microseconds()))
	return obj, nil
}

// DecodeBatch 实现 Codec.DecodeBatch。
func (c *codec) DecodeBatch(payloads [][]byte) ([]tl.Object, error) {
	futures := make([]*conc.Future[tl.Object], 0, len(payloads))
	for _, payload := range payloads {
		payload := payload
		futures = append(futures, c.pool.Submit(func() (tl.Object, error) {
			return c.Decode(payload)
		}))
	}

	out := make([]tl.Object, len(futures))
	for i, future := range futures {
		obj, err := future.Await()
		if err != nil {
			// 剩余任务仍会执行完毕，但结果被丢弃。
			c.Logger().Debug("batch decode failed", zap.Int("index", i), zap.Int("size", len(payloads)), zap.Error(err))
			return nil, errors.Wrapf(err, "batch payload %d", i)
		}
		out[i] = obj
	}
	return out, nil
}

// TranscodeJSON 实现 Codec.TranscodeJSON。
func (c *codec) TranscodeJSON(data []byte) ([]byte, error) {
	obj, err := c.Decode(data)
	if err != nil {
		return nil, err
	}
	return c.json.Marshal(JSONTree(obj))
}

// Close 实现 Codec.Close。
func (c *codec) Close() {
	c.pool.Release()
}

// DefaultWorkers 返回默认的解码协程数。
func DefaultWorkers() int {
	return hardware.GetCPUNum()
}
