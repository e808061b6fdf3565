package tl

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/lk2023060901/danmu-tl-go/pkg/log"
	"github.com/lk2023060901/danmu-tl-go/pkg/metrics"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
	"github.com/lk2023060901/danmu-tl-go/pkg/util/merr"
	"github.com/lk2023060901/danmu-tl-go/pkg/util/typeutil"
)

const (
	unknownRateGroup    = "tl.registry.unknown"
	unknownCreditPerSec = 1.0
	unknownMaxBalance   = 60.0
)

// Entry 描述一个构造器：ID、schema 名称与解码函数。
type Entry struct {
	ID     uint32
	Name   string
	Decode DecodeFunc
}

// Registry 是构造器 ID 到解码函数的映射。
// 构造完成后不再修改，可以在多个 goroutine 中无锁并发读取。
type Registry struct {
	entries map[uint32]Entry
	logger  *log.MLogger
}

// NewRegistry 由注册项构造注册表。
// 重复的构造器 ID 或缺失的解码函数属于 schema 错误，直接返回错误。
func NewRegistry(entries ...Entry) (*Registry, error) {
	reg := &Registry{
		entries: make(map[uint32]Entry, len(entries)),
		logger: log.With(log.FieldComponent("tl-registry")).
			WithRateGroup(unknownRateGroup, unknownCreditPerSec, unknownMaxBalance),
	}
	for _, e := range entries {
		if e.Decode == nil {
			return nil, merr.WrapErrParameterMissing("decode", fmt.Sprintf("constructor %s#%s", e.Name, merr.FormatID(e.ID)))
		}
		if prev, ok := reg.entries[e.ID]; ok {
			return nil, merr.WrapErrDuplicateConstructor(e.ID, prev.Name, e.Name)
		}
		reg.entries[e.ID] = e
	}
	return reg, nil
}

// MustNewRegistry 与 NewRegistry 相同，但在 schema 错误时 panic，适合进程启动期调用。
func MustNewRegistry(entries ...Entry) *Registry {
	reg, err := NewRegistry(entries...)
	if err != nil {
		panic(err)
	}
	return reg
}

// Lookup 返回 id 对应的注册项。
func (reg *Registry) Lookup(id uint32) (Entry, bool) {
	e, ok := reg.entries[id]
	return e, ok
}

// Len 返回注册的构造器数量。
func (reg *Registry) Len() int {
	return len(reg.entries)
}

// IDs 返回所有已注册构造器 ID 的集合（拷贝）。
func (reg *Registry) IDs() typeutil.IDSet {
	ids := typeutil.NewIDSet()
	for id := range reg.entries {
		ids.Insert(id)
	}
	return ids
}

// Names 返回按名称排序的构造器名称列表。
func (reg *Registry) Names() []string {
	names := make([]string, 0, len(reg.entries))
	for _, e := range reg.entries {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

// Name 返回 id 对应的构造器名称，未注册时返回空字符串。
func (reg *Registry) Name(id uint32) string {
	return reg.entries[id].Name
}

// Decode 从 buf 起始位置解码一个 boxed 对象。
func (reg *Registry) Decode(buf []byte) (Object, error) {
	obj, err := reg.DecodeFrom(bin.NewReader(buf))
	if err != nil {
		metrics.CodecObjectTotal.WithLabelValues(metrics.DecodeLabel, metrics.FailLabel).Inc()
		return nil, err
	}
	metrics.CodecObjectTotal.WithLabelValues(metrics.DecodeLabel, metrics.SuccessLabel).Inc()
	return obj, nil
}

// DecodeFrom 从 r 读取构造器 ID 并解码对应对象。
func (reg *Registry) DecodeFrom(r *bin.Reader) (Object, error) {
	id, err := r.ID()
	if err != nil {
		return nil, err
	}
	return reg.DecodeWithID(r, id)
}

// DecodeWithID 在构造器 ID 已经由调用方读出时解码对象。
// 未知 ID 不会 panic：记录限流告警后返回 ErrUnknownConstructor，由调用方决定是否致命。
func (reg *Registry) DecodeWithID(r *bin.Reader, id uint32) (Object, error) {
	e, ok := reg.entries[id]
	if !ok {
		metrics.CodecUnknownConstructorTotal.Inc()
		reg.logger.RatedWarn(1, "unknown constructor", log.FieldConstructor(id), zap.Int("offset", r.Offset()))
		return nil, merr.WrapErrUnknownConstructor(id)
	}
	if err := r.Enter(); err != nil {
		return nil, err
	}
	defer r.Leave()
	return e.Decode(r)
}

// Encode 写入 obj。boxed 为 true 时先写构造器 ID；false 时仅写字段，
// 用于 schema 已经在上下文中确定类型的场景。
// 失败时缓冲区恢复到调用前的长度与错误状态。
func (reg *Registry) Encode(obj Object, b *bin.Buffer, boxed bool) error {
	if IsNil(obj) {
		return reg.mismatch(obj)
	}
	if _, ok := reg.entries[obj.TypeID()]; !ok {
		return reg.mismatch(obj)
	}

	// 只判断本次写入产生的错误，调用前已记录的错误原样保留。
	start, prevErr := b.Len(), b.Err()
	b.Truncate(start, nil)
	if boxed {
		b.PutID(obj.TypeID())
	}
	err := obj.Encode(b)
	if err == nil {
		err = b.Err()
	}
	if err != nil {
		b.Truncate(start, prevErr)
		metrics.CodecObjectTotal.WithLabelValues(metrics.EncodeLabel, metrics.FailLabel).Inc()
		return err
	}
	b.Truncate(b.Len(), prevErr)
	metrics.CodecObjectTotal.WithLabelValues(metrics.EncodeLabel, metrics.SuccessLabel).Inc()
	return nil
}

// EncodeAny 是面向动态值的编码入口。
// v 不是 Object 或其构造器未注册时属于编程错误：记录错误日志，返回 ErrEncodeTypeMismatch，不写入任何字节。
func (reg *Registry) EncodeAny(v any, b *bin.Buffer, boxed bool) error {
	obj, ok := v.(Object)
	if !ok {
		return reg.mismatch(v)
	}
	return reg.Encode(obj, b, boxed)
}

func (reg *Registry) mismatch(v any) error {
	metrics.CodecObjectTotal.WithLabelValues(metrics.EncodeLabel, metrics.FailLabel).Inc()
	err := merr.WrapErrEncodeTypeMismatch(v)
	reg.logger.Error("encode type mismatch", zap.String("type", fmt.Sprintf("%T", v)), zap.Error(err))
	return err
}

// DecodeBoxed 读取构造器 ID 并解码，要求结果可以断言为 T（通常是和类型接口或具体变体指针）。
func DecodeBoxed[T any](reg *Registry, r *bin.Reader) (T, error) {
	obj, err := reg.DecodeFrom(r)
	if err != nil {
		var zero T
		return zero, err
	}
	return as[T](obj)
}

// DecodeBare 以给定构造器 ID 解码 bare 对象，要求结果可以断言为 T。
func DecodeBare[T any](reg *Registry, r *bin.Reader, id uint32) (T, error) {
	obj, err := reg.DecodeWithID(r, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return as[T](obj)
}

func as[T any](obj Object) (T, error) {
	v, ok := obj.(T)
	if !ok {
		var zero T
		return zero, merr.WrapErrUnexpectedConstructor(typeNameOf[T](), obj.TypeID())
	}
	return v, nil
}
