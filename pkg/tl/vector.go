package tl

import (
	"github.com/samber/lo"

	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
	"github.com/lk2023060901/danmu-tl-go/pkg/util/merr"
)

// ElemKind 描述 vector 元素在 wire 上的编码方式。
type ElemKind uint8

const (
	// ElemBoxed 每个元素前都有自己的构造器 ID，元素类型可以是多态的。
	ElemBoxed ElemKind = iota
	// ElemBare 所有元素共享同一个构造器 ID，wire 上不出现元素 ID。
	ElemBare
	// ElemBytes 元素为带长度前缀的字节串，不经过注册表。
	ElemBytes
)

func (k ElemKind) String() string {
	switch k {
	case ElemBoxed:
		return "boxed"
	case ElemBare:
		return "bare"
	case ElemBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// MaxZeroWidthElems 为元素在 wire 上不占字节（无字段构造器的 bare 形式）时 vector 的最大元素个数。
const MaxZeroWidthElems = 1 << 16

// DecodeVector 读取元素个数与各元素，elemID 仅在 ElemBare 时使用。
// 任一元素失败则整个 vector 失败，不返回部分结果。
func DecodeVector[T any](reg *Registry, r *bin.Reader, elemID uint32, kind ElemKind) ([]T, error) {
	n, err := r.VectorLen()
	if err != nil {
		return nil, err
	}
	// boxed 元素与字节串至少占一个 Word，超出剩余字节的个数必然是截断输入。
	// bare 元素可能不占字节，由逐个解码发现截断。
	if kind != ElemBare && n > r.Len()/bin.Word {
		return nil, merr.WrapErrTruncatedInput(n*bin.Word, r.Len(), "vector")
	}

	out := make([]T, 0, min(n, r.Len()/bin.Word))
	for i := 0; i < n; i++ {
		before := r.Offset()
		v, err := decodeElem[T](reg, r, elemID, kind)
		if err != nil {
			return nil, merr.WrapErrVectorElement(i, n, err)
		}
		if i == 0 && r.Offset() == before && n > MaxZeroWidthElems {
			return nil, merr.WrapErrLengthInvalid("zero-width vector", n, 0, MaxZeroWidthElems)
		}
		out = append(out, v)
	}
	return out, nil
}

func decodeElem[T any](reg *Registry, r *bin.Reader, elemID uint32, kind ElemKind) (T, error) {
	var zero T
	switch kind {
	case ElemBoxed:
		return DecodeBoxed[T](reg, r)
	case ElemBare:
		return DecodeBare[T](reg, r, elemID)
	case ElemBytes:
		b, err := r.Bytes()
		if err != nil {
			return zero, err
		}
		v, ok := any(b).(T)
		if !ok {
			return zero, merr.WrapErrParameterInvalid("[]byte", typeNameOf[T](), "bytes vector element")
		}
		return v, nil
	default:
		return zero, merr.WrapErrParameterInvalid("boxed|bare|bytes", kind.String(), "vector element kind")
	}
}

// DecodeBoxedVector 先校验 boxed vector 标记，再按 DecodeVector 解码。
func DecodeBoxedVector[T any](reg *Registry, r *bin.Reader, elemID uint32, kind ElemKind) ([]T, error) {
	if err := r.ConsumeID(VectorTypeID); err != nil {
		return nil, err
	}
	return DecodeVector[T](reg, r, elemID, kind)
}

// EncodeVector 写入元素个数与各元素，kind 只能是 ElemBoxed 或 ElemBare。
func EncodeVector[T Object](b *bin.Buffer, elems []T, kind ElemKind) error {
	if kind != ElemBoxed && kind != ElemBare {
		return merr.WrapErrParameterInvalid("boxed|bare", kind.String(), "vector element kind")
	}
	b.PutInt32(int32(len(elems)))
	for i, e := range elems {
		before := b.Len()
		var err error
		if kind == ElemBoxed {
			err = EncodeBoxed(b, e)
		} else if IsNil(e) {
			err = ErrNil(typeNameOf[T]())
		} else {
			err = e.Encode(b)
		}
		if err != nil {
			return merr.WrapErrVectorElement(i, len(elems), err)
		}
		if i == 0 && b.Len() == before && len(elems) > MaxZeroWidthElems {
			return merr.WrapErrLengthInvalid("zero-width vector", len(elems), 0, MaxZeroWidthElems)
		}
	}
	return nil
}

// EncodeBoxedVector 写入 boxed vector 标记后按 EncodeVector 编码。
func EncodeBoxedVector[T Object](b *bin.Buffer, elems []T, kind ElemKind) error {
	b.PutID(VectorTypeID)
	return EncodeVector(b, elems, kind)
}

// EncodeBytesVector 写入 boxed vector 标记与各字节串元素。
func EncodeBytesVector(b *bin.Buffer, elems [][]byte) {
	b.PutVectorHeader(len(elems))
	for _, e := range elems {
		b.PutBytes(e)
	}
}

// DecodeBytesVector 读取 boxed 的 Vector<bytes>。
func DecodeBytesVector(r *bin.Reader) ([][]byte, error) {
	return DecodeBoxedVector[[]byte](nil, r, 0, ElemBytes)
}

// DecodeIntVector 读取 boxed 的 Vector<int> 并转换为 []int32。
func DecodeIntVector(reg *Registry, r *bin.Reader) ([]int32, error) {
	v, err := DecodeBoxedVector[Int](reg, r, IntTypeID, ElemBare)
	if err != nil {
		return nil, err
	}
	return lo.Map(v, func(x Int, _ int) int32 { return int32(x) }), nil
}

// EncodeIntVector 写入 boxed 的 Vector<int>。
func EncodeIntVector(b *bin.Buffer, v []int32) error {
	return EncodeBoxedVector(b, lo.Map(v, func(x int32, _ int) Int { return Int(x) }), ElemBare)
}
