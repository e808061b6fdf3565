package tl

import (
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
)

// 基础类型的伪构造器 ID。基础类型在 wire 上通常是 bare 的，
// 注册这些 ID 使 vector 可以用统一的 ID 驱动方式解码基础类型元素。
const (
	IntTypeID       uint32 = 0xa8509bda
	LongTypeID      uint32 = 0x22076cba
	DoubleTypeID    uint32 = 0x2210c154
	StringTypeID    uint32 = 0xb5286e24
	BoolTrueTypeID         = bin.TypeBoolTrue
	BoolFalseTypeID        = bin.TypeBoolFalse
	VectorTypeID           = bin.TypeVector
)

// Int 对应 TL 的 int。
type Int int32

func (Int) TypeID() uint32 { return IntTypeID }
func (Int) TypeName() string { return "int" }

func (v Int) Encode(b *bin.Buffer) error {
	b.PutInt32(int32(v))
	return nil
}

// Long 对应 TL 的 long。
type Long int64

func (Long) TypeID() uint32 { return LongTypeID }
func (Long) TypeName() string { return "long" }

func (v Long) Encode(b *bin.Buffer) error {
	b.PutInt64(int64(v))
	return nil
}

// Double 对应 TL 的 double。
type Double float64

func (Double) TypeID() uint32 { return DoubleTypeID }
func (Double) TypeName() string { return "double" }

func (v Double) Encode(b *bin.Buffer) error {
	b.PutDouble(float64(v))
	return nil
}

// String 对应 TL 的 string。
type String string

func (String) TypeID() uint32 { return StringTypeID }
func (String) TypeName() string { return "string" }

func (v String) Encode(b *bin.Buffer) error {
	b.PutString(string(v))
	return nil
}

// Bool 对应 TL 的 Bool。取值由构造器 ID 本身表达，没有字段。
type Bool bool

func (v Bool) TypeID() uint32 {
	if v {
		return BoolTrueTypeID
	}
	return BoolFalseTypeID
}

func (v Bool) TypeName() string {
	if v {
		return "boolTrue"
	}
	return "boolFalse"
}

func (Bool) Encode(*bin.Buffer) error {
	return nil
}

// BuiltinEntries 返回基础类型的注册项，schema 的注册表应包含它们。
func BuiltinEntries() []Entry {
	return []Entry{
		{ID: IntTypeID, Name: "int", Decode: func(r *bin.Reader) (Object, error) {
			v, err := r.Int32()
			if err != nil {
				return nil, err
			}
			return Int(v), nil
		}},
		{ID: LongTypeID, Name: "long", Decode: func(r *bin.Reader) (Object, error) {
			v, err := r.Int64()
			if err != nil {
				return nil, err
			}
			return Long(v), nil
		}},
		{ID: DoubleTypeID, Name: "double", Decode: func(r *bin.Reader) (Object, error) {
			v, err := r.Double()
			if err != nil {
				return nil, err
			}
			return Double(v), nil
		}},
		{ID: StringTypeID, Name: "string", Decode: func(r *bin.Reader) (Object, error) {
			v, err := r.String()
			if err != nil {
				return nil, err
			}
			return String(v), nil
		}},
		{ID: BoolTrueTypeID, Name: "boolTrue", Decode: func(*bin.Reader) (Object, error) {
			return Bool(true), nil
		}},
		{ID: BoolFalseTypeID, Name: "boolFalse", Decode: func(*bin.Reader) (Object, error) {
			return Bool(false), nil
		}},
	}
}
