// Package tl 实现 TL 协议的通用运行时：对象约定、构造器注册表与 vector 编解码。
//
// 具体类型的绑定位于 pkg/tl/api，每个变体都是一个实现了 Object 与所属和类型接口的结构体。
package tl

import (
	"reflect"

	"github.com/cockroachdb/errors"

	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
	"github.com/lk2023060901/danmu-tl-go/pkg/util/merr"
)

// Object 是所有 TL 变体（以及可作为 vector 元素的基础类型）的公共约定。
type Object interface {
	// TypeID 返回变体的构造器 ID。
	TypeID() uint32
	// TypeName 返回 schema 中的构造器名称。
	TypeName() string
	// Encode 以 bare 形式按声明顺序写入字段，不包含构造器 ID。
	Encode(b *bin.Buffer) error
}

// DecodeFunc 在构造器 ID 已经读出后解码变体的 bare 字段。
type DecodeFunc func(r *bin.Reader) (Object, error)

// EncodeBoxed 写入对象的构造器 ID 与字段，用于 schema 中的 boxed 字段。
func EncodeBoxed(b *bin.Buffer, obj Object) error {
	if IsNil(obj) {
		return merr.WrapErrParameterMissing("object", "can't encode nil as boxed")
	}
	b.PutID(obj.TypeID())
	return obj.Encode(b)
}

// ErrNil 返回对 nil 变体调用 Encode 时的错误。
func ErrNil(name string) error {
	return merr.WrapErrParameterMissing(name, "can't encode nil")
}

// FieldErr 为字段级解码错误附加 "类型.字段" 上下文，错误码保持不变。
func FieldErr(typeName, field string, err error) error {
	return errors.Wrapf(err, "%s.%s", typeName, field)
}

// IsNil 判断 obj 是否为 nil 接口或持有 nil 指针。
func IsNil(obj Object) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func typeNameOf[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
