package serializer

import (
	"reflect"

	"github.com/lk2023060901/danmu-tl-go/internal/pool/binpool"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl"
	"github.com/lk2023060901/danmu-tl-go/pkg/util/merr"
)

// TLSerializer 以 boxed 形式编解码 TL 对象。
type TLSerializer struct {
	Registry *tl.Registry
}

// 编译期断言：确保 TLSerializer 实现了 Serializer 接口。
var _ Serializer = (*TLSerializer)(nil)

// NewTLSerializer 创建一个基于 reg 的 TLSerializer。
func NewTLSerializer(reg *tl.Registry) *TLSerializer {
	return &TLSerializer{Registry: reg}
}

// Marshal 编码 v，v 必须是已注册构造器的 tl.Object。
func (s *TLSerializer) Marshal(v any) ([]byte, error) {
	b := binpool.Get()
	defer binpool.Put(b)

	if err := s.Registry.EncodeAny(v, b, true); err != nil {
		return nil, err
	}
	return b.Copy(), nil
}

// Unmarshal 解码 data 并赋值给 v 指向的变量。
//
// v 必须是非 nil 指针，且解码出的对象可以赋值给其元素类型，
// 例如 *tl.Object、*api.Peer 或 **api.PeerUser。
func (s *TLSerializer) Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return merr.WrapErrParameterInvalidMsg("unmarshal target must be a non-nil pointer, got %T", v)
	}

	obj, err := s.Registry.Decode(data)
	if err != nil {
		return err
	}
	return Assign(obj, rv.Elem())
}

// Assign 将 obj 赋值给 dst，类型不兼容时返回 ErrUnexpectedConstructor。
func Assign(obj tl.Object, dst reflect.Value) error {
	ov := reflect.ValueOf(obj)
	if !ov.Type().AssignableTo(dst.Type()) {
		return merr.WrapErrUnexpectedConstructor(dst.Type().String(), obj.TypeID())
	}
	dst.Set(ov)
	return nil
}
