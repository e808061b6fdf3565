package codec

import (
	"reflect"

	"github.com/lk2023060901/danmu-tl-go/pkg/tl"
)

var flagsType = reflect.TypeOf(tl.Flags(0))

// JSONTree 将 TL 对象转换为可直接 JSON 序列化的树。
//
// 每个变体渲染为带 "_" 键（构造器名称）的对象；flags 字段与缺失的可选字段不输出，
// bytes 由 JSON 编码器按 base64 输出。
func JSONTree(obj tl.Object) any {
	if obj == nil {
		return nil
	}
	return jsonValue(reflect.ValueOf(obj))
}

func jsonValue(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return jsonValue(v.Elem())
	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		if v.Elem().Kind() == reflect.Struct {
			return jsonStruct(v)
		}
		return jsonValue(v.Elem())
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Bytes()
		}
		out := make([]any, v.Len())
		for i := range out {
			out[i] = jsonValue(v.Index(i))
		}
		return out
	default:
		return v.Interface()
	}
}

func jsonStruct(p reflect.Value) map[string]any {
	out := make(map[string]any)
	if obj, ok := p.Interface().(tl.Object); ok {
		out["_"] = obj.TypeName()
	}
	jsonFields(p.Elem(), out)
	return out
}

// jsonFields 输出结构体字段，内嵌结构体的字段提升到外层。
func jsonFields(s reflect.Value, out map[string]any) {
	t := s.Type()
	for i := 0; i < s.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Type == flagsType {
			continue
		}
		fv := s.Field(i)
		if f.Anonymous && fv.Kind() == reflect.Struct {
			jsonFields(fv, out)
			continue
		}
		switch fv.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice:
			if fv.IsNil() {
				continue
			}
		}
		out[f.Name] = jsonValue(fv)
	}
}
