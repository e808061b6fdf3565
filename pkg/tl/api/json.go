package api

import (
	"github.com/lk2023060901/danmu-tl-go/pkg/tl"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
)

const (
	JSONNullTypeID        uint32 = 0x3f6d7b68
	JSONBoolTypeID        uint32 = 0xc7345e6a
	JSONNumberTypeID      uint32 = 0x2be0dfa4
	JSONStringTypeID      uint32 = 0xb71e767a
	JSONArrayTypeID       uint32 = 0xf7444763
	JSONObjectTypeID      uint32 = 0x99c1d49d
	JSONObjectValueTypeID uint32 = 0xc0de1bd9
)

// JSONValue 是 JSON 值在 TL 中的递归表示。
type JSONValue interface {
	tl.Object
	isJSONValue()
}

// JSONNull jsonNull#3f6d7b68 = JSONValue;
type JSONNull struct{}

func (*JSONNull) TypeID() uint32 { return JSONNullTypeID }
func (*JSONNull) TypeName() string { return "jsonNull" }
func (*JSONNull) isJSONValue() {}

func (j *JSONNull) Encode(*bin.Buffer) error {
	if j == nil {
		return tl.ErrNil("jsonNull")
	}
	return nil
}

func decodeJSONNull(*bin.Reader) (tl.Object, error) {
	return &JSONNull{}, nil
}

// JSONBool jsonBool#c7345e6a value:Bool = JSONValue;
type JSONBool struct {
	Value bool
}

func (*JSONBool) TypeID() uint32 { return JSONBoolTypeID }
func (*JSONBool) TypeName() string { return "jsonBool" }
func (*JSONBool) isJSONValue() {}

func (j *JSONBool) Encode(b *bin.Buffer) error {
	if j == nil {
		return tl.ErrNil("jsonBool")
	}
	b.PutBool(j.Value)
	return nil
}

func decodeJSONBool(r *bin.Reader) (tl.Object, error) {
	v, err := r.Bool()
	if err != nil {
		return nil, tl.FieldErr("jsonBool", "value", err)
	}
	return &JSONBool{Value: v}, nil
}

// JSONNumber jsonNumber#2be0dfa4 value:double = JSONValue;
type JSONNumber struct {
	Value float64
}

func (*JSONNumber) TypeID() uint32 { return JSONNumberTypeID }
func (*JSONNumber) TypeName() string { return "jsonNumber" }
func (*JSONNumber) isJSONValue() {}

func (j *JSONNumber) Encode(b *bin.Buffer) error {
	if j == nil {
		return tl.ErrNil("jsonNumber")
	}
	b.PutDouble(j.Value)
	return nil
}

func decodeJSONNumber(r *bin.Reader) (tl.Object, error) {
	v, err := r.Double()
	if err != nil {
		return nil, tl.FieldErr("jsonNumber", "value", err)
	}
	return &JSONNumber{Value: v}, nil
}

// JSONString jsonString#b71e767a value:string = JSONValue;
type JSONString struct {
	Value string
}

func (*JSONString) TypeID() uint32 { return JSONStringTypeID }
func (*JSONString) TypeName() string { return "jsonString" }
func (*JSONString) isJSONValue() {}

func (j *JSONString) Encode(b *bin.Buffer) error {
	if j == nil {
		return tl.ErrNil("jsonString")
	}
	b.PutString(j.Value)
	return nil
}

func decodeJSONString(r *bin.Reader) (tl.Object, error) {
	v, err := r.String()
	if err != nil {
		return nil, tl.FieldErr("jsonString", "value", err)
	}
	return &JSONString{Value: v}, nil
}

// JSONArray jsonArray#f7444763 value:Vector<JSONValue> = JSONValue;
type JSONArray struct {
	Value []JSONValue
}

func (*JSONArray) TypeID() uint32 { return JSONArrayTypeID }
func (*JSONArray) TypeName() string { return "jsonArray" }
func (*JSONArray) isJSONValue() {}

func (j *JSONArray) Encode(b *bin.Buffer) error {
	if j == nil {
		return tl.ErrNil("jsonArray")
	}
	return tl.EncodeBoxedVector(b, j.Value, tl.ElemBoxed)
}

func decodeJSONArray(r *bin.Reader) (tl.Object, error) {
	v, err := tl.DecodeBoxedVector[JSONValue](Registry(), r, 0, tl.ElemBoxed)
	if err != nil {
		return nil, tl.FieldErr("jsonArray", "value", err)
	}
	return &JSONArray{Value: v}, nil
}

// JSONObject jsonObject#99c1d49d value:Vector<JSONObjectValue> = JSONValue;
type JSONObject struct {
	Value []*JSONObjectValue
}

func (*JSONObject) TypeID() uint32 { return JSONObjectTypeID }
func (*JSONObject) TypeName() string { return "jsonObject" }
func (*JSONObject) isJSONValue() {}

func (j *JSONObject) Encode(b *bin.Buffer) error {
	if j == nil {
		return tl.ErrNil("jsonObject")
	}
	return tl.EncodeBoxedVector(b, j.Value, tl.ElemBoxed)
}

func decodeJSONObject(r *bin.Reader) (tl.Object, error) {
	v, err := tl.DecodeBoxedVector[*JSONObjectValue](Registry(), r, 0, tl.ElemBoxed)
	if err != nil {
		return nil, tl.FieldErr("jsonObject", "value", err)
	}
	return &JSONObject{Value: v}, nil
}

// JSONObjectValue jsonObjectValue#c0de1bd9 key:string value:JSONValue = JSONObjectValue;
type JSONObjectValue struct {
	Key   string
	Value JSONValue
}

func (*JSONObjectValue) TypeID() uint32 { return JSONObjectValueTypeID }
func (*JSONObjectValue) TypeName() string { return "jsonObjectValue" }

func (j *JSONObjectValue) Encode(b *bin.Buffer) error {
	if j == nil {
		return tl.ErrNil("jsonObjectValue")
	}
	b.PutString(j.Key)
	return tl.EncodeBoxed(b, j.Value)
}

func decodeJSONObjectValue(r *bin.Reader) (tl.Object, error) {
	var j JSONObjectValue
	var err error
	if j.Key, err = r.String(); err != nil {
		return nil, tl.FieldErr("jsonObjectValue", "key", err)
	}
	if j.Value, err = DecodeJSONValue(r); err != nil {
		return nil, tl.FieldErr("jsonObjectValue", "value", err)
	}
	return &j, nil
}
