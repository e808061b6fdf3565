package api

import (
	"github.com/lk2023060901/danmu-tl-go/pkg/tl"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
)

const (
	MessageEntityUnknownTypeID uint32 = 0xbb92ba95
	MessageEntityURLTypeID     uint32 = 0x6ed02538
	MessageEntityBoldTypeID    uint32 = 0xbd610bc9
	MessageEntityItalicTypeID  uint32 = 0x826f8b60
	MessageEntityCodeTypeID    uint32 = 0x28a20571
	MessageEntityPreTypeID     uint32 = 0x73924be0
	MessageEntityTextURLTypeID uint32 = 0x76a6d327
)

// MessageEntity 是消息实体的和类型。
//
// 只绑定了 messageEntityUnknown、messageEntityUrl、messageEntityBold、messageEntityItalic、
// messageEntityCode、messageEntityPre 与 messageEntityTextUrl，其余变体解码时按未知构造器处理。
type MessageEntity interface {
	tl.Object
	isMessageEntity()
	// Range 返回实体在文本中的 UTF-16 偏移与长度。
	Range() (offset, length int32)
}

// EntityRange 是所有实体共有的 offset:int length:int 前缀。
type EntityRange struct {
	Offset int32
	Length int32
}

func (e EntityRange) Range() (int32, int32) { return e.Offset, e.Length }

func (e EntityRange) encode(b *bin.Buffer) {
	b.PutInt32(e.Offset)
	b.PutInt32(e.Length)
}

func decodeEntityRange(r *bin.Reader, name string) (EntityRange, error) {
	var e EntityRange
	var err error
	if e.Offset, err = r.Int32(); err != nil {
		return e, tl.FieldErr(name, "offset", err)
	}
	if e.Length, err = r.Int32(); err != nil {
		return e, tl.FieldErr(name, "length", err)
	}
	return e, nil
}

// MessageEntityUnknown messageEntityUnknown#bb92ba95 offset:int length:int = MessageEntity;
type MessageEntityUnknown struct {
	EntityRange
}

func (*MessageEntityUnknown) TypeID() uint32 { return MessageEntityUnknownTypeID }
func (*MessageEntityUnknown) TypeName() string { return "messageEntityUnknown" }
func (*MessageEntityUnknown) isMessageEntity() {}

func (m *MessageEntityUnknown) Encode(b *bin.Buffer) error {
	if m == nil {
		return tl.ErrNil("messageEntityUnknown")
	}
	m.encode(b)
	return nil
}

func decodeMessageEntityUnknown(r *bin.Reader) (tl.Object, error) {
	e, err := decodeEntityRange(r, "messageEntityUnknown")
	if err != nil {
		return nil, err
	}
	return &MessageEntityUnknown{EntityRange: e}, nil
}

// MessageEntityURL messageEntityUrl#6ed02538 offset:int length:int = MessageEntity;
type MessageEntityURL struct {
	EntityRange
}

func (*MessageEntityURL) TypeID() uint32 { return MessageEntityURLTypeID }
func (*MessageEntityURL) TypeName() string { return "messageEntityUrl" }
func (*MessageEntityURL) isMessageEntity() {}

func (m *MessageEntityURL) Encode(b *bin.Buffer) error {
	if m == nil {
		return tl.ErrNil("messageEntityUrl")
	}
	m.encode(b)
	return nil
}

func decodeMessageEntityURL(r *bin.Reader) (tl.Object, error) {
	e, err := decodeEntityRange(r, "messageEntityUrl")
	if err != nil {
		return nil, err
	}
	return &MessageEntityURL{EntityRange: e}, nil
}

// MessageEntityBold messageEntityBold#bd610bc9 offset:int length:int = MessageEntity;
type MessageEntityBold struct {
	EntityRange
}

func (*MessageEntityBold) TypeID() uint32 { return MessageEntityBoldTypeID }
func (*MessageEntityBold) TypeName() string { return "messageEntityBold" }
func (*MessageEntityBold) isMessageEntity() {}

func (m *MessageEntityBold) Encode(b *bin.Buffer) error {
	if m == nil {
		return tl.ErrNil("messageEntityBold")
	}
	m.encode(b)
	return nil
}

func decodeMessageEntityBold(r *bin.Reader) (tl.Object, error) {
	e, err := decodeEntityRange(r, "messageEntityBold")
	if err != nil {
		return nil, err
	}
	return &MessageEntityBold{EntityRange: e}, nil
}

// MessageEntityItalic messageEntityItalic#826f8b60 offset:int length:int = MessageEntity;
type MessageEntityItalic struct {
	EntityRange
}

func (*MessageEntityItalic) TypeID() uint32 { return MessageEntityItalicTypeID }
func (*MessageEntityItalic) TypeName() string { return "messageEntityItalic" }
func (*MessageEntityItalic) isMessageEntity() {}

func (m *MessageEntityItalic) Encode(b *bin.Buffer) error {
	if m == nil {
		return tl.ErrNil("messageEntityItalic")
	}
	m.encode(b)
	return nil
}

func decodeMessageEntityItalic(r *bin.Reader) (tl.Object, error) {
	e, err := decodeEntityRange(r, "messageEntityItalic")
	if err != nil {
		return nil, err
	}
	return &MessageEntityItalic{EntityRange: e}, nil
}

// MessageEntityCode messageEntityCode#28a20571 offset:int length:int = MessageEntity;
type MessageEntityCode struct {
	EntityRange
}

func (*MessageEntityCode) TypeID() uint32 { return MessageEntityCodeTypeID }
func (*MessageEntityCode) TypeName() string { return "messageEntityCode" }
func (*MessageEntityCode) isMessageEntity() {}

func (m *MessageEntityCode) Encode(b *bin.Buffer) error {
	if m == nil {
		return tl.ErrNil("messageEntityCode")
	}
	m.encode(b)
	return nil
}

func decodeMessageEntityCode(r *bin.Reader) (tl.Object, error) {
	e, err := decodeEntityRange(r, "messageEntityCode")
	if err != nil {
		return nil, err
	}
	return &MessageEntityCode{EntityRange: e}, nil
}

// MessageEntityPre messageEntityPre#73924be0 offset:int length:int language:string = MessageEntity;
type MessageEntityPre struct {
	EntityRange
	Language string
}

func (*MessageEntityPre) TypeID() uint32 { return MessageEntityPreTypeID }
func (*MessageEntityPre) TypeName() string { return "messageEntityPre" }
func (*MessageEntityPre) isMessageEntity() {}

func (m *MessageEntityPre) Encode(b *bin.Buffer) error {
	if m == nil {
		return tl.ErrNil("messageEntityPre")
	}
	m.encode(b)
	b.PutString(m.Language)
	return nil
}

func decodeMessageEntityPre(r *bin.Reader) (tl.Object, error) {
	e, err := decodeEntityRange(r, "messageEntityPre")
	if err != nil {
		return nil, err
	}
	lang, err := r.String()
	if err != nil {
		return nil, tl.FieldErr("messageEntityPre", "language", err)
	}
	return &MessageEntityPre{EntityRange: e, Language: lang}, nil
}

// MessageEntityTextURL messageEntityTextUrl#76a6d327 offset:int length:int url:string = MessageEntity;
type MessageEntityTextURL struct {
	EntityRange
	URL string
}

func (*MessageEntityTextURL) TypeID() uint32 { return MessageEntityTextURLTypeID }
func (*MessageEntityTextURL) TypeName() string { return "messageEntityTextUrl" }
func (*MessageEntityTextURL) isMessageEntity() {}

func (m *MessageEntityTextURL) Encode(b *bin.Buffer) error {
	if m == nil {
		return tl.ErrNil("messageEntityTextUrl")
	}
	m.encode(b)
	b.PutString(m.URL)
	return nil
}

func decodeMessageEntityTextURL(r *bin.Reader) (tl.Object, error) {
	e, err := decodeEntityRange(r, "messageEntityTextUrl")
	if err != nil {
		return nil, err
	}
	url, err := r.String()
	if err != nil {
		return nil, tl.FieldErr("messageEntityTextUrl", "url", err)
	}
	return &MessageEntityTextURL{EntityRange: e, URL: url}, nil
}
