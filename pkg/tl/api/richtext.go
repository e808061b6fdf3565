package api

import (
	"github.com/lk2023060901/danmu-tl-go/pkg/tl"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
)

const (
	TextEmptyTypeID  uint32 = 0xdc3d824f
	TextPlainTypeID  uint32 = 0x744694e0
	TextBoldTypeID   uint32 = 0x6724abc4
	TextURLTypeID    uint32 = 0x3c2884c1
	TextConcatTypeID uint32 = 0x7e6260d7
	TextImageTypeID  uint32 = 0x081ccf4f
)

// RichText 是富文本节点，textBold/textUrl/textConcat 递归包含子节点。
type RichText interface {
	tl.Object
	isRichText()
}

// TextEmpty textEmpty#dc3d824f = RichText;
type TextEmpty struct{}

func (*TextEmpty) TypeID() uint32 { return TextEmptyTypeID }
func (*TextEmpty) TypeName() string { return "textEmpty" }
func (*TextEmpty) isRichText() {}

func (t *TextEmpty) Encode(*bin.Buffer) error {
	if t == nil {
		return tl.ErrNil("textEmpty")
	}
	return nil
}

func decodeTextEmpty(*bin.Reader) (tl.Object, error) {
	return &TextEmpty{}, nil
}

// TextPlain textPlain#744694e0 text:string = RichText;
type TextPlain struct {
	Text string
}

func (*TextPlain) TypeID() uint32 { return TextPlainTypeID }
func (*TextPlain) TypeName() string { return "textPlain" }
func (*TextPlain) isRichText() {}

func (t *TextPlain) Encode(b *bin.Buffer) error {
	if t == nil {
		return tl.ErrNil("textPlain")
	}
	b.PutString(t.Text)
	return nil
}

func decodeTextPlain(r *bin.Reader) (tl.Object, error) {
	v, err := r.String()
	if err != nil {
		return nil, tl.FieldErr("textPlain", "text", err)
	}
	return &TextPlain{Text: v}, nil
}

// TextBold textBold#6724abc4 text:RichText = RichText;
type TextBold struct {
	Text RichText
}

func (*TextBold) TypeID() uint32 { return TextBoldTypeID }
func (*TextBold) TypeName() string { return "textBold" }
func (*TextBold) isRichText() {}

func (t *TextBold) Encode(b *bin.Buffer) error {
	if t == nil {
		return tl.ErrNil("textBold")
	}
	return tl.EncodeBoxed(b, t.Text)
}

func decodeTextBold(r *bin.Reader) (tl.Object, error) {
	v, err := DecodeRichText(r)
	if err != nil {
		return nil, tl.FieldErr("textBold", "text", err)
	}
	return &TextBold{Text: v}, nil
}

// TextURL textUrl#3c2884c1 text:RichText url:string webpage_id:long = RichText;
type TextURL struct {
	Text      RichText
	URL       string
	WebpageID int64
}

func (*TextURL) TypeID() uint32 { return TextURLTypeID }
func (*TextURL) TypeName() string { return "textUrl" }
func (*TextURL) isRichText() {}

func (t *TextURL) Encode(b *bin.Buffer) error {
	if t == nil {
		return tl.ErrNil("textUrl")
	}
	if err := tl.EncodeBoxed(b, t.Text); err != nil {
		return err
	}
	b.PutString(t.URL)
	b.PutInt64(t.WebpageID)
	return nil
}

func decodeTextURL(r *bin.Reader) (tl.Object, error) {
	var t TextURL
	var err error
	if t.Text, err = DecodeRichText(r); err != nil {
		return nil, tl.FieldErr("textUrl", "text", err)
	}
	if t.URL, err = r.String(); err != nil {
		return nil, tl.FieldErr("textUrl", "url", err)
	}
	if t.WebpageID, err = r.Int64(); err != nil {
		return nil, tl.FieldErr("textUrl", "webpage_id", err)
	}
	return &t, nil
}

// TextConcat textConcat#7e6260d7 texts:Vector<RichText> = RichText;
type TextConcat struct {
	Texts []RichText
}

func (*TextConcat) TypeID() uint32 { return TextConcatTypeID }
func (*TextConcat) TypeName() string { return "textConcat" }
func (*TextConcat) isRichText() {}

func (t *TextConcat) Encode(b *bin.Buffer) error {
	if t == nil {
		return tl.ErrNil("textConcat")
	}
	return tl.EncodeBoxedVector(b, t.Texts, tl.ElemBoxed)
}

func decodeTextConcat(r *bin.Reader) (tl.Object, error) {
	v, err := tl.DecodeBoxedVector[RichText](Registry(), r, 0, tl.ElemBoxed)
	if err != nil {
		return nil, tl.FieldErr("textConcat", "texts", err)
	}
	return &TextConcat{Texts: v}, nil
}

// TextImage textImage#081ccf4f document_id:long w:int h:int = RichText;
type TextImage struct {
	DocumentID int64
	W          int32
	H          int32
}

func (*TextImage) TypeID() uint32 { return TextImageTypeID }
func (*TextImage) TypeName() string { return "textImage" }
func (*TextImage) isRichText() {}

func (t *TextImage) Encode(b *bin.Buffer) error {
	if t == nil {
		return tl.ErrNil("textImage")
	}
	b.PutInt64(t.DocumentID)
	b.PutInt32(t.W)
	b.PutInt32(t.H)
	return nil
}

func decodeTextImage(r *bin.Reader) (tl.Object, error) {
	var t TextImage
	var err error
	if t.DocumentID, err = r.Int64(); err != nil {
		return nil, tl.FieldErr("textImage", "document_id", err)
	}
	if t.W, err = r.Int32(); err != nil {
		return nil, tl.FieldErr("textImage", "w", err)
	}
	if t.H, err = r.Int32(); err != nil {
		return nil, tl.FieldErr("textImage", "h", err)
	}
	return &t, nil
}
