package api

import (
	"github.com/lk2023060901/danmu-tl-go/pkg/tl"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
)

const (
	WallPaperSettingsTypeID uint32 = 0x05086cf8
	WallPaperNoFileTypeID   uint32 = 0x8af40b25
	WallPaperTypeID         uint32 = 0xa437c3ed
)

// WallPaperSettings wallPaperSettings#05086cf8 flags:# blur:flags.1?true motion:flags.2?true
// background_color:flags.0?int second_background_color:flags.4?int intensity:flags.3?int
// rotation:flags.4?int = WallPaperSettings;
//
// second_background_color 与 rotation 共用 flags.4：只要其中一个存在就同时写出两者，
// 缺失的一方写 0，解码后两者都为非 nil。
type WallPaperSettings struct {
	Flags                 tl.Flags
	Blur                  bool
	Motion                bool
	BackgroundColor       *int32
	SecondBackgroundColor *int32
	Intensity             *int32
	Rotation              *int32
}

func (*WallPaperSettings) TypeID() uint32 { return WallPaperSettingsTypeID }
func (*WallPaperSettings) TypeName() string { return "wallPaperSettings" }

// SetFlags 按可选字段的取值重新计算 Flags 并写回。
func (s *WallPaperSettings) SetFlags() {
	s.Flags = s.flags()
}

// flags 计算编码用的 Flags，未绑定的位保持不变。
func (s *WallPaperSettings) flags() tl.Flags {
	f := s.Flags
	f.SetTo(0, s.BackgroundColor != nil)
	f.SetTo(1, s.Blur)
	f.SetTo(2, s.Motion)
	f.SetTo(3, s.Intensity != nil)
	f.SetTo(4, s.SecondBackgroundColor != nil || s.Rotation != nil)
	return f
}

func (s *WallPaperSettings) Encode(b *bin.Buffer) error {
	if s == nil {
		return tl.ErrNil("wallPaperSettings")
	}
	f := s.flags()
	f.Encode(b)
	if f.Has(0) {
		b.PutInt32(*s.BackgroundColor)
	}
	if f.Has(4) {
		b.PutInt32(deref(s.SecondBackgroundColor))
	}
	if f.Has(3) {
		b.PutInt32(*s.Intensity)
	}
	if f.Has(4) {
		b.PutInt32(deref(s.Rotation))
	}
	return nil
}

func decodeWallPaperSettings(r *bin.Reader) (tl.Object, error) {
	var s WallPaperSettings
	var err error
	if s.Flags, err = tl.DecodeFlags(r); err != nil {
		return nil, tl.FieldErr("wallPaperSettings", "flags", err)
	}
	s.Blur = s.Flags.Has(1)
	s.Motion = s.Flags.Has(2)
	if s.Flags.Has(0) {
		if s.BackgroundColor, err = readOptInt32(r); err != nil {
			return nil, tl.FieldErr("wallPaperSettings", "background_color", err)
		}
	}
	if s.Flags.Has(4) {
		if s.SecondBackgroundColor, err = readOptInt32(r); err != nil {
			return nil, tl.FieldErr("wallPaperSettings", "second_background_color", err)
		}
	}
	if s.Flags.Has(3) {
		if s.Intensity, err = readOptInt32(r); err != nil {
			return nil, tl.FieldErr("wallPaperSettings", "intensity", err)
		}
	}
	if s.Flags.Has(4) {
		if s.Rotation, err = readOptInt32(r); err != nil {
			return nil, tl.FieldErr("wallPaperSettings", "rotation", err)
		}
	}
	return &s, nil
}

// WallPaper 是 wallPaperNoFile | wallPaper 的和类型。
type WallPaper interface {
	tl.Object
	isWallPaper()
}

// WallPaperNoFile wallPaperNoFile#8af40b25 flags:# default:flags.1?true dark:flags.4?true
// settings:flags.2?WallPaperSettings = WallPaper;
type WallPaperNoFile struct {
	Flags    tl.Flags
	Default  bool
	Dark     bool
	Settings *WallPaperSettings
}

func (*WallPaperNoFile) TypeID() uint32 { return WallPaperNoFileTypeID }
func (*WallPaperNoFile) TypeName() string { return "wallPaperNoFile" }
func (*WallPaperNoFile) isWallPaper() {}

// SetFlags 按可选字段的取值重新计算 Flags 并写回。
func (w *WallPaperNoFile) SetFlags() {
	w.Flags = w.flags()
}

// flags 计算编码用的 Flags，未绑定的位保持不变。
func (w *WallPaperNoFile) flags() tl.Flags {
	f := w.Flags
	f.SetTo(1, w.Default)
	f.SetTo(2, w.Settings != nil)
	f.SetTo(4, w.Dark)
	return f
}

func (w *WallPaperNoFile) Encode(b *bin.Buffer) error {
	if w == nil {
		return tl.ErrNil("wallPaperNoFile")
	}
	f := w.flags()
	f.Encode(b)
	if f.Has(2) {
		if err := tl.EncodeBoxed(b, w.Settings); err != nil {
			return tl.FieldErr("wallPaperNoFile", "settings", err)
		}
	}
	return nil
}

func decodeWallPaperNoFile(r *bin.Reader) (tl.Object, error) {
	var w WallPaperNoFile
	var err error
	if w.Flags, err = tl.DecodeFlags(r); err != nil {
		return nil, tl.FieldErr("wallPaperNoFile", "flags", err)
	}
	w.Default = w.Flags.Has(1)
	w.Dark = w.Flags.Has(4)
	if w.Flags.Has(2) {
		if w.Settings, err = decodeBoxed[*WallPaperSettings](r); err != nil {
			return nil, tl.FieldErr("wallPaperNoFile", "settings", err)
		}
	}
	return &w, nil
}

// WallPaperFile wallPaper#a437c3ed id:long flags:# creator:flags.0?true default:flags.1?true
// pattern:flags.3?true dark:flags.4?true access_hash:long slug:string document:Document
// settings:flags.2?WallPaperSettings = WallPaper;
//
// flags 不是第一个字段，解码时先读 id。
type WallPaperFile struct {
	ID         int64
	Flags      tl.Flags
	Creator    bool
	Default    bool
	Pattern    bool
	Dark       bool
	AccessHash int64
	Slug       string
	Document   Document
	Settings   *WallPaperSettings
}

func (*WallPaperFile) TypeID() uint32 { return WallPaperTypeID }
func (*WallPaperFile) TypeName() string { return "wallPaper" }
func (*WallPaperFile) isWallPaper() {}

// SetFlags 按可选字段的取值重新计算 Flags 并写回。
func (w *WallPaperFile) SetFlags() {
	w.Flags = w.flags()
}

// flags 计算编码用的 Flags，未绑定的位保持不变。
func (w *WallPaperFile) flags() tl.Flags {
	f := w.Flags
	f.SetTo(0, w.Creator)
	f.SetTo(1, w.Default)
	f.SetTo(2, w.Settings != nil)
	f.SetTo(3, w.Pattern)
	f.SetTo(4, w.Dark)
	return f
}

func (w *WallPaperFile) Encode(b *bin.Buffer) error {
	if w == nil {
		return tl.ErrNil("wallPaper")
	}
	f := w.flags()
	b.PutInt64(w.ID)
	f.Encode(b)
	b.PutInt64(w.AccessHash)
	b.PutString(w.Slug)
	if err := tl.EncodeBoxed(b, w.Document); err != nil {
		return tl.FieldErr("wallPaper", "document", err)
	}
	if f.Has(2) {
		if err := tl.EncodeBoxed(b, w.Settings); err != nil {
			return tl.FieldErr("wallPaper", "settings", err)
		}
	}
	return nil
}

func decodeWallPaper(r *bin.Reader) (tl.Object, error) {
	var w WallPaperFile
	var err error
	if w.ID, err = r.Int64(); err != nil {
		return nil, tl.FieldErr("wallPaper", "id", err)
	}
	if w.Flags, err = tl.DecodeFlags(r); err != nil {
		return nil, tl.FieldErr("wallPaper", "flags", err)
	}
	w.Creator = w.Flags.Has(0)
	w.Default = w.Flags.Has(1)
	w.Pattern = w.Flags.Has(3)
	w.Dark = w.Flags.Has(4)
	if w.AccessHash, err = r.Int64(); err != nil {
		return nil, tl.FieldErr("wallPaper", "access_hash", err)
	}
	if w.Slug, err = r.String(); err != nil {
		return nil, tl.FieldErr("wallPaper", "slug", err)
	}
	if w.Document, err = DecodeDocument(r); err != nil {
		return nil, tl.FieldErr("wallPaper", "document", err)
	}
	if w.Flags.Has(2) {
		if w.Settings, err = decodeBoxed[*WallPaperSettings](r); err != nil {
			return nil, tl.FieldErr("wallPaper", "settings", err)
		}
	}
	return &w, nil
}
