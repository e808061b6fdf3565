package api

import (
	"github.com/lk2023060901/danmu-tl-go/pkg/tl"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
)

const (
	BaseThemeClassicTypeID uint32 = 0xc3a12462
	BaseThemeDayTypeID     uint32 = 0xfbd81688
	BaseThemeNightTypeID   uint32 = 0xb7b31ea8
	BaseThemeTintedTypeID  uint32 = 0x6d5f77ee
	BaseThemeArcticTypeID  uint32 = 0x5b11125a

	ThemeSettingsTypeID uint32 = 0x9c14984a
	DocumentEmptyTypeID uint32 = 0x36f8c871
	ThemeTypeID         uint32 = 0x028f1114
)

// BaseTheme 是无字段的枚举型和类型。
type BaseTheme interface {
	tl.Object
	isBaseTheme()
}

// BaseThemeClassic baseThemeClassic#c3a12462 = BaseTheme;
type BaseThemeClassic struct{}

func (*BaseThemeClassic) TypeID() uint32 { return BaseThemeClassicTypeID }
func (*BaseThemeClassic) TypeName() string { return "baseThemeClassic" }
func (*BaseThemeClassic) isBaseTheme() {}

func (t *BaseThemeClassic) Encode(*bin.Buffer) error {
	if t == nil {
		return tl.ErrNil("baseThemeClassic")
	}
	return nil
}

// BaseThemeDay baseThemeDay#fbd81688 = BaseTheme;
type BaseThemeDay struct{}

func (*BaseThemeDay) TypeID() uint32 { return BaseThemeDayTypeID }
func (*BaseThemeDay) TypeName() string { return "baseThemeDay" }
func (*BaseThemeDay) isBaseTheme() {}

func (t *BaseThemeDay) Encode(*bin.Buffer) error {
	if t == nil {
		return tl.ErrNil("baseThemeDay")
	}
	return nil
}

// BaseThemeNight baseThemeNight#b7b31ea8 = BaseTheme;
type BaseThemeNight struct{}

func (*BaseThemeNight) TypeID() uint32 { return BaseThemeNightTypeID }
func (*BaseThemeNight) TypeName() string { return "baseThemeNight" }
func (*BaseThemeNight) isBaseTheme() {}

func (t *BaseThemeNight) Encode(*bin.Buffer) error {
	if t == nil {
		return tl.ErrNil("baseThemeNight")
	}
	return nil
}

// BaseThemeTinted baseThemeTinted#6d5f77ee = BaseTheme;
type BaseThemeTinted struct{}

func (*BaseThemeTinted) TypeID() uint32 { return BaseThemeTintedTypeID }
func (*BaseThemeTinted) TypeName() string { return "baseThemeTinted" }
func (*BaseThemeTinted) isBaseTheme() {}

func (t *BaseThemeTinted) Encode(*bin.Buffer) error {
	if t == nil {
		return tl.ErrNil("baseThemeTinted")
	}
	return nil
}

// BaseThemeArctic baseThemeArctic#5b11125a = BaseTheme;
type BaseThemeArctic struct{}

func (*BaseThemeArctic) TypeID() uint32 { return BaseThemeArcticTypeID }
func (*BaseThemeArctic) TypeName() string { return "baseThemeArctic" }
func (*BaseThemeArctic) isBaseTheme() {}

func (t *BaseThemeArctic) Encode(*bin.Buffer) error {
	if t == nil {
		return tl.ErrNil("baseThemeArctic")
	}
	return nil
}

func decodeBaseThemeClassic(*bin.Reader) (tl.Object, error) { return &BaseThemeClassic{}, nil }
func decodeBaseThemeDay(*bin.Reader) (tl.Object, error)     { return &BaseThemeDay{}, nil }
func decodeBaseThemeNight(*bin.Reader) (tl.Object, error)   { return &BaseThemeNight{}, nil }
func decodeBaseThemeTinted(*bin.Reader) (tl.Object, error)  { return &BaseThemeTinted{}, nil }
func decodeBaseThemeArctic(*bin.Reader) (tl.Object, error)  { return &BaseThemeArctic{}, nil }

// ThemeSettings themeSettings#9c14984a flags:# message_colors_animated:flags.2?true
// base_theme:BaseTheme accent_color:int message_colors:flags.0?Vector<int>
// wallpaper:flags.1?WallPaper = ThemeSettings;
type ThemeSettings struct {
	Flags                 tl.Flags
	MessageColorsAnimated bool
	BaseTheme             BaseTheme
	AccentColor           int32
	MessageColors         []int32
	Wallpaper             WallPaper
}

func (*ThemeSettings) TypeID() uint32 { return ThemeSettingsTypeID }
func (*ThemeSettings) TypeName() string { return "themeSettings" }

// SetFlags 按可选字段的取值重新计算 Flags 并写回。
func (s *ThemeSettings) SetFlags() {
	s.Flags = s.flags()
}

// flags 计算编码用的 Flags，未绑定的位保持不变。
func (s *ThemeSettings) flags() tl.Flags {
	f := s.Flags
	f.SetTo(0, s.MessageColors != nil)
	f.SetTo(1, s.Wallpaper != nil)
	f.SetTo(2, s.MessageColorsAnimated)
	return f
}

func (s *ThemeSettings) Encode(b *bin.Buffer) error {
	if s == nil {
		return tl.ErrNil("themeSettings")
	}
	f := s.flags()
	f.Encode(b)
	if err := tl.EncodeBoxed(b, s.BaseTheme); err != nil {
		return tl.FieldErr("themeSettings", "base_theme", err)
	}
	b.PutInt32(s.AccentColor)
	if f.Has(0) {
		if err := tl.EncodeIntVector(b, s.MessageColors); err != nil {
			return tl.FieldErr("themeSettings", "message_colors", err)
		}
	}
	if f.Has(1) {
		if err := tl.EncodeBoxed(b, s.Wallpaper); err != nil {
			return tl.FieldErr("themeSettings", "wallpaper", err)
		}
	}
	return nil
}

func decodeThemeSettings(r *bin.Reader) (tl.Object, error) {
	var s ThemeSettings
	var err error
	if s.Flags, err = tl.DecodeFlags(r); err != nil {
		return nil, tl.FieldErr("themeSettings", "flags", err)
	}
	s.MessageColorsAnimated = s.Flags.Has(2)
	if s.BaseTheme, err = DecodeBaseTheme(r); err != nil {
		return nil, tl.FieldErr("themeSettings", "base_theme", err)
	}
	if s.AccentColor, err = r.Int32(); err != nil {
		return nil, tl.FieldErr("themeSettings", "accent_color", err)
	}
	if s.Flags.Has(0) {
		if s.MessageColors, err = tl.DecodeIntVector(Registry(), r); err != nil {
			return nil, tl.FieldErr("themeSettings", "message_colors", err)
		}
	}
	if s.Flags.Has(1) {
		if s.Wallpaper, err = DecodeWallPaper(r); err != nil {
			return nil, tl.FieldErr("themeSettings", "wallpaper", err)
		}
	}
	return &s, nil
}

// Document 目前只绑定了 documentEmpty。
type Document interface {
	tl.Object
	isDocument()
}

// DocumentEmpty documentEmpty#36f8c871 id:long = Document;
type DocumentEmpty struct {
	ID int64
}

func (*DocumentEmpty) TypeID() uint32 { return DocumentEmptyTypeID }
func (*DocumentEmpty) TypeName() string { return "documentEmpty" }
func (*DocumentEmpty) isDocument() {}

func (d *DocumentEmpty) Encode(b *bin.Buffer) error {
	if d == nil {
		return tl.ErrNil("documentEmpty")
	}
	b.PutInt64(d.ID)
	return nil
}

func decodeDocumentEmpty(r *bin.Reader) (tl.Object, error) {
	v, err := r.Int64()
	if err != nil {
		return nil, tl.FieldErr("documentEmpty", "id", err)
	}
	return &DocumentEmpty{ID: v}, nil
}

// Theme theme#028f1114 flags:# creator:flags.0?true default:flags.1?true id:long
// access_hash:long slug:string title:string document:flags.2?Document
// settings:flags.3?ThemeSettings installs_count:int = Theme;
type Theme struct {
	Flags         tl.Flags
	Creator       bool
	Default       bool
	ID            int64
	AccessHash    int64
	Slug          string
	Title         string
	Document      Document
	Settings      *ThemeSettings
	InstallsCount int32
}

func (*Theme) TypeID() uint32 { return ThemeTypeID }
func (*Theme) TypeName() string { return "theme" }

// SetFlags 按可选字段的取值重新计算 Flags 并写回。
func (t *Theme) SetFlags() {
	t.Flags = t.flags()
}

// flags 计算编码用的 Flags，未绑定的位保持不变。
func (t *Theme) flags() tl.Flags {
	f := t.Flags
	f.SetTo(0, t.Creator)
	f.SetTo(1, t.Default)
	f.SetTo(2, t.Document != nil)
	f.SetTo(3, t.Settings != nil)
	return f
}

func (t *Theme) Encode(b *bin.Buffer) error {
	if t == nil {
		return tl.ErrNil("theme")
	}
	f := t.flags()
	f.Encode(b)
	b.PutInt64(t.ID)
	b.PutInt64(t.AccessHash)
	b.PutString(t.Slug)
	b.PutString(t.Title)
	if f.Has(2) {
		if err := tl.EncodeBoxed(b, t.Document); err != nil {
			return tl.FieldErr("theme", "document", err)
		}
	}
	if f.Has(3) {
		if err := tl.EncodeBoxed(b, t.Settings); err != nil {
			return tl.FieldErr("theme", "settings", err)
		}
	}
	b.PutInt32(t.InstallsCount)
	return nil
}

func decodeTheme(r *bin.Reader) (tl.Object, error) {
	var t Theme
	var err error
	if t.Flags, err = tl.DecodeFlags(r); err != nil {
		return nil, tl.FieldErr("theme", "flags", err)
	}
	t.Creator = t.Flags.Has(0)
	t.Default = t.Flags.Has(1)
	if t.ID, err = r.Int64(); err != nil {
		return nil, tl.FieldErr("theme", "id", err)
	}
	if t.AccessHash, err = r.Int64(); err != nil {
		return nil, tl.FieldErr("theme", "access_hash", err)
	}
	if t.Slug, err = r.String(); err != nil {
		return nil, tl.FieldErr("theme", "slug", err)
	}
	if t.Title, err = r.String(); err != nil {
		return nil, tl.FieldErr("theme", "title", err)
	}
	if t.Flags.Has(2) {
		if t.Document, err = DecodeDocument(r); err != nil {
			return nil, tl.FieldErr("theme", "document", err)
		}
	}
	if t.Flags.Has(3) {
		if t.Settings, err = decodeBoxed[*ThemeSettings](r); err != nil {
			return nil, tl.FieldErr("theme", "settings", err)
		}
	}
	if t.InstallsCount, err = r.Int32(); err != nil {
		return nil, tl.FieldErr("theme", "installs_count", err)
	}
	return &t, nil
}
