package api

import (
	"bytes"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/lk2023060901/danmu-tl-go/pkg/tl"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
	"github.com/lk2023060901/danmu-tl-go/pkg/util/merr"
)

func ptr[T any](v T) *T { return &v }

type flagSetter interface {
	SetFlags()
}

// setFlags 递归计算 v 及其嵌套对象的 Flags，使其与解码结果一致。
func setFlags(v reflect.Value) {
	switch v.Kind() {
	case reflect.Interface:
		if !v.IsNil() {
			setFlags(v.Elem())
		}
	case reflect.Pointer:
		if v.IsNil() {
			return
		}
		setFlags(v.Elem())
		if s, ok := v.Interface().(flagSetter); ok {
			s.SetFlags()
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).IsExported() {
				setFlags(v.Field(i))
			}
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			setFlags(v.Index(i))
		}
	}
}

func withFlags[T tl.Object](obj T) T {
	setFlags(reflect.ValueOf(obj))
	return obj
}

func sampleSettings() *WallPaperSettings {
	return &WallPaperSettings{
		Blur:                  true,
		BackgroundColor:       ptr(int32(0xffffff)),
		SecondBackgroundColor: ptr(int32(0x000000)),
		Intensity:             ptr(int32(-50)),
		Rotation:              ptr(int32(45)),
	}
}

func sampleTheme() *Theme {
	return &Theme{
		Creator:    true,
		ID:         1 << 50,
		AccessHash: -42,
		Slug:       "night-blue",
		Title:      "Night Blue",
		Document:   &DocumentEmpty{ID: 77},
		Settings: &ThemeSettings{
			MessageColorsAnimated: true,
			BaseTheme:             &BaseThemeNight{},
			AccentColor:           0x3e88f7,
			MessageColors:         []int32{0x111111, 0x222222},
			Wallpaper: &WallPaperFile{
				ID:         100,
				Pattern:    true,
				AccessHash: 200,
				Slug:       "pattern",
				Document:   &DocumentEmpty{ID: 78},
				Settings:   sampleSettings(),
			},
		},
		InstallsCount: 1024,
	}
}

func sampleDcOption(id int32) *DcOption {
	return &DcOption{
		Ipv6:      true,
		Static:    true,
		ID:        id,
		IPAddress: "2001:b28:f23d:f001::a",
		Port:      443,
		Secret:    []byte{0xde, 0xad},
	}
}

// samples 覆盖全部已注册的非基础构造器，Flags 已按字段计算。
func samples() []tl.Object {
	objs := []tl.Object{
		&PeerUser{UserID: 1},
		&PeerChat{ChatID: -2},
		&PeerChannel{ChannelID: 1 << 30},
		&Error{Code: 420, Text: "FLOOD_WAIT_3"},
		&JSONNull{},
		&JSONBool{Value: true},
		&JSONNumber{Value: -1.5},
		&JSONString{Value: "ünïcode"},
		&JSONArray{Value: []JSONValue{&JSONNull{}, &JSONNumber{Value: 2}, &JSONArray{Value: []JSONValue{}}}},
		&JSONObject{Value: []*JSONObjectValue{
			{Key: "a", Value: &JSONBool{}},
			{Key: "b", Value: &JSONObject{Value: []*JSONObjectValue{}}},
		}},
		&JSONObjectValue{Key: "k", Value: &JSONString{Value: "v"}},
		&TextEmpty{},
		&TextPlain{Text: "plain"},
		&TextBold{Text: &TextPlain{Text: "bold"}},
		&TextURL{Text: &TextBold{Text: &TextEmpty{}}, URL: "https://example.org", WebpageID: 9},
		&TextConcat{Texts: []RichText{&TextPlain{Text: "a"}, &TextImage{DocumentID: 1, W: 2, H: 3}}},
		&TextImage{DocumentID: -1, W: 640, H: 480},
		&BaseThemeClassic{},
		&BaseThemeDay{},
		&BaseThemeNight{},
		&BaseThemeTinted{},
		&BaseThemeArctic{},
		sampleSettings(),
		&WallPaperNoFile{Default: true, Dark: true, Settings: &WallPaperSettings{Motion: true}},
		&WallPaperFile{ID: 5, Creator: true, Dark: true, AccessHash: 6, Slug: "s", Document: &DocumentEmpty{ID: 8}},
		sampleTheme().Settings,
		&DocumentEmpty{ID: 3},
		sampleTheme(),
		sampleDcOption(2),
		&FileHash{Offset: 0, Limit: 131072, Hash: bytes.Repeat([]byte{7}, 32)},
		&CdnConfig{PublicKeys: []*CdnPublicKey{{DcID: 203, PublicKey: "-----BEGIN RSA PUBLIC KEY-----"}}},
		&CdnPublicKey{DcID: 1, PublicKey: "key"},
		&PollAnswerVoters{Chosen: true, Option: []byte("0"), Voters: 10},
		&PollResults{
			Min:          true,
			Results:      []*PollAnswerVoters{{Correct: true, Option: []byte("1"), Voters: 3}},
			TotalVoters:  ptr(int32(13)),
			RecentVoters: []int32{1, 2, 3},
			Solution:     ptr("because"),
			SolutionEntities: []MessageEntity{
				&MessageEntityBold{EntityRange: EntityRange{Offset: 0, Length: 7}},
				&MessageEntityTextURL{EntityRange: EntityRange{Offset: 8, Length: 3}, URL: "https://example.org"},
			},
		},
		&MessageEntityUnknown{EntityRange: EntityRange{Offset: 1, Length: 2}},
		&MessageEntityURL{EntityRange: EntityRange{Offset: 3, Length: 19}},
		&MessageEntityBold{EntityRange: EntityRange{Length: 4}},
		&MessageEntityItalic{EntityRange: EntityRange{Offset: -1, Length: 1}},
		&MessageEntityCode{EntityRange: EntityRange{Offset: 5, Length: 6}},
		&MessageEntityPre{EntityRange: EntityRange{Offset: 0, Length: 12}, Language: "go"},
		&MessageEntityTextURL{EntityRange: EntityRange{Offset: 2, Length: 2}, URL: "tg://resolve"},
		&UpdateMessagePollVote{PollID: 99, UserID: 7, Options: [][]byte{[]byte("0"), {}}},
		&UpdateDcOptions{DcOptions: []*DcOption{sampleDcOption(1), {ID: 4, IPAddress: "149.154.167.91", Port: 443}}},
		&UpdateTheme{Theme: sampleTheme()},
	}
	for _, obj := range objs {
		setFlags(reflect.ValueOf(obj))
	}
	return objs
}

func encode(t testing.TB, obj tl.Object) []byte {
	var b bin.Buffer
	require.NoError(t, Encode(obj, &b))
	return b.Copy()
}

func TestRegistryCoversSamples(t *testing.T) {
	reg := Registry()
	assert.Same(t, reg, Registry())

	builtin := len(tl.BuiltinEntries())
	objs := samples()
	assert.Equal(t, reg.Len()-builtin, len(objs))

	seen := make(map[uint32]bool)
	for _, obj := range objs {
		e, ok := reg.Lookup(obj.TypeID())
		require.True(t, ok, obj.TypeName())
		assert.Equal(t, obj.TypeName(), e.Name)
		assert.False(t, seen[obj.TypeID()], "duplicate sample %s", obj.TypeName())
		seen[obj.TypeID()] = true
	}
}

func TestRoundTrip(t *testing.T) {
	for _, obj := range samples() {
		t.Run(obj.TypeName(), func(t *testing.T) {
			raw := encode(t, obj)
			assert.Equal(t, 0, len(raw)%bin.Word)

			got, err := Decode(raw)
			require.NoError(t, err)
			assert.Equal(t, obj, got)

			// bare 形式由调用方提供构造器 ID。
			r := bin.NewReader(raw[bin.Word:])
			bare, err := DecodeWithID(r, obj.TypeID())
			require.NoError(t, err)
			assert.Equal(t, obj, bare)
			assert.True(t, r.Done())
		})
	}
}

func TestUnknownConstructor(t *testing.T) {
	var b bin.Buffer
	b.PutID(0x0badf00d)
	b.PutInt64(1)

	obj, err := Decode(b.Bytes())
	assert.Nil(t, obj)
	assert.ErrorIs(t, err, merr.ErrUnknownConstructor)
	assert.True(t, merr.IsInputError(err))
}

func TestEmptyVector(t *testing.T) {
	raw := encode(t, &CdnConfig{PublicKeys: []*CdnPublicKey{}})
	require.Equal(t, []byte{
		0x0a, 0xe4, 0x25, 0x57,
		0x15, 0xc4, 0xb5, 0x1c,
		0, 0, 0, 0,
	}, raw)

	got, err := Decode(raw)
	require.NoError(t, err)
	keys := got.(*CdnConfig).PublicKeys
	assert.NotNil(t, keys)
	assert.Empty(t, keys)
}

func TestOptionalFieldsAbsent(t *testing.T) {
	in := &PollResults{}
	raw := encode(t, in)
	// 构造器 ID + flags，没有任何可选字段。
	assert.Equal(t, 8, len(raw))

	got, err := Decode(raw)
	require.NoError(t, err)
	res := got.(*PollResults)
	assert.Nil(t, res.Results)
	assert.Nil(t, res.TotalVoters)
	assert.Nil(t, res.RecentVoters)
	assert.Nil(t, res.Solution)
	assert.True(t, res.Flags.Zero())
}

func TestOptionalFieldsPresentZero(t *testing.T) {
	in := &PollResults{
		Results:      []*PollAnswerVoters{},
		TotalVoters:  ptr(int32(0)),
		RecentVoters: []int32{},
		Solution:     ptr(""),
	}
	raw := encode(t, in)
	assert.Equal(t, []byte{0x1e, 0, 0, 0}, raw[4:8])
	assert.True(t, in.Flags.Zero())

	got, err := Decode(raw)
	require.NoError(t, err)
	in.SolutionEntities = []MessageEntity{}
	assert.Equal(t, withFlags(in), got)
	res := got.(*PollResults)
	require.NotNil(t, res.TotalVoters)
	assert.Equal(t, int32(0), *res.TotalVoters)
	require.NotNil(t, res.Solution)
	assert.Equal(t, "", *res.Solution)
}

func TestHighFlagBit(t *testing.T) {
	withSecret := encode(t, &DcOption{ID: 1, IPAddress: "1.1.1.1", Port: 80, Secret: []byte{}})
	assert.Equal(t, []byte{0, 0x04, 0, 0}, withSecret[4:8])

	noSecret := encode(t, &DcOption{ID: 1, IPAddress: "1.1.1.1", Port: 80})
	assert.Equal(t, []byte{0, 0, 0, 0}, noSecret[4:8])
	assert.Equal(t, len(noSecret)+bin.EncodedBytesLen(0), len(withSecret))

	got, err := Decode(withSecret)
	require.NoError(t, err)
	assert.NotNil(t, got.(*DcOption).Secret)
	got, err = Decode(noSecret)
	require.NoError(t, err)
	assert.Nil(t, got.(*DcOption).Secret)
}

func TestWallPaperSettingsSharedBit(t *testing.T) {
	in := &WallPaperSettings{SecondBackgroundColor: ptr(int32(5))}
	raw := encode(t, in)
	assert.Equal(t, []byte{
		0xf8, 0x6c, 0x08, 0x05,
		0x10, 0, 0, 0,
		5, 0, 0, 0,
		0, 0, 0, 0,
	}, raw)

	got, err := Decode(raw)
	require.NoError(t, err)
	s := got.(*WallPaperSettings)
	assert.Equal(t, int32(5), *s.SecondBackgroundColor)
	require.NotNil(t, s.Rotation)
	assert.Equal(t, int32(0), *s.Rotation)
	assert.Nil(t, s.BackgroundColor)
	assert.Nil(t, s.Intensity)
}

func TestWallPaperIDBeforeFlags(t *testing.T) {
	raw := encode(t, &WallPaperFile{ID: 0x0102030405060708, Dark: true, Slug: "x", Document: &DocumentEmpty{ID: 9}})
	assert.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, raw[4:12])
	assert.Equal(t, []byte{0x10, 0, 0, 0}, raw[12:16])
}

func TestWallPaperDocumentAfterSlug(t *testing.T) {
	in := &WallPaperFile{ID: 1, AccessHash: 2, Slug: "ab", Document: &DocumentEmpty{ID: 3}, Settings: &WallPaperSettings{}}
	raw := encode(t, in)
	// id(8) flags(4) access_hash(8) slug(4) 之后是 boxed document，再之后是 settings。
	doc := 4 + 8 + 4 + 8 + 4
	assert.Equal(t, []byte{0x71, 0xc8, 0xf8, 0x36}, raw[doc:doc+4])
	assert.Equal(t, []byte{3, 0, 0, 0, 0, 0, 0, 0}, raw[doc+4:doc+12])
	assert.Equal(t, []byte{0xf8, 0x6c, 0x08, 0x05}, raw[doc+12:doc+16])

	got, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, withFlags(in), got)

	var b bin.Buffer
	err = Encode(&WallPaperFile{Slug: "x"}, &b)
	assert.ErrorIs(t, err, merr.ErrParameterMissing)
	assert.Contains(t, err.Error(), "wallPaper.document")
	assert.Equal(t, 0, b.Len())

	_, err = Decode(raw[:doc+8])
	assert.ErrorIs(t, err, merr.ErrTruncatedInput)
	assert.Contains(t, err.Error(), "wallPaper.document")
}

func TestPollSolutionSharedBit(t *testing.T) {
	onlyText := encode(t, &PollResults{Solution: ptr("hint")})
	assert.Equal(t, []byte{0x10, 0, 0, 0}, onlyText[4:8])
	got, err := Decode(onlyText)
	require.NoError(t, err)
	res := got.(*PollResults)
	assert.Equal(t, "hint", *res.Solution)
	// 缺失的 solution_entities 以空 vector 写出。
	assert.NotNil(t, res.SolutionEntities)
	assert.Empty(t, res.SolutionEntities)

	onlyEntities := encode(t, &PollResults{
		SolutionEntities: []MessageEntity{&MessageEntityCode{EntityRange: EntityRange{Offset: 1, Length: 2}}},
	})
	assert.Equal(t, []byte{0x10, 0, 0, 0}, onlyEntities[4:8])
	// 缺失的 solution 以空串写出。
	assert.Equal(t, []byte{0, 0, 0, 0}, onlyEntities[8:12])
	got, err = Decode(onlyEntities)
	require.NoError(t, err)
	res = got.(*PollResults)
	require.NotNil(t, res.Solution)
	assert.Equal(t, "", *res.Solution)
	require.Len(t, res.SolutionEntities, 1)
	offset, length := res.SolutionEntities[0].Range()
	assert.Equal(t, int32(1), offset)
	assert.Equal(t, int32(2), length)

	neither := encode(t, &PollResults{})
	assert.Equal(t, []byte{0, 0, 0, 0}, neither[4:8])
}

func TestMessageEntityDecode(t *testing.T) {
	raw := encode(t, &MessageEntityPre{EntityRange: EntityRange{Offset: 2, Length: 5}, Language: "go"})
	e, err := DecodeMessageEntity(bin.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, &MessageEntityPre{EntityRange: EntityRange{Offset: 2, Length: 5}, Language: "go"}, e)

	_, err = DecodeMessageEntity(bin.NewReader(encode(t, &PeerUser{UserID: 1})))
	assert.ErrorIs(t, err, merr.ErrUnexpectedConstructor)

	_, err = Decode(raw[:8])
	assert.ErrorIs(t, err, merr.ErrTruncatedInput)
	assert.Contains(t, err.Error(), "messageEntityPre.length")

	// 未绑定的实体变体按未知构造器处理。
	var b bin.Buffer
	b.PutID(0x9c4e7e8b) // messageEntityUnderline
	b.PutInt32(0)
	b.PutInt32(1)
	_, err = DecodeMessageEntity(bin.NewReader(b.Bytes()))
	assert.ErrorIs(t, err, merr.ErrUnknownConstructor)
}

func TestEncodeDoesNotMutate(t *testing.T) {
	in := sampleTheme()
	encode(t, in)
	assert.True(t, in.Flags.Zero())
	assert.True(t, in.Settings.Flags.Zero())
	assert.True(t, in.Settings.Wallpaper.(*WallPaperFile).Flags.Zero())
	assert.True(t, in.Settings.Wallpaper.(*WallPaperFile).Settings.Flags.Zero())

	// 未绑定的位原样写出。
	dc := &DcOption{Flags: 1 << 20, ID: 1, IPAddress: "1.1.1.1", Port: 80}
	raw := encode(t, dc)
	assert.Equal(t, []byte{0, 0, 0x10, 0}, raw[4:8])
	assert.Equal(t, tl.Flags(1<<20), dc.Flags)
}

func TestConcurrentEncodeShared(t *testing.T) {
	shared := sampleTheme()
	want := encode(t, shared)

	var g errgroup.Group
	for worker := 0; worker < 8; worker++ {
		g.Go(func() error {
			for iter := 0; iter < 100; iter++ {
				var b bin.Buffer
				if err := Encode(shared, &b); err != nil {
					return err
				}
				if !bytes.Equal(want, b.Bytes()) {
					return fmt.Errorf("iteration %d encoded differently", iter)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, sampleTheme(), shared)
}

func TestTypedDecode(t *testing.T) {
	raw := encode(t, &TextPlain{Text: "not a peer"})

	_, err := DecodePeer(bin.NewReader(raw))
	assert.ErrorIs(t, err, merr.ErrUnexpectedConstructor)

	rt, err := DecodeRichText(bin.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, &TextPlain{Text: "not a peer"}, rt)

	u, err := DecodeUpdate(bin.NewReader(encode(t, &UpdateTheme{Theme: sampleTheme()})))
	require.NoError(t, err)
	assert.IsType(t, &UpdateTheme{}, u)
}

func TestNestedFieldError(t *testing.T) {
	raw := encode(t, &TextURL{Text: &TextPlain{Text: "x"}, URL: "u", WebpageID: 1})

	_, err := Decode(raw[:len(raw)-4])
	assert.ErrorIs(t, err, merr.ErrTruncatedInput)
	assert.Contains(t, err.Error(), "textUrl.webpage_id")
}

func TestEncodeMissingRequiredObject(t *testing.T) {
	var b bin.Buffer
	b.PutInt32(1)

	err := Encode(&TextBold{}, &b)
	assert.ErrorIs(t, err, merr.ErrParameterMissing)
	assert.Equal(t, 4, b.Len())

	err = Encode(&ThemeSettings{}, &b)
	assert.ErrorIs(t, err, merr.ErrParameterMissing)
	assert.Contains(t, err.Error(), "themeSettings.base_theme")
	assert.Equal(t, 4, b.Len())

	assert.ErrorIs(t, EncodeAny(struct{}{}, &b), merr.ErrEncodeTypeMismatch)
	assert.ErrorIs(t, (*PeerUser)(nil).Encode(&b), merr.ErrParameterMissing)
}

func TestFailFastVector(t *testing.T) {
	build := func(bad func(b *bin.Buffer)) []byte {
		var b bin.Buffer
		b.PutID(UpdateDcOptionsTypeID)
		b.PutVectorHeader(5)
		for i := 0; i < 5; i++ {
			if i == 2 {
				bad(&b)
				continue
			}
			require.NoError(t, tl.EncodeBoxed(&b, sampleDcOption(int32(i))))
		}
		return b.Copy()
	}

	raw := build(func(b *bin.Buffer) { b.PutID(0xdeadbeef) })
	got, err := Decode(raw)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, merr.ErrVectorElement)
	assert.ErrorIs(t, err, merr.ErrUnknownConstructor)
	assert.Contains(t, err.Error(), "index=2")

	raw = build(func(b *bin.Buffer) {})
	// 去掉最后两个元素，第三个元素读到一半时输入结束。
	cut := len(raw) - 2*len(encode(t, sampleDcOption(0))) + 8
	got, err = Decode(raw[:cut])
	assert.Nil(t, got)
	assert.ErrorIs(t, err, merr.ErrTruncatedInput)
}

func TestDepthLimit(t *testing.T) {
	var text RichText = &TextPlain{Text: "leaf"}
	for i := 0; i < bin.MaxDepth; i++ {
		text = &TextBold{Text: text}
	}
	raw := encode(t, text)

	_, err := Decode(raw)
	assert.ErrorIs(t, err, merr.ErrLengthInvalid)

	shallow := encode(t, &TextBold{Text: &TextBold{Text: &TextPlain{Text: "ok"}}})
	_, err = Decode(shallow)
	assert.NoError(t, err)
}

func TestConcurrentIsolation(t *testing.T) {
	objs := samples()
	raws := make([][]byte, len(objs))
	for i, obj := range objs {
		raws[i] = encode(t, obj)
	}

	var g errgroup.Group
	for worker := 0; worker < 8; worker++ {
		worker := worker
		g.Go(func() error {
			for iter := 0; iter < 50; iter++ {
				i := (worker + iter) % len(raws)
				got, err := Decode(raws[i])
				if err != nil {
					return err
				}
				var b bin.Buffer
				if err := Encode(got, &b); err != nil {
					return err
				}
				if !bytes.Equal(raws[i], b.Bytes()) {
					return fmt.Errorf("%s re-encoded differently", got.TypeName())
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
