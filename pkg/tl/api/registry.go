// Package api 是 TL schema 中一组代表性类型的绑定。
//
// 每个构造器对应一个结构体：TypeID/TypeName 返回构造器标识，Encode 以 bare 形式写出字段，
// 解码函数统一登记在 Registry 中。和类型（Peer、JSONValue、RichText 等）以接口表示，
// 只有单一构造器的类型直接使用结构体指针。
package api

import (
	"sync"

	"github.com/lk2023060901/danmu-tl-go/pkg/tl"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
)

var (
	registryOnce sync.Once
	registry     *tl.Registry
)

// Registry 返回本 schema 的构造器注册表，首次调用时构造，此后只读。
func Registry() *tl.Registry {
	registryOnce.Do(func() {
		registry = tl.MustNewRegistry(entries()...)
	})
	return registry
}

func entries() []tl.Entry {
	return append(tl.BuiltinEntries(),
		tl.Entry{ID: PeerUserTypeID, Name: "peerUser", Decode: decodePeerUser},
		tl.Entry{ID: PeerChatTypeID, Name: "peerChat", Decode: decodePeerChat},
		tl.Entry{ID: PeerChannelTypeID, Name: "peerChannel", Decode: decodePeerChannel},

		tl.Entry{ID: ErrorTypeID, Name: "error", Decode: decodeError},

		tl.Entry{ID: JSONNullTypeID, Name: "jsonNull", Decode: decodeJSONNull},
		tl.Entry{ID: JSONBoolTypeID, Name: "jsonBool", Decode: decodeJSONBool},
		tl.Entry{ID: JSONNumberTypeID, Name: "jsonNumber", Decode: decodeJSONNumber},
		tl.Entry{ID: JSONStringTypeID, Name: "jsonString", Decode: decodeJSONString},
		tl.Entry{ID: JSONArrayTypeID, Name: "jsonArray", Decode: decodeJSONArray},
		tl.Entry{ID: JSONObjectTypeID, Name: "jsonObject", Decode: decodeJSONObject},
		tl.Entry{ID: JSONObjectValueTypeID, Name: "jsonObjectValue", Decode: decodeJSONObjectValue},

		tl.Entry{ID: TextEmptyTypeID, Name: "textEmpty", Decode: decodeTextEmpty},
		tl.Entry{ID: TextPlainTypeID, Name: "textPlain", Decode: decodeTextPlain},
		tl.Entry{ID: TextBoldTypeID, Name: "textBold", Decode: decodeTextBold},
		tl.Entry{ID: TextURLTypeID, Name: "textUrl", Decode: decodeTextURL},
		tl.Entry{ID: TextConcatTypeID, Name: "textConcat", Decode: decodeTextConcat},
		tl.Entry{ID: TextImageTypeID, Name: "textImage", Decode: decodeTextImage},

		tl.Entry{ID: BaseThemeClassicTypeID, Name: "baseThemeClassic", Decode: decodeBaseThemeClassic},
		tl.Entry{ID: BaseThemeDayTypeID, Name: "baseThemeDay", Decode: decodeBaseThemeDay},
		tl.Entry{ID: BaseThemeNightTypeID, Name: "baseThemeNight", Decode: decodeBaseThemeNight},
		tl.Entry{ID: BaseThemeTintedTypeID, Name: "baseThemeTinted", Decode: decodeBaseThemeTinted},
		tl.Entry{ID: BaseThemeArcticTypeID, Name: "baseThemeArctic", Decode: decodeBaseThemeArctic},

		tl.Entry{ID: WallPaperSettingsTypeID, Name: "wallPaperSettings", Decode: decodeWallPaperSettings},
		tl.Entry{ID: WallPaperNoFileTypeID, Name: "wallPaperNoFile", Decode: decodeWallPaperNoFile},
		tl.Entry{ID: WallPaperTypeID, Name: "wallPaper", Decode: decodeWallPaper},
		tl.Entry{ID: ThemeSettingsTypeID, Name: "themeSettings", Decode: decodeThemeSettings},
		tl.Entry{ID: DocumentEmptyTypeID, Name: "documentEmpty", Decode: decodeDocumentEmpty},
		tl.Entry{ID: ThemeTypeID, Name: "theme", Decode: decodeTheme},

		tl.Entry{ID: DcOptionTypeID, Name: "dcOption", Decode: decodeDcOption},
		tl.Entry{ID: FileHashTypeID, Name: "fileHash", Decode: decodeFileHash},
		tl.Entry{ID: CdnConfigTypeID, Name: "cdnConfig", Decode: decodeCdnConfig},
		tl.Entry{ID: CdnPublicKeyTypeID, Name: "cdnPublicKey", Decode: decodeCdnPublicKey},

		tl.Entry{ID: MessageEntityUnknownTypeID, Name: "messageEntityUnknown", Decode: decodeMessageEntityUnknown},
		tl.Entry{ID: MessageEntityURLTypeID, Name: "messageEntityUrl", Decode: decodeMessageEntityURL},
		tl.Entry{ID: MessageEntityBoldTypeID, Name: "messageEntityBold", Decode: decodeMessageEntityBold},
		tl.Entry{ID: MessageEntityItalicTypeID, Name: "messageEntityItalic", Decode: decodeMessageEntityItalic},
		tl.Entry{ID: MessageEntityCodeTypeID, Name: "messageEntityCode", Decode: decodeMessageEntityCode},
		tl.Entry{ID: MessageEntityPreTypeID, Name: "messageEntityPre", Decode: decodeMessageEntityPre},
		tl.Entry{ID: MessageEntityTextURLTypeID, Name: "messageEntityTextUrl", Decode: decodeMessageEntityTextURL},

		tl.Entry{ID: PollAnswerVotersTypeID, Name: "pollAnswerVoters", Decode: decodePollAnswerVoters},
		tl.Entry{ID: PollResultsTypeID, Name: "pollResults", Decode: decodePollResults},

		tl.Entry{ID: UpdateMessagePollVoteTypeID, Name: "updateMessagePollVote", Decode: decodeUpdateMessagePollVote},
		tl.Entry{ID: UpdateDcOptionsTypeID, Name: "updateDcOptions", Decode: decodeUpdateDcOptions},
		tl.Entry{ID: UpdateThemeTypeID, Name: "updateTheme", Decode: decodeUpdateTheme},
	)
}

// Decode 从 buf 起始位置解码一个 boxed 对象。
func Decode(buf []byte) (tl.Object, error) {
	return Registry().Decode(buf)
}

// DecodeWithID 在构造器 ID 已读出时解码对象。
func DecodeWithID(r *bin.Reader, id uint32) (tl.Object, error) {
	return Registry().DecodeWithID(r, id)
}

// Encode 以 boxed 形式写入 obj。
func Encode(obj tl.Object, b *bin.Buffer) error {
	return Registry().Encode(obj, b, true)
}

// EncodeAny 以 boxed 形式写入动态值 v。
func EncodeAny(v any, b *bin.Buffer) error {
	return Registry().EncodeAny(v, b, true)
}

func readOptInt32(r *bin.Reader) (*int32, error) {
	v, err := r.Int32()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func readOptString(r *bin.Reader) (*string, error) {
	v, err := r.String()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

func decodeBoxed[T any](r *bin.Reader) (T, error) {
	return tl.DecodeBoxed[T](Registry(), r)
}

func DecodePeer(r *bin.Reader) (Peer, error)           { return decodeBoxed[Peer](r) }
func DecodeJSONValue(r *bin.Reader) (JSONValue, error) { return decodeBoxed[JSONValue](r) }
func DecodeRichText(r *bin.Reader) (RichText, error)   { return decodeBoxed[RichText](r) }
func DecodeBaseTheme(r *bin.Reader) (BaseTheme, error) { return decodeBoxed[BaseTheme](r) }
func DecodeWallPaper(r *bin.Reader) (WallPaper, error) { return decodeBoxed[WallPaper](r) }
func DecodeDocument(r *bin.Reader) (Document, error)   { return decodeBoxed[Document](r) }
func DecodeUpdate(r *bin.Reader) (Update, error)       { return decodeBoxed[Update](r) }

func DecodeMessageEntity(r *bin.Reader) (MessageEntity, error) {
	return decodeBoxed[MessageEntity](r)
}
