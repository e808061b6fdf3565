package api

import (
	"github.com/lk2023060901/danmu-tl-go/pkg/tl"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
)

const (
	UpdateMessagePollVoteTypeID uint32 = 0x42f88f2c
	UpdateDcOptionsTypeID       uint32 = 0x8e5e9873
	UpdateThemeTypeID           uint32 = 0x8216fba3
)

// Update 是服务端推送事件的和类型。
type Update interface {
	tl.Object
	isUpdate()
}

// UpdateMessagePollVote updateMessagePollVote#42f88f2c poll_id:long user_id:int
// options:Vector<bytes> = Update;
type UpdateMessagePollVote struct {
	PollID  int64
	UserID  int32
	Options [][]byte
}

func (*UpdateMessagePollVote) TypeID() uint32 { return UpdateMessagePollVoteTypeID }
func (*UpdateMessagePollVote) TypeName() string { return "updateMessagePollVote" }
func (*UpdateMessagePollVote) isUpdate() {}

func (u *UpdateMessagePollVote) Encode(b *bin.Buffer) error {
	if u == nil {
		return tl.ErrNil("updateMessagePollVote")
	}
	b.PutInt64(u.PollID)
	b.PutInt32(u.UserID)
	tl.EncodeBytesVector(b, u.Options)
	return nil
}

func decodeUpdateMessagePollVote(r *bin.Reader) (tl.Object, error) {
	var u UpdateMessagePollVote
	var err error
	if u.PollID, err = r.Int64(); err != nil {
		return nil, tl.FieldErr("updateMessagePollVote", "poll_id", err)
	}
	if u.UserID, err = r.Int32(); err != nil {
		return nil, tl.FieldErr("updateMessagePollVote", "user_id", err)
	}
	if u.Options, err = tl.DecodeBytesVector(r); err != nil {
		return nil, tl.FieldErr("updateMessagePollVote", "options", err)
	}
	return &u, nil
}

// UpdateDcOptions updateDcOptions#8e5e9873 dc_options:Vector<DcOption> = Update;
type UpdateDcOptions struct {
	DcOptions []*DcOption
}

func (*UpdateDcOptions) TypeID() uint32 { return UpdateDcOptionsTypeID }
func (*UpdateDcOptions) TypeName() string { return "updateDcOptions" }
func (*UpdateDcOptions) isUpdate() {}

func (u *UpdateDcOptions) Encode(b *bin.Buffer) error {
	if u == nil {
		return tl.ErrNil("updateDcOptions")
	}
	return tl.EncodeBoxedVector(b, u.DcOptions, tl.ElemBoxed)
}

func decodeUpdateDcOptions(r *bin.Reader) (tl.Object, error) {
	v, err := tl.DecodeBoxedVector[*DcOption](Registry(), r, 0, tl.ElemBoxed)
	if err != nil {
		return nil, tl.FieldErr("updateDcOptions", "dc_options", err)
	}
	return &UpdateDcOptions{DcOptions: v}, nil
}

// UpdateTheme updateTheme#8216fba3 theme:Theme = Update;
type UpdateTheme struct {
	Theme *Theme
}

func (*UpdateTheme) TypeID() uint32 { return UpdateThemeTypeID }
func (*UpdateTheme) TypeName() string { return "updateTheme" }
func (*UpdateTheme) isUpdate() {}

func (u *UpdateTheme) Encode(b *bin.Buffer) error {
	if u == nil {
		return tl.ErrNil("updateTheme")
	}
	return tl.EncodeBoxed(b, u.Theme)
}

func decodeUpdateTheme(r *bin.Reader) (tl.Object, error) {
	v, err := decodeBoxed[*Theme](r)
	if err != nil {
		return nil, tl.FieldErr("updateTheme", "theme", err)
	}
	return &UpdateTheme{Theme: v}, nil
}
