package api

import (
	"github.com/lk2023060901/danmu-tl-go/pkg/tl"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
)

const (
	PeerUserTypeID    uint32 = 0x9db1bc6d
	PeerChatTypeID    uint32 = 0xbad0e5bb
	PeerChannelTypeID uint32 = 0xbddde532
)

// Peer 是 peerUser | peerChat | peerChannel 的和类型。
type Peer interface {
	tl.Object
	isPeer()
}

// PeerUser peerUser#9db1bc6d user_id:int = Peer;
type PeerUser struct {
	UserID int32
}

func (*PeerUser) TypeID() uint32 { return PeerUserTypeID }
func (*PeerUser) TypeName() string { return "peerUser" }
func (*PeerUser) isPeer() {}

func (p *PeerUser) Encode(b *bin.Buffer) error {
	if p == nil {
		return tl.ErrNil("peerUser")
	}
	b.PutInt32(p.UserID)
	return nil
}

func decodePeerUser(r *bin.Reader) (tl.Object, error) {
	v, err := r.Int32()
	if err != nil {
		return nil, tl.FieldErr("peerUser", "user_id", err)
	}
	return &PeerUser{UserID: v}, nil
}

// PeerChat peerChat#bad0e5bb chat_id:int = Peer;
type PeerChat struct {
	ChatID int32
}

func (*PeerChat) TypeID() uint32 { return PeerChatTypeID }
func (*PeerChat) TypeName() string { return "peerChat" }
func (*PeerChat) isPeer() {}

func (p *PeerChat) Encode(b *bin.Buffer) error {
	if p == nil {
		return tl.ErrNil("peerChat")
	}
	b.PutInt32(p.ChatID)
	return nil
}

func decodePeerChat(r *bin.Reader) (tl.Object, error) {
	v, err := r.Int32()
	if err != nil {
		return nil, tl.FieldErr("peerChat", "chat_id", err)
	}
	return &PeerChat{ChatID: v}, nil
}

// PeerChannel peerChannel#bddde532 channel_id:int = Peer;
type PeerChannel struct {
	ChannelID int32
}

func (*PeerChannel) TypeID() uint32 { return PeerChannelTypeID }
func (*PeerChannel) TypeName() string { return "peerChannel" }
func (*PeerChannel) isPeer() {}

func (p *PeerChannel) Encode(b *bin.Buffer) error {
	if p == nil {
		return tl.ErrNil("peerChannel")
	}
	b.PutInt32(p.ChannelID)
	return nil
}

func decodePeerChannel(r *bin.Reader) (tl.Object, error) {
	v, err := r.Int32()
	if err != nil {
		return nil, tl.FieldErr("peerChannel", "channel_id", err)
	}
	return &PeerChannel{ChannelID: v}, nil
}
