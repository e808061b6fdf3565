package api

import (
	"github.com/lk2023060901/danmu-tl-go/pkg/tl"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
)

const (
	PollAnswerVotersTypeID uint32 = 0x3b6ddad2
	PollResultsTypeID      uint32 = 0xbadcc1a3
)

// PollAnswerVoters pollAnswerVoters#3b6ddad2 flags:# chosen:flags.0?true correct:flags.1?true
// option:bytes voters:int = PollAnswerVoters;
type PollAnswerVoters struct {
	Flags   tl.Flags
	Chosen  bool
	Correct bool
	Option  []byte
	Voters  int32
}

func (*PollAnswerVoters) TypeID() uint32 { return PollAnswerVotersTypeID }
func (*PollAnswerVoters) TypeName() string { return "pollAnswerVoters" }

// SetFlags 按可选字段的取值重新计算 Flags 并写回。
func (p *PollAnswerVoters) SetFlags() {
	p.Flags = p.flags()
}

// flags 计算编码用的 Flags，未绑定的位保持不变。
func (p *PollAnswerVoters) flags() tl.Flags {
	f := p.Flags
	f.SetTo(0, p.Chosen)
	f.SetTo(1, p.Correct)
	return f
}

func (p *PollAnswerVoters) Encode(b *bin.Buffer) error {
	if p == nil {
		return tl.ErrNil("pollAnswerVoters")
	}
	f := p.flags()
	f.Encode(b)
	b.PutBytes(p.Option)
	b.PutInt32(p.Voters)
	return nil
}

func decodePollAnswerVoters(r *bin.Reader) (tl.Object, error) {
	var p PollAnswerVoters
	var err error
	if p.Flags, err = tl.DecodeFlags(r); err != nil {
		return nil, tl.FieldErr("pollAnswerVoters", "flags", err)
	}
	p.Chosen = p.Flags.Has(0)
	p.Correct = p.Flags.Has(1)
	if p.Option, err = r.Bytes(); err != nil {
		return nil, tl.FieldErr("pollAnswerVoters", "option", err)
	}
	if p.Voters, err = r.Int32(); err != nil {
		return nil, tl.FieldErr("pollAnswerVoters", "voters", err)
	}
	return &p, nil
}

// PollResults pollResults#badcc1a3 flags:# min:flags.0?true
// results:flags.1?Vector<PollAnswerVoters> total_voters:flags.2?int
// recent_voters:flags.3?Vector<int> solution:flags.4?string
// solution_entities:flags.4?Vector<MessageEntity> = PollResults;
//
// solution 与 solution_entities 共用 flags.4：只要其中一个存在就同时写出两者，
// 缺失的 solution 写空串，缺失的 solution_entities 写空 vector。
type PollResults struct {
	Flags            tl.Flags
	Min              bool
	Results          []*PollAnswerVoters
	TotalVoters      *int32
	RecentVoters     []int32
	Solution         *string
	SolutionEntities []MessageEntity
}

func (*PollResults) TypeID() uint32 { return PollResultsTypeID }
func (*PollResults) TypeName() string { return "pollResults" }

// SetFlags 按可选字段的取值重新计算 Flags 并写回。
func (p *PollResults) SetFlags() {
	p.Flags = p.flags()
}

// flags 计算编码用的 Flags，未绑定的位保持不变。
func (p *PollResults) flags() tl.Flags {
	f := p.Flags
	f.SetTo(0, p.Min)
	f.SetTo(1, p.Results != nil)
	f.SetTo(2, p.TotalVoters != nil)
	f.SetTo(3, p.RecentVoters != nil)
	f.SetTo(4, p.Solution != nil || p.SolutionEntities != nil)
	return f
}

func (p *PollResults) Encode(b *bin.Buffer) error {
	if p == nil {
		return tl.ErrNil("pollResults")
	}
	f := p.flags()
	f.Encode(b)
	if f.Has(1) {
		if err := tl.EncodeBoxedVector(b, p.Results, tl.ElemBoxed); err != nil {
			return tl.FieldErr("pollResults", "results", err)
		}
	}
	if f.Has(2) {
		b.PutInt32(*p.TotalVoters)
	}
	if f.Has(3) {
		if err := tl.EncodeIntVector(b, p.RecentVoters); err != nil {
			return tl.FieldErr("pollResults", "recent_voters", err)
		}
	}
	if f.Has(4) {
		b.PutString(deref(p.Solution))
		if err := tl.EncodeBoxedVector(b, p.SolutionEntities, tl.ElemBoxed); err != nil {
			return tl.FieldErr("pollResults", "solution_entities", err)
		}
	}
	return nil
}

func decodePollResults(r *bin.Reader) (tl.Object, error) {
	var p PollResults
	var err error
	if p.Flags, err = tl.DecodeFlags(r); err != nil {
		return nil, tl.FieldErr("pollResults", "flags", err)
	}
	p.Min = p.Flags.Has(0)
	if p.Flags.Has(1) {
		if p.Results, err = tl.DecodeBoxedVector[*PollAnswerVoters](Registry(), r, 0, tl.ElemBoxed); err != nil {
			return nil, tl.FieldErr("pollResults", "results", err)
		}
	}
	if p.Flags.Has(2) {
		if p.TotalVoters, err = readOptInt32(r); err != nil {
			return nil, tl.FieldErr("pollResults", "total_voters", err)
		}
	}
	if p.Flags.Has(3) {
		if p.RecentVoters, err = tl.DecodeIntVector(Registry(), r); err != nil {
			return nil, tl.FieldErr("pollResults", "recent_voters", err)
		}
	}
	if p.Flags.Has(4) {
		if p.Solution, err = readOptString(r); err != nil {
			return nil, tl.FieldErr("pollResults", "solution", err)
		}
		if p.SolutionEntities, err = tl.DecodeBoxedVector[MessageEntity](Registry(), r, 0, tl.ElemBoxed); err != nil {
			return nil, tl.FieldErr("pollResults", "solution_entities", err)
		}
	}
	return &p, nil
}
