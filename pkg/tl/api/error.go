package api

import (
	"fmt"

	"github.com/lk2023060901/danmu-tl-go/pkg/tl"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
)

const ErrorTypeID uint32 = 0xc4b9f9bb

// Error error#c4b9f9bb code:int text:string = Error;
type Error struct {
	Code int32
	Text string
}

func (*Error) TypeID() uint32 { return ErrorTypeID }
func (*Error) TypeName() string { return "error" }

func (e *Error) String() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%d %s", e.Code, e.Text)
}

func (e *Error) Encode(b *bin.Buffer) error {
	if e == nil {
		return tl.ErrNil("error")
	}
	b.PutInt32(e.Code)
	b.PutString(e.Text)
	return nil
}

func decodeError(r *bin.Reader) (tl.Object, error) {
	var e Error
	var err error
	if e.Code, err = r.Int32(); err != nil {
		return nil, tl.FieldErr("error", "code", err)
	}
	if e.Text, err = r.String(); err != nil {
		return nil, tl.FieldErr("error", "text", err)
	}
	return &e, nil
}
