package bin

import (
	"encoding/binary"
	"math"

	"github.com/lk2023060901/danmu-tl-go/pkg/util/merr"
)

// MaxDepth 为对象嵌套解码的最大深度。
const MaxDepth = 256

// Reader 是基于不可变字节切片的解码游标。
type Reader struct {
	buf   []byte
	off   int
	depth int
}

// NewReader 创建一个从 buf 起始位置读取的 Reader，buf 在解码期间不得被修改。
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len 返回剩余未读字节数。
func (r *Reader) Len() int {
	return len(r.buf) - r.off
}

// Offset 返回当前读偏移。
func (r *Reader) Offset() int {
	return r.off
}

// Done 判断是否已读完全部输入。
func (r *Reader) Done() bool {
	return r.off >= len(r.buf)
}

// Enter 进入一层对象解码，超过 MaxDepth 时返回错误。必须与 Leave 成对调用。
func (r *Reader) Enter() error {
	if r.depth >= MaxDepth {
		return merr.WrapErrLengthInvalid("depth", r.depth+1, 0, MaxDepth)
	}
	r.depth++
	return nil
}

// Leave 退出一层对象解码。
func (r *Reader) Leave() {
	if r.depth > 0 {
		r.depth--
	}
}

func (r *Reader) need(n int) error {
	if n < 0 || r.Len() < n {
		return merr.WrapErrTruncatedInput(n, r.Len())
	}
	return nil
}

func (r *Reader) Uint32() (uint32, error) {
	if err := r.need(Word); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += Word
	return v, nil
}

func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// ID 读取构造器 ID。
func (r *Reader) ID() (uint32, error) {
	return r.Uint32()
}

// PeekID 读取构造器 ID 但不移动读偏移。
func (r *Reader) PeekID() (uint32, error) {
	if err := r.need(Word); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.buf[r.off:]), nil
}

// ConsumeID 读取构造器 ID 并校验其等于 id，不相等时不移动读偏移。
func (r *Reader) ConsumeID(id uint32) error {
	got, err := r.PeekID()
	if err != nil {
		return err
	}
	if got != id {
		return merr.WrapErrUnexpectedConstructor(merr.FormatID(id), got)
	}
	r.off += Word
	return nil
}

func (r *Reader) Int64() (int64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return int64(v), nil
}

func (r *Reader) Double() (float64, error) {
	v, err := r.Int64()
	return math.Float64frombits(uint64(v)), err
}

// Bool 读取 boxed 的 boolTrue/boolFalse。
func (r *Reader) Bool() (bool, error) {
	id, err := r.PeekID()
	if err != nil {
		return false, err
	}
	switch id {
	case TypeBoolTrue:
		r.off += Word
		return true, nil
	case TypeBoolFalse:
		r.off += Word
		return false, nil
	default:
		return false, merr.WrapErrUnexpectedConstructor("Bool", id)
	}
}

// Bytes 读取带长度前缀的字节串，返回值为拷贝，填充字节被跳过。
func (r *Reader) Bytes() ([]byte, error) {
	if err := r.need(1); err != nil {
		return nil, err
	}
	n, header := int(r.buf[r.off]), 1
	if n == longLenMarker {
		if err := r.need(4); err != nil {
			return nil, err
		}
		b := r.buf[r.off:]
		n, header = int(b[1])|int(b[2])<<8|int(b[3])<<16, 4
	}
	// 先按剩余字节校验声明长度，避免恶意长度触发大块分配。
	total := paddedLen(header + n)
	if err := r.need(total); err != nil {
		return nil, err
	}
	start := r.off + header
	out := make([]byte, n)
	copy(out, r.buf[start:start+n])
	r.off += total
	return out, nil
}

// String 读取带长度前缀的字符串。
func (r *Reader) String() (string, error) {
	b, err := r.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Raw 读取 n 个原始字节，返回值为拷贝。
func (r *Reader) Raw(n int) ([]byte, error) {
	if n < 0 {
		return nil, merr.WrapErrLengthInvalid("raw", n, 0, r.Len())
	}
	if err := r.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.buf[r.off:r.off+n])
	r.off += n
	return out, nil
}

// Skip 跳过 n 个字节。
func (r *Reader) Skip(n int) error {
	if n < 0 {
		return merr.WrapErrLengthInvalid("skip", n, 0, r.Len())
	}
	if err := r.need(n); err != nil {
		return err
	}
	r.off += n
	return nil
}

// Rest 返回剩余未读字节的拷贝并移动到末尾。
func (r *Reader) Rest() []byte {
	out, _ := r.Raw(r.Len())
	return out
}

// VectorLen 读取 vector 的元素个数，负数视为非法长度。
func (r *Reader) VectorLen() (int, error) {
	n, err := r.Int32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		r.off -= Word
		return 0, merr.WrapErrLengthInvalid("vector", int(n), 0, math.MaxInt32)
	}
	return int(n), nil
}

// VectorHeader 读取 boxed vector 标记与元素个数，失败时不移动读偏移。
func (r *Reader) VectorHeader() (int, error) {
	start := r.off
	if err := r.ConsumeID(TypeVector); err != nil {
		return 0, err
	}
	n, err := r.VectorLen()
	if err != nil {
		r.off = start
		return 0, err
	}
	return n, nil
}
