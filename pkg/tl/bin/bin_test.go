package bin

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/danmu-tl-go/pkg/util/merr"
)

func TestPrimitives(t *testing.T) {
	var b Buffer
	b.PutInt32(-2)
	b.PutUint32(0xdeadbeef)
	b.PutInt64(math.MinInt64)
	b.PutDouble(3.25)
	b.PutBool(true)
	b.PutBool(false)
	require.NoError(t, b.Err())
	require.Equal(t, 4+4+8+8+4+4, b.Len())
	assert.Equal(t, []byte{0xfe, 0xff, 0xff, 0xff}, b.Bytes()[:4])

	r := NewReader(b.Copy())
	i32, err := r.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(-2), i32)

	u32, err := r.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), u32)

	i64, err := r.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), i64)

	f, err := r.Double()
	require.NoError(t, err)
	assert.Equal(t, 3.25, f)

	v, err := r.Bool()
	require.NoError(t, err)
	assert.True(t, v)
	v, err = r.Bool()
	require.NoError(t, err)
	assert.False(t, v)

	assert.True(t, r.Done())
}

func TestBytesPadding(t *testing.T) {
	cases := []struct {
		name    string
		n       int
		wireLen int
		header  []byte
	}{
		{"empty", 0, 4, []byte{0}},
		{"one", 1, 4, []byte{1}},
		{"three", 3, 4, []byte{3}},
		{"four", 4, 8, []byte{4}},
		{"253", 253, 256, []byte{253}},
		{"254", 254, 260, []byte{0xfe, 254, 0, 0}},
		{"256", 256, 260, []byte{0xfe, 0, 1, 0}},
		{"1000", 1000, 1004, []byte{0xfe, 0xe8, 0x03, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := bytes.Repeat([]byte{0xab}, tc.n)

			var b Buffer
			b.PutBytes(payload)
			require.NoError(t, b.Err())
			require.Equal(t, tc.wireLen, b.Len())
			assert.Equal(t, tc.wireLen, EncodedBytesLen(tc.n))
			assert.Equal(t, tc.header, b.Bytes()[:len(tc.header)])
			// 填充字节全部为 0。
			for _, c := range b.Bytes()[len(tc.header)+tc.n:] {
				assert.Equal(t, byte(0), c)
			}

			r := NewReader(b.Bytes())
			got, err := r.Bytes()
			require.NoError(t, err)
			assert.Equal(t, payload, got)
			assert.Equal(t, tc.wireLen, r.Offset())
		})
	}
}

func TestBytesIsCopy(t *testing.T) {
	var b Buffer
	b.PutString("abc")
	raw := b.Copy()

	r := NewReader(raw)
	got, err := r.Bytes()
	require.NoError(t, err)
	raw[1] = 'x'
	assert.Equal(t, []byte("abc"), got)
}

func TestBytesLengthFF(t *testing.T) {
	// 0xFF 不是长格式标记，按短格式长度 255 处理，1+255 恰好对齐无需填充。
	raw := append([]byte{0xff}, bytes.Repeat([]byte{1}, 255)...)
	r := NewReader(raw)
	got, err := r.Bytes()
	require.NoError(t, err)
	assert.Len(t, got, 255)
	assert.True(t, r.Done())
}

func TestTruncatedDoesNotAdvance(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
		read func(r *Reader) error
	}{
		{"int32", []byte{1, 2, 3}, func(r *Reader) error { _, err := r.Int32(); return err }},
		{"int64", []byte{1, 2, 3, 4, 5, 6, 7}, func(r *Reader) error { _, err := r.Int64(); return err }},
		{"double", []byte{1}, func(r *Reader) error { _, err := r.Double(); return err }},
		{"bool", []byte{}, func(r *Reader) error { _, err := r.Bool(); return err }},
		{"bytes-empty", []byte{}, func(r *Reader) error { _, err := r.Bytes(); return err }},
		{"bytes-short", []byte{5, 'a', 'b', 'c'}, func(r *Reader) error { _, err := r.Bytes(); return err }},
		{"bytes-missing-pad", []byte{2, 'a', 'b'}, func(r *Reader) error { _, err := r.Bytes(); return err }},
		{"bytes-long-header", []byte{0xfe, 1}, func(r *Reader) error { _, err := r.Bytes(); return err }},
		{"bytes-long-huge", []byte{0xfe, 0xff, 0xff, 0xff, 0}, func(r *Reader) error { _, err := r.Bytes(); return err }},
		{"raw", []byte{1, 2}, func(r *Reader) error { _, err := r.Raw(3); return err }},
		{"skip", []byte{1, 2}, func(r *Reader) error { return r.Skip(3) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewReader(tc.raw)
			err := tc.read(r)
			require.Error(t, err)
			assert.ErrorIs(t, err, merr.ErrTruncatedInput)
			assert.True(t, merr.IsInputError(err))
			assert.Equal(t, 0, r.Offset())
		})
	}
}

func TestConsumeID(t *testing.T) {
	var b Buffer
	b.PutID(0x9db1bc6d)
	r := NewReader(b.Bytes())

	err := r.ConsumeID(0xbad0e5bb)
	assert.ErrorIs(t, err, merr.ErrUnexpectedConstructor)
	assert.Equal(t, 0, r.Offset())

	id, err := r.PeekID()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x9db1bc6d), id)
	assert.Equal(t, 0, r.Offset())

	require.NoError(t, r.ConsumeID(0x9db1bc6d))
	assert.True(t, r.Done())
}

func TestBoolUnexpected(t *testing.T) {
	var b Buffer
	b.PutID(0x12345678)
	r := NewReader(b.Bytes())
	_, err := r.Bool()
	assert.ErrorIs(t, err, merr.ErrUnexpectedConstructor)
	assert.Equal(t, 0, r.Offset())
}

func TestVectorHeader(t *testing.T) {
	var b Buffer
	b.PutVectorHeader(3)
	assert.Equal(t, []byte{0x15, 0xc4, 0xb5, 0x1c, 3, 0, 0, 0}, b.Bytes())

	r := NewReader(b.Bytes())
	n, err := r.VectorHeader()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	b.Reset()
	b.PutVectorHeader(-1)
	r = NewReader(b.Bytes())
	_, err = r.VectorHeader()
	assert.ErrorIs(t, err, merr.ErrLengthInvalid)
	assert.Equal(t, 0, r.Offset())

	r = NewReader(b.Bytes()[:6])
	_, err = r.VectorHeader()
	assert.ErrorIs(t, err, merr.ErrTruncatedInput)
	assert.Equal(t, 0, r.Offset())
}

func TestPutBytesTooLarge(t *testing.T) {
	var b Buffer
	b.PutBytes(make([]byte, MaxBytesLen+1))
	assert.ErrorIs(t, b.Err(), merr.ErrLengthInvalid)
	assert.Equal(t, 0, b.Len())

	// 仅记录第一个错误。
	b.PutBytes(make([]byte, MaxBytesLen+2))
	assert.Contains(t, b.Err().Error(), "16777216")

	b.Reset()
	assert.NoError(t, b.Err())
}

func TestPutRawAndRest(t *testing.T) {
	var inner Buffer
	inner.PutInt32(7)
	inner.PutString("x")

	var outer Buffer
	outer.PutID(0xc4b9f9bb)
	outer.PutRaw(inner.Bytes())

	r := NewReader(outer.Bytes())
	require.NoError(t, r.Skip(Word))
	assert.Equal(t, inner.Bytes(), r.Rest())
	assert.Equal(t, 0, r.Len())
}

func TestRawNegative(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	_, err := r.Raw(-1)
	assert.ErrorIs(t, err, merr.ErrLengthInvalid)
	assert.ErrorIs(t, r.Skip(-1), merr.ErrLengthInvalid)
}

func TestDepth(t *testing.T) {
	r := NewReader(nil)
	for i := 0; i < MaxDepth; i++ {
		require.NoError(t, r.Enter())
	}
	assert.ErrorIs(t, r.Enter(), merr.ErrLengthInvalid)
	r.Leave()
	assert.NoError(t, r.Enter())

	for i := 0; i < MaxDepth+5; i++ {
		r.Leave()
	}
	assert.NoError(t, r.Enter())
}

func TestTruncate(t *testing.T) {
	var b Buffer
	b.PutInt32(1)
	b.PutInt32(2)
	b.PutBytes(make([]byte, MaxBytesLen+1))
	require.Error(t, b.Err())

	b.Truncate(4, nil)
	assert.Equal(t, 4, b.Len())
	assert.NoError(t, b.Err())

	b.Truncate(100, merr.ErrIoFailed)
	assert.Equal(t, 4, b.Len())
	assert.ErrorIs(t, b.Err(), merr.ErrIoFailed)
}
