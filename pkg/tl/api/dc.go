package api

import (
	"github.com/lk2023060901/danmu-tl-go/pkg/tl"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
)

const (
	DcOptionTypeID     uint32 = 0x18b7a10d
	FileHashTypeID     uint32 = 0x6242c773
	CdnConfigTypeID    uint32 = 0x5725e40a
	CdnPublicKeyTypeID uint32 = 0xc982eaba
)

// DcOption dcOption#18b7a10d flags:# ipv6:flags.0?true media_only:flags.1?true
// tcpo_only:flags.2?true cdn:flags.3?true static:flags.4?true id:int ip_address:string
// port:int secret:flags.10?bytes = DcOption;
type DcOption struct {
	Flags     tl.Flags
	Ipv6      bool
	MediaOnly bool
	TCPOOnly  bool
	CDN       bool
	Static    bool
	ID        int32
	IPAddress string
	Port      int32
	// Secret 为 nil 表示缺失，空切片表示存在但为空。
	Secret []byte
}

func (*DcOption) TypeID() uint32 { return DcOptionTypeID }
func (*DcOption) TypeName() string { return "dcOption" }

// SetFlags 按可选字段的取值重新计算 Flags 并写回。
func (d *DcOption) SetFlags() {
	d.Flags = d.flags()
}

// flags 计算编码用的 Flags，未绑定的位保持不变。
func (d *DcOption) flags() tl.Flags {
	f := d.Flags
	f.SetTo(0, d.Ipv6)
	f.SetTo(1, d.MediaOnly)
	f.SetTo(2, d.TCPOOnly)
	f.SetTo(3, d.CDN)
	f.SetTo(4, d.Static)
	f.SetTo(10, d.Secret != nil)
	return f
}

func (d *DcOption) Encode(b *bin.Buffer) error {
	if d == nil {
		return tl.ErrNil("dcOption")
	}
	f := d.flags()
	f.Encode(b)
	b.PutInt32(d.ID)
	b.PutString(d.IPAddress)
	b.PutInt32(d.Port)
	if f.Has(10) {
		b.PutBytes(d.Secret)
	}
	return nil
}

func decodeDcOption(r *bin.Reader) (tl.Object, error) {
	var d DcOption
	var err error
	if d.Flags, err = tl.DecodeFlags(r); err != nil {
		return nil, tl.FieldErr("dcOption", "flags", err)
	}
	d.Ipv6 = d.Flags.Has(0)
	d.MediaOnly = d.Flags.Has(1)
	d.TCPOOnly = d.Flags.Has(2)
	d.CDN = d.Flags.Has(3)
	d.Static = d.Flags.Has(4)
	if d.ID, err = r.Int32(); err != nil {
		return nil, tl.FieldErr("dcOption", "id", err)
	}
	if d.IPAddress, err = r.String(); err != nil {
		return nil, tl.FieldErr("dcOption", "ip_address", err)
	}
	if d.Port, err = r.Int32(); err != nil {
		return nil, tl.FieldErr("dcOption", "port", err)
	}
	if d.Flags.Has(10) {
		if d.Secret, err = r.Bytes(); err != nil {
			return nil, tl.FieldErr("dcOption", "secret", err)
		}
	}
	return &d, nil
}

// FileHash fileHash#6242c773 offset:int limit:int hash:bytes = FileHash;
type FileHash struct {
	Offset int32
	Limit  int32
	Hash   []byte
}

func (*FileHash) TypeID() uint32 { return FileHashTypeID }
func (*FileHash) TypeName() string { return "fileHash" }

func (f *FileHash) Encode(b *bin.Buffer) error {
	if f == nil {
		return tl.ErrNil("fileHash")
	}
	b.PutInt32(f.Offset)
	b.PutInt32(f.Limit)
	b.PutBytes(f.Hash)
	return nil
}

func decodeFileHash(r *bin.Reader) (tl.Object, error) {
	var f FileHash
	var err error
	if f.Offset, err = r.Int32(); err != nil {
		return nil, tl.FieldErr("fileHash", "offset", err)
	}
	if f.Limit, err = r.Int32(); err != nil {
		return nil, tl.FieldErr("fileHash", "limit", err)
	}
	if f.Hash, err = r.Bytes(); err != nil {
		return nil, tl.FieldErr("fileHash", "hash", err)
	}
	return &f, nil
}

// CdnConfig cdnConfig#5725e40a public_keys:Vector<CdnPublicKey> = CdnConfig;
type CdnConfig struct {
	PublicKeys []*CdnPublicKey
}

func (*CdnConfig) TypeID() uint32 { return CdnConfigTypeID }
func (*CdnConfig) TypeName() string { return "cdnConfig" }

func (c *CdnConfig) Encode(b *bin.Buffer) error {
	if c == nil {
		return tl.ErrNil("cdnConfig")
	}
	return tl.EncodeBoxedVector(b, c.PublicKeys, tl.ElemBoxed)
}

func decodeCdnConfig(r *bin.Reader) (tl.Object, error) {
	v, err := tl.DecodeBoxedVector[*CdnPublicKey](Registry(), r, 0, tl.ElemBoxed)
	if err != nil {
		return nil, tl.FieldErr("cdnConfig", "public_keys", err)
	}
	return &CdnConfig{PublicKeys: v}, nil
}

// CdnPublicKey cdnPublicKey#c982eaba dc_id:int public_key:string = CdnPublicKey;
type CdnPublicKey struct {
	DcID      int32
	PublicKey string
}

func (*CdnPublicKey) TypeID() uint32 { return CdnPublicKeyTypeID }
func (*CdnPublicKey) TypeName() string { return "cdnPublicKey" }

func (c *CdnPublicKey) Encode(b *bin.Buffer) error {
	if c == nil {
		return tl.ErrNil("cdnPublicKey")
	}
	b.PutInt32(c.DcID)
	b.PutString(c.PublicKey)
	return nil
}

func decodeCdnPublicKey(r *bin.Reader) (tl.Object, error) {
	var c CdnPublicKey
	var err error
	if c.DcID, err = r.Int32(); err != nil {
		return nil, tl.FieldErr("cdnPublicKey", "dc_id", err)
	}
	if c.PublicKey, err = r.String(); err != nil {
		return nil, tl.FieldErr("cdnPublicKey", "public_key", err)
	}
	return &c, nil
}
