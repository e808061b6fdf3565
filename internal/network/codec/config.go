package codec

import (
	"github.com/klauspost/compress/gzip"

	"github.com/lk2023060901/danmu-tl-go/internal/network/compressor"
	"github.com/lk2023060901/danmu-tl-go/internal/network/serializer"
	"github.com/lk2023060901/danmu-tl-go/pkg/log"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
	"github.com/lk2023060901/danmu-tl-go/pkg/util/merr"
	"github.com/lk2023060901/danmu-tl-go/pkg/util/viper"
)

const (
	DefaultMaxPayloadSize  = 16 << 20
	DefaultMinCompressSize = 1024
)

// Options 为 Codec 的可调参数。Serializer 与 Compressor 只能通过代码注入。
type Options struct {
	// MaxPayloadSize 为单个负载（以及 gzip_packed 解压结果）的最大字节数。
	MaxPayloadSize int `toml:"max-payload-size" json:"max-payload-size" mapstructure:"max-payload-size"`
	// MinCompressSize 为触发 gzip_packed 包装的最小负载字节数。
	MinCompressSize   int  `toml:"min-compress-size" json:"min-compress-size" mapstructure:"min-compress-size"`
	EnableCompression bool `toml:"enable-compression" json:"enable-compression" mapstructure:"enable-compression"`
	CompressionLevel  int  `toml:"compression-level" json:"compression-level" mapstructure:"compression-level"`
	// DecodeWorkers 为 DecodeBatch 使用的协程数，<= 0 时取 CPU 数。
	DecodeWorkers int `toml:"decode-workers" json:"decode-workers" mapstructure:"decode-workers"`

	Serializer serializer.Serializer `toml:"-" json:"-" mapstructure:"-"`
	Compressor compressor.Compressor `toml:"-" json:"-" mapstructure:"-"`
}

// DefaultOptions 返回缺省参数。
func DefaultOptions() Options {
	return Options{
		MaxPayloadSize:   DefaultMaxPayloadSize,
		MinCompressSize:  DefaultMinCompressSize,
		CompressionLevel: gzip.DefaultCompression,
		DecodeWorkers:    DefaultWorkers(),
	}
}

func (o Options) withDefaults() Options {
	if o.MaxPayloadSize == 0 {
		o.MaxPayloadSize = DefaultMaxPayloadSize
	}
	if o.DecodeWorkers <= 0 {
		o.DecodeWorkers = DefaultWorkers()
	}
	return o
}

// Validate 校验参数取值。
func (o Options) Validate() error {
	if o.MaxPayloadSize < bin.Word {
		return merr.WrapErrParameterInvalidMsg("max-payload-size must be at least %d, got %d", bin.Word, o.MaxPayloadSize)
	}
	if o.MinCompressSize < 0 {
		return merr.WrapErrParameterInvalidMsg("min-compress-size must not be negative, got %d", o.MinCompressSize)
	}
	if o.CompressionLevel < gzip.HuffmanOnly || o.CompressionLevel > gzip.BestCompression {
		return merr.WrapErrParameterInvalidMsg("invalid compression-level %d", o.CompressionLevel)
	}
	return nil
}

// Config 是 codec 进程的完整配置。
type Config struct {
	Log   log.Config `toml:"log" json:"log" mapstructure:"log"`
	Codec Options    `toml:"codec" json:"codec" mapstructure:"codec"`
}

// LoadConfig 从 YAML/JSON 文件加载配置，文件中缺失的项使用缺省值。
func LoadConfig(path string) (*Config, error) {
	c := viper.New()
	def := DefaultOptions()
	c.SetDefault("log.level", "info")
	c.SetDefault("log.format", "json")
	c.SetDefault("codec.max-payload-size", def.MaxPayloadSize)
	c.SetDefault("codec.min-compress-size", def.MinCompressSize)
	c.SetDefault("codec.enable-compression", def.EnableCompression)
	c.SetDefault("codec.compression-level", def.CompressionLevel)
	c.SetDefault("codec.decode-workers", def.DecodeWorkers)

	if err := c.LoadFile(path); err != nil {
		return nil, merr.WrapErrIoFailed(path, err)
	}
	cfg := &Config{}
	if err := c.Unmarshal(cfg); err != nil {
		return nil, merr.WrapErrParameterInvalidMsg("decode config %s: %s", path, err.Error())
	}
	if err := cfg.Codec.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
