package codec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/danmu-tl-go/pkg/util/merr"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, "tl.yaml", `
log:
  level: debug
codec:
  enable-compression: true
  min-compress-size: 10
  decode-workers: 3
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Codec.EnableCompression)
	assert.Equal(t, 10, cfg.Codec.MinCompressSize)
	assert.Equal(t, 3, cfg.Codec.DecodeWorkers)
	assert.Equal(t, DefaultMaxPayloadSize, cfg.Codec.MaxPayloadSize)
	assert.Equal(t, gzip.DefaultCompression, cfg.Codec.CompressionLevel)
}

func TestLoadConfigJSONDefaults(t *testing.T) {
	path := writeFile(t, "tl.json", `{"log": {"format": "console"}}`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Codec.EnableCompression)
	assert.Equal(t, DefaultMinCompressSize, cfg.Codec.MinCompressSize)
	assert.Equal(t, DefaultWorkers(), cfg.Codec.DecodeWorkers)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, merr.ErrIoFailed)

	path := writeFile(t, "bad.yaml", "codec:\n  compression-level: 42\n")
	_, err = LoadConfig(path)
	assert.ErrorIs(t, err, merr.ErrParameterInvalid)
}
