package application

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/danmu-tl-go/internal/network/router"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/api"
	"github.com/lk2023060901/danmu-tl-go/pkg/util/merr"
)

func TestRunDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	app := New(api.Registry())
	require.NoError(t, app.Run("", router.Options{}))
	defer app.Close()

	require.NotNil(t, app.Config())
	assert.Equal(t, "info", app.Config().Log.Level)
	require.NotNil(t, app.Codec())
	require.NotNil(t, app.Router())

	data, err := app.Codec().Marshal(&api.PeerUser{UserID: 7})
	require.NoError(t, err)
	obj, err := app.Codec().Decode(data)
	require.NoError(t, err)
	assert.Equal(t, &api.PeerUser{UserID: 7}, obj)

	assert.ErrorIs(t, app.Run("", router.Options{}), merr.ErrServiceInternal)
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
codec:
  enable-compression: true
  min-compress-size: 64
`), 0o600))

	t.Setenv(ConfigPathEnv, path)
	app := New(api.Registry())
	require.NoError(t, app.Run("", router.Options{TolerateUnknown: true}))
	defer app.Close()

	assert.Equal(t, "debug", app.Config().Log.Level)
	assert.True(t, app.Config().Codec.EnableCompression)
	assert.Equal(t, 64, app.Config().Codec.MinCompressSize)
}

func TestRunErrors(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	assert.ErrorIs(t, New(nil).Run("", router.Options{}), merr.ErrParameterMissing)

	err := New(api.Registry()).Run(filepath.Join(t.TempDir(), "missing.yaml"), router.Options{})
	assert.ErrorIs(t, err, merr.ErrIoFailed)
}
