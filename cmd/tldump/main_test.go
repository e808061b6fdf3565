package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/danmu-tl-go/application"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/api"
	"github.com/lk2023060901/danmu-tl-go/pkg/tl/bin"
	"github.com/lk2023060901/danmu-tl-go/pkg/util/merr"
)

func encode(t *testing.T, obj any) []byte {
	var b bin.Buffer
	require.NoError(t, api.EncodeAny(obj, &b))
	return b.Copy()
}

func TestRunStdin(t *testing.T) {
	t.Setenv(application.ConfigPathEnv, "")
	var out bytes.Buffer
	in := bytes.NewReader(encode(t, &api.TextBold{Text: &api.TextPlain{Text: "hi"}}))

	require.NoError(t, run(nil, in, &out))
	assert.JSONEq(t, `{"_":"textBold","Text":{"_":"textPlain","Text":"hi"}}`, out.String())
}

func TestRunHexFiles(t *testing.T) {
	t.Setenv(application.ConfigPathEnv, "")
	dir := t.TempDir()
	a := filepath.Join(dir, "a.hex")
	b := filepath.Join(dir, "b.hex")
	require.NoError(t, os.WriteFile(a, []byte(hex.EncodeToString(encode(t, &api.PeerUser{UserID: 1}))+"\n"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte(hex.EncodeToString(encode(t, &api.PeerChat{ChatID: 2}))), 0o600))

	var out bytes.Buffer
	require.NoError(t, run([]string{"--hex", a, b}, nil, &out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"_":"peerUser","UserID":1}`, lines[0])
	assert.JSONEq(t, `{"_":"peerChat","ChatID":2}`, lines[1])
}

func TestRunUnknown(t *testing.T) {
	t.Setenv(application.ConfigPathEnv, "")
	unknown := []byte{0xef, 0xbe, 0xad, 0xde}

	var out bytes.Buffer
	err := run(nil, bytes.NewReader(unknown), &out)
	assert.ErrorIs(t, err, merr.ErrUnknownConstructor)

	out.Reset()
	require.NoError(t, run([]string{"--tolerate-unknown"}, bytes.NewReader(unknown), &out))
	assert.Empty(t, out.String())
}
