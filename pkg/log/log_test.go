package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type bufferSyncer struct {
	bytes.Buffer
}

func (b *bufferSyncer) Sync() error { return nil }

func TestInitLoggerWithWriteSyncer_JSON(t *testing.T) {
	out := &bufferSyncer{}
	cfg := &Config{Level: "info", Format: "json", DisableTimestamp: true}
	lg, props, err := InitLoggerWithWriteSyncer(cfg, out)
	require.NoError(t, err)
	require.NotNil(t, props)

	lg.Info("decoded", FieldConstructor(0x1cb5c415), FieldTypeName("vector"))
	lg.Debug("dropped")

	s := out.String()
	assert.Contains(t, s, `"constructor":"1cb5c415"`)
	assert.Contains(t, s, `"type":"vector"`)
	assert.NotContains(t, s, "dropped")
	assert.NotContains(t, s, `"time"`)
}

func TestInitLoggerWithWriteSyncer_Console(t *testing.T) {
	out := &bufferSyncer{}
	lg, _, err := InitLoggerWithWriteSyncer(&Config{Level: "debug"}, out)
	require.NoError(t, err)

	lg.With(FieldModule("codec")).Debug("hello")
	assert.Contains(t, out.String(), "hello")
	assert.Contains(t, out.String(), "codec")
}

func TestInitLoggerWithWriteSyncer_BadLevel(t *testing.T) {
	_, _, err := InitLoggerWithWriteSyncer(&Config{Level: "loud"}, &bufferSyncer{})
	assert.Error(t, err)
}

func TestSetLevel(t *testing.T) {
	old := GetLevel()
	defer SetLevel(old)

	SetLevel(zapcore.ErrorLevel)
	assert.Equal(t, zapcore.ErrorLevel, GetLevel())
	assert.False(t, L().Core().Enabled(zapcore.InfoLevel))
}

func TestCtxLogger(t *testing.T) {
	ctx := WithConstructor(context.Background(), 0xa8509bda)
	l := Ctx(ctx)
	require.NotNil(t, l)
	assert.NotSame(t, Ctx(context.Background()), l)

	//nolint:staticcheck
	assert.NotNil(t, Ctx(nil))
	assert.Same(t, l, Ctx(ctx))
}

func TestRateLimiterFromEnv(t *testing.T) {
	t.Setenv("TL_LOG_RATE_ENABLE", "true")
	t.Setenv("TL_LOG_RATE_CREDIT_PER_SECOND", "1")
	t.Setenv("TL_LOG_RATE_MAX_BALANCE", "1")
	configureRateLimiterFromEnv()
	defer storeRateLimiter(nopRateLimiter{})

	assert.True(t, R().CheckCredit(1))
	assert.False(t, R().CheckCredit(1))
}

func TestRatedGroup(t *testing.T) {
	base := With(FieldComponent("registry"))
	l := base.WithRateGroup("tl.test", 1, 1)
	assert.NotSame(t, base, l)
	assert.True(t, l.RatedWarn(1, "first", zap.Int("n", 1)))
	assert.False(t, l.RatedWarn(1, "second"))
	// 子 Logger 沿用限流组。
	assert.False(t, l.With(FieldModule("child")).RatedWarn(1, "third"))

	// 同名的组共享限流器。
	shared := With().WithRateGroup("tl.test", 1, 1)
	assert.False(t, shared.RatedWarn(1, "fourth"))

	// 未绑定限流组时使用全局的 nop 限流器。
	assert.True(t, base.RatedWarn(1, "unlimited"))
	assert.True(t, base.RatedWarn(1, "unlimited"))
}

func TestBinder(t *testing.T) {
	b := &Binder{}
	assert.NotNil(t, b.Logger())

	l := With(FieldModule("router"))
	b.SetLogger(l)
	assert.Same(t, l, b.Logger())
}
