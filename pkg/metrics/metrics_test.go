package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	r := prometheus.NewRegistry()
	Register(r)
	assert.Equal(t, prometheus.Registerer(r), GetRegisterer())

	// 重复注册不会 panic。
	assert.NotPanics(t, func() { RegisterCodecMetrics(r) })

	before := testutil.ToFloat64(CodecUnknownConstructorTotal)
	CodecUnknownConstructorTotal.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(CodecUnknownConstructorTotal))

	CodecObjectTotal.WithLabelValues(DecodeLabel, SuccessLabel).Inc()
	assert.GreaterOrEqual(t, testutil.ToFloat64(CodecObjectTotal.WithLabelValues(DecodeLabel, SuccessLabel)), 1.0)
}
