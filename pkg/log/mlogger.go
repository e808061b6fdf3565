// Licensed to the LF AI & Data foundation under one
// or more contributor license agreements. See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership. The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License. You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"github.com/uber/jaeger-client-go/utils"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// MLogger 在 zap.Logger 之上增加按组限流的告警日志。
// 编解码路径上的未知构造器等输入错误可能被恶意输入放大，统一走 RatedWarn。
type MLogger struct {
	*zap.Logger
	rl RateLimiter
}

// With 返回携带额外字段的子 Logger，字段在首次输出时才编码。
// 子 Logger 沿用当前的限流组。
func (l *MLogger) With(fields ...zap.Field) *MLogger {
	return &MLogger{Logger: l.Logger.WithLazy(fields...), rl: l.rl}
}

// WithRateGroup 返回绑定到命名限流组的 Logger 副本。
// 同名的组共享同一个限流器，后一次调用的参数覆盖之前的配置。
func (l *MLogger) WithRateGroup(groupName string, creditPerSecond, maxBalance float64) *MLogger {
	rl := utils.NewRateLimiter(creditPerSecond, maxBalance)
	if actual, loaded := _namedRateLimiters.LoadOrStore(groupName, rl); loaded {
		rl = actual.(*utils.ReconfigurableRateLimiter)
		rl.Update(creditPerSecond, maxBalance)
	}
	return &MLogger{Logger: l.Logger, rl: rl}
}

func (l *MLogger) limiter() RateLimiter {
	if l.rl == nil {
		return R()
	}
	return l.rl
}

// RatedWarn 在限流允许时输出 Warn 日志，返回是否实际输出。
func (l *MLogger) RatedWarn(cost float64, msg string, fields ...zap.Field) bool {
	if !l.limiter().CheckCredit(cost) {
		return false
	}
	l.WithOptions(zap.AddCallerSkip(1)).Warn(msg, fields...)
	return true
}

// WithLogger 暴露组件当前使用的 Logger。
type WithLogger interface {
	Logger() *MLogger
}

// LoggerBinder 允许替换组件使用的 Logger。
type LoggerBinder interface {
	SetLogger(logger *MLogger)
}

var (
	_ WithLogger   = (*Binder)(nil)
	_ LoggerBinder = (*Binder)(nil)
)

// Binder 嵌入到组件中，并发安全地保存组件的 Logger。
type Binder struct {
	logger atomic.Pointer[MLogger]
}

func (w *Binder) SetLogger(logger *MLogger) {
	w.logger.Store(logger)
}

// Logger 返回绑定的 Logger，未绑定时返回全局 Logger。
func (w *Binder) Logger() *MLogger {
	if l := w.logger.Load(); l != nil {
		return l
	}
	return With()
}
