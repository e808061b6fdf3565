// Copyright 2019 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxLogKeyType struct{}

var CtxLogKey = ctxLogKeyType{}

// Info 在 Info 级别输出一条日志。
// 消息包含调用处传入的字段以及 Logger 已经携带的字段。
// Deprecated: 请使用 Ctx(ctx).Info 代替。
func Info(msg string, fields ...zap.Field) {
	L().Info(msg, fields...)
}

// Warn 在 Warn 级别输出一条日志。
// 消息包含调用处传入的字段以及 Logger 已经携带的字段。
// Deprecated: 请使用 Ctx(ctx).Warn 代替。
func Warn(msg string, fields ...zap.Field) {
	L().Warn(msg, fields...)
}

// Error 在 Error 级别输出一条日志。
// 消息包含调用处传入的字段以及 Logger 已经携带的字段。
// Deprecated: 请使用 Ctx(ctx).Error 代替。
func Error(msg string, fields ...zap.Field) {
	L().Error(msg, fields...)
}

// With 创建一个携带额外字段的子 Logger，使用全局限流器。
func With(fields ...zap.Field) *MLogger {
	return &MLogger{
		Logger: L().WithLazy(fields...).WithOptions(zap.AddCallerSkip(-1)),
	}
}

// SetLevel 设置全局日志级别。
func SetLevel(l zapcore.Level) {
	_globalP.Load().(*ZapProperties).Level.SetLevel(l)
}

// GetLevel 获取当前全局日志级别。
func GetLevel() zapcore.Level {
	return _globalP.Load().(*ZapProperties).Level.Level()
}

// WithFields 返回一个附加了指定字段的上下文。
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	var zlogger *zap.Logger
	if ctxLogger, ok := ctx.Value(CtxLogKey).(*MLogger); ok {
		zlogger = ctxLogger.Logger
	} else {
		zlogger = ctxL()
	}
	mLogger := &MLogger{
		Logger: zlogger.With(fields...),
	}
	return context.WithValue(ctx, CtxLogKey, mLogger)
}

// WithConstructor 为 ctx 中的 Logger 添加构造器 ID 字段。
func WithConstructor(ctx context.Context, id uint32) context.Context {
	return WithFields(ctx, FieldConstructor(id))
}

// Ctx 返回一个基于 ctx 附加字段输出日志的 Logger。
func Ctx(ctx context.Context) *MLogger {
	if ctx == nil {
		return &MLogger{Logger: ctxL()}
	}
	if ctxLogger, ok := ctx.Value(CtxLogKey).(*MLogger); ok {
		return ctxLogger
	}
	return &MLogger{Logger: ctxL()}
}
