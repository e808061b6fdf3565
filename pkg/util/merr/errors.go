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

package merr

import (
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

const (
	CanceledCode int32 = 10000
	TimeoutCode  int32 = 10001
)

type ErrorType int32

const (
	SystemError ErrorType = 0
	InputError  ErrorType = 1
)

var ErrorTypeName = map[ErrorType]string{
	SystemError: "system_error",
	InputError:  "input_error",
}

func (err ErrorType) String() string {
	return ErrorTypeName[err]
}

// Define leaf errors here,
// WARN: take care to add new error,
// check whether you can use the errors below before adding a new one.
// Name: Err + related prefix + error name
var (
	// Service related
	ErrServiceInternal = newTLError("service internal error", 5, false)

	// IO related
	ErrIoFailed      = newTLError("IO failed", 1001, false)
	ErrIoUnexpectEOF = newTLError("unexpected EOF", 1002, false)

	// Parameter related
	ErrParameterInvalid  = newTLError("invalid parameter", 1100, false)
	ErrParameterMissing  = newTLError("missing parameter", 1101, false)
	ErrParameterTooLarge = newTLError("parameter too large", 1102, false)

	// General
	ErrOperationNotSupported = newTLError("unsupported operation", 3000, false)

	// TL wire related
	// 输入字节不足以读出一个完整的基础类型或字段。
	ErrTruncatedInput = newTLError("truncated input", 3100, false, WithErrorType(InputError))
	// 类型表中不存在对应的构造器 ID。
	ErrUnknownConstructor = newTLError("unknown constructor", 3101, false, WithErrorType(InputError))
	// vector 中任意一个元素解码失败，整个 vector 视为失败。
	ErrVectorElement = newTLError("vector element decode failed", 3102, false, WithErrorType(InputError))
	// 编码时传入的对象不属于任何已注册的构造器，属于编程错误。
	ErrEncodeTypeMismatch = newTLError("encode type mismatch", 3103, false)
	// schema 中存在重复的构造器 ID，属于启动期错误。
	ErrDuplicateConstructor = newTLError("duplicate constructor", 3104, false)
	// 构造器 ID 合法，但不属于当前字段期望的类型。
	ErrUnexpectedConstructor = newTLError("unexpected constructor", 3105, false, WithErrorType(InputError))
	ErrLengthInvalid         = newTLError("invalid length", 3106, false, WithErrorType(InputError))
	ErrPayloadTooLarge       = newTLError("payload too large", 3107, false, WithErrorType(InputError))
	// 压缩负载无法解压。
	ErrCorruptPayload = newTLError("corrupt payload", 3108, false, WithErrorType(InputError))

	// Router related
	ErrRouteNotFound   = newTLError("route not found", 3200, false)
	ErrRouteDuplicated = newTLError("route duplicated", 3201, false)

	// Do NOT export this,
	// never allow programmer using this, keep only for converting unknown error to tlError
	errUnexpected = newTLError("unexpected error", (1<<16)-1, false)
)

type errorOption func(*tlError)

func WithDetail(detail string) errorOption {
	return func(err *tlError) {
		err.detail = detail
	}
}

func WithErrorType(etype ErrorType) errorOption {
	return func(err *tlError) {
		err.errType = etype
	}
}

type tlError struct {
	msg       string
	detail    string
	retriable bool
	errCode   int32
	errType   ErrorType
}

func newTLError(msg string, code int32, retriable bool, options ...errorOption) tlError {
	err := tlError{
		msg:       msg,
		detail:    msg,
		retriable: retriable,
		errCode:   code,
	}

	for _, option := range options {
		option(&err)
	}
	return err
}

func (e tlError) code() int32 {
	return e.errCode
}

func (e tlError) Error() string {
	return e.msg
}

func (e tlError) Detail() string {
	return e.detail
}

func (e tlError) Is(err error) bool {
	cause := errors.Cause(err)
	if cause, ok := cause.(tlError); ok {
		return e.errCode == cause.errCode
	}
	return false
}

type multiErrors struct {
	errs []error
}

func (e multiErrors) Unwrap() error {
	if len(e.errs) <= 1 {
		return nil
	}
	// To make merr work for multi errors,
	// we need cause of multi errors, which defined as the last error
	if len(e.errs) == 2 {
		return e.errs[1]
	}

	return multiErrors{
		errs: e.errs[1:],
	}
}

func (e multiErrors) Error() string {
	final := e.errs[0]
	for i := 1; i < len(e.errs); i++ {
		final = errors.Wrap(e.errs[i], final.Error())
	}
	return final.Error()
}

func (e multiErrors) Is(err error) bool {
	for _, item := range e.errs {
		if errors.Is(item, err) {
			return true
		}
	}
	return false
}

func Combine(errs ...error) error {
	errs = lo.Filter(errs, func(err error, _ int) bool { return err != nil })
	if len(errs) == 0 {
		return nil
	}
	return multiErrors{
		errs,
	}
}
