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
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

const InputErrorFlagKey string = "is_input_error"

// Code 返回给定错误对应的错误码。
// 非 tlError 的错误统一映射为 errUnexpected 的错误码。
func Code(err error) int32 {
	if err == nil {
		return 0
	}

	cause := errors.Cause(err)
	switch specificErr := cause.(type) {
	case tlError:
		return specificErr.code()

	default:
		if errors.Is(specificErr, context.Canceled) {
			return CanceledCode
		} else if errors.Is(specificErr, context.DeadlineExceeded) {
			return TimeoutCode
		} else {
			return errUnexpected.code()
		}
	}
}

func IsRetryableErr(err error) bool {
	if err, ok := err.(tlError); ok {
		return err.retriable
	}

	return false
}

func IsCanceledOrTimeout(err error) bool {
	return errors.IsAny(err, context.Canceled, context.DeadlineExceeded)
}

// IsInputError 判断错误是否源自非法输入（例如截断或损坏的报文），
// 这类错误不应被视为本地的编程错误。
func IsInputError(err error) bool {
	return GetErrorType(err) == InputError
}

func WrapErrAsInputError(err error) error {
	if merr, ok := err.(tlError); ok {
		WithErrorType(InputError)(&merr)
		return merr
	}
	return err
}

func GetErrorType(err error) ErrorType {
	if err == nil {
		return SystemError
	}
	cause := errors.Cause(err)
	if merr, ok := cause.(tlError); ok {
		return merr.errType
	}
	var inner tlError
	if errors.As(err, &inner) {
		return inner.errType
	}

	return SystemError
}

// Service 相关错误封装。
func WrapErrServiceInternal(reason string, msg ...string) error {
	err := wrapFieldsWithDesc(ErrServiceInternal, reason)
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

// IO 相关错误封装。
func WrapErrIoFailed(key string, err error) error {
	if err == nil {
		return nil
	}
	return wrapFieldsWithDesc(ErrIoFailed, err.Error(), value("key", key))
}

// 参数相关错误封装。
func WrapErrParameterInvalid[T any](expected, actual T, msg ...string) error {
	err := wrapFields(ErrParameterInvalid,
		value("expected", expected),
		value("actual", actual),
	)
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

func WrapErrParameterInvalidMsg(fmt string, args ...any) error {
	return errors.Wrapf(ErrParameterInvalid, fmt, args...)
}

func WrapErrParameterMissing[T any](param T, msg ...string) error {
	err := wrapFields(ErrParameterMissing,
		value("missing_param", param),
	)
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

func WrapErrParameterTooLarge(name string, msg ...string) error {
	err := wrapFields(ErrParameterTooLarge, value("message", name))
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

func WrapErrOperationNotSupported(operation string, msg ...string) error {
	err := wrapFields(ErrOperationNotSupported, value("operation", operation))
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

// TL wire 相关错误封装。

// WrapErrTruncatedInput 表示需要 need 字节，但仅剩 remaining 字节。
func WrapErrTruncatedInput(need, remaining int, msg ...string) error {
	err := wrapFields(ErrTruncatedInput,
		value("need", need),
		value("remaining", remaining),
	)
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

// WrapErrUnknownConstructor 以 8 位十六进制输出构造器 ID。
func WrapErrUnknownConstructor(id uint32, msg ...string) error {
	err := wrapFields(ErrUnknownConstructor, value("id", FormatID(id)))
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

// WrapErrVectorElement 将元素级错误与 ErrVectorElement 组合，
// 使调用方既能匹配 ErrVectorElement，也能匹配根因（如 ErrTruncatedInput）。
func WrapErrVectorElement(index, count int, cause error) error {
	if cause == nil {
		return nil
	}
	return Combine(
		wrapFields(ErrVectorElement, value("index", index), value("count", count)),
		cause,
	)
}

func WrapErrEncodeTypeMismatch(actual any, msg ...string) error {
	err := wrapFields(ErrEncodeTypeMismatch, value("type", fmt.Sprintf("%T", actual)))
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

func WrapErrDuplicateConstructor(id uint32, first, second string) error {
	return wrapFields(ErrDuplicateConstructor,
		value("id", FormatID(id)),
		value("first", first),
		value("second", second),
	)
}

func WrapErrUnexpectedConstructor(expected string, actual uint32, msg ...string) error {
	err := wrapFields(ErrUnexpectedConstructor,
		value("expected", expected),
		value("actual", FormatID(actual)),
	)
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

func WrapErrLengthInvalid(name string, length, lower, upper int) error {
	return wrapFields(ErrLengthInvalid, bound(name, length, lower, upper))
}

func WrapErrPayloadTooLarge(size, limit int, msg ...string) error {
	err := wrapFields(ErrPayloadTooLarge,
		value("size", size),
		value("limit", limit),
	)
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

func WrapErrCorruptPayload(reason string, err error) error {
	if err == nil {
		return nil
	}
	return wrapFieldsWithDesc(ErrCorruptPayload, err.Error(), value("reason", reason))
}

// Router 相关错误封装。
func WrapErrRouteNotFound(id uint32, msg ...string) error {
	err := wrapFields(ErrRouteNotFound, value("id", FormatID(id)))
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

func WrapErrRouteDuplicated(id uint32, msg ...string) error {
	err := wrapFields(ErrRouteDuplicated, value("id", FormatID(id)))
	if len(msg) > 0 {
		err = errors.Wrap(err, strings.Join(msg, "->"))
	}
	return err
}

// FormatID 将构造器 ID 格式化为 8 位小写十六进制。
func FormatID(id uint32) string {
	return fmt.Sprintf("%08x", id)
}

func wrapFields(err tlError, fields ...errorField) error {
	for i := range fields {
		err.msg += fmt.Sprintf("[%s]", fields[i].String())
	}
	err.detail = err.msg
	return err
}

func wrapFieldsWithDesc(err tlError, desc string, fields ...errorField) error {
	for i := range fields {
		err.msg += fmt.Sprintf("[%s]", fields[i].String())
	}
	err.msg += ": " + desc
	err.detail = err.msg
	return err
}

type errorField interface {
	String() string
}

type valueField struct {
	name  string
	value any
}

func value(name string, value any) valueField {
	return valueField{
		name,
		value,
	}
}

func (f valueField) String() string {
	return fmt.Sprintf("%s=%v", f.name, f.value)
}

type boundField struct {
	name  string
	value any
	lower any
	upper any
}

func bound(name string, value, lower, upper any) boundField {
	return boundField{
		name,
		value,
		lower,
		upper,
	}
}

func (f boundField) String() string {
	return fmt.Sprintf("%v out of range %v <= %s <= %v", f.value, f.lower, f.name, f.upper)
}
