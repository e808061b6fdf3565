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
	"os"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/suite"
)

type ErrSuite struct {
	suite.Suite
}

func (s *ErrSuite) TestCode() {
	err := WrapErrUnknownConstructor(0xdeadbeef)
	errors.Wrap(err, "failed to decode update")
	s.ErrorIs(err, ErrUnknownConstructor)
	s.Equal(Code(ErrUnknownConstructor), Code(err))
	s.Equal(TimeoutCode, Code(context.DeadlineExceeded))
	s.Equal(CanceledCode, Code(context.Canceled))
	s.Equal(errUnexpected.errCode, Code(errUnexpected))
	s.Equal(errUnexpected.errCode, Code(errors.New("plain")))
	s.Equal(int32(0), Code(nil))

	sameCodeErr := newTLError("new error", ErrUnknownConstructor.errCode, false)
	s.True(sameCodeErr.Is(ErrUnknownConstructor))
}

func (s *ErrSuite) TestWrap() {
	// Service 相关错误。
	s.ErrorIs(WrapErrServiceInternal("never throw out"), ErrServiceInternal)

	// IO 相关错误。
	s.ErrorIs(WrapErrIoFailed("test_key", os.ErrClosed), ErrIoFailed)
	s.Nil(WrapErrIoFailed("test_key", nil))

	// 参数相关错误。
	s.ErrorIs(WrapErrParameterInvalid(8, 1, "failed to create"), ErrParameterInvalid)
	s.ErrorIs(WrapErrParameterInvalidMsg("bad %s", "value"), ErrParameterInvalid)
	s.ErrorIs(WrapErrParameterMissing("registry", "no registry"), ErrParameterMissing)
	s.ErrorIs(WrapErrParameterTooLarge("unit test"), ErrParameterTooLarge)
	s.ErrorIs(WrapErrOperationNotSupported("encode"), ErrOperationNotSupported)

	// TL wire 相关错误。
	s.ErrorIs(WrapErrTruncatedInput(4, 2, "read int"), ErrTruncatedInput)
	s.ErrorIs(WrapErrUnknownConstructor(0x12345678), ErrUnknownConstructor)
	s.ErrorIs(WrapErrEncodeTypeMismatch(struct{}{}), ErrEncodeTypeMismatch)
	s.ErrorIs(WrapErrDuplicateConstructor(1, "a", "b"), ErrDuplicateConstructor)
	s.ErrorIs(WrapErrUnexpectedConstructor("Peer", 0x12345678), ErrUnexpectedConstructor)
	s.ErrorIs(WrapErrLengthInvalid("vector", -1, 0, 1<<24), ErrLengthInvalid)
	s.ErrorIs(WrapErrPayloadTooLarge(10, 5), ErrPayloadTooLarge)
	s.ErrorIs(WrapErrCorruptPayload("gunzip", errors.New("bad header")), ErrCorruptPayload)
	s.True(IsInputError(WrapErrCorruptPayload("gunzip", errors.New("bad header"))))
	s.NoError(WrapErrCorruptPayload("gunzip", nil))

	// Router 相关错误。
	s.ErrorIs(WrapErrRouteNotFound(1), ErrRouteNotFound)
	s.ErrorIs(WrapErrRouteDuplicated(1), ErrRouteDuplicated)
}

func (s *ErrSuite) TestUnknownConstructorMessage() {
	err := WrapErrUnknownConstructor(0xab)
	s.Contains(err.Error(), "000000ab")
	s.Equal("deadbeef", FormatID(0xdeadbeef))
}

func (s *ErrSuite) TestVectorElement() {
	err := WrapErrVectorElement(2, 3, WrapErrTruncatedInput(4, 0))
	s.ErrorIs(err, ErrVectorElement)
	s.ErrorIs(err, ErrTruncatedInput)
	s.Equal(Code(ErrTruncatedInput), Code(err))
	s.Contains(err.Error(), "index=2")

	s.Nil(WrapErrVectorElement(0, 1, nil))
}

func (s *ErrSuite) TestErrorType() {
	s.True(IsInputError(WrapErrTruncatedInput(1, 0)))
	s.True(IsInputError(errors.Wrap(WrapErrUnknownConstructor(1), "decode")))
	s.False(IsInputError(WrapErrEncodeTypeMismatch(1)))
	s.False(IsInputError(nil))

	err := WrapErrAsInputError(WrapErrParameterInvalid(1, 2))
	s.Equal(InputError, GetErrorType(err))
	s.Equal("input_error", GetErrorType(err).String())
	s.Equal(SystemError, GetErrorType(errors.New("plain")))
}

func (s *ErrSuite) TestCanceledOrTimeout() {
	s.True(IsCanceledOrTimeout(errors.Wrap(context.Canceled, "stop")))
	s.True(IsCanceledOrTimeout(context.DeadlineExceeded))
	s.False(IsCanceledOrTimeout(ErrTruncatedInput))
	s.False(IsRetryableErr(ErrTruncatedInput))
}

func (s *ErrSuite) TestCombine() {
	var (
		errFirst  = errors.New("first")
		errSecond = errors.New("second")
		errThird  = errors.New("third")
	)

	err := Combine(errFirst, errSecond)
	s.True(errors.Is(err, errFirst))
	s.True(errors.Is(err, errSecond))
	s.False(errors.Is(err, errThird))

	s.Equal("first: second", err.Error())
}

func (s *ErrSuite) TestCombineWithNil() {
	err := errors.New("non-nil")

	err = Combine(nil, err)
	s.NotNil(err)
}

func (s *ErrSuite) TestCombineOnlyNil() {
	err := Combine(nil, nil)
	s.Nil(err)
}

func (s *ErrSuite) TestCombineCode() {
	err := Combine(WrapErrRouteNotFound(10), WrapErrUnknownConstructor(1))
	s.Equal(Code(ErrUnknownConstructor), Code(err))
}

func TestErrors(t *testing.T) {
	suite.Run(t, new(ErrSuite))
}
