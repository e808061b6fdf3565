package network

import "github.com/cockroachdb/errors"

// Stage 表示负载处理链路中的处理阶段。
//
// 主要用于在回调中标记错误发生的位置，便于监控与排查。
type Stage string

const (
	StageDecode   Stage = "decode"   // 负载字节 -> 对象
	StageDispatch Stage = "dispatch" // 对象 -> 业务处理
	StageEncode   Stage = "encode"   // 业务对象 -> 负载字节
)

type stageError struct {
	stage Stage
	cause error
}

func (e *stageError) Error() string { return string(e.stage) + ": " + e.cause.Error() }
func (e *stageError) Unwrap() error { return e.cause }

// WithStage 为 err 标记处理阶段，err 为 nil 时返回 nil。
//
// 标记不影响 errors.Is 与 merr.Code 对原始错误的判断。
func WithStage(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &stageError{stage: stage, cause: err}
}

// StageOf 返回 err 链上最外层的阶段标记，没有标记时返回空字符串。
func StageOf(err error) Stage {
	var se *stageError
	if errors.As(err, &se) {
		return se.stage
	}
	return ""
}
