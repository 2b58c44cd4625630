package xlog

import "errors"

var (
	// ErrUnknownLevel 无法识别的日志级别
	ErrUnknownLevel = errors.New("xlog: unknown level")

	// ErrUnknownFormat 输出格式不是 text 或 json
	ErrUnknownFormat = errors.New("xlog: unknown format")

	// ErrNilHandler base handler 为 nil
	ErrNilHandler = errors.New("xlog: base handler is nil")

	// ErrNilOutput 输出目标为 nil
	ErrNilOutput = errors.New("xlog: output is nil")
)
