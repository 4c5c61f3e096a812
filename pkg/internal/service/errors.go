package service

import (
	"errors"
	"fmt"
)

// 错误类别. 服务层返回的错误均可用 errors.Is 匹配到其中之一，处理器据此选择状态码.
var (
	ErrUnauthorized  = errors.New("Invalid password")
	ErrValidation    = errors.New("validation failed")
	ErrUnknownAction = errors.New("Invalid action")
	ErrNotFound      = errors.New("not found")
	ErrUpload        = errors.New("upload failed")
	ErrStore         = errors.New("store failed")
)

// Error 携带类别、面向调用方的消息与底层原因.
type Error struct {
	kind  error
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}

	return e.msg
}

// Unwrap 同时暴露类别与原因.
func (e *Error) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}

	return []error{e.kind, e.cause}
}

// Message 可以返回给客户端的消息，不含底层原因.
func (e *Error) Message() string {
	return e.msg
}

func newError(kind error, msg string, cause error) *Error {
	return &Error{kind: kind, msg: msg, cause: cause}
}

func validationError(msg string) error {
	return newError(ErrValidation, msg, nil)
}

func notFound(what string) error {
	return newError(ErrNotFound, what+" not found", nil)
}

func storeError(op string, cause error) error {
	return newError(ErrStore, "failed to "+op, cause)
}

func uploadError(cause error) error {
	return newError(ErrUpload, "failed to upload file", cause)
}

// PublicMessage 返回错误对外展示的消息. 未分类的错误统一为 "internal server error".
func PublicMessage(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Message()
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return ErrUnauthorized.Error()
	case errors.Is(err, ErrUnknownAction):
		return ErrUnknownAction.Error()
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound):
		return err.Error()
	default:
		return "internal server error"
	}
}
