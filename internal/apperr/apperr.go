package apperr

import (
	"errors"
	"fmt"
)

// AppError is an error carrying a Code. Sentinel values are compared with
// errors.Is, which matches on identity or on an equal Code and Message.
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an AppError with the same code and message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Message == e.Message
}

func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func InvalidArg(msg string) *AppError         { return New(CodeInvalidArgument, msg) }
func NotFound(msg string) *AppError           { return New(CodeNotFound, msg) }
func AlreadyExists(msg string) *AppError      { return New(CodeAlreadyExists, msg) }
func Forbidden(msg string) *AppError          { return New(CodePermissionDenied, msg) }
func Unauthorized(msg string) *AppError       { return New(CodeUnauthenticated, msg) }
func FailedPrecondition(msg string) *AppError { return New(CodeFailedPrecondition, msg) }
func Internal(msg string) *AppError           { return New(CodeInternal, msg) }

// CodeOf returns the Code of the first AppError in err's chain, or
// CodeInternal when there is none.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}
