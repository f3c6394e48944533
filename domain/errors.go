package domain

import (
	"errors"
	"fmt"
)

// Code is a machine-readable domain error code
type Code string

const (
	CodeNodeNotFound    Code = "NODE_NOT_FOUND"
	CodeEdgeNotFound    Code = "EDGE_NOT_FOUND"
	CodeGraphNotFound   Code = "GRAPH_NOT_FOUND"
	CodeDuplicateEdge   Code = "DUPLICATE_EDGE"
	CodeSelfLoop        Code = "SELF_LOOP"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
)

// Error is a domain error with a code; errors.Is matches by code
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Sentinels for errors.Is
var (
	ErrNodeNotFound    = &Error{Code: CodeNodeNotFound, Message: "node not found"}
	ErrEdgeNotFound    = &Error{Code: CodeEdgeNotFound, Message: "edge not found"}
	ErrGraphNotFound   = &Error{Code: CodeGraphNotFound, Message: "graph not found"}
	ErrDuplicateEdge   = &Error{Code: CodeDuplicateEdge, Message: "duplicate edge"}
	ErrSelfLoop        = &Error{Code: CodeSelfLoop, Message: "self loop"}
	ErrInvalidArgument = &Error{Code: CodeInvalidArgument, Message: "invalid argument"}
)

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// NewError creates a domain error with a code and message
func NewError(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError creates a domain error that wraps an underlying cause
func WrapError(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf returns the code of the first domain error in err's chain, empty if none
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
