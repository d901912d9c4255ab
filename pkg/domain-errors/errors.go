package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code defines the normalized failure taxonomy surfaced by the SDK.
type Code string

const (
	// CodeInvalidArgument indicates the caller asked for something the SDK
	// cannot do, such as an unsupported HTTP method.
	CodeInvalidArgument Code = "invalid_argument"

	// CodeTransport indicates a connection-level failure with no server response.
	CodeTransport Code = "transport"

	// CodeAPI indicates the service answered with an error status or success=false.
	CodeAPI Code = "api"

	// CodeParse indicates the response did not carry an expected field.
	CodeParse Code = "parse"

	// CodePrecondition indicates an operation on an entity in the wrong state.
	CodePrecondition Code = "precondition"

	// CodeInternal indicates an unexpected internal error
	CodeInternal Code = "internal"
)

// Error wraps SDK failures with a normalized code.
type Error struct {
	Code    Code
	Message string
	// StatusCode is the HTTP status of the response for CodeAPI errors.
	StatusCode int
	// Failures holds the sub-failure messages reported by the service, in
	// response order.
	Failures []string
	Err      error
}

// Error returns the message verbatim when there is no underlying cause, so
// service messages reach the caller unchanged.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap supports error unwrapping
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// NewAPI builds a CodeAPI error from the service envelope. When failures are
// present the message becomes "<message> [FAILURES: f1, f2, ...]".
func NewAPI(statusCode int, message string, failures []string) *Error {
	if len(failures) > 0 {
		message = fmt.Sprintf("%s [FAILURES: %s]", message, strings.Join(failures, ", "))
	}
	return &Error{
		Code:       CodeAPI,
		Message:    message,
		StatusCode: statusCode,
		Failures:   failures,
	}
}

// HasCode reports whether any error in err's chain is an *Error with code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
