// Package errors carries the coded errors returned across argo-report.
//
// Every failure that leaves a package is an *Error holding an ErrorCode. Callers branch on
// the code with HasCode instead of matching messages. Codes are grouped by hundreds, see
// ErrorCode.Category.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error is a failure tagged with a code. Cause is optional.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New returns an error with code and message and no cause.
func New(code ErrorCode, message string) *Error {
	return Wrap(code, message, nil)
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), nil)
}

// Wrap tags cause with code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// Error renders "[code] message" followed by ": cause" when a cause is set.
func (e *Error) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%d] %s", e.Code, e.Message)

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// GetCode returns the code of the outermost *Error in err's chain, or ErrCodeUnknown.
func GetCode(err error) ErrorCode {
	var coded *Error
	if !errors.As(err, &coded) {
		return ErrCodeUnknown
	}

	return coded.Code
}

// HasCode reports whether the outermost *Error in err's chain carries code.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// ExitStatus maps err to a process exit status: 0 for nil, 2 for validation failures
// and 1 for everything else.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}

	if GetCode(err).Category() == CategoryValidation {
		return 2
	}

	return 1
}
