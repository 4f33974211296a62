package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes for the harness error taxonomy.
const (
	CodeTimeout       = "timeout"
	CodeUnexpectedEOF = "unexpected-eof"
	CodeMalformedSpec = "malformed-spec"
	CodeNotFound      = "not-found"
)

type HarnessError struct {
	Code    string
	Message string
	Err     error
}

func (e *HarnessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *HarnessError) Unwrap() error {
	return e.Err
}

func New(code, message string) *HarnessError {
	return &HarnessError{Code: code, Message: message}
}

func Wrap(err error, code, message string) *HarnessError {
	return &HarnessError{Code: code, Message: message, Err: err}
}

// HasCode reports whether err or any error it wraps carries the given code.
func HasCode(err error, code string) bool {
	var herr *HarnessError
	if stderrors.As(err, &herr) {
		return herr.Code == code
	}
	return false
}

func IsTimeout(err error) bool { return HasCode(err, CodeTimeout) }

func IsUnexpectedEOF(err error) bool { return HasCode(err, CodeUnexpectedEOF) }

func IsMalformedSpec(err error) bool { return HasCode(err, CodeMalformedSpec) }

func IsNotFound(err error) bool { return HasCode(err, CodeNotFound) }
