package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidationFailed   = "validation_failed"
	CodeDuplicateCodename  = "duplicate_codename"
	CodeNotFound           = "not_found"
	CodeAlreadyTerminal    = "already_terminal"
	CodeBackendUnavailable = "backend_unavailable"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeValidationFailed, fmt.Errorf(format, args...))
}

func DuplicateCodename(err error) *Error {
	return New(http.StatusConflict, CodeDuplicateCodename, err)
}

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func AlreadyTerminal(format string, args ...interface{}) *Error {
	return New(http.StatusConflict, CodeAlreadyTerminal, fmt.Errorf(format, args...))
}

func BackendUnavailable(err error) *Error {
	return New(http.StatusServiceUnavailable, CodeBackendUnavailable, err)
}

// HasCode reports whether err is (or wraps) an *Error carrying the given code.
func HasCode(err error, code string) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
