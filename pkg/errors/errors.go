// Package errors defines the coded errors textsvg reports to users.
//
// The SVG core never fails. Codes come from the opt-in validation layer,
// request parsing, preset loading, and the PNG/PDF converters. The CLI
// prints [UserMessage]; the HTTP API responds with the code, the message,
// and the status from [HTTPStatus].
//
//	err := errors.New(errors.ErrCodeInvalidDimension, "width must not be negative").WithField("width")
//	if errors.Is(err, errors.ErrCodeInvalidDimension) {
//	    status := errors.HTTPStatus(errors.GetCode(err)) // 400
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidDimension Code = "INVALID_DIMENSION"
	ErrCodeInvalidAlign     Code = "INVALID_ALIGN"
	ErrCodeInvalidColor     Code = "INVALID_COLOR"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidPreset    Code = "INVALID_PRESET"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodePresetNotFound   Code = "PRESET_NOT_FOUND"
	ErrCodeRender           Code = "RENDER_FAILED"
	ErrCodeMissingTooling   Code = "MISSING_TOOLING"
	ErrCodeInternal         Code = "INTERNAL_ERROR"
)

var statusByCode = map[Code]int{
	ErrCodeInvalidInput:     http.StatusBadRequest,
	ErrCodeInvalidDimension: http.StatusBadRequest,
	ErrCodeInvalidAlign:     http.StatusBadRequest,
	ErrCodeInvalidColor:     http.StatusBadRequest,
	ErrCodeInvalidFormat:    http.StatusBadRequest,
	ErrCodeInvalidPreset:    http.StatusBadRequest,
	ErrCodeInvalidPath:      http.StatusBadRequest,
	ErrCodePresetNotFound:   http.StatusNotFound,
	ErrCodeMissingTooling:   http.StatusServiceUnavailable,
}

// HTTPStatus maps a code to the status the API responds with. Render
// failures, internal errors and unknown codes are 500.
func HTTPStatus(code Code) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error is a coded error. Field names the option or parameter at fault,
// using its JSON name, when there is one.
type Error struct {
	Code    Code
	Message string
	Field   string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// WithField sets Field and returns e.
func (e *Error) WithField(name string) *Error {
	e.Field = name
	return e
}

// New returns an error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error with a formatted message and a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e := asError(err); e != nil {
		return e.Code
	}
	return ""
}

// FieldOf returns the field of the outermost *Error in err's chain, or "".
func FieldOf(err error) string {
	if e := asError(err); e != nil {
		return e.Field
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its
// code, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	if e := asError(err); e != nil {
		return e.Message
	}
	return err.Error()
}

func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
