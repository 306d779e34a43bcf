// Package errs provides the application error type returned by handlers. An
// *Error is both an error and a web.Encoder, so a handler can return it as
// its response.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// ErrCode classifies an application error.
type ErrCode struct {
	value int
	name  string
}

func (c ErrCode) String() string {
	return c.name
}

// Value returns the numeric code.
func (c ErrCode) Value() int {
	return c.value
}

// Error codes. InternalOnlyLog is logged with its real message but rendered to
// clients as a generic internal error.
var (
	InvalidArgument  = ErrCode{value: 1, name: "invalid_argument"}
	Unauthenticated  = ErrCode{value: 2, name: "unauthenticated"}
	PermissionDenied = ErrCode{value: 3, name: "permission_denied"}
	NotFound         = ErrCode{value: 4, name: "not_found"}
	AlreadyExists    = ErrCode{value: 5, name: "already_exists"}
	Internal         = ErrCode{value: 6, name: "internal"}
	InternalOnlyLog  = ErrCode{value: 7, name: "internal_only_log"}
)

var httpStatus = map[ErrCode]int{
	InvalidArgument:  http.StatusBadRequest,
	Unauthenticated:  http.StatusUnauthorized,
	PermissionDenied: http.StatusForbidden,
	NotFound:         http.StatusNotFound,
	AlreadyExists:    http.StatusConflict,
	Internal:         http.StatusInternalServerError,
	InternalOnlyLog:  http.StatusInternalServerError,
}

// Error is an application error with the source location that created it.
type Error struct {
	Code     ErrCode `json:"-"`
	Message  string  `json:"error"`
	FuncName string  `json:"-"`
	FileName string  `json:"-"`
	err      error
}

// New wraps err with code, using err's text as the message.
func New(code ErrCode, err error) *Error {
	e := newError(code, err.Error())
	e.err = err
	return e
}

// Newf creates an error with a formatted message.
func Newf(code ErrCode, format string, v ...any) *Error {
	return newError(code, fmt.Sprintf(format, v...))
}

func newError(code ErrCode, msg string) *Error {
	pc, filename, line, _ := runtime.Caller(2)
	funcName := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		funcName = fn.Name()
	}

	return &Error{
		Code:     code,
		Message:  msg,
		FuncName: funcName,
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

// Encode implements web.Encoder, rendering {"error": message}.
func (e *Error) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json; charset=utf-8", err
}

// HTTPStatus maps the error code onto a status code.
func (e *Error) HTTPStatus() int {
	if s, ok := httpStatus[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// IsError reports whether err is or wraps an *Error.
func IsError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// GetError returns the *Error inside err, or nil.
func GetError(err error) *Error {
	var e *Error
	if !errors.As(err, &e) {
		return nil
	}
	return e
}
