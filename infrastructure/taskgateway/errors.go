package taskgateway

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNetworkFailure is matched by every error the client returns.
var ErrNetworkFailure = errors.New("network failure")

// Status sentinels, matched in addition to ErrNetworkFailure.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Generic per-operation messages, safe to show to a user.
const (
	MsgFetchTasks = "Failed to fetch tasks"
	MsgCreateTask = "Failed to create task"
	MsgUpdateTask = "Failed to update task"
	MsgDeleteTask = "Failed to delete task"
	MsgLogin      = "Failed to log in"
	MsgRegister   = "Failed to register"
)

// Error is a failed gateway call. Message is the generic text for the
// operation; Detail is the server's error body when it sent one.
type Error struct {
	Op         string
	Message    string
	StatusCode int
	Detail     string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0 && e.Detail != "":
		return fmt.Sprintf("%s: %d %s", e.Message, e.StatusCode, e.Detail)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %d %s", e.Message, e.StatusCode, http.StatusText(e.StatusCode))
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	out := []error{ErrNetworkFailure}
	switch e.StatusCode {
	case http.StatusUnauthorized:
		out = append(out, ErrUnauthorized)
	case http.StatusNotFound:
		out = append(out, ErrNotFound)
	case http.StatusConflict:
		out = append(out, ErrConflict)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}
