package web

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON error body used by the web layer itself, before
// any application error handling runs.
type ErrorResponse struct {
	Error  string `json:"error"`
	status int
}

func NewError(msg string) ErrorResponse {
	return ErrorResponse{Error: msg, status: http.StatusInternalServerError}
}

func NewErrorWithStatus(msg string, status int) ErrorResponse {
	return ErrorResponse{Error: msg, status: status}
}

func (e ErrorResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json; charset=utf-8", err
}

func (e ErrorResponse) HTTPStatus() int {
	if e.status == 0 {
		return http.StatusInternalServerError
	}
	return e.status
}
