package handler

import (
	"errors"
	"maps"
	"net/http"
	"slices"
)

var ErrNilResponse = errors.New("handler returned nil response")

// HTTPError carries a status code and a client-safe message.
type HTTPError struct {
	Code    int
	Message string
	Err     error
}

func NewHTTPError(code int, message string, err error) HTTPError {
	return HTTPError{Code: code, Message: message, Err: err}
}

func (e HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e HTTPError) Unwrap() error { return e.Err }

var ErrMethodNotAllowed = HTTPError{Code: http.StatusMethodNotAllowed, Message: "Method not allowed"}

// ValidationError maps field names to messages. It renders as 400.
type ValidationError map[string][]string

func (e ValidationError) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Fields returns the failing field names in sorted order.
func (e ValidationError) Fields() []string {
	return slices.Sorted(maps.Keys(e))
}

func (e ValidationError) Error() string {
	return "validation failed"
}
