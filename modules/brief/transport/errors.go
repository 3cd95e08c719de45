package transport

import "errors"

var (
	ErrTimeout       = errors.New("transport: request timed out")
	ErrTransport     = errors.New("transport: request failed")
	ErrInvalidTarget = errors.New("transport: invalid endpoint")
)
