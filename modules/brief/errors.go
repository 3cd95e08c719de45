package brief

import "errors"

var (
	ErrInvalidConfig = errors.New("brief: invalid configuration")
	ErrValidation    = errors.New("brief: validation failed")
	ErrDispatch      = errors.New("brief: failed to dispatch notifications")
	ErrRepository    = errors.New("brief: intake log failure")
)
