package statemachine

import "errors"

var (
	ErrNoTransition       = errors.New("no transition available")
	ErrTransitionRejected = errors.New("transition rejected")
	ErrActionFailed       = errors.New("transition action failed")
)
