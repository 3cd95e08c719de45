// Package statemachine provides a small, thread-safe finite state machine
// parameterized over comparable state and event types.
//
// Transitions are declared up front with guards and actions. A guard returns
// a non-nil error to veto a transition; the error is wrapped into the result
// of Fire so callers can report why the machine refused to move. Actions run
// in order before the state changes and any action error aborts the move.
//
//	sm, err := statemachine.New(StepContact,
//	    statemachine.WithTransition(StepContact, StepProject, EventNext,
//	        statemachine.WithGuard(contactComplete)),
//	)
//	if err := sm.Fire(ctx, EventNext); errors.Is(err, statemachine.ErrTransitionRejected) { ... }
//
// Guards and actions run while the machine is locked and must not call back
// into it.
package statemachine
