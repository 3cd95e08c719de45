package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// Guard vetoes a transition by returning a non-nil error.
type Guard[S, E comparable] func(ctx context.Context, from S, event E) error

// Action runs before the state changes. An error aborts the transition.
type Action[S, E comparable] func(ctx context.Context, from, to S, event E) error

type Transition[S, E comparable] struct {
	From    S
	To      S
	Event   E
	Guards  []Guard[S, E]
	Actions []Action[S, E]
}

// Machine is an in-memory state machine. Safe for concurrent use.
type Machine[S, E comparable] struct {
	mu          sync.RWMutex
	current     S
	transitions map[S]map[E][]Transition[S, E]
}

type Option[S, E comparable] func(*Machine[S, E])

func New[S, E comparable](initial S, opts ...Option[S, E]) *Machine[S, E] {
	m := &Machine[S, E]{
		current:     initial,
		transitions: make(map[S]map[E][]Transition[S, E]),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type TransitionOption[S, E comparable] func(*Transition[S, E])

func WithGuard[S, E comparable](g Guard[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		if g != nil {
			t.Guards = append(t.Guards, g)
		}
	}
}

func WithAction[S, E comparable](a Action[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		if a != nil {
			t.Actions = append(t.Actions, a)
		}
	}
}

// WithTransition registers from --event--> to. Several transitions may share
// the same from/event pair; the first whose guards all pass wins.
func WithTransition[S, E comparable](from, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) {
		t := Transition[S, E]{From: from, To: to, Event: event}
		for _, opt := range opts {
			opt(&t)
		}
		m.add(t)
	}
}

func (m *Machine[S, E]) add(t Transition[S, E]) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.transitions[t.From] == nil {
		m.transitions[t.From] = make(map[E][]Transition[S, E])
	}
	m.transitions[t.From][t.Event] = append(m.transitions[t.From][t.Event], t)
}

func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Fire applies event to the current state.
func (m *Machine[S, E]) Fire(ctx context.Context, event E) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.pick(ctx, event)
	if err != nil {
		return err
	}
	for _, action := range t.Actions {
		if err := action(ctx, m.current, t.To, event); err != nil {
			return fmt.Errorf("%w: %v on %v: %w", ErrActionFailed, m.current, event, err)
		}
	}
	m.current = t.To
	return nil
}

// CanFire reports whether Fire would pass guard evaluation. Actions are not run.
func (m *Machine[S, E]) CanFire(ctx context.Context, event E) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := m.pick(ctx, event)
	return err == nil
}

func (m *Machine[S, E]) pick(ctx context.Context, event E) (*Transition[S, E], error) {
	candidates := m.transitions[m.current][event]
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %v on %v", ErrNoTransition, m.current, event)
	}

	var firstErr error
	for i := range candidates {
		if err := runGuards(ctx, &candidates[i], m.current, event); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return &candidates[i], nil
	}
	return nil, fmt.Errorf("%w: %v on %v: %w", ErrTransitionRejected, m.current, event, firstErr)
}

func runGuards[S, E comparable](ctx context.Context, t *Transition[S, E], from S, event E) error {
	for _, g := range t.Guards {
		if err := g(ctx, from, event); err != nil {
			return err
		}
	}
	return nil
}
