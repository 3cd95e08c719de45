package statemachine_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stroomai/leadgen/pkg/statemachine"
)

type state string
type event string

const (
	draft     state = "draft"
	review    state = "review"
	published state = "published"

	submit  event = "submit"
	approve event = "approve"
	reject  event = "reject"
)

var errNotReady = errors.New("not ready")

func newMachine(ready *bool, log *[]string) *statemachine.Machine[state, event] {
	return statemachine.New(draft,
		statemachine.WithTransition(draft, review, submit,
			statemachine.WithGuard(func(context.Context, state, event) error {
				if !*ready {
					return errNotReady
				}
				return nil
			}),
			statemachine.WithAction(func(_ context.Context, from, to state, _ event) error {
				*log = append(*log, string(from)+"->"+string(to))
				return nil
			}),
		),
		statemachine.WithTransition[state, event](review, published, approve),
		statemachine.WithTransition[state, event](review, draft, reject),
	)
}

func TestMachine_Fire(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ready := false
	var log []string
	sm := newMachine(&ready, &log)

	require.Equal(t, draft, sm.Current())

	err := sm.Fire(ctx, submit)
	require.ErrorIs(t, err, statemachine.ErrTransitionRejected)
	assert.ErrorIs(t, err, errNotReady, "guard error is preserved")
	assert.Equal(t, draft, sm.Current())
	assert.False(t, sm.CanFire(ctx, submit))

	ready = true
	assert.True(t, sm.CanFire(ctx, submit))
	require.NoError(t, sm.Fire(ctx, submit))
	assert.Equal(t, review, sm.Current())
	assert.Equal(t, []string{"draft->review"}, log)

	err = sm.Fire(ctx, submit)
	assert.ErrorIs(t, err, statemachine.ErrNoTransition)

	require.NoError(t, sm.Fire(ctx, approve))
	assert.Equal(t, published, sm.Current())
}

func TestMachine_ActionFailureAborts(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	sm := statemachine.New(draft,
		statemachine.WithTransition(draft, review, submit,
			statemachine.WithAction(func(context.Context, state, state, event) error { return boom }),
		),
	)

	err := sm.Fire(context.Background(), submit)
	require.ErrorIs(t, err, statemachine.ErrActionFailed)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, draft, sm.Current())
	assert.True(t, sm.CanFire(context.Background(), submit), "CanFire ignores actions")
}

func TestMachine_FirstPassingTransitionWins(t *testing.T) {
	t.Parallel()

	deny := func(context.Context, state, event) error { return errNotReady }
	sm := statemachine.New(draft,
		statemachine.WithTransition(draft, published, submit, statemachine.WithGuard(deny)),
		statemachine.WithTransition[state, event](draft, review, submit),
	)

	require.NoError(t, sm.Fire(context.Background(), submit))
	assert.Equal(t, review, sm.Current())
}

func TestMachine_NilOptionsIgnored(t *testing.T) {
	t.Parallel()

	sm := statemachine.New(draft,
		statemachine.WithTransition(draft, review, submit,
			statemachine.WithGuard[state, event](nil),
			statemachine.WithAction[state, event](nil),
		),
	)
	assert.NoError(t, sm.Fire(context.Background(), submit))
}

func TestMachine_Concurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sm := statemachine.New(draft,
		statemachine.WithTransition[state, event](draft, review, submit),
		statemachine.WithTransition[state, event](review, draft, reject),
	)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				_ = sm.Fire(ctx, submit)
			} else {
				_ = sm.Fire(ctx, reject)
			}
			_ = sm.Current()
			_ = sm.CanFire(ctx, submit)
		}()
	}
	wg.Wait()

	assert.Contains(t, []state{draft, review}, sm.Current())
}
