package wizard

import (
	"errors"
	"strings"
)

var (
	ErrStepIncomplete = errors.New("wizard: step incomplete")
	ErrCannotNavigate = errors.New("wizard: no step in that direction")
	ErrBusy           = errors.New("wizard: submission in progress")
	ErrLocked         = errors.New("wizard: form already submitted")
	ErrNotReady       = errors.New("wizard: form is not ready to submit")
	ErrInvalidValue   = errors.New("wizard: invalid value")
	ErrUnknownField   = errors.New("wizard: unknown field")
)

// StepError lists what keeps a step from advancing. It matches
// ErrStepIncomplete with errors.Is.
type StepError struct {
	Step    Step
	Missing []Field
	Invalid []Field
}

func (e *StepError) Error() string {
	var b strings.Builder
	b.WriteString("step ")
	b.WriteString(e.Step.String())
	b.WriteString(" incomplete")
	if len(e.Missing) > 0 {
		b.WriteString(": missing ")
		b.WriteString(joinFields(e.Missing))
	}
	if len(e.Invalid) > 0 {
		b.WriteString(": invalid ")
		b.WriteString(joinFields(e.Invalid))
	}
	return b.String()
}

func (e *StepError) Is(target error) bool { return target == ErrStepIncomplete }

// Fields returns missing fields followed by invalid ones.
func (e *StepError) Fields() []Field {
	return append(append([]Field{}, e.Missing...), e.Invalid...)
}

func joinFields(fields []Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}
