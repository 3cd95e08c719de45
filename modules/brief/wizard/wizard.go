package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/stroomai/leadgen/modules/brief"
	"github.com/stroomai/leadgen/modules/brief/transport"
	"github.com/stroomai/leadgen/pkg/sanitizer"
	"github.com/stroomai/leadgen/pkg/statemachine"
	"github.com/stroomai/leadgen/pkg/validator"
)

// MinDescriptionLength is shown next to the description counter.
const MinDescriptionLength = brief.MinDescriptionLength

// scrub removes markup from text input as it is typed. Whitespace is kept
// until the step is left.
var scrub = sanitizer.Compose(sanitizer.StripScriptTags, sanitizer.StripAngleBrackets)

type event string

const (
	eventNext      event = "next"
	eventBack      event = "back"
	eventSubmitted event = "submitted"
	eventReset     event = "reset"
)

// Submitter delivers a finished brief. *transport.Client implements it.
type Submitter interface {
	Submit(ctx context.Context, s brief.Submission) (transport.Result, error)
}

type Wizard struct {
	mu         sync.Mutex
	sm         *statemachine.Machine[Step, event]
	submitter  Submitter
	data       brief.Submission
	submitting bool
	lastErr    string
	// gen changes on Reset so a late Submit result is dropped.
	gen uint64
}

func New(submitter Submitter) *Wizard {
	w := &Wizard{submitter: submitter}

	complete := statemachine.WithGuard[Step, event](w.guardComplete)
	idle := statemachine.WithGuard[Step, event](w.guardIdle)
	wipe := statemachine.WithAction[Step, event](w.wipe)
	tidy := statemachine.WithAction[Step, event](w.tidy)

	opts := []statemachine.Option[Step, event]{
		statemachine.WithTransition(StepContact, StepProjectDetails, eventNext, idle, complete, tidy),
		statemachine.WithTransition(StepProjectDetails, StepTechnicalScope, eventNext, idle, complete, tidy),
		statemachine.WithTransition(StepTechnicalScope, StepEngagementModel, eventNext, idle, complete, tidy),

		statemachine.WithTransition(StepProjectDetails, StepContact, eventBack, idle),
		statemachine.WithTransition(StepTechnicalScope, StepProjectDetails, eventBack, idle),
		statemachine.WithTransition(StepEngagementModel, StepTechnicalScope, eventBack, idle),

		statemachine.WithTransition(StepEngagementModel, StepSubmitted, eventSubmitted, complete),
	}
	for _, s := range []Step{StepContact, StepProjectDetails, StepTechnicalScope, StepEngagementModel, StepSubmitted} {
		opts = append(opts, statemachine.WithTransition(s, StepContact, eventReset, wipe))
	}

	w.sm = statemachine.New(StepContact, opts...)
	return w
}

func (w *Wizard) Step() Step { return w.sm.Current() }

// Submission returns a copy of the collected data.
func (w *Wizard) Submission() brief.Submission {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.data
}

// Error returns the message to show above the form, or "".
func (w *Wizard) Error() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

func (w *Wizard) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

func (w *Wizard) Submitted() bool { return w.sm.Current() == StepSubmitted }

// DescriptionLength counts characters, not bytes, ignoring surrounding
// whitespace.
func (w *Wizard) DescriptionLength() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return utf8.RuneCountInString(sanitizer.Sanitize(w.data.Project.Description))
}

func (w *Wizard) SetName(v string) error        { return w.Set(FieldName, v) }
func (w *Wizard) SetEmail(v string) error       { return w.Set(FieldEmail, v) }
func (w *Wizard) SetCompany(v string) error     { return w.Set(FieldCompany, v) }
func (w *Wizard) SetDescription(v string) error { return w.Set(FieldDescription, v) }
func (w *Wizard) SetDeliverables(v string) error {
	return w.Set(FieldDeliverables, v)
}

func (w *Wizard) SetStage(v brief.Stage) error {
	return w.Set(FieldStage, string(v))
}

func (w *Wizard) SetTimeline(v brief.Timeline) error {
	return w.Set(FieldTimeline, string(v))
}

func (w *Wizard) SetDataAvailability(v brief.DataAvailability) error {
	return w.Set(FieldDataAvailability, string(v))
}

func (w *Wizard) SetEngagementModel(v brief.EngagementModel) error {
	return w.Set(FieldEngagementModel, string(v))
}

func (w *Wizard) SetBudgetRange(v brief.BudgetRange) error {
	return w.Set(FieldBudgetRange, string(v))
}

// Set stores value in field. Markup is stripped right away; text is fully
// sanitized when the step is left. Choice fields accept "" to clear and
// otherwise only their known values.
func (w *Wizard) Set(field Field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.submitting:
		return ErrBusy
	case w.sm.Current() == StepSubmitted:
		return ErrLocked
	}

	if field.choice() {
		value = sanitizer.Sanitize(value)
	} else {
		value = scrub(value)
	}
	return w.set(field, value)
}

func (w *Wizard) set(field Field, value string) error {
	d := &w.data

	switch field {
	case FieldName:
		d.Contact.Name = value
	case FieldEmail:
		d.Contact.Email = value
	case FieldCompany:
		d.Contact.Company = value
	case FieldDescription:
		d.Project.Description = value
	case FieldStage:
		v := brief.Stage(value)
		if value != "" && !v.Valid() {
			return invalid(field, value)
		}
		d.Project.Stage = v
	case FieldTimeline:
		v := brief.Timeline(value)
		if value != "" && !v.Valid() {
			return invalid(field, value)
		}
		d.Project.Timeline = v
	case FieldDataAvailability:
		v := brief.DataAvailability(value)
		if value != "" && !v.Valid() {
			return invalid(field, value)
		}
		d.Technical.DataAvailability = v
	case FieldDeliverables:
		d.Technical.ExpectedDeliverables = value
	case FieldEngagementModel:
		v := brief.EngagementModel(value)
		if value != "" && !v.Valid() {
			return invalid(field, value)
		}
		d.Engagement.Model = v
	case FieldBudgetRange:
		v := brief.BudgetRange(value)
		if value != "" && !v.Valid() {
			return invalid(field, value)
		}
		d.Engagement.BudgetRange = v
	default:
		return fmt.Errorf("%w: %d", ErrUnknownField, field)
	}
	return nil
}

// Value returns the current value of field.
func (w *Wizard) Value(field Field) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.value(field)
}

func (w *Wizard) value(field Field) string {
	d := w.data
	switch field {
	case FieldName:
		return d.Contact.Name
	case FieldEmail:
		return d.Contact.Email
	case FieldCompany:
		return d.Contact.Company
	case FieldDescription:
		return d.Project.Description
	case FieldStage:
		return string(d.Project.Stage)
	case FieldTimeline:
		return string(d.Project.Timeline)
	case FieldDataAvailability:
		return string(d.Technical.DataAvailability)
	case FieldDeliverables:
		return d.Technical.ExpectedDeliverables
	case FieldEngagementModel:
		return string(d.Engagement.Model)
	case FieldBudgetRange:
		return string(d.Engagement.BudgetRange)
	default:
		return ""
	}
}

// Next advances one step. A *StepError (matching ErrStepIncomplete) is
// returned when the current step is not complete.
func (w *Wizard) Next(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.navigate(ctx, eventNext)
}

// Back moves one step back. Entered data is kept.
func (w *Wizard) Back(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.navigate(ctx, eventBack)
}

func (w *Wizard) navigate(ctx context.Context, e event) error {
	err := w.sm.Fire(ctx, e)
	if err == nil {
		w.lastErr = ""
		return nil
	}

	var stepErr *StepError
	switch {
	case errors.As(err, &stepErr):
		w.lastErr = stepMessage(stepErr)
		return stepErr
	case errors.Is(err, ErrBusy):
		return ErrBusy
	case errors.Is(err, statemachine.ErrNoTransition):
		if w.sm.Current() == StepSubmitted {
			return ErrLocked
		}
		return fmt.Errorf("%w: %s on %s", ErrCannotNavigate, e, w.sm.Current())
	default:
		return err
	}
}

// CanSubmit reports whether the submit control should be enabled: the form
// is on the last step, every required field is valid and nothing is in flight.
func (w *Wizard) CanSubmit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canSubmit()
}

func (w *Wizard) canSubmit() bool {
	return !w.submitting && w.sm.CanFire(context.Background(), eventSubmitted)
}

// Submit sends the brief. On acceptance the wizard moves to StepSubmitted.
// On any other outcome it stays on the last step with every field intact
// and Error returns the outcome's message.
func (w *Wizard) Submit(ctx context.Context) (transport.Result, error) {
	w.mu.Lock()
	if !w.canSubmit() {
		busy := w.submitting
		w.mu.Unlock()
		if busy {
			return transport.Result{}, ErrBusy
		}
		return transport.Result{}, ErrNotReady
	}
	for s := StepContact; s <= LastStep; s++ {
		w.normalize(s)
	}
	w.submitting = true
	w.lastErr = ""
	gen := w.gen
	data := w.data
	w.mu.Unlock()

	res, err := w.submitter.Submit(ctx, data)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen != gen {
		return res, err
	}
	w.submitting = false

	if res.Kind == "" {
		res = transport.Result{Kind: transport.KindTransportError, Message: transport.MsgTransport}
	}
	if err == nil && res.Accepted() {
		if ferr := w.sm.Fire(ctx, eventSubmitted); ferr != nil {
			return res, ferr
		}
		return res, nil
	}

	w.lastErr = res.Message
	return res, err
}

// Reset clears every field and returns to the first step. It is the only
// way out of StepSubmitted.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	// reset has a transition from every step and no guard
	_ = w.sm.Fire(context.Background(), eventReset)
}

func (w *Wizard) guardIdle(context.Context, Step, event) error {
	if w.submitting {
		return ErrBusy
	}
	return nil
}

func (w *Wizard) guardComplete(_ context.Context, from Step, _ event) error {
	if from == StepEngagementModel {
		for s := StepContact; s <= LastStep; s++ {
			if err := w.check(s); err != nil {
				return err
			}
		}
		return nil
	}
	return w.check(from)
}

// tidy fully sanitizes the step being left.
func (w *Wizard) tidy(_ context.Context, from, _ Step, _ event) error {
	w.normalize(from)
	return nil
}

func (w *Wizard) normalize(s Step) {
	for _, f := range s.Fields() {
		// sanitized values are always accepted by set
		_ = w.set(f, sanitizer.Sanitize(w.value(f)))
	}
}

func (w *Wizard) wipe(context.Context, Step, Step, event) error {
	w.data = brief.Submission{}
	w.submitting = false
	w.lastErr = ""
	w.gen++
	return nil
}

// check validates the fields of one step.
func (w *Wizard) check(s Step) error {
	e := &StepError{Step: s}
	for _, f := range s.Fields() {
		v := sanitizer.Sanitize(w.value(f))
		switch {
		case f.Required() && v == "":
			e.Missing = append(e.Missing, f)
		case f == FieldEmail && !validator.IsEmail(v):
			e.Invalid = append(e.Invalid, f)
		case f == FieldDescription && utf8.RuneCountInString(v) < MinDescriptionLength:
			e.Invalid = append(e.Invalid, f)
		}
	}
	if len(e.Missing) == 0 && len(e.Invalid) == 0 {
		return nil
	}
	return e
}

func stepMessage(e *StepError) string {
	switch {
	case len(e.Missing) > 0:
		return "Please fill in all required fields."
	case len(e.Invalid) == 1 && e.Invalid[0] == FieldEmail:
		return brief.MsgInvalidEmail
	case len(e.Invalid) == 1 && e.Invalid[0] == FieldDescription:
		return brief.MsgShortDesc
	default:
		return "Please check the highlighted fields."
	}
}

func invalid(f Field, v string) error {
	return fmt.Errorf("%w: %q is not a valid %s", ErrInvalidValue, v, f)
}
