// Package wizard holds the state of a four-step project brief form.
//
// Steps run Contact, ProjectDetails, TechnicalScope, EngagementModel and
// end in the terminal Submitted step. Next only advances when the current
// step's required fields are filled (and, on step 2, the description is at
// least brief.MinDescriptionLength characters). Back always moves one step
// back and never clears data. There is no way to jump to an arbitrary step.
//
// Fields are set through typed setters or Set with an explicit Field value.
// Every value passes through sanitizer.Sanitize on the way in.
//
//	w := wizard.New(transport.New(endpoint))
//	_ = w.SetName("Jane Doe")
//	_ = w.SetEmail("jane@co.com")
//	if err := w.Next(ctx); errors.Is(err, wizard.ErrStepIncomplete) {
//		// show w.Error()
//	}
//
// A Wizard belongs to one form session. Its methods are safe to call from
// the goroutine running Submit and a UI goroutine at the same time.
package wizard
