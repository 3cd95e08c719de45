// Package validator provides composable validation rules that report
// field-level errors with translation metadata.
//
// Rules are plain values built by constructor functions and evaluated with
// Apply, which collects every failing rule into ValidationErrors:
//
//	err := validator.Apply(
//	    validator.Required("name", req.Name),
//	    validator.ValidEmail("email", req.Email),
//	    validator.MinLen("projectDescription", req.Description, 100),
//	    validator.InList("stage", req.Stage, []string{"idea", "prototype"}),
//	)
//	if validator.IsValidationError(err) {
//	    for _, field := range validator.ExtractValidationErrors(err).Fields() {
//	        // ...
//	    }
//	}
//
// Length rules count runes, not bytes, so multi-byte input is measured the
// way a user counts characters.
package validator
