package brief

import (
	"github.com/stroomai/leadgen/pkg/sanitizer"
	"github.com/stroomai/leadgen/pkg/validator"
)

const (
	MinDescriptionLength = 100
	MaxDescriptionLength = 5000
	maxShortField        = 200
	maxDeliverables      = 2000
)

// Field names as they appear on the wire.
const (
	FieldName                 = "name"
	FieldEmail                = "email"
	FieldCompany              = "company"
	FieldProjectDescription   = "projectDescription"
	FieldStage                = "stage"
	FieldTimeline             = "timeline"
	FieldDataAvailability     = "dataAvailability"
	FieldExpectedDeliverables = "expectedDeliverables"
	FieldEngagementModel      = "engagementModel"
	FieldBudgetRange          = "budgetRange"
)

// Name, email and company end up in mail headers.
var (
	headerText  = sanitizer.Compose(sanitizer.RemoveControlChars, sanitizer.Sanitize, sanitizer.SingleLine)
	headerEmail = sanitizer.Compose(headerText, sanitizer.ToLower)
)

// Sanitize runs every free-text field through sanitizer.Sanitize and
// lowercases the email address.
func (p Payload) Sanitize() Payload {
	p.Name = headerText(p.Name)
	p.Email = headerEmail(p.Email)
	p.Company = headerText(p.Company)
	p.ProjectDescription = sanitizer.Sanitize(p.ProjectDescription)
	p.Stage = sanitizer.Sanitize(p.Stage)
	p.Timeline = sanitizer.Sanitize(p.Timeline)
	p.DataAvailability = sanitizer.Sanitize(p.DataAvailability)
	p.ExpectedDeliverables = sanitizer.Sanitize(p.ExpectedDeliverables)
	p.EngagementModel = sanitizer.Sanitize(p.EngagementModel)
	p.BudgetRange = sanitizer.Sanitize(p.BudgetRange)
	p.Website = sanitizer.Sanitize(p.Website)
	return p
}

// ValidationFailure is the first failing validation stage.
type ValidationFailure struct {
	Message string
	Fields  []string
	Cause   error
}

func (f *ValidationFailure) Error() string { return f.Message }

func (f *ValidationFailure) Unwrap() []error { return []error{ErrValidation, f.Cause} }

// Validate checks p in stages and reports only the first failing one:
// required fields, then email shape, then lengths and choices.
func (p Payload) Validate() error {
	stages := []struct {
		message string
		rules   []validator.Rule
	}{
		{MsgMissingFields, []validator.Rule{
			validator.Required(FieldName, p.Name),
			validator.Required(FieldEmail, p.Email),
			validator.Required(FieldProjectDescription, p.ProjectDescription),
			validator.Required(FieldStage, p.Stage),
			validator.Required(FieldTimeline, p.Timeline),
			validator.Required(FieldDataAvailability, p.DataAvailability),
			validator.Required(FieldExpectedDeliverables, p.ExpectedDeliverables),
			validator.Required(FieldEngagementModel, p.EngagementModel),
			validator.Required(FieldBudgetRange, p.BudgetRange),
		}},
		{MsgInvalidEmail, []validator.Rule{
			validator.ValidEmail(FieldEmail, p.Email),
		}},
		{MsgShortDesc, []validator.Rule{
			validator.MinLen(FieldProjectDescription, p.ProjectDescription, MinDescriptionLength),
		}},
		{MsgFieldTooLong, []validator.Rule{
			validator.MaxLen(FieldName, p.Name, maxShortField),
			validator.MaxLen(FieldEmail, p.Email, maxShortField),
			validator.MaxLen(FieldCompany, p.Company, maxShortField),
			validator.MaxLen(FieldProjectDescription, p.ProjectDescription, MaxDescriptionLength),
			validator.MaxLen(FieldExpectedDeliverables, p.ExpectedDeliverables, maxDeliverables),
		}},
		{MsgInvalidChoice, []validator.Rule{
			validator.InList(FieldStage, Stage(p.Stage), AllStages()),
			validator.InList(FieldTimeline, Timeline(p.Timeline), AllTimelines()),
			validator.InList(FieldDataAvailability, DataAvailability(p.DataAvailability), AllDataAvailability()),
			validator.InList(FieldEngagementModel, EngagementModel(p.EngagementModel), AllEngagementModels()),
			validator.InList(FieldBudgetRange, BudgetRange(p.BudgetRange), AllBudgetRanges()),
		}},
	}

	for _, stage := range stages {
		if err := validator.Apply(stage.rules...); err != nil {
			return &ValidationFailure{
				Message: stage.message,
				Fields:  validator.ExtractValidationErrors(err).Fields(),
				Cause:   err,
			}
		}
	}
	return nil
}
