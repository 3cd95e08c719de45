package wizard

import "github.com/stroomai/leadgen/modules/brief"

type Step int

const (
	StepContact Step = iota + 1
	StepProjectDetails
	StepTechnicalScope
	StepEngagementModel
	StepSubmitted
)

// LastStep is the step the form is submitted from.
const LastStep = StepEngagementModel

func (s Step) String() string {
	switch s {
	case StepContact:
		return "contact"
	case StepProjectDetails:
		return "project_details"
	case StepTechnicalScope:
		return "technical_scope"
	case StepEngagementModel:
		return "engagement_model"
	case StepSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Field enumerates every input of the form.
type Field int

const (
	FieldName Field = iota + 1
	FieldEmail
	FieldCompany
	FieldDescription
	FieldStage
	FieldTimeline
	FieldDataAvailability
	FieldDeliverables
	FieldEngagementModel
	FieldBudgetRange
)

// String returns the field's wire name.
func (f Field) String() string {
	switch f {
	case FieldName:
		return brief.FieldName
	case FieldEmail:
		return brief.FieldEmail
	case FieldCompany:
		return brief.FieldCompany
	case FieldDescription:
		return brief.FieldProjectDescription
	case FieldStage:
		return brief.FieldStage
	case FieldTimeline:
		return brief.FieldTimeline
	case FieldDataAvailability:
		return brief.FieldDataAvailability
	case FieldDeliverables:
		return brief.FieldExpectedDeliverables
	case FieldEngagementModel:
		return brief.FieldEngagementModel
	case FieldBudgetRange:
		return brief.FieldBudgetRange
	default:
		return "unknown"
	}
}

// Step returns the step a field is collected on.
func (f Field) Step() Step {
	switch f {
	case FieldName, FieldEmail, FieldCompany:
		return StepContact
	case FieldDescription, FieldStage, FieldTimeline:
		return StepProjectDetails
	case FieldDataAvailability, FieldDeliverables:
		return StepTechnicalScope
	case FieldEngagementModel, FieldBudgetRange:
		return StepEngagementModel
	default:
		return 0
	}
}

// Required reports whether the step cannot advance without the field.
func (f Field) Required() bool {
	return f != FieldCompany && f.Step() != 0
}

func (f Field) choice() bool {
	switch f {
	case FieldStage, FieldTimeline, FieldDataAvailability, FieldEngagementModel, FieldBudgetRange:
		return true
	default:
		return false
	}
}

// Fields lists the inputs collected on s in display order.
func (s Step) Fields() []Field {
	switch s {
	case StepContact:
		return []Field{FieldName, FieldEmail, FieldCompany}
	case StepProjectDetails:
		return []Field{FieldDescription, FieldStage, FieldTimeline}
	case StepTechnicalScope:
		return []Field{FieldDataAvailability, FieldDeliverables}
	case StepEngagementModel:
		return []Field{FieldEngagementModel, FieldBudgetRange}
	default:
		return nil
	}
}
