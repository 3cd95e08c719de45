package brief

import "net/http"

// Kind classifies the outcome of one submission.
type Kind string

const (
	KindAccepted   Kind = "accepted"
	KindSpam       Kind = "spam_flagged"
	KindValidation Kind = "validation_error"
	KindServer     Kind = "server_error"
)

func (k Kind) HTTPStatus() int {
	switch k {
	case KindAccepted, KindSpam:
		return http.StatusOK
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Client-facing copy.
const (
	MsgAccepted        = "Thanks! Your project brief has been received."
	MsgMissingFields   = "Missing required fields"
	MsgInvalidEmail    = "Invalid email format"
	MsgShortDesc       = "Project description must be at least 100 characters"
	MsgInvalidChoice   = "Invalid selection"
	MsgFieldTooLong    = "One or more fields are too long"
	MsgSpam            = "Your submission was flagged as possible spam. Please review your details and try again."
	MsgServerErrorBase = "We could not submit your brief right now. Please try again later"
)

// Result is the outcome of Service.Submit.
type Result struct {
	Kind    Kind
	Message string
	// DispatchID identifies the operator alert of an accepted brief.
	DispatchID string
	Fields     []string
	// Detail is internal error text, only ever shown in development.
	Detail string
}

// Response is the JSON body of the intake endpoint.
type Response struct {
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
	Spam    bool     `json:"spam,omitempty"`
	ID      string   `json:"id,omitempty"`
	Fields  []string `json:"fields,omitempty"`
	Detail  string   `json:"detail,omitempty"`
}

// Response renders r for the wire. Detail is dropped unless withDetail is set.
func (r Result) Response(withDetail bool) Response {
	resp := Response{Success: r.Kind == KindAccepted}
	switch r.Kind {
	case KindAccepted:
		resp.ID = r.DispatchID
	case KindSpam:
		resp.Spam = true
		resp.Error = r.Message
	default:
		resp.Error = r.Message
		resp.Fields = r.Fields
	}
	if withDetail {
		resp.Detail = r.Detail
	}
	return resp
}
