package transport

import "github.com/stroomai/leadgen/modules/brief"

// Client-side kinds. Server outcomes use the brief.Kind values.
const (
	KindTimeout        brief.Kind = "timeout"
	KindTransportError brief.Kind = "transport_error"
)

// User-facing copy for outcomes the server did not phrase itself.
const (
	MsgTimeout   = "The request took too long. Please check your connection and try again."
	MsgTransport = "We could not reach our server. Please try again in a moment."
	MsgGeneric   = "Something went wrong while submitting your brief. Please try again."
)

// Result is the classified outcome of one Submit.
type Result struct {
	Kind    brief.Kind `json:"kind"`
	Message string     `json:"message"`
	// ID is the dispatch identifier of an accepted brief.
	ID     string   `json:"id,omitempty"`
	Fields []string `json:"fields,omitempty"`
	// Status is the HTTP status, zero when no response arrived.
	Status int `json:"status,omitempty"`
}

func (r Result) Accepted() bool { return r.Kind == brief.KindAccepted }

// Retryable reports whether resubmitting the same data may succeed.
func (r Result) Retryable() bool {
	switch r.Kind {
	case KindTimeout, KindTransportError, brief.KindServer:
		return true
	}
	return false
}
