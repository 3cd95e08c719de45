package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/stroomai/leadgen/pkg/validator"
)

// Sender delivers a single transactional message and returns the
// provider's identifier for it.
type Sender interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}

// Message is one outbound email. From may be empty, in which case the
// sender's configured address is used.
type Message struct {
	From    string   `json:"from,omitempty"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"-"`
	Text    string   `json:"-"`
	Tag     string   `json:"tag,omitempty"`
}

// Receipt identifies an accepted message.
type Receipt struct {
	ID string `json:"id"`
}

// Validate checks that the message can be handed to a provider.
func (m Message) Validate() error {
	if len(m.To) == 0 {
		return fmt.Errorf("%w: To is required", ErrInvalidParams)
	}
	for _, to := range m.To {
		if !validator.IsEmail(strings.TrimSpace(to)) {
			return fmt.Errorf("%w: To must contain valid email addresses, got %q", ErrInvalidParams, to)
		}
	}
	if m.From != "" && !validator.IsEmail(m.From) {
		return fmt.Errorf("%w: From must be a valid email address", ErrInvalidParams)
	}
	if m.ReplyTo != "" && !validator.IsEmail(m.ReplyTo) {
		return fmt.Errorf("%w: ReplyTo must be a valid email address", ErrInvalidParams)
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	}
	if strings.ContainsAny(m.Subject, "\r\n") {
		return fmt.Errorf("%w: Subject must be a single line", ErrInvalidParams)
	}
	if strings.TrimSpace(m.HTML) == "" && strings.TrimSpace(m.Text) == "" {
		return fmt.Errorf("%w: HTML or Text body is required", ErrInvalidParams)
	}
	return nil
}
