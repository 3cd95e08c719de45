package brief

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/a-h/templ"

	"github.com/stroomai/leadgen/pkg/email"
	"github.com/stroomai/leadgen/pkg/email/templates"
	"github.com/stroomai/leadgen/pkg/logger"
	"github.com/stroomai/leadgen/pkg/sanitizer"
	"github.com/stroomai/leadgen/pkg/validator"
)

const (
	tagOperatorAlert = "brief-operator-alert"
	tagConfirmation  = "brief-confirmation"
)

type DispatcherConfig struct {
	OperatorEmail string
	// From overrides the sender's default address.
	From           string
	ResponseWindow string
	SiteName       string
}

// DispatchReceipt identifies the messages sent for one brief. ID is the
// operator alert's provider ID.
type DispatchReceipt struct {
	ID             string
	ConfirmationID string
}

// Notifier sends the notifications for an accepted brief.
type Notifier interface {
	Dispatch(ctx context.Context, s Submission) (DispatchReceipt, error)
}

type Dispatcher struct {
	sender email.Sender
	cfg    DispatcherConfig
	log    *slog.Logger
	now    func() time.Time
}

// NewDispatcher validates cfg up front so a misconfigured deployment fails
// at startup instead of on the first brief.
func NewDispatcher(sender email.Sender, cfg DispatcherConfig, log *slog.Logger) (*Dispatcher, error) {
	if sender == nil {
		return nil, fmt.Errorf("%w: email sender is required", ErrInvalidConfig)
	}
	if !validator.IsEmail(cfg.OperatorEmail) {
		return nil, fmt.Errorf("%w: operator email %q is not a valid address", ErrInvalidConfig, cfg.OperatorEmail)
	}
	if cfg.From != "" && !validator.IsEmail(cfg.From) {
		return nil, fmt.Errorf("%w: from address %q is not a valid address", ErrInvalidConfig, cfg.From)
	}
	if cfg.ResponseWindow == "" {
		cfg.ResponseWindow = "2 business days"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{sender: sender, cfg: cfg, log: log, now: time.Now}, nil
}

// Dispatch sends the operator alert, then the submitter confirmation. Only
// a failed operator alert is an error; a failed confirmation is logged.
func (d *Dispatcher) Dispatch(ctx context.Context, s Submission) (DispatchReceipt, error) {
	alert := alertData{Submission: s, SiteName: d.cfg.SiteName, ReceivedAt: d.now()}
	msg, err := d.compose(ctx, operatorAlertHTML(alert), operatorAlertText(alert))
	if err != nil {
		return DispatchReceipt{}, errors.Join(ErrDispatch, err)
	}
	msg.To = []string{d.cfg.OperatorEmail}
	msg.ReplyTo = s.Contact.Email
	msg.Subject = operatorSubject(s)
	msg.Tag = tagOperatorAlert

	rcpt, err := d.sender.Send(ctx, msg)
	if err != nil {
		return DispatchReceipt{}, errors.Join(ErrDispatch, err)
	}
	receipt := DispatchReceipt{ID: rcpt.ID}
	d.log.InfoContext(ctx, "operator alert sent",
		logger.Event(tagOperatorAlert),
		logger.MessageID(rcpt.ID),
		slog.String("to", sanitizer.MaskEmail(d.cfg.OperatorEmail)),
	)

	conf := confirmationData{
		Name:           s.Contact.Name,
		SiteName:       d.cfg.SiteName,
		ResponseWindow: d.cfg.ResponseWindow,
		Submission:     s,
	}
	cmsg, err := d.compose(ctx, confirmationHTML(conf), confirmationText(conf))
	if err == nil {
		cmsg.To = []string{s.Contact.Email}
		cmsg.ReplyTo = d.cfg.OperatorEmail
		cmsg.Subject = confirmationSubject(d.cfg.SiteName)
		cmsg.Tag = tagConfirmation

		var crcpt email.Receipt
		if crcpt, err = d.sender.Send(ctx, cmsg); err == nil {
			receipt.ConfirmationID = crcpt.ID
		}
	}
	if err != nil {
		d.log.WarnContext(ctx, "confirmation email failed",
			logger.Event(tagConfirmation),
			logger.Error(err),
			logger.MessageID(rcpt.ID),
			slog.String("to", sanitizer.MaskEmail(s.Contact.Email)),
		)
	}

	return receipt, nil
}

func (d *Dispatcher) compose(ctx context.Context, html, text templ.Component) (email.Message, error) {
	htmlBody, err := templates.Render(ctx, html)
	if err != nil {
		return email.Message{}, fmt.Errorf("render html body: %w", err)
	}
	textBody, err := templates.Render(ctx, text)
	if err != nil {
		return email.Message{}, fmt.Errorf("render text body: %w", err)
	}
	return email.Message{From: d.cfg.From, HTML: htmlBody, Text: textBody}, nil
}
