// Package email is the transactional email collaborator: a provider-agnostic
// Sender with a Postmark implementation for production and a DevSender that
// writes messages to disk during development.
//
// # Usage
//
//	cfg := email.Config{
//	    PostmarkServerToken:  "server-token",
//	    PostmarkAccountToken: "account-token",
//	    SenderEmail:          "hello@example.com",
//	}
//
//	sender, err := email.NewPostmarkClient(cfg)
//	if err != nil {
//	    // configuration is invalid, fail at startup
//	}
//
//	receipt, err := sender.Send(ctx, email.Message{
//	    To:      []string{"ops@example.com"},
//	    ReplyTo: "jane@co.com",
//	    Subject: "New project brief",
//	    HTML:    html,
//	    Text:    text,
//	    Tag:     "brief-operator",
//	})
//
// Message bodies are usually built from templ components with
// templates.Render.
//
// # Errors
//
//   - ErrInvalidConfig: configuration validation failed (constructor)
//   - ErrInvalidParams: the message is incomplete or addresses are malformed
//   - ErrFailedToSendEmail: the provider rejected or could not accept the message
package email
