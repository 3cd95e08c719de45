package email

import (
	"fmt"

	"github.com/stroomai/leadgen/pkg/environment"
)

// NewSender picks Postmark when credentials are configured. DevSender is
// only allowed in development; every other environment must configure
// Postmark.
func NewSender(cfg Config, env environment.Environment) (Sender, error) {
	if cfg.UsePostmark() {
		return NewPostmarkClient(cfg)
	}
	if !env.IsDevelopment() {
		return nil, fmt.Errorf("%w: POSTMARK_SERVER_TOKEN is required in %s", ErrInvalidConfig, env.Normalize())
	}
	return NewDevSender(cfg.DevDir, cfg.SenderEmail), nil
}
