package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stroomai/leadgen/pkg/email"
	"github.com/stroomai/leadgen/pkg/environment"
	"github.com/stroomai/leadgen/pkg/logger"
)

func TestServe_RequiresPostmarkOutsideDevelopment(t *testing.T) {
	t.Setenv("SENDER_EMAIL", "noreply@stroom.ai")
	t.Setenv("OPERATOR_EMAIL", "ops@stroom.ai")
	t.Setenv("POSTMARK_SERVER_TOKEN", "")
	t.Setenv("PG_CONN_URL", "")
	t.Setenv("REDIS_URL", "")

	prevEnv, prevLog := appEnv, appLog
	t.Cleanup(func() { appEnv, appLog = prevEnv, prevLog })
	appEnv, appLog = environment.Production, logger.Nop()

	err := serve(context.Background())
	assert.ErrorIs(t, err, email.ErrInvalidConfig)
}
