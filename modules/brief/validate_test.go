package brief_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stroomai/leadgen/modules/brief"
)

func TestPayload_Sanitize(t *testing.T) {
	t.Parallel()

	p := validPayload()
	p.Name = "  Jane\n Doe<script>alert(1)</script> "
	p.Email = " Jane@Co.COM "
	p.ExpectedDeliverables = "<b>API</b> + docs"

	got := p.Sanitize()
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "jane@co.com", got.Email)
	assert.Equal(t, "bAPI/b + docs", got.ExpectedDeliverables)
	assert.NotContains(t, got.Name, "alert(1)")

	t.Run("header fields drop control characters", func(t *testing.T) {
		p := validPayload()
		p.Name = "Jane\x07 Doe"
		p.Email = "jane\x00@co.com\r\nBcc: x@y.io"
		p.Company = "Acme\x1b[31m\tCorp\x7f"

		got := p.Sanitize()
		assert.Equal(t, "Jane Doe", got.Name)
		assert.Equal(t, "jane@co.com bcc: x@y.io", got.Email)
		assert.Equal(t, "Acme[31m Corp", got.Company)
	})

	t.Run("idempotent", func(t *testing.T) {
		assert.Equal(t, got, got.Sanitize())
	})
}

func TestPayload_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mutate     func(p *brief.Payload)
		wantMsg    string
		wantFields []string
	}{
		{
			name:    "valid",
			mutate:  func(*brief.Payload) {},
			wantMsg: "",
		},
		{
			name:    "company is optional",
			mutate:  func(p *brief.Payload) { p.Company = "" },
			wantMsg: "",
		},
		{
			name: "missing fields reported in order",
			mutate: func(p *brief.Payload) {
				p.Name = ""
				p.BudgetRange = ""
			},
			wantMsg:    brief.MsgMissingFields,
			wantFields: []string{brief.FieldName, brief.FieldBudgetRange},
		},
		{
			name:       "invalid email",
			mutate:     func(p *brief.Payload) { p.Email = "not-an-email" },
			wantMsg:    brief.MsgInvalidEmail,
			wantFields: []string{brief.FieldEmail},
		},
		{
			name: "missing fields win over invalid email",
			mutate: func(p *brief.Payload) {
				p.Email = "not-an-email"
				p.Stage = ""
			},
			wantMsg:    brief.MsgMissingFields,
			wantFields: []string{brief.FieldStage},
		},
		{
			name:       "short description",
			mutate:     func(p *brief.Payload) { p.ProjectDescription = strings.Repeat("a", brief.MinDescriptionLength-1) },
			wantMsg:    brief.MsgShortDesc,
			wantFields: []string{brief.FieldProjectDescription},
		},
		{
			name:    "description at minimum length",
			mutate:  func(p *brief.Payload) { p.ProjectDescription = strings.Repeat("é", brief.MinDescriptionLength) },
			wantMsg: "",
		},
		{
			name:       "description too long",
			mutate:     func(p *brief.Payload) { p.ProjectDescription = strings.Repeat("a", brief.MaxDescriptionLength+1) },
			wantMsg:    brief.MsgFieldTooLong,
			wantFields: []string{brief.FieldProjectDescription},
		},
		{
			name:       "unknown stage",
			mutate:     func(p *brief.Payload) { p.Stage = "launched" },
			wantMsg:    brief.MsgInvalidChoice,
			wantFields: []string{brief.FieldStage},
		},
		{
			name:       "unknown budget",
			mutate:     func(p *brief.Payload) { p.BudgetRange = "1m+" },
			wantMsg:    brief.MsgInvalidChoice,
			wantFields: []string{brief.FieldBudgetRange},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(&p)

			err := p.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, brief.ErrValidation)

			var vf *brief.ValidationFailure
			require.True(t, errors.As(err, &vf))
			assert.Equal(t, tt.wantMsg, vf.Message)
			assert.Equal(t, tt.wantFields, vf.Fields)
		})
	}
}

func TestEnums(t *testing.T) {
	t.Parallel()

	for _, s := range brief.AllStages() {
		assert.True(t, s.Valid())
		assert.NotEqual(t, string(s), s.Label())
	}
	for _, b := range brief.AllBudgetRanges() {
		assert.True(t, b.Valid())
	}
	assert.False(t, brief.Stage("nope").Valid())
	assert.Equal(t, "nope", brief.Stage("nope").Label())
	assert.Equal(t, "Commission + hourly", brief.EngagementCommissionHourly.Label())
}

func TestSubmission_PayloadRoundTrip(t *testing.T) {
	t.Parallel()

	p := validPayload()
	assert.Equal(t, p, p.Submission().Payload())
}
