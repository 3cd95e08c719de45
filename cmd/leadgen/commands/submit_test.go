package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stroomai/leadgen/modules/brief"
	"github.com/stroomai/leadgen/modules/brief/transport"
)

func writeBrief(t *testing.T) string {
	t.Helper()
	p := brief.Submission{
		Contact: brief.Contact{Name: "Jane Doe", Email: "jane@co.com"},
		Project: brief.Project{
			Description: testDescription,
			Stage:       brief.StageIdea,
			Timeline:    brief.TimelineShort,
		},
		Technical: brief.Technical{
			DataAvailability:     brief.DataAvailable,
			ExpectedDeliverables: "Churn model behind an API",
		},
		Engagement: brief.Engagement{
			Model:       brief.EngagementHourly,
			BudgetRange: brief.Budget10to25k,
		},
	}.Payload()
	data, err := json.Marshal(p)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "brief.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func runSubmit(t *testing.T, endpoint, path string) (transport.Result, error) {
	t.Helper()
	cmd := submitCmd()
	cmd.SilenceUsage = true // mirror root, which sets SilenceUsage
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--endpoint", endpoint, path})
	err := cmd.Execute()

	var res transport.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	return res, err
}

func TestSubmitCmd(t *testing.T) {
	t.Parallel()

	t.Run("accepted", func(t *testing.T) {
		t.Parallel()

		var got brief.Payload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"id":"abc123"}`))
		}))
		defer srv.Close()

		res, err := runSubmit(t, srv.URL, writeBrief(t))

		require.NoError(t, err)
		assert.Equal(t, brief.KindAccepted, res.Kind)
		assert.Equal(t, "Jane Doe", got.Name)
		assert.Equal(t, string(brief.Budget10to25k), got.BudgetRange)
	})

	t.Run("rejected brief fails the command", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"error":"Invalid email format"}`))
		}))
		defer srv.Close()

		res, err := runSubmit(t, srv.URL, writeBrief(t))

		require.Error(t, err)
		assert.Equal(t, brief.KindValidation, res.Kind)
		assert.Equal(t, "Invalid email format", res.Message)
	})
}

func TestSubmitCmd_MissingFile(t *testing.T) {
	t.Parallel()

	cmd := submitCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, cmd.Execute())
}
