package brief_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stroomai/leadgen/modules/brief"
	"github.com/stroomai/leadgen/pkg/clientip"
	"github.com/stroomai/leadgen/pkg/email"
	"github.com/stroomai/leadgen/pkg/environment"
	"github.com/stroomai/leadgen/pkg/ratelimiter"
)

func newTestRouter(t *testing.T, sender email.Sender, opts ...brief.ServiceOption) http.Handler {
	t.Helper()

	d, err := brief.NewDispatcher(sender, testDispatcherConfig, nil)
	require.NoError(t, err)

	opts = append([]brief.ServiceOption{brief.WithSpamClassifier(brief.NewSpamClassifier())}, opts...)
	svc, err := brief.NewService(d, opts...)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Mount("/api", svc.Handle())
	return r
}

func postJSON(t *testing.T, h http.Handler, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/submit-brief", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func TestSubmitBrief(t *testing.T) {
	t.Parallel()

	t.Run("accepted brief sends two emails", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return(email.Receipt{ID: "pm-1"}, nil)

		rec, body := postJSON(t, newTestRouter(t, sender), validPayload())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		sender.AssertNumberOfCalls(t, "Send", 2)
	})

	t.Run("invalid email", func(t *testing.T) {
		sender := new(MockSender)
		p := validPayload()
		p.Email = "not-an-email"

		rec, body := postJSON(t, newTestRouter(t, sender), p)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Invalid email format", body["error"])
		assert.NotContains(t, body, "detail")
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("honeypot is flagged", func(t *testing.T) {
		sender := new(MockSender)
		p := validPayload()
		p.Website = "http://spam.example"

		rec, body := postJSON(t, newTestRouter(t, sender), p)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, true, body["spam"])
		assert.Equal(t, brief.MsgSpam, body["error"])
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("operator alert failure", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return(email.Receipt{}, email.ErrFailedToSendEmail)

		rec, body := postJSON(t, newTestRouter(t, sender), validPayload())

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Contains(t, body["error"], brief.MsgServerErrorBase)
		assert.NotContains(t, body, "detail")
	})

	t.Run("unknown fields are ignored", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return(email.Receipt{ID: "pm-1"}, nil)

		p := map[string]any{
			"name": "Jane Doe", "email": "jane@co.com", "projectDescription": testDescription,
			"stage": "prototype", "timeline": "short", "dataAvailability": "have-data",
			"expectedDeliverables": "API + docs", "engagementModel": "commission-hourly",
			"budgetRange": "10k-25k", "utm_source": "newsletter",
		}
		rec, _ := postJSON(t, newTestRouter(t, sender), p)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/submit-brief", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		newTestRouter(t, new(MockSender)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":false`)
	})

	t.Run("wrong content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/submit-brief", bytes.NewBufferString("name=jane"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		newTestRouter(t, new(MockSender)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("detail only in development", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return(email.Receipt{}, email.ErrFailedToSendEmail)
		h := environment.Middleware(environment.Development)(newTestRouter(t, sender))

		rec, body := postJSON(t, h, validPayload())
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, body["detail"], "failed_to_send_email")
	})
}

func TestSubmitBrief_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, new(MockSender))
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequestWithContext(context.Background(), method, "/api/submit-brief", nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
			assert.JSONEq(t, `{"success":false,"error":"Method not allowed"}`, rec.Body.String())
		})
	}
}

func TestSubmitBrief_RateLimitKey(t *testing.T) {
	t.Parallel()

	newLimitedRouter := func(t *testing.T, sender email.Sender, mw func(http.Handler) http.Handler) http.Handler {
		t.Helper()

		store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
		t.Cleanup(store.Close)
		bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})
		require.NoError(t, err)

		d, err := brief.NewDispatcher(sender, testDispatcherConfig, nil)
		require.NoError(t, err)
		svc, err := brief.NewService(d,
			brief.WithSpamClassifier(brief.NewSpamClassifier(brief.WithRateLimiter(bucket))),
			brief.WithIPHasher(newTestHasher(t)),
		)
		require.NoError(t, err)

		r := chi.NewRouter()
		r.Use(mw)
		r.Mount("/api", svc.Handle())
		return r
	}

	post := func(t *testing.T, h http.Handler, remoteAddr, forwarded string) map[string]any {
		t.Helper()

		raw, err := json.Marshal(validPayload())
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/submit-brief", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", forwarded)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var out map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
		return out
	}

	t.Run("rotating forwarded header does not reset the bucket", func(t *testing.T) {
		t.Parallel()

		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return(email.Receipt{ID: "pm-1"}, nil)
		h := newLimitedRouter(t, sender, clientip.Middleware)

		first := post(t, h, "203.0.113.9:4000", "10.0.0.1")
		assert.Equal(t, true, first["success"])

		for _, fwd := range []string{"10.0.0.2", "10.0.0.3", "10.0.0.4", "10.0.0.5"} {
			body := post(t, h, "203.0.113.9:4000", fwd)
			assert.Equal(t, true, body["spam"], fwd)
		}
		sender.AssertNumberOfCalls(t, "Send", 2)
	})

	t.Run("trusted proxy forwards distinct clients", func(t *testing.T) {
		t.Parallel()

		res, err := clientip.NewResolver(clientip.Config{TrustedProxies: []string{"10.0.0.0/8"}})
		require.NoError(t, err)

		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.Anything).Return(email.Receipt{ID: "pm-1"}, nil)
		h := newLimitedRouter(t, sender, res.Middleware)

		a := post(t, h, "10.0.0.2:4000", "203.0.113.1")
		b := post(t, h, "10.0.0.2:4000", "203.0.113.2")
		again := post(t, h, "10.0.0.2:4000", "198.51.100.7, 203.0.113.1")

		assert.Equal(t, true, a["success"])
		assert.Equal(t, true, b["success"])
		assert.Equal(t, true, again["spam"])
		sender.AssertNumberOfCalls(t, "Send", 4)
	})
}
