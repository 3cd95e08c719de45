package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stroomai/leadgen/handler"
	"github.com/stroomai/leadgen/pkg/binder"
	"github.com/stroomai/leadgen/pkg/environment"
)

type greetRequest struct {
	Name string `json:"name"`
}

func greet(ctx handler.Context, req greetRequest) handler.Response {
	if req.Name == "" {
		v := handler.ValidationError{}
		v.Add("name", "required")
		return errResponse{err: v}
	}
	return handler.JSON(map[string]string{"hello": req.Name}, handler.WithHeader("X-Test", "1"))
}

// errResponse fails at render time so the error handler takes over.
type errResponse struct{ err error }

func (e errResponse) Render(http.ResponseWriter, *http.Request) error { return e.err }

func post(h http.Handler, contentType, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/greet", strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) handler.ErrorBody {
	t.Helper()
	var body handler.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestWrap_JSON(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(greet,
		handler.WithBinder[handler.Context, greetRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, greetRequest](handler.NewJSONErrorHandler(nil)),
	)

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		w := post(h, "application/json", `{"name":"Jane"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-Test"))
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		assert.JSONEq(t, `{"hello":"Jane"}`, w.Body.String())
	})

	t.Run("bad json is 400", func(t *testing.T) {
		t.Parallel()
		w := post(h, "application/json", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeError(t, w)
		assert.False(t, body.Success)
		assert.Equal(t, "Invalid request body", body.Error)
		assert.Empty(t, body.Detail, "no detail outside development")
	})

	t.Run("wrong content type is 400", func(t *testing.T) {
		t.Parallel()
		w := post(h, "text/plain", `hi`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Content-Type must be application/json", decodeError(t, w).Error)
	})

	t.Run("validation error carries fields", func(t *testing.T) {
		t.Parallel()
		w := post(h, "application/json", `{"name":""}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{"name"}, decodeError(t, w).Fields)
	})
}

func TestWrap_DevelopmentDetail(t *testing.T) {
	t.Parallel()

	h := environment.Middleware(environment.Development)(handler.Wrap(greet,
		handler.WithBinder[handler.Context, greetRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, greetRequest](handler.NewJSONErrorHandler(nil)),
	))

	w := post(h, "application/json", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Detail, binder.ErrFailedToParseJSON.Error())
}

func TestWrap_NilResponseAndDefaultErrorHandler(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(handler.Context, struct{}) handler.Response { return nil })
	w := post(h, "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	notAllowed := handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return errResponse{err: handler.ErrMethodNotAllowed}
	})
	w = post(notAllowed, "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	cause := errors.New("smtp down")
	err := handler.NewHTTPError(http.StatusBadGateway, "Upstream failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Upstream failed: smtp down", err.Error())
	assert.Equal(t, "Method not allowed", handler.ErrMethodNotAllowed.Error())
}
