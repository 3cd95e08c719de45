package environment_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stroomai/leadgen/pkg/environment"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   environment.Environment
		want environment.Environment
	}{
		{"dev", environment.Development},
		{" Development ", environment.Development},
		{"local", environment.Development},
		{"prod", environment.Production},
		{"PRODUCTION", environment.Production},
		{"stage", environment.Staging},
		{"qa", "qa"},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	t.Run("stores normalized value", func(t *testing.T) {
		t.Parallel()
		ctx := environment.WithContext(context.Background(), "dev")
		assert.Equal(t, environment.Development, environment.FromContext(ctx))
		assert.True(t, environment.IsDevelopment(ctx))
		assert.False(t, environment.IsProduction(ctx))
	})

	t.Run("empty context", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, environment.FromContext(context.Background()))
		assert.False(t, environment.IsDevelopment(context.Background()))
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got environment.Environment
	h := environment.Middleware(environment.Production)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = environment.FromContext(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, environment.Production, got)
}
