package environment

import (
	"context"
	"strings"
)

// Environment is the deployment environment the process runs in.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Normalize maps short aliases ("dev", "stage", "prod") to their canonical
// names. Unknown values are lowercased and returned as-is.
func (e Environment) Normalize() Environment {
	switch v := Environment(strings.ToLower(strings.TrimSpace(string(e)))); v {
	case "dev", "local":
		return Development
	case "stage":
		return Staging
	case "prod":
		return Production
	default:
		return v
	}
}

func (e Environment) IsDevelopment() bool { return e.Normalize() == Development }
func (e Environment) IsProduction() bool  { return e.Normalize() == Production }

type contextKey struct{}

func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env.Normalize())
}

func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

// IsDevelopment reports whether the context carries the development environment.
func IsDevelopment(ctx context.Context) bool {
	return FromContext(ctx) == Development
}

func IsProduction(ctx context.Context) bool {
	return FromContext(ctx) == Production
}
