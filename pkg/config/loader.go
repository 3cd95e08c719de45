package config

import (
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// Option adjusts how a single Load call reads the environment.
type Option func(*env.Options)

// WithEnvironment reads from vars instead of the process environment.
// The .env file is not consulted.
func WithEnvironment(vars map[string]string) Option {
	return func(o *env.Options) { o.Environment = vars }
}

// Load fills v from the environment according to its `env` struct tags.
// The first call loads .env from the working directory if it exists;
// variables already set in the process take precedence.
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	var o env.Options
	for _, opt := range opts {
		opt(&o)
	}

	if o.Environment == nil {
		dotenvOnce.Do(func() {
			// A missing .env is normal outside local development.
			_ = godotenv.Load()
		})
	}

	if err := env.ParseWithOptions(v, o); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}
