package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
)

const DefaultMaxJSONSize = 1 << 20

type jsonConfig struct {
	maxSize       int64
	strict        bool
	transformText func(string) string
}

type JSONOption func(*jsonConfig)

func WithMaxSize(n int64) JSONOption {
	return func(c *jsonConfig) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// WithUnknownFields accepts JSON keys that have no matching struct field.
func WithUnknownFields() JSONOption {
	return func(c *jsonConfig) { c.strict = false }
}

// WithStringTransform applies fn to every settable string reachable from the
// decoded value, including nested structs, slices, pointers and map values.
func WithStringTransform(fn func(string) string) JSONOption {
	return func(c *jsonConfig) { c.transformText = fn }
}

// JSON returns a binder for application/json bodies.
func JSON(opts ...JSONOption) func(r *http.Request, v any) error {
	cfg := jsonConfig{maxSize: DefaultMaxJSONSize, strict: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(r *http.Request, v any) error {
		if err := r.Context().Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToParseJSON, err)
		}

		ct := r.Header.Get("Content-Type")
		if ct == "" {
			return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
		}
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			return fmt.Errorf("%w: got %q, expected application/json", ErrUnsupportedMediaType, ct)
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, cfg.maxSize+1))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToParseJSON, err)
		}
		if int64(len(body)) > cfg.maxSize {
			return fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, cfg.maxSize)
		}

		dec := json.NewDecoder(bytes.NewReader(body))
		if cfg.strict {
			dec.DisallowUnknownFields()
		}
		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
			}
			return fmt.Errorf("%w: %w", ErrFailedToParseJSON, err)
		}
		if dec.More() {
			return fmt.Errorf("%w: unexpected data after JSON value", ErrFailedToParseJSON)
		}

		if cfg.transformText != nil {
			transformStrings(reflect.ValueOf(v), cfg.transformText)
		}
		return nil
	}
}

func transformStrings(rv reflect.Value, fn func(string) string) {
	switch rv.Kind() {
	case reflect.String:
		if rv.CanSet() {
			rv.SetString(fn(rv.String()))
		}
	case reflect.Struct:
		for i := range rv.NumField() {
			if f := rv.Field(i); f.CanSet() {
				transformStrings(f, fn)
			}
		}
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			transformStrings(rv.Index(i), fn)
		}
	case reflect.Map:
		if rv.Type().Elem().Kind() != reflect.String {
			return
		}
		for _, key := range rv.MapKeys() {
			rv.SetMapIndex(key, reflect.ValueOf(fn(rv.MapIndex(key).String())).Convert(rv.Type().Elem()))
		}
	case reflect.Pointer, reflect.Interface:
		if !rv.IsNil() {
			transformStrings(rv.Elem(), fn)
		}
	}
}
