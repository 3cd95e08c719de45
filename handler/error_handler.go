package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/stroomai/leadgen/pkg/binder"
	"github.com/stroomai/leadgen/pkg/environment"
	"github.com/stroomai/leadgen/pkg/logger"
)

// ErrorBody is the JSON shape of every error the endpoint emits outside the
// handler itself.
type ErrorBody struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Fields  []string `json:"fields,omitempty"`
	Detail  string   `json:"detail,omitempty"`
}

type errorInfo struct {
	status  int
	message string
	fields  []string
}

func classifyError(err error) errorInfo {
	var (
		httpErr HTTPError
		valErr  ValidationError
	)
	switch {
	case errors.As(err, &valErr):
		return errorInfo{status: http.StatusBadRequest, message: "Validation failed", fields: valErr.Fields()}
	case errors.As(err, &httpErr):
		return errorInfo{status: httpErr.Code, message: httpErr.Message}
	case errors.Is(err, binder.ErrMissingContentType), errors.Is(err, binder.ErrUnsupportedMediaType):
		return errorInfo{status: http.StatusBadRequest, message: "Content-Type must be application/json"}
	case errors.Is(err, binder.ErrBodyTooLarge):
		return errorInfo{status: http.StatusBadRequest, message: "Request body too large"}
	case errors.Is(err, binder.ErrFailedToParseJSON):
		return errorInfo{status: http.StatusBadRequest, message: "Invalid request body"}
	default:
		return errorInfo{status: http.StatusInternalServerError, message: "Internal server error"}
	}
}

// NewJSONErrorHandler renders errors as ErrorBody. The raw error text is
// included as Detail only when the request context is in development.
func NewJSONErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = logger.Nop()
	}
	return func(ctx Context, err error) {
		info := classifyError(err)

		level := slog.LevelError
		if info.status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		r := ctx.Request()
		log.LogAttrs(ctx, level, "request error",
			logger.Error(err),
			slog.Int("status", info.status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		body := ErrorBody{Error: info.message, Fields: info.fields}
		if environment.IsDevelopment(ctx) {
			body.Detail = err.Error()
		}
		if renderErr := JSON(body, WithStatus(info.status)).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(ctx, "failed to render error response", logger.Error(renderErr))
		}
	}
}
