package brief

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stroomai/leadgen/handler"
	"github.com/stroomai/leadgen/pkg/binder"
	"github.com/stroomai/leadgen/pkg/clientip"
	"github.com/stroomai/leadgen/pkg/environment"
	"github.com/stroomai/leadgen/pkg/sanitizer"
)

// Handle returns the intake routes. Mount it under /api.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.MethodNotAllowed(methodNotAllowed)

	r.Post("/submit-brief", handler.Wrap(s.submit,
		handler.WithBinder[handler.Context, Payload](binder.JSON(
			binder.WithUnknownFields(),
			binder.WithMaxSize(64<<10),
			binder.WithStringTransform(sanitizer.Sanitize),
		)),
		handler.WithErrorHandler[handler.Context, Payload](s.errorHandler),
	))

	return r
}

func (s *Service) submit(ctx handler.Context, p Payload) handler.Response {
	r := ctx.Request()

	ip := clientip.FromContext(ctx)
	if ip == "" {
		ip = clientip.GetIP(r)
	}

	res := s.Submit(ctx, p, Meta{IP: ip, UserAgent: r.UserAgent()})
	return handler.JSON(res.Response(environment.IsDevelopment(ctx)),
		handler.WithStatus(res.Kind.HTTPStatus()),
		handler.WithHeader("Cache-Control", "no-store"),
	)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	_ = handler.JSON(Response{Error: handler.ErrMethodNotAllowed.Message},
		handler.WithStatus(http.StatusMethodNotAllowed),
	).Render(w, r)
}
