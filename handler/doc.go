// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and an already-bound request value and
// returns a Response. Wrap wires binders and an error handler
// around it:
//
//	h := handler.Wrap(svc.submit,
//	    handler.WithBinder[handler.Context, Payload](binder.JSON()),
//	    handler.WithErrorHandler[handler.Context, Payload](handler.NewJSONErrorHandler(log)),
//	)
//	r.Post("/api/submit-brief", h)
package handler
