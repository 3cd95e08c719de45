// Package transport posts a project brief to the intake endpoint and
// classifies the outcome.
//
// A Client makes exactly one request per Submit with a hard deadline. The
// response is only parsed when the server declares a JSON content type, so
// an HTML error page from a proxy surfaces as KindTransportError instead of
// a decoding failure. A spam flag in the body wins over the HTTP status.
//
//	c := transport.New("https://stroom.ai/api/submit-brief")
//	res, err := c.Submit(ctx, submission)
//	switch res.Kind {
//	case brief.KindAccepted:
//	case brief.KindSpam:
//	case transport.KindTimeout:
//	}
package transport
