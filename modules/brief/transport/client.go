package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/stroomai/leadgen/modules/brief"
	"github.com/stroomai/leadgen/pkg/logger"
)

const (
	DefaultTimeout  = 60 * time.Second
	maxResponseSize = 64 << 10
	userAgent       = "leadgen-transport/1.0"
)

type Client struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
	log      *slog.Logger
}

type Option func(*Client)

// WithTimeout replaces the 60 second deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		timeout: DefaultTimeout,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(logger.Component("brief_transport"))
	return c
}

// Submit posts s once. The returned error is non-nil only when no usable
// response arrived (ErrTimeout, ErrTransport); server outcomes such as
// validation or spam are reported through Result.Kind.
func (c *Client) Submit(ctx context.Context, s brief.Submission) (Result, error) {
	if err := c.validateEndpoint(); err != nil {
		return transportFailure(0), err
	}

	payload, err := json.Marshal(s.Payload())
	if err != nil {
		return transportFailure(0), fmt.Errorf("%w: marshal payload: %w", ErrTransport, err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return transportFailure(0), fmt.Errorf("%w: %w", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return c.failure(ctx, reqCtx, 0, err, start)
	}
	defer resp.Body.Close()

	if !isJSON(resp.Header.Get("Content-Type")) {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		err := fmt.Errorf("%w: unexpected content type %q with status %d",
			ErrTransport, resp.Header.Get("Content-Type"), resp.StatusCode)
		c.log.WarnContext(ctx, "non-json response from intake endpoint", logger.Error(err))
		return transportFailure(resp.StatusCode), err
	}

	var body brief.Response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&body); err != nil {
		return c.failure(ctx, reqCtx, resp.StatusCode, err, start)
	}

	res := classify(resp.StatusCode, body)
	c.log.DebugContext(ctx, "brief submitted",
		logger.Outcome(string(res.Kind)),
		slog.Int("status", resp.StatusCode),
		logger.Duration(time.Since(start)),
	)
	return res, nil
}

func (c *Client) failure(ctx, reqCtx context.Context, status int, err error, start time.Time) (Result, error) {
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		c.log.WarnContext(ctx, "intake request timed out", logger.Duration(time.Since(start)))
		return Result{Kind: KindTimeout, Message: MsgTimeout, Status: status}, errors.Join(ErrTimeout, err)
	}
	c.log.WarnContext(ctx, "intake request failed", logger.Error(err))
	return transportFailure(status), errors.Join(ErrTransport, err)
}

func (c *Client) validateEndpoint() error {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidTarget)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidTarget)
	}
	return nil
}

func classify(status int, body brief.Response) Result {
	ok := status >= 200 && status < 300
	res := Result{Status: status, Fields: body.Fields}

	switch {
	case body.Spam:
		res.Kind = brief.KindSpam
		res.Message = fallback(body.Error, brief.MsgSpam)
	case ok && body.Success:
		res.Kind = brief.KindAccepted
		res.Message = brief.MsgAccepted
		res.ID = body.ID
	case status == http.StatusBadRequest:
		res.Kind = brief.KindValidation
		res.Message = fallback(body.Error, MsgGeneric)
	default:
		res.Kind = brief.KindServer
		res.Message = fallback(body.Error, MsgGeneric)
	}
	return res
}

func transportFailure(status int) Result {
	return Result{Kind: KindTransportError, Message: MsgTransport, Status: status}
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "application/json"
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
