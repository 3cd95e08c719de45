package brief

import (
	"context"
	"fmt"
	"time"

	"github.com/stroomai/leadgen/pkg/ratelimiter"
)

const (
	ReasonHoneypot      = "honeypot"
	ReasonRateLimited   = "rate_limited"
	ReasonDuplicate     = "duplicate"
	ReasonBlockedTerm   = "blocked_term"
	ReasonBlockedDomain = "blocked_domain"
	ReasonTooManyLinks  = "too_many_links"
)

// Meta is request information that is not part of the brief.
type Meta struct {
	IP        string
	IPHash    string
	UserAgent string
	// Honeypot is the value of the hidden website field.
	Honeypot string
}

type Verdict struct {
	Spam   bool
	Reason string
}

func spam(reason string) Verdict { return Verdict{Spam: true, Reason: reason} }

// SpamClassifier decides whether a valid-looking brief is spam. An error
// means the classifier could not decide.
type SpamClassifier interface {
	Classify(ctx context.Context, s Submission, meta Meta) (Verdict, error)
}

// Limiter is satisfied by *ratelimiter.Bucket.
type Limiter interface {
	Allow(ctx context.Context, key string) (*ratelimiter.Result, error)
}

// HeuristicClassifier flags, in order: a filled honeypot, a client over its
// submission rate, an email that already had a brief accepted within the
// duplicate window, and content that violates the ContentPolicy.
type HeuristicClassifier struct {
	limiter         Limiter
	repo            Repository
	duplicateWindow time.Duration
	policy          ContentPolicy
	now             func() time.Time
}

type SpamOption func(*HeuristicClassifier)

func WithRateLimiter(l Limiter) SpamOption {
	return func(c *HeuristicClassifier) { c.limiter = l }
}

func WithDuplicateCheck(repo Repository, window time.Duration) SpamOption {
	return func(c *HeuristicClassifier) {
		c.repo = repo
		c.duplicateWindow = window
	}
}

func WithContentPolicy(p ContentPolicy) SpamOption {
	return func(c *HeuristicClassifier) { c.policy = p }
}

func WithSpamClock(now func() time.Time) SpamOption {
	return func(c *HeuristicClassifier) { c.now = now }
}

func NewSpamClassifier(opts ...SpamOption) *HeuristicClassifier {
	c := &HeuristicClassifier{policy: DefaultContentPolicy(), now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HeuristicClassifier) Classify(ctx context.Context, s Submission, meta Meta) (Verdict, error) {
	if meta.Honeypot != "" {
		return spam(ReasonHoneypot), nil
	}

	if c.limiter != nil && meta.IPHash != "" {
		res, err := c.limiter.Allow(ctx, meta.IPHash)
		if err != nil {
			return Verdict{}, fmt.Errorf("rate limit: %w", err)
		}
		if !res.Allowed() {
			return spam(ReasonRateLimited), nil
		}
	}

	if c.repo != nil && c.duplicateWindow > 0 {
		prior, err := c.repo.Query(ctx, Filter{
			Email: s.Contact.Email,
			Kind:  KindAccepted,
			Since: c.now().Add(-c.duplicateWindow),
			Limit: 1,
		})
		if err != nil {
			return Verdict{}, fmt.Errorf("duplicate check: %w", err)
		}
		if len(prior) > 0 {
			return spam(ReasonDuplicate), nil
		}
	}

	if reason := c.policy.Check(s); reason != "" {
		return spam(reason), nil
	}
	return Verdict{}, nil
}
