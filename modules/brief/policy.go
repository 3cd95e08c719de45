package brief

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stroomai/leadgen/pkg/sanitizer"
)

//go:embed spam_policy.yaml
var defaultPolicyYAML []byte

// ContentPolicy holds the content rules of the spam classifier.
type ContentPolicy struct {
	BlockedTerms        []string `yaml:"blocked_terms"`
	BlockedEmailDomains []string `yaml:"blocked_email_domains"`
	// MaxLinks caps links across all free-text fields. Zero means no cap.
	MaxLinks int `yaml:"max_links"`
}

func LoadContentPolicy(r io.Reader) (ContentPolicy, error) {
	var p ContentPolicy
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return ContentPolicy{}, fmt.Errorf("%w: spam policy: %w", ErrInvalidConfig, err)
	}
	if p.MaxLinks < 0 {
		return ContentPolicy{}, fmt.Errorf("%w: spam policy: max_links must not be negative", ErrInvalidConfig)
	}
	for i, t := range p.BlockedTerms {
		p.BlockedTerms[i] = strings.ToLower(strings.TrimSpace(t))
	}
	for i, d := range p.BlockedEmailDomains {
		p.BlockedEmailDomains[i] = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(d), "@"))
	}
	return p, nil
}

func LoadContentPolicyFile(path string) (ContentPolicy, error) {
	f, err := os.Open(path)
	if err != nil {
		return ContentPolicy{}, fmt.Errorf("%w: spam policy: %w", ErrInvalidConfig, err)
	}
	defer f.Close()
	return LoadContentPolicy(f)
}

// DefaultContentPolicy returns the built-in policy.
func DefaultContentPolicy() ContentPolicy {
	p, err := LoadContentPolicy(bytes.NewReader(defaultPolicyYAML))
	if err != nil {
		panic(err)
	}
	return p
}

// Check returns the reason s violates the policy, or "" if it does not.
func (p ContentPolicy) Check(s Submission) string {
	if at := strings.LastIndexByte(s.Contact.Email, '@'); at >= 0 {
		domain := strings.ToLower(s.Contact.Email[at+1:])
		for _, blocked := range p.BlockedEmailDomains {
			if domain == blocked {
				return ReasonBlockedDomain
			}
		}
	}

	text := strings.Join([]string{
		s.Contact.Name,
		s.Contact.Company,
		s.Project.Description,
		s.Technical.ExpectedDeliverables,
	}, "\n")

	lower := strings.ToLower(text)
	for _, term := range p.BlockedTerms {
		if term != "" && strings.Contains(lower, term) {
			return ReasonBlockedTerm
		}
	}

	if p.MaxLinks > 0 && sanitizer.CountLinks(text) > p.MaxLinks {
		return ReasonTooManyLinks
	}
	return ""
}
