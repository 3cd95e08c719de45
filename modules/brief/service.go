package brief

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stroomai/leadgen/handler"
	"github.com/stroomai/leadgen/pkg/clientip"
	"github.com/stroomai/leadgen/pkg/logger"
	"github.com/stroomai/leadgen/pkg/sanitizer"
)

const recordTimeout = 5 * time.Second

type Service struct {
	notifier        Notifier
	spam            SpamClassifier
	repo            Repository
	hasher          *clientip.Hasher
	log             *slog.Logger
	now             func() time.Time
	fallbackContact string
	errorHandler    handler.ErrorHandler[handler.Context]
}

type ServiceOption func(*Service)

func WithSpamClassifier(c SpamClassifier) ServiceOption {
	return func(s *Service) { s.spam = c }
}

// WithRepository sets the intake log. Defaults to a MemoryRepository.
func WithRepository(r Repository) ServiceOption {
	return func(s *Service) {
		if r != nil {
			s.repo = r
		}
	}
}

func WithIPHasher(h *clientip.Hasher) ServiceOption {
	return func(s *Service) {
		if h != nil {
			s.hasher = h
		}
	}
}

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithFallbackContact adds an address to the server error copy so users
// can still reach someone when dispatch fails.
func WithFallbackContact(address string) ServiceOption {
	return func(s *Service) { s.fallbackContact = address }
}

func WithErrorHandler(h handler.ErrorHandler[handler.Context]) ServiceOption {
	return func(s *Service) { s.errorHandler = h }
}

func NewService(notifier Notifier, opts ...ServiceOption) (*Service, error) {
	if notifier == nil {
		return nil, fmt.Errorf("%w: notifier is required", ErrInvalidConfig)
	}
	s := &Service{
		notifier: notifier,
		repo:     NewMemoryRepository(),
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.hasher == nil {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("%w: generate ip hash key: %w", ErrInvalidConfig, err)
		}
		h, err := clientip.NewHasher(key)
		if err != nil {
			return nil, err
		}
		s.hasher = h
	}
	if s.errorHandler == nil {
		s.errorHandler = handler.NewJSONErrorHandler(s.log)
	}
	s.log = s.log.With(logger.Component("brief"))
	return s, nil
}

// Submit runs the intake pipeline. It never returns a Go error: every
// failure is classified into the Result.
func (s *Service) Submit(ctx context.Context, p Payload, meta Meta) Result {
	p = p.Sanitize()
	if meta.Honeypot == "" {
		meta.Honeypot = p.Website
	}
	if meta.IPHash == "" {
		meta.IPHash = s.hasher.Hash(meta.IP)
	}
	log := s.log.With(
		slog.String("email", sanitizer.MaskEmail(p.Email)),
		slog.String("ip_hash", shortHash(meta.IPHash)),
	)

	if err := p.Validate(); err != nil {
		var vf *ValidationFailure
		if !errors.As(err, &vf) {
			vf = &ValidationFailure{Message: MsgMissingFields, Cause: err}
		}
		log.InfoContext(ctx, "brief rejected",
			logger.Outcome(string(KindValidation)),
			logger.Reason(vf.Message),
			slog.Any("fields", vf.Fields),
		)
		return Result{Kind: KindValidation, Message: vf.Message, Fields: vf.Fields, Detail: err.Error()}
	}

	sub := p.Submission()

	if s.spam != nil {
		verdict, err := s.spam.Classify(ctx, sub, meta)
		switch {
		case err != nil:
			// fail open: a broken classifier must not drop real leads
			log.WarnContext(ctx, "spam classifier unavailable", logger.Error(err))
		case verdict.Spam:
			log.InfoContext(ctx, "brief flagged as spam",
				logger.Outcome(string(KindSpam)),
				logger.Reason(verdict.Reason),
			)
			s.record(ctx, sub, meta, KindSpam, "", verdict.Reason)
			return Result{Kind: KindSpam, Message: MsgSpam, Detail: verdict.Reason}
		}
	}

	receipt, err := s.notifier.Dispatch(ctx, sub)
	if err != nil {
		log.ErrorContext(ctx, "brief dispatch failed",
			logger.Outcome(string(KindServer)),
			logger.Error(err),
		)
		s.record(ctx, sub, meta, KindServer, "", err.Error())
		return Result{Kind: KindServer, Message: s.serverMessage(), Detail: err.Error()}
	}

	log.InfoContext(ctx, "brief accepted",
		logger.Outcome(string(KindAccepted)),
		logger.MessageID(receipt.ID),
		slog.String("stage", string(sub.Project.Stage)),
		slog.String("budget", string(sub.Engagement.BudgetRange)),
	)
	s.record(ctx, sub, meta, KindAccepted, receipt.ID, "")
	return Result{Kind: KindAccepted, Message: MsgAccepted, DispatchID: receipt.ID}
}

func (s *Service) serverMessage() string {
	if s.fallbackContact != "" {
		return MsgServerErrorBase + " or email us directly at " + s.fallbackContact + "."
	}
	return MsgServerErrorBase + "."
}

// record appends to the intake log. Failures are logged and swallowed.
func (s *Service) record(ctx context.Context, sub Submission, meta Meta, kind Kind, dispatchID, reason string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	rec := IntakeRecord{
		ID:              uuid.New(),
		Kind:            kind,
		Email:           sub.Contact.Email,
		IPHash:          meta.IPHash,
		Stage:           sub.Project.Stage,
		EngagementModel: sub.Engagement.Model,
		BudgetRange:     sub.Engagement.BudgetRange,
		DispatchID:      dispatchID,
		Reason:          reason,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.repo.Append(ctx, rec); err != nil {
		s.log.ErrorContext(ctx, "failed to append intake record",
			logger.SubmissionID(rec.ID.String()),
			logger.Error(errors.Join(ErrRepository, err)),
		)
	}
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
