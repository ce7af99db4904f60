package lead

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Sender delivers a rendered template through the email service.
type Sender interface {
	Send(ctx context.Context, serviceID, templateID string, params map[string]string) error
}

// Recorder observes submission outcomes. Outcome is "success" or "failure".
type Recorder interface {
	ObserveSubmission(outcome string, elapsed time.Duration)
}

// ServiceConfig carries the delivery identifiers injected from configuration.
type ServiceConfig struct {
	ServiceID  string
	TemplateID string
}

// Service runs the submission flow for lead forms.
type Service struct {
	catalog  *Catalog
	builder  *PayloadBuilder
	sender   Sender
	cfg      ServiceConfig
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time

	mu      sync.Mutex
	pending map[string]struct{}
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithRecorder reports submission outcomes to r.
func WithRecorder(r Recorder) ServiceOption {
	return func(s *Service) { s.recorder = r }
}

// WithClock overrides the time source used for submission timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService constructs a Service.
func NewService(c *Catalog, builder *PayloadBuilder, sender Sender, cfg ServiceConfig, logger *slog.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		catalog: c,
		builder: builder,
		sender:  sender,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
		pending: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pending reports whether key has a submission in flight.
func (s *Service) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[key]
	return ok
}

// Submit delivers st.Form for the visitor identified by key. On success the
// form is reset and the status becomes success; on delivery failure the
// fields are kept and the status becomes error. An incomplete form or a
// concurrent submission leaves st untouched.
func (s *Service) Submit(ctx context.Context, key string, st *State) error {
	if !st.Form.Ready() {
		return ErrNotReady
	}
	if !s.acquire(key) {
		return ErrSubmissionPending
	}
	defer s.release(key)

	st.Status = StatusIdle
	payload := s.builder.Build(st.Form, s.now())

	start := time.Now()
	err := s.sender.Send(ctx, s.cfg.ServiceID, s.cfg.TemplateID, payload)
	elapsed := time.Since(start)

	if err != nil {
		s.observe("failure", elapsed)
		s.logger.Error("lead delivery failed",
			slog.String("company", st.Form.CompanyName),
			slog.Any("error", err))
		st.Status = StatusError
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	s.observe("success", elapsed)
	s.logger.Info("lead delivered",
		slog.String("company", st.Form.CompanyName),
		slog.String("practice", st.Form.PracticeType),
		slog.Int("positions", len(st.Form.Positions)),
		slog.Duration("elapsed", elapsed))
	NewController(s.catalog, &st.Form).Reset()
	st.Status = StatusSuccess
	return nil
}

func (s *Service) observe(outcome string, elapsed time.Duration) {
	if s.recorder != nil {
		s.recorder.ObserveSubmission(outcome, elapsed)
	}
}

func (s *Service) acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.pending[key]; busy {
		return false
	}
	s.pending[key] = struct{}{}
	return true
}

func (s *Service) release(key string) {
	s.mu.Lock()
	delete(s.pending, key)
	s.mu.Unlock()
}
