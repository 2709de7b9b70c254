package eligibility

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"admissions/internal/course"
	"admissions/internal/eligibility/metrics"
	dErrors "admissions/pkg/domain-errors"
	"admissions/pkg/requestcontext"
)

// Audit stream names, used as log and metric labels.
const (
	StreamRequest  = "request"
	StreamResponse = "response"
)

// AuditLogger appends normalized requests and responses to independent
// append-only sinks. Implementations must be safe for concurrent use.
type AuditLogger interface {
	LogRequest(ctx context.Context, payload any, at time.Time) error
	LogResponse(ctx context.Context, payload any, at time.Time) error
}

// Service runs the full check: validate, audit the request, evaluate,
// audit the response. Audit failures are logged and counted but never fail
// a decision that has already been computed.
type Service struct {
	validator *Validator
	engine    *Engine
	rules     RuleSource
	audit     AuditLogger
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer overrides the OpenTelemetry tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithClock overrides the timestamp source for audit lines.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService wires the eligibility check. All positional dependencies are required.
func NewService(validator *Validator, engine *Engine, rules RuleSource, audit AuditLogger, opts ...Option) (*Service, error) {
	switch {
	case validator == nil:
		return nil, errors.New("validator is required")
	case engine == nil:
		return nil, errors.New("engine is required")
	case rules == nil:
		return nil, errors.New("rule source is required")
	case audit == nil:
		return nil, errors.New("audit logger is required")
	}

	s := &Service{
		validator: validator,
		engine:    engine,
		rules:     rules,
		audit:     audit,
		logger:    slog.New(slog.DiscardHandler),
		tracer:    otel.Tracer("admissions/internal/eligibility"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Check validates raw and decides eligibility for its desired course.
func (s *Service) Check(ctx context.Context, raw RawProfile) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "eligibility.Check")
	defer span.End()

	start := time.Now()
	profile, err := s.validator.Validate(raw)
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.IncrementValidationFailure()
		span.SetStatus(codes.Error, "invalid profile")
		return nil, err
	}
	span.SetAttributes(attribute.String("eligibility.course", profile.DesiredCourse))

	s.write(ctx, StreamRequest, s.audit.LogRequest, profile)

	start = time.Now()
	result, err := s.engine.Evaluate(profile)
	elapsed += time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")

		var unknown *course.UnknownCourseError
		if errors.As(err, &unknown) {
			s.logger.ErrorContext(ctx, "validated course missing from rule table: validator and rule table are out of sync",
				"request_id", requestcontext.RequestID(ctx),
				"course", unknown.Course,
				"error", err,
			)
		} else {
			s.logger.ErrorContext(ctx, "eligibility evaluation failed",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "eligibility evaluation failed")
	}

	s.metrics.ObserveEvaluateLatency(elapsed)
	s.metrics.IncrementOutcome(result.Course, result.Eligible)
	span.SetAttributes(
		attribute.Bool("eligibility.eligible", result.Eligible),
		attribute.Int("eligibility.recommendations", len(result.Recommendations)),
	)

	s.write(ctx, StreamResponse, s.audit.LogResponse, result)

	return &result, nil
}

// Courses returns the rule table in declaration order.
func (s *Service) Courses() []course.Rule {
	return s.rules.Rules()
}

func (s *Service) write(ctx context.Context, stream string, log func(context.Context, any, time.Time) error, payload any) {
	if err := log(ctx, payload, s.now()); err != nil {
		s.metrics.IncrementAuditFailure(stream)
		s.logger.WarnContext(ctx, "audit log write failed",
			"request_id", requestcontext.RequestID(ctx),
			"stream", stream,
			"error", err,
		)
	}
}
