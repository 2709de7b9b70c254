package audit

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"admissions/pkg/platform/circuit"
	"admissions/pkg/platform/sentinel"
)

// BreakerSink guards an unreliable sink with a circuit breaker. While the
// circuit is open, appends fail fast with sentinel.ErrUnavailable instead of
// waiting out the sink's own timeout on every request.
type BreakerSink struct {
	next    Sink
	breaker *circuit.Breaker
	logger  *slog.Logger
}

// NewBreakerSink wraps next. A nil logger discards transition logs.
func NewBreakerSink(next Sink, breaker *circuit.Breaker, logger *slog.Logger) *BreakerSink {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &BreakerSink{next: next, breaker: breaker, logger: logger}
}

func (b *BreakerSink) Append(ctx context.Context, line []byte) error {
	if !b.breaker.Allow() {
		return fmt.Errorf("%w: %s circuit open", sentinel.ErrUnavailable, b.breaker.Name())
	}
	if err := b.next.Append(ctx, line); err != nil {
		if _, change := b.breaker.RecordFailure(); change.Opened {
			b.logger.WarnContext(ctx, "audit sink circuit opened", "sink", b.breaker.Name(), "error", err)
		}
		return err
	}
	if _, change := b.breaker.RecordSuccess(); change.Closed {
		b.logger.InfoContext(ctx, "audit sink circuit closed", "sink", b.breaker.Name())
	}
	return nil
}

// Close closes the wrapped sink if it holds resources.
func (b *BreakerSink) Close() error {
	if c, ok := b.next.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
