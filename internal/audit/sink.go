package audit

import (
	"context"
	"errors"
	"io"
	"sync"
)

// Sink is an append-only destination for audit lines. Append receives one
// complete line including its trailing newline and must not interleave it
// with concurrent appends.
type Sink interface {
	Append(ctx context.Context, line []byte) error
}

// Tee fans each line out to every sink. All sinks are attempted; failures are
// joined so one broken sink does not hide another.
func Tee(sinks ...Sink) Sink {
	return teeSink(sinks)
}

type teeSink []Sink

func (t teeSink) Append(ctx context.Context, line []byte) error {
	var errs []error
	for _, s := range t {
		if err := s.Append(ctx, line); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t teeSink) Close() error {
	var errs []error
	for _, s := range t {
		if c, ok := s.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}

// MemorySink keeps lines in memory for tests.
type MemorySink struct {
	mu    sync.Mutex
	lines [][]byte
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (m *MemorySink) Append(_ context.Context, line []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, append([]byte(nil), line...))
	return nil
}

// Lines returns a copy of every appended line without trailing newlines.
func (m *MemorySink) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.lines))
	for i, l := range m.lines {
		out[i] = string(trimNewline(l))
	}
	return out
}

func trimNewline(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		return b[:n-1]
	}
	return b
}
