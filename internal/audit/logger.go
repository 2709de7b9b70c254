// Package audit writes the request and response audit trails.
//
// Each trail is an append-only sequence of lines of the form
//
//	2024-06-01 10:30:00.123 {"name":"Rudra Kanwar",...}
//
// The two trails use independent sinks so they can be retained, rotated or
// redacted separately.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// TimestampLayout is the millisecond-precision prefix of every audit line.
const TimestampLayout = "2006-01-02 15:04:05.000"

// Logger appends JSON payloads to the request and response sinks.
type Logger struct {
	requests  Sink
	responses Sink
}

// NewLogger builds a Logger over two sinks.
func NewLogger(requests, responses Sink) (*Logger, error) {
	if requests == nil || responses == nil {
		return nil, errors.New("request and response sinks are required")
	}
	return &Logger{requests: requests, responses: responses}, nil
}

// LogRequest appends the normalized request payload.
func (l *Logger) LogRequest(ctx context.Context, payload any, at time.Time) error {
	return l.append(ctx, l.requests, payload, at)
}

// LogResponse appends the response payload.
func (l *Logger) LogResponse(ctx context.Context, payload any, at time.Time) error {
	return l.append(ctx, l.responses, payload, at)
}

func (l *Logger) append(ctx context.Context, sink Sink, payload any, at time.Time) error {
	line, err := FormatLine(at, payload)
	if err != nil {
		return err
	}
	return sink.Append(ctx, line)
}

// Close closes both sinks where they hold resources.
func (l *Logger) Close() error {
	var errs []error
	for _, s := range []Sink{l.requests, l.responses} {
		if c, ok := s.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}

// FormatLine renders one newline-terminated audit line.
func FormatLine(at time.Time, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode audit payload: %w", err)
	}
	line := make([]byte, 0, len(TimestampLayout)+len(body)+2)
	line = at.AppendFormat(line, TimestampLayout)
	line = append(line, ' ')
	line = append(line, body...)
	line = append(line, '\n')
	return line, nil
}
