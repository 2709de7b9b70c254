package audit

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// FileSink appends lines to a file opened in append mode. A mutex serializes
// writers and each line is written with a single Write call, so concurrent
// requests never produce interleaved lines.
type FileSink struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// OpenFile opens (creating if needed) path for appending.
func OpenFile(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open audit file %s: %w", path, err)
	}
	return &FileSink{file: f, path: path}, nil
}

func (s *FileSink) Append(_ context.Context, line []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return fmt.Errorf("append to %s: %w", s.path, os.ErrClosed)
	}
	if _, err := s.file.Write(line); err != nil {
		return fmt.Errorf("append to %s: %w", s.path, err)
	}
	return nil
}

// Path returns the file the sink writes to.
func (s *FileSink) Path() string {
	return s.path
}

// Close flushes and closes the file. Appends after Close fail.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
