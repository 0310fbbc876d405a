// Package output appends one encoded JSON line per crawled page (NDJSON).
package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"crawn/internal/models"
)

// Sink serializes PageResults as newline-terminated JSON. Writes are
// mutex-serialized so concurrent workers can never interleave partial
// lines.
type Sink struct {
	mu     sync.Mutex
	w      *bufio.Writer
	closer io.Closer
}

// NewSink wraps an arbitrary writer.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: bufio.NewWriter(w)}
}

// NewFileSink creates or truncates path and returns a sink writing to it.
func NewFileSink(path string) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open output file %s: %w", path, err)
	}
	return &Sink{w: bufio.NewWriter(f), closer: f}, nil
}

// Write appends one record as a single JSON line.
func (s *Sink) Write(rec models.PageResult) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record for %s: %w", rec.URL, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(line); err != nil {
		return fmt.Errorf("write record for %s: %w", rec.URL, err)
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write record for %s: %w", rec.URL, err)
	}
	return nil
}

// Close flushes buffered lines and closes the underlying file, if any.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	if s.closer != nil {
		if err := s.closer.Close(); err != nil {
			return fmt.Errorf("close output: %w", err)
		}
	}
	return nil
}
