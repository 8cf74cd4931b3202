package trace

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/schedsim/model"
)

// Sink receives rendered events. Handle has the event.Handler shape; Close
// flushes buffered output.
type Sink interface {
	Handle(ctx context.Context, e *model.Event) error
	Close(ctx context.Context) error
}

// WriterSink writes each event to an io.Writer as it arrives.
type WriterSink struct {
	w      io.Writer
	encode Encoder
	mu     sync.Mutex
}

// NewWriterSink creates a sink writing format-encoded events to w.
func NewWriterSink(w io.Writer, format string) (*WriterSink, error) {
	encode, err := NewEncoder(format)
	if err != nil {
		return nil, err
	}
	return &WriterSink{w: w, encode: encode}, nil
}

// Handle encodes and writes e.
func (s *WriterSink) Handle(_ context.Context, e *model.Event) error {
	data, err := s.encode(e)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err = s.w.Write(data); err != nil {
		return fmt.Errorf("failed to write trace: %w", err)
	}
	return nil
}

// Close is a no-op; the writer is owned by the caller.
func (s *WriterSink) Close(context.Context) error {
	return nil
}

// FileSink buffers the trace and uploads it to an afs URL on Close.
type FileSink struct {
	fs     afs.Service
	URL    string
	buffer bytes.Buffer
	writer *WriterSink
}

// NewFileSink creates a sink for URL. A nil fs defaults to afs.New().
func NewFileSink(fs afs.Service, URL, format string) (*FileSink, error) {
	if fs == nil {
		fs = afs.New()
	}
	ret := &FileSink{fs: fs, URL: URL}
	writer, err := NewWriterSink(&ret.buffer, format)
	if err != nil {
		return nil, err
	}
	ret.writer = writer
	return ret, nil
}

// Handle buffers e.
func (s *FileSink) Handle(ctx context.Context, e *model.Event) error {
	return s.writer.Handle(ctx, e)
}

// Close uploads the buffered trace, replacing any existing content.
func (s *FileSink) Close(ctx context.Context) error {
	if err := s.fs.Upload(ctx, s.URL, file.DefaultFileOsMode, bytes.NewReader(s.buffer.Bytes())); err != nil {
		return fmt.Errorf("failed to upload trace to %s: %w", s.URL, err)
	}
	return nil
}
