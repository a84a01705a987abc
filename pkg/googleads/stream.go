package googleads

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

// ResultStream is a forward-only sequence of result batches.
// Next returns io.EOF once the stream is exhausted.
type ResultStream interface {
	Next() (*Batch, error)
	Close() error
}

// Stream decodes a searchStream response body one batch at a time,
// so only the current batch is held in memory.
type Stream struct {
	body io.ReadCloser
	iter *jsoniter.Iterator
	done bool
}

func newStream(body io.ReadCloser) *Stream {
	return &Stream{
		body: body,
		iter: jsoniter.Parse(json, body, 32*1024),
	}
}

// Next returns the next batch. An error object embedded in the stream is returned as *APIError.
func (s *Stream) Next() (*Batch, error) {
	if s.done {
		return nil, io.EOF
	}

	if !s.iter.ReadArray() {
		s.done = true
		if err := s.iter.Error; err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode stream: %w", err)
		}
		return nil, io.EOF
	}

	var batch Batch
	s.iter.ReadVal(&batch)
	if err := s.iter.Error; err != nil && !errors.Is(err, io.EOF) {
		s.done = true
		return nil, fmt.Errorf("failed to decode batch: %w", err)
	}

	if batch.Error != nil {
		s.done = true
		return nil, batch.Error.apiError(http.StatusOK)
	}

	return &batch, nil
}

// Close releases the response body.
func (s *Stream) Close() error {
	s.done = true
	return s.body.Close()
}

// SliceStream serves batches from memory. It backs fakes of the API in tests.
type SliceStream struct {
	batches []Batch
	err     error // returned after the batches instead of io.EOF
	pos     int
	closed  bool
}

// NewSliceStream returns a stream over the given batches.
func NewSliceStream(batches ...Batch) *SliceStream {
	return &SliceStream{batches: batches}
}

// FailAfter makes the stream return err once its batches are consumed.
func (s *SliceStream) FailAfter(err error) *SliceStream {
	s.err = err
	return s
}

// Next implements ResultStream.
func (s *SliceStream) Next() (*Batch, error) {
	if s.closed {
		return nil, io.EOF
	}
	if s.pos >= len(s.batches) {
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	b := s.batches[s.pos]
	s.pos++
	return &b, nil
}

// Close implements ResultStream.
func (s *SliceStream) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *SliceStream) Closed() bool {
	return s.closed
}
