package export

import (
	"context"
	"errors"
	"io"

	"github.com/golang/snappy"
)

// SnappyExt is appended to artifact names written through a SnappySink
const SnappyExt = ".sz"

// SnappySink frames every artifact with the snappy stream format
type SnappySink struct {
	inner Sink
}

// NewSnappySink wraps inner
func NewSnappySink(inner Sink) *SnappySink {
	return &SnappySink{inner: inner}
}

// Name implements Sink
func (s *SnappySink) Name() string { return s.inner.Name() }

// StoredName appends SnappyExt
func (s *SnappySink) StoredName(name string) string {
	return StoredName(s.inner, name+SnappyExt)
}

// Create implements Sink
func (s *SnappySink) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	w, err := s.inner.Create(ctx, name+SnappyExt)
	if err != nil {
		return nil, err
	}
	return &snappyWriter{Writer: snappy.NewBufferedWriter(w), inner: w}, nil
}

type snappyWriter struct {
	*snappy.Writer
	inner io.WriteCloser
}

func (w *snappyWriter) Close() error {
	if err := w.Writer.Close(); err != nil {
		return errors.Join(err, abort(w.inner))
	}
	return w.inner.Close()
}

func (w *snappyWriter) Abort() error {
	return abort(w.inner)
}
