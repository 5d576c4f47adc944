// Package export writes aggregated annotation rows to files, object storage
// and PostgreSQL.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Sink creates named artifacts. Close on the returned writer commits the
// artifact; an artifact that fails to close must not be visible.
type Sink interface {
	Name() string
	Create(ctx context.Context, name string) (io.WriteCloser, error)
}

// aborter is implemented by writers that can discard an artifact instead of
// committing it.
type aborter interface {
	Abort() error
}

// storedNamer is implemented by sinks that store an artifact under a name
// other than the one it was created with.
type storedNamer interface {
	StoredName(name string) string
}

// StoredName returns the name sink commits an artifact created as name under
func StoredName(sink Sink, name string) string {
	if n, ok := sink.(storedNamer); ok {
		return n.StoredName(name)
	}
	return name
}

// abort discards w when it supports it, and closes it otherwise
func abort(w io.WriteCloser) error {
	if a, ok := w.(aborter); ok {
		return a.Abort()
	}
	return w.Close()
}

// DirSink writes artifacts into a local directory. Each file is written under
// a temporary name and renamed into place on Close.
type DirSink struct {
	dir string
}

// NewDirSink creates dir if needed
func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &DirSink{dir: dir}, nil
}

// Name implements Sink
func (s *DirSink) Name() string { return "dir" }

// Dir returns the output directory
func (s *DirSink) Dir() string { return s.dir }

// Create implements Sink
func (s *DirSink) Create(_ context.Context, name string) (io.WriteCloser, error) {
	if name == "" || strings.ContainsRune(name, filepath.Separator) {
		return nil, fmt.Errorf("invalid artifact name %q", name)
	}
	tmp, err := os.CreateTemp(s.dir, "."+name+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", name, err)
	}
	return &dirFile{File: tmp, final: filepath.Join(s.dir, name)}, nil
}

type dirFile struct {
	*os.File
	final string
}

func (f *dirFile) Close() error {
	if err := f.File.Close(); err != nil {
		os.Remove(f.File.Name())
		return err
	}
	if err := os.Rename(f.File.Name(), f.final); err != nil {
		os.Remove(f.File.Name())
		return fmt.Errorf("failed to commit %s: %w", filepath.Base(f.final), err)
	}
	return nil
}

func (f *dirFile) Abort() error {
	f.File.Close()
	return os.Remove(f.File.Name())
}

// MultiSink fans every artifact out to several sinks. List the sink whose
// commit is hardest to undo first.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink combines sinks; a single sink is returned unwrapped
func NewMultiSink(sinks ...Sink) Sink {
	if len(sinks) == 1 {
		return sinks[0]
	}
	return &MultiSink{sinks: sinks}
}

// Name implements Sink
func (m *MultiSink) Name() string {
	names := make([]string, len(m.sinks))
	for i, s := range m.sinks {
		names[i] = s.Name()
	}
	return strings.Join(names, "+")
}

// Create implements Sink
func (m *MultiSink) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	out := &multiWriter{}
	for _, s := range m.sinks {
		w, err := s.Create(ctx, name)
		if err != nil {
			out.Abort()
			return nil, fmt.Errorf("%s: %w", s.Name(), err)
		}
		out.closers = append(out.closers, w)
		out.writers = append(out.writers, w)
	}
	out.Writer = io.MultiWriter(out.writers...)
	return out, nil
}

type multiWriter struct {
	io.Writer
	writers []io.Writer
	closers []io.WriteCloser
}

// Close commits in reverse registration order, so the local directory sink
// listed first commits last. After the first failure the remaining artifacts
// are discarded instead of committed.
func (m *multiWriter) Close() error {
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil {
			errs := []error{err}
			for _, c := range m.closers[:i] {
				if aerr := abort(c); aerr != nil {
					errs = append(errs, aerr)
				}
			}
			return errors.Join(errs...)
		}
	}
	return nil
}

func (m *multiWriter) Abort() error {
	var errs []error
	for _, c := range m.closers {
		if err := abort(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// countingWriter tracks bytes written through it
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
