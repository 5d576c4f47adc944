package source

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// maxLineSize bounds a single tab-separated line; gene_info rows with long
// synonym lists exceed bufio's 64KiB default.
const maxLineSize = 16 << 20

// Open opens path for reading, decompressing transparently when the name
// ends in .gz.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}

	zr, err := gzip.NewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzipFile{Reader: zr, file: f}, nil
}

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	zerr := g.Reader.Close()
	if err := g.file.Close(); err != nil {
		return err
	}
	return zerr
}

// scanTSV calls fn for every non-comment, non-blank line of r with the
// tab-split fields and the 1-based line number.
func scanTSV(r io.Reader, fn func(line int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" || text[0] == '#' {
			continue
		}
		if err := fn(line, strings.Split(text, "\t")); err != nil {
			return &lineError{line: line, err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return &lineError{line: line + 1, err: err}
	}
	return nil
}

type lineError struct {
	line int
	err  error
}

func (e *lineError) Error() string { return e.err.Error() }
func (e *lineError) Unwrap() error { return e.err }

// na maps the NCBI missing-value marker to an empty string
func na(field string) string {
	if field == "-" {
		return ""
	}
	return field
}
