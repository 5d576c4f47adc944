package source

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrMalformed = errors.New("malformed record")
)

// InputError reports an unreadable or malformed upstream source. Any
// InputError aborts the run before computation starts.
type InputError struct {
	Source string // "ontology", "gene2go", "gene_info"
	Path   string
	Line   int
	Cause  error
}

// Error implements the error interface.
func (e *InputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s %s line %d: %v", e.Source, e.Path, e.Line, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Source, e.Path, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *InputError) Unwrap() error {
	return e.Cause
}

// IsInputError reports whether err carries an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

func inputErr(source, path string, line int, cause error) *InputError {
	return &InputError{Source: source, Path: path, Line: line, Cause: cause}
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}
