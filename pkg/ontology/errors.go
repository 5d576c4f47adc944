package ontology

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	ErrCyclicGraph  = errors.New("ontology graph contains a cycle")
	ErrInvalidOrder = errors.New("order is not a topological order of the graph")
	ErrEmptyTermID  = errors.New("term has an empty id")
)

// OntologyError reports an invalid ontology structure. A run that hits one
// cannot produce meaningful output.
type OntologyError struct {
	Op     string   // Operation that failed (e.g. "Build", "ValidateOrder")
	TermID string   // Offending term, if any
	Cycle  []string // Term IDs along one detected cycle
	Cause  error
}

// Error implements the error interface.
func (e *OntologyError) Error() string {
	if len(e.Cycle) > 0 {
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Cause, strings.Join(e.Cycle, " -> "))
	}
	if e.TermID != "" {
		return fmt.Sprintf("%s term %s: %v", e.Op, e.TermID, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *OntologyError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *OntologyError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building OntologyErrors.
type ErrorBuilder struct {
	err OntologyError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: OntologyError{Op: op}}
}

// Term sets the offending term ID.
func (b *ErrorBuilder) Term(id string) *ErrorBuilder {
	b.err.TermID = id
	return b
}

// Cycle records the terms along a detected cycle.
func (b *ErrorBuilder) Cycle(ids []string) *ErrorBuilder {
	b.err.Cycle = ids
	return b
}

// Cause sets the underlying error.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Build returns the constructed error.
func (b *ErrorBuilder) Build() *OntologyError {
	e := b.err
	return &e
}

// IsOntologyError reports whether err carries an OntologyError.
func IsOntologyError(err error) bool {
	var oe *OntologyError
	return errors.As(err, &oe)
}
