// Command goannotate propagates Gene Ontology annotations along the term
// hierarchy and writes direct and inferred gene sets per term.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/cluso-goannotate/pkg/ontology"
	"github.com/dd0wney/cluso-goannotate/pkg/source"
)

const (
	Version = "0.1.0"
	appName = "goannotate"
)

// Exit codes
const (
	exitOK       = 0
	exitFailure  = 1
	exitOntology = 2
	exitInput    = 3
	exitConfig   = 4
)

// configError marks a configuration problem detected before any work starts
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func execute(ctx context.Context, args []string) int {
	cmd := rootCmd()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	code, summary := classify(err)
	fmt.Fprintf(os.Stderr, "%s: %s: %v\n", appName, summary, err)
	return code
}

// classify maps an error to its exit code and a short summary
func classify(err error) (int, string) {
	var cfgErr *configError
	switch {
	case errors.As(err, &cfgErr):
		return exitConfig, "invalid configuration"
	case ontology.IsOntologyError(err):
		return exitOntology, "invalid ontology structure"
	case source.IsInputError(err):
		return exitInput, "unreadable input source"
	default:
		return exitFailure, "run failed"
	}
}
