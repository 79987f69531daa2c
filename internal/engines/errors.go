package engines

import (
	"errors"
	"fmt"
)

// Kind classifies load and aggregation failures into the small closed set
// the top-level loader dispatches on. Only KindFatalConfig terminates the
// process: it marks a broken deployment, not a data problem.
type Kind int

const (
	// KindFatalConfig marks deployment defects: an unregistered module or an
	// ambiguous engine name/shortcut.
	KindFatalConfig Kind = iota + 1

	// KindRejected marks a single malformed engine; it is logged and skipped.
	KindRejected

	// KindFetchFailed marks a failed capability fetch; the engine simply
	// contributes nothing to coverage for this run.
	KindFetchFailed
)

func (k Kind) String() string {
	switch k {
	case KindFatalConfig:
		return "fatal config error"
	case KindRejected:
		return "engine rejected"
	case KindFetchFailed:
		return "fetch failed"
	default:
		return "unknown"
	}
}

// LoadError is an engine-scoped failure with a Kind.
type LoadError struct {
	Kind   Kind
	Engine string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Engine == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("engine '%s': %s: %v", e.Engine, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsFatal reports whether err carries KindFatalConfig.
func IsFatal(err error) bool {
	var le *LoadError
	return errors.As(err, &le) && le.Kind == KindFatalConfig
}

func fatalErr(engine, format string, args ...any) *LoadError {
	return &LoadError{Kind: KindFatalConfig, Engine: engine, Err: fmt.Errorf(format, args...)}
}

func rejectErr(engine, format string, args ...any) *LoadError {
	return &LoadError{Kind: KindRejected, Engine: engine, Err: fmt.Errorf(format, args...)}
}
