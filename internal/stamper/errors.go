package stamper

import (
	"errors"
	"fmt"
)

// Kind classifies stamping failures so callers can map them to exit codes
// or HTTP statuses.
type Kind string

const (
	KindInput           Kind = "input"
	KindMissingResource Kind = "missing_resource"
	KindFont            Kind = "font"
	KindIO              Kind = "io"
)

// Error wraps an underlying error with the operation, its kind and the
// offending value, if any.
type Error struct {
	Op    string
	Kind  Kind
	Value string
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Value != "" {
		base += fmt.Sprintf(" (%q)", e.Value)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether any error in err's chain is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}
