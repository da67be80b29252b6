package render

import (
	"errors"
	"fmt"
)

// UnsupportedError reports an IR node this backend has no mapping for.
// It only surfaces when the builder's append-time validation was
// bypassed or the backend is genuinely incomplete for that node.
type UnsupportedError struct {
	// Kind describes the unmapped node ("clause ir.Distinct",
	// "operator pow", ...).
	Kind string
}

// Error implements the error interface.
func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("BACKEND_UNSUPPORTED: no text mapping for %s", e.Kind)
}

// IsUnsupported reports whether err is an UnsupportedError.
// Uses errors.As to handle wrapped errors.
func IsUnsupported(err error) bool {
	var ue *UnsupportedError
	return errors.As(err, &ue)
}

func unsupported(format string, args ...any) *UnsupportedError {
	return &UnsupportedError{Kind: fmt.Sprintf(format, args...)}
}
