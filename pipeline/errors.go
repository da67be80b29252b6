package pipeline

import (
	"errors"
	"fmt"
)

// BuildErrorCode categorizes append-time validation failures.
type BuildErrorCode string

const (
	// ErrCodeUnknownColumn indicates a clause referenced a name absent
	// from the current schema snapshot.
	ErrCodeUnknownColumn BuildErrorCode = "UNKNOWN_COLUMN"

	// ErrCodeTypeMismatch indicates an operator or function was applied
	// to operand types outside its legality rules.
	ErrCodeTypeMismatch BuildErrorCode = "TYPE_MISMATCH"

	// ErrCodeDuplicateAlias indicates a new or renamed column collides
	// with an existing schema column.
	ErrCodeDuplicateAlias BuildErrorCode = "DUPLICATE_ALIAS"

	// ErrCodeInvalidAggregate indicates a groupBy selection or having
	// referenced a column that is neither a grouping key nor an
	// aggregate.
	ErrCodeInvalidAggregate BuildErrorCode = "INVALID_AGGREGATE_REF"

	// ErrCodeConfig indicates an out-of-domain scalar, such as a
	// negative limit or offset.
	ErrCodeConfig BuildErrorCode = "CONFIG"
)

// BuildError is a validation failure detected while appending a clause.
// The failed append stores nothing; the pipeline remains usable.
type BuildError struct {
	// Code identifies the error category.
	Code BuildErrorCode

	// Clause names the clause kind being appended ("select", "filter", ...).
	Clause string

	// Name is the offending column or alias name, when one exists.
	Name string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (clause=%s, name=%s)", e.Code, e.Message, e.Clause, e.Name)
	}
	return fmt.Sprintf("%s: %s (clause=%s)", e.Code, e.Message, e.Clause)
}

// IsUnknownColumn reports whether err is an UNKNOWN_COLUMN build error.
// Uses errors.As to handle wrapped errors.
func IsUnknownColumn(err error) bool { return hasCode(err, ErrCodeUnknownColumn) }

// IsTypeMismatch reports whether err is a TYPE_MISMATCH build error.
func IsTypeMismatch(err error) bool { return hasCode(err, ErrCodeTypeMismatch) }

// IsDuplicateAlias reports whether err is a DUPLICATE_ALIAS build error.
func IsDuplicateAlias(err error) bool { return hasCode(err, ErrCodeDuplicateAlias) }

// IsInvalidAggregate reports whether err is an INVALID_AGGREGATE_REF
// build error.
func IsInvalidAggregate(err error) bool { return hasCode(err, ErrCodeInvalidAggregate) }

// IsConfig reports whether err is a CONFIG build error.
func IsConfig(err error) bool { return hasCode(err, ErrCodeConfig) }

func hasCode(err error, code BuildErrorCode) bool {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func unknownColumn(clause, name string) *BuildError {
	return &BuildError{
		Code:    ErrCodeUnknownColumn,
		Clause:  clause,
		Name:    name,
		Message: "no such column in current schema",
	}
}

func typeMismatch(clause, format string, args ...any) *BuildError {
	return &BuildError{
		Code:    ErrCodeTypeMismatch,
		Clause:  clause,
		Message: fmt.Sprintf(format, args...),
	}
}

func duplicateAlias(clause, name string) *BuildError {
	return &BuildError{
		Code:    ErrCodeDuplicateAlias,
		Clause:  clause,
		Name:    name,
		Message: "name collides with an existing column",
	}
}

func invalidAggregate(clause, name, format string, args ...any) *BuildError {
	return &BuildError{
		Code:    ErrCodeInvalidAggregate,
		Clause:  clause,
		Name:    name,
		Message: fmt.Sprintf(format, args...),
	}
}

func configError(clause, format string, args ...any) *BuildError {
	return &BuildError{
		Code:    ErrCodeConfig,
		Clause:  clause,
		Message: fmt.Sprintf(format, args...),
	}
}
