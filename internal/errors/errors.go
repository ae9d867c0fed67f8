package errors

import (
	"errors"
	"fmt"
)

// ErrEmptyBatch is returned when no valid entries survive validation, so
// there is nothing to render.
var ErrEmptyBatch = errors.New("no valid entries in batch")

// ValidationError reports a request that fails shape validation before the
// pipeline runs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Message)
}

// RowWidthError reports a pasted row too narrow to satisfy the master
// schedule column contract.
type RowWidthError struct {
	Row      int
	Width    int
	Required int
}

func (e *RowWidthError) Error() string {
	return fmt.Sprintf("row %d: %d columns, master schedule layout requires %d", e.Row, e.Width, e.Required)
}

// DateParseError reports a booked-access expression or date token that does
// not match the documented date grammar. Input carries the offending text.
type DateParseError struct {
	Input  string
	Reason string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("cannot parse date %q: %s", e.Input, e.Reason)
}

// RowValidationError reports a field coercion failure on one pasted row.
// Validation of one row never halts the rest of the batch; these accumulate.
type RowValidationError struct {
	Row   int
	Field string
	Cause error
}

func (e *RowValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("row %d: invalid %s: %v", e.Row, e.Field, e.Cause)
	}
	return fmt.Sprintf("row %d: invalid %s", e.Row, e.Field)
}

func (e *RowValidationError) Unwrap() error { return e.Cause }

// UnknownTeamError reports a generate call naming a team the directory does
// not know.
type UnknownTeamError struct {
	Name string
}

func (e *UnknownTeamError) Error() string {
	return fmt.Sprintf("unknown team %q", e.Name)
}

// DirectoryWriteError reports a failed best-effort side write of a rendered
// document. It downgrades to a warning and never fails a generate call.
type DirectoryWriteError struct {
	Path  string
	Cause error
}

func (e *DirectoryWriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Cause)
}

func (e *DirectoryWriteError) Unwrap() error { return e.Cause }
