package imgpick

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure kinds a batch can end with.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	result, err := resolver.ResolveAndCopy(ctx, req)
//	if errors.Is(err, imgpick.ErrColumnNotFound) {
//	    // ask the user for another column
//	}
var (
	// ErrInputMissing indicates one of the required inputs was empty or unusable.
	ErrInputMissing = errors.New("input missing")

	// ErrTableRead indicates the table file does not exist or is not UTF-8 text.
	ErrTableRead = errors.New("table read failed")

	// ErrColumnNotFound indicates the requested column has no case-insensitive
	// match in the header row.
	ErrColumnNotFound = errors.New("column not found")

	// ErrMalformedTable indicates the table could not be split into rows and cells.
	ErrMalformedTable = errors.New("malformed table")

	// ErrCopyFailure indicates an individual file copy raised an I/O error.
	ErrCopyFailure = errors.New("copy failed")
)

// ColumnNotFoundError reports a requested column together with the headers
// that were available.
type ColumnNotFoundError struct {
	Requested string
	Headers   []string
}

func (e *ColumnNotFoundError) Error() string {
	headers := e.Headers
	suffix := ""
	if len(headers) > MaxHeaderPreview {
		headers = headers[:MaxHeaderPreview]
		suffix = ", ..."
	}
	quoted := make([]string, len(headers))
	for i, h := range headers {
		quoted[i] = fmt.Sprintf("%q", h)
	}
	return fmt.Sprintf("column %q not found in table (available: %s%s)",
		e.Requested, strings.Join(quoted, ", "), suffix)
}

func (e *ColumnNotFoundError) Unwrap() error { return ErrColumnNotFound }

// MalformedTableError reports a row that could not be tokenized.
type MalformedTableError struct {
	Line int // 1-based line number, 0 if unknown
	Err  error
}

func (e *MalformedTableError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed table at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("malformed table: %v", e.Err)
}

// Unwrap exposes both the sentinel and the underlying tokenizer error.
func (e *MalformedTableError) Unwrap() []error { return []error{ErrMalformedTable, e.Err} }

// CopyFailureError reports the file whose copy failed.
type CopyFailureError struct {
	Name string // basename from the filename set
	Src  string
	Dst  string
	Err  error
}

func (e *CopyFailureError) Error() string {
	return fmt.Sprintf("failed to copy %s to %s: %v", e.Src, e.Dst, e.Err)
}

func (e *CopyFailureError) Unwrap() []error { return []error{ErrCopyFailure, e.Err} }

// usageErrorPatterns are fragments of the messages cobra and pflag produce
// for command-line misuse.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInputMissing):
		return ExitInputMissing
	case errors.Is(err, ErrTableRead):
		return ExitTableRead
	case errors.Is(err, ErrColumnNotFound):
		return ExitColumnNotFound
	case errors.Is(err, ErrMalformedTable):
		return ExitMalformedTable
	case errors.Is(err, ErrCopyFailure):
		return ExitCopyFailure
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
