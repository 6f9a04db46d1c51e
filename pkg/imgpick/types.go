package imgpick

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Request carries the four inputs of a batch plus the optional behaviour switches.
type Request struct {
	// TablePath is the delimited text file holding the filename column.
	TablePath string

	// SourceDir is the flat folder the files are looked up in.
	SourceDir string

	// DestinationDir receives the copies. Existing files are overwritten.
	DestinationDir string

	// Column is the requested column name, matched case-insensitively after trimming.
	Column string

	// Delimiter forces a delimiter. Zero means auto-detect from the header line.
	Delimiter rune

	// KeepGoing records per-file copy failures in Result.Failed instead of
	// aborting the batch on the first one.
	KeepGoing bool

	// DryRun checks existence only; nothing is written.
	DryRun bool

	// Verify compares SHA-256 of source and destination after every copy.
	Verify bool

	// StrictQuotes rejects bare quotes inside unquoted cells instead of
	// keeping them as literal text.
	StrictQuotes bool

	// Retries is how many extra attempts a copy gets when it fails with a
	// transient I/O error. Zero disables retrying.
	Retries int
}

// Validate checks that every required input is set.
// It returns a joined error listing every missing input.
func (r *Request) Validate() error {
	var errs []error

	if strings.TrimSpace(r.TablePath) == "" {
		errs = append(errs, fmt.Errorf("table file is required: %w", ErrInputMissing))
	}
	if strings.TrimSpace(r.SourceDir) == "" {
		errs = append(errs, fmt.Errorf("source folder is required: %w", ErrInputMissing))
	}
	if strings.TrimSpace(r.DestinationDir) == "" {
		errs = append(errs, fmt.Errorf("destination folder is required: %w", ErrInputMissing))
	}
	if strings.TrimSpace(r.Column) == "" {
		errs = append(errs, fmt.Errorf("column name is required: %w", ErrInputMissing))
	}

	return errors.Join(errs...)
}

// CopyFailure is a per-file failure recorded in best-effort (KeepGoing) mode.
type CopyFailure struct {
	Name string `json:"name" yaml:"name"`
	Err  string `json:"error" yaml:"error"`
}

// Result is the outcome of one batch.
//
// Every filename of the extracted set lands in exactly one bucket:
// Copied + len(NotFound) + len(Failed) == Total.
type Result struct {
	RunID     uuid.UUID `json:"run_id" yaml:"run_id"`
	Column    string    `json:"column" yaml:"column"`
	Delimiter string    `json:"delimiter" yaml:"delimiter"`
	DryRun    bool      `json:"dry_run" yaml:"dry_run"`

	// Extraction statistics, for diagnostics only.
	Rows       int `json:"rows" yaml:"rows"`
	EmptyCells int `json:"empty_cells" yaml:"empty_cells"`
	Duplicates int `json:"duplicates" yaml:"duplicates"`

	Total    int           `json:"total" yaml:"total"`
	Copied   int           `json:"copied" yaml:"copied"`
	NotFound []string      `json:"not_found" yaml:"not_found"`
	Failed   []CopyFailure `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// NewResult returns an empty Result with a fresh run id and non-nil lists.
func NewResult() Result {
	return Result{
		RunID:    uuid.New(),
		NotFound: []string{},
	}
}

// Balanced reports whether the partition invariant holds.
func (r Result) Balanced() bool {
	return r.Copied+len(r.NotFound)+len(r.Failed) == r.Total
}

// DelimiterName returns the human name of a delimiter rune.
func DelimiterName(d rune) string {
	switch d {
	case '\t':
		return "tab"
	case ';':
		return "semicolon"
	case ',':
		return "comma"
	case 0:
		return "auto"
	default:
		return fmt.Sprintf("%q", d)
	}
}
