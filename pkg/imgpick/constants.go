package imgpick

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess        = 0  // Batch completed (not-found entries are not a failure)
	ExitGeneralError   = 1  // Unknown or unclassified error
	ExitUsageError     = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic          = 3  // Internal panic (unexpected crash)
	ExitInputMissing   = 10 // A required input was empty or invalid
	ExitTableRead      = 11 // Table file missing or not UTF-8
	ExitColumnNotFound = 12 // Requested column absent from header
	ExitMalformedTable = 13 // Table could not be tokenized
	ExitCopyFailure    = 14 // A file copy failed
)

const (
	// DefaultTimeout bounds a whole batch. It only protects against hung
	// filesystems (network mounts); local batches finish long before it.
	DefaultTimeout = 30 * time.Minute

	// ConfigFileName is the optional project configuration file looked up in
	// the working directory.
	ConfigFileName = "imgpick.yaml"

	// MaxHeaderPreview is the number of headers listed in a column-not-found
	// message before the list is truncated.
	MaxHeaderPreview = 20
)
