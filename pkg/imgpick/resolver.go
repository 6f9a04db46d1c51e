package imgpick

import "context"

// Resolver is the single entry point the presentation layer drives.
// Implementations read the table, extract the filename set and reconcile it
// against the source directory, copying what exists into the destination.
type Resolver interface {
	// ResolveAndCopy runs the whole batch for one request.
	// Any precondition violation or fatal copy error is returned as a single
	// error; the Result is only meaningful when the error is nil.
	ResolveAndCopy(ctx context.Context, req Request) (Result, error)
}
