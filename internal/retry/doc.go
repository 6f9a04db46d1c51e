// Package retry re-runs an operation that failed with a transient error,
// waiting an exponentially growing delay between attempts.
//
// It is used for file copies on slow or flaky storage (network shares,
// removable drives), where EBUSY, EAGAIN or a stale handle usually clears
// up after a moment:
//
//	executor := retry.NewExecutor(retry.NewFilesystemErrorClassifier(), retry.NewExponentialBackoff(3))
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return fsys.CopyFile(src, dst)
//	})
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. WithOnRetry returns a new
// instance instead of modifying the receiver.
package retry
