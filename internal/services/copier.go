package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"syscall"
	"time"

	"github.com/vvka-141/imgpick/internal/checksum"
	"github.com/vvka-141/imgpick/internal/files/filesystem"
	"github.com/vvka-141/imgpick/internal/retry"
	"github.com/vvka-141/imgpick/internal/selection"
	"github.com/vvka-141/imgpick/pkg/imgpick"
)

// CopyOptions selects the optional behaviours of a copy batch.
type CopyOptions struct {
	KeepGoing bool
	DryRun    bool
	Verify    bool

	// Retries is how many times a copy failing with a transient error
	// (busy device, stale handle) is attempted again.
	Retries int
}

// CopyOutcome is the per-batch tally produced by CopyResolver.
type CopyOutcome struct {
	Copied   int
	NotFound []string
	Failed   []imgpick.CopyFailure
}

// CopyResolver looks every name of a filename set up in a source directory
// and copies the ones that exist into a destination directory.
//
// Thread-Safety: safe for concurrent Resolve calls as long as the provider is.
type CopyResolver struct {
	fsys     filesystem.FileSystemProvider
	checksum checksum.Calculator
	observer imgpick.Observer
}

// NewCopyResolver creates a CopyResolver. Panics on nil dependencies.
func NewCopyResolver(fsys filesystem.FileSystemProvider, calc checksum.Calculator, observer imgpick.Observer) *CopyResolver {
	if fsys == nil {
		panic("fsys cannot be nil")
	}
	if calc == nil {
		panic("calc cannot be nil")
	}
	if observer == nil {
		panic("observer cannot be nil")
	}
	return &CopyResolver{fsys: fsys, checksum: calc, observer: observer}
}

// Resolve processes names in sorted order. A missing source file is recorded
// as not found. Any other problem with a file is a *imgpick.CopyFailureError:
// it aborts the batch unless opts.KeepGoing is set, in which case it is
// recorded in CopyOutcome.Failed.
//
// The outcome returned alongside an error holds the files processed before it.
func (r *CopyResolver) Resolve(ctx context.Context, set selection.Set, src, dst filesystem.Directory, opts CopyOptions) (CopyOutcome, error) {
	out := CopyOutcome{NotFound: []string{}}
	names := set.Sorted()
	r.observer.Start(len(names))

	executor := r.executor(opts.Retries)

	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return out, fmt.Errorf("batch interrupted after %d of %d files: %w", i, len(names), err)
		}

		srcPath := src.Join(name)
		dstPath := dst.Join(name)

		found, err := r.copyOne(ctx, executor, name, srcPath, dstPath, opts)
		if err != nil && ctx.Err() != nil {
			return out, fmt.Errorf("batch interrupted at %s after %d of %d files: %w", name, i, len(names), ctx.Err())
		}
		if !found {
			out.NotFound = append(out.NotFound, name)
			r.observer.NotFound(name)
			continue
		}
		if err != nil {
			failure := &imgpick.CopyFailureError{Name: name, Src: srcPath, Dst: dstPath, Err: err}
			r.observer.Failed(name, failure)
			if !opts.KeepGoing {
				return out, failure
			}
			out.Failed = append(out.Failed, imgpick.CopyFailure{Name: name, Err: err.Error()})
			continue
		}

		out.Copied++
		r.observer.Copied(name)
	}

	return out, nil
}

// executor builds the retry policy for one batch.
func (r *CopyResolver) executor(retries int) *retry.Executor {
	if retries < 0 {
		retries = 0
	}
	return retry.NewExecutor(retry.NewFilesystemErrorClassifier(), retry.NewExponentialBackoff(retries))
}

// copyOne reports found=false when no source file by that name can exist.
func (r *CopyResolver) copyOne(ctx context.Context, executor *retry.Executor, name, srcPath, dstPath string, opts CopyOptions) (found bool, err error) {
	info, err := r.fsys.Stat(srcPath)
	if isAbsent(err) {
		return false, nil
	}
	if err != nil {
		return true, err
	}
	if info.IsDir() {
		return true, fmt.Errorf("source is a directory")
	}
	if opts.DryRun {
		return true, nil
	}

	if ro, ok := r.observer.(imgpick.RetryObserver); ok {
		executor = executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			ro.Retrying(name, attempt+1, err, delay)
		})
	}
	err = executor.Execute(ctx, func(context.Context) error {
		return r.fsys.CopyFile(srcPath, dstPath)
	})
	if err != nil {
		return true, err
	}
	if opts.Verify {
		return true, r.verify(srcPath, dstPath)
	}
	return true, nil
}

// isAbsent reports stat errors that mean the name does not exist or could
// never name a file: too long, a NUL byte, or a path component that is not
// a directory.
func isAbsent(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.ENAMETOOLONG) ||
		errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, syscall.ENOTDIR)
}

func (r *CopyResolver) verify(srcPath, dstPath string) error {
	a, err := r.fsys.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	b, err := r.fsys.ReadFile(dstPath)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if sumA, sumB, ok := checksum.Match(r.checksum, a, b); !ok {
		return fmt.Errorf("checksum mismatch: source %s, destination %s", sumA, sumB)
	}
	return nil
}
