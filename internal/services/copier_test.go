package services

import (
	"context"
	"errors"
	"io/fs"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/imgpick/internal/checksum"
	"github.com/vvka-141/imgpick/internal/files/filesystem"
	"github.com/vvka-141/imgpick/internal/selection"
	"github.com/vvka-141/imgpick/pkg/imgpick"
)

// recordingObserver captures events in order.
type recordingObserver struct {
	total  int
	events []string
}

func (o *recordingObserver) Start(total int)             { o.total = total }
func (o *recordingObserver) Copied(name string)          { o.events = append(o.events, "copied:"+name) }
func (o *recordingObserver) NotFound(name string)        { o.events = append(o.events, "missing:"+name) }
func (o *recordingObserver) Failed(name string, _ error) { o.events = append(o.events, "failed:"+name) }

// retryingObserver also records retries.
type retryingObserver struct {
	recordingObserver
	retries []string
}

func (o *retryingObserver) Retrying(name string, attempt int, _ error, _ time.Duration) {
	o.retries = append(o.retries, name)
}

// badChecksum returns a different digest on every call.
type badChecksum struct{ n int }

func (c *badChecksum) CalculateRaw([]byte) string {
	c.n++
	return string(rune('a' + c.n))
}

func newCopyFixture(t *testing.T) (*filesystem.MemoryFileSystem, filesystem.Directory, filesystem.Directory) {
	t.Helper()
	mfs := filesystem.NewMemoryFileSystem("/work")
	mfs.AddDir("src")
	mfs.AddDir("dst")
	src, err := mfs.Open("src")
	require.NoError(t, err)
	dst, err := mfs.Open("dst")
	require.NoError(t, err)
	return mfs, src, dst
}

func TestNewCopyResolver_PanicsOnNilDependencies(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/work")

	assert.Panics(t, func() { NewCopyResolver(nil, checksum.New(), imgpick.NopObserver{}) })
	assert.Panics(t, func() { NewCopyResolver(mfs, nil, imgpick.NopObserver{}) })
	assert.Panics(t, func() { NewCopyResolver(mfs, checksum.New(), nil) })
}

func TestCopyResolver_PartitionsNames(t *testing.T) {
	mfs, src, dst := newCopyFixture(t)
	mfs.AddFile("src/a.jpg", "A")
	mfs.AddFile("src/c.jpg", "C")
	obs := &recordingObserver{}

	out, err := NewCopyResolver(mfs, checksum.New(), obs).
		Resolve(context.Background(), selection.NewSet("c.jpg", "b.jpg", "a.jpg"), src, dst, CopyOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Copied)
	assert.Equal(t, []string{"b.jpg"}, out.NotFound)
	assert.Empty(t, out.Failed)
	assert.Equal(t, 3, obs.total)
	assert.Equal(t, []string{"copied:a.jpg", "missing:b.jpg", "copied:c.jpg"}, obs.events)

	got, err := mfs.ReadFile("dst/c.jpg")
	require.NoError(t, err)
	assert.Equal(t, "C", string(got))
}

func TestCopyResolver_EmptySet(t *testing.T) {
	mfs, src, dst := newCopyFixture(t)

	out, err := NewCopyResolver(mfs, checksum.New(), imgpick.NopObserver{}).
		Resolve(context.Background(), selection.NewSet(), src, dst, CopyOptions{})
	require.NoError(t, err)

	assert.Zero(t, out.Copied)
	assert.NotNil(t, out.NotFound)
	assert.Empty(t, out.NotFound)
}

func TestCopyResolver_OverwritesExistingDestination(t *testing.T) {
	mfs, src, dst := newCopyFixture(t)
	mfs.AddFile("src/a.jpg", "new")
	mfs.AddFile("dst/a.jpg", "old")

	out, err := NewCopyResolver(mfs, checksum.New(), imgpick.NopObserver{}).
		Resolve(context.Background(), selection.NewSet("a.jpg"), src, dst, CopyOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Copied)

	got, _ := mfs.ReadFile("dst/a.jpg")
	assert.Equal(t, "new", string(got))
}

func TestCopyResolver_SourceDirectoryIsFailure(t *testing.T) {
	mfs, src, dst := newCopyFixture(t)
	mfs.AddDir("src/album.jpg")

	_, err := NewCopyResolver(mfs, checksum.New(), imgpick.NopObserver{}).
		Resolve(context.Background(), selection.NewSet("album.jpg"), src, dst, CopyOptions{})
	require.Error(t, err)

	var cfe *imgpick.CopyFailureError
	require.True(t, errors.As(err, &cfe))
	assert.Equal(t, "album.jpg", cfe.Name)
	assert.True(t, errors.Is(err, imgpick.ErrCopyFailure))
}

func TestCopyResolver_FailFastStopsBatch(t *testing.T) {
	mfs, src, dst := newCopyFixture(t)
	mfs.AddFile("src/a.jpg", "A")
	mfs.AddFile("src/b.jpg", "B")
	mfs.AddFile("src/c.jpg", "C")
	mfs.FailCopyTo("b.jpg", errors.New("disk full"))
	obs := &recordingObserver{}

	out, err := NewCopyResolver(mfs, checksum.New(), obs).
		Resolve(context.Background(), selection.NewSet("a.jpg", "b.jpg", "c.jpg"), src, dst, CopyOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, imgpick.ErrCopyFailure))
	assert.Contains(t, err.Error(), "disk full")

	assert.Equal(t, 1, out.Copied)
	assert.Empty(t, out.Failed)
	assert.Equal(t, []string{"copied:a.jpg", "failed:b.jpg"}, obs.events)

	_, statErr := mfs.Stat("dst/c.jpg")
	assert.Error(t, statErr, "files after the failure are not processed")
}

func TestCopyResolver_KeepGoingCollectsFailures(t *testing.T) {
	mfs, src, dst := newCopyFixture(t)
	mfs.AddFile("src/a.jpg", "A")
	mfs.AddFile("src/b.jpg", "B")
	mfs.AddFile("src/c.jpg", "C")
	mfs.FailCopyTo("b.jpg", errors.New("disk full"))

	set := selection.NewSet("a.jpg", "b.jpg", "c.jpg", "d.jpg")
	out, err := NewCopyResolver(mfs, checksum.New(), imgpick.NopObserver{}).
		Resolve(context.Background(), set, src, dst, CopyOptions{KeepGoing: true})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Copied)
	assert.Equal(t, []string{"d.jpg"}, out.NotFound)
	require.Len(t, out.Failed, 1)
	assert.Equal(t, "b.jpg", out.Failed[0].Name)
	assert.Equal(t, "disk full", out.Failed[0].Err)
	assert.Equal(t, set.Len(), out.Copied+len(out.NotFound)+len(out.Failed))
}

func TestCopyResolver_DryRunWritesNothing(t *testing.T) {
	mfs, src, dst := newCopyFixture(t)
	mfs.AddFile("src/a.jpg", "A")

	out, err := NewCopyResolver(mfs, checksum.New(), imgpick.NopObserver{}).
		Resolve(context.Background(), selection.NewSet("a.jpg", "b.jpg"), src, dst, CopyOptions{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Copied)
	assert.Equal(t, []string{"b.jpg"}, out.NotFound)
	assert.Zero(t, mfs.CopyCount())
}

func TestCopyResolver_Verify(t *testing.T) {
	t.Run("matching content passes", func(t *testing.T) {
		mfs, src, dst := newCopyFixture(t)
		mfs.AddFile("src/a.jpg", "A")

		out, err := NewCopyResolver(mfs, checksum.New(), imgpick.NopObserver{}).
			Resolve(context.Background(), selection.NewSet("a.jpg"), src, dst, CopyOptions{Verify: true})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Copied)
	})

	t.Run("mismatch is a copy failure", func(t *testing.T) {
		mfs, src, dst := newCopyFixture(t)
		mfs.AddFile("src/a.jpg", "A")

		_, err := NewCopyResolver(mfs, &badChecksum{}, imgpick.NopObserver{}).
			Resolve(context.Background(), selection.NewSet("a.jpg"), src, dst, CopyOptions{Verify: true})
		require.Error(t, err)
		assert.True(t, errors.Is(err, imgpick.ErrCopyFailure))
		assert.Contains(t, err.Error(), "checksum mismatch")
	})
}

func TestCopyResolver_CancelledContext(t *testing.T) {
	mfs, src, dst := newCopyFixture(t)
	mfs.AddFile("src/a.jpg", "A")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := NewCopyResolver(mfs, checksum.New(), imgpick.NopObserver{}).
		Resolve(ctx, selection.NewSet("a.jpg"), src, dst, CopyOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, out.Copied)
	assert.Zero(t, mfs.CopyCount())
}

func TestCopyResolver_RetriesTransientFailures(t *testing.T) {
	mfs, src, dst := newCopyFixture(t)
	mfs.AddFile("src/a.jpg", "A")
	mfs.FailCopyToTimes("a.jpg", syscall.EBUSY, 1)
	obs := &retryingObserver{}

	out, err := NewCopyResolver(mfs, checksum.New(), obs).
		Resolve(context.Background(), selection.NewSet("a.jpg"), src, dst, CopyOptions{Retries: 2})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Copied)
	assert.Equal(t, []string{"a.jpg"}, obs.retries)
	assert.Equal(t, []string{"copied:a.jpg"}, obs.events)
}

func TestCopyResolver_NoRetriesByDefault(t *testing.T) {
	mfs, src, dst := newCopyFixture(t)
	mfs.AddFile("src/a.jpg", "A")
	mfs.FailCopyToTimes("a.jpg", syscall.EBUSY, 1)

	_, err := NewCopyResolver(mfs, checksum.New(), imgpick.NopObserver{}).
		Resolve(context.Background(), selection.NewSet("a.jpg"), src, dst, CopyOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, syscall.EBUSY))
}

// statErrorFS fails Stat for one path with a fixed error.
type statErrorFS struct {
	*filesystem.MemoryFileSystem
	path string
	err  error
}

func (f *statErrorFS) Stat(path string) (filesystem.FileInfo, error) {
	if path == f.path {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: f.err}
	}
	return f.MemoryFileSystem.Stat(path)
}

func TestCopyResolver_ImpossibleNamesAreNotFound(t *testing.T) {
	for _, errno := range []syscall.Errno{syscall.ENAMETOOLONG, syscall.EINVAL, syscall.ENOTDIR} {
		t.Run(errno.Error(), func(t *testing.T) {
			mfs, src, dst := newCopyFixture(t)
			mfs.AddFile("src/a.jpg", "A")
			fsys := &statErrorFS{MemoryFileSystem: mfs, path: src.Join("bad.jpg"), err: errno}

			out, err := NewCopyResolver(fsys, checksum.New(), imgpick.NopObserver{}).
				Resolve(context.Background(), selection.NewSet("a.jpg", "bad.jpg"), src, dst, CopyOptions{})
			require.NoError(t, err)
			assert.Equal(t, 1, out.Copied)
			assert.Equal(t, []string{"bad.jpg"}, out.NotFound)
		})
	}
}

func TestCopyResolver_StatIOErrorIsFailure(t *testing.T) {
	mfs, src, dst := newCopyFixture(t)
	mfs.AddFile("src/a.jpg", "A")
	fsys := &statErrorFS{MemoryFileSystem: mfs, path: src.Join("a.jpg"), err: syscall.EIO}

	_, err := NewCopyResolver(fsys, checksum.New(), imgpick.NopObserver{}).
		Resolve(context.Background(), selection.NewSet("a.jpg"), src, dst, CopyOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, imgpick.ErrCopyFailure))
	assert.True(t, errors.Is(err, syscall.EIO))
}

// cancellingObserver cancels the batch on the first retry.
type cancellingObserver struct {
	recordingObserver
	cancel context.CancelFunc
}

func (o *cancellingObserver) Retrying(string, int, error, time.Duration) { o.cancel() }

func TestCopyResolver_CancelDuringRetryIsNotCopyFailure(t *testing.T) {
	mfs, src, dst := newCopyFixture(t)
	mfs.AddFile("src/a.jpg", "A")
	mfs.FailCopyTo("a.jpg", syscall.EBUSY)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	obs := &cancellingObserver{cancel: cancel}

	_, err := NewCopyResolver(mfs, checksum.New(), obs).
		Resolve(ctx, selection.NewSet("a.jpg"), src, dst, CopyOptions{Retries: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, imgpick.ErrCopyFailure))
	assert.Equal(t, imgpick.ExitGeneralError, imgpick.ExitCodeForError(err))
	assert.Empty(t, obs.events, "an interrupt is not reported as a failed file")
}
