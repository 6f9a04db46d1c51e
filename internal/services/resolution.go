package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vvka-141/imgpick/internal/checksum"
	"github.com/vvka-141/imgpick/internal/files/filesystem"
	"github.com/vvka-141/imgpick/internal/selection"
	"github.com/vvka-141/imgpick/internal/table"
	"github.com/vvka-141/imgpick/pkg/imgpick"
)

// ResolutionService implements imgpick.Resolver: it reads the table, resolves
// the column, extracts the filename set and copies what exists.
//
// Thread-Safety: each ResolveAndCopy call is independent. Concurrent calls are
// safe when the provider and observer are.
type ResolutionService struct {
	fsys   filesystem.FileSystemProvider
	copier *CopyResolver
}

// NewResolutionService creates a ResolutionService with all dependencies injected.
//
// Panics on nil dependencies; runtime conditions (missing folders, unreadable
// tables, copy failures) are returned as errors.
func NewResolutionService(fsys filesystem.FileSystemProvider, calc checksum.Calculator, observer imgpick.Observer) *ResolutionService {
	if fsys == nil {
		panic("fsys cannot be nil")
	}
	return &ResolutionService{
		fsys:   fsys,
		copier: NewCopyResolver(fsys, calc, observer),
	}
}

// ResolveAndCopy runs one batch described by req.
//
// On a fatal error the returned Result still carries whatever was known at
// that point (column, delimiter, counts of files processed so far).
func (s *ResolutionService) ResolveAndCopy(ctx context.Context, req imgpick.Request) (imgpick.Result, error) {
	result := imgpick.NewResult()
	result.DryRun = req.DryRun

	if err := req.Validate(); err != nil {
		return result, err
	}

	src, dst, err := s.openFolders(req.SourceDir, req.DestinationDir)
	if err != nil {
		return result, err
	}

	tbl, err := s.openTable(req)
	if err != nil {
		return result, err
	}
	result.Delimiter = imgpick.DelimiterName(tbl.Delimiter())

	column, err := tbl.Column(req.Column)
	if err != nil {
		return result, err
	}
	result.Column = column.Name

	set, stats, err := selection.Extract(tbl, column)
	result.Rows = stats.Rows
	result.EmptyCells = stats.Empty + stats.Unusable
	result.Duplicates = stats.Duplicates
	if err != nil {
		return result, err
	}
	result.Total = set.Len()

	outcome, err := s.copier.Resolve(ctx, set, src, dst, CopyOptions{
		KeepGoing: req.KeepGoing,
		DryRun:    req.DryRun,
		Verify:    req.Verify,
		Retries:   req.Retries,
	})
	result.Copied = outcome.Copied
	result.NotFound = outcome.NotFound
	result.Failed = outcome.Failed
	return result, err
}

// Inspect reads the table at path and summarizes its layout without copying
// anything. When column is non-empty it is resolved and its filename set is
// measured as well.
func (s *ResolutionService) Inspect(path, column string, opts table.Options) (TableSummary, error) {
	tbl, err := s.readTable(path, opts)
	if err != nil {
		return TableSummary{}, err
	}
	return summarize(tbl, column)
}

func (s *ResolutionService) openFolders(source, destination string) (filesystem.Directory, filesystem.Directory, error) {
	src, err := s.fsys.Open(source)
	if err != nil {
		return nil, nil, fmt.Errorf("source folder %s: %w: %w", source, imgpick.ErrInputMissing, err)
	}
	dst, err := s.fsys.Open(destination)
	if err != nil {
		return nil, nil, fmt.Errorf("destination folder %s: %w: %w", destination, imgpick.ErrInputMissing, err)
	}
	if filepath.Clean(src.Path()) == filepath.Clean(dst.Path()) {
		return nil, nil, fmt.Errorf("source and destination are the same folder (%s): %w", src.Path(), imgpick.ErrInputMissing)
	}
	return src, dst, nil
}

func (s *ResolutionService) openTable(req imgpick.Request) (*table.Table, error) {
	return s.readTable(req.TablePath, table.Options{
		Delimiter:    req.Delimiter,
		StrictQuotes: req.StrictQuotes,
	})
}

func (s *ResolutionService) readTable(path string, opts table.Options) (*table.Table, error) {
	content, err := s.fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", imgpick.ErrTableRead, err)
	}
	return table.Open(content, opts)
}

var _ imgpick.Resolver = (*ResolutionService)(nil)
