package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// Directory represents an existing folder.
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Join returns the path of the direct child called name
	Join(name string) string
}

// FileSystemProvider is the filesystem surface the resolver needs.
type FileSystemProvider interface {
	// Open opens a directory at the specified path.
	// It fails if the path does not exist or is not a directory.
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path.
	// A missing path yields an error matching fs.ErrNotExist.
	Stat(path string) (FileInfo, error)

	// CopyFile duplicates src to dst, overwriting dst if present.
	// Content, permission bits and modification time are carried over.
	CopyFile(src, dst string) error
}
