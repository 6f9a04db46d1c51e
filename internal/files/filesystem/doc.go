// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// The resolver reads the table, checks source entries and copies files only
// through FileSystemProvider, so tests can run against an in-memory tree
// while production uses the OS filesystem.
//
// Key interfaces:
//   - FileSystemProvider: read, stat, copy and directory access
//   - Directory: an existing folder that names its children
//   - FileInfo: file metadata (alias of fs.FileInfo)
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
