package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryFile is one node of the in-memory tree.
type memoryFile struct {
	content []byte
	info    *memoryFileInfo
}

// memoryDirectory implements Directory interface for in-memory filesystem
type memoryDirectory struct {
	absPath string
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Join(name string) string { return path.Join(d.absPath, name) }

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Safe for concurrent use.
type MemoryFileSystem struct {
	mu        sync.RWMutex
	files     map[string]*memoryFile // absolute path -> node
	root      string
	copyFault map[string]*copyFault // destination basename -> injected CopyFile error
	copies    int
}

type copyFault struct {
	err  error
	left int // remaining failures; negative means forever
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files:     make(map[string]*memoryFile),
		root:      root,
		copyFault: make(map[string]*copyFault),
	}
	mfs.addDir(root, time.Now())
	return mfs
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(path string, content string) {
	mfs.AddFileWithTime(path, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.abs(filePath)
	mfs.putFile(absPath, []byte(content), 0644, modTime)
}

// AddDir adds an empty directory (and its parents).
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.addDir(mfs.abs(dirPath), time.Now())
}

// FailCopyTo makes every CopyFile whose destination basename is name fail with err.
func (mfs *MemoryFileSystem) FailCopyTo(name string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.copyFault[name] = &copyFault{err: err, left: -1}
}

// FailCopyToTimes makes the next n CopyFile calls to name fail with err.
func (mfs *MemoryFileSystem) FailCopyToTimes(name string, err error, n int) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.copyFault[name] = &copyFault{err: err, left: n}
}

// CopyCount returns the number of successful CopyFile calls.
func (mfs *MemoryFileSystem) CopyCount() int {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	return mfs.copies
}

// Files returns the paths of every regular file, sorted.
func (mfs *MemoryFileSystem) Files() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	var out []string
	for p, f := range mfs.files {
		if !f.info.isDir {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	absPath := mfs.abs(openPath)
	file, exists := mfs.files[absPath]
	if !exists {
		return nil, fmt.Errorf("failed to access path: %w", &fs.PathError{Op: "open", Path: openPath, Err: fs.ErrNotExist})
	}
	if !file.info.isDir {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}
	return &memoryDirectory{absPath: absPath}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[mfs.abs(filePath)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	if file.info.isDir {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	return append([]byte(nil), file.content...), nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[mfs.abs(statPath)]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: statPath, Err: fs.ErrNotExist}
	}
	info := *file.info
	return &info, nil
}

// CopyFile implements FileSystemProvider.CopyFile
func (mfs *MemoryFileSystem) CopyFile(src, dst string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	srcPath, dstPath := mfs.abs(src), mfs.abs(dst)

	if fault, ok := mfs.copyFault[path.Base(dstPath)]; ok && fault.left != 0 {
		if fault.left > 0 {
			fault.left--
		}
		return fault.err
	}

	file, exists := mfs.files[srcPath]
	if !exists {
		return &fs.PathError{Op: "open", Path: src, Err: fs.ErrNotExist}
	}
	if file.info.isDir {
		return fmt.Errorf("source is a directory: %s", src)
	}
	parent, exists := mfs.files[path.Dir(dstPath)]
	if !exists || !parent.info.isDir {
		return &fs.PathError{Op: "open", Path: dst, Err: fs.ErrNotExist}
	}
	if existing, ok := mfs.files[dstPath]; ok && existing.info.isDir {
		return &fs.PathError{Op: "open", Path: dst, Err: fmt.Errorf("is a directory")}
	}

	mfs.putFile(dstPath, append([]byte(nil), file.content...), file.info.mode, file.info.modTime)
	mfs.copies++
	return nil
}

// abs resolves p against the root. Caller holds the lock or p is immutable input.
func (mfs *MemoryFileSystem) abs(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if path.IsAbs(p) {
		return path.Clean(p)
	}
	return path.Join(mfs.root, p)
}

func (mfs *MemoryFileSystem) putFile(absPath string, content []byte, mode fs.FileMode, modTime time.Time) {
	mfs.files[absPath] = &memoryFile{
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    mode,
			modTime: modTime,
		},
	}
	mfs.addDir(path.Dir(absPath), time.Now())
}

// addDir creates directory entries for dir and all of its parents.
func (mfs *MemoryFileSystem) addDir(dir string, modTime time.Time) {
	for {
		if _, exists := mfs.files[dir]; exists {
			return
		}
		mfs.files[dir] = &memoryFile{
			info: &memoryFileInfo{
				name:    path.Base(dir),
				mode:    0755 | fs.ModeDir,
				modTime: modTime,
				isDir:   true,
			},
		}
		parent := path.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

var _ FileSystemProvider = (*MemoryFileSystem)(nil)
