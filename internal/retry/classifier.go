package retry

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
	"syscall"
)

// transientErrnos are the errno values that tend to clear up on their own on
// busy disks and network shares.
var transientErrnos = []syscall.Errno{
	syscall.EAGAIN,
	syscall.EBUSY,
	syscall.EINTR,
	syscall.ETIMEDOUT,
	syscall.ESTALE,
}

// transientPatterns catch the same conditions when the errno was lost in
// wrapping (SMB and NFS clients are not consistent).
var transientPatterns = []string{
	"resource temporarily unavailable",
	"device or resource busy",
	"stale file handle",
	"i/o timeout",
	"interrupted system call",
}

// FilesystemErrorClassifier implements imgpick.ErrorClassifier for file I/O.
type FilesystemErrorClassifier struct{}

// NewFilesystemErrorClassifier creates a new filesystem error classifier.
func NewFilesystemErrorClassifier() *FilesystemErrorClassifier {
	return &FilesystemErrorClassifier{}
}

// IsTransient reports whether err is worth another attempt. Missing files,
// permission problems and cancellation never are.
func (c *FilesystemErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return false
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	for _, errno := range transientErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
