// Package checksum provides file content hashing.
//
// It backs the optional post-copy verification: after a file is copied,
// the SHA-256 of the source and of the destination are compared and a
// mismatch fails the copy.
//
// # Example Usage
//
//	calculator := checksum.New()
//	srcSum, dstSum, ok := checksum.Match(calculator, srcContent, dstContent)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
