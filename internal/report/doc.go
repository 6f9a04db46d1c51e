// Package report renders a batch result as plain text, JSON or YAML, to a
// writer or to a file whose extension picks the format.
package report
