// Package selection turns a table column into the set of basenames to copy.
package selection

import (
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/vvka-141/imgpick/internal/table"
)

// separators splits paths written with either style, whatever the host OS.
const separators = `/\`

// Basename returns the text after the last '/' or '\' in s.
// "/a/b/photo.jpg" and `C:\x\y\photo.png` both yield the final segment.
func Basename(s string) string {
	if i := strings.LastIndexAny(s, separators); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Set is a set of basenames. Two different paths sharing a basename
// collapse into one entry.
type Set map[string]struct{}

// NewSet returns a set holding names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts name.
func (s Set) Add(name string) { s[name] = struct{}{} }

// Has reports whether name is in the set.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of distinct names.
func (s Set) Len() int { return len(s) }

// Sorted returns the names in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// RowSource yields table rows until io.EOF. *table.Table satisfies it.
type RowSource interface {
	Next() (table.Row, error)
}

// Stats describes what Extract saw, for diagnostics.
type Stats struct {
	Rows       int // rows read
	Empty      int // rows whose cell was empty or absent
	Unusable   int // non-empty cells whose basename cannot name a file ("dir/", "..")
	Duplicates int // cells whose basename was already in the set
}

// Extract reads every row from src and collects the basename of the cell at
// column. Empty or absent cells contribute nothing. Cells whose last segment
// is empty, "." or ".." are skipped too, since they never name a file inside
// a folder. No extension or existence filtering happens here.
func Extract(src RowSource, column table.Column) (Set, Stats, error) {
	set := make(Set)
	var stats Stats

	for {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			return set, stats, nil
		}
		if err != nil {
			return nil, stats, err
		}
		stats.Rows++

		cell, ok := row.At(column.Index)
		if !ok || cell == "" {
			stats.Empty++
			continue
		}

		name := Basename(cell)
		switch name {
		case "", ".", "..":
			stats.Unusable++
			continue
		}
		if set.Has(name) {
			stats.Duplicates++
			continue
		}
		set.Add(name)
	}
}
