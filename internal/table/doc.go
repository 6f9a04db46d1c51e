// Package table reads delimited text tables (comma, semicolon or tab separated).
//
// The delimiter is sniffed once from the header line with a fixed priority
// (tab, then semicolon, then comma) unless the caller forces one. Rows are
// produced lazily, one Next call at a time, in the style of encoding/csv.
//
// Column lookup is case-insensitive and ignores surrounding whitespace. The
// lookup table is built once when the table is opened; when two headers
// normalize to the same key the first one in header order wins.
//
// # Ragged rows
//
// Rows shorter than the header read as empty for the missing trailing cells.
// Cells beyond the last header are ignored.
//
// # Example Usage
//
//	t, err := table.Open(content, table.Options{})
//	col, err := t.Column(" Image ")
//	for {
//	    row, err := t.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    name, _ := row.At(col.Index)
//	}
package table
