package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	xunicode "golang.org/x/text/encoding/unicode"

	"github.com/vvka-141/imgpick/pkg/imgpick"
)

// Options controls how a table is opened.
type Options struct {
	// Delimiter forces the cell separator. Zero means detect from the header line.
	Delimiter rune

	// StrictQuotes rejects stray double quotes inside cells instead of
	// reading them literally.
	StrictQuotes bool
}

// Row is one data line of a table: cells in header order.
type Row struct {
	line  int
	cells []string
}

// Line returns the 1-based line number the row started on.
func (r Row) Line() int { return r.line }

// At returns the cell at index i. Cells missing at the end of a short row
// report ok=false and read as empty.
func (r Row) At(i int) (value string, ok bool) {
	if i < 0 || i >= len(r.cells) {
		return "", false
	}
	return r.cells[i], true
}

// Table is an opened delimited table. Rows are read lazily with Next.
// A Table is not safe for concurrent use.
type Table struct {
	delimiter rune
	index     *HeaderIndex
	reader    *csv.Reader
	width     int
	rows      int
}

// Open decodes content as UTF-8 text and reads its header line.
// A leading byte order mark is dropped. Content that is not valid UTF-8
// fails with imgpick.ErrTableRead; a missing header, or a quoting error in
// strict mode, fails with *imgpick.MalformedTableError.
func Open(content []byte, opts Options) (*Table, error) {
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("table is not valid UTF-8 text: %w", imgpick.ErrTableRead)
	}
	decoded, err := xunicode.UTF8BOM.NewDecoder().Bytes(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode table: %v: %w", err, imgpick.ErrTableRead)
	}

	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = DetectDelimiter(firstLine(decoded))
	}

	r := csv.NewReader(bytes.NewReader(decoded))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = !opts.StrictQuotes

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &imgpick.MalformedTableError{Err: errors.New("table has no header line")}
		}
		return nil, wrapParseError(err)
	}

	return &Table{
		delimiter: delimiter,
		index:     NewHeaderIndex(header),
		reader:    r,
		width:     len(header),
	}, nil
}

// Delimiter returns the delimiter in use, detected or forced.
func (t *Table) Delimiter() rune { return t.delimiter }

// Headers returns the header names verbatim.
func (t *Table) Headers() []string { return t.index.Headers() }

// Index returns the case-insensitive header lookup built when the table was opened.
func (t *Table) Index() *HeaderIndex { return t.index }

// Column resolves a requested column name against the header row.
func (t *Table) Column(requested string) (Column, error) {
	return t.index.Resolve(requested)
}

// RowsRead returns the number of rows returned by Next so far.
func (t *Table) RowsRead() int { return t.rows }

// Next returns the next data row, or io.EOF after the last one.
// Blank lines are skipped.
func (t *Table) Next() (Row, error) {
	record, err := t.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Row{}, io.EOF
		}
		return Row{}, wrapParseError(err)
	}
	line, _ := t.reader.FieldPos(0)
	if len(record) > t.width {
		record = record[:t.width]
	}
	t.rows++
	return Row{line: line, cells: record}, nil
}

func wrapParseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &imgpick.MalformedTableError{Line: pe.Line, Err: pe.Err}
	}
	return &imgpick.MalformedTableError{Err: err}
}

// firstLine returns the line encoding/csv reads as the header: the first one
// that is not empty. Whitespace-only lines count as content.
func firstLine(content []byte) string {
	for len(content) > 0 {
		line := content
		if i := bytes.IndexByte(content, '\n'); i >= 0 {
			line, content = content[:i], content[i+1:]
		} else {
			content = nil
		}
		line = bytes.TrimSuffix(line, []byte("\r"))
		if len(line) > 0 {
			return string(line)
		}
	}
	return ""
}
