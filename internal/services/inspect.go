package services

import (
	"errors"
	"io"

	"github.com/vvka-141/imgpick/internal/selection"
	"github.com/vvka-141/imgpick/internal/table"
	"github.com/vvka-141/imgpick/pkg/imgpick"
)

// TableSummary describes the layout of a table.
type TableSummary struct {
	Delimiter  string              `json:"delimiter" yaml:"delimiter"`
	Headers    []string            `json:"headers" yaml:"headers"`
	Rows       int                 `json:"rows" yaml:"rows"`
	Collisions map[string][]string `json:"collisions,omitempty" yaml:"collisions,omitempty"`

	// Set only when a column was requested.
	Column    string `json:"column,omitempty" yaml:"column,omitempty"`
	Filenames int    `json:"filenames,omitempty" yaml:"filenames,omitempty"`
	Empty     int    `json:"empty_cells,omitempty" yaml:"empty_cells,omitempty"`
	Duplicate int    `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
}

func summarize(tbl *table.Table, column string) (TableSummary, error) {
	summary := TableSummary{
		Delimiter: imgpick.DelimiterName(tbl.Delimiter()),
		Headers:   tbl.Headers(),
	}
	if c := tbl.Index().Collisions(); len(c) > 0 {
		summary.Collisions = c
	}

	if column == "" {
		for {
			_, err := tbl.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return summary, err
			}
		}
		summary.Rows = tbl.RowsRead()
		return summary, nil
	}

	col, err := tbl.Column(column)
	if err != nil {
		return summary, err
	}
	set, stats, err := selection.Extract(tbl, col)
	summary.Rows = stats.Rows
	if err != nil {
		return summary, err
	}
	summary.Column = col.Name
	summary.Filenames = set.Len()
	summary.Empty = stats.Empty + stats.Unusable
	summary.Duplicate = stats.Duplicates
	return summary, nil
}
