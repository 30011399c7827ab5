// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/journaldb/pkg/types"
)

// ErrUnknownColumn is returned when a filter names a column the table does
// not have.
var ErrUnknownColumn = errors.New("unknown column")

// Marks reports whether cell carries marker, compared case-insensitively.
// An empty cell or an empty marker never matches.
func Marks(cell, marker string) bool {
	if cell == "" || marker == "" {
		return false
	}
	return strings.Contains(strings.ToLower(cell), strings.ToLower(marker))
}

// Slice is the filtered sub-table for one selected category.
type Slice struct {
	Category string
	Table    *types.Table
}

// Filter returns the rows of table whose cell in column carries marker.
// Columns, values, and row order are unchanged.
func Filter(table *types.Table, column, marker string) (*types.Table, error) {
	ci := table.ColumnIndex(column)
	if ci < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	out := types.NewTable(table.Columns)
	for _, row := range table.Rows {
		if Marks(row[ci], marker) {
			kept := make([]string, len(row))
			copy(kept, row)
			out.Rows = append(out.Rows, kept)
		}
	}
	return out, nil
}

// FilterAll builds one slice per selected column, in selection order.
func FilterAll(table *types.Table, sel Selection, marker string) ([]Slice, error) {
	slices := make([]Slice, 0, sel.Len())
	for _, col := range sel.Columns {
		sub, err := Filter(table, col, marker)
		if err != nil {
			return nil, err
		}
		slices = append(slices, Slice{Category: col, Table: sub})
	}
	return slices, nil
}

// AnyMatch returns the rows marked in at least one selected column.
func AnyMatch(table *types.Table, sel Selection, marker string) (*types.Table, error) {
	idx := make([]int, 0, sel.Len())
	for _, col := range sel.Columns {
		ci := table.ColumnIndex(col)
		if ci < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
		}
		idx = append(idx, ci)
	}
	out := types.NewTable(table.Columns)
	for _, row := range table.Rows {
		for _, ci := range idx {
			if Marks(row[ci], marker) {
				kept := make([]string, len(row))
				copy(kept, row)
				out.Rows = append(out.Rows, kept)
				break
			}
		}
	}
	return out, nil
}
