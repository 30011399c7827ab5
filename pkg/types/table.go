// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Table is an in-memory tabular dataset with every cell held as a string.
// Columns fixes the column order; each row in Rows has exactly
// len(Columns) cells, in that order.
type Table struct {
	// Columns lists the column names in display and export order.
	Columns []string `json:"columns" yaml:"columns"`

	// Rows holds the cell values, one slice per row, aligned with Columns.
	Rows [][]string `json:"rows" yaml:"rows"`
}

// NewTable returns a table with the given columns and no rows.
func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of name in Columns, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has a column called name.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Value returns the cell at row i in the named column. It returns false if
// the row or column does not exist.
func (t *Table) Value(i int, column string) (string, bool) {
	ci := t.ColumnIndex(column)
	if ci < 0 || i < 0 || i >= len(t.Rows) {
		return "", false
	}
	return t.Rows[i][ci], true
}

// Record returns row i as a column name to value map.
func (t *Table) Record(i int) map[string]string {
	rec := make(map[string]string, len(t.Columns))
	for ci, c := range t.Columns {
		rec[c] = t.Rows[i][ci]
	}
	return rec
}

// AppendRow adds a row. It returns an error if the cell count does not
// match the column count.
func (t *Table) AppendRow(cells []string) error {
	if len(cells) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.Columns))
	}
	row := make([]string, len(cells))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
	return nil
}

// Project returns a new table holding only the named columns, in the order
// given. Unknown column names are skipped.
func (t *Table) Project(columns []string) *Table {
	var idx []int
	var names []string
	for _, c := range columns {
		if ci := t.ColumnIndex(c); ci >= 0 {
			idx = append(idx, ci)
			names = append(names, c)
		}
	}
	out := NewTable(names)
	out.Rows = make([][]string, len(t.Rows))
	for ri, row := range t.Rows {
		projected := make([]string, len(idx))
		for j, ci := range idx {
			projected[j] = row[ci]
		}
		out.Rows[ri] = projected
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := NewTable(t.Columns)
	out.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		r := make([]string, len(row))
		copy(r, row)
		out.Rows[i] = r
	}
	return out
}

// Equal reports whether both tables have the same columns in the same
// order and the same rows with identical values.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.Columns) != len(o.Columns) || len(t.Rows) != len(o.Rows) {
		return false
	}
	for i := range t.Columns {
		if t.Columns[i] != o.Columns[i] {
			return false
		}
	}
	for i := range t.Rows {
		if len(t.Rows[i]) != len(o.Rows[i]) {
			return false
		}
		for j := range t.Rows[i] {
			if t.Rows[i][j] != o.Rows[i][j] {
				return false
			}
		}
	}
	return true
}

// UnnamedColumn returns the placeholder name given to a column whose header
// cell is blank, using its 0-based position.
func UnnamedColumn(i int) string {
	return fmt.Sprintf("Unnamed: %d", i)
}
