// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"
	"strings"

	"github.com/pdiddy/journaldb/pkg/types"
)

const utf8BOM = "\ufeff"

// buildTable turns raw records (header first) into a rectangular table.
// Blank headers become "Unnamed: i", renames are applied, duplicate names
// get ".1", ".2" suffixes, and short rows are padded with empty strings.
// Rows wider than the header widen the table with unnamed columns.
func buildTable(records [][]string, renames []types.ColumnRename) (*types.Table, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	width := 0
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}
	if width == 0 {
		return nil, ErrEmptyInput
	}

	header := make([]string, width)
	copy(header, records[0])
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	columns := normalizeHeader(header, renames)

	table := types.NewTable(columns)
	table.Rows = make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, width)
		copy(row, rec)
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// renameMap indexes renames by source name. A later entry for the same
// source name wins.
func renameMap(renames []types.ColumnRename) map[string]string {
	m := make(map[string]string, len(renames))
	for _, r := range renames {
		if r.From != "" && r.To != "" {
			m[r.From] = r.To
		}
	}
	return m
}

func normalizeHeader(header []string, renames []types.ColumnRename) []string {
	byName := renameMap(renames)
	columns := make([]string, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = types.UnnamedColumn(i)
		}
		if renamed, ok := byName[name]; ok {
			name = renamed
		}
		columns[i] = name
	}
	return dedupe(columns)
}

// dedupe makes names unique by suffixing repeats with ".1", ".2", ...
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	counts := make(map[string]int, len(names))
	used := make(map[string]bool, len(names))
	out := make([]string, len(names))
	for i, n := range names {
		if !used[n] {
			used[n] = true
			out[i] = n
			continue
		}
		for {
			counts[n]++
			candidate := fmt.Sprintf("%s.%d", n, counts[n])
			if !used[candidate] && !seen[candidate] {
				used[candidate] = true
				out[i] = candidate
				break
			}
		}
	}
	return out
}
