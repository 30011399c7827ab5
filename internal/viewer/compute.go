// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package viewer

import (
	"sort"

	"github.com/pdiddy/journaldb/internal/catalog"
	"github.com/pdiddy/journaldb/pkg/types"
)

// View is what the viewer draws: the visible columns and the rows that
// pass every filter, projected onto those columns.
type View struct {
	Columns []string
	Rows    [][]string
	// Total is the number of rows in the source table.
	Total int
}

// Compute applies s to table. It never modifies table. Column visibility
// only affects the projection, never which rows pass.
func Compute(table *types.Table, cfg types.Config, s State) View {
	pointsIdx := table.ColumnIndex(cfg.Viewer.PointsColumn)
	categoryIdx := table.ColumnIndex(cfg.Viewer.CategoryColumn)
	flagIdx := table.ColumnIndex(s.Flag)
	bounded := s.Min.Set || s.Max.Set
	byCategory := s.Category != "" && s.Category != AllOption

	var kept []int
	for i, row := range table.Rows {
		if bounded {
			if pointsIdx < 0 {
				continue
			}
			v, ok := parseNumber(row[pointsIdx])
			if !ok {
				continue
			}
			if s.Min.Set && v < s.Min.Value {
				continue
			}
			if s.Max.Set && v > s.Max.Value {
				continue
			}
		}
		if byCategory && (categoryIdx < 0 || row[categoryIdx] != s.Category) {
			continue
		}
		if s.Flag != "" && (flagIdx < 0 || !catalog.Marks(row[flagIdx], cfg.Marker)) {
			continue
		}
		kept = append(kept, i)
	}

	if s.SortDesc && pointsIdx >= 0 {
		sort.SliceStable(kept, func(a, b int) bool {
			va, okA := parseNumber(table.Rows[kept[a]][pointsIdx])
			vb, okB := parseNumber(table.Rows[kept[b]][pointsIdx])
			if okA != okB {
				return okA
			}
			return okA && va > vb
		})
	}

	var visible []int
	var columns []string
	for ci, c := range table.Columns {
		if !s.Hidden(c) {
			visible = append(visible, ci)
			columns = append(columns, c)
		}
	}

	rows := make([][]string, len(kept))
	for j, ri := range kept {
		src := table.Rows[ri]
		out := make([]string, len(visible))
		for k, ci := range visible {
			out[k] = src[ci]
		}
		rows[j] = out
	}

	return View{Columns: columns, Rows: rows, Total: table.Len()}
}

// CategoryOptions lists AllOption followed by the distinct non-empty
// values of the category column in order of first appearance.
func CategoryOptions(table *types.Table, cfg types.Config) []string {
	opts := []string{AllOption}
	ci := table.ColumnIndex(cfg.Viewer.CategoryColumn)
	if ci < 0 {
		return opts
	}
	seen := make(map[string]bool)
	for _, row := range table.Rows {
		v := row[ci]
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		opts = append(opts, v)
	}
	return opts
}

// FlagOptions lists the categorical columns, preceded by "" for no flag.
func FlagOptions(table *types.Table, cfg types.Config) []string {
	return append([]string{""}, catalog.Classify(table.Columns, cfg.MetadataColumns)...)
}
