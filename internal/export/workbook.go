// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes the conversion workbook and the optional run
// manifest.
package export

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/journaldb/internal/catalog"
	"github.com/pdiddy/journaldb/pkg/types"
)

const (
	maxSheetName = 31
	minColWidth  = 12
	maxColWidth  = 60
	headerFill   = "#D9E1F2"
)

// SheetSummary records what was written to one sheet.
type SheetSummary struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category,omitempty"`
	Rows     int    `yaml:"rows"`
}

// WorkbookOptions controls workbook layout.
type WorkbookOptions struct {
	types.ExportConfig

	// MetadataColumns are kept on category sheets when
	// ProjectCategorySheets is set.
	MetadataColumns []string
}

// WriteWorkbook writes all to the first sheet and each slice to its own
// sheet, in order, overwriting path. Category sheets are written even when
// they hold no rows.
func WriteWorkbook(path string, all *types.Table, slices []catalog.Slice, opts WorkbookOptions) ([]SheetSummary, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#8EA9DB", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	names := newSheetNamer()
	allName := names.next(opts.AllSheetName)
	if err := f.SetSheetName("Sheet1", allName); err != nil {
		return nil, fmt.Errorf("naming sheet %q: %w", allName, err)
	}

	w := sheetWriter{f: f, headerStyle: headerStyle, tableStyle: opts.TableStyle}

	summaries := make([]SheetSummary, 0, len(slices)+1)
	if err := w.write(allName, all); err != nil {
		return nil, err
	}
	summaries = append(summaries, SheetSummary{Name: allName, Rows: all.Len()})

	for _, s := range slices {
		name := names.next(s.Category)
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("creating sheet %q: %w", name, err)
		}
		table := s.Table
		if opts.ProjectCategorySheets {
			table = table.Project(append(append([]string{}, opts.MetadataColumns...), s.Category))
		}
		if err := w.write(name, table); err != nil {
			return nil, err
		}
		summaries = append(summaries, SheetSummary{Name: name, Category: s.Category, Rows: table.Len()})
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return summaries, nil
}

type sheetWriter struct {
	f           *excelize.File
	headerStyle int
	tableStyle  string
	tables      int
}

func (w *sheetWriter) write(sheet string, table *types.Table) error {
	sw, err := w.f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("opening sheet %q: %w", sheet, err)
	}

	for i, width := range columnWidths(table) {
		if err := sw.SetColWidth(i+1, i+1, width); err != nil {
			return fmt.Errorf("sizing column %d on %q: %w", i+1, sheet, err)
		}
	}

	header := make([]interface{}, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = excelize.Cell{StyleID: w.headerStyle, Value: c}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("writing header on %q: %w", sheet, err)
	}

	for ri, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, ri+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = v
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("writing row %d on %q: %w", ri+1, sheet, err)
		}
	}

	if w.tableStyle != "" && table.Len() > 0 && len(table.Columns) > 0 {
		end, err := excelize.CoordinatesToCellName(len(table.Columns), table.Len()+1)
		if err != nil {
			return err
		}
		w.tables++
		if err := sw.AddTable(&excelize.Table{
			Range:     "A1:" + end,
			Name:      fmt.Sprintf("Table%d", w.tables),
			StyleName: w.tableStyle,
		}); err != nil {
			return fmt.Errorf("formatting table on %q: %w", sheet, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flushing sheet %q: %w", sheet, err)
	}
	return nil
}

// columnWidths sizes each column to its longest value, at least the header
// plus two characters, clamped to [minColWidth, maxColWidth].
func columnWidths(table *types.Table) []float64 {
	widths := make([]float64, len(table.Columns))
	for i, c := range table.Columns {
		w := utf8.RuneCountInString(c) + 2
		for _, row := range table.Rows {
			if n := utf8.RuneCountInString(row[i]); n > w {
				w = n
			}
		}
		w = max(w, minColWidth)
		w = min(w, maxColWidth)
		widths[i] = float64(w)
	}
	return widths
}

// sheetNamer produces valid, unique sheet names.
type sheetNamer struct {
	used map[string]bool
}

func newSheetNamer() *sheetNamer {
	return &sheetNamer{used: make(map[string]bool)}
}

func (n *sheetNamer) next(raw string) string {
	base := SheetName(raw)
	name := base
	for i := 2; n.used[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		name = truncateRunes(base, maxSheetName-utf8.RuneCountInString(suffix)) + suffix
	}
	n.used[strings.ToLower(name)] = true
	return name
}

// SheetName converts raw into a valid Excel sheet name: forbidden
// characters become underscores, surrounding apostrophes are dropped, and
// the result is cut to 31 characters.
func SheetName(raw string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(raw))
	name = strings.Trim(name, "'")
	name = truncateRunes(name, maxSheetName)
	name = strings.Trim(name, "'")
	if name == "" {
		return "Sheet"
	}
	return name
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
