// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs the conversion pipeline: load the source table,
// list its categorical columns, take the user's selection, filter one
// sub-table per selected category, and write the snapshot and workbook.
package convert

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/journaldb/internal/catalog"
	"github.com/pdiddy/journaldb/internal/export"
	"github.com/pdiddy/journaldb/internal/ingest"
	"github.com/pdiddy/journaldb/internal/logging"
	"github.com/pdiddy/journaldb/internal/snapshot"
	"github.com/pdiddy/journaldb/pkg/types"
)

// Request describes one conversion run.
type Request struct {
	// Input is the source file path. Empty downloads the default resource.
	Input string

	// Selection is a comma-separated list of 1-based category numbers.
	// Empty prompts on the pipeline's input reader.
	Selection string

	// ManifestPath, when set, receives a YAML record of the run.
	ManifestPath string
}

// Result holds the outcome of a conversion run.
type Result struct {
	Table      *types.Table
	Categories []string
	Selection  catalog.Selection
	Slices     []catalog.Slice
	Sheets     []export.SheetSummary
	// Matched counts rows marked in at least one selected category.
	Matched int
}

// Pipeline carries the configuration and collaborators of a run.
type Pipeline struct {
	cfg    types.Config
	client *http.Client
	logger logging.Logger
	in     io.Reader
	out    io.Writer
}

// New returns a pipeline. Prompts are read from in; user-facing messages
// are written to out.
func New(cfg types.Config, client *http.Client, logger logging.Logger, in io.Reader, out io.Writer) *Pipeline {
	if client == nil {
		client = &http.Client{Timeout: cfg.Ingest.Timeout}
	}
	return &Pipeline{cfg: cfg, client: client, logger: logger, in: in, out: out}
}

// Run executes the full pipeline for req.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	table, err := ingest.Load(ctx, p.client, p.cfg.Ingest, req.Input, p.logger)
	if err != nil {
		return nil, err
	}

	if missing := catalog.MissingMetadata(table.Columns, p.cfg.MetadataColumns); len(missing) > 0 {
		p.logger.Warn("metadata columns missing from input", "columns", missing)
	}

	categories := catalog.Classify(table.Columns, p.cfg.MetadataColumns)
	p.logger.Debug("available categorical columns", "columns", categories)
	if len(categories) == 0 {
		return nil, fmt.Errorf("input has no categorical columns to select")
	}
	catalog.WriteNumbered(p.out, categories)

	sel, err := p.selection(req.Selection, categories)
	if err != nil {
		p.logger.Error("invalid column selection", "err", err)
		return nil, err
	}
	p.logger.Debug("selected columns for filtering", "columns", sel.Columns)

	result, err := p.Apply(table, sel)
	if err != nil {
		return nil, err
	}
	result.Categories = categories

	if err := p.Export(ctx, result, sourceName(req.Input, p.cfg.Ingest.DefaultURL)); err != nil {
		return nil, err
	}

	if req.ManifestPath != "" {
		if err := p.writeManifest(req, result); err != nil {
			p.logger.Error("writing manifest failed", "path", req.ManifestPath, "err", err)
			return nil, err
		}
		fmt.Fprintf(p.out, "Manifest saved: %s\n", req.ManifestPath)
	}
	return result, nil
}

func (p *Pipeline) selection(input string, categories []string) (catalog.Selection, error) {
	if input != "" {
		return catalog.ParseSelection(input, categories)
	}
	return catalog.Prompt(p.in, p.out, categories, catalog.MaxPromptAttempts)
}

// Apply filters table into one slice per selected category.
func (p *Pipeline) Apply(table *types.Table, sel catalog.Selection) (*Result, error) {
	slices, err := catalog.FilterAll(table, sel, p.cfg.Marker)
	if err != nil {
		return nil, err
	}
	for _, s := range slices {
		p.logger.Debug("category filtered", "category", s.Category, "rows", s.Table.Len())
	}

	matched, err := catalog.AnyMatch(table, sel, p.cfg.Marker)
	if err != nil {
		return nil, err
	}
	p.logger.Info("after filtering", "matched_rows", matched.Len(), "total_rows", table.Len())

	return &Result{
		Table:     table,
		Selection: sel,
		Slices:    slices,
		Matched:   matched.Len(),
	}, nil
}

// Export writes the snapshot of the full table and the workbook, filling
// result.Sheets.
func (p *Pipeline) Export(ctx context.Context, result *Result, source string) error {
	snapPath := p.cfg.Export.SnapshotPath
	if err := snapshot.Save(ctx, snapPath, result.Table, snapshot.Meta{Source: source}); err != nil {
		p.logger.Error("saving snapshot failed", "path", snapPath, "err", err)
		return fmt.Errorf("saving snapshot: %w", err)
	}
	p.logger.Info("snapshot saved", "path", snapPath, "rows", result.Table.Len())
	fmt.Fprintf(p.out, "Snapshot saved: %s\n", snapPath)

	bookPath := p.cfg.Export.WorkbookPath
	sheets, err := export.WriteWorkbook(bookPath, result.Table, result.Slices, export.WorkbookOptions{
		ExportConfig:    p.cfg.Export,
		MetadataColumns: p.cfg.MetadataColumns,
	})
	if err != nil {
		p.logger.Error("saving workbook failed", "path", bookPath, "err", err)
		return err
	}
	for _, s := range sheets {
		p.logger.Info("sheet saved", "sheet", s.Name, "rows", s.Rows)
	}
	fmt.Fprintf(p.out, "Excel file saved: %s\n", bookPath)

	result.Sheets = sheets
	return nil
}

func (p *Pipeline) writeManifest(req Request, result *Result) error {
	return export.WriteManifest(req.ManifestPath, export.Manifest{
		Source:     sourceName(req.Input, p.cfg.Ingest.DefaultURL),
		Categories: result.Selection.Columns,
		Marker:     p.cfg.Marker,
		Rows:       result.Table.Len(),
		Matched:    result.Matched,
		Sheets:     result.Sheets,
		Snapshot:   p.cfg.Export.SnapshotPath,
		Workbook:   p.cfg.Export.WorkbookPath,
		Timestamp:  time.Now().UTC(),
	})
}

func sourceName(input, defaultURL string) string {
	if input != "" {
		return input
	}
	return defaultURL
}
