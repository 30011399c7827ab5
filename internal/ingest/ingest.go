// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest loads the source table from a local CSV or spreadsheet
// file, or from the configured remote resource when no path is given.
// Every cell of the loaded table is a string.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/journaldb/internal/logging"
	"github.com/pdiddy/journaldb/pkg/types"
)

var (
	// ErrNotFound is returned when the input path does not exist.
	ErrNotFound = errors.New("input file not found")

	// ErrUnsupportedFormat is returned for extensions other than CSV and
	// spreadsheet formats.
	ErrUnsupportedFormat = errors.New("unsupported file format, use CSV or Excel (.xlsx)")

	// ErrEmptyInput is returned when the source has no header row.
	ErrEmptyInput = errors.New("input has no header row")
)

// Format identifies how a file is parsed.
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatSpreadsheet
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatSpreadsheet:
		return "spreadsheet"
	default:
		return "unknown"
	}
}

// DetectFormat picks the parser from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".xlsx", ".xlsm":
		return FormatSpreadsheet
	default:
		return FormatUnknown
	}
}

// Load returns the source table. When path is empty the configured default
// resource is downloaded to a temporary file and loaded from there.
func Load(ctx context.Context, client *http.Client, cfg types.IngestConfig, path string, logger logging.Logger) (*types.Table, error) {
	if path == "" {
		tmpDir, err := os.MkdirTemp("", "journaldb-*")
		if err != nil {
			return nil, fmt.Errorf("creating download directory: %w", err)
		}
		defer os.RemoveAll(tmpDir)

		dest := filepath.Join(tmpDir, cfg.DownloadName)
		logger.Info("downloading default resource", "url", cfg.DefaultURL)
		if err := Download(ctx, client, cfg.DefaultURL, dest, cfg.HTTPConfig); err != nil {
			logger.Error("download failed", "url", cfg.DefaultURL, "err", err)
			return nil, fmt.Errorf("downloading %s: %w", cfg.DefaultURL, err)
		}
		logger.Info("default resource saved", "path", dest)
		path = dest
	}
	return LoadFile(cfg, path, logger)
}

// LoadFile parses a local CSV or spreadsheet file.
func LoadFile(cfg types.IngestConfig, path string, logger logging.Logger) (*types.Table, error) {
	logger.Debug("loading data", "path", path)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	var (
		records [][]string
		err     error
	)
	format := DetectFormat(path)
	switch format {
	case FormatCSV:
		records, err = readCSV(path)
	case FormatSpreadsheet:
		records, err = readSpreadsheet(path)
		if err == nil {
			records = skipDataRows(records, cfg.SpreadsheetSkipRows)
		}
	default:
		logger.Error("unsupported file format", "path", path)
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		logger.Error("loading file failed", "path", path, "format", format.String(), "err", err)
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	table, err := buildTable(records, cfg.ColumnRenames)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	logger.Info("data loaded", "path", path, "rows", table.Len(), "columns", len(table.Columns))
	return table, nil
}

// skipDataRows drops the listed 0-based data row indices. The header
// (records[0]) is never dropped.
func skipDataRows(records [][]string, skip []int) [][]string {
	if len(records) == 0 || len(skip) == 0 {
		return records
	}
	drop := make(map[int]bool, len(skip))
	for _, i := range skip {
		drop[i] = true
	}
	out := [][]string{records[0]}
	for i, rec := range records[1:] {
		if !drop[i] {
			out = append(out, rec)
		}
	}
	return out
}
