// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package snapshot persists the full table to a SQLite file so the viewer
// can reload it exactly: column order, row order, and cell values.
package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/journaldb/pkg/types"
)

// formatVersion is bumped whenever the schema changes.
const formatVersion = "1"

// ErrMissing is returned by Load when the snapshot file does not exist.
var ErrMissing = errors.New("snapshot not found: run `journaldb convert` first to create it")

// ErrFormat is returned when the file is not a snapshot this build can read.
var ErrFormat = errors.New("unsupported snapshot format")

// Meta describes where a snapshot came from.
type Meta struct {
	// Source is the input path or URL the table was loaded from.
	Source string
	// CreatedAt is when the snapshot was written.
	CreatedAt time.Time
}

var schema = []string{
	`CREATE TABLE snapshot_meta (
		meta_key TEXT PRIMARY KEY,
		meta_value TEXT NOT NULL
	)`,
	`CREATE TABLE columns (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE cells (
		row_index INTEGER NOT NULL,
		position INTEGER NOT NULL REFERENCES columns(position),
		cell_value TEXT NOT NULL,
		PRIMARY KEY (row_index, position)
	)`,
}

// Save writes table to path, replacing any existing file.
func Save(ctx context.Context, path string, table *types.Table, meta Meta) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing old snapshot %s: %w", path, err)
	}

	db, err := sql.Open("sqlite3", dsn(path, "mode=rwc&_foreign_keys=on"))
	if err != nil {
		return fmt.Errorf("opening snapshot %s: %w", path, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating snapshot schema: %w", err)
		}
	}

	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now()
	}
	metaRows := map[string]string{
		"format_version": formatVersion,
		"source":         meta.Source,
		"created_at":     meta.CreatedAt.UTC().Format(time.RFC3339Nano),
		"row_count":      strconv.Itoa(table.Len()),
	}
	for k, v := range metaRows {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot_meta (meta_key, meta_value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("writing snapshot meta %s: %w", k, err)
		}
	}

	for i, name := range table.Columns {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO columns (position, name) VALUES (?, ?)`, i, name); err != nil {
			return fmt.Errorf("writing column %q: %w", name, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cells (row_index, position, cell_value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for ri, row := range table.Rows {
		if len(row) != len(table.Columns) {
			return fmt.Errorf("row %d has %d cells, want %d", ri, len(row), len(table.Columns))
		}
		for ci, v := range row {
			if _, err := stmt.ExecContext(ctx, ri, ci, v); err != nil {
				return fmt.Errorf("writing row %d: %w", ri, err)
			}
		}
	}

	return tx.Commit()
}

// Load reads the snapshot at path.
func Load(ctx context.Context, path string) (*types.Table, Meta, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, Meta{}, fmt.Errorf("%w (%s)", ErrMissing, path)
		}
		return nil, Meta{}, fmt.Errorf("checking snapshot %s: %w", path, err)
	}

	db, err := sql.Open("sqlite3", dsn(path, "mode=ro"))
	if err != nil {
		return nil, Meta{}, fmt.Errorf("opening snapshot %s: %w", path, err)
	}
	defer db.Close()

	kv, err := readMeta(ctx, db)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	if kv["format_version"] != formatVersion {
		return nil, Meta{}, fmt.Errorf("%w: version %q in %s", ErrFormat, kv["format_version"], path)
	}
	rowCount, err := strconv.Atoi(kv["row_count"])
	if err != nil || rowCount < 0 {
		return nil, Meta{}, fmt.Errorf("%w: bad row count %q in %s", ErrFormat, kv["row_count"], path)
	}

	meta := Meta{Source: kv["source"]}
	if t, err := time.Parse(time.RFC3339Nano, kv["created_at"]); err == nil {
		meta.CreatedAt = t
	}

	columns, err := readColumns(ctx, db)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("reading snapshot %s: %w", path, err)
	}

	table := types.NewTable(columns)
	table.Rows = make([][]string, rowCount)
	for i := range table.Rows {
		table.Rows[i] = make([]string, len(columns))
	}

	rows, err := db.QueryContext(ctx, `SELECT row_index, position, cell_value FROM cells`)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("reading cells: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ri, ci int
			v      string
		)
		if err := rows.Scan(&ri, &ci, &v); err != nil {
			return nil, Meta{}, fmt.Errorf("scanning cell: %w", err)
		}
		if ri < 0 || ri >= rowCount || ci < 0 || ci >= len(columns) {
			return nil, Meta{}, fmt.Errorf("%w: cell (%d, %d) out of bounds in %s", ErrFormat, ri, ci, path)
		}
		table.Rows[ri][ci] = v
	}
	if err := rows.Err(); err != nil {
		return nil, Meta{}, fmt.Errorf("reading cells: %w", err)
	}

	return table, meta, nil
}

func readMeta(ctx context.Context, db *sql.DB) (map[string]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT meta_key, meta_value FROM snapshot_meta`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	defer rows.Close()

	kv := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		kv[k] = v
	}
	return kv, rows.Err()
}

func readColumns(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM columns ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

// dsn returns a file: URI for path with the path escaped, so names holding
// '?', '#' or '%' reach SQLite unchanged.
func dsn(path, query string) string {
	u := url.URL{Scheme: "file", Path: path, OmitHost: true, RawQuery: query}
	return u.String()
}
