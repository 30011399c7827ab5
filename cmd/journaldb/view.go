// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/journaldb/internal/snapshot"
	"github.com/pdiddy/journaldb/internal/viewer"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse the snapshot in the terminal",
	Long: `View opens the snapshot written by convert. Rows can be limited to a
points range, a single category value, or one discipline column, and
columns can be shown or hidden. Nothing is written back.

The category selector (c/C) keeps rows whose viewer.category_column equals
the chosen value exactly. By default that column is Punkty, so it picks one
exact points value (for example 140) next to the min/max range. Set
viewer.category_column in journaldb.yaml to select on another column.`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	viewCmd.Flags().String("snapshot", "", "snapshot path (default dane_filtered.db)")
	viewCmd.Flags().String("theme", "", "colour theme: dark or light")

	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	c := cfg
	if v, _ := cmd.Flags().GetString("snapshot"); v != "" {
		c.Export.SnapshotPath = v
	}
	if v, _ := cmd.Flags().GetString("theme"); v != "" {
		c.Viewer.Theme = v
	}

	table, meta, err := snapshot.Load(cmd.Context(), c.Export.SnapshotPath)
	if err != nil {
		logger.Error("loading snapshot failed", "path", c.Export.SnapshotPath, "err", err)
		if errors.Is(err, snapshot.ErrMissing) {
			return fmt.Errorf("%w; use --snapshot to point at another file", err)
		}
		return err
	}
	logger.Info("snapshot loaded",
		"path", c.Export.SnapshotPath,
		"rows", table.Len(),
		"columns", len(table.Columns),
		"source", meta.Source,
		"created_at", meta.CreatedAt)

	return viewer.Run(table, c, logger)
}
