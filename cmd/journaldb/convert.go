// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/journaldb/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input]",
	Short: "Build the snapshot and workbook from the journal list",
	Long: `Convert loads the journal list from a CSV or XLSX file, or downloads the
default list when no file is given. It prints the numbered discipline
columns, asks which ones to keep, and writes a snapshot of the full table
plus a workbook with an "All" sheet and one sheet per selected discipline.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("select", "", "comma-separated column numbers; skips the prompt")
	convertCmd.Flags().String("snapshot", "", "snapshot output path (default dane_filtered.db)")
	convertCmd.Flags().String("workbook", "", "workbook output path (default baza_czasopism.xlsx)")
	convertCmd.Flags().String("manifest", "", "write a YAML record of the run to this path")
	convertCmd.Flags().Bool("project", false, "limit category sheets to the metadata columns plus their own column")
	convertCmd.Flags().String("url", "", "download URL used when no input file is given")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	var input string
	if len(args) > 0 {
		input = args[0]
	}

	sel, _ := cmd.Flags().GetString("select")
	manifest, _ := cmd.Flags().GetString("manifest")

	c := cfg
	if v, _ := cmd.Flags().GetString("snapshot"); v != "" {
		c.Export.SnapshotPath = v
	}
	if v, _ := cmd.Flags().GetString("workbook"); v != "" {
		c.Export.WorkbookPath = v
	}
	if v, _ := cmd.Flags().GetString("url"); v != "" {
		c.Ingest.DefaultURL = v
	}
	if cmd.Flags().Changed("project") {
		c.Export.ProjectCategorySheets, _ = cmd.Flags().GetBool("project")
	}

	p := convert.New(c, nil, logger, cmd.InOrStdin(), cmd.OutOrStdout())
	if _, err := p.Run(cmd.Context(), convert.Request{
		Input:        input,
		Selection:    sel,
		ManifestPath: manifest,
	}); err != nil {
		logger.Error("conversion failed", "err", err)
		return err
	}
	return nil
}
