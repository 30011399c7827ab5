// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the journaldb CLI. The convert
// subcommand builds the snapshot and workbook from the journal list; the
// view subcommand browses the snapshot.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/journaldb/internal/logging"
	"github.com/pdiddy/journaldb/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfg      types.Config
	logger   *slog.Logger
	closeLog = func() error { return nil }
)

// rootCmd is the base command for the journaldb CLI.
var rootCmd = &cobra.Command{
	Use:   "journaldb",
	Short: "Convert and browse the ministry journal list",
	Long: `journaldb turns the ministry's scored journal list into a local database.

convert loads the list (from a file or the default download), asks which
discipline columns to keep, and writes a snapshot plus a workbook with one
sheet per selected discipline. view browses the snapshot with points range,
category, and column controls.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// version touches neither configuration nor the log file.
		if cmd.Name() == versionCmd.Name() {
			logger = logging.Discard()
			return nil
		}
		c, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = c

		// The viewer owns the terminal, so it logs to the file only.
		var stderr io.Writer = os.Stderr
		if cmd.Name() == "view" {
			stderr = io.Discard
		}
		l, closer, err := logging.Setup(cfg.Log, stderr)
		if err != nil {
			return err
		}
		logger = l
		closeLog = closer
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./journaldb.yaml or ~/.config/journaldb/journaldb.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-file", "", "file that receives a copy of every log record")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log-file"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("journaldb")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "journaldb"))
		}
	}

	viper.SetEnvPrefix("JOURNALDB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	registerDefaults(types.DefaultConfig())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// registerDefaults makes the scalar settings known to viper so that
// JOURNALDB_* environment variables reach Unmarshal.
func registerDefaults(d types.Config) {
	viper.SetDefault("marker", d.Marker)
	viper.SetDefault("ingest.default_url", d.Ingest.DefaultURL)
	viper.SetDefault("ingest.download_name", d.Ingest.DownloadName)
	viper.SetDefault("ingest.timeout", d.Ingest.Timeout)
	viper.SetDefault("ingest.user_agent", d.Ingest.UserAgent)
	viper.SetDefault("export.snapshot_path", d.Export.SnapshotPath)
	viper.SetDefault("export.workbook_path", d.Export.WorkbookPath)
	viper.SetDefault("export.all_sheet_name", d.Export.AllSheetName)
	viper.SetDefault("export.table_style", d.Export.TableStyle)
	viper.SetDefault("export.project_category_sheets", d.Export.ProjectCategorySheets)
	viper.SetDefault("viewer.points_column", d.Viewer.PointsColumn)
	viper.SetDefault("viewer.category_column", d.Viewer.CategoryColumn)
	viper.SetDefault("viewer.theme", d.Viewer.Theme)
	viper.SetDefault("viewer.height", d.Viewer.Height)
	viper.SetDefault("log.level", d.Log.Level)
	viper.SetDefault("log.format", d.Log.Format)
	viper.SetDefault("log.file", d.Log.File)
}

// loadConfig overlays the config file, environment and flags on the
// compiled-in defaults. Lists and maps given in the config file replace
// the defaults instead of merging with them.
func loadConfig() (types.Config, error) {
	c := types.DefaultConfig()
	replace := func(dc *mapstructure.DecoderConfig) { dc.ZeroFields = true }
	if err := viper.Unmarshal(&c, replace); err != nil {
		return c, fmt.Errorf("reading configuration: %w", err)
	}
	if strings.TrimSpace(c.Marker) == "" {
		return c, fmt.Errorf("marker must not be empty")
	}
	return c, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = closeLog()
	if err != nil {
		os.Exit(1)
	}
}
