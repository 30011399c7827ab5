// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds settings for the single network request made when no
// input file is given.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// IngestConfig holds settings for loading the source table.
type IngestConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// DefaultURL is the remote resource fetched when no input path is given.
	DefaultURL string `json:"default_url" yaml:"default_url" mapstructure:"default_url"`

	// DownloadName is the file name used for the downloaded resource. Its
	// extension decides how the download is parsed.
	DownloadName string `json:"download_name" yaml:"download_name" mapstructure:"download_name"`

	// SpreadsheetSkipRows lists 0-based data row indices (counted below the
	// header) dropped when reading a spreadsheet.
	SpreadsheetSkipRows []int `json:"spreadsheet_skip_rows" yaml:"spreadsheet_skip_rows" mapstructure:"spreadsheet_skip_rows"`

	// ColumnRenames maps source header names to the names used downstream.
	// It is a list rather than a map because viper lowercases map keys.
	ColumnRenames []ColumnRename `json:"column_renames" yaml:"column_renames" mapstructure:"column_renames"`
}

// ColumnRename renames the source header From to To. From is matched
// exactly, after blank headers have been named "Unnamed: <i>".
type ColumnRename struct {
	From string `json:"from" yaml:"from" mapstructure:"from"`
	To   string `json:"to" yaml:"to" mapstructure:"to"`
}

// ExportConfig holds settings for the two conversion artifacts.
type ExportConfig struct {
	// SnapshotPath is where the binary snapshot of the full table is written.
	SnapshotPath string `json:"snapshot_path" yaml:"snapshot_path" mapstructure:"snapshot_path"`

	// WorkbookPath is where the multi-sheet workbook is written.
	WorkbookPath string `json:"workbook_path" yaml:"workbook_path" mapstructure:"workbook_path"`

	// AllSheetName names the sheet that holds the full table.
	AllSheetName string `json:"all_sheet_name" yaml:"all_sheet_name" mapstructure:"all_sheet_name"`

	// TableStyle is the Excel table style applied to sheets with data rows.
	// Empty disables table formatting.
	TableStyle string `json:"table_style" yaml:"table_style" mapstructure:"table_style"`

	// ProjectCategorySheets limits each category sheet to the metadata
	// columns plus that category's own column.
	ProjectCategorySheets bool `json:"project_category_sheets" yaml:"project_category_sheets" mapstructure:"project_category_sheets"`
}

// ViewerConfig holds settings for the interactive viewer.
type ViewerConfig struct {
	// PointsColumn is the numeric column bounded by the min/max controls.
	PointsColumn string `json:"points_column" yaml:"points_column" mapstructure:"points_column"`

	// CategoryColumn is the column driven by the single-category selector.
	CategoryColumn string `json:"category_column" yaml:"category_column" mapstructure:"category_column"`

	// VisibleColumns lists the columns shown at startup. Categorical
	// columns are always shown at startup. Empty shows every column.
	VisibleColumns []string `json:"visible_columns" yaml:"visible_columns" mapstructure:"visible_columns"`

	// Theme selects the colour palette: "dark" or "light".
	Theme string `json:"theme" yaml:"theme" mapstructure:"theme"`

	// Height is the number of table rows drawn at once.
	Height int `json:"height" yaml:"height" mapstructure:"height"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// File, when set, receives a copy of every log record.
	File string `json:"file" yaml:"file" mapstructure:"file"`
}

// Config groups the settings of both programs. It is built once from
// DefaultConfig and any overrides, then handed to each component.
type Config struct {
	// MetadataColumns are always retained and never offered as categories.
	MetadataColumns []string `json:"metadata_columns" yaml:"metadata_columns" mapstructure:"metadata_columns"`

	// Marker is the token whose case-insensitive presence marks a row as
	// belonging to a category.
	Marker string `json:"marker" yaml:"marker" mapstructure:"marker"`

	Ingest IngestConfig `json:"ingest" yaml:"ingest" mapstructure:"ingest"`
	Export ExportConfig `json:"export" yaml:"export" mapstructure:"export"`
	Viewer ViewerConfig `json:"viewer" yaml:"viewer" mapstructure:"viewer"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}

// Default values for the ministry journal list.
const (
	DefaultURL       = "https://www.gov.pl/attachment/c2510527-171a-451e-b3c4-74ea5a5c6c94"
	DefaultMarker    = "x"
	DefaultUserAgent = "journaldb/0.1"
	DefaultTimeout   = 60 * time.Second
)

// DefaultMetadataColumns are the identifying fields of the journal list.
var DefaultMetadataColumns = []string{
	"Lp.",
	"Unikatowy Identyfikator Czasopisma",
	"Tytuł 1",
	"issn",
	"e-issn",
	"Tytuł 2",
	"issn 2",
	"e-issn 2",
	"Punkty",
}

// DefaultConfig returns the compiled-in configuration.
func DefaultConfig() Config {
	metadata := make([]string, len(DefaultMetadataColumns))
	copy(metadata, DefaultMetadataColumns)

	renames := make([]ColumnRename, len(DefaultMetadataColumns))
	for i, name := range DefaultMetadataColumns {
		renames[i] = ColumnRename{From: UnnamedColumn(i), To: name}
	}

	return Config{
		MetadataColumns: metadata,
		Marker:          DefaultMarker,
		Ingest: IngestConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   DefaultTimeout,
				UserAgent: DefaultUserAgent,
			},
			DefaultURL:          DefaultURL,
			DownloadName:        "original.xlsx",
			SpreadsheetSkipRows: []int{0},
			ColumnRenames:       renames,
		},
		Export: ExportConfig{
			SnapshotPath: "dane_filtered.db",
			WorkbookPath: "baza_czasopism.xlsx",
			AllSheetName: "All",
			TableStyle:   "TableStyleMedium2",
		},
		Viewer: ViewerConfig{
			PointsColumn:   "Punkty",
			CategoryColumn: "Punkty",
			VisibleColumns: []string{"Tytuł 1", "Punkty", "issn"},
			Theme:          "dark",
			Height:         20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   "journaldb.log",
		},
	}
}
