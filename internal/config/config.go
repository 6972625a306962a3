// =============================================================================
// CSV to CAD Table - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file. Every
// setting has a default, so running without a configuration file is valid.
// Command-line flags override whatever is loaded here.
//
// CONFIGURATION SECTIONS:
//   - top level : output location, output naming, sink, logging
//   - csv       : dialect and encoding used by the loader
//   - layout    : table geometry and default title
//   - xlsx      : workbook specific options
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the global application configuration.
type Config struct {
	// OutputDir is where file sinks write their output.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// OutputNameFormat is the output file name without extension.
	// Placeholders:
	//   {title}     - The table title, made safe for file names
	//   {source}    - The input file name without extension
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	// Default: "{title}_{timestamp}_{uuid}"
	OutputNameFormat string `yaml:"output_name_format"`

	// Sink selects where the table is created.
	// Valid values: "xlsx", "dxf", "preview", "memory"
	// Default: "xlsx"
	Sink string `yaml:"sink"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the log formatter: "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format"`

	CSV    CSVSettings    `yaml:"csv"`
	Layout LayoutSettings `yaml:"layout"`
	XLSX   XLSXSettings   `yaml:"xlsx"`
}

// =============================================================================
// CSV SETTINGS STRUCTURE
// =============================================================================

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the field separator.
	// Common values: "," (comma), "|" or "pipe", "\t" or "tab", ";" or "semicolon"
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Encoding is the character encoding of the file. Any WHATWG encoding
	// label is accepted, e.g. "UTF-8", "windows-1258", "ISO-8859-1".
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`

	// LazyQuotes accepts quotes appearing in unquoted fields.
	LazyQuotes bool `yaml:"lazy_quotes"`

	// TrimLeadingSpace drops leading white space in a field.
	TrimLeadingSpace bool `yaml:"trim_leading_space"`

	// Comment, if set, marks lines starting with this character as comments.
	Comment string `yaml:"comment,omitempty"`

	// Sheet is the worksheet read when the input is an .xlsx workbook.
	// Empty means the first sheet.
	Sheet string `yaml:"sheet,omitempty"`
}

// =============================================================================
// LAYOUT SETTINGS STRUCTURE
// =============================================================================

// LayoutSettings holds the default table geometry in drawing units.
type LayoutSettings struct {
	// RowHeight is the height of every row.
	// Default: 2.5
	RowHeight float64 `yaml:"row_height"`

	// ColumnWidth is the width of every column.
	// Default: 15
	ColumnWidth float64 `yaml:"column_width"`

	// TextHeight is the text size used in every cell.
	// Default: 1
	TextHeight float64 `yaml:"text_height"`

	// Title is used when no title is given on the command line.
	// Default: "Table"
	Title string `yaml:"title"`
}

// XLSXSettings holds options for the workbook sink.
type XLSXSettings struct {
	// SheetName is the name of the worksheet holding the table.
	// Default: "Table"
	SheetName string `yaml:"sheet_name"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file. An empty path
//     returns Default().
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed or validated.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{title}_{timestamp}_{uuid}"
	}
	if config.Sink == "" {
		config.Sink = "xlsx"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}

	if config.CSV.Delimiter == "" {
		config.CSV.Delimiter = ","
	}
	if config.CSV.Encoding == "" {
		config.CSV.Encoding = "UTF-8"
	}

	if config.Layout.RowHeight == 0 {
		config.Layout.RowHeight = 2.5
	}
	if config.Layout.ColumnWidth == 0 {
		config.Layout.ColumnWidth = 15
	}
	if config.Layout.TextHeight == 0 {
		config.Layout.TextHeight = 1
	}
	if config.Layout.Title == "" {
		config.Layout.Title = "Table"
	}

	if config.XLSX.SheetName == "" {
		config.XLSX.SheetName = "Table"
	}
}

// validate checks values that have no sensible fallback.
func validate(config *Config) error {
	switch config.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be \"text\" or \"json\", got %q", config.LogFormat)
	}

	if config.Layout.RowHeight < 0 || config.Layout.ColumnWidth < 0 || config.Layout.TextHeight < 0 {
		return fmt.Errorf("layout sizes must be positive")
	}

	if len([]rune(config.CSV.Comment)) > 1 {
		return fmt.Errorf("csv comment must be a single character, got %q", config.CSV.Comment)
	}

	if strings.ContainsAny(config.OutputNameFormat, `/\`) {
		return fmt.Errorf("output_name_format must not contain path separators")
	}

	return nil
}
