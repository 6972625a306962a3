// =============================================================================
// CSV to CAD Table - Loader
// =============================================================================
//
// This package reads the rows that become a table. CSV files are the main
// input; .xlsx workbooks are accepted as well and read through excelize.
// Every cell stays text and file order is preserved.
//
// ERROR KINDS:
//   - ErrUnreadable : the file is missing, cannot be opened or decoded
//   - ErrMalformed  : the content is not valid for the configured dialect
//
// =============================================================================

package loader

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/ledat/csv-to-cad-table/internal/config"
	"github.com/ledat/csv-to-cad-table/internal/table"
)

var (
	// ErrUnreadable wraps failures to open, read or decode the input file.
	ErrUnreadable = errors.New("file cannot be read")

	// ErrMalformed wraps content that cannot be parsed.
	ErrMalformed = errors.New("file is not valid delimited text")
)

// Load reads path with the loader matching its extension.
func Load(path string, settings config.CSVSettings) ([]table.Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, settings.Sheet)
	default:
		return LoadCSV(path, settings)
	}
}

// SplitHeader uses the first row as column names and returns the rest as
// data. Names are trimmed; blank names stay blank.
func SplitHeader(rows []table.Row) ([]string, []table.Row) {
	if len(rows) == 0 {
		return nil, rows
	}

	names := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		names[i] = strings.TrimSpace(name)
	}

	return names, rows[1:]
}

// ColumnCount returns the data width the table builder will use.
func ColumnCount(rows []table.Row) int {
	if len(rows) == 0 {
		return 0
	}
	return len(rows[0])
}

// toRows converts raw records without copying the cells.
func toRows(records [][]string) []table.Row {
	rows := make([]table.Row, len(records))
	for i, record := range records {
		rows[i] = table.Row(record)
	}
	return rows
}
