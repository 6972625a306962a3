// =============================================================================
// CSV to CAD Table - XLSX Loader
// =============================================================================
//
// Workbooks exported to CSV lose nothing the table needs, but users often
// have the .xlsx at hand. LoadXLSX reads one worksheet with excelize and
// returns it in the same shape as LoadCSV.
//
// Cell values are the formatted strings excelize reports, so numbers keep
// the display format of the workbook. Trailing empty cells of a row are not
// returned.
//
// =============================================================================

package loader

import (
	"fmt"

	"github.com/ledat/csv-to-cad-table/internal/table"
	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads the rows of a worksheet.
//
// PARAMETERS:
//   - filePath: The path to the workbook.
//   - sheetName: The worksheet to read. Empty means the first sheet.
//
// RETURNS:
//   - The rows of the sheet. An empty sheet yields an empty slice.
//   - An error wrapping ErrUnreadable or ErrMalformed.
func LoadXLSX(filePath, sheetName string) ([]table.Row, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, filePath, err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("%w: %s: workbook has no sheets", ErrMalformed, filePath)
		}
	}

	records, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: failed to read sheet %q: %w", ErrMalformed, filePath, sheetName, err)
	}

	return toRows(records), nil
}
