// =============================================================================
// CSV to CAD Table - Table Builder
// =============================================================================
//
// Build is a pure function: it performs no I/O and never touches a sink.
// The caller hands the resulting Layout to Apply once it is complete, so a
// failed build leaves no partial table behind.
//
// =============================================================================

package table

import (
	"errors"
	"strconv"
)

// ErrNoData is returned when the input has no rows or its first row has no
// cells. No layout is produced in that case.
var ErrNoData = errors.New("no data to build a table from")

// Build computes the table layout for rows.
//
// PARAMETERS:
//   - rows: The parsed records, in file order.
//   - spec: Title, column names and geometry from the user.
//
// RETURNS:
//   - The layout: grid shape (R+2, C+1), the title merge region and the
//     cell assignments in write order.
//   - ErrNoData if R or C is zero.
//
// The data width C is taken from the first row. Shorter rows only produce
// assignments for the cells they have. Cells past column C in a longer row
// are dropped so every assignment lies inside the grid.
func Build(rows []Row, spec Spec) (*Layout, error) {
	dataRows := len(rows)
	dataCols := 0
	if dataRows > 0 {
		dataCols = len(rows[0])
	}
	if dataRows == 0 || dataCols == 0 {
		return nil, ErrNoData
	}

	layout := &Layout{
		Shape: Shape{Rows: dataRows + 2, Cols: dataCols + 1},
		Merge: MergeRegion{FromRow: 0, FromCol: 0, ToRow: 0, ToCol: dataCols},
		Spec:  spec,
	}

	// Title, header row, then one index cell plus the data cells per record.
	capacity := 1 + (dataCols + 1) + dataRows*(dataCols+1)
	out := make([]CellAssignment, 0, capacity)

	out = append(out, CellAssignment{Row: 0, Col: 0, Text: spec.Title})

	out = append(out, CellAssignment{Row: 1, Col: 0, Text: IndexLabel})
	for col := 1; col <= dataCols; col++ {
		name := ""
		if col-1 < len(spec.ColumnNames) {
			name = spec.ColumnNames[col-1]
		}
		out = append(out, CellAssignment{Row: 1, Col: col, Text: name})
	}

	for r, row := range rows {
		gridRow := r + 2
		out = append(out, CellAssignment{Row: gridRow, Col: 0, Text: strconv.Itoa(r + 1)})
		for p, cell := range row {
			if p >= dataCols {
				break
			}
			out = append(out, CellAssignment{Row: gridRow, Col: p + 1, Text: cell})
		}
	}

	layout.Assignments = out
	return layout, nil
}
