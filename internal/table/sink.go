package table

import "fmt"

// Sink is the host that owns real table creation: a CAD document, a
// workbook, a terminal. CreateGrid returns the handle the remaining calls
// go through.
type Sink interface {
	CreateGrid(at Point, rows, cols int, rowHeight, colWidth float64) (Grid, error)
}

// Grid is a table created by a Sink.
type Grid interface {
	SetTextHeight(row int, height float64) error
	MergeCells(fromRow, fromCol, toRow, toCol int) error
	SetCellText(row, col int, text string) error
}

// Apply replays layout against sink. The title region is merged before any
// text is written, since some hosts refuse to merge cells that already hold
// text.
func Apply(layout *Layout, sink Sink) error {
	spec := layout.Spec
	grid, err := sink.CreateGrid(spec.InsertionPoint, layout.Shape.Rows, layout.Shape.Cols, spec.RowHeight, spec.ColumnWidth)
	if err != nil {
		return fmt.Errorf("failed to create grid: %w", err)
	}

	for row := 0; row < layout.Shape.Rows; row++ {
		if err := grid.SetTextHeight(row, spec.TextHeight); err != nil {
			return fmt.Errorf("failed to set text height on row %d: %w", row, err)
		}
	}

	m := layout.Merge
	if err := grid.MergeCells(m.FromRow, m.FromCol, m.ToRow, m.ToCol); err != nil {
		return fmt.Errorf("failed to merge title row: %w", err)
	}

	for _, a := range layout.Assignments {
		if err := grid.SetCellText(a.Row, a.Col, a.Text); err != nil {
			return fmt.Errorf("failed to set cell (%d,%d): %w", a.Row, a.Col, err)
		}
	}

	return nil
}
