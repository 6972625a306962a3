// =============================================================================
// CSV to CAD Table - Table Types
// =============================================================================
//
// This package turns parsed rows into a table layout: the grid shape, the
// merged title region, and the ordered list of cell texts a table sink must
// write. It also defines the Sink interface that CAD hosts and file writers
// implement.
//
// GRID LAYOUT:
//   Row 0        : title, merged across every column
//   Row 1        : "TT" followed by the column names
//   Rows 2..R+1  : 1-based index followed by the data cells
//
// =============================================================================

package table

// IndexLabel is the header text of the synthetic index column.
const IndexLabel = "TT"

// Row is one parsed record. Cells are kept as text.
type Row []string

// Point is an insertion point in drawing units.
type Point struct {
	X float64
	Y float64
}

// Spec holds the user-supplied parameters for a single table.
type Spec struct {
	// Title is written into the merged first row.
	Title string

	// ColumnNames label the data columns left to right. It may be shorter
	// or longer than the data width.
	ColumnNames []string

	// RowHeight, ColumnWidth and TextHeight are in drawing units and must
	// be positive.
	RowHeight   float64
	ColumnWidth float64
	TextHeight  float64

	// InsertionPoint is the top-left corner of the table.
	InsertionPoint Point
}

// CellAssignment is one text write into the grid.
type CellAssignment struct {
	Row  int
	Col  int
	Text string
}

// MergeRegion is an inclusive rectangle of cells merged into one.
type MergeRegion struct {
	FromRow int
	FromCol int
	ToRow   int
	ToCol   int
}

// Shape is the number of rows and columns of the grid.
type Shape struct {
	Rows int
	Cols int
}

// Layout is everything a sink needs to materialise the table.
type Layout struct {
	Shape       Shape
	Merge       MergeRegion
	Assignments []CellAssignment

	// Spec carries the geometry through to the sink.
	Spec Spec
}

// DataRows returns the number of data records in the layout.
func (l *Layout) DataRows() int {
	return l.Shape.Rows - 2
}

// DataColumns returns the number of data columns in the layout.
func (l *Layout) DataColumns() int {
	return l.Shape.Cols - 1
}
