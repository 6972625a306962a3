package sink

import (
	"fmt"
	"math"

	"github.com/ledat/csv-to-cad-table/internal/table"
	"github.com/xuri/excelize/v2"
)

// Drawing units are scaled so the default layout (2.5 / 15 / 1) lands on
// Excel's default row height, a readable column and an 11pt font.
const (
	xlsxPointsPerRowUnit  = 6
	xlsxCharsPerColUnit   = 1
	xlsxPointsPerTextUnit = 11
)

// XLSX writes the table into a single worksheet of a new workbook.
// The insertion point is rounded to a whole cell offset: X columns to the
// right and, since drawing Y grows upward, -Y rows down.
type XLSX struct {
	path      string
	sheetName string
	file      *excelize.File
}

// NewXLSX returns a sink that saves to path on Close.
func NewXLSX(path, sheetName string) *XLSX {
	if sheetName == "" {
		sheetName = "Table"
	}
	return &XLSX{path: path, sheetName: sheetName}
}

// CreateGrid implements table.Sink. A workbook holds one table.
func (x *XLSX) CreateGrid(at table.Point, rows, cols int, rowHeight, colWidth float64) (table.Grid, error) {
	if x.file != nil {
		return nil, fmt.Errorf("workbook %s already holds a table", x.path)
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("grid must have at least one cell, got %dx%d", rows, cols)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), x.sheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	g := &xlsxGrid{
		file:   f,
		sheet:  x.sheetName,
		rows:   rows,
		cols:   cols,
		rowOff: cellOffset(-at.Y),
		colOff: cellOffset(at.X),
		styles: make(map[float64]int),
	}

	first, err := excelize.ColumnNumberToName(g.colOff + 1)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	last, err := excelize.ColumnNumberToName(g.colOff + cols)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	width := math.Min(colWidth*xlsxCharsPerColUnit, excelize.MaxColumnWidth)
	if err := f.SetColWidth(x.sheetName, first, last, width); err != nil {
		_ = f.Close()
		return nil, err
	}

	height := math.Min(rowHeight*xlsxPointsPerRowUnit, excelize.MaxRowHeight)
	for r := 1; r <= rows; r++ {
		if err := f.SetRowHeight(x.sheetName, g.rowOff+r, height); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	x.file = f
	return g, nil
}

// Close saves the workbook. Closing before CreateGrid writes nothing.
func (x *XLSX) Close() error {
	if x.file == nil {
		return nil
	}
	defer x.file.Close()

	if err := x.file.SaveAs(x.path); err != nil {
		return fmt.Errorf("%w: failed to save %s: %w", ErrUnavailable, x.path, err)
	}
	return nil
}

// Abort discards the workbook without saving it.
func (x *XLSX) Abort() {
	if x.file == nil {
		return
	}
	_ = x.file.Close()
	x.file = nil
}

type xlsxGrid struct {
	file   *excelize.File
	sheet  string
	rows   int
	cols   int
	rowOff int
	colOff int

	// styles caches one style per text height.
	styles map[float64]int
}

// cell returns the A1 name of a grid cell.
func (g *xlsxGrid) cell(row, col int) (string, error) {
	if err := checkBounds(g.rows, g.cols, row, col); err != nil {
		return "", err
	}
	return excelize.CoordinatesToCellName(g.colOff+col+1, g.rowOff+row+1)
}

func (g *xlsxGrid) SetTextHeight(row int, height float64) error {
	first, err := g.cell(row, 0)
	if err != nil {
		return err
	}
	last, err := g.cell(row, g.cols-1)
	if err != nil {
		return err
	}

	id, ok := g.styles[height]
	if !ok {
		size := math.Round(height * xlsxPointsPerTextUnit)
		size = math.Max(excelize.MinFontSize, math.Min(size, excelize.MaxFontSize))
		id, err = g.file.NewStyle(&excelize.Style{
			Font: &excelize.Font{Size: size},
			Alignment: &excelize.Alignment{
				Horizontal: "center",
				Vertical:   "center",
				WrapText:   true,
			},
			Border: []excelize.Border{
				{Type: "left", Color: "000000", Style: 1},
				{Type: "top", Color: "000000", Style: 1},
				{Type: "right", Color: "000000", Style: 1},
				{Type: "bottom", Color: "000000", Style: 1},
			},
		})
		if err != nil {
			return err
		}
		g.styles[height] = id
	}

	return g.file.SetCellStyle(g.sheet, first, last, id)
}

func (g *xlsxGrid) MergeCells(fromRow, fromCol, toRow, toCol int) error {
	if err := checkRegion(g.rows, g.cols, fromRow, fromCol, toRow, toCol); err != nil {
		return err
	}
	topLeft, err := g.cell(fromRow, fromCol)
	if err != nil {
		return err
	}
	bottomRight, err := g.cell(toRow, toCol)
	if err != nil {
		return err
	}
	return g.file.MergeCell(g.sheet, topLeft, bottomRight)
}

func (g *xlsxGrid) SetCellText(row, col int, text string) error {
	name, err := g.cell(row, col)
	if err != nil {
		return err
	}
	return g.file.SetCellStr(g.sheet, name, text)
}

// cellOffset turns a drawing coordinate into a non-negative cell count.
func cellOffset(v float64) int {
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	return n
}
