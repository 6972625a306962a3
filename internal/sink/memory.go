package sink

import (
	"fmt"

	"github.com/ledat/csv-to-cad-table/internal/table"
)

// Memory records grids in memory. It behaves like a strict CAD host: a
// merge fails if any covered cell other than the top-left one already
// holds text.
type Memory struct {
	Grids []*MemoryGrid
}

// NewMemory returns an empty recorder.
func NewMemory() *Memory {
	return &Memory{}
}

// CreateGrid implements table.Sink.
func (m *Memory) CreateGrid(at table.Point, rows, cols int, rowHeight, colWidth float64) (table.Grid, error) {
	grid, err := newMemoryGrid(at, rows, cols, rowHeight, colWidth)
	if err != nil {
		return nil, err
	}
	m.Grids = append(m.Grids, grid)
	return grid, nil
}

// Close implements io.Closer.
func (m *Memory) Close() error {
	return nil
}

// Abort keeps the recorded grids so a failed run can be inspected.
func (m *Memory) Abort() {}

// Last returns the most recently created grid, or nil.
func (m *Memory) Last() *MemoryGrid {
	if len(m.Grids) == 0 {
		return nil
	}
	return m.Grids[len(m.Grids)-1]
}

// MemoryGrid is a recorded table.
type MemoryGrid struct {
	At          table.Point
	Rows        int
	Cols        int
	RowHeight   float64
	ColWidth    float64
	TextHeights []float64
	Merges      []table.MergeRegion
	Cells       [][]string

	set [][]bool
}

func newMemoryGrid(at table.Point, rows, cols int, rowHeight, colWidth float64) (*MemoryGrid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("grid must have at least one cell, got %dx%d", rows, cols)
	}

	g := &MemoryGrid{
		At:          at,
		Rows:        rows,
		Cols:        cols,
		RowHeight:   rowHeight,
		ColWidth:    colWidth,
		TextHeights: make([]float64, rows),
		Cells:       make([][]string, rows),
		set:         make([][]bool, rows),
	}
	for r := range g.Cells {
		g.Cells[r] = make([]string, cols)
		g.set[r] = make([]bool, cols)
	}
	return g, nil
}

// SetTextHeight implements table.Grid.
func (g *MemoryGrid) SetTextHeight(row int, height float64) error {
	if err := checkBounds(g.Rows, g.Cols, row, 0); err != nil {
		return err
	}
	g.TextHeights[row] = height
	return nil
}

// MergeCells implements table.Grid.
func (g *MemoryGrid) MergeCells(fromRow, fromCol, toRow, toCol int) error {
	if err := checkRegion(g.Rows, g.Cols, fromRow, fromCol, toRow, toCol); err != nil {
		return err
	}
	for r := fromRow; r <= toRow; r++ {
		for c := fromCol; c <= toCol; c++ {
			if (r != fromRow || c != fromCol) && g.set[r][c] {
				return fmt.Errorf("cannot merge over cell (%d,%d) holding text", r, c)
			}
		}
	}
	g.Merges = append(g.Merges, table.MergeRegion{FromRow: fromRow, FromCol: fromCol, ToRow: toRow, ToCol: toCol})
	return nil
}

// SetCellText implements table.Grid.
func (g *MemoryGrid) SetCellText(row, col int, text string) error {
	if err := checkBounds(g.Rows, g.Cols, row, col); err != nil {
		return err
	}
	g.Cells[row][col] = text
	g.set[row][col] = true
	return nil
}

// MergeAt returns the merge region covering (row, col).
func (g *MemoryGrid) MergeAt(row, col int) (table.MergeRegion, bool) {
	for _, m := range g.Merges {
		if row >= m.FromRow && row <= m.ToRow && col >= m.FromCol && col <= m.ToCol {
			return m, true
		}
	}
	return table.MergeRegion{}, false
}
