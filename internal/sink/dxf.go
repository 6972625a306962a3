package sink

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledat/csv-to-cad-table/internal/table"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/entity"
)

// dxfLayer holds every entity the sink writes.
const dxfLayer = "TABLE"

// DXF writes tables as an AutoCAD ASCII drawing: LINE entities for the
// grid and middle-centred TEXT entities for the cells. The insertion point
// is the top-left corner and the table grows downward, as an AutoCAD table
// does. Several grids may share one drawing.
type DXF struct {
	path  string
	grids []*dxfGrid
}

// NewDXF returns a sink that writes path on Close.
func NewDXF(path string) *DXF {
	return &DXF{path: path}
}

// CreateGrid implements table.Sink.
func (d *DXF) CreateGrid(at table.Point, rows, cols int, rowHeight, colWidth float64) (table.Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("grid must have at least one cell, got %dx%d", rows, cols)
	}
	if rowHeight <= 0 || colWidth <= 0 {
		return nil, fmt.Errorf("row height and column width must be positive")
	}

	inner, err := newMemoryGrid(at, rows, cols, rowHeight, colWidth)
	if err != nil {
		return nil, err
	}
	g := &dxfGrid{MemoryGrid: inner}
	d.grids = append(d.grids, g)
	return g, nil
}

// Close writes the drawing. Closing before CreateGrid writes nothing.
func (d *DXF) Close() error {
	if len(d.grids) == 0 {
		return nil
	}

	dwg, err := d.drawing()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err := dwg.SaveAs(d.path); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", ErrUnavailable, d.path, err)
	}
	return nil
}

// Abort drops the grids without writing anything.
func (d *DXF) Abort() {
	d.grids = nil
}

// Encode writes the drawing to w.
func (d *DXF) Encode(w io.Writer) error {
	dwg, err := d.drawing()
	if err != nil {
		return err
	}
	_, err = dwg.WriteTo(w)
	return err
}

// drawing builds the document holding every grid.
func (d *DXF) drawing() (*drawing.Drawing, error) {
	dwg := dxf.NewDrawing()
	if _, err := dwg.AddLayer(dxfLayer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return nil, err
	}

	for _, g := range d.grids {
		if err := g.writeLines(dwg); err != nil {
			return nil, err
		}
		if err := g.writeTexts(dwg); err != nil {
			return nil, err
		}
	}
	return dwg, nil
}

type dxfGrid struct {
	*MemoryGrid
}

// covered reports whether cells (r1,c1) and (r2,c2) sit in one merge.
func (g *dxfGrid) covered(r1, c1, r2, c2 int) bool {
	m, ok := g.MergeAt(r1, c1)
	if !ok {
		return false
	}
	return r2 >= m.FromRow && r2 <= m.ToRow && c2 >= m.FromCol && c2 <= m.ToCol
}

func (g *dxfGrid) x(col int) float64 {
	return g.At.X + float64(col)*g.ColWidth
}

func (g *dxfGrid) y(row int) float64 {
	return g.At.Y - float64(row)*g.RowHeight
}

// writeLines draws every cell edge that is not interior to a merge.
// Consecutive segments on one line are joined.
func (g *dxfGrid) writeLines(dwg *drawing.Drawing) error {
	// Horizontal edge r lies between rows r-1 and r.
	for r := 0; r <= g.Rows; r++ {
		start := -1
		for c := 0; c <= g.Cols; c++ {
			visible := c < g.Cols && (r == 0 || r == g.Rows || !g.covered(r-1, c, r, c))
			switch {
			case visible && start < 0:
				start = c
			case !visible && start >= 0:
				if _, err := dwg.Line(g.x(start), g.y(r), 0, g.x(c), g.y(r), 0); err != nil {
					return err
				}
				start = -1
			}
		}
	}

	// Vertical edge c lies between columns c-1 and c.
	for c := 0; c <= g.Cols; c++ {
		start := -1
		for r := 0; r <= g.Rows; r++ {
			visible := r < g.Rows && (c == 0 || c == g.Cols || !g.covered(r, c-1, r, c))
			switch {
			case visible && start < 0:
				start = r
			case !visible && start >= 0:
				if _, err := dwg.Line(g.x(c), g.y(start), 0, g.x(c), g.y(r), 0); err != nil {
					return err
				}
				start = -1
			}
		}
	}
	return nil
}

// writeTexts places each non-empty cell at the centre of its cell, or of
// its merge region when it is the region's top-left cell.
func (g *dxfGrid) writeTexts(dwg *drawing.Drawing) error {
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			text := g.Cells[r][c]
			if text == "" {
				continue
			}

			toRow, toCol := r, c
			if m, ok := g.MergeAt(r, c); ok {
				if m.FromRow != r || m.FromCol != c {
					continue
				}
				toRow, toCol = m.ToRow, m.ToCol
			}

			height := g.TextHeights[r]
			if height <= 0 {
				height = g.RowHeight / 2
			}
			cx := (g.x(c) + g.x(toCol+1)) / 2
			cy := (g.y(r) + g.y(toRow+1)) / 2
			t, err := dwg.Text(dxfEscape(text), cx, cy, 0, height)
			if err != nil {
				return err
			}
			t.Anchor(entity.CENTER_CENTER)
		}
	}
	return nil
}

// dxfEscape makes value safe for a single-line ASCII group value. Runes
// outside ASCII use AutoCAD's \U+XXXX notation.
func dxfEscape(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch {
		case r == '\r' || r == '\n':
			b.WriteByte(' ')
		case r < 0x20:
			continue
		case r < 0x80:
			b.WriteRune(r)
		case r <= 0xFFFF:
			fmt.Fprintf(&b, `\U+%04X`, r)
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}
