package sink

import (
	"fmt"
	"io"

	"github.com/ledat/csv-to-cad-table/internal/table"
	"github.com/olekukonko/tablewriter"
)

// Preview renders grids as text tables on Close. The first grid row is
// printed as a heading line, the second as the table header.
type Preview struct {
	out   io.Writer
	grids []*MemoryGrid
}

// NewPreview returns a sink that renders to out.
func NewPreview(out io.Writer) *Preview {
	return &Preview{out: out}
}

// CreateGrid implements table.Sink.
func (p *Preview) CreateGrid(at table.Point, rows, cols int, rowHeight, colWidth float64) (table.Grid, error) {
	g, err := newMemoryGrid(at, rows, cols, rowHeight, colWidth)
	if err != nil {
		return nil, err
	}
	p.grids = append(p.grids, g)
	return g, nil
}

// Close renders every grid.
func (p *Preview) Close() error {
	for _, g := range p.grids {
		if err := Render(p.out, g.Cells); err != nil {
			return err
		}
	}
	return nil
}

// Abort drops the grids without rendering them.
func (p *Preview) Abort() {
	p.grids = nil
}

// Render writes cells as a titled text table.
func Render(out io.Writer, cells [][]string) error {
	if len(cells) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(out, cells[0][0]); err != nil {
		return err
	}

	tw := tablewriter.NewWriter(out)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	if len(cells) > 1 {
		tw.SetHeader(cells[1])
	}
	if len(cells) > 2 {
		tw.AppendBulk(cells[2:])
	}
	tw.Render()

	return nil
}
