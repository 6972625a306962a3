// =============================================================================
// CSV to CAD Table - Table Sinks
// =============================================================================
//
// A sink materialises a table.Layout. The package provides:
//   - xlsx    : an Excel workbook (excelize)
//   - dxf     : an AutoCAD R12 ASCII drawing
//   - preview : a text rendering for the terminal (tablewriter)
//   - memory  : an in-memory recorder for dry runs and tests
//
// File sinks write nothing until Close is called.
//
// =============================================================================

package sink

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ledat/csv-to-cad-table/internal/table"
)

// ErrUnavailable is returned when a sink cannot be created or its output
// cannot be written.
var ErrUnavailable = errors.New("table sink unavailable")

// Supported sink kinds.
const (
	KindXLSX    = "xlsx"
	KindDXF     = "dxf"
	KindPreview = "preview"
	KindMemory  = "memory"
)

// Options configures Open.
type Options struct {
	// Path is the output file for file sinks.
	Path string

	// SheetName is the worksheet name for the xlsx sink.
	SheetName string

	// Out receives the preview rendering. Defaults to os.Stdout.
	Out io.Writer
}

// Closer is a sink with a final step. Close writes the output; Abort
// releases the sink without writing anything.
type Closer interface {
	table.Sink
	io.Closer
	Abort()
}

// Open creates the sink named kind.
func Open(kind string, opts Options) (Closer, error) {
	switch kind {
	case KindXLSX:
		return NewXLSX(opts.Path, opts.SheetName), nil
	case KindDXF:
		return NewDXF(opts.Path), nil
	case KindPreview:
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		return NewPreview(out), nil
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: unknown sink %q", ErrUnavailable, kind)
	}
}

// Extension returns the output file extension of kind, or "" for sinks
// that write no file.
func Extension(kind string) string {
	switch kind {
	case KindXLSX:
		return ".xlsx"
	case KindDXF:
		return ".dxf"
	default:
		return ""
	}
}

// checkBounds reports a cell outside a rows x cols grid.
func checkBounds(rows, cols, row, col int) error {
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return fmt.Errorf("cell (%d,%d) outside %dx%d grid", row, col, rows, cols)
	}
	return nil
}

// checkRegion validates an inclusive merge rectangle.
func checkRegion(rows, cols, fromRow, fromCol, toRow, toCol int) error {
	if fromRow > toRow || fromCol > toCol {
		return fmt.Errorf("merge region (%d,%d)-(%d,%d) is inverted", fromRow, fromCol, toRow, toCol)
	}
	if err := checkBounds(rows, cols, fromRow, fromCol); err != nil {
		return err
	}
	return checkBounds(rows, cols, toRow, toCol)
}
