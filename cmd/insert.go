// =============================================================================
// CSV to CAD Table - Insert Command
// =============================================================================
//
// This file defines the 'insert' command, which reads one file and creates
// a table from it in the selected sink.
//
// COMMAND USAGE:
//   cadtable insert --file F [flags]
//
// FLAGS:
//   --file          : The CSV or XLSX file to read (required)
//   --title         : Text of the merged title row
//   --column        : A column name; repeat once per data column
//   --header-row    : Take column names from the first row of the file
//   --x, --y        : Insertion point of the table's top-left corner
//   --row-height    : Height of every row
//   --column-width  : Width of every column
//   --text-height   : Text size of every cell
//   --sink          : xlsx, dxf or preview
//   --output        : Output file path for xlsx and dxf
//   --dry-run       : Build the table in memory without writing anything
//
// Flags left unset fall back to the configuration file.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ledat/csv-to-cad-table/internal/inserter"
	"github.com/ledat/csv-to-cad-table/internal/table"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var insertFlags struct {
	file        string
	title       string
	columns     []string
	headerRow   bool
	x, y        float64
	rowHeight   float64
	columnWidth float64
	textHeight  float64
	sink        string
	output      string
	dryRun      bool
}

// =============================================================================
// INSERT COMMAND DEFINITION
// =============================================================================

// insertCmd represents the 'insert' command.
var insertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Create a table from a CSV file",
	Long: `The insert command reads a CSV file and creates a table with one row per
record. The first row of the table holds the merged title, the second holds
"TT" and the column names, and every following row starts with its 1-based
index.

The number of data columns is the length of the first record. Use
'cadtable inspect' to see it before choosing column names.`,
	RunE: runInsert,
}

func init() {
	rootCmd.AddCommand(insertCmd)

	flags := insertCmd.Flags()
	flags.StringVarP(&insertFlags.file, "file", "f", "", "Path to the CSV or XLSX file")
	flags.StringVarP(&insertFlags.title, "title", "t", "", "Table title (default from config)")
	flags.StringArrayVarP(&insertFlags.columns, "column", "c", nil, "Column name, repeat for each column")
	flags.BoolVar(&insertFlags.headerRow, "header-row", false, "Use the first row of the file as column names")
	flags.Float64Var(&insertFlags.x, "x", 0, "Insertion point X")
	flags.Float64Var(&insertFlags.y, "y", 0, "Insertion point Y")
	flags.Float64Var(&insertFlags.rowHeight, "row-height", 0, "Row height (default from config)")
	flags.Float64Var(&insertFlags.columnWidth, "column-width", 0, "Column width (default from config)")
	flags.Float64Var(&insertFlags.textHeight, "text-height", 0, "Text height (default from config)")
	flags.StringVarP(&insertFlags.sink, "sink", "s", "", "Sink: xlsx, dxf or preview (default from config)")
	flags.StringVarP(&insertFlags.output, "output", "o", "", "Output file path (default generated in output_dir)")
	flags.BoolVar(&insertFlags.dryRun, "dry-run", false, "Build the table without writing output")

	insertCmd.MarkFlagRequired("file")
}

// =============================================================================
// MAIN INSERT FUNCTION
// =============================================================================

func runInsert(cmd *cobra.Command, args []string) error {
	req := inserter.Request{
		SourcePath: insertFlags.file,
		Spec:       insertSpec(cmd),
		HeaderRow:  insertFlags.headerRow,
		Sink:       insertFlags.sink,
		OutputPath: insertFlags.output,
		DryRun:     insertFlags.dryRun,
	}

	result := inserter.New(appConfig, logger, cmd.OutOrStdout()).Run(req)

	if !result.Success {
		fmt.Fprintln(cmd.ErrOrStderr(), inserter.Describe(result.Error))
		return errReported
	}

	out := cmd.OutOrStdout()
	at := req.Spec.InsertionPoint
	fmt.Fprintf(out, "Table created from %s at (%g, %g): %d row(s) x %d column(s).\n",
		result.FilePath, at.X, at.Y, result.Stats.Rows, result.Stats.Columns)
	if result.OutputFile != "" {
		fmt.Fprintf(out, "Output: %s\n", result.OutputFile)
	}
	logger.WithField("duration", result.Stats.ProcessingTime).Debug("Insert finished")

	return nil
}

// insertSpec merges the command-line flags over the configured layout.
func insertSpec(cmd *cobra.Command) table.Spec {
	layout := appConfig.Layout
	spec := table.Spec{
		Title:          layout.Title,
		ColumnNames:    insertFlags.columns,
		RowHeight:      layout.RowHeight,
		ColumnWidth:    layout.ColumnWidth,
		TextHeight:     layout.TextHeight,
		InsertionPoint: table.Point{X: insertFlags.x, Y: insertFlags.y},
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		spec.Title = insertFlags.title
	}
	if flags.Changed("row-height") {
		spec.RowHeight = insertFlags.rowHeight
	}
	if flags.Changed("column-width") {
		spec.ColumnWidth = insertFlags.columnWidth
	}
	if flags.Changed("text-height") {
		spec.TextHeight = insertFlags.textHeight
	}

	return spec
}
