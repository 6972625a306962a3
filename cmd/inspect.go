// =============================================================================
// CSV to CAD Table - Inspect Command
// =============================================================================
//
// This file defines the 'inspect' command. It reads a file the same way
// 'insert' does and reports how many data columns the table will have, so
// the right number of --column names can be given.
//
// COMMAND USAGE:
//   cadtable inspect --file F [--rows N] [--header-row]
//
// =============================================================================

package cmd

import (
	"fmt"
	"strconv"

	"github.com/ledat/csv-to-cad-table/internal/inserter"
	"github.com/ledat/csv-to-cad-table/internal/loader"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var inspectFlags struct {
	file      string
	rows      int
	headerRow bool
}

// inspectCmd represents the 'inspect' command.
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the column count and first rows of a file",
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	flags := inspectCmd.Flags()
	flags.StringVarP(&inspectFlags.file, "file", "f", "", "Path to the CSV or XLSX file")
	flags.IntVarP(&inspectFlags.rows, "rows", "n", 5, "Number of rows to preview")
	flags.BoolVar(&inspectFlags.headerRow, "header-row", false, "Treat the first row as column names")

	inspectCmd.MarkFlagRequired("file")
}

func runInspect(cmd *cobra.Command, args []string) error {
	rows, err := loader.Load(inspectFlags.file, appConfig.CSV)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), inserter.Describe(err))
		return errReported
	}

	var names []string
	if inspectFlags.headerRow {
		names, rows = loader.SplitHeader(rows)
	}

	columns := loader.ColumnCount(rows)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:    %s\n", inspectFlags.file)
	fmt.Fprintf(out, "Rows:    %d\n", len(rows))
	fmt.Fprintf(out, "Columns: %d\n", columns)

	if columns == 0 {
		return nil
	}

	header := make([]string, columns+1)
	header[0] = "#"
	for c := 1; c <= columns; c++ {
		header[c] = strconv.Itoa(c)
		if c-1 < len(names) && names[c-1] != "" {
			header[c] = names[c-1]
		}
	}

	limit := max(0, min(inspectFlags.rows, len(rows)))
	body := make([][]string, 0, limit)
	for r := 0; r < limit; r++ {
		line := make([]string, columns+1)
		line[0] = strconv.Itoa(r + 1)
		// Cells past the first row's width are not part of the table.
		for c := 0; c < columns && c < len(rows[r]); c++ {
			line[c+1] = rows[r][c]
		}
		body = append(body, line)
	}

	tw := tablewriter.NewWriter(out)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetHeader(header)
	tw.AppendBulk(body)
	tw.Render()

	if len(rows) > limit {
		fmt.Fprintf(out, "... %d more row(s)\n", len(rows)-limit)
	}

	return nil
}
