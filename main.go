// =============================================================================
// CSV to CAD Table - Main Entry Point
// =============================================================================
//
// USAGE:
//   cadtable insert   - Create a table from a CSV file
//   cadtable inspect  - Show the columns and first rows of a CSV file
//   cadtable version  - Display the application version
//
// ARCHITECTURE:
//   - cmd/      : CLI command definitions (Cobra)
//   - internal/ : loading, layout, validation, sinks and the insert pipeline
//   - pkg/      : shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ledat/csv-to-cad-table/cmd"
)

func main() {
	cmd.Execute()
}
