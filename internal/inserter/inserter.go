// =============================================================================
// CSV to CAD Table - Inserter
// =============================================================================
//
// This module runs the whole insert pipeline for one input file, from
// reading the file to creating the table in the chosen sink.
//
// PIPELINE:
//   1. Load the file (CSV, or an XLSX sheet)
//   2. Optionally take column names from the first row
//   3. Validate geometry and row shapes
//   4. Build the table layout
//   5. Open the sink and apply the layout
//   6. Close the sink, which writes file output
//
// Every failure ends up in Result.Error. Describe turns it into a message
// for the user. Nothing is retried.
//
// =============================================================================

package inserter

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/ledat/csv-to-cad-table/internal/config"
	"github.com/ledat/csv-to-cad-table/internal/loader"
	"github.com/ledat/csv-to-cad-table/internal/sink"
	"github.com/ledat/csv-to-cad-table/internal/table"
	"github.com/ledat/csv-to-cad-table/internal/validation"
	"github.com/ledat/csv-to-cad-table/pkg/utils"
	"github.com/sirupsen/logrus"
)

// ErrInvalid is returned when validation finds errors in the request.
var ErrInvalid = errors.New("invalid table settings")

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of inserting one file.
type Result struct {
	// FilePath is the input file.
	FilePath string

	// OutputFile is the written file. Empty for sinks that write no file
	// and when the insert failed.
	OutputFile string

	// Success indicates whether the table was created.
	Success bool

	// Error is nil on success.
	Error error

	// Layout is the built table, nil if building failed.
	Layout *table.Layout

	// Sink is the sink that received the table.
	Sink sink.Closer

	Stats Stats
}

// Stats contains statistics about one insert.
type Stats struct {
	// Rows and Columns count data rows and data columns.
	Rows    int
	Columns int

	// Cells is the number of cell assignments applied.
	Cells int

	// Warnings is the number of validation warnings logged.
	Warnings int

	ProcessingTime time.Duration
}

// =============================================================================
// REQUEST
// =============================================================================

// Request describes one insert.
type Request struct {
	// SourcePath is the CSV or XLSX file to read.
	SourcePath string

	// Spec holds the title, column names and geometry.
	Spec table.Spec

	// HeaderRow takes column names from the first file row. Names already
	// present in Spec win.
	HeaderRow bool

	// Sink overrides the configured sink kind when set.
	Sink string

	// OutputPath overrides the generated output file path when set.
	OutputPath string

	// DryRun builds and applies the table to an in-memory sink only.
	DryRun bool
}

// =============================================================================
// INSERTER
// =============================================================================

// Inserter runs insert requests against one configuration.
type Inserter struct {
	config *config.Config
	logger logrus.FieldLogger

	// out receives preview renderings.
	out io.Writer
}

// New creates an Inserter. out receives the preview sink output.
func New(cfg *config.Config, logger logrus.FieldLogger, out io.Writer) *Inserter {
	return &Inserter{
		config: cfg,
		logger: logger,
		out:    out,
	}
}

// Run executes the pipeline for req.
func (i *Inserter) Run(req Request) (result Result) {
	startTime := time.Now()
	result = Result{FilePath: req.SourcePath}
	log := i.logger.WithField("file", req.SourcePath)

	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	// =========================================================================
	// STEP 1: LOAD
	// =========================================================================

	rows, err := loader.Load(req.SourcePath, i.config.CSV)
	if err != nil {
		result.Error = err
		return result
	}
	log.WithField("records", len(rows)).Debug("Loaded input")

	// =========================================================================
	// STEP 2: HEADER ROW
	// =========================================================================

	spec := req.Spec
	if req.HeaderRow {
		var names []string
		names, rows = loader.SplitHeader(rows)
		if len(spec.ColumnNames) == 0 {
			spec.ColumnNames = names
		}
		log.WithField("columns", names).Debug("Using first row as column names")
	}

	// =========================================================================
	// STEP 3: VALIDATE
	// =========================================================================

	validationResult := validation.Validate(rows, spec)
	for _, ve := range validationResult.Errors {
		entry := log.WithFields(logrus.Fields{"field": ve.Field, "rule": ve.Rule})
		if ve.Severity == validation.SeverityError {
			entry.Error(ve.Error())
		} else {
			entry.Warn(ve.Error())
		}
	}
	result.Stats.Warnings = validationResult.WarningCount
	if len(validationResult.Errors) > 0 {
		log.Debug(validation.FormatErrors(validationResult.Errors))
	}

	if !validationResult.IsValid {
		result.Error = fmt.Errorf("%w: %s", ErrInvalid, validationResult.Fatal()[0].Error())
		return result
	}

	// =========================================================================
	// STEP 4: BUILD
	// =========================================================================

	layout, err := table.Build(rows, spec)
	if err != nil {
		result.Error = err
		return result
	}
	result.Layout = layout
	result.Stats.Rows = layout.DataRows()
	result.Stats.Columns = layout.DataColumns()
	log.WithFields(logrus.Fields{
		"rows":    layout.Shape.Rows,
		"columns": layout.Shape.Cols,
	}).Debug("Built table layout")

	// =========================================================================
	// STEP 5: OPEN SINK AND APPLY
	// =========================================================================

	kind := i.sinkKind(req)
	outputPath, err := i.outputPath(req, kind, spec.Title)
	if err != nil {
		result.Error = fmt.Errorf("%w: %w", sink.ErrUnavailable, err)
		return result
	}

	s, err := sink.Open(kind, sink.Options{
		Path:      outputPath,
		SheetName: i.config.XLSX.SheetName,
		Out:       i.out,
	})
	if err != nil {
		result.Error = err
		return result
	}
	result.Sink = s

	if err := table.Apply(layout, s); err != nil {
		s.Abort()
		if !errors.Is(err, sink.ErrUnavailable) {
			err = fmt.Errorf("%w: %w", sink.ErrUnavailable, err)
		}
		result.Error = err
		return result
	}
	result.Stats.Cells = len(layout.Assignments)

	// =========================================================================
	// STEP 6: CLOSE
	// =========================================================================

	if err := s.Close(); err != nil {
		result.Error = err
		return result
	}

	result.OutputFile = outputPath
	result.Success = true
	log.WithFields(logrus.Fields{
		"sink":   kind,
		"output": outputPath,
		"cells":  result.Stats.Cells,
	}).Info("Table created")

	return result
}

// sinkKind resolves the sink for req.
func (i *Inserter) sinkKind(req Request) string {
	switch {
	case req.DryRun:
		return sink.KindMemory
	case req.Sink != "":
		return req.Sink
	default:
		return i.config.Sink
	}
}

// outputPath returns the file the sink writes, creating its directory.
// Sinks that write no file get "". An explicit output path that already
// exists is refused.
func (i *Inserter) outputPath(req Request, kind, title string) (string, error) {
	ext := sink.Extension(kind)
	if ext == "" {
		return "", nil
	}

	path := req.OutputPath
	if path != "" && utils.FileExists(path) {
		return "", fmt.Errorf("output file %s already exists", path)
	}
	if path == "" {
		name := utils.GenerateOutputFileName(i.config.OutputNameFormat, ext, map[string]string{
			"title":  title,
			"source": utils.SourceName(req.SourcePath),
		})
		path = filepath.Join(i.config.OutputDir, name)
	}

	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return "", err
	}
	return path, nil
}

// =============================================================================
// MESSAGES
// =============================================================================

// Describe returns the message shown to the user for err.
func Describe(err error) string {
	switch {
	case err == nil:
		return "Table created."
	case errors.Is(err, table.ErrNoData):
		return "The file has no data."
	case errors.Is(err, loader.ErrUnreadable):
		return fmt.Sprintf("Cannot read the file: %v", err)
	case errors.Is(err, loader.ErrMalformed):
		return fmt.Sprintf("The file is not valid CSV: %v", err)
	case errors.Is(err, ErrInvalid):
		return fmt.Sprintf("Check the table settings: %v", err)
	case errors.Is(err, sink.ErrUnavailable):
		return fmt.Sprintf("Cannot create the table: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
