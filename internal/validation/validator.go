// =============================================================================
// CSV to CAD Table - Validation
// =============================================================================
//
// This module checks a table request before anything is built:
//   - Geometry: row height, column width and text height must be positive
//   - Fit: text taller than its row is reported
//   - Shape: rows shorter or longer than the first row are reported
//   - Names: more or fewer column names than data columns are reported
//
// ERROR HANDLING:
//   - Problems are collected, not returned one at a time
//   - "error" severity stops the insert, "warning" is only logged
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ledat/csv-to-cad-table/internal/table"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single validation problem.
type ValidationError struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// Field names the offending setting, or "row" for data problems.
	Field string

	// Value is the offending value, rendered as text.
	Value string

	// Rule is the rule that was violated.
	Rule string

	// Message is a human-readable error message.
	Message string

	// RowNumber is the 1-based data row, 0 when not row related.
	RowNumber int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.RowNumber > 0 {
		return fmt.Sprintf("[%s] Row %d: %s", strings.ToUpper(e.Severity), e.RowNumber, e.Message)
	}
	return fmt.Sprintf("[%s] Field '%s': %s (value: '%s')",
		strings.ToUpper(e.Severity),
		e.Field,
		e.Message,
		e.Value,
	)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no errors of SeverityError.
	IsValid bool

	// Errors contains every problem found, warnings included.
	Errors []*ValidationError

	ErrorCount   int
	WarningCount int
}

func (r *ValidationResult) add(e *ValidationError) {
	r.Errors = append(r.Errors, e)
	if e.Severity == SeverityError {
		r.ErrorCount++
		r.IsValid = false
	} else {
		r.WarningCount++
	}
}

// Fatal returns only the errors of SeverityError.
func (r *ValidationResult) Fatal() []*ValidationError {
	var fatal []*ValidationError
	for _, e := range r.Errors {
		if e.Severity == SeverityError {
			fatal = append(fatal, e)
		}
	}
	return fatal
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// Validate checks spec and rows.
//
// PARAMETERS:
//   - rows: The parsed records.
//   - spec: The requested table parameters.
//
// RETURNS:
//   - A ValidationResult. It is never nil.
func Validate(rows []table.Row, spec table.Spec) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	validateGeometry(result, spec)

	if len(rows) == 0 {
		return result
	}

	width := len(rows[0])
	for i, row := range rows {
		switch {
		case len(row) < width:
			result.add(&ValidationError{
				Severity:  SeverityWarning,
				Field:     "row",
				Value:     fmt.Sprint(len(row)),
				Rule:      "short_row",
				Message:   fmt.Sprintf("has %d of %d cells, the rest stay empty", len(row), width),
				RowNumber: i + 1,
			})
		case len(row) > width:
			result.add(&ValidationError{
				Severity:  SeverityWarning,
				Field:     "row",
				Value:     fmt.Sprint(len(row)),
				Rule:      "long_row",
				Message:   fmt.Sprintf("has %d cells, only the first %d are used", len(row), width),
				RowNumber: i + 1,
			})
		}
	}

	switch names := len(spec.ColumnNames); {
	case names < width:
		result.add(&ValidationError{
			Severity: SeverityWarning,
			Field:    "column_names",
			Value:    fmt.Sprint(names),
			Rule:     "missing_names",
			Message:  fmt.Sprintf("%d column(s) have no name", width-names),
		})
	case names > width:
		result.add(&ValidationError{
			Severity: SeverityWarning,
			Field:    "column_names",
			Value:    fmt.Sprint(names),
			Rule:     "extra_names",
			Message:  fmt.Sprintf("%d name(s) beyond the %d data columns are ignored", names-width, width),
		})
	}

	return result
}

// validateGeometry checks the numeric layout parameters.
func validateGeometry(result *ValidationResult, spec table.Spec) {
	sizes := []struct {
		field string
		value float64
	}{
		{"row_height", spec.RowHeight},
		{"column_width", spec.ColumnWidth},
		{"text_height", spec.TextHeight},
	}

	for _, size := range sizes {
		if size.value <= 0 {
			result.add(&ValidationError{
				Severity: SeverityError,
				Field:    size.field,
				Value:    fmt.Sprint(size.value),
				Rule:     "positive",
				Message:  "must be greater than zero",
			})
		}
	}

	if spec.TextHeight > 0 && spec.RowHeight > 0 && spec.TextHeight > spec.RowHeight {
		result.add(&ValidationError{
			Severity: SeverityWarning,
			Field:    "text_height",
			Value:    fmt.Sprint(spec.TextHeight),
			Rule:     "fits_row",
			Message:  fmt.Sprintf("is taller than the row height %v", spec.RowHeight),
		})
	}
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors for display or logging.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d problem(s):\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}
