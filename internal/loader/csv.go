// =============================================================================
// CSV to CAD Table - CSV Loader
// =============================================================================
//
// LoadCSV parses a delimited text file into rows. It handles:
//   - Different delimiters (comma, pipe, tab, semicolon)
//   - Any WHATWG encoding label, with UTF-8 as the default
//   - A UTF-8 or UTF-16 byte order mark
//   - Records of differing length
//
// Blank lines are skipped by encoding/csv and never produce a row.
//
// =============================================================================

package loader

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/ledat/csv-to-cad-table/internal/config"
	"github.com/ledat/csv-to-cad-table/internal/table"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LoadCSV reads a CSV file and returns its records in file order.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: Dialect and encoding settings.
//
// RETURNS:
//   - The rows of the file. An empty file yields an empty slice.
//   - An error wrapping ErrUnreadable or ErrMalformed.
func LoadCSV(filePath string, settings config.CSVSettings) ([]table.Row, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer file.Close()

	rows, err := ReadCSV(file, settings)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}

	return rows, nil
}

// ReadCSV parses CSV content from r. See LoadCSV.
func ReadCSV(r io.Reader, settings config.CSVSettings) ([]table.Row, error) {
	decoded, err := decode(bufio.NewReader(r), settings.Encoding)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(decoded)
	if err := configureReader(csvReader, settings); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	records, err := csvReader.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	return toRows(records), nil
}

// decode wraps r so that it yields UTF-8.
func decode(r io.Reader, name string) (io.Reader, error) {
	if name == "" {
		name = "utf-8"
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unsupported encoding %q", ErrUnreadable, name)
	}

	// A BOM wins over the configured encoding and is stripped either way.
	// UTF-8 input is validated rather than repaired, BOM or not.
	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return transform.NewReader(r, transform.Chain(
			unicode.BOMOverride(transform.Nop),
			encoding.UTF8Validator,
		)), nil
	}

	return transform.NewReader(r, enc.NewDecoder()), nil
}

// configureReader applies the dialect settings to the CSV reader.
func configureReader(reader *csv.Reader, settings config.CSVSettings) error {
	switch settings.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	case "", ",", "comma":
		reader.Comma = ','
	default:
		comma, size := utf8.DecodeRuneInString(settings.Delimiter)
		if size != len(settings.Delimiter) {
			return fmt.Errorf("delimiter must be a single character, got %q", settings.Delimiter)
		}
		reader.Comma = comma
	}

	if settings.Comment != "" {
		comment, size := utf8.DecodeRuneInString(settings.Comment)
		if size != len(settings.Comment) {
			return fmt.Errorf("comment must be a single character, got %q", settings.Comment)
		}
		if comment == reader.Comma {
			return fmt.Errorf("comment character %q equals the delimiter", comment)
		}
		reader.Comment = comment
	}

	switch reader.Comma {
	case '"', '\r', '\n', utf8.RuneError:
		return fmt.Errorf("invalid delimiter %q", reader.Comma)
	}

	// Rows may differ in length; the table builder deals with that.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = settings.LazyQuotes
	reader.TrimLeadingSpace = settings.TrimLeadingSpace

	return nil
}
