package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportRow is one raw (article, quantity) pair read from an uploaded
// file, before any catalog resolution.
type ImportRow struct {
	Article  string
	Quantity string
}

// ImportParseError reports a file that could not be read as a
// two-column table at all. It is the only import-time hard failure and
// always occurs before any store mutation.
type ImportParseError struct {
	Cause error
}

func (e *ImportParseError) Error() string {
	return fmt.Sprintf("import file is not a readable two-column table: %v", e.Cause)
}

func (e *ImportParseError) Unwrap() error {
	return e.Cause
}

// ParseImportFile reads an uploaded .csv or .xlsx file into raw import
// rows. Column A is the article, column B the quantity text; missing
// cells read as empty strings. Row content is not validated here.
func ParseImportFile(file io.Reader, fileName string) ([]ImportRow, error) {
	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		return parseImportCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		return parseImportExcel(file)
	default:
		return nil, &ImportParseError{Cause: fmt.Errorf("unsupported file format %q: must be .csv or .xlsx", fileName)}
	}
}

func parseImportCSV(file io.Reader) ([]ImportRow, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, &ImportParseError{Cause: fmt.Errorf("failed to parse CSV: %w", err)}
	}
	if len(allRows) == 0 {
		return nil, &ImportParseError{Cause: fmt.Errorf("file contains no rows")}
	}
	return toImportRows(allRows), nil
}

func parseImportExcel(file io.Reader) ([]ImportRow, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, &ImportParseError{Cause: fmt.Errorf("failed to open Excel file: %w", err)}
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, &ImportParseError{Cause: fmt.Errorf("failed to read sheet: %w", err)}
	}
	if len(rows) == 0 {
		return nil, &ImportParseError{Cause: fmt.Errorf("file contains no rows")}
	}
	return toImportRows(rows), nil
}

func toImportRows(raw [][]string) []ImportRow {
	out := make([]ImportRow, 0, len(raw))
	for _, cells := range raw {
		var row ImportRow
		if len(cells) > 0 {
			row.Article = strings.TrimSpace(cells[0])
		}
		if len(cells) > 1 {
			row.Quantity = strings.TrimSpace(cells[1])
		}
		out = append(out, row)
	}
	return out
}
