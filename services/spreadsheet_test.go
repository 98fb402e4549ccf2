package services

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseImportFile_CSV(t *testing.T) {
	csvData := "Article,Quantity\nMAT-001,2\nMAT-002,\"3,5\"\n"

	rows, err := ParseImportFile(strings.NewReader(csvData), "lines.csv")
	if err != nil {
		t.Fatalf("ParseImportFile: %v", err)
	}

	want := []ImportRow{
		{Article: "Article", Quantity: "Quantity"},
		{Article: "MAT-001", Quantity: "2"},
		{Article: "MAT-002", Quantity: "3,5"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %+v, want %+v", rows, want)
	}
}

func TestParseImportFile_CSVShortRows(t *testing.T) {
	// A row with only column A still yields a row with empty quantity.
	csvData := "MAT-001,2\nMAT-003\n"

	rows, err := ParseImportFile(strings.NewReader(csvData), "lines.csv")
	if err != nil {
		t.Fatalf("ParseImportFile: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].Article != "MAT-003" || rows[1].Quantity != "" {
		t.Errorf("short row = %+v", rows[1])
	}
}

func TestParseImportFile_Excel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "Article")
	f.SetCellValue(sheet, "B1", "Quantity")
	f.SetCellValue(sheet, "A2", "MAT-001")
	f.SetCellValue(sheet, "B2", 2.5)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("build test workbook: %v", err)
	}
	f.Close()

	rows, err := ParseImportFile(&buf, "lines.xlsx")
	if err != nil {
		t.Fatalf("ParseImportFile: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].Article != "MAT-001" || rows[1].Quantity != "2.5" {
		t.Errorf("data row = %+v", rows[1])
	}
}

func TestParseImportFile_UnsupportedExtension(t *testing.T) {
	_, err := ParseImportFile(strings.NewReader("x"), "lines.pdf")

	var parseErr *ImportParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("error = %v, want ImportParseError", err)
	}
}

func TestParseImportFile_CorruptExcel(t *testing.T) {
	_, err := ParseImportFile(strings.NewReader("this is not a zip archive"), "lines.xlsx")

	var parseErr *ImportParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("error = %v, want ImportParseError", err)
	}
}

func TestParseImportFile_EmptyCSV(t *testing.T) {
	_, err := ParseImportFile(strings.NewReader(""), "lines.csv")

	var parseErr *ImportParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("error = %v, want ImportParseError", err)
	}
}
