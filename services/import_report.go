package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateUnresolvedReport creates a downloadable .xlsx file listing
// the articles an import could not resolve, for operator follow-up.
func GenerateUnresolvedReport(articles []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Unresolved"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "#")
	f.SetCellValue(sheet, "B1", "Article")
	f.SetCellStyle(sheet, "A1", "B1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 30)

	for i, article := range articles {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, i+1)
		f.SetCellValue(sheet, "B"+row, sanitizeExcelCell(article))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write unresolved report: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateImportTemplate creates the two-column .xlsx template staff
// fill in for a bulk tech card import.
func GenerateImportTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Tech Card Import"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Article")
	f.SetCellValue(sheet, "B1", "Quantity")
	f.SetCellStyle(sheet, "A1", "B1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "B", 12)

	// Example row below the header so the expected shape is obvious.
	f.SetCellValue(sheet, "A2", "MAT-001")
	f.SetCellValue(sheet, "B2", 2.5)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write import template: %w", err)
	}
	return buf.Bytes(), nil
}
