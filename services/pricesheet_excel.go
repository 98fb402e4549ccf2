package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GeneratePriceSheetExcel creates an xlsx price sheet from the given
// data and returns the file contents as a byte slice.
func GeneratePriceSheetExcel(data *PriceSheetData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names are capped at 31 chars by the format.
	sheetName := data.ProductName
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Price Sheet"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 14, 40, 10, 8, 14, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	lineStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create line style: %w", err)
	}

	// Lines whose material no longer exists in the catalog.
	unresolvedStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size:  10,
			Color: "#B91C1C",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create unresolved style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header Rows (1-3) ───────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.ProductName))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	typeLine := data.ProductType
	if data.FinishType != "" {
		if typeLine != "" {
			typeLine += " / "
		}
		typeLine += data.FinishType
	}
	if typeLine != "" {
		if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
			return nil, fmt.Errorf("merge type: %w", err)
		}
		f.SetCellValue(sheetName, "A2", "Type: "+typeLine)
		f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)
	}

	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A3", "Date: "+data.GeneratedDate)
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// ── Row 5: Column Headers ───────────────────────────────────────────

	headers := []string{"#", "Article", "Material", "Qty", "Unit", "Unit Price", "Line Total"}
	for i, h := range headers {
		cell := fmt.Sprintf("%s5", columns[i])
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A5", lastCol+"5", headerStyle)

	// ── Data Rows (starting row 6) ──────────────────────────────────────

	row := 6
	for i, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", row)

		name := r.Name
		if r.Unresolved {
			name = "(material removed from catalog)"
		}

		f.SetCellValue(sheetName, "A"+rowStr, i+1)
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(r.Article))
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(name))
		f.SetCellValue(sheetName, "D"+rowStr, r.Quantity)
		f.SetCellValue(sheetName, "E"+rowStr, sanitizeExcelCell(r.Unit))
		f.SetCellValue(sheetName, "F"+rowStr, FormatPrice(r.UnitPrice))
		f.SetCellValue(sheetName, "G"+rowStr, FormatPrice(r.LineTotal))

		style := lineStyle
		if r.Unresolved {
			style = unresolvedStyle
		}
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, style)

		row++
	}

	// ── Summary Rows ────────────────────────────────────────────────────

	row++

	summaryRow := fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "F"+summaryRow, "Material Cost:")
	f.SetCellStyle(sheetName, "F"+summaryRow, "F"+summaryRow, summaryLabelStyle)
	f.SetCellValue(sheetName, "G"+summaryRow, FormatPrice(data.MaterialCost))
	f.SetCellStyle(sheetName, "G"+summaryRow, "G"+summaryRow, summaryValueStyle)
	row++

	summaryRow = fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "F"+summaryRow, fmt.Sprintf("Markup (%.1f%%):", data.MarkupPercent))
	f.SetCellStyle(sheetName, "F"+summaryRow, "F"+summaryRow, summaryLabelStyle)
	f.SetCellValue(sheetName, "G"+summaryRow, FormatPrice(data.MaterialCost*data.MarkupPercent/100))
	f.SetCellStyle(sheetName, "G"+summaryRow, "G"+summaryRow, summaryValueStyle)
	row++

	summaryRow = fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "F"+summaryRow, "Work Cost:")
	f.SetCellStyle(sheetName, "F"+summaryRow, "F"+summaryRow, summaryLabelStyle)
	f.SetCellValue(sheetName, "G"+summaryRow, FormatPrice(data.WorkCost))
	f.SetCellStyle(sheetName, "G"+summaryRow, "G"+summaryRow, summaryValueStyle)
	row++

	summaryRow = fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "F"+summaryRow, "Total:")
	f.SetCellStyle(sheetName, "F"+summaryRow, "F"+summaryRow, summaryLabelStyle)
	f.SetCellValue(sheetName, "G"+summaryRow, FormatPrice(data.Total))
	f.SetCellStyle(sheetName, "G"+summaryRow, "G"+summaryRow, summaryValueStyle)

	if data.Unresolved > 0 {
		row += 2
		noteRow := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+noteRow,
			fmt.Sprintf("%d line(s) reference removed materials and are priced at 0.", data.Unresolved))
		f.SetCellStyle(sheetName, "A"+noteRow, "A"+noteRow, subtitleStyle)
	}

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// thinBorders returns the standard thin border set used in generated
// workbooks.
func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "#CCCCCC", Style: 1},
		{Type: "right", Color: "#CCCCCC", Style: 1},
		{Type: "top", Color: "#CCCCCC", Style: 1},
		{Type: "bottom", Color: "#CCCCCC", Style: 1},
	}
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
