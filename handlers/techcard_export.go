package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogpricing/services"
)

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandlePriceSheetExcel generates and downloads a product's price sheet
// as an Excel workbook.
// Route: GET /api/products/{id}/export/excel
func HandlePriceSheetExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		productID := e.Request.PathValue("id")
		if productID == "" {
			return apiError(e, http.StatusBadRequest, "Missing product ID")
		}

		data, err := services.BuildPriceSheet(app, productID)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return apiError(e, http.StatusNotFound, "Product not found")
		}

		xlsxBytes, err := services.GeneratePriceSheetExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("PriceSheet_%s_%s.xlsx",
			sanitizeFilename(data.ProductName), time.Now().Format("2006-01-02"))

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandlePriceSheetPDF generates and downloads a product's price sheet
// as a PDF.
// Route: GET /api/products/{id}/export/pdf
func HandlePriceSheetPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		productID := e.Request.PathValue("id")
		if productID == "" {
			return apiError(e, http.StatusBadRequest, "Missing product ID")
		}

		data, err := services.BuildPriceSheet(app, productID)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return apiError(e, http.StatusNotFound, "Product not found")
		}

		pdfBytes, err := services.GeneratePriceSheetPDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("PriceSheet_%s_%s.pdf",
			sanitizeFilename(data.ProductName), time.Now().Format("2006-01-02"))

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
