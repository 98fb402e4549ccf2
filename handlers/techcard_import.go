package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogpricing/services"
)

// importPreviewJSON is the validate-phase response: the dry-run report
// plus the parsed rows serialized for the commit form.
type importPreviewJSON struct {
	Report         services.ImportReport `json:"report"`
	ParsedRowsJSON string                `json:"parsed_rows_json"`
}

// HandleTechCardImportValidate receives an upload, parses it and
// dry-runs the import against a copy of the card. Nothing is persisted;
// the client posts the returned rows back to commit.
// Route: POST /api/products/{id}/techcard/import
func HandleTechCardImportValidate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		product, err := app.FindRecordById("products", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Product not found")
		}

		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return apiError(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return apiError(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		rows, err := services.ParseImportFile(file, header.Filename)
		if err != nil {
			log.Printf("techcard_import_validate: %v", err)
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		lines, err := services.LoadTechCardLines(app, product.Id)
		if err != nil {
			log.Printf("techcard_import_validate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		_, byArticle, err := services.LoadMaterialLookups(app)
		if err != nil {
			log.Printf("techcard_import_validate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		// Dry run on a throwaway store copy.
		report := services.ImportTechCardRows(services.HydrateLineStore(lines), rows, byArticle)

		rowsJSON, err := json.Marshal(rows)
		if err != nil {
			log.Printf("techcard_import_validate: marshal parsed rows: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, importPreviewJSON{
			Report:         report,
			ParsedRowsJSON: string(rowsJSON),
		})
	}
}

// HandleTechCardImportCommit applies previously validated rows to the
// card. The import is additive: rows for materials already on the card
// add to the existing quantity, new materials append, unresolved rows
// are skipped and reported.
// Route: POST /api/products/{id}/techcard/import/commit
func HandleTechCardImportCommit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		product, err := app.FindRecordById("products", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Product not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		parsedJSON := e.Request.FormValue("parsed_rows_json")
		if parsedJSON == "" {
			return apiError(e, http.StatusBadRequest, "File data missing. Please re-upload and try again.")
		}

		var rows []services.ImportRow
		if err := json.Unmarshal([]byte(parsedJSON), &rows); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid parsed data")
		}

		lines, err := services.LoadTechCardLines(app, product.Id)
		if err != nil {
			log.Printf("techcard_import_commit: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		_, byArticle, err := services.LoadMaterialLookups(app)
		if err != nil {
			log.Printf("techcard_import_commit: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		store := services.HydrateLineStore(lines)
		report := services.ImportTechCardRows(store, rows, byArticle)

		if err := persistImportedLines(app, product.Id, lines, store); err != nil {
			log.Printf("techcard_import_commit: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		card, err := buildTechCardJSON(app, product)
		if err != nil {
			log.Printf("techcard_import_commit: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"report":   report,
			"techcard": card,
		})
	}
}

// persistImportedLines diffs the imported store against the lines that
// were loaded from the database and writes only what changed: merged
// lines get their new quantity, appended lines become new records.
func persistImportedLines(app *pocketbase.PocketBase, productID string, before []services.TechCardLine, store *services.LineStore) error {
	beforeQty := make(map[string]float64, len(before))
	for _, line := range before {
		beforeQty[line.LineID] = line.Quantity
	}

	col, err := app.FindCollectionByNameOrId("tech_card_lines")
	if err != nil {
		return fmt.Errorf("could not find tech_card_lines collection: %w", err)
	}

	sortOrder := nextSortOrder(app, productID)
	for _, line := range store.Snapshot() {
		prev, existed := beforeQty[line.LineID]
		if existed {
			if prev == line.Quantity {
				continue
			}
			record, err := app.FindRecordById("tech_card_lines", line.LineID)
			if err != nil {
				return fmt.Errorf("merged line %s vanished: %w", line.LineID, err)
			}
			record.Set("qty", line.Quantity)
			if err := app.Save(record); err != nil {
				return fmt.Errorf("could not save merged line %s: %w", line.LineID, err)
			}
			continue
		}

		record := core.NewRecord(col)
		record.Set("product", productID)
		record.Set("material", line.MaterialID)
		record.Set("qty", line.Quantity)
		record.Set("sort_order", sortOrder)
		sortOrder++
		if err := app.Save(record); err != nil {
			return fmt.Errorf("could not save appended line: %w", err)
		}
	}
	return nil
}

// HandleTechCardImportErrors downloads the unresolved articles of the
// last import as an Excel report.
// Route: POST /api/techcard/import/errors
func HandleTechCardImportErrors(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var articles []string
		if err := json.NewDecoder(e.Request.Body).Decode(&articles); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid error data")
		}

		xlsxBytes, err := services.GenerateUnresolvedReport(articles)
		if err != nil {
			log.Printf("techcard_import_errors: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		filename := fmt.Sprintf("Import_Errors_%s.xlsx", time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleTechCardImportTemplate downloads an empty import workbook with
// the expected headers and one example row.
// Route: GET /api/techcard/import/template
func HandleTechCardImportTemplate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		xlsxBytes, err := services.GenerateImportTemplate()
		if err != nil {
			log.Printf("techcard_import_template: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			`attachment; filename="TechCard_Import_Template.xlsx"`)
		e.Response.Write(xlsxBytes)
		return nil
	}
}
