package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogpricing/services"
)

// techCardLineJSON is one rendered tech card row.
type techCardLineJSON struct {
	LineID     string  `json:"line_id"`
	Article    string  `json:"article"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"qty"`
	Unit       string  `json:"unit"`
	UnitPrice  float64 `json:"unit_price"`
	LineTotal  float64 `json:"line_total"`
	Unresolved bool    `json:"unresolved"`
}

// techCardJSON is the full card with its cost summary.
type techCardJSON struct {
	ProductID     string             `json:"product_id"`
	ProductName   string             `json:"product_name"`
	Lines         []techCardLineJSON `json:"lines"`
	MaterialCost  float64            `json:"material_cost"`
	WorkCost      float64            `json:"work_cost"`
	MarkupPercent float64            `json:"markup_percent"`
	Total         float64            `json:"total"`
	TotalPrice    string             `json:"total_price"`
	Unresolved    []string           `json:"unresolved_line_ids"`
}

// buildTechCardJSON recomputes the card summary from the live catalogs.
func buildTechCardJSON(app *pocketbase.PocketBase, product *core.Record) (techCardJSON, error) {
	lines, err := services.LoadTechCardLines(app, product.Id)
	if err != nil {
		return techCardJSON{}, err
	}

	byID, _, err := services.LoadMaterialLookups(app)
	if err != nil {
		return techCardJSON{}, err
	}

	productType, finishType := services.LoadProductMarkups(app, product)
	summary := services.SummarizeTechCard(lines, byID, productType, finishType)

	out := techCardJSON{
		ProductID:     product.Id,
		ProductName:   product.GetString("name"),
		Lines:         make([]techCardLineJSON, 0, len(summary.Rows)),
		MaterialCost:  summary.MaterialCost,
		WorkCost:      summary.WorkCost,
		MarkupPercent: (summary.MarkupMultiplier - 1) * 100,
		Total:         summary.Total,
		TotalPrice:    services.FormatPrice(summary.Total),
		Unresolved:    summary.UnresolvedLineIDs,
	}
	for _, row := range summary.Rows {
		out.Lines = append(out.Lines, techCardLineJSON{
			LineID:     row.LineID,
			Article:    row.Article,
			Name:       row.Name,
			Quantity:   row.Quantity,
			Unit:       row.Unit,
			UnitPrice:  row.UnitPrice,
			LineTotal:  row.LineTotal,
			Unresolved: row.Unresolved,
		})
	}
	return out, nil
}

// HandleTechCardView returns a product's tech card with computed costs.
// Route: GET /api/products/{id}/techcard
func HandleTechCardView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		product, err := app.FindRecordById("products", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Product not found")
		}

		card, err := buildTechCardJSON(app, product)
		if err != nil {
			log.Printf("techcard_view: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, card)
	}
}

// nextSortOrder returns the sort_order for a line appended to a card.
func nextSortOrder(app *pocketbase.PocketBase, productID string) int {
	records, err := app.FindRecordsByFilter(
		"tech_card_lines",
		"product = {:productId}",
		"-sort_order",
		1,
		0,
		map[string]any{"productId": productID},
	)
	if err != nil || len(records) == 0 {
		return 1
	}
	return int(records[0].GetFloat("sort_order")) + 1
}

// HandleTechCardLineAdd appends a material line with quantity 0 to a
// product's card and returns the recomputed card.
// Route: POST /api/products/{id}/techcard/lines
func HandleTechCardLineAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		product, err := app.FindRecordById("products", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Product not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		materialID := strings.TrimSpace(e.Request.FormValue("material"))
		if materialID == "" {
			return fieldErrors(e, http.StatusBadRequest, map[string]string{"material": "Material is required"})
		}
		if _, err := app.FindRecordById("materials", materialID); err != nil {
			return fieldErrors(e, http.StatusBadRequest, map[string]string{"material": "Unknown material"})
		}

		col, err := app.FindCollectionByNameOrId("tech_card_lines")
		if err != nil {
			log.Printf("techcard_line_add: could not find tech_card_lines collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("product", product.Id)
		record.Set("material", materialID)
		record.Set("qty", 0)
		record.Set("sort_order", nextSortOrder(app, product.Id))

		if err := app.Save(record); err != nil {
			log.Printf("techcard_line_add: could not save line: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		card, err := buildTechCardJSON(app, product)
		if err != nil {
			log.Printf("techcard_line_add: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusCreated, card)
	}
}

// HandleTechCardLineDelete removes a line from a card. Deleting a line
// that is already gone reports success so repeated clicks stay quiet.
// Route: DELETE /api/products/{id}/techcard/lines/{lineId}
func HandleTechCardLineDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		product, err := app.FindRecordById("products", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Product not found")
		}

		lineID := e.Request.PathValue("lineId")
		line, err := app.FindRecordById("tech_card_lines", lineID)
		if err == nil && line.GetString("product") == product.Id {
			if err := app.Delete(line); err != nil {
				log.Printf("techcard_line_delete: could not delete line: %v", err)
				return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
		}

		card, err := buildTechCardJSON(app, product)
		if err != nil {
			log.Printf("techcard_line_delete: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, card)
	}
}

// HandleTechCardLineQty commits an edited quantity. The raw text goes
// through the same forgiving parse as interactive entry: garbage and
// negatives land as 0 instead of an error, then the card recomputes.
// Route: PATCH /api/products/{id}/techcard/lines/{lineId}
func HandleTechCardLineQty(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		product, err := app.FindRecordById("products", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Product not found")
		}

		lineID := e.Request.PathValue("lineId")
		line, err := app.FindRecordById("tech_card_lines", lineID)
		if err != nil || line.GetString("product") != product.Id {
			return apiError(e, http.StatusNotFound, "Tech card line not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		lines, err := services.LoadTechCardLines(app, product.Id)
		if err != nil {
			log.Printf("techcard_line_qty: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		store := services.HydrateLineStore(lines)
		editor := services.NewQuantityEditor(store)
		editor.Input(lineID, e.Request.FormValue("qty"))

		qty, err := editor.Commit(lineID)
		if err != nil {
			log.Printf("techcard_line_qty: commit failed for line %s: %v", lineID, err)
			return apiError(e, http.StatusBadRequest, "Could not update quantity")
		}

		line.Set("qty", qty)
		if err := app.Save(line); err != nil {
			log.Printf("techcard_line_qty: could not save line: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		card, err := buildTechCardJSON(app, product)
		if err != nil {
			log.Printf("techcard_line_qty: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return e.JSON(http.StatusOK, card)
	}
}
