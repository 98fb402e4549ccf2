package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// PriceSheetData holds everything needed to render a product's price
// sheet in any output format.
type PriceSheetData struct {
	ProductName   string
	ProductType   string
	FinishType    string
	GeneratedDate string
	Rows          []CostRow
	MaterialCost  float64
	WorkCost      float64
	MarkupPercent float64
	Total         float64
	Unresolved    int
}

// BuildPriceSheet assembles the price sheet for one product from its
// tech card and the current catalogs. The summary is recomputed from
// scratch on every call; nothing here is cached.
func BuildPriceSheet(app *pocketbase.PocketBase, productID string) (*PriceSheetData, error) {
	product, err := app.FindRecordById("products", productID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}

	lines, err := LoadTechCardLines(app, productID)
	if err != nil {
		return nil, err
	}

	byID, _, err := LoadMaterialLookups(app)
	if err != nil {
		return nil, err
	}

	productType, finishType := LoadProductMarkups(app, product)
	summary := SummarizeTechCard(lines, byID, productType, finishType)

	data := &PriceSheetData{
		ProductName:   product.GetString("name"),
		GeneratedDate: time.Now().Format("2006-01-02"),
		Rows:          summary.Rows,
		MaterialCost:  summary.MaterialCost,
		WorkCost:      summary.WorkCost,
		MarkupPercent: (summary.MarkupMultiplier - 1) * 100,
		Total:         summary.Total,
		Unresolved:    len(summary.UnresolvedLineIDs),
	}

	if id := product.GetString("product_type"); id != "" {
		if r, err := app.FindRecordById("product_types", id); err == nil {
			data.ProductType = r.GetString("name")
		}
	}
	if id := product.GetString("finish_type"); id != "" {
		if r, err := app.FindRecordById("finish_types", id); err == nil {
			data.FinishType = r.GetString("name")
		}
	}

	return data, nil
}

// formatQty renders a quantity as a whole number when it has no
// fractional part, otherwise with 2 decimals.
func formatQty(qty float64) string {
	if qty == float64(int64(qty)) {
		return fmt.Sprintf("%d", int64(qty))
	}
	return fmt.Sprintf("%.2f", qty)
}
