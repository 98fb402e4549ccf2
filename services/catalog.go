package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// MaterialFromRecord converts a materials record to the aggregator's
// view of it.
func MaterialFromRecord(r *core.Record) CatalogMaterial {
	return CatalogMaterial{
		ID:        r.Id,
		Name:      r.GetString("name"),
		Article:   r.GetString("article"),
		Unit:      r.GetString("unit"),
		UnitPrice: r.GetFloat("unit_price"),
	}
}

// MarkupFromRecord converts a product_types or finish_types record to
// a MarkupSpec. A nil record maps to nil, which the aggregator treats
// as zero markup and zero work cost.
func MarkupFromRecord(r *core.Record) *MarkupSpec {
	if r == nil {
		return nil
	}
	return &MarkupSpec{
		MarkupPercent: r.GetFloat("markup_percent"),
		WorkCost:      r.GetFloat("work_cost"),
	}
}

// LoadMaterialLookups fetches all materials and returns two lookups:
// by record ID (for line resolution) and by article (for import).
// Materials with an empty article are reachable by ID only.
func LoadMaterialLookups(app *pocketbase.PocketBase) (byID, byArticle map[string]CatalogMaterial, err error) {
	records, err := app.FindAllRecords("materials")
	if err != nil {
		return nil, nil, fmt.Errorf("load materials: %w", err)
	}

	byID = make(map[string]CatalogMaterial, len(records))
	byArticle = make(map[string]CatalogMaterial, len(records))
	for _, r := range records {
		mat := MaterialFromRecord(r)
		byID[mat.ID] = mat
		if mat.Article != "" {
			byArticle[mat.Article] = mat
		}
	}
	return byID, byArticle, nil
}

// LoadTechCardLines fetches a product's tech card lines in insertion
// order. The stored material id is carried verbatim even when the
// material no longer exists, so historical cards stay viewable.
func LoadTechCardLines(app *pocketbase.PocketBase, productID string) ([]TechCardLine, error) {
	records, err := app.FindRecordsByFilter(
		"tech_card_lines",
		"product = {:productId}",
		"sort_order",
		0,
		0,
		map[string]any{"productId": productID},
	)
	if err != nil {
		return nil, fmt.Errorf("load tech card lines: %w", err)
	}

	lines := make([]TechCardLine, 0, len(records))
	for _, r := range records {
		lines = append(lines, TechCardLine{
			LineID:     r.Id,
			MaterialID: r.GetString("material"),
			Quantity:   r.GetFloat("qty"),
		})
	}
	return lines, nil
}

// LoadProductMarkups resolves a product's product type and finish type
// records into markup specs. Either reference may be empty or dangle;
// both cases read as nil.
func LoadProductMarkups(app *pocketbase.PocketBase, product *core.Record) (productType, finishType *MarkupSpec) {
	if id := product.GetString("product_type"); id != "" {
		if r, err := app.FindRecordById("product_types", id); err == nil {
			productType = MarkupFromRecord(r)
		}
	}
	if id := product.GetString("finish_type"); id != "" {
		if r, err := app.FindRecordById("finish_types", id); err == nil {
			finishType = MarkupFromRecord(r)
		}
	}
	return productType, finishType
}
