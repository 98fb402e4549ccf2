// Package services provides the cost aggregation core for product tech
// cards plus the import/export helpers built around it.
package services

// CatalogMaterial is the aggregator's read-only view of one material.
type CatalogMaterial struct {
	ID        string
	Name      string
	Article   string
	Unit      string
	UnitPrice float64
}

// MarkupSpec carries the markup percent and fixed work cost configured
// on a product type or finish type. A nil *MarkupSpec means the product
// has no type of that kind assigned; both contributions are then zero.
type MarkupSpec struct {
	MarkupPercent float64
	WorkCost      float64
}

// CostRow is the derived display row for one tech card line. It is
// recomputed on every read and never persisted.
type CostRow struct {
	LineID     string
	Article    string
	Name       string
	Quantity   float64
	Unit       string
	UnitPrice  float64
	LineTotal  float64
	Unresolved bool
}

// CostSummary is the full derived costing of one tech card.
type CostSummary struct {
	Rows              []CostRow
	MaterialCost      float64
	WorkCost          float64
	MarkupMultiplier  float64
	Total             float64
	UnresolvedLineIDs []string
}

// SummarizeTechCard computes the cost summary for a tech card from its
// lines and the current reference catalogs. Lines whose material no
// longer resolves contribute zero and are reported in
// UnresolvedLineIDs instead of failing the whole card.
//
// Markups stack additively on the material cost:
//
//	total = materialCost * (1 + (ptMarkup + ftMarkup)/100) + ptWork + ftWork
//
// The two percentages are never compounded; this matches the flat
// percentage columns of the reference schema.
func SummarizeTechCard(lines []TechCardLine, materials map[string]CatalogMaterial, productType, finishType *MarkupSpec) CostSummary {
	summary := CostSummary{
		Rows: make([]CostRow, 0, len(lines)),
	}

	// Left-to-right fold keeps the sum deterministic for a given line order.
	for _, line := range lines {
		row := CostRow{
			LineID:   line.LineID,
			Quantity: line.Quantity,
		}
		if mat, ok := materials[line.MaterialID]; ok {
			row.Article = mat.Article
			row.Name = mat.Name
			row.Unit = mat.Unit
			row.UnitPrice = mat.UnitPrice
			row.LineTotal = line.Quantity * mat.UnitPrice
		} else {
			row.Unresolved = true
			summary.UnresolvedLineIDs = append(summary.UnresolvedLineIDs, line.LineID)
		}
		summary.MaterialCost += row.LineTotal
		summary.Rows = append(summary.Rows, row)
	}

	var markupPercent float64
	if productType != nil {
		markupPercent += productType.MarkupPercent
		summary.WorkCost += productType.WorkCost
	}
	if finishType != nil {
		markupPercent += finishType.MarkupPercent
		summary.WorkCost += finishType.WorkCost
	}

	summary.MarkupMultiplier = 1 + markupPercent/100
	summary.Total = summary.MaterialCost*summary.MarkupMultiplier + summary.WorkCost

	return summary
}
