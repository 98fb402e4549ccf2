package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type materialDef struct {
	name      string
	article   string
	unit      string
	unitPrice float64
}

type typeDef struct {
	name          string
	markupPercent float64
	workCost      float64
}

// ── Seed data ────────────────────────────────────────────────────────────

var seedMaterials = []materialDef{
	{name: "Laminated chipboard 16mm", article: "MAT-001", unit: "m2", unitPrice: 850},
	{name: "MDF board 19mm", article: "MAT-002", unit: "m2", unitPrice: 1240},
	{name: "Edge banding 2mm", article: "MAT-003", unit: "m", unitPrice: 35},
	{name: "Confirmat screw 7x50", article: "MAT-004", unit: "pcs", unitPrice: 4},
	{name: "Cabinet hinge, soft close", article: "MAT-005", unit: "pcs", unitPrice: 320},
	{name: "Drawer slide 450mm", article: "MAT-006", unit: "pair", unitPrice: 560},
	{name: "Back panel hardboard 3mm", article: "MAT-007", unit: "m2", unitPrice: 210},
}

var seedProductTypes = []typeDef{
	{name: "Cabinet", markupPercent: 10, workCost: 1000},
	{name: "Wardrobe", markupPercent: 15, workCost: 2500},
	{name: "Table", markupPercent: 12, workCost: 800},
	{name: "Shelf unit", markupPercent: 8, workCost: 400},
}

var seedFinishTypes = []typeDef{
	{name: "None", markupPercent: 0, workCost: 0},
	{name: "Laminate", markupPercent: 20, workCost: 0},
	{name: "Veneer", markupPercent: 50, workCost: 1200},
	{name: "Paint, matte", markupPercent: 35, workCost: 900},
}

// Seed populates the reference catalogs on first startup. It is
// idempotent: any collection that already has records is left alone so
// staff edits are never overwritten.
func Seed(app *pocketbase.PocketBase) error {
	if err := seedTypes(app, "product_types", seedProductTypes); err != nil {
		return err
	}
	if err := seedTypes(app, "finish_types", seedFinishTypes); err != nil {
		return err
	}
	return seedMaterialCatalog(app)
}

func seedTypes(app *pocketbase.PocketBase, collection string, defs []typeDef) error {
	col, err := app.FindCollectionByNameOrId(collection)
	if err != nil {
		return fmt.Errorf("seed: could not find %s collection: %w", collection, err)
	}

	existing, err := app.FindAllRecords(collection)
	if err == nil && len(existing) > 0 {
		return nil
	}

	for _, def := range defs {
		record := core.NewRecord(col)
		record.Set("name", def.name)
		record.Set("markup_percent", def.markupPercent)
		record.Set("work_cost", def.workCost)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: could not save %s %q: %w", collection, def.name, err)
		}
	}

	log.Printf("seed: created %d %s record(s)\n", len(defs), collection)
	return nil
}

func seedMaterialCatalog(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return fmt.Errorf("seed: could not find materials collection: %w", err)
	}

	existing, err := app.FindAllRecords("materials")
	if err == nil && len(existing) > 0 {
		return nil
	}

	for _, def := range seedMaterials {
		record := core.NewRecord(col)
		record.Set("name", def.name)
		record.Set("article", def.article)
		record.Set("unit", def.unit)
		record.Set("unit_price", def.unitPrice)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: could not save material %q: %w", def.name, err)
		}
	}

	log.Printf("seed: created %d material(s)\n", len(seedMaterials))
	return nil
}
