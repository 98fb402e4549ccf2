// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogpricing/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestMaterial creates a material record and returns it.
func CreateTestMaterial(t *testing.T, app *pocketbase.PocketBase, name, article, unit string, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		t.Fatalf("failed to find materials collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("article", article)
	record.Set("unit", unit)
	record.Set("unit_price", unitPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material: %v", err)
	}

	return record
}

// CreateTestProductType creates a product type record and returns it.
func CreateTestProductType(t *testing.T, app *pocketbase.PocketBase, name string, markupPercent, workCost float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("product_types")
	if err != nil {
		t.Fatalf("failed to find product_types collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("markup_percent", markupPercent)
	record.Set("work_cost", workCost)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test product type: %v", err)
	}

	return record
}

// CreateTestFinishType creates a finish type record and returns it.
func CreateTestFinishType(t *testing.T, app *pocketbase.PocketBase, name string, markupPercent, workCost float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("finish_types")
	if err != nil {
		t.Fatalf("failed to find finish_types collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("markup_percent", markupPercent)
	record.Set("work_cost", workCost)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test finish type: %v", err)
	}

	return record
}

// CreateTestProduct creates a product record. Pass empty strings to
// leave the product without a product type or finish type.
func CreateTestProduct(t *testing.T, app *pocketbase.PocketBase, name, productTypeID, finishTypeID string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		t.Fatalf("failed to find products collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("product_type", productTypeID)
	record.Set("finish_type", finishTypeID)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test product: %v", err)
	}

	return record
}

// CreateTestTechCardLine creates a tech card line record for a product.
func CreateTestTechCardLine(t *testing.T, app *pocketbase.PocketBase, productID, materialID string, qty float64, sortOrder int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("tech_card_lines")
	if err != nil {
		t.Fatalf("failed to find tech_card_lines collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("product", productID)
	record.Set("material", materialID)
	record.Set("qty", qty)
	record.Set("sort_order", sortOrder)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test tech card line: %v", err)
	}

	return record
}
