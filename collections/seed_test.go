package collections_test

import (
	"testing"

	"catalogpricing/collections"
	"catalogpricing/testhelpers"
)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	materials, err := app.FindAllRecords("materials")
	if err != nil {
		t.Fatalf("query materials error: %v", err)
	}
	if len(materials) != 7 {
		t.Errorf("expected 7 seed materials, got %d", len(materials))
	}

	productTypes, _ := app.FindAllRecords("product_types")
	if len(productTypes) != 4 {
		t.Errorf("expected 4 seed product types, got %d", len(productTypes))
	}

	finishTypes, _ := app.FindAllRecords("finish_types")
	if len(finishTypes) != 4 {
		t.Errorf("expected 4 seed finish types, got %d", len(finishTypes))
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	materials, _ := app.FindAllRecords("materials")
	if len(materials) != 7 {
		t.Errorf("expected 7 materials after idempotent seed, got %d", len(materials))
	}
}

func TestSeed_MaterialDetails(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	records, err := app.FindRecordsByFilter(
		"materials",
		"article = {:article}",
		"", 1, 0,
		map[string]any{"article": "MAT-001"},
	)
	if err != nil || len(records) == 0 {
		t.Fatal("seed material MAT-001 not found")
	}

	mat := records[0]
	if mat.GetString("name") != "Laminated chipboard 16mm" {
		t.Errorf("name = %q", mat.GetString("name"))
	}
	if mat.GetString("unit") != "m2" {
		t.Errorf("unit = %q, want m2", mat.GetString("unit"))
	}
	if mat.GetFloat("unit_price") != 850 {
		t.Errorf("unit_price = %v, want 850", mat.GetFloat("unit_price"))
	}
}

func TestSeed_SkipsWhenDataExists(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// Create a material first (not via Seed)
	testhelpers.CreateTestMaterial(t, app, "Custom board", "MAT-900", "m2", 999)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	// The material catalog was non-empty, so seeding skipped it
	materials, _ := app.FindAllRecords("materials")
	if len(materials) != 1 {
		t.Errorf("expected 1 material (pre-existing only), got %d", len(materials))
	}
	if materials[0].GetString("article") != "MAT-900" {
		t.Errorf("expected pre-existing material, got %q", materials[0].GetString("article"))
	}

	// Empty type catalogs still get seeded
	productTypes, _ := app.FindAllRecords("product_types")
	if len(productTypes) != 4 {
		t.Errorf("expected 4 product types, got %d", len(productTypes))
	}
}
