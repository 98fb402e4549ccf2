package services_test

import (
	"testing"

	"catalogpricing/services"
	"catalogpricing/testhelpers"
)

func TestGenerateArticle_FirstInEmptyCatalog(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	article, err := services.GenerateArticle(app)
	if err != nil {
		t.Fatalf("GenerateArticle() error: %v", err)
	}
	if article != "MAT-001" {
		t.Errorf("article = %q, want MAT-001", article)
	}
}

func TestGenerateArticle_Sequence(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestMaterial(t, app, "Board", "MAT-001", "m2", 850)
	testhelpers.CreateTestMaterial(t, app, "Hinge", "MAT-002", "pcs", 320)

	article, err := services.GenerateArticle(app)
	if err != nil {
		t.Fatalf("GenerateArticle() error: %v", err)
	}
	if article != "MAT-003" {
		t.Errorf("article = %q, want MAT-003", article)
	}
}

func TestGenerateArticle_SkipsManualCollision(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	// A manually entered article sitting ahead of the sequence.
	testhelpers.CreateTestMaterial(t, app, "Board", "MAT-002", "m2", 850)

	article, err := services.GenerateArticle(app)
	if err != nil {
		t.Fatalf("GenerateArticle() error: %v", err)
	}
	if article == "MAT-002" {
		t.Error("generated article collides with existing MAT-002")
	}

	testhelpers.CreateTestMaterial(t, app, "Next", article, "pcs", 1)
	next, err := services.GenerateArticle(app)
	if err != nil {
		t.Fatalf("GenerateArticle() error: %v", err)
	}
	if next == article || next == "MAT-002" {
		t.Errorf("second article %q duplicates an existing one", next)
	}
}

func TestGenerateArticle_IgnoresForeignShapes(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestMaterial(t, app, "Imported", "SUP-9001", "pcs", 10)

	article, err := services.GenerateArticle(app)
	if err != nil {
		t.Fatalf("GenerateArticle() error: %v", err)
	}
	if article != "MAT-001" {
		t.Errorf("article = %q, want MAT-001 (foreign articles ignored)", article)
	}
}
