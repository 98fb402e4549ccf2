package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"catalogpricing/testhelpers"
)

func TestHandleProductCreate_Valid(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	productType := testhelpers.CreateTestProductType(t, app, "Cabinet", 10, 1000)
	handler := HandleProductCreate(app)

	form := url.Values{}
	form.Set("name", "Kitchen cabinet 600")
	form.Set("product_type", productType.Id)

	req, rec := postForm(t, "/api/products", form)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	records, err := app.FindAllRecords("products")
	if err != nil || len(records) != 1 {
		t.Fatal("expected product to be created")
	}
	if got := records[0].GetString("product_type"); got != productType.Id {
		t.Errorf("product_type = %q, want %q", got, productType.Id)
	}
}

func TestHandleProductCreate_UnknownType(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProductCreate(app)

	form := url.Values{}
	form.Set("name", "Cabinet")
	form.Set("product_type", "nosuchtype12345")

	req, rec := postForm(t, "/api/products", form)
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleProductList_ComputedTotals(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	material := testhelpers.CreateTestMaterial(t, app, "Chipboard", "MAT-001", "m2", 850)
	productType := testhelpers.CreateTestProductType(t, app, "Cabinet", 10, 1000)
	finishType := testhelpers.CreateTestFinishType(t, app, "Veneer", 50, 0)
	product := testhelpers.CreateTestProduct(t, app, "Cabinet A", productType.Id, finishType.Id)
	testhelpers.CreateTestTechCardLine(t, app, product.Id, material.Id, 2, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	if err := HandleProductList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var out []productListEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 product, got %d", len(out))
	}
	// 1700 * (1 + (10+50)/100) + 1000
	if out[0].Total != 3720 {
		t.Errorf("total = %v, want 3720", out[0].Total)
	}
	if out[0].Price != "3,720.00" {
		t.Errorf("price = %q, want 3,720.00", out[0].Price)
	}
}

func TestHandleProductDelete_CascadesLines(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	material := testhelpers.CreateTestMaterial(t, app, "Chipboard", "MAT-001", "m2", 850)
	product := testhelpers.CreateTestProduct(t, app, "Cabinet A", "", "")
	testhelpers.CreateTestTechCardLine(t, app, product.Id, material.Id, 2, 1)

	req := httptest.NewRequest(http.MethodDelete, "/api/products/"+product.Id, nil)
	req.SetPathValue("id", product.Id)
	rec := httptest.NewRecorder()
	if err := HandleProductDelete(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	lines, err := app.FindAllRecords("tech_card_lines")
	if err != nil {
		t.Fatalf("could not list lines: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected cascade delete of lines, got %d", len(lines))
	}
}

func TestHandleProductUpdate_ReassignType(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	oldType := testhelpers.CreateTestProductType(t, app, "Cabinet", 10, 1000)
	newType := testhelpers.CreateTestProductType(t, app, "Wardrobe", 15, 2500)
	product := testhelpers.CreateTestProduct(t, app, "Unit A", oldType.Id, "")

	form := url.Values{}
	form.Set("name", "Unit A")
	form.Set("product_type", newType.Id)

	req, rec := postForm(t, "/api/products/"+product.Id, form)
	req.SetPathValue("id", product.Id)
	if err := HandleProductUpdate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	updated, err := app.FindRecordById("products", product.Id)
	if err != nil {
		t.Fatalf("could not reload product: %v", err)
	}
	if got := updated.GetString("product_type"); got != newType.Id {
		t.Errorf("product_type = %q, want %q", got, newType.Id)
	}
}
