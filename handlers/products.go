package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogpricing/services"
)

type productJSON struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ProductTypeID string `json:"product_type"`
	FinishTypeID  string `json:"finish_type"`
}

func productToJSON(r *core.Record) productJSON {
	return productJSON{
		ID:            r.Id,
		Name:          r.GetString("name"),
		ProductTypeID: r.GetString("product_type"),
		FinishTypeID:  r.GetString("finish_type"),
	}
}

// productListEntry is a catalog row with the computed price attached.
type productListEntry struct {
	productJSON
	Total      float64 `json:"total"`
	Price      string  `json:"price"`
	Unresolved int     `json:"unresolved"`
}

// HandleProductList lists all products with their current computed
// totals. Totals are recomputed per request from the live catalogs.
// Route: GET /api/products
func HandleProductList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("products", "id != ''", "name", 0, 0, nil)
		if err != nil {
			log.Printf("product_list: could not fetch products: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		byID, _, err := services.LoadMaterialLookups(app)
		if err != nil {
			log.Printf("product_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		out := make([]productListEntry, 0, len(records))
		for _, r := range records {
			lines, err := services.LoadTechCardLines(app, r.Id)
			if err != nil {
				log.Printf("product_list: %v", err)
				return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}

			productType, finishType := services.LoadProductMarkups(app, r)
			summary := services.SummarizeTechCard(lines, byID, productType, finishType)

			out = append(out, productListEntry{
				productJSON: productToJSON(r),
				Total:       summary.Total,
				Price:       services.FormatPrice(summary.Total),
				Unresolved:  len(summary.UnresolvedLineIDs),
			})
		}
		return e.JSON(http.StatusOK, out)
	}
}

// parseProductForm validates the shared create/update fields. Type
// references are checked for existence so typos surface immediately;
// references only go stale later, via type deletion.
func parseProductForm(app *pocketbase.PocketBase, e *core.RequestEvent) (name, productTypeID, finishTypeID string, errs map[string]string) {
	errs = make(map[string]string)

	name = strings.TrimSpace(e.Request.FormValue("name"))
	if name == "" {
		errs["name"] = "Name is required"
	}

	productTypeID = strings.TrimSpace(e.Request.FormValue("product_type"))
	if productTypeID != "" {
		if _, err := app.FindRecordById("product_types", productTypeID); err != nil {
			errs["product_type"] = "Unknown product type"
		}
	}

	finishTypeID = strings.TrimSpace(e.Request.FormValue("finish_type"))
	if finishTypeID != "" {
		if _, err := app.FindRecordById("finish_types", finishTypeID); err != nil {
			errs["finish_type"] = "Unknown finish type"
		}
	}

	return name, productTypeID, finishTypeID, errs
}

// HandleProductCreate creates a product with an empty tech card.
// Route: POST /api/products
func HandleProductCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		name, productTypeID, finishTypeID, errs := parseProductForm(app, e)
		if len(errs) > 0 {
			return fieldErrors(e, http.StatusBadRequest, errs)
		}

		col, err := app.FindCollectionByNameOrId("products")
		if err != nil {
			log.Printf("product_create: could not find products collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("name", name)
		record.Set("product_type", productTypeID)
		record.Set("finish_type", finishTypeID)

		if err := app.Save(record); err != nil {
			log.Printf("product_create: could not save product: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, productToJSON(record))
	}
}

// HandleProductUpdate edits a product's name or type assignments.
// Route: PATCH /api/products/{id}
func HandleProductUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("products", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Product not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		name, productTypeID, finishTypeID, errs := parseProductForm(app, e)
		if len(errs) > 0 {
			return fieldErrors(e, http.StatusBadRequest, errs)
		}

		record.Set("name", name)
		record.Set("product_type", productTypeID)
		record.Set("finish_type", finishTypeID)

		if err := app.Save(record); err != nil {
			log.Printf("product_update: could not save product: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, productToJSON(record))
	}
}

// HandleProductDelete removes a product. Its tech card lines cascade.
// Route: DELETE /api/products/{id}
func HandleProductDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("products", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Product not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("product_delete: could not delete product: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]string{"deleted": record.Id})
	}
}
