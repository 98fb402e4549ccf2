package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogpricing/services"
)

// materialJSON is the wire shape of one catalog material.
type materialJSON struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Article   string  `json:"article"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
	Price     string  `json:"price"`
}

func materialToJSON(r *core.Record) materialJSON {
	return materialJSON{
		ID:        r.Id,
		Name:      r.GetString("name"),
		Article:   r.GetString("article"),
		Unit:      r.GetString("unit"),
		UnitPrice: r.GetFloat("unit_price"),
		Price:     services.FormatPrice(r.GetFloat("unit_price")),
	}
}

// HandleMaterialList returns the material catalog sorted by article.
// Route: GET /api/materials
func HandleMaterialList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("materials", "id != ''", "article", 0, 0, nil)
		if err != nil {
			log.Printf("material_list: could not fetch materials: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		out := make([]materialJSON, 0, len(records))
		for _, r := range records {
			out = append(out, materialToJSON(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// parseMaterialForm validates the shared create/update form fields.
func parseMaterialForm(e *core.RequestEvent) (name, unit string, unitPrice float64, errs map[string]string) {
	errs = make(map[string]string)

	name = strings.TrimSpace(e.Request.FormValue("name"))
	if name == "" {
		errs["name"] = "Name is required"
	}

	unit = strings.TrimSpace(e.Request.FormValue("unit"))
	if unit == "" {
		unit = services.DefaultUnit
	} else if !services.ValidUnit(unit) {
		errs["unit"] = "Unknown unit"
	}

	rawPrice := strings.TrimSpace(e.Request.FormValue("unit_price"))
	if rawPrice != "" {
		var err error
		unitPrice, err = strconv.ParseFloat(strings.ReplaceAll(rawPrice, ",", "."), 64)
		if err != nil || unitPrice < 0 {
			errs["unit_price"] = "Price must be a non-negative number"
		}
	}

	return name, unit, unitPrice, errs
}

// HandleMaterialCreate creates a material. A missing article is filled
// in with the next generated one.
// Route: POST /api/materials
func HandleMaterialCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		name, unit, unitPrice, errs := parseMaterialForm(e)
		if len(errs) > 0 {
			return fieldErrors(e, http.StatusBadRequest, errs)
		}

		article := strings.TrimSpace(e.Request.FormValue("article"))
		if article == "" {
			generated, err := services.GenerateArticle(app)
			if err != nil {
				log.Printf("material_create: could not generate article: %v", err)
				return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
			article = generated
		}

		col, err := app.FindCollectionByNameOrId("materials")
		if err != nil {
			log.Printf("material_create: could not find materials collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("name", name)
		record.Set("article", article)
		record.Set("unit", unit)
		record.Set("unit_price", unitPrice)

		if err := app.Save(record); err != nil {
			log.Printf("material_create: could not save material: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, materialToJSON(record))
	}
}

// HandleMaterialUpdate edits a material in place. Tech card lines keep
// referencing it by id, so price edits flow into every product total.
// Route: PATCH /api/materials/{id}
func HandleMaterialUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("materials", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Material not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		name, unit, unitPrice, errs := parseMaterialForm(e)
		if len(errs) > 0 {
			return fieldErrors(e, http.StatusBadRequest, errs)
		}

		record.Set("name", name)
		record.Set("unit", unit)
		record.Set("unit_price", unitPrice)
		if article := strings.TrimSpace(e.Request.FormValue("article")); article != "" {
			record.Set("article", article)
		}

		if err := app.Save(record); err != nil {
			log.Printf("material_update: could not save material: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, materialToJSON(record))
	}
}

// HandleMaterialDelete removes a material from the catalog. Tech card
// lines that reference it are deliberately left in place; they show up
// as unresolved on their cards until replaced.
// Route: DELETE /api/materials/{id}
func HandleMaterialDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("materials", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Material not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("material_delete: could not delete material: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]string{"deleted": record.Id})
	}
}
