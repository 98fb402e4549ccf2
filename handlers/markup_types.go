package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Product types and finish types carry the same shape (name plus the
// markup pair), so both catalogs share one set of handlers
// parameterized by collection name.

type markupTypeJSON struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	MarkupPercent float64 `json:"markup_percent"`
	WorkCost      float64 `json:"work_cost"`
}

func markupTypeToJSON(r *core.Record) markupTypeJSON {
	return markupTypeJSON{
		ID:            r.Id,
		Name:          r.GetString("name"),
		MarkupPercent: r.GetFloat("markup_percent"),
		WorkCost:      r.GetFloat("work_cost"),
	}
}

// HandleMarkupTypeList lists one markup type catalog.
// Routes: GET /api/product-types, GET /api/finish-types
func HandleMarkupTypeList(app *pocketbase.PocketBase, collection string) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter(collection, "id != ''", "name", 0, 0, nil)
		if err != nil {
			log.Printf("markup_type_list: could not fetch %s: %v", collection, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		out := make([]markupTypeJSON, 0, len(records))
		for _, r := range records {
			out = append(out, markupTypeToJSON(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

func parseMarkupTypeForm(e *core.RequestEvent) (name string, markupPercent, workCost float64, errs map[string]string) {
	errs = make(map[string]string)

	name = strings.TrimSpace(e.Request.FormValue("name"))
	if name == "" {
		errs["name"] = "Name is required"
	}

	markupPercent = parseNonNegative(e.Request.FormValue("markup_percent"), "markup_percent", errs)
	workCost = parseNonNegative(e.Request.FormValue("work_cost"), "work_cost", errs)

	return name, markupPercent, workCost, errs
}

// parseNonNegative parses an optional non-negative numeric form field,
// recording a message in errs when the value is present but invalid.
func parseNonNegative(raw, field string, errs map[string]string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || v < 0 {
		errs[field] = "Must be a non-negative number"
		return 0
	}
	return v
}

// HandleMarkupTypeCreate creates a product type or finish type.
// Routes: POST /api/product-types, POST /api/finish-types
func HandleMarkupTypeCreate(app *pocketbase.PocketBase, collection string) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		name, markupPercent, workCost, errs := parseMarkupTypeForm(e)
		if len(errs) > 0 {
			return fieldErrors(e, http.StatusBadRequest, errs)
		}

		col, err := app.FindCollectionByNameOrId(collection)
		if err != nil {
			log.Printf("markup_type_create: could not find %s collection: %v", collection, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("name", name)
		record.Set("markup_percent", markupPercent)
		record.Set("work_cost", workCost)

		if err := app.Save(record); err != nil {
			log.Printf("markup_type_create: could not save %s record: %v", collection, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, markupTypeToJSON(record))
	}
}

// HandleMarkupTypeUpdate edits a type's name or markup pair. Products
// referencing it pick up the new values on their next recalculation.
// Routes: PATCH /api/product-types/{id}, PATCH /api/finish-types/{id}
func HandleMarkupTypeUpdate(app *pocketbase.PocketBase, collection string) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById(collection, e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Type not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		name, markupPercent, workCost, errs := parseMarkupTypeForm(e)
		if len(errs) > 0 {
			return fieldErrors(e, http.StatusBadRequest, errs)
		}

		record.Set("name", name)
		record.Set("markup_percent", markupPercent)
		record.Set("work_cost", workCost)

		if err := app.Save(record); err != nil {
			log.Printf("markup_type_update: could not save %s record: %v", collection, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, markupTypeToJSON(record))
	}
}

// HandleMarkupTypeDelete removes a type. Products that referenced it
// keep their dangling reference and price with zero markup from this
// slot until reassigned.
// Routes: DELETE /api/product-types/{id}, DELETE /api/finish-types/{id}
func HandleMarkupTypeDelete(app *pocketbase.PocketBase, collection string) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById(collection, e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Type not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("markup_type_delete: could not delete %s record: %v", collection, err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]string{"deleted": record.Id})
	}
}
