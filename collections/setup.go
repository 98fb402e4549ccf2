// Package collections manages the PocketBase schema and seed data for
// the catalog and tech card collections.
package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

// Setup programmatically creates/ensures the materials, product_types,
// finish_types, products and tech_card_lines collections exist.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "materials", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "article", Required: false})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Required: false, Min: types.Pointer(0.0)})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "product_types", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "markup_percent", Required: false, Min: types.Pointer(0.0)})
		c.Fields.Add(&core.NumberField{Name: "work_cost", Required: false, Min: types.Pointer(0.0)})
	})

	ensureCollection(app, "finish_types", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "markup_percent", Required: false, Min: types.Pointer(0.0)})
		c.Fields.Add(&core.NumberField{Name: "work_cost", Required: false, Min: types.Pointer(0.0)})
	})

	products := ensureCollection(app, "products", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		// Type references are plain text ids: a product must stay
		// viewable after its type is deleted (absent markup reads as
		// zero).
		c.Fields.Add(&core.TextField{Name: "product_type", Required: false})
		c.Fields.Add(&core.TextField{Name: "finish_type", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "tech_card_lines", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "product",
			Required:      true,
			CollectionId:  products.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		// Material is a plain text id on purpose: lines must survive
		// material deletion and degrade to unresolved instead of being
		// cleaned up by a relation.
		c.Fields.Add(&core.TextField{Name: "material", Required: true})
		c.Fields.Add(&core.NumberField{Name: "qty", Required: false, Min: types.Pointer(0.0)})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
