package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogpricing/collections"
	"catalogpricing/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateMissingArticles(app); err != nil {
			log.Printf("Warning: article migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Material catalog ─────────────────────────────────────
		se.Router.GET("/api/materials", handlers.HandleMaterialList(app))
		se.Router.POST("/api/materials", handlers.HandleMaterialCreate(app))
		se.Router.PATCH("/api/materials/{id}", handlers.HandleMaterialUpdate(app))
		se.Router.DELETE("/api/materials/{id}", handlers.HandleMaterialDelete(app))

		// ── Product and finish type catalogs ─────────────────────
		se.Router.GET("/api/product-types", handlers.HandleMarkupTypeList(app, "product_types"))
		se.Router.POST("/api/product-types", handlers.HandleMarkupTypeCreate(app, "product_types"))
		se.Router.PATCH("/api/product-types/{id}", handlers.HandleMarkupTypeUpdate(app, "product_types"))
		se.Router.DELETE("/api/product-types/{id}", handlers.HandleMarkupTypeDelete(app, "product_types"))

		se.Router.GET("/api/finish-types", handlers.HandleMarkupTypeList(app, "finish_types"))
		se.Router.POST("/api/finish-types", handlers.HandleMarkupTypeCreate(app, "finish_types"))
		se.Router.PATCH("/api/finish-types/{id}", handlers.HandleMarkupTypeUpdate(app, "finish_types"))
		se.Router.DELETE("/api/finish-types/{id}", handlers.HandleMarkupTypeDelete(app, "finish_types"))

		// ── Products ─────────────────────────────────────────────
		se.Router.GET("/api/products", handlers.HandleProductList(app))
		se.Router.POST("/api/products", handlers.HandleProductCreate(app))
		se.Router.PATCH("/api/products/{id}", handlers.HandleProductUpdate(app))
		se.Router.DELETE("/api/products/{id}", handlers.HandleProductDelete(app))

		// ── Tech card ────────────────────────────────────────────
		se.Router.GET("/api/products/{id}/techcard", handlers.HandleTechCardView(app))
		se.Router.POST("/api/products/{id}/techcard/lines", handlers.HandleTechCardLineAdd(app))
		se.Router.PATCH("/api/products/{id}/techcard/lines/{lineId}", handlers.HandleTechCardLineQty(app))
		se.Router.DELETE("/api/products/{id}/techcard/lines/{lineId}", handlers.HandleTechCardLineDelete(app))

		// ── Tech card import (validate, then commit) ─────────────
		se.Router.POST("/api/products/{id}/techcard/import", handlers.HandleTechCardImportValidate(app))
		se.Router.POST("/api/products/{id}/techcard/import/commit", handlers.HandleTechCardImportCommit(app))
		se.Router.POST("/api/techcard/import/errors", handlers.HandleTechCardImportErrors(app))
		se.Router.GET("/api/techcard/import/template", handlers.HandleTechCardImportTemplate(app))

		// ── Price sheet export ───────────────────────────────────
		se.Router.GET("/api/products/{id}/export/excel", handlers.HandlePriceSheetExcel(app))
		se.Router.GET("/api/products/{id}/export/pdf", handlers.HandlePriceSheetPDF(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
