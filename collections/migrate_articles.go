package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"

	"catalogpricing/services"
)

// MigrateMissingArticles assigns a generated article to every material
// that has none. Materials created before the article field existed
// cannot be targeted by bulk import until they get one.
// Safe to call on every startup -- returns early if nothing to migrate.
func MigrateMissingArticles(app *pocketbase.PocketBase) error {
	missing, err := app.FindRecordsByFilter(
		"materials",
		"article = ''",
		"created",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query materials without article: %w", err)
	}

	if len(missing) == 0 {
		return nil
	}

	log.Printf("migrate: found %d material(s) without an article -- assigning...\n", len(missing))

	for _, record := range missing {
		article, err := services.GenerateArticle(app)
		if err != nil {
			log.Printf("migrate: could not generate article for material %q (%s): %v\n",
				record.GetString("name"), record.Id, err)
			continue
		}

		record.Set("article", article)
		if err := app.Save(record); err != nil {
			log.Printf("migrate: failed to save article for material %q (%s): %v\n",
				record.GetString("name"), record.Id, err)
			continue
		}
	}

	log.Printf("migrate: article backfill complete\n")
	return nil
}
