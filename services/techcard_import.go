package services

import (
	"strconv"
	"strings"
)

// ImportReport summarizes the per-row outcomes of one bulk import so
// nothing is lost silently: every input row lands in exactly one of
// the three counters.
type ImportReport struct {
	Merged             int      `json:"merged"`
	Appended           int      `json:"appended"`
	Unresolved         int      `json:"unresolved"`
	UnresolvedArticles []string `json:"unresolved_articles"`
}

// ImportTechCardRows applies (article, quantity) rows to a tech card.
// Rows are processed in file order:
//
//   - article resolves and the card already has a line for that
//     material: the imported quantity is added to the existing line
//     (additive merge, never an overwrite);
//   - article resolves with no existing line: a new line is appended
//     with the imported quantity;
//   - article unknown, or quantity cell not a non-negative number: the
//     row is recorded as unresolved and the store is not touched.
//
// A leading header row is skipped when its quantity cell does not
// parse as a non-negative number.
func ImportTechCardRows(store *LineStore, rows []ImportRow, byArticle map[string]CatalogMaterial) ImportReport {
	var report ImportReport

	for i, row := range rows {
		qty, ok := parseImportQuantity(row.Quantity)
		if i == 0 && !ok {
			// Header heuristic: only row 1, only on a non-numeric
			// quantity cell.
			continue
		}

		mat, found := byArticle[row.Article]
		if !found || !ok {
			report.Unresolved++
			report.UnresolvedArticles = append(report.UnresolvedArticles, row.Article)
			continue
		}

		if existing, exists := store.LineForMaterial(mat.ID); exists {
			// Merge target quantity passed store validation before, and
			// qty is non-negative, so the sum stays valid.
			if err := store.SetQuantity(existing.LineID, existing.Quantity+qty); err != nil {
				report.Unresolved++
				report.UnresolvedArticles = append(report.UnresolvedArticles, row.Article)
				continue
			}
			report.Merged++
			continue
		}

		lineID := store.AddLine(mat.ID)
		if err := store.SetQuantity(lineID, qty); err != nil {
			store.RemoveLine(lineID)
			report.Unresolved++
			report.UnresolvedArticles = append(report.UnresolvedArticles, row.Article)
			continue
		}
		report.Appended++
	}

	return report
}

// parseImportQuantity parses a quantity cell strictly: the whole cell
// must be a non-negative number, with comma accepted as the decimal
// separator. Unlike interactive entry, malformed cells are never
// coerced to a guessed value.
func parseImportQuantity(raw string) (float64, bool) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if normalized == "" {
		return 0, false
	}
	qty, err := strconv.ParseFloat(normalized, 64)
	if err != nil || qty < 0 {
		return 0, false
	}
	return qty, true
}
