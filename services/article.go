package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
)

const articlePrefix = "MAT-"

// formatArticle constructs an article string from a sequence number.
func formatArticle(sequence int) string {
	return fmt.Sprintf("%s%03d", articlePrefix, sequence)
}

// GenerateArticle creates the next auto-assigned material article.
// Format: MAT-{sequence}, 3-digit zero-padded. Manually entered
// articles with a different shape are ignored by the sequence; the
// next number is one past the count of generated ones, probed upward
// until free so a manual "MAT-007" cannot cause a duplicate.
func GenerateArticle(app *pocketbase.PocketBase) (string, error) {
	existing, err := app.FindRecordsByFilter(
		"materials",
		"article ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": articlePrefix + "%"},
	)
	if err != nil {
		existing = nil
	}

	taken := make(map[string]bool, len(existing))
	for _, r := range existing {
		taken[r.GetString("article")] = true
	}

	for seq := len(existing) + 1; ; seq++ {
		article := formatArticle(seq)
		if !taken[article] {
			return article, nil
		}
	}
}
