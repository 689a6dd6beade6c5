// ABOUTME: Hard-constraint filter stage applied before any scoring
// ABOUTME: A filtered-out item never consumes a result slot or skews normalization
package core

import (
	"strings"

	"github.com/moodreel/moodreel/internal/models"
)

// ApplyFilters returns the items satisfying every active constraint.
// Year bounds and the rating floor are inclusive; EnglishOnly keeps items
// whose language field mentions English anywhere in its comma list.
// Filtering is idempotent: applying the same filters twice is a no-op.
func ApplyFilters(pool []models.CorpusItem, filters models.Filters) []models.CorpusItem {
	out := make([]models.CorpusItem, 0, len(pool))
	for _, item := range pool {
		if filters.MinYear > 0 && item.Year < filters.MinYear {
			continue
		}
		if filters.MaxYear > 0 && item.Year > filters.MaxYear {
			continue
		}
		if filters.MinRating > 0 && item.Rating < filters.MinRating {
			continue
		}
		if filters.EnglishOnly && !strings.Contains(strings.ToLower(item.Language), "english") {
			continue
		}
		if filters.MediaType != "" && item.MediaType != filters.MediaType {
			continue
		}
		out = append(out, item)
	}
	return out
}
